package admission

// Token estimation constants. The estimate is a heuristic (roughly four
// characters per token), not an exact tokenizer count.
const (
	// minQuestionTokens is the floor applied to the question estimate.
	minQuestionTokens = 10

	// responseAllowance is a flat reservation for the anticipated answer.
	responseAllowance = 150
)

// EstimateTokens returns the token cost reserved for a sanitized question:
// ceil(len/4) clamped to a minimum of 10, plus a fixed response allowance.
func EstimateTokens(question string) int {
	est := (len(question) + 3) / 4
	if est < minQuestionTokens {
		est = minQuestionTokens
	}
	return est + responseAllowance
}
