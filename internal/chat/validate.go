package chat

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	maxQuestionLength = 500
	minQuestionLength = 3
)

// forbiddenPatterns reject obvious prompt-injection attempts before the
// question reaches the model.
var forbiddenPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)ignore.*instruction`),
	regexp.MustCompile(`(?i)override.*prompt`),
	regexp.MustCompile(`(?i)system.*message`),
	regexp.MustCompile(`(?i)admin.*command`),
	regexp.MustCompile(`(?i)bypass.*rule`),
}

// validateQuestion normalizes and screens the raw question. Order matters:
// pattern screen, truncate to 500, then the minimum-length check. An absent
// question is distinct from a blank one: blanks trim to nothing and get the
// friendly too-short rejection.
func validateQuestion(raw string) (string, error) {
	if raw == "" {
		return "", ErrQuestionMissing
	}

	q := strings.TrimSpace(raw)

	for _, re := range forbiddenPatterns {
		if re.MatchString(q) {
			return "", ErrForbiddenInput
		}
	}

	q = truncate(q, maxQuestionLength)
	if len(q) < minQuestionLength {
		return "", ErrQuestionTooShort
	}

	return q, nil
}

// truncate cuts s to at most max bytes without splitting a rune.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
