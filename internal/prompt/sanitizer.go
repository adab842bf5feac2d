package prompt

import (
	"regexp"
	"strings"
)

// leadInPatterns match prefatory filler the model tends to emit before the
// actual answer. Evaluated in order, each exactly once against the current
// prefix — a later pattern sees the text left by earlier matches, but no
// pattern is retried after its single pass.
var leadInPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^based on (the )?(data|information) (you've|you have|you) (provided|given)[\s,:-]*`),
	regexp.MustCompile(`(?i)^according to (the )?(data|information)[\s,:-]*`),
	regexp.MustCompile(`(?i)^from the provided (data|information)[\s,:-]*`),
	regexp.MustCompile(`(?i)^as per (the )?(data|information)[\s,:-]*`),
	regexp.MustCompile(`(?i)^note[:\-]?\s*`),
}

var (
	leadingPunct       = regexp.MustCompile(`^[,;:\-\s]+`)
	leadingConjunction = regexp.MustCompile(`(?i)^(so|therefore|thus)[\s,]+`)
)

// StripPreamble removes known boilerplate lead-ins from model output:
// trims, applies each lead-in pattern once in order, then strips leading
// punctuation and a leading conjunction. Empty input is returned unchanged.
func StripPreamble(text string) string {
	if text == "" {
		return text
	}

	s := strings.TrimSpace(text)
	for _, re := range leadInPatterns {
		if re.MatchString(s) {
			s = strings.TrimSpace(re.ReplaceAllString(s, ""))
		}
	}

	s = leadingPunct.ReplaceAllString(s, "")
	s = leadingConjunction.ReplaceAllString(s, "")
	return s
}
