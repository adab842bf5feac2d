// Package security keeps secrets out of log output. The gateway admin
// token and any bearer credentials loaded from the environment are
// registered here at startup and scrubbed from every log record.
package security

import (
	"regexp"
	"strings"
	"sync"
)

// RedactPlaceholder is the replacement string for redacted secrets.
const RedactPlaceholder = "***REDACTED***"

// Redactor replaces secret values in strings with a redaction
// placeholder. Literals are registered at startup (the admin token,
// env-sourced credentials); the built-in pattern catches bearer
// tokens embedded in echoed headers. Safe for concurrent use.
type Redactor struct {
	mu       sync.RWMutex
	literals []string
}

var bearerPattern = regexp.MustCompile(`(?i)bearer\s+[a-zA-Z0-9._\-]{8,}`)

// NewRedactor creates an empty Redactor.
func NewRedactor() *Redactor {
	return &Redactor{}
}

// AddLiteral registers a literal secret value to be redacted on sight.
// Empty strings are ignored.
func (r *Redactor) AddLiteral(secret string) {
	if secret == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.literals = append(r.literals, secret)
}

// Redact replaces every registered literal and bearer token in s with
// RedactPlaceholder.
func (r *Redactor) Redact(s string) string {
	if s == "" {
		return s
	}

	r.mu.RLock()
	literals := r.literals
	r.mu.RUnlock()

	s = bearerPattern.ReplaceAllString(s, RedactPlaceholder)
	for _, lit := range literals {
		if strings.Contains(s, lit) {
			s = strings.ReplaceAll(s, lit, RedactPlaceholder)
		}
	}
	return s
}
