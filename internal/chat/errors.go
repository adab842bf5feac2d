package chat

import (
	"fmt"

	"github.com/flemzord/chacha/internal/admission"
)

// Validation sentinels. The gateway maps each to a specific HTTP response.
var (
	ErrQuestionMissing  = fmt.Errorf("missing or invalid question")
	ErrForbiddenInput   = fmt.Errorf("question matches a forbidden pattern")
	ErrQuestionTooShort = fmt.Errorf("question too short")
)

// RateLimitedError is returned when the per-client request window is
// exhausted. Info carries the window state for response headers.
type RateLimitedError struct {
	Info admission.Result
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("rate limit exceeded, resets at %s", e.Info.ResetAt.Format("15:04:05"))
}

// QuotaExhaustedError is returned when the per-session token budget
// cannot cover the estimated cost of the request.
type QuotaExhaustedError struct {
	Info admission.Result
}

func (e *QuotaExhaustedError) Error() string {
	return fmt.Sprintf("token quota exhausted, %d remaining, resets at %s",
		e.Info.Remaining, e.Info.ResetAt.Format("15:04:05"))
}

// GenerationError wraps a provider failure that occurred after admission
// succeeded. Reserved tokens are not refunded.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string { return fmt.Sprintf("llm generation failed: %v", e.Err) }

func (e *GenerationError) Unwrap() error { return e.Err }
