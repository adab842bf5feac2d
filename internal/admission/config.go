package admission

import "time"

// Defaults mirror the reference deployment: 20 requests per minute per
// client, 1000 tokens per 24 h per user.
const (
	DefaultMaxRequests = 20
	DefaultRateWindow  = 60 * time.Second
	DefaultTokenBudget = 1000
	DefaultTokenWindow = 24 * time.Hour
)

// RateLimitConfig configures the per-client request gate.
type RateLimitConfig struct {
	MaxRequests int   `yaml:"max_requests"`
	WindowMS    int64 `yaml:"window_ms"`
}

// TokenQuotaConfig configures the per-user token budget.
type TokenQuotaConfig struct {
	Tokens   int   `yaml:"tokens"`
	WindowMS int64 `yaml:"window_ms"`
}

// NewRateLimiter builds the request counter from cfg, substituting
// defaults for zero values.
func NewRateLimiter(cfg RateLimitConfig) *Counter {
	limit := cfg.MaxRequests
	if limit <= 0 {
		limit = DefaultMaxRequests
	}
	window := time.Duration(cfg.WindowMS) * time.Millisecond
	if window <= 0 {
		window = DefaultRateWindow
	}
	return NewCounter(limit, window)
}

// NewTokenQuota builds the token counter from cfg, substituting defaults
// for zero values.
func NewTokenQuota(cfg TokenQuotaConfig) *Counter {
	budget := cfg.Tokens
	if budget <= 0 {
		budget = DefaultTokenBudget
	}
	window := time.Duration(cfg.WindowMS) * time.Millisecond
	if window <= 0 {
		window = DefaultTokenWindow
	}
	return NewCounter(budget, window)
}
