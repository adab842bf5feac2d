package cron

import (
	"context"
	"log/slog"
)

// Evicter is the subset of the admission counter needed by cleanup jobs.
// Defined here to avoid importing the admission package.
type Evicter interface {
	Evict() int
	Len() int
}

// CounterCleanupJob drops expired window entries from an admission
// counter. Correctness never depends on it (windows renew lazily); it
// only bounds memory when many distinct clients come and go.
type CounterCleanupJob struct {
	// Counter is the counter to sweep.
	Counter Evicter

	// Kind labels the counter in logs ("rate_limit" or "token_quota").
	Kind string

	Logger *slog.Logger

	// ScheduleExpr overrides the default "*/5 * * * *" when set.
	ScheduleExpr string
}

// Compile-time interface check.
var _ Job = (*CounterCleanupJob)(nil)

// Name implements Job.
func (j *CounterCleanupJob) Name() string {
	return "counter_cleanup:" + j.Kind
}

// Schedule implements Job.
func (j *CounterCleanupJob) Schedule() string {
	if j.ScheduleExpr != "" {
		return j.ScheduleExpr
	}
	return "*/5 * * * *"
}

// Run evicts expired entries.
func (j *CounterCleanupJob) Run(_ context.Context) error {
	evicted := j.Counter.Evict()
	if evicted > 0 {
		j.Logger.Info("cron: evicted expired windows",
			"kind", j.Kind,
			"count", evicted,
			"tracked", j.Counter.Len(),
		)
	}
	return nil
}
