// Package admission implements the fixed-window counters that gate access
// to the LLM backend: a per-client request rate limiter and a per-user
// token quota. Both share the same counter; only the unit differs
// (requests vs. estimated tokens).
package admission

import (
	"sync"
	"time"
)

// Result is a snapshot of a counter decision for one identifier.
type Result struct {
	// Allowed reports whether the requested amount was debited.
	Allowed bool

	// Limit is the per-window budget.
	Limit int

	// Remaining is the budget left in the current window after the
	// decision. On denial the counter is left untouched.
	Remaining int

	// ResetAt is the instant the current window expires.
	ResetAt time.Time
}

type entry struct {
	used    int
	resetAt time.Time
}

// Counter is a fixed-window check-and-debit counter keyed by an opaque
// identifier. Windows renew lazily on access: an entry whose window has
// expired is replaced, not merged, the next time its key is touched.
// Safe for concurrent use; the lock is never held across blocking calls.
type Counter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	entries map[string]*entry
	now     func() time.Time
}

// NewCounter creates a counter granting limit units per window.
func NewCounter(limit int, window time.Duration) *Counter {
	return &Counter{
		limit:   limit,
		window:  window,
		entries: make(map[string]*entry),
		now:     time.Now,
	}
}

// Limit returns the per-window budget.
func (c *Counter) Limit() int { return c.limit }

// Take attempts to debit n units for id in the current window.
// The check and the debit are a single atomic step: two concurrent callers
// cannot both be allowed when only one caller's worth of budget remains.
// A denial leaves the entry untouched.
func (c *Counter) Take(id string, n int) Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := c.current(id)
	if e.used+n > c.limit {
		return Result{
			Allowed:   false,
			Limit:     c.limit,
			Remaining: c.limit - e.used,
			ResetAt:   e.resetAt,
		}
	}

	e.used += n
	return Result{
		Allowed:   true,
		Limit:     c.limit,
		Remaining: c.limit - e.used,
		ResetAt:   e.resetAt,
	}
}

// Stats returns a read-only snapshot for id without debiting.
// An absent or expired entry reports the full budget.
func (c *Counter) Stats(id string) Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	e, ok := c.entries[id]
	if !ok || !now.Before(e.resetAt) {
		return Result{
			Allowed:   true,
			Limit:     c.limit,
			Remaining: c.limit,
			ResetAt:   now.Add(c.window),
		}
	}
	return Result{
		Allowed:   true,
		Limit:     c.limit,
		Remaining: c.limit - e.used,
		ResetAt:   e.resetAt,
	}
}

// Reset clears the entry for id. Administrative use only.
func (c *Counter) Reset(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, id)
}

// Evict removes all expired entries and returns how many were removed.
// Purely a memory bound; correctness never depends on eviction because
// windows renew lazily in current().
func (c *Counter) Evict() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	evicted := 0
	for id, e := range c.entries {
		if !now.Before(e.resetAt) {
			delete(c.entries, id)
			evicted++
		}
	}
	return evicted
}

// Len returns the number of tracked identifiers, expired or not.
func (c *Counter) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// current returns the live entry for id, replacing it with a fresh window
// when absent or when now >= resetAt. Callers must hold c.mu.
func (c *Counter) current(id string) *entry {
	now := c.now()
	e, ok := c.entries[id]
	if !ok || !now.Before(e.resetAt) {
		e = &entry{resetAt: now.Add(c.window)}
		c.entries[id] = e
	}
	return e
}
