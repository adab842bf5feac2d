package admission

import (
	"sync"
	"testing"
	"time"
)

func fixedClock(t *time.Time) func() time.Time {
	return func() time.Time { return *t }
}

func TestCounter_RemainingDecreasesMonotonically(t *testing.T) {
	t.Parallel()

	c := NewCounter(20, time.Minute)

	for i := 1; i <= 20; i++ {
		res := c.Take("client-a", 1)
		if !res.Allowed {
			t.Fatalf("call %d denied, want allowed", i)
		}
		if res.Remaining != 20-i {
			t.Fatalf("call %d: Remaining = %d, want %d", i, res.Remaining, 20-i)
		}
	}

	// 21st call inside the same window must be denied with nothing left.
	res := c.Take("client-a", 1)
	if res.Allowed {
		t.Fatal("21st call allowed, want denied")
	}
	if res.Remaining != 0 {
		t.Fatalf("denied Remaining = %d, want 0", res.Remaining)
	}
}

func TestCounter_WindowRenewsLazily(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c := NewCounter(2, time.Minute)
	c.now = fixedClock(&now)

	c.Take("k", 1)
	c.Take("k", 1)
	if res := c.Take("k", 1); res.Allowed {
		t.Fatal("expected denial with exhausted window")
	}

	// Exactly at the reset instant the window must renew (now >= resetAt).
	now = now.Add(time.Minute)
	res := c.Take("k", 1)
	if !res.Allowed {
		t.Fatal("expected allow after window expiry")
	}
	if res.Remaining != 1 {
		t.Fatalf("Remaining = %d, want 1 in fresh window", res.Remaining)
	}
	if got, want := res.ResetAt, now.Add(time.Minute); !got.Equal(want) {
		t.Fatalf("ResetAt = %v, want %v", got, want)
	}
}

func TestCounter_DenialDoesNotDebit(t *testing.T) {
	t.Parallel()

	c := NewCounter(100, time.Hour)

	c.Take("u", 60)
	res := c.Take("u", 50)
	if res.Allowed {
		t.Fatal("expected denial: 50 > 40 remaining")
	}
	if res.Remaining != 40 {
		t.Fatalf("Remaining = %d, want 40 (unchanged)", res.Remaining)
	}

	// The remaining 40 must still be debitable.
	res = c.Take("u", 40)
	if !res.Allowed {
		t.Fatal("expected allow: exactly the remaining budget")
	}
	if res.Remaining != 0 {
		t.Fatalf("Remaining = %d, want 0", res.Remaining)
	}
}

func TestCounter_ReserveDeniesIffNeededExceedsRemaining(t *testing.T) {
	t.Parallel()

	c := NewCounter(1000, 24*time.Hour)

	res := c.Take("buyer_1", 400)
	if !res.Allowed || res.Remaining != 600 {
		t.Fatalf("got %+v, want allowed with 600 remaining", res)
	}
	res = c.Take("buyer_1", 601)
	if res.Allowed {
		t.Fatal("expected denial: 601 > 600")
	}
	res = c.Take("buyer_1", 600)
	if !res.Allowed || res.Remaining != 0 {
		t.Fatalf("got %+v, want allowed with 0 remaining", res)
	}
}

func TestCounter_IdentifiersAreIndependent(t *testing.T) {
	t.Parallel()

	c := NewCounter(1, time.Minute)

	if res := c.Take("a", 1); !res.Allowed {
		t.Fatal("first key should be allowed")
	}
	if res := c.Take("b", 1); !res.Allowed {
		t.Fatal("second key should be unaffected by the first")
	}
	if res := c.Take("a", 1); res.Allowed {
		t.Fatal("first key should now be exhausted")
	}
}

func TestCounter_StatsReportsFullBudgetForAbsentEntry(t *testing.T) {
	t.Parallel()

	c := NewCounter(20, time.Minute)

	res := c.Stats("never-seen")
	if res.Remaining != 20 {
		t.Fatalf("Remaining = %d, want full budget for absent entry", res.Remaining)
	}

	c.Take("seen", 3)
	res = c.Stats("seen")
	if res.Remaining != 17 {
		t.Fatalf("Remaining = %d, want 17", res.Remaining)
	}

	// Stats must not debit.
	if res := c.Stats("seen"); res.Remaining != 17 {
		t.Fatalf("Stats debited: Remaining = %d, want 17", res.Remaining)
	}
}

func TestCounter_Reset(t *testing.T) {
	t.Parallel()

	c := NewCounter(2, time.Minute)

	c.Take("k", 2)
	c.Reset("k")

	if res := c.Take("k", 2); !res.Allowed {
		t.Fatal("expected full budget after administrative reset")
	}
}

func TestCounter_EvictRemovesOnlyExpired(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	c := NewCounter(5, time.Minute)
	c.now = fixedClock(&now)

	c.Take("old", 1)
	now = now.Add(30 * time.Second)
	c.Take("fresh", 1)

	now = now.Add(45 * time.Second) // "old" expired 15s ago, "fresh" has 15s left
	if got := c.Evict(); got != 1 {
		t.Fatalf("Evict() = %d, want 1", got)
	}
	if got := c.Len(); got != 1 {
		t.Fatalf("Len() = %d after eviction, want 1", got)
	}

	// Eviction must not affect the live entry's budget.
	if res := c.Stats("fresh"); res.Remaining != 4 {
		t.Fatalf("fresh Remaining = %d, want 4", res.Remaining)
	}
}

func TestCounter_ConcurrentTakeNeverOversubscribes(t *testing.T) {
	t.Parallel()

	const limit = 50
	c := NewCounter(limit, time.Minute)

	var wg sync.WaitGroup
	allowed := make(chan struct{}, limit*4)
	for range limit * 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if res := c.Take("shared", 1); res.Allowed {
				allowed <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(allowed)

	if got := len(allowed); got != limit {
		t.Fatalf("%d calls allowed, want exactly %d", got, limit)
	}
}

func TestNewRateLimiter_Defaults(t *testing.T) {
	t.Parallel()

	c := NewRateLimiter(RateLimitConfig{})
	if c.Limit() != DefaultMaxRequests {
		t.Fatalf("Limit() = %d, want %d", c.Limit(), DefaultMaxRequests)
	}
}

func TestNewTokenQuota_Defaults(t *testing.T) {
	t.Parallel()

	c := NewTokenQuota(TokenQuotaConfig{})
	if c.Limit() != DefaultTokenBudget {
		t.Fatalf("Limit() = %d, want %d", c.Limit(), DefaultTokenBudget)
	}
}
