package chat

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/flemzord/chacha/internal/admission"
	"github.com/flemzord/chacha/internal/profile"
	"github.com/flemzord/chacha/internal/provider"
	"github.com/flemzord/chacha/internal/session"
)

type fakeGenerator struct {
	answer string
	err    error
	calls  int
	seen   string
}

func (g *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.calls++
	g.seen = prompt
	if g.err != nil {
		return "", g.err
	}
	return g.answer, nil
}

func (g *fakeGenerator) ModelName() string { return "mistral" }

type testEnv struct {
	pipeline *Pipeline
	store    *session.InMemoryStore
	quota    *admission.Counter
	gen      *fakeGenerator
}

func newTestEnv(t *testing.T, gen *fakeGenerator) *testEnv {
	t.Helper()

	profiles, err := profile.FromEntries(map[string]profile.Entry{
		"dev_user": {
			Role:           "developer",
			ActiveGame:     "SkyRunner",
			Progress:       "40%",
			CompletedGames: []string{"StarQuest", "MoonLander"},
			Views:          &profile.ViewStats{Yesterday: 23, Last7Days: 150},
		},
		"buyer_1": {
			Role:           "buyer",
			FavouriteGame:  "Call of Duty",
			Budget:         "900",
			CompletedGames: []string{"Indie Cat", "Space Explorer"},
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	store := session.NewInMemoryStore()
	quota := admission.NewCounter(1000, 24*time.Hour)
	p, err := NewPipeline(Config{
		Rate:      admission.NewCounter(20, time.Minute),
		Quota:     quota,
		Profiles:  profiles,
		Store:     store,
		Generator: gen,
	})
	if err != nil {
		t.Fatal(err)
	}
	return &testEnv{pipeline: p, store: store, quota: quota, gen: gen}
}

func TestAsk_DeveloperHappyPath(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{answer: "Based on the data you've provided, SkyRunner is at 40%."}
	env := newTestEnv(t, gen)

	resp, err := env.pipeline.Ask(context.Background(), Request{
		UserID:   "dev_user",
		ClientIP: "10.0.0.1",
		Question: "How is my game doing?",
	})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Answer != "SkyRunner is at 40%." {
		t.Fatalf("answer = %q", resp.Answer)
	}
	if resp.Rate.Remaining != 19 {
		t.Fatalf("rate remaining = %d, want 19", resp.Rate.Remaining)
	}

	// Prompt carries the profile, the transcript and the question.
	for _, want := range []string{"SkyRunner", "USER_PROFILE:", "You: How is my game doing?", "QUESTION: How is my game doing?"} {
		if !strings.Contains(gen.seen, want) {
			t.Errorf("prompt missing %q", want)
		}
	}

	turns, err := env.store.Turns("dev_user")
	if err != nil {
		t.Fatal(err)
	}
	if len(turns) != 2 {
		t.Fatalf("turns = %d, want 2", len(turns))
	}
	if turns[0].Role != session.RoleUser || turns[1].Role != session.RoleBot {
		t.Fatalf("unexpected roles: %v, %v", turns[0].Role, turns[1].Role)
	}
	if turns[1].Content != "SkyRunner is at 40%." {
		t.Fatalf("bot turn = %q", turns[1].Content)
	}
}

func TestAsk_AnonymousSessionKey(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{answer: "Hello!"}
	env := newTestEnv(t, gen)

	if _, err := env.pipeline.Ask(context.Background(), Request{
		ClientIP: "192.168.1.5",
		Question: "Who are you?",
	}); err != nil {
		t.Fatal(err)
	}

	n, err := env.store.Len("ip:192.168.1.5")
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Fatalf("anonymous transcript turns = %d, want 2", n)
	}
	if !strings.Contains(gen.seen, profile.NoContext) {
		t.Error("anonymous prompt must carry the no-context placeholder")
	}
}

func TestAsk_RateLimited(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{answer: "ok"}
	env := newTestEnv(t, gen)

	// Distinct user IDs keep each request on a fresh token budget; the
	// rate counter is keyed by client IP alone.
	for i := 0; i < 20; i++ {
		if _, err := env.pipeline.Ask(context.Background(), Request{
			UserID:   "u" + strconv.Itoa(i),
			ClientIP: "10.0.0.9",
			Question: "question number whatever",
		}); err != nil {
			t.Fatalf("request %d: %v", i, err)
		}
	}

	_, err := env.pipeline.Ask(context.Background(), Request{
		UserID:   "u99",
		ClientIP: "10.0.0.9",
		Question: "one too many",
	})
	var rl *RateLimitedError
	if !errors.As(err, &rl) {
		t.Fatalf("err = %v, want RateLimitedError", err)
	}
	if rl.Info.Remaining != 0 {
		t.Fatalf("remaining = %d, want 0", rl.Info.Remaining)
	}
	if gen.calls != 20 {
		t.Fatalf("generator calls = %d, want 20", gen.calls)
	}
}

func TestAsk_ValidationDoesNotTouchSession(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{answer: "ok"}
	env := newTestEnv(t, gen)

	_, err := env.pipeline.Ask(context.Background(), Request{
		ClientIP: "10.0.0.2",
		Question: "hi",
	})
	if !errors.Is(err, ErrQuestionTooShort) {
		t.Fatalf("err = %v, want ErrQuestionTooShort", err)
	}

	if env.store.Sessions() != 0 {
		t.Error("rejected question must not create a transcript")
	}
	if got := env.quota.Stats("ip:10.0.0.2").Remaining; got != 1000 {
		t.Errorf("quota remaining = %d, want untouched 1000", got)
	}
	if gen.calls != 0 {
		t.Error("generator must not be called for invalid input")
	}
}

func TestAsk_QuotaExhaustedKeepsUserTurn(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{answer: "ok"}
	env := newTestEnv(t, gen)

	// Drain the session budget below one request's worth.
	env.quota.Take("dev_user", 900)

	_, err := env.pipeline.Ask(context.Background(), Request{
		UserID:   "dev_user",
		ClientIP: "10.0.0.3",
		Question: "anything left?",
	})
	var qe *QuotaExhaustedError
	if !errors.As(err, &qe) {
		t.Fatalf("err = %v, want QuotaExhaustedError", err)
	}
	if qe.Info.Remaining != 100 {
		t.Fatalf("remaining = %d, want 100", qe.Info.Remaining)
	}

	// The user turn is recorded before the reservation and stays.
	turns, err := env.store.Turns("dev_user")
	if err != nil {
		t.Fatal(err)
	}
	if len(turns) != 1 || turns[0].Role != session.RoleUser {
		t.Fatalf("turns = %v, want single user turn", turns)
	}
	if gen.calls != 0 {
		t.Error("generator must not be called when the quota is exhausted")
	}
}

func TestAsk_GenerationFailureNoRefundNoBotTurn(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{err: provider.ErrBackendDown}
	env := newTestEnv(t, gen)

	_, err := env.pipeline.Ask(context.Background(), Request{
		UserID:   "dev_user",
		ClientIP: "10.0.0.4",
		Question: "is the backend up?",
	})
	var ge *GenerationError
	if !errors.As(err, &ge) {
		t.Fatalf("err = %v, want GenerationError", err)
	}
	if !errors.Is(err, provider.ErrBackendDown) {
		t.Fatalf("err = %v, want wrapped ErrBackendDown", err)
	}

	turns, err := env.store.Turns("dev_user")
	if err != nil {
		t.Fatal(err)
	}
	if len(turns) != 1 || turns[0].Role != session.RoleUser {
		t.Fatalf("turns = %v, want single user turn", turns)
	}

	// Tokens reserved for the failed attempt are not returned.
	cost := admission.EstimateTokens("is the backend up?")
	if got := env.quota.Stats("dev_user").Remaining; got != 1000-cost {
		t.Fatalf("quota remaining = %d, want %d", got, 1000-cost)
	}
}

func TestAsk_EmptyAnswerFallsBack(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{answer: "   "}
	env := newTestEnv(t, gen)

	resp, err := env.pipeline.Ask(context.Background(), Request{
		ClientIP: "10.0.0.6",
		Question: "say nothing",
	})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Answer == "" {
		t.Fatal("empty answer must fall back to the stock reply")
	}
}

func TestSessionID(t *testing.T) {
	t.Parallel()

	if got := SessionID("dev_user", "1.2.3.4"); got != "dev_user" {
		t.Fatalf("got %q", got)
	}
	if got := SessionID("", "1.2.3.4"); got != "ip:1.2.3.4" {
		t.Fatalf("got %q", got)
	}
}
