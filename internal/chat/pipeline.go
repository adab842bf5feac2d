// Package chat implements the request pipeline: admission, validation,
// transcript recording, prompt assembly, generation and response cleanup.
package chat

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/flemzord/chacha/internal/admission"
	"github.com/flemzord/chacha/internal/profile"
	"github.com/flemzord/chacha/internal/prompt"
	"github.com/flemzord/chacha/internal/provider"
	"github.com/flemzord/chacha/internal/session"
)

// Request is one incoming chat question together with the caller identity
// established by the gateway.
type Request struct {
	UserID   string
	ClientIP string
	Question string
}

// Response is the pipeline outcome for an admitted and answered request.
// Rate is populated whenever the rate check ran, including on error, so
// callers can always emit rate limit headers.
type Response struct {
	Answer string
	Rate   admission.Result
}

// Recorder receives pipeline measurements. Implementations must be safe
// for concurrent use.
type Recorder interface {
	ObserveGeneration(d time.Duration, failed bool)
	AddTokensReserved(n int)
}

type noopRecorder struct{}

func (noopRecorder) ObserveGeneration(time.Duration, bool) {}
func (noopRecorder) AddTokensReserved(int)                 {}

// Pipeline orchestrates a chat request end to end. All dependencies are
// injected at construction; the pipeline itself is stateless apart from
// the per-session locks.
type Pipeline struct {
	rate     *admission.Counter
	quota    *admission.Counter
	profiles profile.Store
	store    session.Store
	gen      provider.Generator
	metrics  Recorder
	logger   *slog.Logger
	tracer   trace.Tracer
	locks    *sessionLocks
}

// Config carries the pipeline's dependencies. Rate, Quota, Profiles,
// Store and Generator are required; Metrics, Logger and Tracer default
// to no-ops when nil.
type Config struct {
	Rate      *admission.Counter
	Quota     *admission.Counter
	Profiles  profile.Store
	Store     session.Store
	Generator provider.Generator
	Metrics   Recorder
	Logger    *slog.Logger
	Tracer    trace.Tracer
}

// NewPipeline builds a pipeline from cfg.
func NewPipeline(cfg Config) (*Pipeline, error) {
	switch {
	case cfg.Rate == nil:
		return nil, fmt.Errorf("chat: rate counter is required")
	case cfg.Quota == nil:
		return nil, fmt.Errorf("chat: quota counter is required")
	case cfg.Profiles == nil:
		return nil, fmt.Errorf("chat: profile store is required")
	case cfg.Store == nil:
		return nil, fmt.Errorf("chat: session store is required")
	case cfg.Generator == nil:
		return nil, fmt.Errorf("chat: generator is required")
	}

	if cfg.Metrics == nil {
		cfg.Metrics = noopRecorder{}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	if cfg.Tracer == nil {
		cfg.Tracer = noop.NewTracerProvider().Tracer("chat")
	}

	return &Pipeline{
		rate:     cfg.Rate,
		quota:    cfg.Quota,
		profiles: cfg.Profiles,
		store:    cfg.Store,
		gen:      cfg.Generator,
		metrics:  cfg.Metrics,
		logger:   cfg.Logger,
		tracer:   cfg.Tracer,
		locks:    newSessionLocks(),
	}, nil
}

// SessionID derives the transcript key for a request: the authenticated
// user ID when present, otherwise the client IP with an "ip:" prefix so
// anonymous keys can never collide with user IDs.
func SessionID(userID, clientIP string) string {
	if userID != "" {
		return userID
	}
	return "ip:" + clientIP
}

// Ask runs the full pipeline for one request.
//
// Stages, in order: rate admission, validation, user turn recording,
// prompt assembly, token quota reservation, generation, cleanup, bot
// turn recording. A failure at any stage stops the pipeline; the bot
// turn is only recorded after a successful generation, and reserved
// tokens are never refunded.
func (p *Pipeline) Ask(ctx context.Context, req Request) (Response, error) {
	ctx, span := p.tracer.Start(ctx, "chat.ask")
	defer span.End()

	rate := p.rate.Take(req.ClientIP, 1)
	resp := Response{Rate: rate}
	if !rate.Allowed {
		p.logger.Warn("rate limit exceeded", "client_ip", req.ClientIP)
		return resp, &RateLimitedError{Info: rate}
	}

	question, err := validateQuestion(req.Question)
	if err != nil {
		return resp, err
	}

	sessionID := SessionID(req.UserID, req.ClientIP)
	span.SetAttributes(attribute.String("chat.session_id", sessionID))

	assembled, quota, err := p.admit(sessionID, req.UserID, question)
	if err != nil {
		return resp, err
	}

	answer, err := p.generate(ctx, assembled)
	if err != nil {
		p.logger.Error("generation failed",
			"session_id", sessionID,
			"tokens_reserved", quota.Limit-quota.Remaining,
			"error", err)
		return resp, &GenerationError{Err: err}
	}

	lock := p.locks.get(sessionID)
	lock.Lock()
	err = p.store.Append(sessionID, session.Turn{Role: session.RoleBot, Content: answer})
	lock.Unlock()
	if err != nil {
		return resp, fmt.Errorf("recording bot turn: %w", err)
	}

	p.logger.Info("question answered",
		"session_id", sessionID,
		"tokens_remaining", quota.Remaining)

	resp.Answer = answer
	return resp, nil
}

// admit records the user turn, assembles the prompt and reserves tokens,
// all under the session lock. The lock is released before the pipeline
// calls the backend so a slow generation never blocks other requests in
// the same session from being admitted.
func (p *Pipeline) admit(sessionID, userID, question string) (string, admission.Result, error) {
	lock := p.locks.get(sessionID)
	lock.Lock()
	defer lock.Unlock()

	if err := p.store.Append(sessionID, session.Turn{Role: session.RoleUser, Content: question}); err != nil {
		return "", admission.Result{}, fmt.Errorf("recording user turn: %w", err)
	}

	var (
		rolePrompt     string
		profileContext = profile.NoContext
	)
	if prof, ok := p.profiles.Lookup(userID); ok {
		rolePrompt = prompt.RolePrompt(prof)
		profileContext = prof.Context()
	} else {
		rolePrompt = prompt.RolePrompt(nil)
	}

	turns, err := p.store.Turns(sessionID)
	if err != nil {
		return "", admission.Result{}, fmt.Errorf("loading transcript: %w", err)
	}

	assembled := prompt.Assemble(rolePrompt, profileContext, session.RenderContext(turns), question)

	cost := admission.EstimateTokens(question)
	quota := p.quota.Take(sessionID, cost)
	if !quota.Allowed {
		p.logger.Warn("token quota exhausted",
			"session_id", sessionID,
			"tokens_needed", cost,
			"tokens_remaining", quota.Remaining)
		return "", quota, &QuotaExhaustedError{Info: quota}
	}
	p.metrics.AddTokensReserved(cost)

	return assembled, quota, nil
}

// generate calls the backend and strips boilerplate lead-ins from the
// result. An answer that is empty after cleanup falls back to the stock
// reply rather than recording an empty bot turn.
func (p *Pipeline) generate(ctx context.Context, assembled string) (string, error) {
	ctx, span := p.tracer.Start(ctx, "chat.generate",
		trace.WithAttributes(attribute.String("llm.model", p.gen.ModelName())))
	defer span.End()

	start := time.Now()
	raw, err := p.gen.Generate(ctx, assembled)
	p.metrics.ObserveGeneration(time.Since(start), err != nil)
	if err != nil {
		return "", err
	}

	answer := prompt.StripPreamble(raw)
	if answer == "" {
		answer = prompt.FallbackAnswer
	}
	return answer, nil
}
