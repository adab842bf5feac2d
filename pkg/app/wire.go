package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/flemzord/chacha/internal/admission"
	"github.com/flemzord/chacha/internal/chat"
	"github.com/flemzord/chacha/internal/config"
	"github.com/flemzord/chacha/internal/core"
	"github.com/flemzord/chacha/internal/cron"
	"github.com/flemzord/chacha/internal/profile"
	"github.com/flemzord/chacha/internal/provider"
	"github.com/flemzord/chacha/internal/session"
	"github.com/flemzord/chacha/internal/telemetry"
)

// cronModule wraps the scheduler to satisfy core.Starter and
// core.Stopper, so it participates in the App lifecycle.
type cronModule struct {
	scheduler *cron.Scheduler
}

func (m *cronModule) ModuleInfo() core.ModuleInfo {
	return core.ModuleInfo{ID: "cron"}
}

func (m *cronModule) Start() error {
	return m.scheduler.Start()
}

func (m *cronModule) Stop(ctx context.Context) error {
	return m.scheduler.Stop(ctx)
}

// wirePipeline builds the admission counters, the profile store and the
// chat pipeline, and registers everything the gateway resolves at
// Start(). Must be called after LoadModules and before Start.
func wirePipeline(
	application *core.App,
	appCtx *core.AppContext,
	cfg *config.Config,
	ids []string,
	logger *slog.Logger,
	traces *telemetry.Provider,
) error {
	// Discover the generator. Provider modules register themselves as a
	// service during Provision.
	var gen provider.Generator
	if svc, ok := appCtx.Service("provider.generator"); ok {
		gen, _ = svc.(provider.Generator)
	}
	if gen == nil {
		return fmt.Errorf("wiring: no provider module registered a generator")
	}

	// Transcript store: the sqlite module when loaded, in-memory otherwise.
	var store session.Store
	if svc, ok := appCtx.Service("memory.transcripts"); ok {
		store, _ = svc.(session.Store)
	}
	if store == nil {
		store = session.NewInMemoryStore()
		appCtx.RegisterService("memory.transcripts", store)
		logger.Info("wiring: using in-memory transcript store")
	}

	rate := admission.NewRateLimiter(cfg.Admission.RateLimit)
	quota := admission.NewTokenQuota(cfg.Admission.TokenQuota)
	appCtx.RegisterService("admission.rate", rate)
	appCtx.RegisterService("admission.quota", quota)

	profiles, err := profile.FromEntries(cfg.Profiles)
	if err != nil {
		return fmt.Errorf("wiring: building profiles: %w", err)
	}
	appCtx.RegisterService("profile.store", profiles)

	// The gateway registers its Prometheus recorder during Provision.
	var metrics chat.Recorder
	if svc, ok := appCtx.Service("gateway.metrics"); ok {
		metrics, _ = svc.(chat.Recorder)
	}

	pipeline, err := chat.NewPipeline(chat.Config{
		Rate:      rate,
		Quota:     quota,
		Profiles:  profiles,
		Store:     store,
		Generator: gen,
		Metrics:   metrics,
		Logger:    logger.With("component", "chat"),
		Tracer:    traces.Tracer("chat"),
	})
	if err != nil {
		return fmt.Errorf("wiring: building pipeline: %w", err)
	}
	appCtx.RegisterService("chat.pipeline", pipeline)

	// Periodic eviction keeps counter memory bounded.
	scheduler := cron.NewScheduler(logger.With("component", "cron"))
	jobs := []cron.Job{
		&cron.CounterCleanupJob{Counter: rate, Kind: "rate_limit", Logger: logger},
		&cron.CounterCleanupJob{Counter: quota, Kind: "token_quota", Logger: logger},
	}
	for _, j := range jobs {
		if err := scheduler.RegisterJob(j); err != nil {
			return fmt.Errorf("wiring: %w", err)
		}
	}
	application.AppendModule("cron", &cronModule{scheduler: scheduler})

	logger.Info("pipeline wired",
		"modules", len(ids),
		"model", gen.ModelName(),
		"profiles", len(cfg.Profiles))
	return nil
}
