// Package gateway implements the HTTP surface: the chat endpoint, the
// developer views endpoint, health and status probes, Prometheus metrics
// and the admin limit controls.
package gateway

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/flemzord/chacha/internal/admission"
	"github.com/flemzord/chacha/internal/chat"
	"github.com/flemzord/chacha/internal/core"
	"github.com/flemzord/chacha/internal/profile"
	"github.com/flemzord/chacha/internal/provider"
	"github.com/flemzord/chacha/internal/session"
)

func init() {
	core.RegisterModule(&Gateway{})
}

// Gateway is the HTTP gateway module. It is a leaf module — nothing
// imports it; all collaborators are resolved through the service
// registry at Start().
type Gateway struct {
	config    Config
	appCtx    *core.AppContext
	logger    *slog.Logger
	server    *http.Server
	metrics   *Metrics
	startedAt time.Time

	// Resolved lazily at Start() via service registry.
	pipeline *chat.Pipeline
	store    session.Store
	profiles profile.Store
	rate     *admission.Counter
	quota    *admission.Counter
	gen      provider.Generator
}

// ModuleInfo implements core.Module.
func (g *Gateway) ModuleInfo() core.ModuleInfo {
	return core.ModuleInfo{
		ID:  "gateway.http",
		New: func() core.Module { return &Gateway{} },
	}
}

// Configure implements core.Configurable.
func (g *Gateway) Configure(node *yaml.Node) error {
	if err := node.Decode(&g.config); err != nil {
		return err
	}
	g.config.defaults()
	return nil
}

// Provision implements core.Provisioner.
func (g *Gateway) Provision(ctx *core.AppContext) error {
	g.appCtx = ctx
	g.logger = ctx.Logger
	g.metrics = NewMetrics()

	// Register the recorder so the pipeline wiring can pick it up.
	ctx.RegisterService("gateway.metrics", g.metrics)
	return nil
}

// Validate implements core.Validator.
func (g *Gateway) Validate() error {
	if _, err := net.ResolveTCPAddr("tcp", g.config.Bind); err != nil {
		return errors.New("gateway: invalid bind address: " + g.config.Bind)
	}
	return nil
}

// Start implements core.Starter. It resolves dependencies from the
// service registry (lazy binding) and starts the HTTP server.
func (g *Gateway) Start() error {
	if svc, ok := g.appCtx.Service("chat.pipeline"); ok {
		if p, ok := svc.(*chat.Pipeline); ok {
			g.pipeline = p
		}
	}
	if g.pipeline == nil {
		return errors.New("gateway: chat pipeline not available")
	}

	// Optional collaborators. Endpoints degrade gracefully when absent.
	if svc, ok := g.appCtx.Service("memory.transcripts"); ok {
		if store, ok := svc.(session.Store); ok {
			g.store = store
		}
	}
	if svc, ok := g.appCtx.Service("profile.store"); ok {
		if store, ok := svc.(profile.Store); ok {
			g.profiles = store
		}
	}
	if svc, ok := g.appCtx.Service("admission.rate"); ok {
		if c, ok := svc.(*admission.Counter); ok {
			g.rate = c
		}
	}
	if svc, ok := g.appCtx.Service("admission.quota"); ok {
		if c, ok := svc.(*admission.Counter); ok {
			g.quota = c
		}
	}
	if svc, ok := g.appCtx.Service("provider.generator"); ok {
		if gen, ok := svc.(provider.Generator); ok {
			g.gen = gen
		}
	}

	g.startedAt = time.Now()

	g.server = &http.Server{
		Addr:         g.config.Bind,
		Handler:      g.buildRouter(),
		ReadTimeout:  g.config.ReadTimeout,
		WriteTimeout: g.config.WriteTimeout,
	}

	var lc net.ListenConfig
	ln, err := lc.Listen(context.Background(), "tcp", g.config.Bind)
	if err != nil {
		return errors.New("gateway: listen failed: " + err.Error())
	}

	go func() {
		g.logger.Info("gateway listening", "addr", g.config.Bind)
		if err := g.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			g.logger.Error("gateway serve error", "error", err)
		}
	}()

	return nil
}

// Stop implements core.Stopper. Graceful shutdown with configured timeout.
func (g *Gateway) Stop(ctx context.Context) error {
	if g.server == nil {
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, g.config.ShutdownTimeout)
	defer cancel()

	g.logger.Info("gateway shutting down")
	return g.server.Shutdown(shutdownCtx)
}
