// Package ollama provides the LLM provider module backed by a local
// Ollama server. Generation goes through the non-streaming
// /api/generate endpoint; /api/tags drives model fallback and health
// probing.
package ollama

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/flemzord/chacha/internal/core"
	"github.com/flemzord/chacha/internal/provider"
)

func init() {
	core.RegisterModule(&Provider{})
}

// Provider is the Ollama-backed generator module.
type Provider struct {
	config Config
	client *http.Client
	logger *slog.Logger

	// resolved caches the model name picked by tag fallback so the
	// lookup happens at most once per process.
	mu       sync.RWMutex
	resolved string
}

// ModuleInfo implements core.Module.
func (p *Provider) ModuleInfo() core.ModuleInfo {
	return core.ModuleInfo{
		ID:  "provider.ollama",
		New: func() core.Module { return &Provider{} },
	}
}

// Configure implements core.Configurable.
func (p *Provider) Configure(node *yaml.Node) error {
	if err := node.Decode(&p.config); err != nil {
		return err
	}
	p.config.defaults()
	return nil
}

// Provision implements core.Provisioner.
func (p *Provider) Provision(ctx *core.AppContext) error {
	p.logger = ctx.Logger
	// Response-header timeout instead of a global client timeout; the
	// request context bounds the full exchange.
	p.client = &http.Client{
		Transport: &http.Transport{
			ResponseHeaderTimeout: p.config.Timeout,
		},
	}

	ctx.RegisterService("provider.generator", p)
	return nil
}

// Validate implements core.Validator.
func (p *Provider) Validate() error {
	return p.config.validate()
}

// ModelName implements provider.Generator. It reports the resolved
// model once fallback has run, otherwise the configured one.
func (p *Provider) ModelName() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.resolved != "" {
		return p.resolved
	}
	return p.config.Model
}

// Generate implements provider.Generator. When the configured model is
// not installed it consults /api/tags once for a tag of the same base
// model (the name before the colon, e.g. "mistral" matches
// "mistral:7b-instruct"), retries with it, and caches the result.
func (p *Provider) Generate(ctx context.Context, prompt string) (string, error) {
	answer, err := p.generate(ctx, p.ModelName(), prompt)
	if err == nil || !errors.Is(err, provider.ErrModelNotFound) {
		return answer, err
	}

	fallback, ferr := p.findFallbackModel(ctx)
	if ferr != nil {
		return "", err
	}

	p.logger.Warn("configured model not installed, using fallback",
		"configured", p.config.Model,
		"fallback", fallback)

	answer, err = p.generate(ctx, fallback, prompt)
	if err != nil {
		return "", err
	}

	p.mu.Lock()
	p.resolved = fallback
	p.mu.Unlock()
	return answer, nil
}

// findFallbackModel returns the first installed tag sharing the
// configured model's base name.
func (p *Provider) findFallbackModel(ctx context.Context) (string, error) {
	names, err := p.ListModels(ctx)
	if err != nil {
		return "", err
	}

	base := baseName(p.config.Model)
	for _, name := range names {
		if baseName(name) == base {
			return name, nil
		}
	}
	return "", errors.New("no installed model matches " + base)
}

// baseName strips the tag suffix: "mistral:7b-instruct" -> "mistral".
func baseName(model string) string {
	name, _, _ := strings.Cut(model, ":")
	return name
}

// Compile-time interface assertions.
var (
	_ core.Module            = (*Provider)(nil)
	_ core.Configurable      = (*Provider)(nil)
	_ core.Provisioner       = (*Provider)(nil)
	_ core.Validator         = (*Provider)(nil)
	_ provider.Generator     = (*Provider)(nil)
	_ provider.ModelLister   = (*Provider)(nil)
	_ provider.HealthChecker = (*Provider)(nil)
)
