// Package provider defines the contract for communicating with the LLM
// inference backend. Concrete implementations live in separate packages
// (e.g. modules/provider/ollama) and typically also implement core.Module
// for lifecycle management.
package provider

import "context"

// Generator is the interface the chat pipeline uses to obtain completions.
type Generator interface {
	// Generate sends the assembled prompt and returns the raw model output.
	// Blocks up to the implementation's configured timeout; ctx cancels early.
	Generate(ctx context.Context, prompt string) (string, error)

	// ModelName returns the identifier of the configured model.
	ModelName() string
}

// ModelLister is an optional interface for backends that can enumerate
// their available models, enabling fallback when the configured model
// is not installed.
type ModelLister interface {
	ListModels(ctx context.Context) ([]string, error)
}

// HealthChecker is an optional interface backends may implement to
// support active availability probing.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}
