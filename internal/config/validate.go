package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/flemzord/chacha/internal/core"
)

// Validate checks the structural validity of a Config. It verifies the
// version field, checks that all referenced module IDs exist in the
// registry, requires a provider module, and checks profile entries.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.Version == "" {
		errs = append(errs, errors.New("config: version field is required"))
	} else if cfg.Version != "1" {
		errs = append(errs, fmt.Errorf("config: unsupported version %q (supported: \"1\")", cfg.Version))
	}

	if len(cfg.Modules) == 0 {
		errs = append(errs, errors.New("config: at least one module must be configured"))
	}

	hasProvider := false
	for id := range cfg.Modules {
		if _, ok := core.GetModule(id); !ok {
			errs = append(errs, fmt.Errorf("config: unknown module %q", id))
		}
		if strings.HasPrefix(id, "provider.") {
			hasProvider = true
		}
	}
	if len(cfg.Modules) > 0 && !hasProvider {
		errs = append(errs, errors.New("config: a provider module is required (e.g. provider.ollama)"))
	}

	errs = append(errs, validateProfiles(cfg)...)
	errs = append(errs, validateAdmission(cfg)...)

	return errors.Join(errs...)
}

func validateProfiles(cfg *Config) []error {
	var errs []error
	for id, e := range cfg.Profiles {
		switch e.Role {
		case "developer", "buyer":
		default:
			errs = append(errs, fmt.Errorf("config: profile %q: unknown role %q", id, e.Role))
		}
	}
	return errs
}

func validateAdmission(cfg *Config) []error {
	var errs []error
	if cfg.Admission.RateLimit.MaxRequests < 0 {
		errs = append(errs, errors.New("config: admission.rate_limit.max_requests must not be negative"))
	}
	if cfg.Admission.RateLimit.WindowMS < 0 {
		errs = append(errs, errors.New("config: admission.rate_limit.window_ms must not be negative"))
	}
	if cfg.Admission.TokenQuota.Tokens < 0 {
		errs = append(errs, errors.New("config: admission.token_quota.tokens must not be negative"))
	}
	if cfg.Admission.TokenQuota.WindowMS < 0 {
		errs = append(errs, errors.New("config: admission.token_quota.window_ms must not be negative"))
	}
	return errs
}
