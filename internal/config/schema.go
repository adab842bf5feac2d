// Package config handles YAML configuration loading, environment
// variable expansion, and structural validation for chacha.
package config

import (
	"gopkg.in/yaml.v3"

	"github.com/flemzord/chacha/internal/admission"
	"github.com/flemzord/chacha/internal/profile"
	"github.com/flemzord/chacha/internal/telemetry"
)

// Config is the top-level configuration structure.
type Config struct {
	// Version is the config format version. Currently only "1" is supported.
	Version string `yaml:"version"`

	// Debug enables verbose logging and detailed error responses.
	Debug bool `yaml:"debug"`

	// Admission configures the rate limiter and the token quota.
	Admission AdmissionConfig `yaml:"admission"`

	// Profiles maps user IDs to their configured profiles.
	Profiles map[string]profile.Entry `yaml:"profiles"`

	// Telemetry configures optional trace export.
	Telemetry telemetry.Config `yaml:"telemetry"`

	// Modules maps module IDs to their raw YAML configuration.
	// Keys must match registered module IDs (e.g. "gateway.http").
	Modules map[string]yaml.Node `yaml:"modules"`
}

// AdmissionConfig groups the two admission counters.
type AdmissionConfig struct {
	RateLimit  admission.RateLimitConfig  `yaml:"rate_limit"`
	TokenQuota admission.TokenQuotaConfig `yaml:"token_quota"`
}
