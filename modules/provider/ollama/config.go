package ollama

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Config holds the configuration for the Ollama provider.
type Config struct {
	BaseURL string        `yaml:"base_url"`
	Model   string        `yaml:"model"`
	Timeout time.Duration `yaml:"timeout"`
}

// defaults sets default values for unset fields. The generous timeout
// accounts for CPU-only inference on small machines.
func (c *Config) defaults() {
	if c.BaseURL == "" {
		c.BaseURL = "http://localhost:11434"
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.Model == "" {
		c.Model = "mistral"
	}
	if c.Timeout == 0 {
		c.Timeout = 120 * time.Second
	}
}

// validate returns an error if required fields are malformed.
func (c *Config) validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("provider.ollama: base_url is not a valid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("provider.ollama: base_url scheme must be http or https, got %q", u.Scheme)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("provider.ollama: timeout must not be negative")
	}
	return nil
}
