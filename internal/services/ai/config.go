// File: internal/services/ai/config.go
package ai

import (
	"fmt"
	"time"
)

type Config struct {
	APIKey  string
	BaseURL string
	Model   string

	// Timeout bounds a single completion call. The upstream service is the
	// only network hop in the chat path, so this is the only deadline.
	Timeout time.Duration

	// Model Parameters
	Temperature float32
	TopP        float32
}

// Validate checks the fields the service cannot run without. A missing API
// key is allowed here: production startup enforces it, and in development
// the upstream call simply fails and degrades into a visible reply.
func (c *Config) Validate() error {
	if c.Model == "" {
		return fmt.Errorf("GENAI_MODEL is required")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}

func DefaultConfig() *Config {
	return &Config{
		Timeout:     2 * time.Minute,
		Temperature: 0.1,
		TopP:        0.9,
	}
}
