// File: internal/services/mail/config.go
package mail

import (
	"fmt"
	"time"
)

type Config struct {
	APIKey  string
	APIURL  string
	From    string
	Timeout time.Duration
}

func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("RESEND_API_KEY is required")
	}
	if c.From == "" {
		return fmt.Errorf("MAIL_FROM is required")
	}
	return nil
}

func DefaultConfig() *Config {
	return &Config{
		APIURL:  "https://api.resend.com",
		Timeout: 30 * time.Second,
	}
}
