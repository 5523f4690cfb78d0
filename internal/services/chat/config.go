// File: internal/services/chat/config.go
package chat

import "fmt"

type Config struct {
	// History windows
	PromptHistorySize int // entries rendered into the prompt
	HistoryFetchLimit int // messages loaded from storage per send

	// Input limits
	MaxMessageLength int
	TitleMaxLength   int // auto-title truncation point
}

func (c *Config) Validate() error {
	if c.PromptHistorySize <= 0 {
		return fmt.Errorf("prompt_history_size must be positive")
	}
	if c.HistoryFetchLimit < c.PromptHistorySize {
		return fmt.Errorf("history_fetch_limit cannot be smaller than prompt_history_size")
	}
	if c.MaxMessageLength <= 0 {
		return fmt.Errorf("max_message_length must be positive")
	}
	if c.TitleMaxLength <= 0 {
		return fmt.Errorf("title_max_length must be positive")
	}
	return nil
}

func DefaultConfig() *Config {
	return &Config{
		PromptHistorySize: 10,
		HistoryFetchLimit: 20,
		MaxMessageLength:  2000,
		TitleMaxLength:    50,
	}
}
