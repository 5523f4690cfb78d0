// File: internal/services/ai_service.go
package services

import (
	"context"
	"strings"

	"github.com/ayazdoruck/pahiy-ai/internal/services/ai"
)

// AIService is the completion collaborator used by the chat flow. It wraps
// the configured provider with the bounded call timeout; everything else
// about the upstream service is opaque.
type AIService struct {
	provider ai.CompletionProvider
	config   *ai.Config
	logger   Logger
}

func NewAIService(provider ai.CompletionProvider, config *ai.Config, logger Logger) (*AIService, error) {
	if provider == nil {
		return nil, ai.NewConfigError("completion provider is required")
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &AIService{provider: provider, config: config, logger: logger}, nil
}

// GetCompletion returns the model's reply for prompt, trimmed of
// surrounding whitespace.
func (s *AIService) GetCompletion(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	reply, err := s.provider.GetCompletion(ctx, s.config.Model, prompt)
	if err != nil {
		s.logger.Error("completion request failed", "model", s.config.Model, "error", err)
		return "", err
	}

	return strings.TrimSpace(reply), nil
}

// Model reports the configured model name, surfaced by the health endpoint.
func (s *AIService) Model() string {
	return s.config.Model
}
