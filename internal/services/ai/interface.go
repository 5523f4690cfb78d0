package ai

import "context"

// CompletionProvider handles text completions against the generative
// language backend. Implementations must treat the prompt as opaque text.
type CompletionProvider interface {
	GetCompletion(ctx context.Context, model, prompt string) (string, error)
}
