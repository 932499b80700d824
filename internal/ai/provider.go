package ai

import (
	"context"
)

// Provider defines the interface for a chat-completion backend.
type Provider interface {
	// GenerateCommitMessage sends the system prompt and diff and returns the raw generated text.
	GenerateCommitMessage(ctx context.Context, systemPrompt, diff string) (string, error)
}
