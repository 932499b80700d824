// Package commitmsg turns the staged diff into a commit message using a chat-completions provider.
package commitmsg

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hoanghonghuy/aicommit/internal/ai"
	"github.com/hoanghonghuy/aicommit/internal/check"
	"github.com/hoanghonghuy/aicommit/internal/openai"
	"github.com/hoanghonghuy/aicommit/internal/ui"
)

var ErrNoChanges = errors.New("no staged changes. Run: git add -A")

// ConfigProvider supplies credentials and model preferences per provider name.
type ConfigProvider interface {
	APIKey(provider string) string
	Model(provider string) string
}

// DiffProvider supplies the diff text to describe.
type DiffProvider interface {
	Diff(ctx context.Context) (string, error)
}

// ProviderFactory builds the backend for a single call.
type ProviderFactory func(cfg openai.Config) ai.Provider

// Generator is stateless: key, model and diff are read on every call,
// so one Generator may be shared between goroutines.
type Generator struct {
	Spec   ai.Spec
	Config ConfigProvider
	Diffs  DiffProvider
	Prompt string // loaded once at startup

	Timeout time.Duration // openai.DefaultTimeout when zero
	Logger  *ui.Logger

	NewProvider ProviderFactory // openai.New when nil
}

// Generate returns the cleaned commit message.
//
// Missing configuration is returned as a *config.ConfigError before any request is made,
// and diff problems are returned as errors; printing those is left to the caller.
// Provider failures (network, unreadable body, malformed or unexpected JSON) are logged
// and reported as ("", nil): an empty message always means nothing usable was generated.
func (g *Generator) Generate(ctx context.Context) (string, error) {
	name := g.Spec.Name
	log := g.logger()

	key := g.Config.APIKey(name)
	if err := check.APIKeyPresent(name, key); err != nil {
		return "", err
	}
	log = log.Masked(key)

	if err := check.APIURLPresent(name, g.Spec.Endpoint); err != nil {
		return "", err
	}
	if err := check.PromptNotEmpty(g.Prompt); err != nil {
		return "", err
	}

	diff, err := g.Diffs.Diff(ctx)
	if err != nil {
		return "", fmt.Errorf("get diff: %w", err)
	}
	if strings.TrimSpace(diff) == "" {
		return "", ErrNoChanges
	}

	model := g.Spec.Model(g.Config.Model(name))
	provider := g.newProvider(openai.Config{
		Endpoint:  g.Spec.Endpoint,
		APIKey:    key,
		Model:     model,
		MaxTokens: openai.DefaultMaxTokens,
		Timeout:   g.Timeout,
	})

	log.Debug("sending diff", "provider", name, "model", model, "bytes", len(diff))
	raw, err := provider.GenerateCommitMessage(ctx, g.Prompt, diff)
	if err != nil {
		log.Error("commit message generation failed", err, "provider", name, "model", model)
		return "", nil
	}

	msg := Clean(raw)
	if msg == "" {
		log.Warn("provider returned an empty message", "provider", name, "model", model)
	}
	return msg, nil
}

// Clean trims surrounding whitespace, then strips double quotes and newlines
// from both ends. Interior characters are left alone.
func Clean(s string) string {
	return strings.Trim(strings.TrimSpace(s), "\"\n")
}

func (g *Generator) logger() *ui.Logger {
	if g.Logger == nil {
		return ui.New()
	}
	return g.Logger
}

func (g *Generator) newProvider(cfg openai.Config) ai.Provider {
	if g.NewProvider != nil {
		return g.NewProvider(cfg)
	}
	return openai.New(cfg)
}
