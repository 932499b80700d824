package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/hoanghonghuy/aicommit/internal/ai"
	"github.com/hoanghonghuy/aicommit/internal/commitmsg"
	"github.com/hoanghonghuy/aicommit/internal/config"
	"github.com/hoanghonghuy/aicommit/internal/ui"
)

// suggestion is one provider's answer in the "all" command.
type suggestion struct {
	Provider string
	Message  string
	Err      error
}

// configuredProviders returns the built-in providers that have an API key, in registry order.
func configuredProviders(store *config.Store) []string {
	var names []string
	for _, n := range ai.Names() {
		if store.APIKey(n) != "" {
			names = append(names, n)
		}
	}
	return names
}

// generateAll asks every generator concurrently. Each call is independent;
// a failing provider does not cancel the others.
func generateAll(ctx context.Context, gens []*commitmsg.Generator) []suggestion {
	out := make([]suggestion, len(gens))
	var g errgroup.Group
	for i, gen := range gens {
		g.Go(func() error {
			msg, err := gen.Generate(ctx)
			out[i] = suggestion{Provider: gen.Spec.Name, Message: msg, Err: err}
			return nil
		})
	}
	_ = g.Wait()
	return out
}

func runAll(ctx context.Context, cfg Config, store *config.Store, diffs commitmsg.DiffProvider, systemPrompt string, log *ui.Logger) error {
	names := configuredProviders(store)
	if len(names) == 0 {
		return &config.ConfigError{Op: "check", Err: &config.MissingKeyError{
			Key:  "api key",
			Hint: "no provider has a key; set e.g. " + config.EnvName(ai.Default, "API_KEY"),
		}}
	}

	// the diff is read once and shared
	diff, err := diffs.Diff(ctx)
	if err != nil {
		return err
	}
	if strings.TrimSpace(diff) == "" {
		return commitmsg.ErrNoChanges
	}

	gens := make([]*commitmsg.Generator, 0, len(names))
	for _, n := range names {
		c := cfg
		c.Provider = n
		c.Model = "" // a single --model cannot apply to every provider
		gen, err := newGenerator(c, store, fixedDiff(diff), systemPrompt, log)
		if err != nil {
			return err
		}
		gens = append(gens, gen)
	}

	log.Info("Generating commit messages", "providers", strings.Join(names, ","))
	results := generateAll(ctx, gens)

	ok := 0
	for _, r := range results {
		if r.Err != nil {
			log.Error("provider failed", r.Err, "provider", r.Provider)
			continue
		}
		if r.Message == "" {
			continue
		}
		ok++
		fmt.Println(renderMessage(r.Provider, r.Message))
	}
	if ok == 0 {
		return errors.Join(ErrNoMessage, fmt.Errorf("all %d providers failed", len(results)))
	}
	return nil
}

type fixedDiff string

func (d fixedDiff) Diff(context.Context) (string, error) { return string(d), nil }
