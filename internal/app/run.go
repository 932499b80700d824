package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/briandowns/spinner"

	"github.com/hoanghonghuy/aicommit/internal/ai"
	"github.com/hoanghonghuy/aicommit/internal/commitmsg"
	"github.com/hoanghonghuy/aicommit/internal/config"
	"github.com/hoanghonghuy/aicommit/internal/gitx"
	"github.com/hoanghonghuy/aicommit/internal/openai"
	"github.com/hoanghonghuy/aicommit/internal/prompt"
	"github.com/hoanghonghuy/aicommit/internal/ui"
)

// ErrNoMessage is returned when the provider produced nothing usable.
// The diagnostic has already been printed.
var ErrNoMessage = errors.New("no commit message generated")

const maxDiffSize = 100 * 1024 // 100KB

var defaultIgnores = []string{
	"go.sum", "package-lock.json", "yarn.lock", "pnpm-lock.yaml", "Cargo.lock",
	"*.map", "*.svg", "*.min.js", "*.min.css",
}

type Config struct {
	Command string // suggest | all | dump-request | config | install-hook

	RepoArg string

	Provider string // resolved provider name
	Model    string // flag override, empty means config/env/provider default

	File       config.FileConfig
	ConfigPath string

	PromptPath string
	Timeout    time.Duration

	HookFile string // write the message here instead of committing
	Yes      bool   // commit without asking
}

func Run(ctx context.Context, cfg Config, log *ui.Logger) error {
	switch cfg.Command {
	case "config":
		return runConfig(cfg)
	case "install-hook":
		return InstallHook(ctx, cfg.RepoArg)
	}

	repoRoot, err := gitx.ResolveRepoRoot(cfg.RepoArg)
	if err != nil {
		return err
	}

	systemPrompt, err := prompt.Load(cfg.PromptPath)
	if err != nil {
		return err
	}

	store := config.NewStore(cfg.File)
	diffs := stagedDiff{root: repoRoot, ignores: append(append([]string{}, defaultIgnores...), cfg.File.IgnoredFiles...)}

	switch cfg.Command {
	case "dump-request":
		gen, err := newGenerator(cfg, store, diffs, systemPrompt, log)
		if err != nil {
			return err
		}
		return dumpRequest(ctx, os.Stdout, repoRoot, gen)

	case "all":
		return runAll(ctx, cfg, store, diffs, systemPrompt, log)

	case "suggest", "":
		gen, err := newGenerator(cfg, store, diffs, systemPrompt, log)
		if err != nil {
			return err
		}
		return suggest(ctx, repoRoot, gen, cfg)

	default:
		return fmt.Errorf("unknown command %s (use suggest | all | dump-request | config | install-hook)", cfg.Command)
	}
}

// resolveSpec finds the provider endpoint, honouring a base_url override.
// Unknown names are accepted when a base URL is configured for them.
func resolveSpec(name string, store *config.Store) (ai.Spec, error) {
	override := store.BaseURL(name)
	spec, ok := ai.Lookup(name)
	if !ok {
		if override == "" {
			return ai.Spec{}, fmt.Errorf("unknown provider: %s (built-in: %s; set %s for others)",
				name, strings.Join(ai.Names(), ", "), config.EnvName(name, "BASE_URL"))
		}
		spec = ai.Spec{Name: strings.ToLower(name)}
	}
	return spec.WithEndpoint(override), nil
}

func newGenerator(cfg Config, store *config.Store, diffs commitmsg.DiffProvider, systemPrompt string, log *ui.Logger) (*commitmsg.Generator, error) {
	spec, err := resolveSpec(cfg.Provider, store)
	if err != nil {
		return nil, err
	}
	var prefs commitmsg.ConfigProvider = store
	if strings.TrimSpace(cfg.Model) != "" {
		prefs = modelOverride{ConfigProvider: store, model: cfg.Model}
	}
	return &commitmsg.Generator{
		Spec:    spec,
		Config:  prefs,
		Diffs:   diffs,
		Prompt:  systemPrompt,
		Timeout: cfg.Timeout,
		Logger:  log,
	}, nil
}

// modelOverride pins the model chosen on the command line.
type modelOverride struct {
	commitmsg.ConfigProvider
	model string
}

func (m modelOverride) Model(string) string { return m.model }

// stagedDiff implements commitmsg.DiffProvider over the git index.
type stagedDiff struct {
	root    string
	ignores []string
}

func (d stagedDiff) Diff(ctx context.Context) (string, error) {
	files, err := gitx.StagedFiles(ctx, d.root)
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return "", commitmsg.ErrNoChanges
	}

	kept := make([]string, 0, len(files))
	for _, f := range files {
		if shouldIgnore(f, d.ignores) {
			continue
		}
		kept = append(kept, f)
	}
	if len(kept) == 0 {
		return "", fmt.Errorf("all staged files were ignored (checked %d files)", len(files))
	}

	diff, err := gitx.StagedDiff(ctx, d.root, kept)
	if err != nil {
		return "", err
	}
	return truncateDiff(diff), nil
}

func truncateDiff(diff string) string {
	if len(diff) <= maxDiffSize {
		return diff
	}
	cut := maxDiffSize
	for cut > 0 && !utf8.RuneStart(diff[cut]) {
		cut--
	}
	return diff[:cut] + "\n...[Diff truncated due to size]..."
}

func shouldIgnore(pattern string, ignores []string) bool {
	base := filepath.Base(pattern)
	for _, ign := range ignores {
		// Simple equality
		if ign == base || ign == pattern {
			return true
		}
		// Glob match
		if matched, _ := filepath.Match(ign, base); matched {
			return true
		}
	}
	return false
}

// newSpinner writes to stderr so it never shares a line with log output on stdout.
func newSpinner(repoRoot, provider string) *spinner.Spinner {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = fmt.Sprintf(" Generating commit message for %s with %s...", gitx.RepoNameFromRoot(repoRoot), provider)
	return s
}

// generateWithSpinner runs one generation behind a spinner.
func generateWithSpinner(ctx context.Context, repoRoot string, gen *commitmsg.Generator) (string, error) {
	s := newSpinner(repoRoot, gen.Spec.Name)
	s.Start()
	msg, err := gen.Generate(ctx)
	s.Stop()

	if err != nil {
		return "", err
	}
	if msg == "" {
		return "", ErrNoMessage
	}
	return msg, nil
}

func suggest(ctx context.Context, repoRoot string, gen *commitmsg.Generator, cfg Config) error {
	for {
		commitMsg, err := generateWithSpinner(ctx, repoRoot, gen)
		if err != nil {
			return err
		}

		if cfg.HookFile != "" && cfg.Yes {
			return writeHookMessage(cfg.HookFile, commitMsg)
		}
		if cfg.Yes {
			return commit(ctx, repoRoot, commitMsg)
		}

		// Inner Confirmation Loop
	confirm:
		for {
			action, err := confirmCommitInteractive(gen.Spec.Name, commitMsg)
			if err != nil {
				return err
			}

			switch action {
			case ActionCommit:
				if cfg.HookFile != "" {
					return writeHookMessage(cfg.HookFile, commitMsg)
				}
				return commit(ctx, repoRoot, commitMsg)

			case ActionEdit:
				newMsg, err := editCommitMessageInteractive(commitMsg)
				if err != nil {
					return err
				}
				commitMsg = newMsg

			case ActionRegenerate:
				fmt.Println("Regenerating...")
				break confirm

			case ActionCancel:
				fmt.Println("Cancelled.")
				if cfg.HookFile != "" {
					return fmt.Errorf("commit cancelled by user")
				}
				return nil
			}
		}
	}
}

func commit(ctx context.Context, repoRoot, msg string) error {
	if err := gitx.Commit(ctx, repoRoot, msg); err != nil {
		return err
	}
	fmt.Println("Commit successful!")
	return nil
}

func writeHookMessage(path, msg string) error {
	if err := os.WriteFile(path, []byte(msg+"\n"), 0644); err != nil {
		return fmt.Errorf("write hook file: %w", err)
	}
	fmt.Println("Message generated for git hook.")
	return nil
}

type requestDump struct {
	Provider string             `json:"provider"`
	Endpoint string             `json:"endpoint"`
	Branch   string             `json:"branch,omitempty"`
	Body     openai.ChatRequest `json:"body"`
}

// dumpRequest prints the body that would be sent. The key is never included.
func dumpRequest(ctx context.Context, w io.Writer, repoRoot string, gen *commitmsg.Generator) error {
	diff, err := gen.Diffs.Diff(ctx)
	if err != nil {
		return err
	}
	model := gen.Spec.Model(gen.Config.Model(gen.Spec.Name))
	branch, _ := gitx.CurrentBranch(repoRoot) // omitted when unknown

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(requestDump{
		Provider: gen.Spec.Name,
		Endpoint: gen.Spec.Endpoint,
		Branch:   branch,
		Body:     openai.BuildRequest(model, gen.Prompt, diff, openai.DefaultMaxTokens),
	})
}
