package app

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/hoanghonghuy/aicommit/internal/ai"
	"github.com/hoanghonghuy/aicommit/internal/config"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212")) // Pinkish

	boxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")). // Purplish
			Padding(1, 2).
			MarginBottom(1)
)

func renderMessage(provider, commitMsg string) string {
	return titleStyle.Render(fmt.Sprintf("Generated Commit Message (%s):", provider)) + "\n" +
		boxStyle.Render(strings.TrimSpace(commitMsg))
}

func runConfig(cfg Config) error {
	newCfg, ok, err := runConfigInteractive(cfg.File, cfg.Provider)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("Operation cancelled.")
		return nil
	}

	if err := config.Save(newCfg, cfg.ConfigPath); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	path := cfg.ConfigPath
	if path == "" {
		path = config.DefaultPath()
	}
	fmt.Printf("\nConfiguration saved to %s\n", path)
	return nil
}

// runConfigInteractive launches a TUI form to edit the settings of one provider
func runConfigInteractive(file config.FileConfig, provider string) (config.FileConfig, bool, error) {
	if provider == "" {
		provider = ai.Default
	}

	// first group picks the provider so the second can show its current values
	pick := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("aicommit Configuration").
				Description("Update your global settings in ~/.aicommit.json"),

			huh.NewSelect[string]().
				Title("AI Provider").
				Options(providerOptions()...).
				Value(&provider),
		),
	)
	if err := pick.Run(); err != nil {
		return file, false, err
	}

	pc := file.ProviderSettings(provider)
	apiKey := pc.APIKey
	model := pc.Model
	baseURL := pc.BaseURL
	spec, _ := ai.Lookup(provider)

	timeout := ""
	if file.TimeoutSeconds != nil {
		timeout = strconv.Itoa(*file.TimeoutSeconds)
	}
	promptTemplate := file.PromptTemplate
	ignoredFilesStr := strings.Join(file.IgnoredFiles, ", ")
	makeDefault := file.Provider == "" || file.Provider == provider

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("API Key").
				Description("Also read from "+config.EnvName(provider, "API_KEY")).
				Value(&apiKey).
				EchoMode(huh.EchoModePassword),

			huh.NewInput().
				Title("Model").
				Description("Leave empty for "+spec.DefaultModel).
				Value(&model),

			huh.NewInput().
				Title("Base URL").
				Description("Chat completions endpoint override").
				Placeholder(spec.Endpoint).
				Value(&baseURL),

			huh.NewConfirm().
				Title("Default Provider").
				Description("Use this provider when --provider is not given?").
				Value(&makeDefault),
		),

		huh.NewGroup(
			huh.NewInput().
				Title("Timeout").
				Description("Request timeout in seconds (empty for 20)").
				Value(&timeout).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					v, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil {
						return err
					}
					if v <= 0 {
						return fmt.Errorf("must be positive")
					}
					return nil
				}),

			huh.NewInput().
				Title("Prompt Template").
				Description("Path to a custom system prompt file (empty for built-in)").
				Value(&promptTemplate),

			huh.NewInput().
				Title("Ignored Files").
				Description("Glob patterns (comma separated)").
				Value(&ignoredFilesStr),
		),
	)

	if err := form.Run(); err != nil {
		return file, false, err
	}

	file.SetProvider(provider, config.ProviderConfig{
		APIKey:  strings.TrimSpace(apiKey),
		Model:   strings.TrimSpace(model),
		BaseURL: strings.TrimSpace(baseURL),
	})
	if makeDefault {
		file.Provider = provider
	}
	file.TimeoutSeconds = nil
	if v, err := strconv.Atoi(strings.TrimSpace(timeout)); err == nil {
		file.TimeoutSeconds = &v
	}
	file.PromptTemplate = strings.TrimSpace(promptTemplate)
	file.IgnoredFiles = splitList(ignoredFilesStr)

	return file, true, nil
}

func providerOptions() []huh.Option[string] {
	names := ai.Names()
	opts := make([]huh.Option[string], 0, len(names))
	for _, n := range names {
		opts = append(opts, huh.NewOption(n, n))
	}
	return opts
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Action enum for confirmation
type Action int

const (
	ActionCommit Action = iota
	ActionRegenerate
	ActionEdit
	ActionCancel
)

func confirmCommitInteractive(provider, commitMsg string) (Action, error) {
	fmt.Println()
	fmt.Println(renderMessage(provider, commitMsg))

	// Since huh Select binds to a value, we need a temp var
	var selected string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("What would you like to do?").
				Options(
					huh.NewOption("Commit (Apply)", "commit"),
					huh.NewOption("Regenerate", "regenerate"),
					huh.NewOption("Edit", "edit"),
					huh.NewOption("Cancel", "cancel"),
				).
				Value(&selected),
		),
	)

	if err := form.Run(); err != nil {
		return ActionCancel, err
	}

	switch selected {
	case "commit":
		return ActionCommit, nil
	case "edit":
		return ActionEdit, nil
	case "regenerate":
		return ActionRegenerate, nil
	default:
		return ActionCancel, nil
	}
}

func editCommitMessageInteractive(initialMsg string) (string, error) {
	content := initialMsg

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Edit Commit Message").
				Description("Modify the message below (Press Esc+Enter or standard submit key to finish)").
				Value(&content),
		),
	)

	if err := form.Run(); err != nil {
		return "", err
	}
	return content, nil
}
