package main

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/hoanghonghuy/aicommit/internal/ai"
	"github.com/hoanghonghuy/aicommit/internal/app"
	"github.com/hoanghonghuy/aicommit/internal/config"
	"github.com/hoanghonghuy/aicommit/internal/openai"
	"github.com/hoanghonghuy/aicommit/internal/ui"
)

const envPrompt = "AICOMMIT_PROMPT"

type options struct {
	provider   string
	model      string
	repo       string
	configPath string
	promptPath string
	hookFile   string
	yes        bool
	timeout    time.Duration
	debug      bool
}

func newRootCmd(logger *ui.Logger) *cobra.Command {
	var opts options

	rootCmd := &cobra.Command{
		Use:   "aicommit",
		Short: "Generate a commit message for staged changes",
		Long: `aicommit sends the staged git diff to a chat-completions provider
(DeepSeek by default) and proposes a commit message you can commit,
edit or regenerate.

API keys are read from <PROVIDER>_API_KEY (e.g. DEEPSEEK_API_KEY),
a .env file in the current directory, or ~/.aicommit.json.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, "suggest", &opts, logger)
		},
	}

	bindFlags(rootCmd, &opts)

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "all",
			Short: "Ask every provider with a configured key, concurrently",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return run(cmd, "all", &opts, logger)
			},
		},
		&cobra.Command{
			Use:   "dump-request",
			Short: "Print the JSON request that would be sent (without the key)",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return run(cmd, "dump-request", &opts, logger)
			},
		},
		&cobra.Command{
			Use:   "config",
			Short: "Edit ~/.aicommit.json interactively",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return run(cmd, "config", &opts, logger)
			},
		},
		&cobra.Command{
			Use:   "install-hook",
			Short: "Install a prepare-commit-msg hook that runs aicommit",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return run(cmd, "install-hook", &opts, logger)
			},
		},
	)

	return rootCmd
}

func bindFlags(cmd *cobra.Command, opts *options) {
	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.provider, "provider", "p", "", "provider: "+joinNames())
	pf.StringVarP(&opts.model, "model", "m", "", "model name (default: provider preference)")
	pf.StringVar(&opts.repo, "repo", "", "path inside the git repository (default: current directory)")
	pf.StringVar(&opts.configPath, "config", "", "config file (default ~/.aicommit.json)")
	pf.StringVar(&opts.promptPath, "prompt", "", "system prompt file (default: built-in)")
	pf.DurationVar(&opts.timeout, "timeout", openai.DefaultTimeout, "request timeout")
	pf.BoolVar(&opts.debug, "debug", false, "verbose logging")

	cmd.Flags().StringVar(&opts.hookFile, "hook", "", "write the message to this file (prepare-commit-msg mode)")
	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "commit without asking")
}

func run(cmd *cobra.Command, command string, opts *options, logger *ui.Logger) error {
	logger.SetDebug(opts.debug)

	cfg, err := resolveConfig(cmd, command, opts)
	if err != nil {
		return err
	}
	return app.Run(cmd.Context(), cfg, logger)
}

// resolveConfig applies flag > env > file > default.
func resolveConfig(cmd *cobra.Command, command string, opts *options) (app.Config, error) {
	if err := config.LoadEnvFile(); err != nil {
		return app.Config{}, err
	}
	file, err := config.Load(opts.configPath)
	if err != nil {
		return app.Config{}, err
	}
	store := config.NewStore(file)

	timeout := opts.timeout
	if !cmd.Flags().Changed("timeout") {
		secs := config.ResolveInt(0, false, file.TimeoutSeconds, int(openai.DefaultTimeout/time.Second))
		timeout = time.Duration(secs) * time.Second
	}

	return app.Config{
		Command:    command,
		RepoArg:    opts.repo,
		Provider:   strings.ToLower(strings.TrimSpace(config.ResolveString(opts.provider, "", "", store.DefaultProvider(ai.Default)))),
		Model:      opts.model,
		File:       file,
		ConfigPath: opts.configPath,
		PromptPath: config.ResolveString(opts.promptPath, os.Getenv(envPrompt), file.PromptTemplate, ""),
		Timeout:    timeout,
		HookFile:   opts.hookFile,
		Yes:        opts.yes,
	}, nil
}

func joinNames() string {
	return strings.Join(ai.Names(), ", ")
}
