package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hoanghonghuy/aicommit/internal/gitx"
)

const hookName = "prepare-commit-msg"

// InstallHook installs the prepare-commit-msg hook in the repository at repoArg (or the current one).
func InstallHook(ctx context.Context, repoArg string) error {
	repoRoot, err := gitx.ResolveRepoRoot(repoArg)
	if err != nil {
		return err
	}

	// honours core.hooksPath and linked worktrees
	out, err := gitx.Git(ctx, repoRoot, "rev-parse", "--git-path", "hooks")
	if err != nil {
		return err
	}
	hooksDir := strings.TrimSpace(out)
	if !filepath.IsAbs(hooksDir) {
		hooksDir = filepath.Join(repoRoot, hooksDir)
	}
	if err := os.MkdirAll(hooksDir, 0755); err != nil {
		return fmt.Errorf("create hooks dir: %w", err)
	}

	hookPath := filepath.Join(hooksDir, hookName)
	if _, err := os.Stat(hookPath); err == nil {
		return fmt.Errorf("hook %s already exists. Please remove it first", hookPath)
	}

	exe, err := os.Executable()
	if err != nil {
		exe = "aicommit" // fallback
	} else {
		exe, _ = filepath.Abs(exe)
	}

	if err := os.WriteFile(hookPath, []byte(hookScript(exe)), 0755); err != nil {
		return fmt.Errorf("write hook file: %w", err)
	}

	fmt.Printf("✅ Hook installed to %s\n", hookPath)
	return nil
}

func hookScript(exe string) string {
	return fmt.Sprintf(`#!/bin/sh
# aicommit hook
# Runs aicommit to fill in the commit message. Uses /dev/tty so the
# confirmation prompt works inside a hook.

COMMIT_MSG_FILE=$1
COMMIT_SOURCE=$2

# A message was already given (-m, -F, merge, squash, amend).
if [ -n "$COMMIT_SOURCE" ]; then
  exit 0
fi

echo "🤖 aicommit is analyzing changes..."
"%s" --hook "$COMMIT_MSG_FILE" < /dev/tty > /dev/tty
`, exe)
}
