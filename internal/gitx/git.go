package gitx

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

func Git(ctx context.Context, repoRoot string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", append([]string{"-C", repoRoot}, args...)...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git %v failed: %v\n%s", args, err, stderr.String())
	}
	return stdout.String(), nil
}

// StagedFiles lists the paths in the index that differ from HEAD.
func StagedFiles(ctx context.Context, repoRoot string) ([]string, error) {
	out, err := Git(ctx, repoRoot, "diff", "--staged", "--name-only")
	if err != nil {
		return nil, err
	}
	return splitNonEmptyLines(out), nil
}

// StagedDiff returns the staged diff limited to paths. No paths means no diff.
func StagedDiff(ctx context.Context, repoRoot string, paths []string) (string, error) {
	if len(paths) == 0 {
		return "", nil
	}
	args := append([]string{"diff", "--staged", "--no-color", "--"}, paths...)
	return Git(ctx, repoRoot, args...)
}

func Commit(ctx context.Context, repoRoot, message string) error {
	msg := strings.TrimSpace(message)
	if msg == "" {
		return fmt.Errorf("commit message cannot be empty")
	}
	_, err := Git(ctx, repoRoot, "commit", "-m", msg)
	return err
}

func splitNonEmptyLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	var out []string
	for _, ln := range strings.Split(s, "\n") {
		ln = strings.TrimSpace(ln)
		if ln != "" {
			out = append(out, ln)
		}
	}
	return out
}
