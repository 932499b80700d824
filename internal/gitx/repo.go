package gitx

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

var ErrNotRepository = errors.New("not inside a git repository. Use --repo /path/to/repo")

// ResolveRepoRoot finds the worktree root containing repoArg (or the current directory),
// walking up parent directories.
func ResolveRepoRoot(repoArg string) (string, error) {
	start := strings.TrimSpace(repoArg)
	if start == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		start = cwd
	}

	p, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(p); err != nil {
		return "", err
	}

	repo, err := gogit.PlainOpenWithOptions(p, &gogit.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if errors.Is(err, gogit.ErrRepositoryNotExists) {
		return "", ErrNotRepository
	}
	if err != nil {
		return "", err
	}

	wt, err := repo.Worktree()
	if err != nil {
		// bare repository
		return "", ErrNotRepository
	}
	return wt.Filesystem.Root(), nil
}

// CurrentBranch returns the branch HEAD points at, or "HEAD" when detached.
// A branch with no commits yet is still reported by name.
func CurrentBranch(repoRoot string) (string, error) {
	repo, err := gogit.PlainOpenWithOptions(repoRoot, &gogit.PlainOpenOptions{EnableDotGitCommonDir: true})
	if err != nil {
		return "", err
	}
	head, err := repo.Reference(plumbing.HEAD, false)
	if err != nil {
		return "", err
	}
	name := head.Name()
	if head.Type() == plumbing.SymbolicReference {
		name = head.Target()
	}
	if !name.IsBranch() {
		return "HEAD", nil
	}
	return name.Short(), nil
}

// RepoNameFromRoot is the directory name of the worktree, used in progress output.
func RepoNameFromRoot(repoRoot string) string {
	return filepath.Base(repoRoot)
}
