package vcs

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/mmr-tortoise/linecut/internal/model"
)

// FileStatus is the Git state of a single file as seen by the Guard.
type FileStatus string

const (
	// StatusOutsideRepo means the file is not inside any Git work tree.
	StatusOutsideRepo FileStatus = "outside-repo"

	// StatusUntracked means the file is inside a work tree but not tracked.
	StatusUntracked FileStatus = "untracked"

	// StatusClean means the file is tracked and matches HEAD and the index.
	StatusClean FileStatus = "clean"

	// StatusModified means the file has staged or unstaged changes.
	StatusModified FileStatus = "modified"
)

// Guard checks Git state before a file is modified.
//
// It is stateless apart from the git binary name; the struct exists as a
// receiver so tests and callers can point it at a different binary.
type Guard struct {
	gitBinary string
}

// NewGuard creates a Guard that runs "git" from PATH.
func NewGuard() *Guard {
	return &Guard{gitBinary: "git"}
}

// CheckClean returns a CLIError with ExitGitError when path is a tracked
// file with uncommitted changes. Files outside a repository and untracked
// files pass, since there is no committed version to protect.
func (g *Guard) CheckClean(path string) error {
	status, err := g.Status(path)
	if err != nil {
		return err
	}
	if status == StatusModified {
		return model.NewCLIError(model.ExitGitError,
			fmt.Sprintf("%s has uncommitted changes; commit or stash them first", path))
	}
	return nil
}

// Status reports the Git state of path.
//
// It runs two commands from the file's directory:
//
//	git rev-parse --show-toplevel          (fails outside a work tree)
//	git status --porcelain -- <file>       (empty output means clean)
func (g *Guard) Status(path string) (FileStatus, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", model.WrapCLIError(model.ExitGitError, fmt.Sprintf("cannot resolve %s", path), err)
	}
	dir, base := filepath.Dir(abs), filepath.Base(abs)

	if _, err := exec.LookPath(g.gitBinary); err != nil {
		return "", model.WrapCLIError(model.ExitGitError, "git is required for the clean-file check", err)
	}

	if _, err := g.RepoRoot(dir); err != nil {
		return StatusOutsideRepo, nil
	}

	out, err := g.runGit(dir, "status", "--porcelain", "--", base)
	if err != nil {
		return "", err
	}
	return parseStatus(out), nil
}

// RepoRoot returns the top-level directory of the work tree containing dir.
func (g *Guard) RepoRoot(dir string) (string, error) {
	out, err := g.runGit(dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// parseStatus interprets `git status --porcelain` output for one file.
// The first two columns are the index and work-tree states; "??" marks
// an untracked file and "!!" an ignored one.
func parseStatus(out string) FileStatus {
	line := strings.TrimSpace(strings.SplitN(out, "\n", 2)[0])
	switch {
	case line == "":
		return StatusClean
	case strings.HasPrefix(line, "??"), strings.HasPrefix(line, "!!"):
		return StatusUntracked
	default:
		return StatusModified
	}
}

// runGit executes a git command in repoPath and returns stdout. On failure
// it returns a model.CLIError with ExitGitError that includes stderr.
func (g *Guard) runGit(repoPath string, args ...string) (string, error) {
	// -C makes git operate in the target directory regardless of our cwd.
	fullArgs := append([]string{"-C", repoPath}, args...)

	// #nosec G204: args are constructed internally, not from user input
	cmd := exec.Command(g.gitBinary, fullArgs...)

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		stderrStr := strings.TrimSpace(stderr.String())
		message := fmt.Sprintf("git %s failed", strings.Join(args, " "))
		if stderrStr != "" {
			message = fmt.Sprintf("%s: %s", message, stderrStr)
		}
		return "", model.WrapCLIError(model.ExitGitError, message, err)
	}

	return stdout.String(), nil
}
