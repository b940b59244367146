// Package history versions the books in git so every change to the journal
// is attributable and reversible.
package history

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Author of commits made by compta.
const (
	AuthorName  = "compta"
	AuthorEmail = "compta@localhost"
)

// Init initializes a new git repository at dir.
func Init(dir string) error {
	cmd := exec.Command("git", "init", "--quiet")
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("git init: %s: %w", out, err)
	}
	return nil
}

// Commit stages paths and commits them with message. It returns the short
// commit hash, or "" when nothing changed.
func Commit(dir, message string, paths ...string) (string, error) {
	args := append([]string{"add", "--"}, paths...)
	if out, err := git(dir, args...); err != nil {
		return "", fmt.Errorf("git add: %s: %w", out, err)
	}

	if _, err := git(dir, "diff", "--cached", "--quiet"); err == nil {
		return "", nil
	}

	if out, err := git(dir,
		"-c", "user.name="+AuthorName, "-c", "user.email="+AuthorEmail,
		"commit", "--quiet", "-m", message); err != nil {
		return "", fmt.Errorf("git commit: %s: %w", out, err)
	}

	out, err := git(dir, "rev-parse", "--short", "HEAD")
	if err != nil {
		return "", fmt.Errorf("git rev-parse: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// IsRepo reports whether dir is the root of a git repository.
func IsRepo(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil
}

func git(dir string, args ...string) ([]byte, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	return cmd.CombinedOutput()
}
