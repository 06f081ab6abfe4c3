// Package githook installs cc-check as a git commit-msg hook.
package githook

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/storage/filesystem"
)

// HookName is the git lifecycle point cc-check hooks into.
const HookName = "commit-msg"

// BackupSuffix is appended to the hook name when an existing hook is
// preserved during installation.
const BackupSuffix = ".backup"

// Script is the hook written into the hooks directory. git invokes it
// with the path of the commit message file as $1.
const Script = `#!/bin/sh
# Installed by cc-check. Validates commit messages against the
# Conventional Commits convention. A previously installed hook was
# saved as commit-msg.backup.
exec cc-check check "$1"
`

// ErrNotARepository is returned when dir is not inside a git
// repository working tree.
var ErrNotARepository = errors.New("not in a git repository")

// open locates the repository containing dir, searching parent
// directories the way git itself does.
func open(dir string) (*git.Repository, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return nil, ErrNotARepository
	}

	if err != nil {
		return nil, fmt.Errorf("failed to open git repository: %w", err)
	}

	return repo, nil
}

// Root returns the top-level working tree directory of the repository
// containing dir. Used to locate the per-repository config file.
func Root(dir string) (string, error) {
	repo, err := open(dir)
	if err != nil {
		return "", err
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("failed to resolve working tree: %w", err)
	}

	return worktree.Filesystem.Root(), nil
}

// GitDir returns the git directory of the repository containing dir.
// For linked worktrees this is the worktree's own git dir.
func GitDir(dir string) (string, error) {
	repo, err := open(dir)
	if err != nil {
		return "", err
	}

	storage, ok := repo.Storer.(*filesystem.Storage)
	if !ok {
		return "", errors.New("repository storage is not on disk")
	}

	return storage.Filesystem().Root(), nil
}

// HooksDir returns the hooks directory of the repository containing
// dir, which is where git looks for commit-msg.
func HooksDir(dir string) (string, error) {
	gitDir, err := GitDir(dir)
	if err != nil {
		return "", err
	}

	return filepath.Join(gitDir, "hooks"), nil
}

// Install writes the commit-msg hook for the repository containing
// dir and returns the hook path.
//
// An existing hook that differs from the cc-check script is backed up
// to commit-msg.backup before being replaced; an existing backup is
// never overwritten. Installing over an identical hook is a no-op.
func Install(dir string) (string, error) {
	hooksDir, err := HooksDir(dir)
	if err != nil {
		return "", err
	}

	err = os.MkdirAll(hooksDir, 0o755)
	if err != nil {
		return "", fmt.Errorf("failed to create hooks directory: %w", err)
	}

	hookPath := filepath.Join(hooksDir, HookName)

	existing, err := os.ReadFile(hookPath)
	switch {
	case err == nil && bytes.Equal(existing, []byte(Script)):
		// Already installed.
		return hookPath, nil

	case err == nil:
		backupErr := backupHook(hookPath, existing)
		if backupErr != nil {
			return "", backupErr
		}

	case !os.IsNotExist(err):
		return "", fmt.Errorf("failed to read existing hook: %w", err)
	}

	err = os.WriteFile(hookPath, []byte(Script), 0o755)
	if err != nil {
		return "", fmt.Errorf("failed to write hook: %w", err)
	}

	return hookPath, nil
}

// backupHook preserves the content of a pre-existing hook. A backup
// from an earlier installation is kept as-is so that repeated installs
// cannot destroy the original hook.
func backupHook(hookPath string, content []byte) error {
	backupPath := hookPath + BackupSuffix

	_, err := os.Stat(backupPath)
	if err == nil {
		return nil
	}

	if !os.IsNotExist(err) {
		return fmt.Errorf("failed to check hook backup: %w", err)
	}

	err = os.WriteFile(backupPath, content, 0o755)
	if err != nil {
		return fmt.Errorf("failed to back up existing hook: %w", err)
	}

	return nil
}
