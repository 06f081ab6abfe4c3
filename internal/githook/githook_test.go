package githook_test

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/go-git/go-git/v5"

	"github.com/nfriedli/cc-check/internal/githook"
)

// initRepo is a test helper that initializes a git repository in a
// temporary directory.
func initRepo(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()

	_, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("failed to init repo: %v", err)
	}

	return dir
}

func TestInstall(t *testing.T) {
	dir := initRepo(t)

	hookPath, err := githook.Install(dir)
	if err != nil {
		t.Fatalf("Install() error = %v", err)
	}

	want := filepath.Join(dir, ".git", "hooks", githook.HookName)
	if hookPath != want {
		t.Errorf("Install() path = %q, want %q", hookPath, want)
	}

	content, err := os.ReadFile(hookPath)
	if err != nil {
		t.Fatalf("failed to read installed hook: %v", err)
	}

	if string(content) != githook.Script {
		t.Errorf("installed hook content = %q, want the cc-check script", content)
	}

	if runtime.GOOS != "windows" {
		info, statErr := os.Stat(hookPath)
		if statErr != nil {
			t.Fatalf("failed to stat hook: %v", statErr)
		}

		if info.Mode()&0o111 == 0 {
			t.Errorf("installed hook is not executable: %v", info.Mode())
		}
	}
}

func TestInstallFromSubdirectory(t *testing.T) {
	dir := initRepo(t)

	subDir := filepath.Join(dir, "sub", "dir")

	err := os.MkdirAll(subDir, 0o755)
	if err != nil {
		t.Fatalf("failed to create subdirectory: %v", err)
	}

	hookPath, err := githook.Install(subDir)
	if err != nil {
		t.Fatalf("Install() error = %v", err)
	}

	want := filepath.Join(dir, ".git", "hooks", githook.HookName)
	if hookPath != want {
		t.Errorf("Install() path = %q, want %q", hookPath, want)
	}
}

func TestInstallOutsideRepository(t *testing.T) {
	_, err := githook.Install(t.TempDir())

	if !errors.Is(err, githook.ErrNotARepository) {
		t.Errorf("Install() error = %v, want ErrNotARepository", err)
	}
}

func TestInstallBacksUpExistingHook(t *testing.T) {
	dir := initRepo(t)

	hooksDir := filepath.Join(dir, ".git", "hooks")

	err := os.MkdirAll(hooksDir, 0o755)
	if err != nil {
		t.Fatalf("failed to create hooks dir: %v", err)
	}

	oldHook := "#!/bin/sh\necho 'old hook'\n"
	hookPath := filepath.Join(hooksDir, githook.HookName)

	err = os.WriteFile(hookPath, []byte(oldHook), 0o755)
	if err != nil {
		t.Fatalf("failed to write existing hook: %v", err)
	}

	_, err = githook.Install(dir)
	if err != nil {
		t.Fatalf("Install() error = %v", err)
	}

	backup, err := os.ReadFile(hookPath + githook.BackupSuffix)
	if err != nil {
		t.Fatalf("expected backup file: %v", err)
	}

	if string(backup) != oldHook {
		t.Errorf("backup content = %q, want %q", backup, oldHook)
	}

	content, err := os.ReadFile(hookPath)
	if err != nil {
		t.Fatalf("failed to read installed hook: %v", err)
	}

	if string(content) != githook.Script {
		t.Errorf("hook was not replaced, content = %q", content)
	}
}

func TestInstallDoesNotOverwriteBackup(t *testing.T) {
	dir := initRepo(t)

	hooksDir := filepath.Join(dir, ".git", "hooks")

	err := os.MkdirAll(hooksDir, 0o755)
	if err != nil {
		t.Fatalf("failed to create hooks dir: %v", err)
	}

	originalBackup := "#!/bin/sh\necho 'the original hook'\n"
	hookPath := filepath.Join(hooksDir, githook.HookName)
	backupPath := hookPath + githook.BackupSuffix

	err = os.WriteFile(backupPath, []byte(originalBackup), 0o755)
	if err != nil {
		t.Fatalf("failed to write backup: %v", err)
	}

	err = os.WriteFile(hookPath, []byte("#!/bin/sh\necho 'newer hook'\n"), 0o755)
	if err != nil {
		t.Fatalf("failed to write existing hook: %v", err)
	}

	_, err = githook.Install(dir)
	if err != nil {
		t.Fatalf("Install() error = %v", err)
	}

	backup, err := os.ReadFile(backupPath)
	if err != nil {
		t.Fatalf("failed to read backup: %v", err)
	}

	if string(backup) != originalBackup {
		t.Errorf("backup was overwritten: %q, want %q", backup, originalBackup)
	}
}

func TestInstallTwiceIsIdempotent(t *testing.T) {
	dir := initRepo(t)

	hookPath, err := githook.Install(dir)
	if err != nil {
		t.Fatalf("first Install() error = %v", err)
	}

	_, err = githook.Install(dir)
	if err != nil {
		t.Fatalf("second Install() error = %v", err)
	}

	// Installing our own script again must not create a backup of it.
	_, err = os.Stat(hookPath + githook.BackupSuffix)
	if !os.IsNotExist(err) {
		t.Errorf("expected no backup after reinstall, stat err = %v", err)
	}
}

func TestRoot(t *testing.T) {
	dir := initRepo(t)

	subDir := filepath.Join(dir, "nested")

	err := os.MkdirAll(subDir, 0o755)
	if err != nil {
		t.Fatalf("failed to create subdirectory: %v", err)
	}

	root, err := githook.Root(subDir)
	if err != nil {
		t.Fatalf("Root() error = %v", err)
	}

	wantRoot, err := filepath.EvalSymlinks(dir)
	if err != nil {
		t.Fatalf("failed to resolve symlinks: %v", err)
	}

	gotRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		t.Fatalf("failed to resolve symlinks: %v", err)
	}

	if gotRoot != wantRoot {
		t.Errorf("Root() = %q, want %q", gotRoot, wantRoot)
	}
}

func TestGitDir(t *testing.T) {
	dir := initRepo(t)

	gitDir, err := githook.GitDir(dir)
	if err != nil {
		t.Fatalf("GitDir() error = %v", err)
	}

	if filepath.Base(gitDir) != ".git" {
		t.Errorf("GitDir() = %q, want a .git directory", gitDir)
	}
}
