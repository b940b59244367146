package history

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
}

func TestInit(t *testing.T) {
	requireGit(t)
	dir := t.TempDir()
	assert.False(t, IsRepo(dir), "empty dir should not be a repo")

	require.NoError(t, Init(dir))
	assert.True(t, IsRepo(dir))
}

func TestCommit(t *testing.T) {
	requireGit(t)
	dir := t.TempDir()
	require.NoError(t, Init(dir))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "journal.csv"), []byte("entry_id\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("untracked"), 0o644))

	hash, err := Commit(dir, "lettrage 411 A", "journal.csv")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)

	log := exec.Command("git", "log", "--format=%s|%an <%ae>", "-1")
	log.Dir = dir
	out, err := log.Output()
	require.NoError(t, err)
	assert.Contains(t, string(out), "lettrage 411 A|compta <compta@localhost>")

	tracked := exec.Command("git", "ls-files")
	tracked.Dir = dir
	out, err = tracked.Output()
	require.NoError(t, err)
	assert.Equal(t, "journal.csv\n", string(out), "only the given paths are committed")
}

func TestCommit_NothingChanged(t *testing.T) {
	requireGit(t)
	dir := t.TempDir()
	require.NoError(t, Init(dir))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "journal.csv"), []byte("x\n"), 0o644))

	_, err := Commit(dir, "first", "journal.csv")
	require.NoError(t, err)

	hash, err := Commit(dir, "second", "journal.csv")
	require.NoError(t, err)
	assert.Empty(t, hash)
}
