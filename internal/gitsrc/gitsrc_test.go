// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package gitsrc

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupRepo initializes a git repository in a temp dir, commits the
// given files, and returns the dir.
func setupRepo(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()

	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)

	wt, err := repo.Worktree()
	require.NoError(t, err)

	for relPath, content := range files {
		path := filepath.Join(dir, relPath)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		_, err = wt.Add(relPath)
		require.NoError(t, err)
	}

	_, err = wt.Commit("initial", &gogit.CommitOptions{
		Author: &object.Signature{Name: "test", Email: "test@example.com", When: time.Now()},
	})
	require.NoError(t, err)

	return dir
}

func TestFilesAt_Head(t *testing.T) {
	dir := setupRepo(t, map[string]string{
		"geo.go": "package geo\n\nfunc New() int { return 0 }\n",
	})

	files, err := FilesAt(dir, "HEAD")
	require.NoError(t, err)

	require.Contains(t, files, "geo.go")
	assert.Contains(t, files["geo.go"], "func New()")
}

func TestFilesAt_Subdirectory(t *testing.T) {
	dir := setupRepo(t, map[string]string{
		"pkg/geo.go": "package geo\n\nfunc New() int { return 0 }\n",
		"README.md":  "readme\n",
	})

	files, err := FilesAt(filepath.Join(dir, "pkg"), "HEAD")
	require.NoError(t, err)

	// Keys are relative to the requested directory; siblings outside
	// it are absent.
	require.Contains(t, files, "geo.go")
	assert.NotContains(t, files, "README.md")
}

func TestFilesAt_SeesCommittedNotWorkingTree(t *testing.T) {
	dir := setupRepo(t, map[string]string{
		"geo.go": "package geo\n\nfunc New() int { return 0 }\n",
	})

	// Modify the working tree after the commit.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "geo.go"),
		[]byte("package geo\n\nfunc New(x int) int { return x }\n"), 0o644))

	files, err := FilesAt(dir, "HEAD")
	require.NoError(t, err)
	assert.Contains(t, files["geo.go"], "func New() int")
	assert.NotContains(t, files["geo.go"], "func New(x int)")
}

func TestFilesAt_BadRevision(t *testing.T) {
	dir := setupRepo(t, map[string]string{"geo.go": "package geo\n"})

	_, err := FilesAt(dir, "no-such-branch")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no-such-branch")
}

func TestFilesAt_NotARepository(t *testing.T) {
	_, err := FilesAt(t.TempDir(), "HEAD")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoGit)
}
