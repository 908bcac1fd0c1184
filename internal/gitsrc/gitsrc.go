// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package gitsrc materializes a directory's files at a git revision,
// so a comparison can run the committed declaration surface against
// the working tree.
// Implements: prd006-git-source R1.
package gitsrc

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// ErrNoGit is returned when the working directory is not inside a git
// repository.
var ErrNoGit = errors.New("not a git repository")

// FilesAt returns the contents of the files under workDir at the
// given revision, keyed by slash-separated path relative to workDir.
// The enclosing repository is detected by walking up from workDir, so
// workDir may be any directory inside a work tree. rev accepts
// anything git rev-parse does (HEAD, branch, tag, hash).
func FilesAt(workDir, rev string) (map[string]string, error) {
	repo, err := gogit.PlainOpenWithOptions(workDir, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoGit, err)
	}

	subDir, err := relToRoot(repo, workDir)
	if err != nil {
		return nil, err
	}

	hash, err := repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return nil, fmt.Errorf("resolving revision %q: %w", rev, err)
	}

	commit, err := repo.CommitObject(*hash)
	if err != nil {
		return nil, fmt.Errorf("getting commit %s: %w", hash, err)
	}

	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("getting tree: %w", err)
	}

	if subDir != "" && subDir != "." {
		tree, err = tree.Tree(subDir)
		if err != nil {
			return nil, fmt.Errorf("no directory %q at %s: %w", subDir, rev, err)
		}
	}

	files := make(map[string]string)
	err = tree.Files().ForEach(func(f *object.File) error {
		contents, err := f.Contents()
		if err != nil {
			return fmt.Errorf("reading %s at %s: %w", f.Name, rev, err)
		}
		files[f.Name] = contents
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

// relToRoot returns workDir's slash-separated path relative to the
// repository's work tree root.
func relToRoot(repo *gogit.Repository, workDir string) (string, error) {
	wt, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("getting worktree: %w", err)
	}
	absDir, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}
	rel, err := filepath.Rel(wt.Filesystem.Root(), absDir)
	if err != nil {
		return "", fmt.Errorf("relating %s to worktree root: %w", absDir, err)
	}
	return path.Clean(filepath.ToSlash(rel)), nil
}
