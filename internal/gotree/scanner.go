// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package gotree builds declaration trees from Go source, either from
// a package directory on disk or from an in-memory file set (as
// supplied by the git revision source).
// Implements: prd004-go-frontend R1 (scanner), R2 (tree builder).
package gotree

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
)

// skipDirs contains directory names that scanDir skips.
var skipDirs = map[string]bool{
	"vendor":       true,
	".git":         true,
	"testdata":     true,
	"node_modules": true,
}

// parsedFile pairs a parsed Go file with its path relative to the
// scanned root.
type parsedFile struct {
	relPath string
	file    *ast.File
}

// scanDir walks the tree rooted at dir, parses every .go file it finds
// using a bounded worker pool, and returns the parsed files keyed by
// slash-separated relative path.
//
// It skips vendor/, .git/, testdata/ and node_modules/, honors
// .gitignore patterns at the root, and excludes _test.go files: test
// declarations are not part of a package's comparable surface.
//
// Unlike a best-effort indexer, any parse error aborts the scan — a
// tree built from a partial AST would compare unequal for the wrong
// reason.
func scanDir(dir string, concurrency int) (map[string]*ast.File, error) {
	if concurrency <= 0 {
		concurrency = runtime.NumCPU()
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving directory: %w", err)
	}
	info, err := os.Stat(absDir)
	if err != nil {
		return nil, fmt.Errorf("stat directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", absDir)
	}

	ignorer := loadGitignore(absDir)

	var paths []string
	err = filepath.WalkDir(absDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip inaccessible entries
		}
		if d.IsDir() {
			if skipDirs[d.Name()] && path != absDir {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(d.Name(), ".go") || strings.HasSuffix(d.Name(), "_test.go") {
			return nil
		}
		relPath, relErr := filepath.Rel(absDir, path)
		if relErr != nil {
			relPath = path
		}
		if ignorer.isIgnored(relPath) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory: %w", err)
	}

	files := make(map[string]*ast.File, len(paths))
	if len(paths) == 0 {
		return files, nil
	}

	type parseResult struct {
		path string
		file *ast.File
		err  error
	}

	fset := token.NewFileSet()
	jobs := make(chan string, len(paths))
	results := make(chan parseResult, len(paths))

	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				f, parseErr := parser.ParseFile(fset, path, nil, parser.SkipObjectResolution)
				results <- parseResult{path: path, file: f, err: parseErr}
			}
		}()
	}

	for _, p := range paths {
		jobs <- p
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	var firstErr error
	for pr := range results {
		if pr.err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("parsing %s: %w", pr.path, pr.err)
			}
			continue
		}
		relPath, relErr := filepath.Rel(absDir, pr.path)
		if relErr != nil {
			relPath = pr.path
		}
		files[filepath.ToSlash(relPath)] = pr.file
	}
	if firstErr != nil {
		return nil, firstErr
	}

	return files, nil
}

// gitignorer provides simple .gitignore matching.
type gitignorer struct {
	patterns []string
}

// loadGitignore reads .gitignore from the root directory. If no
// .gitignore exists or it cannot be read, returns an ignorer that
// matches nothing.
func loadGitignore(root string) gitignorer {
	data, err := os.ReadFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return gitignorer{}
	}
	var patterns []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	return gitignorer{patterns: patterns}
}

// isIgnored checks whether a relative path matches any .gitignore
// pattern. This is a simplified subset of gitignore: directory
// prefixes and simple glob patterns via filepath.Match.
func (g gitignorer) isIgnored(relPath string) bool {
	for _, pattern := range g.patterns {
		dirPattern := strings.TrimSuffix(pattern, "/")

		for _, part := range strings.Split(relPath, string(filepath.Separator)) {
			if matched, _ := filepath.Match(dirPattern, part); matched {
				return true
			}
		}

		if matched, _ := filepath.Match(pattern, relPath); matched {
			return true
		}
	}
	return false
}
