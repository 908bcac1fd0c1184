// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package compare serializes two declaration trees under one policy
// and checks the renderings for equality, optionally reconciling the
// actual rendering against a snapshot file on disk.
// Implements: prd003-snapshot-compare R1, R2, R3.
package compare

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/petar-djukic/declcmp/internal/serialize"
	"github.com/petar-djukic/declcmp/pkg/types"
)

// Config configures a comparison.
type Config struct {
	Policy types.Policy
	Render types.Renderer // nil = types.SignatureRenderer
	Less   types.LessFunc // nil = the default member order

	// SnapshotPath, when non-empty, names a golden file to reconcile
	// the actual rendering against. A missing file is written and the
	// comparison fails so the generated content gets reviewed.
	SnapshotPath string
}

// Compare renders expected and actual and checks them for equality.
// It returns nil on success, *types.MismatchError when the renderings
// (or the snapshot) differ, and *types.SnapshotCreatedError when a
// missing snapshot was recorded.
func Compare(expected, actual *types.Node, cfg Config) error {
	scfg := serialize.Config{Policy: cfg.Policy, Render: cfg.Render, Less: cfg.Less}

	expectedText, err := serialize.Serialize(expected, scfg)
	if err != nil {
		return fmt.Errorf("serializing expected tree: %w", err)
	}
	actualText, err := serialize.Serialize(actual, scfg)
	if err != nil {
		return fmt.Errorf("serializing actual tree: %w", err)
	}

	if expectedText != actualText {
		return &types.MismatchError{
			Label:    "expected and actual declarations differ",
			Expected: expectedText,
			Actual:   actualText,
			Diff:     LineDiff(expectedText, actualText),
		}
	}

	if cfg.SnapshotPath == "" {
		return nil
	}
	return checkSnapshot(cfg.SnapshotPath, actualText)
}

// checkSnapshot compares the rendering byte-for-byte against the
// snapshot file, recording the file first if it does not exist.
func checkSnapshot(path, actualText string) error {
	stored, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("creating snapshot directory: %w", err)
		}
		if err := os.WriteFile(path, []byte(actualText), 0o644); err != nil {
			return fmt.Errorf("writing snapshot %s: %w", path, err)
		}
		return &types.SnapshotCreatedError{Path: path}
	}
	if err != nil {
		return fmt.Errorf("reading snapshot %s: %w", path, err)
	}

	if string(stored) != actualText {
		return &types.MismatchError{
			Label:    fmt.Sprintf("declarations differ from snapshot %s", filepath.Base(path)),
			Expected: string(stored),
			Actual:   actualText,
			Diff:     LineDiff(string(stored), actualText),
		}
	}
	return nil
}
