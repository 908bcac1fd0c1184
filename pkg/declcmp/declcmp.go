// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package declcmp defines the public interface for declcmp, a
// canonical declaration-tree serializer and comparator for API
// snapshot testing. The node model and comparison policy live in
// pkg/types; frontends that produce trees from source are in
// internal and surfaced through the declcmp CLI.
//
// Implements: prd003-snapshot-compare R1 (public surface).
package declcmp

import (
	"github.com/petar-djukic/declcmp/internal/compare"
	"github.com/petar-djukic/declcmp/internal/serialize"
	"github.com/petar-djukic/declcmp/pkg/types"
)

// Config configures serialization and comparison. The zero value uses
// the default policy (object methods excluded, primary constructors
// unmarked, every package expanded), the signature renderer, and the
// default member order.
type Config struct {
	Policy types.Policy
	Render types.Renderer
	Less   types.LessFunc
}

// Serialize renders the tree rooted at root into its canonical text
// form. Serializing the same tree twice under the same config yields
// byte-identical text.
func Serialize(root *types.Node, cfg Config) (string, error) {
	return serialize.Serialize(root, serialize.Config{
		Policy: cfg.Policy,
		Render: cfg.Render,
		Less:   cfg.Less,
	})
}

// Compare serializes expected and actual under one config and checks
// the renderings for equality. On mismatch it returns a
// *types.MismatchError carrying both texts and a line diff.
func Compare(expected, actual *types.Node, cfg Config) error {
	return compare.Compare(expected, actual, compare.Config{
		Policy: cfg.Policy,
		Render: cfg.Render,
		Less:   cfg.Less,
	})
}

// CompareSnapshot is Compare followed by a byte-for-byte check of the
// actual rendering against the snapshot file. A missing snapshot is
// written and reported as a *types.SnapshotCreatedError so the
// generated file gets reviewed before becoming a baseline.
func CompareSnapshot(expected, actual *types.Node, snapshotPath string, cfg Config) error {
	return compare.Compare(expected, actual, compare.Config{
		Policy:       cfg.Policy,
		Render:       cfg.Render,
		Less:         cfg.Less,
		SnapshotPath: snapshotPath,
	})
}
