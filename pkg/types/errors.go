// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package types

import (
	"errors"
	"fmt"
)

// ErrInternal is returned when a node of an unrecognized kind reaches a
// branch that expects a class or package. This is a contract violation
// in the tree producer, not a comparison failure.
var ErrInternal = errors.New("internal consistency error")

// MismatchError reports that two canonical serializations differ. It
// carries both full texts so the caller can show a complete diff.
//
// Implements: prd003-snapshot-compare R2.
type MismatchError struct {
	Label    string // What differed, e.g. the snapshot file name
	Expected string
	Actual   string
	Diff     string // Line-level diff of Expected vs Actual
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%s\n%s", e.Label, e.Diff)
}

// SnapshotCreatedError reports that no snapshot existed and the actual
// serialization was recorded. The comparison still fails so a human
// reviews the generated file before it becomes a baseline.
type SnapshotCreatedError struct {
	Path string
}

func (e *SnapshotCreatedError) Error() string {
	return fmt.Sprintf("snapshot file did not exist, generated: %s", e.Path)
}
