// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package compare

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// LineDiff renders a line-level diff of two texts. Removed lines are
// prefixed with "- ", added lines with "+ ", unchanged lines with two
// spaces.
func LineDiff(expected, actual string) string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(expected, actual)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var buf strings.Builder
	for _, d := range diffs {
		prefix := "  "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		}
		for _, line := range splitKeepNonEmpty(d.Text) {
			buf.WriteString(prefix)
			buf.WriteString(line)
			buf.WriteString("\n")
		}
	}
	return buf.String()
}

// splitKeepNonEmpty splits on newlines, dropping the empty tail that a
// trailing newline produces but keeping interior blank lines.
func splitKeepNonEmpty(s string) []string {
	lines := strings.Split(s, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
