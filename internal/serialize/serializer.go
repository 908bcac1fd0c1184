// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package serialize renders a declaration tree into its canonical text
// form: depth-first, siblings in a deterministic total order, nested
// scopes delimited by braces and indented four spaces per level.
// Because both sides of a comparison are rendered through the same
// policy and ordering, byte equality of the output means structural
// equality of the trees.
//
// Implements: prd002-canonical-form R1, R2.
package serialize

import (
	"fmt"
	"sort"
	"strings"

	"github.com/petar-djukic/declcmp/internal/order"
	"github.com/petar-djukic/declcmp/pkg/types"
)

const indentUnit = "    "

const primaryMarker = "/*primary*/ "

// Config configures tree serialization.
type Config struct {
	Policy types.Policy
	Render types.Renderer // nil = types.SignatureRenderer
	Less   types.LessFunc // nil = order.Less
}

// Serialize renders the tree rooted at root. The input tree is never
// mutated; child slices are copied before sorting.
func Serialize(root *types.Node, cfg Config) (string, error) {
	if cfg.Render == nil {
		cfg.Render = types.SignatureRenderer
	}
	if cfg.Less == nil {
		cfg.Less = order.Less
	}

	var buf strings.Builder
	if err := appendDecl(&buf, root, cfg, 0, true); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// appendDecl writes one declaration and, for scoped kinds, its sorted
// children. topLevel is true only for the initial call: the root
// prints without braces and its children stay at indent 0.
func appendDecl(buf *strings.Builder, n *types.Node, cfg Config, indent int, topLevel bool) error {
	if n.Kind.Scoped() && !topLevel {
		// Blank separator line before a nested scope.
		buf.WriteString("\n")
	}

	prefix := ""
	if n.Kind == types.Constructor && n.Primary && cfg.Policy.CheckPrimaryConstructors {
		prefix = primaryMarker
	}
	writeIndent(buf, indent)
	buf.WriteString(prefix)
	buf.WriteString(cfg.Render(n))

	if !n.Kind.Scoped() {
		buf.WriteString("\n")
		return nil
	}

	childIndent := indent
	if topLevel {
		// The top-level node is the document: no enclosing braces,
		// one blank line after the signature.
		buf.WriteString("\n\n")
	} else {
		buf.WriteString(" {\n")
		childIndent = indent + 1
	}

	children, err := collectChildren(n)
	if err != nil {
		return err
	}

	sorted := make([]*types.Node, len(children))
	copy(sorted, children)
	sort.SliceStable(sorted, func(i, j int) bool { return cfg.Less(sorted[i], sorted[j]) })

	for _, child := range sorted {
		if child.Kind == types.Function && !cfg.Policy.IncludeObjectMethods && types.ObjectMethodNames[child.Name] {
			continue
		}
		if child.Kind == types.Package && !cfg.Policy.Recurses(child.QualifiedName) {
			continue
		}
		if err := appendDecl(buf, child, cfg, childIndent, false); err != nil {
			return err
		}
	}

	if !topLevel {
		writeIndent(buf, indent)
		buf.WriteString("}\n")
	}
	return nil
}

// collectChildren gathers the child declarations of a scoped node from
// its kind-appropriate sources. A scoped kind without a known source
// set is a contract violation in the tree producer.
func collectChildren(n *types.Node) ([]*types.Node, error) {
	switch n.Kind {
	case types.Class, types.Object:
		children := make([]*types.Node, 0, len(n.Constructors)+len(n.Members)+len(n.Companions))
		children = append(children, n.Constructors...)
		children = append(children, n.Members...)
		children = append(children, n.Companions...)
		return children, nil
	case types.Package:
		children := make([]*types.Node, 0, len(n.Members)+len(n.Companions))
		children = append(children, n.Members...)
		children = append(children, n.Companions...)
		return children, nil
	default:
		return nil, fmt.Errorf("%w: should be class or package, got %s (%s)", types.ErrInternal, n.Kind, n.Name)
	}
}

func writeIndent(buf *strings.Builder, level int) {
	for i := 0; i < level; i++ {
		buf.WriteString(indentUnit)
	}
}
