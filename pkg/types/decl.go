// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package types defines shared types used across declcmp packages.
// Implements: prd001-decl-model R1 (shared types).
package types

// Kind identifies the category of a declaration node.
type Kind int

const (
	Package     Kind = iota // Package or namespace declaration
	Class                   // Class, struct, or interface declaration
	Object                  // Companion/object declaration (class-like)
	Constructor             // Constructor declaration
	Function                // Function or method declaration
	Property                // Property, field, variable, or constant
	Other                   // Anything else (type alias, annotation, ...)
)

// String returns the human-readable name of the kind.
func (k Kind) String() string {
	switch k {
	case Package:
		return "Package"
	case Class:
		return "Class"
	case Object:
		return "Object"
	case Constructor:
		return "Constructor"
	case Function:
		return "Function"
	case Property:
		return "Property"
	default:
		return "Other"
	}
}

// Scoped reports whether nodes of this kind carry child declarations
// and serialize as a brace-delimited scope.
func (k Kind) Scoped() bool {
	return k == Package || k == Class || k == Object
}

// Node is a single declaration in a symbol tree.
//
// Child slices are unordered as supplied; the serializer sorts them
// into a deterministic total order, so two semantically equal trees
// produce identical output regardless of how their producers enumerate
// members.
//
// Implements: prd001-decl-model R2.
type Node struct {
	Kind          Kind
	Name          string
	QualifiedName string // Fully-qualified name; set on Package nodes
	Signature     string // Rendered declaration text, treated as opaque
	Primary       bool   // Set on the designated primary constructor

	Constructors []*Node // Class/Object only
	Members      []*Node // Class/Object/Package
	Companions   []*Node // Companion and object sub-declarations
}

// Renderer turns a node into its signature text. The default renderer
// returns the pre-rendered Signature field; producers that defer
// rendering can plug in their own.
type Renderer func(n *Node) string

// SignatureRenderer is the default Renderer.
func SignatureRenderer(n *Node) string {
	return n.Signature
}

// LessFunc is a strict weak ordering over sibling declarations. It must
// be a deterministic total order that depends only on node content,
// never on input position.
type LessFunc func(a, b *Node) bool
