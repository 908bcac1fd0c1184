// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package types

// ObjectMethodNames is the set of universal object-method names that
// the exclusion policy filters out of function members.
var ObjectMethodNames = map[string]bool{
	"equals":    true,
	"hashCode":  true,
	"finalize":  true,
	"wait":      true,
	"notify":    true,
	"notifyAll": true,
	"toString":  true,
	"clone":     true,
	"getClass":  true,
}

// Policy controls which nodes a comparison visits and how constructors
// are annotated. Policies are immutable values; derivation methods
// return copies.
//
// Implements: prd001-decl-model R3.
type Policy struct {
	// CheckPrimaryConstructors prefixes primary constructors with a
	// marker comment so primary-status changes show up in diffs.
	CheckPrimaryConstructors bool

	// IncludeObjectMethods includes functions whose name is in
	// ObjectMethodNames; when false they are skipped.
	IncludeObjectMethods bool

	// RecurseInto decides, by qualified name, whether a nested package
	// is expanded. A rejected package is entirely absent from the
	// output. Nil means always recurse.
	RecurseInto func(qualifiedName string) bool
}

// ExcludeObjectMethods is the default policy: object methods are
// filtered out, primary constructors are not marked, and every package
// is expanded.
var ExcludeObjectMethods = Policy{}

// Recursive includes object methods and expands every package.
var Recursive = Policy{IncludeObjectMethods: true}

// WithRecursionFilter returns a copy of the policy with the given
// recursion filter.
func (p Policy) WithRecursionFilter(recurseInto func(qualifiedName string) bool) Policy {
	p.RecurseInto = recurseInto
	return p
}

// WithCheckPrimaryConstructors returns a copy of the policy with the
// primary-constructor marker enabled or disabled.
func (p Policy) WithCheckPrimaryConstructors(check bool) Policy {
	p.CheckPrimaryConstructors = check
	return p
}

// Recurses reports whether the policy expands the package with the
// given qualified name.
func (p Policy) Recurses(qualifiedName string) bool {
	if p.RecurseInto == nil {
		return true
	}
	return p.RecurseInto(qualifiedName)
}
