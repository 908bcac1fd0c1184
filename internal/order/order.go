// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package order defines the default deterministic ordering of sibling
// declarations. Both trees in a comparison must be sorted by the same
// total order, so Less depends only on node content, never on the
// position a producer enumerated a member in.
// Implements: prd002-canonical-form R3 (member ordering).
package order

import "github.com/petar-djukic/declcmp/pkg/types"

// kindRank places constructors first, then data members, then
// functions, then nested scopes.
var kindRank = map[types.Kind]int{
	types.Constructor: 0,
	types.Property:    1,
	types.Function:    2,
	types.Object:      3,
	types.Class:       4,
	types.Package:     5,
	types.Other:       6,
}

// Less orders siblings by kind rank, then name, then rendered
// signature. The signature tie-break keeps same-named overloads in a
// fixed relative order.
func Less(a, b *types.Node) bool {
	ra, rb := kindRank[a.Kind], kindRank[b.Kind]
	if ra != rb {
		return ra < rb
	}
	if a.Name != b.Name {
		return a.Name < b.Name
	}
	return a.Signature < b.Signature
}
