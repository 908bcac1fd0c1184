// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package order

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/petar-djukic/declcmp/pkg/types"
)

func TestLess_KindRankBeforeName(t *testing.T) {
	ctor := &types.Node{Kind: types.Constructor, Name: "zzz"}
	prop := &types.Node{Kind: types.Property, Name: "aaa"}

	assert.True(t, Less(ctor, prop))
	assert.False(t, Less(prop, ctor))
}

func TestLess_NameWithinKind(t *testing.T) {
	a := &types.Node{Kind: types.Function, Name: "alpha"}
	b := &types.Node{Kind: types.Function, Name: "beta"}

	assert.True(t, Less(a, b))
	assert.False(t, Less(b, a))
}

func TestLess_SignatureBreaksOverloadTies(t *testing.T) {
	f1 := &types.Node{Kind: types.Function, Name: "run", Signature: "fun run(): Unit"}
	f2 := &types.Node{Kind: types.Function, Name: "run", Signature: "fun run(x: Int): Unit"}

	assert.True(t, Less(f1, f2))
	assert.False(t, Less(f2, f1))
	assert.False(t, Less(f1, f1))
}

func TestLess_DeterministicAcrossInputOrder(t *testing.T) {
	nodes := []*types.Node{
		{Kind: types.Class, Name: "C"},
		{Kind: types.Function, Name: "b"},
		{Kind: types.Constructor, Name: "C"},
		{Kind: types.Property, Name: "a"},
		{Kind: types.Function, Name: "a"},
	}

	forward := append([]*types.Node(nil), nodes...)
	backward := make([]*types.Node, len(nodes))
	for i, n := range nodes {
		backward[len(nodes)-1-i] = n
	}

	sort.SliceStable(forward, func(i, j int) bool { return Less(forward[i], forward[j]) })
	sort.SliceStable(backward, func(i, j int) bool { return Less(backward[i], backward[j]) })

	assert.Equal(t, forward, backward)
	assert.Equal(t, types.Constructor, forward[0].Kind)
	assert.Equal(t, types.Class, forward[len(forward)-1].Kind)
}
