// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package serialize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petar-djukic/declcmp/pkg/types"
)

// testTree builds a small package: a class with a primary constructor,
// a method, and a property, plus a top-level property.
func testTree() *types.Node {
	return &types.Node{
		Kind:          types.Package,
		Name:          "test",
		QualifiedName: "test",
		Signature:     "package test",
		Members: []*types.Node{
			{
				Kind:      types.Class,
				Name:      "Foo",
				Signature: "class Foo",
				Constructors: []*types.Node{
					{Kind: types.Constructor, Name: "Foo", Signature: "constructor Foo()", Primary: true},
				},
				Members: []*types.Node{
					{Kind: types.Function, Name: "bar", Signature: "fun bar(): Unit"},
					{Kind: types.Property, Name: "x", Signature: "val x: Int"},
				},
			},
			{Kind: types.Property, Name: "top", Signature: "val top: Int"},
		},
	}
}

func TestSerialize_GoldenForm(t *testing.T) {
	text, err := Serialize(testTree(), Config{Policy: types.ExcludeObjectMethods})
	require.NoError(t, err)

	want := "package test\n" +
		"\n" +
		"val top: Int\n" +
		"\n" +
		"class Foo {\n" +
		"    constructor Foo()\n" +
		"    val x: Int\n" +
		"    fun bar(): Unit\n" +
		"}\n"
	assert.Equal(t, want, text)
}

func TestSerialize_OrderIndependence(t *testing.T) {
	permuted := testTree()
	// Reverse every child slice; output must not change.
	permuted.Members[0], permuted.Members[1] = permuted.Members[1], permuted.Members[0]
	class := permuted.Members[1]
	class.Members[0], class.Members[1] = class.Members[1], class.Members[0]

	a, err := Serialize(testTree(), Config{})
	require.NoError(t, err)
	b, err := Serialize(permuted, Config{})
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestSerialize_Idempotent(t *testing.T) {
	tree := testTree()
	cfg := Config{Policy: types.ExcludeObjectMethods.WithCheckPrimaryConstructors(true)}

	a, err := Serialize(tree, cfg)
	require.NoError(t, err)
	b, err := Serialize(tree, cfg)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestSerialize_PrimaryConstructorMarker(t *testing.T) {
	tree := testTree()

	marked, err := Serialize(tree, Config{Policy: types.ExcludeObjectMethods.WithCheckPrimaryConstructors(true)})
	require.NoError(t, err)
	assert.Contains(t, marked, "    /*primary*/ constructor Foo()\n")

	plain, err := Serialize(tree, Config{Policy: types.ExcludeObjectMethods})
	require.NoError(t, err)
	assert.NotContains(t, plain, "/*primary*/")
	assert.Contains(t, plain, "    constructor Foo()\n")
}

func TestSerialize_ObjectMethodFiltering(t *testing.T) {
	tree := &types.Node{
		Kind:      types.Package,
		Name:      "p",
		Signature: "package p",
		Members: []*types.Node{
			{
				Kind:      types.Class,
				Name:      "Bag",
				Signature: "class Bag",
				Members: []*types.Node{
					{Kind: types.Function, Name: "toString", Signature: "fun toString(): String"},
					{Kind: types.Function, Name: "equals", Signature: "fun equals(other: Any?): Boolean"},
					{Kind: types.Function, Name: "hashCode", Signature: "fun hashCode(): Int"},
				},
			},
		},
	}

	excluded, err := Serialize(tree, Config{Policy: types.ExcludeObjectMethods})
	require.NoError(t, err)
	assert.Contains(t, excluded, "class Bag {\n}\n")

	included, err := Serialize(tree, Config{Policy: types.Recursive})
	require.NoError(t, err)
	// All present, in name order.
	equalsIdx := strings.Index(included, "fun equals")
	hashIdx := strings.Index(included, "fun hashCode")
	toStringIdx := strings.Index(included, "fun toString")
	require.True(t, equalsIdx >= 0 && hashIdx >= 0 && toStringIdx >= 0)
	assert.Less(t, equalsIdx, hashIdx)
	assert.Less(t, hashIdx, toStringIdx)
}

func TestSerialize_RecursionGating(t *testing.T) {
	tree := testTree()
	tree.Members = append(tree.Members, &types.Node{
		Kind:          types.Package,
		Name:          "sub",
		QualifiedName: "test/sub",
		Signature:     "package test/sub",
		Members: []*types.Node{
			{Kind: types.Property, Name: "hidden", Signature: "val hidden: Int"},
		},
	})

	gated, err := Serialize(tree, Config{
		Policy: types.ExcludeObjectMethods.WithRecursionFilter(func(qn string) bool { return qn != "test/sub" }),
	})
	require.NoError(t, err)
	// The rejected package is entirely absent, header line included.
	assert.NotContains(t, gated, "test/sub")
	assert.NotContains(t, gated, "hidden")

	open, err := Serialize(tree, Config{Policy: types.ExcludeObjectMethods})
	require.NoError(t, err)
	assert.Contains(t, open, "package test/sub {\n    val hidden: Int\n}\n")
}

func TestSerialize_NestedObjectDeclaration(t *testing.T) {
	tree := &types.Node{
		Kind:      types.Package,
		Name:      "p",
		Signature: "package p",
		Members: []*types.Node{
			{
				Kind:      types.Class,
				Name:      "Box",
				Signature: "class Box",
				Companions: []*types.Node{
					{
						Kind:      types.Object,
						Name:      "Companion",
						Signature: "companion object",
						Members: []*types.Node{
							{Kind: types.Function, Name: "of", Signature: "fun of(): Box"},
						},
					},
				},
			},
		},
	}

	text, err := Serialize(tree, Config{})
	require.NoError(t, err)
	assert.Contains(t, text, "class Box {\n\n    companion object {\n        fun of(): Box\n    }\n}\n")
}

func TestSerialize_InputTreeNotMutated(t *testing.T) {
	tree := testTree()
	class := tree.Members[0]
	before := []*types.Node{class.Members[0], class.Members[1]}

	_, err := Serialize(tree, Config{})
	require.NoError(t, err)

	assert.Equal(t, before[0], class.Members[0])
	assert.Equal(t, before[1], class.Members[1])
}

func TestCollectChildren_UnrecognizedScopedKind(t *testing.T) {
	_, err := collectChildren(&types.Node{Kind: types.Kind(42), Name: "weird"})
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrInternal)
}
