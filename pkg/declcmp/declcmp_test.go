// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package declcmp

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petar-djukic/declcmp/pkg/types"
)

func samplePkg(methodSig string) *types.Node {
	return &types.Node{
		Kind:          types.Package,
		Name:          "p",
		QualifiedName: "p",
		Signature:     "package p",
		Members: []*types.Node{
			{
				Kind:      types.Class,
				Name:      "Foo",
				Signature: "class Foo",
				Members: []*types.Node{
					{Kind: types.Function, Name: "bar", Signature: methodSig},
				},
			},
		},
	}
}

func TestSerialize_DefaultConfig(t *testing.T) {
	text, err := Serialize(samplePkg("fun bar()"), Config{})
	require.NoError(t, err)
	assert.Equal(t, "package p\n\n\nclass Foo {\n    fun bar()\n}\n", text)
}

func TestCompare_PassAndFail(t *testing.T) {
	assert.NoError(t, Compare(samplePkg("fun bar()"), samplePkg("fun bar()"), Config{}))

	err := Compare(samplePkg("fun bar()"), samplePkg("fun bar(x: Int)"), Config{})
	var mismatch *types.MismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Contains(t, mismatch.Expected, "fun bar()")
	assert.Contains(t, mismatch.Actual, "fun bar(x: Int)")
}

func TestCompareSnapshot_RecordThenMatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.txt")

	err := CompareSnapshot(samplePkg("fun bar()"), samplePkg("fun bar()"), path, Config{})
	var created *types.SnapshotCreatedError
	require.ErrorAs(t, err, &created)

	assert.NoError(t, CompareSnapshot(samplePkg("fun bar()"), samplePkg("fun bar()"), path, Config{}))
}

func TestCompare_CustomRenderer(t *testing.T) {
	upper := func(n *types.Node) string { return n.Name }

	text, err := Serialize(samplePkg("ignored"), Config{Render: upper})
	require.NoError(t, err)
	assert.Equal(t, "p\n\n\nFoo {\n    bar\n}\n", text)
}
