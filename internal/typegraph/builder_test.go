// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package typegraph

import (
	"testing"

	"github.com/dacolabs/typegen/internal/typenames"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_PrimitivesAreInterned(t *testing.T) {
	b := NewBuilder()
	assert.Equal(t, b.Primitive(KindInteger), b.Primitive(KindInteger))
	assert.NotEqual(t, b.Primitive(KindInteger), b.Primitive(KindDouble))
	assert.Equal(t, b.StringType(typenames.Names{}, nil), b.Primitive(KindString))
	assert.NotEqual(t, b.StringSubtype(StringDate), b.Primitive(KindString))
}

func TestBuilder_ObjectDedup(t *testing.T) {
	b := NewBuilder()
	i := b.Primitive(KindInteger)
	s := b.Primitive(KindString)

	a := b.ObjectType(typenames.Make("a", true), []Property{{Name: "x", Type: i}, {Name: "y", Type: s}})
	c := b.ObjectType(typenames.Make("c", true), []Property{{Name: "x", Type: i}, {Name: "y", Type: s}})
	swapped := b.ObjectType(typenames.Names{}, []Property{{Name: "y", Type: s}, {Name: "x", Type: i}})

	assert.Equal(t, a, c)
	assert.NotEqual(t, a, swapped, "property order is part of identity")

	g := b.Finish()
	assert.Equal(t, []string{"a", "c"}, g.Names(a).Base)
}

func TestBuilder_EnumIdentityIncludesCounts(t *testing.T) {
	b := NewBuilder()
	e1 := b.StringType(typenames.Names{}, []CaseCount{{Case: "a", Count: 2}, {Case: "b", Count: 1}})
	e2 := b.StringType(typenames.Names{}, []CaseCount{{Case: "a", Count: 2}, {Case: "b", Count: 1}})
	e3 := b.StringType(typenames.Names{}, []CaseCount{{Case: "a", Count: 1}, {Case: "b", Count: 1}})

	assert.Equal(t, e1, e2)
	assert.NotEqual(t, e1, e3)
	assert.Equal(t, KindEnum, b.Type(e1).Kind)
}

func TestBuilder_UnionIsOrderInsensitive(t *testing.T) {
	b := NewBuilder()
	i := b.Primitive(KindInteger)
	s := b.Primitive(KindString)
	n := b.Primitive(KindNull)

	u1 := b.UnionType(typenames.Names{}, []TypeRef{i, s, n})
	u2 := b.UnionType(typenames.Names{}, []TypeRef{n, s, i, s})
	assert.Equal(t, u1, u2)

	nested := b.UnionType(typenames.Names{}, []TypeRef{b.UnionType(typenames.Names{}, []TypeRef{i, s}), n})
	assert.Equal(t, u1, nested, "nested unions are flattened")

	assert.Equal(t, i, b.UnionType(typenames.Names{}, []TypeRef{i, i}))
	assert.Equal(t, b.Primitive(KindAny), b.UnionType(typenames.Names{}, nil))
}

func TestBuilder_MakeNullable(t *testing.T) {
	b := NewBuilder()
	i := b.Primitive(KindInteger)

	ni := b.MakeNullable(i, typenames.Names{})
	assert.Equal(t, KindUnion, b.Type(ni).Kind)
	assert.Equal(t, ni, b.MakeNullable(ni, typenames.Names{}), "already nullable")

	n := b.Primitive(KindNull)
	assert.Equal(t, n, b.MakeNullable(n, typenames.Names{}))

	g := b.Finish()
	inner, ok := g.Nullable(ni)
	require.True(t, ok)
	assert.Equal(t, i, inner)
	assert.True(t, g.IsNullable(ni))
	assert.False(t, g.IsNullable(i))
}

func TestBuilder_ReserveObjectAllowsCycles(t *testing.T) {
	b := NewBuilder()
	node := b.ReserveObject(typenames.Make("Node", false))
	next := b.MakeNullable(node, typenames.Names{})
	b.SetObjectProperties(node, []Property{{Name: "next", Type: next}})
	b.AddTopLevel("Node", node)

	g := b.Finish()
	assert.Equal(t, []TypeRef{next}, g.Children(node))
	assert.Contains(t, g.Children(next), node)

	var seen []TypeRef
	for r := range g.All(g.TopLevelTypes()...) {
		seen = append(seen, r)
	}
	assert.Len(t, seen, 3, "node, nullable union, null")
}

func TestBuilder_PanicsAfterFinish(t *testing.T) {
	b := NewBuilder()
	b.Finish()
	assert.Panics(t, func() { b.Primitive(KindBool) })
	assert.Panics(t, func() { b.Finish() })
}

func TestGraph_TopLevels(t *testing.T) {
	b := NewBuilder()
	i := b.Primitive(KindInteger)
	s := b.Primitive(KindString)
	b.AddTopLevel("First", i)
	b.AddTopLevel("Second", s)

	g := b.Finish()
	assert.Equal(t, []TopLevel{{Name: "First", Type: i}, {Name: "Second", Type: s}}, g.TopLevels())
	assert.Equal(t, []TypeRef{i, s}, g.TopLevelTypes())
	assert.Equal(t, "First", g.Names(i).Combined())
	assert.Equal(t, 2, g.Len())
}
