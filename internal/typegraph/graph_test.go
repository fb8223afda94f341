// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package typegraph

import (
	"testing"

	"github.com/dacolabs/typegen/internal/typenames"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// treeGraph builds node { value: integer, children: [node], parent: node? }.
func treeGraph(t *testing.T) (g *Graph, node, value, children, parent TypeRef) {
	t.Helper()
	b := NewBuilder()
	node = b.ReserveObject(typenames.Make("node", false))
	value = b.Primitive(KindInteger)
	children = b.ArrayType(node)
	parent = b.MakeNullable(node, typenames.Names{})
	b.SetObjectProperties(node, []Property{
		{Name: "value", Type: value},
		{Name: "children", Type: children},
		{Name: "parent", Type: parent},
	})
	b.AddTopLevel("node", node)
	return b.Finish(), node, value, children, parent
}

func TestGraph_Children(t *testing.T) {
	g, node, value, children, parent := treeGraph(t)

	assert.Equal(t, []TypeRef{value, children, parent}, g.Children(node))
	assert.Equal(t, []TypeRef{node}, g.Children(children))
	assert.Empty(t, g.Children(value))
	require.Len(t, g.Children(parent), 2)
	assert.Contains(t, g.Children(parent), node)
}

func TestGraph_Nullability(t *testing.T) {
	g, node, value, _, parent := treeGraph(t)

	assert.True(t, g.IsNullable(parent))
	assert.False(t, g.IsNullable(node))
	assert.False(t, g.IsNullable(value))

	assert.Equal(t, []TypeRef{node}, g.NonNullMembers(parent))
	assert.Equal(t, []TypeRef{value}, g.NonNullMembers(value))

	inner, ok := g.Nullable(parent)
	assert.True(t, ok)
	assert.Equal(t, node, inner)

	_, ok = g.Nullable(node)
	assert.False(t, ok)
}

func TestGraph_AllVisitsEachTypeOnce(t *testing.T) {
	g, node, value, children, parent := treeGraph(t)

	var seen []TypeRef
	for r := range g.All(g.TopLevelTypes()...) {
		seen = append(seen, r)
	}

	require.Len(t, seen, 5)
	assert.Equal(t, []TypeRef{node, value, children, parent}, seen[:4])
	assert.Equal(t, KindNull, g.Kind(seen[4]))
}

func TestGraph_AllStopsEarly(t *testing.T) {
	g, node, value, _, _ := treeGraph(t)

	var seen []TypeRef
	for r := range g.All(node) {
		seen = append(seen, r)
		if len(seen) == 2 {
			break
		}
	}
	assert.Equal(t, []TypeRef{node, value}, seen)
}
