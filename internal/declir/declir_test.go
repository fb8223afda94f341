// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package declir

import (
	"testing"

	"github.com/dacolabs/typegen/internal/typegraph"
	"github.com/dacolabs/typegen/internal/typenames"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ring builds objects that each reference the next one, the last pointing
// back to the first, and registers names[entry] as the only top level.
func ring(t *testing.T, entry int, names ...string) (*typegraph.Graph, []typegraph.TypeRef) {
	t.Helper()
	b := typegraph.NewBuilder()
	refs := make([]typegraph.TypeRef, len(names))
	for i, n := range names {
		refs[i] = b.ReserveObject(typenames.Make(n, false))
	}
	for i := range refs {
		next := refs[(i+1)%len(refs)]
		b.SetObjectProperties(refs[i], []typegraph.Property{{Name: "next", Type: next}})
	}
	b.AddTopLevel(names[entry], refs[entry])
	return b.Finish(), refs
}

func only(refs ...typegraph.TypeRef) Predicate {
	return func(r typegraph.TypeRef) bool {
		for _, x := range refs {
			if x == r {
				return true
			}
		}
		return false
	}
}

func always(typegraph.TypeRef) bool { return true }

func kindsOf(ir *IR) []Declaration { return ir.Declarations }

func TestOrder_OutermostBreakerWins(t *testing.T) {
	for entry := 0; entry < 3; entry++ {
		g, refs := ring(t, entry, "A", "B", "C")
		a, b, c := refs[0], refs[1], refs[2]

		ir, err := Order(g, only(b), g.Children, always)
		require.NoError(t, err)
		require.NoError(t, ir.Validate())

		assert.Equal(t, map[typegraph.TypeRef]struct{}{b: {}}, ir.Forwarded, "entry %d", entry)

		var defined []typegraph.TypeRef
		for _, d := range ir.Declarations {
			if d.Kind == Define {
				defined = append(defined, d.Type)
			}
		}
		assert.ElementsMatch(t, []typegraph.TypeRef{a, b, c}, defined)
	}
}

func TestOrder_OutermostNotNearest(t *testing.T) {
	// Entering at A, the cycle closes with path [A, B, C]. Both B and C are
	// eligible; B is further out.
	g, refs := ring(t, 0, "A", "B", "C")
	ir, err := Order(g, only(refs[1], refs[2]), g.Children, always)
	require.NoError(t, err)
	assert.True(t, ir.IsForwarded(refs[1]))
	assert.False(t, ir.IsForwarded(refs[2]))
}

func TestOrder_ForwardSequence(t *testing.T) {
	g, refs := ring(t, 0, "A", "B", "C")
	a, b, c := refs[0], refs[1], refs[2]

	ir, err := Order(g, only(b), g.Children, always)
	require.NoError(t, err)

	want := []Declaration{
		{Kind: Forward, Type: b},
		{Kind: Define, Type: c},
		{Kind: Define, Type: b},
		{Kind: Define, Type: a},
	}
	if diff := cmp.Diff(want, kindsOf(ir)); diff != "" {
		t.Errorf("declarations mismatch (-want +got):\n%s", diff)
	}
}

func TestOrder_UnbreakableCycle(t *testing.T) {
	g, _ := ring(t, 0, "A", "B")
	ir, err := Order(g, only(), g.Children, always)
	require.ErrorIs(t, err, ErrUnbreakableCycle)
	assert.Nil(t, ir)
}

func TestOrder_NoForwardMechanism(t *testing.T) {
	g, refs := ring(t, 0, "A", "B", "C")
	ir, err := Order(g, nil, g.Children, always)
	require.NoError(t, err)
	require.NoError(t, ir.Validate())

	assert.Empty(t, ir.Forwarded)
	require.Len(t, ir.Declarations, 3)
	for _, d := range ir.Declarations {
		assert.Equal(t, Define, d.Kind)
	}
	// Post-order C, B, A reversed.
	assert.Equal(t, []typegraph.TypeRef{refs[0], refs[1], refs[2]},
		[]typegraph.TypeRef{ir.Declarations[0].Type, ir.Declarations[1].Type, ir.Declarations[2].Type})
}

func TestOrder_Deterministic(t *testing.T) {
	g, refs := ring(t, 1, "A", "B", "C", "D")
	first, err := Order(g, only(refs[0], refs[2]), g.Children, always)
	require.NoError(t, err)
	second, err := Order(g, only(refs[0], refs[2]), g.Children, always)
	require.NoError(t, err)

	if diff := cmp.Diff(first.Declarations, second.Declarations); diff != "" {
		t.Errorf("ordering is not deterministic:\n%s", diff)
	}
}

func TestOrder_DependenciesBeforeDependents(t *testing.T) {
	b := typegraph.NewBuilder()
	str := b.Primitive(typegraph.KindString)
	addr := b.ObjectType(typenames.Make("Address", false), []typegraph.Property{{Name: "street", Type: str}})
	user := b.ObjectType(typenames.Make("User", false), []typegraph.Property{{Name: "address", Type: addr}})
	order := b.ObjectType(typenames.Make("Order", false), []typegraph.Property{{Name: "user", Type: user}, {Name: "ship", Type: addr}})
	b.AddTopLevel("Order", order)
	b.AddTopLevel("User", user)
	g := b.Finish()

	isObject := func(r typegraph.TypeRef) bool { return g.Kind(r) == typegraph.KindObject }

	for _, canForward := range []Predicate{nil, isObject} {
		ir, err := Order(g, canForward, g.Children, isObject)
		require.NoError(t, err)
		require.NoError(t, ir.Validate())
		assert.Empty(t, ir.Forwarded)

		pos := make(map[typegraph.TypeRef]int)
		for i, d := range ir.Declarations {
			pos[d.Type] = i
		}
		require.Len(t, pos, 3, "the string primitive needs no declaration")
		if canForward == nil {
			// Without forward declarations the reading order is
			// dependents first, as a renderer consumes it reversed.
			assert.Less(t, pos[order], pos[user])
			assert.Less(t, pos[user], pos[addr])
		} else {
			assert.Less(t, pos[addr], pos[user])
			assert.Less(t, pos[user], pos[order])
		}
	}
}

func TestOrder_SharedBreakerForwardedOnce(t *testing.T) {
	b := typegraph.NewBuilder()
	a := b.ReserveObject(typenames.Make("A", false))
	x := b.ReserveObject(typenames.Make("X", false))
	y := b.ReserveObject(typenames.Make("Y", false))
	b.SetObjectProperties(a, []typegraph.Property{{Name: "x", Type: x}, {Name: "y", Type: y}})
	b.SetObjectProperties(x, []typegraph.Property{{Name: "a", Type: a}})
	b.SetObjectProperties(y, []typegraph.Property{{Name: "a", Type: a}})
	b.AddTopLevel("A", a)
	g := b.Finish()

	ir, err := Order(g, only(a), g.Children, always)
	require.NoError(t, err)
	require.NoError(t, ir.Validate())
	assert.Equal(t, Declaration{Kind: Forward, Type: a}, ir.Declarations[0])
	assert.Len(t, ir.Declarations, 4)
}

func TestValidate_Failures(t *testing.T) {
	r := typegraph.TypeRef(1)
	tests := []struct {
		name string
		ir   IR
	}{
		{
			name: "define before forward",
			ir: IR{
				Declarations: []Declaration{{Kind: Define, Type: r}, {Kind: Forward, Type: r}},
				Forwarded:    map[typegraph.TypeRef]struct{}{r: {}},
			},
		},
		{
			name: "missing define",
			ir: IR{
				Declarations: []Declaration{{Kind: Forward, Type: r}},
				Forwarded:    map[typegraph.TypeRef]struct{}{r: {}},
			},
		},
		{
			name: "forward not recorded",
			ir: IR{
				Declarations: []Declaration{{Kind: Forward, Type: r}, {Kind: Define, Type: r}},
			},
		},
		{
			name: "duplicate define",
			ir: IR{
				Declarations: []Declaration{{Kind: Define, Type: r}, {Kind: Define, Type: r}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.ir.Validate())
		})
	}
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "forward", Forward.String())
	assert.Equal(t, "define", Define.String())
}
