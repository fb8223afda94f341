// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package typegraph

import (
	"iter"
	"slices"

	"github.com/dacolabs/typegen/internal/typenames"
)

// Graph is a sealed type graph. It is safe for concurrent reads.
type Graph struct {
	arena *arena
}

// TopLevels returns the named roots in registration order.
func (g *Graph) TopLevels() []TopLevel {
	return slices.Clone(g.arena.topLevels)
}

// TopLevelTypes returns the root types in registration order.
func (g *Graph) TopLevelTypes() []TypeRef {
	refs := make([]TypeRef, len(g.arena.topLevels))
	for i, tl := range g.arena.topLevels {
		refs[i] = tl.Type
	}
	return refs
}

// Type returns the node for r.
func (g *Graph) Type(r TypeRef) Type {
	return *g.arena.get(r)
}

// Kind returns the kind of r.
func (g *Graph) Kind(r TypeRef) Kind {
	return g.arena.get(r).Kind
}

// Names returns the naming hint attached to r.
func (g *Graph) Names(r TypeRef) typenames.Names {
	g.arena.get(r)
	return g.arena.names[r]
}

// Len returns the number of types in the graph.
func (g *Graph) Len() int {
	return len(g.arena.types) - 1
}

// Children returns the types directly referenced by r, in order.
func (g *Graph) Children(r TypeRef) []TypeRef {
	t := g.arena.get(r)
	switch t.Kind {
	case KindArray:
		return []TypeRef{t.Elem}
	case KindObject:
		refs := make([]TypeRef, len(t.Properties))
		for i, p := range t.Properties {
			refs[i] = p.Type
		}
		return refs
	case KindUnion:
		return slices.Clone(t.Members)
	}
	return nil
}

// IsNullable reports whether r is null or a union with a null member.
func (g *Graph) IsNullable(r TypeRef) bool {
	t := g.arena.get(r)
	switch t.Kind {
	case KindNull:
		return true
	case KindUnion:
		for _, m := range t.Members {
			if g.Kind(m) == KindNull {
				return true
			}
		}
	}
	return false
}

// NonNullMembers returns the members of a union other than null, or r itself
// for any other type.
func (g *Graph) NonNullMembers(r TypeRef) []TypeRef {
	t := g.arena.get(r)
	if t.Kind != KindUnion {
		return []TypeRef{r}
	}
	var out []TypeRef
	for _, m := range t.Members {
		if g.Kind(m) != KindNull {
			out = append(out, m)
		}
	}
	return out
}

// Nullable returns the single non-null member of a nullable union, and
// whether r is such a union.
func (g *Graph) Nullable(r TypeRef) (TypeRef, bool) {
	if g.Kind(r) != KindUnion || !g.IsNullable(r) {
		return NoType, false
	}
	members := g.NonNullMembers(r)
	if len(members) != 1 {
		return NoType, false
	}
	return members[0], true
}

// All returns an iterator over every type reachable from roots, each visited
// once in depth-first pre-order. Cycles are handled by tracking visited types.
func (g *Graph) All(roots ...TypeRef) iter.Seq[TypeRef] {
	return func(yield func(TypeRef) bool) {
		visited := make(map[TypeRef]struct{})
		g.allWithVisited(roots, yield, visited)
	}
}

func (g *Graph) allWithVisited(refs []TypeRef, yield func(TypeRef) bool, visited map[TypeRef]struct{}) bool {
	for _, r := range refs {
		if _, ok := visited[r]; ok {
			continue
		}
		visited[r] = struct{}{}
		if !yield(r) {
			return false
		}
		if !g.allWithVisited(g.Children(r), yield, visited) {
			return false
		}
	}
	return true
}
