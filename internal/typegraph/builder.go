// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package typegraph

import (
	"slices"
	"strconv"
	"strings"

	"github.com/dacolabs/typegen/internal/typenames"
)

// arena is the flat store shared by a Builder and the Graph it produces.
type arena struct {
	types     []Type // index 0 is the invalid handle
	names     []typenames.Names
	topLevels []TopLevel
}

func (a *arena) get(r TypeRef) *Type {
	if !r.IsValid() || int(r) >= len(a.types) {
		panic("typegraph: invalid type reference " + strconv.Itoa(int(r)))
	}
	return &a.types[r]
}

// Builder creates deduplicated type nodes.
// A Builder must not be used after Finish.
type Builder struct {
	arena    *arena
	interned map[string]TypeRef
	sealed   bool
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		arena: &arena{
			types: make([]Type, 1),
			names: make([]typenames.Names, 1),
		},
		interned: make(map[string]TypeRef),
	}
}

// Type returns the node for r.
func (b *Builder) Type(r TypeRef) Type {
	return *b.arena.get(r)
}

// Primitive returns the type of a childless kind (any, null, bool, integer,
// double or plain string).
func (b *Builder) Primitive(k Kind) TypeRef {
	if !k.IsPrimitive() {
		panic("typegraph: " + k.String() + " is not a primitive kind")
	}
	return b.intern(Type{Kind: k}, typenames.Names{})
}

// StringSubtype returns the string type of the given subtype.
func (b *Builder) StringSubtype(k StringKind) TypeRef {
	return b.intern(Type{Kind: KindString, StringKind: k}, typenames.Names{})
}

// StringType returns a plain string type when cases is nil, and an enum
// keyed by the ordered case counts otherwise.
func (b *Builder) StringType(names typenames.Names, cases []CaseCount) TypeRef {
	if cases == nil {
		return b.intern(Type{Kind: KindString}, names)
	}
	return b.intern(Type{Kind: KindEnum, Cases: slices.Clone(cases)}, names)
}

// ArrayType returns the array type with the given element type.
func (b *Builder) ArrayType(elem TypeRef) TypeRef {
	b.arena.get(elem)
	return b.intern(Type{Kind: KindArray, Elem: elem}, typenames.Names{})
}

// ObjectType returns the object type with the given ordered properties.
func (b *Builder) ObjectType(names typenames.Names, props []Property) TypeRef {
	for _, p := range props {
		b.arena.get(p.Type)
	}
	return b.intern(Type{Kind: KindObject, Properties: slices.Clone(props)}, names)
}

// ReserveObject allocates an object node whose properties are supplied later
// with SetObjectProperties. Reserved nodes are identified by handle only,
// which is what allows cyclic graphs.
func (b *Builder) ReserveObject(names typenames.Names) TypeRef {
	b.checkOpen()
	return b.add(Type{Kind: KindObject}, names)
}

// SetObjectProperties fills in a node created by ReserveObject.
func (b *Builder) SetObjectProperties(r TypeRef, props []Property) {
	b.checkOpen()
	t := b.arena.get(r)
	if t.Kind != KindObject {
		panic("typegraph: SetObjectProperties on " + t.Kind.String())
	}
	t.Properties = slices.Clone(props)
}

// UnionType returns the union of members. Nested unions are flattened and
// duplicates removed; a single remaining member is returned as is.
func (b *Builder) UnionType(names typenames.Names, members []TypeRef) TypeRef {
	var flat []TypeRef
	for _, m := range members {
		t := b.arena.get(m)
		if t.Kind == KindUnion {
			flat = append(flat, t.Members...)
		} else {
			flat = append(flat, m)
		}
	}
	slices.Sort(flat)
	flat = slices.Compact(flat)

	switch len(flat) {
	case 0:
		return b.Primitive(KindAny)
	case 1:
		b.addNames(flat[0], names)
		return flat[0]
	}
	return b.intern(Type{Kind: KindUnion, Members: flat}, names)
}

// MakeNullable returns the union of r and null. A type that already admits
// null is returned unchanged.
func (b *Builder) MakeNullable(r TypeRef, names typenames.Names) TypeRef {
	t := b.arena.get(r)
	switch t.Kind {
	case KindNull, KindAny:
		return r
	case KindUnion:
		for _, m := range t.Members {
			if b.arena.get(m).Kind == KindNull {
				return r
			}
		}
	}
	return b.UnionType(names, []TypeRef{r, b.Primitive(KindNull)})
}

// AddTopLevel registers a named root.
func (b *Builder) AddTopLevel(name string, r TypeRef) {
	b.checkOpen()
	b.arena.get(r)
	b.addNames(r, typenames.Make(name, false))
	b.arena.topLevels = append(b.arena.topLevels, TopLevel{Name: name, Type: r})
}

// Finish seals the builder and returns the graph.
func (b *Builder) Finish() *Graph {
	b.checkOpen()
	b.sealed = true
	return &Graph{arena: b.arena}
}

func (b *Builder) checkOpen() {
	if b.sealed {
		panic("typegraph: builder used after Finish")
	}
}

func (b *Builder) intern(t Type, names typenames.Names) TypeRef {
	b.checkOpen()
	sig := signature(&t)
	if r, ok := b.interned[sig]; ok {
		b.addNames(r, names)
		return r
	}
	r := b.add(t, names)
	b.interned[sig] = r
	return r
}

func (b *Builder) add(t Type, names typenames.Names) TypeRef {
	b.arena.types = append(b.arena.types, t)
	b.arena.names = append(b.arena.names, names)
	return TypeRef(len(b.arena.types) - 1)
}

func (b *Builder) addNames(r TypeRef, names typenames.Names) {
	if names.IsEmpty() {
		return
	}
	b.arena.names[r] = b.arena.names[r].Merge(names)
}

// signature canonicalizes t. Children are already interned, so their handles
// stand in for their structure.
func signature(t *Type) string {
	var sb strings.Builder
	sb.WriteString(t.Kind.String())
	switch t.Kind {
	case KindString:
		sb.WriteByte(':')
		sb.WriteString(t.StringKind.String())
	case KindEnum:
		for _, c := range t.Cases {
			sb.WriteByte('|')
			sb.WriteString(strconv.Quote(c.Case))
			sb.WriteByte('=')
			sb.WriteString(strconv.Itoa(c.Count))
		}
	case KindArray:
		sb.WriteByte(':')
		sb.WriteString(strconv.Itoa(int(t.Elem)))
	case KindObject:
		for _, p := range t.Properties {
			sb.WriteByte('|')
			sb.WriteString(strconv.Quote(p.Name))
			sb.WriteByte('=')
			sb.WriteString(strconv.Itoa(int(p.Type)))
		}
	case KindUnion:
		for _, m := range t.Members {
			sb.WriteByte('|')
			sb.WriteString(strconv.Itoa(int(m)))
		}
	}
	return sb.String()
}
