// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package render

import (
	"fmt"

	"github.com/dacolabs/typegen/internal/declir"
	"github.com/dacolabs/typegen/internal/typegraph"
)

// prepareContext holds the state shared while resolving one file.
type prepareContext struct {
	g        *typegraph.Graph
	namer    *Namer
	resolver TypeResolver
}

// Prepare converts an ordered declaration sequence into a File ready for
// template execution. Every declared type must be named by namer.
func Prepare(g *typegraph.Graph, ir *declir.IR, namer *Namer, resolver TypeResolver, opts Options) (*File, error) {
	ctx := &prepareContext{g: g, namer: namer, resolver: resolver}

	file := &File{
		Package: opts.Package,
		Header:  opts.Header,
		Extra:   make(map[string]any),
	}

	for _, d := range ir.Declarations {
		decl, err := ctx.resolveDecl(d)
		if err != nil {
			return nil, err
		}
		file.Decls = append(file.Decls, decl)
	}

	for _, a := range namer.Aliases() {
		file.Aliases = append(file.Aliases, AliasDecl{
			Name: a.Name,
			Type: ctx.resolveType(a.Type, true),
		})
	}

	return file, nil
}

func (c *prepareContext) resolveDecl(d declir.Declaration) (Decl, error) {
	name, ok := c.namer.Name(d.Type)
	if !ok {
		return Decl{}, fmt.Errorf("type %d (%s) is declared but has no name", d.Type, c.g.Kind(d.Type))
	}

	t := c.g.Type(d.Type)
	decl := Decl{Name: name, Forward: d.Kind == declir.Forward}

	switch t.Kind {
	case typegraph.KindObject:
		decl.Kind = DeclStruct
		if !decl.Forward {
			decl.Fields = c.resolveFields(t.Properties)
		}
	case typegraph.KindEnum:
		decl.Kind = DeclEnum
		if !decl.Forward {
			decl.Cases = c.resolveCases(t.Cases)
		}
	case typegraph.KindUnion:
		decl.Kind = DeclUnion
		decl.Nullable = c.g.IsNullable(d.Type)
		if !decl.Forward {
			decl.Variants = c.resolveVariants(d.Type)
		}
	default:
		return Decl{}, fmt.Errorf("type %d of kind %s cannot be declared", d.Type, t.Kind)
	}

	return decl, nil
}

func (c *prepareContext) resolveFields(props []typegraph.Property) []Field {
	taken := make(map[string]struct{}, len(props))
	fields := make([]Field, 0, len(props))
	for _, p := range props {
		f := Field{
			Name:     uniqueName(fallback(c.resolver.FormatFieldName(p.Name), "field"), taken),
			JSONName: p.Name,
			Type:     c.resolveType(p.Type, true),
			Nullable: c.g.IsNullable(p.Type),
		}
		c.resolver.EnrichField(&f)
		fields = append(fields, f)
	}
	return fields
}

func (c *prepareContext) resolveCases(cases []typegraph.CaseCount) []Case {
	taken := make(map[string]struct{}, len(cases))
	out := make([]Case, 0, len(cases))
	for _, cc := range cases {
		out = append(out, Case{
			Name:  uniqueName(fallback(c.resolver.FormatCaseName(cc.Case), "Empty"), taken),
			Value: cc.Case,
			Count: cc.Count,
		})
	}
	return out
}

func (c *prepareContext) resolveVariants(r typegraph.TypeRef) []Variant {
	members := c.g.NonNullMembers(r)
	taken := make(map[string]struct{}, len(members))
	out := make([]Variant, 0, len(members))
	for _, m := range members {
		out = append(out, Variant{
			Name: uniqueName(c.variantName(m), taken),
			Type: c.resolveType(m, true),
			Kind: c.g.Kind(m),
		})
	}
	return out
}

func (c *prepareContext) variantName(r typegraph.TypeRef) string {
	if name, ok := c.namer.Name(r); ok {
		return name
	}
	t := c.g.Type(r)
	switch {
	case t.Kind == typegraph.KindArray:
		if name, ok := c.namer.Name(t.Elem); ok {
			return name + "Array"
		}
		return "Array"
	case t.Kind == typegraph.KindString && t.StringKind != typegraph.StringPlain:
		return ToPascalCase(t.StringKind.String())
	}
	return ToPascalCase(t.Kind.String())
}

// resolveType returns the target type string for a use of r.
func (c *prepareContext) resolveType(r typegraph.TypeRef, direct bool) string {
	if name, ok := c.namer.Name(r); ok {
		ref := c.resolver.RefType(name, r, direct)
		if c.g.IsNullable(r) {
			return c.resolver.NullableType(ref)
		}
		return ref
	}

	t := c.g.Type(r)
	switch t.Kind {
	case typegraph.KindArray:
		return c.resolver.ArrayType(c.resolveType(t.Elem, false))
	case typegraph.KindString:
		if t.StringKind != typegraph.StringPlain {
			return c.resolver.StringType(t.StringKind)
		}
	case typegraph.KindUnion:
		if inner, ok := c.g.Nullable(r); ok {
			return c.resolver.NullableType(c.resolveType(inner, direct))
		}
	}
	return c.resolver.PrimitiveType(t.Kind)
}
