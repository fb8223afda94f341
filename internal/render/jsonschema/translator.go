// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package jsonschema renders a JSON Schema (draft 2020-12) document with one
// $defs entry per named type.
package jsonschema

import (
	"fmt"
	"strings"

	"github.com/dacolabs/typegen/internal/declir"
	"github.com/dacolabs/typegen/internal/render"
	"github.com/dacolabs/typegen/internal/typegraph"
	"github.com/goccy/go-json"
	"github.com/google/jsonschema-go/jsonschema"
)

const draft = "https://json-schema.org/draft/2020-12/schema"

// Target renders type graphs as JSON Schema documents.
type Target struct{}

// Name returns the target identifier.
func (t *Target) Name() string {
	return "jsonschema"
}

// FileExtension returns the file extension for JSON Schema documents.
func (t *Target) FileExtension() string {
	return ".schema.json"
}

// Render emits a schema whose root validates any of the top levels.
func (t *Target) Render(g *typegraph.Graph, opts render.Options) ([]byte, error) {
	schema, err := Build(g, opts)
	if err != nil {
		return nil, err
	}

	out, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return append(out, '\n'), nil
}

// schemaBuilder holds the state shared while building one document.
type schemaBuilder struct {
	g     *typegraph.Graph
	namer *render.Namer
}

// Build returns the schema document for g.
func Build(g *typegraph.Graph, opts render.Options) (*jsonschema.Schema, error) {
	isNamed := func(r typegraph.TypeRef) bool { return render.IsNamed(g, r) }
	ir, err := declir.Order(g, nil, g.Children, isNamed)
	if err != nil {
		return nil, fmt.Errorf("failed to order declarations: %w", err)
	}

	b := &schemaBuilder{g: g, namer: render.NewNamer(g)}

	root := &jsonschema.Schema{
		Schema:  draft,
		Comment: strings.Join(opts.Header, "\n"),
		Defs:    make(map[string]*jsonschema.Schema),
	}

	if err := b.addDefs(root, ir); err != nil {
		return nil, err
	}

	var refs []*jsonschema.Schema
	for _, name := range b.namer.TopLevelNames() {
		refs = append(refs, &jsonschema.Schema{Ref: "#/$defs/" + name})
	}
	switch len(refs) {
	case 0:
	case 1:
		root.Ref = refs[0].Ref
	default:
		root.AnyOf = refs
	}

	return root, nil
}

// addDefs fills root.Defs with one entry per declaration and alias.
func (b *schemaBuilder) addDefs(root *jsonschema.Schema, ir *declir.IR) error {
	for _, d := range ir.Declarations {
		name, ok := b.namer.Name(d.Type)
		if !ok {
			return fmt.Errorf("type %d (%s) is declared but has no name", d.Type, b.g.Kind(d.Type))
		}
		root.Defs[name] = b.definition(d.Type)
	}
	for _, a := range b.namer.Aliases() {
		root.Defs[a.Name] = b.use(a.Type)
	}
	return nil
}

// definition returns the $defs body of a named type.
func (b *schemaBuilder) definition(r typegraph.TypeRef) *jsonschema.Schema {
	t := b.g.Type(r)
	switch t.Kind {
	case typegraph.KindObject:
		s := &jsonschema.Schema{
			Type:       "object",
			Properties: make(map[string]*jsonschema.Schema, len(t.Properties)),
		}
		for _, p := range t.Properties {
			s.Properties[p.Name] = b.use(p.Type)
			if !b.g.IsNullable(p.Type) {
				s.Required = append(s.Required, p.Name)
			}
		}
		return s
	case typegraph.KindEnum:
		s := &jsonschema.Schema{Type: "string"}
		for _, c := range t.Cases {
			s.Enum = append(s.Enum, c.Case)
		}
		return s
	default:
		s := &jsonschema.Schema{}
		for _, m := range b.g.NonNullMembers(r) {
			s.AnyOf = append(s.AnyOf, b.use(m))
		}
		return s
	}
}

// use returns the schema for a reference to r.
func (b *schemaBuilder) use(r typegraph.TypeRef) *jsonschema.Schema {
	if name, ok := b.namer.Name(r); ok {
		ref := &jsonschema.Schema{Ref: "#/$defs/" + name}
		if b.g.IsNullable(r) {
			return nullable(ref)
		}
		return ref
	}

	t := b.g.Type(r)
	switch t.Kind {
	case typegraph.KindAny:
		return &jsonschema.Schema{}
	case typegraph.KindNull:
		return &jsonschema.Schema{Type: "null"}
	case typegraph.KindBool:
		return &jsonschema.Schema{Type: "boolean"}
	case typegraph.KindInteger:
		return &jsonschema.Schema{Type: "integer"}
	case typegraph.KindDouble:
		return &jsonschema.Schema{Type: "number"}
	case typegraph.KindString:
		s := &jsonschema.Schema{Type: "string"}
		if t.StringKind != typegraph.StringPlain {
			s.Format = t.StringKind.String()
		}
		return s
	case typegraph.KindArray:
		return &jsonschema.Schema{Type: "array", Items: b.use(t.Elem)}
	case typegraph.KindUnion:
		if inner, ok := b.g.Nullable(r); ok {
			return nullable(b.use(inner))
		}
	}
	return &jsonschema.Schema{}
}

func nullable(s *jsonschema.Schema) *jsonschema.Schema {
	return &jsonschema.Schema{AnyOf: []*jsonschema.Schema{s, {Type: "null"}}}
}
