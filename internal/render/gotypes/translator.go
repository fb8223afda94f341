// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package gotypes renders Go struct type definitions with JSON tags.
package gotypes

import (
	"cmp"
	"embed"
	"fmt"
	"go/format"
	"slices"
	"text/template"

	"github.com/dacolabs/typegen/internal/declir"
	"github.com/dacolabs/typegen/internal/render"
	"github.com/dacolabs/typegen/internal/typegraph"
)

//go:embed gotypes.go.tmpl
var tmplFS embed.FS

var tmpl = template.Must(template.New("gotypes.go.tmpl").
	Funcs(render.Funcs).
	Funcs(template.FuncMap{
		"isIndirect": isIndirect,
		"ptr": func(t string) string {
			if isIndirect(t) {
				return t
			}
			return "*" + t
		},
	}).
	ParseFS(tmplFS, "gotypes.go.tmpl"))

// Target renders type graphs as Go source files.
type Target struct{}

// Name returns the target identifier.
func (t *Target) Name() string {
	return "go"
}

// FileExtension returns the file extension for Go source files.
func (t *Target) FileExtension() string {
	return ".go"
}

// Render emits a gofmt-formatted Go file declaring every top level of g.
func (t *Target) Render(g *typegraph.Graph, opts render.Options) ([]byte, error) {
	isArray := func(r typegraph.TypeRef) bool { return g.Kind(r) == typegraph.KindArray }
	isObject := func(r typegraph.TypeRef) bool { return g.Kind(r) == typegraph.KindObject }
	isNamed := func(r typegraph.TypeRef) bool { return render.IsNamed(g, r) }

	breakers, err := declir.SelectBreakers(g, isArray, isObject)
	if err != nil {
		return nil, fmt.Errorf("failed to select cycle breakers: %w", err)
	}

	ir, err := declir.Order(g, nil, g.Children, isNamed)
	if err != nil {
		return nil, fmt.Errorf("failed to order declarations: %w", err)
	}

	res := &resolver{breakers: breakers}
	data, err := render.Prepare(g, ir, render.NewNamer(g), res, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare declarations: %w", err)
	}

	data.Extra["Package"] = data.Package
	if data.Package == "" {
		data.Extra["Package"] = "types"
	}
	data.Extra["NeedsTime"] = res.needsTime
	data.Extra["NeedsJSON"] = false

	// Unions try their alternatives in kind order, so integers are
	// preferred over doubles and structured values come last.
	for i := range data.Decls {
		if data.Decls[i].Kind != render.DeclUnion {
			continue
		}
		data.Extra["NeedsJSON"] = true
		slices.SortStableFunc(data.Decls[i].Variants, func(a, b render.Variant) int {
			return cmp.Compare(a.Kind, b.Kind)
		})
	}

	src, err := render.Execute(tmpl, "gotypes.go.tmpl", data)
	if err != nil {
		return nil, err
	}

	formatted, err := format.Source(src)
	if err != nil {
		return nil, fmt.Errorf("failed to format generated source: %w", err)
	}
	return formatted, nil
}
