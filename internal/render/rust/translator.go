// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package rust renders serde-annotated Rust types. Rust has no forward
// declarations, so cycles are broken by boxing selected structs.
package rust

import (
	"embed"
	"fmt"
	"text/template"

	"github.com/dacolabs/typegen/internal/declir"
	"github.com/dacolabs/typegen/internal/render"
	"github.com/dacolabs/typegen/internal/typegraph"
)

//go:embed rust.rs.tmpl
var tmplFS embed.FS

var tmpl = template.Must(template.New("rust.rs.tmpl").Funcs(render.Funcs).ParseFS(tmplFS, "rust.rs.tmpl"))

// Target renders type graphs as Rust modules.
type Target struct{}

// Name returns the target identifier.
func (t *Target) Name() string {
	return "rust"
}

// FileExtension returns the file extension for Rust source files.
func (t *Target) FileExtension() string {
	return ".rs"
}

// Render emits a module declaring every top level of g.
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

	data, err := render.Prepare(g, ir, render.NewNamer(g, "Self"), &resolver{breakers: breakers}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare declarations: %w", err)
	}

	return render.Execute(tmpl, "rust.rs.tmpl", data)
}
