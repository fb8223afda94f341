// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package cpp renders C++17 headers. Cycles are broken with forward
// declarations of structs.
package cpp

import (
	"embed"
	"fmt"
	"text/template"

	"github.com/dacolabs/typegen/internal/declir"
	"github.com/dacolabs/typegen/internal/render"
	"github.com/dacolabs/typegen/internal/typegraph"
)

//go:embed cpp.hpp.tmpl
var tmplFS embed.FS

var tmpl = template.Must(template.New("cpp.hpp.tmpl").Funcs(render.Funcs).ParseFS(tmplFS, "cpp.hpp.tmpl"))

// Target renders type graphs as C++ headers.
type Target struct{}

// Name returns the target identifier.
func (t *Target) Name() string {
	return "cpp"
}

// FileExtension returns the file extension for C++ headers.
func (t *Target) FileExtension() string {
	return ".hpp"
}

// Render emits a header declaring every top level of g.
func (t *Target) Render(g *typegraph.Graph, opts render.Options) ([]byte, error) {
	isObject := func(r typegraph.TypeRef) bool { return g.Kind(r) == typegraph.KindObject }
	isNamed := func(r typegraph.TypeRef) bool { return render.IsNamed(g, r) }

	ir, err := declir.Order(g, isObject, g.Children, isNamed)
	if err != nil {
		return nil, fmt.Errorf("failed to order declarations: %w", err)
	}

	namer := render.NewNamer(g)
	if err := checkDeclared(g, ir, namer); err != nil {
		return nil, err
	}

	data, err := render.Prepare(g, ir, namer, &resolver{ir: ir}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare declarations: %w", err)
	}

	data.Extra["Namespace"] = data.Package
	if data.Package == "" {
		data.Extra["Namespace"] = "typegen"
	}

	return render.Execute(tmpl, "cpp.hpp.tmpl", data)
}
