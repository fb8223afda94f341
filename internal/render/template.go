// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package render

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"text/template"
)

// Funcs are the helpers available to every target template.
var Funcs = template.FuncMap{
	"join":  strings.Join,
	"quote": strconv.Quote,
	"variantTypes": func(vs []Variant) []string {
		types := make([]string, len(vs))
		for i, v := range vs {
			types[i] = v.Type
		}
		return types
	},
}

// Execute runs the named template with file as its data.
func Execute(tmpl *template.Template, name string, file *File) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, file); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.Bytes(), nil
}
