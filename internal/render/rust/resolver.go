// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package rust

import (
	"strconv"
	"strings"

	"github.com/dacolabs/typegen/internal/render"
	"github.com/dacolabs/typegen/internal/typegraph"
)

var keywords = map[string]bool{
	"as": true, "async": true, "await": true, "break": true, "const": true,
	"continue": true, "dyn": true, "else": true, "enum": true,
	"extern": true, "false": true, "fn": true, "for": true, "if": true,
	"impl": true, "in": true, "let": true, "loop": true, "match": true,
	"mod": true, "move": true, "mut": true, "pub": true, "ref": true,
	"return": true, "static": true, "struct": true, "trait": true,
	"true": true, "type": true, "unsafe": true, "use": true, "where": true,
	"while": true, "yield": true,
}

// pathKeywords cannot be written as raw identifiers.
var pathKeywords = map[string]bool{
	"crate": true, "self": true, "Self": true, "super": true,
}

type resolver struct {
	breakers map[typegraph.TypeRef]struct{}
}

func (r *resolver) PrimitiveType(k typegraph.Kind) string {
	switch k {
	case typegraph.KindNull:
		return "Option<serde_json::Value>"
	case typegraph.KindBool:
		return "bool"
	case typegraph.KindInteger:
		return "i64"
	case typegraph.KindDouble:
		return "f64"
	case typegraph.KindString:
		return "String"
	default:
		return "serde_json::Value"
	}
}

func (r *resolver) StringType(typegraph.StringKind) string {
	return "String"
}

func (r *resolver) ArrayType(elemType string) string {
	return "Vec<" + elemType + ">"
}

func (r *resolver) NullableType(inner string) string {
	return "Option<" + inner + ">"
}

// RefType boxes direct references to cycle breakers. References inside a
// Vec are already indirect.
func (r *resolver) RefType(name string, ref typegraph.TypeRef, direct bool) string {
	if _, ok := r.breakers[ref]; ok && direct {
		return "Box<" + name + ">"
	}
	return name
}

func (r *resolver) FormatFieldName(property string) string {
	name := render.ToSnakeCase(property)
	switch {
	case pathKeywords[name]:
		name += "_"
	case keywords[name]:
		name = "r#" + name
	}
	return name
}

func (r *resolver) FormatCaseName(value string) string {
	name := render.ToPascalCase(value)
	if pathKeywords[name] {
		name += "_"
	}
	return name
}

func (r *resolver) EnrichField(f *render.Field) {
	if strings.TrimPrefix(f.Name, "r#") != f.JSONName {
		f.Tag = "#[serde(rename = " + strconv.Quote(f.JSONName) + ")]"
	}
}
