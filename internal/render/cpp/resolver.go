// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package cpp

import (
	"github.com/dacolabs/typegen/internal/declir"
	"github.com/dacolabs/typegen/internal/render"
	"github.com/dacolabs/typegen/internal/typegraph"
)

var keywords = map[string]bool{
	"auto": true, "bool": true, "break": true, "case": true, "char": true,
	"class": true, "const": true, "continue": true, "default": true,
	"delete": true, "do": true, "double": true, "else": true, "enum": true,
	"explicit": true, "export": true, "extern": true, "false": true,
	"float": true, "for": true, "friend": true, "goto": true, "if": true,
	"inline": true, "int": true, "long": true, "namespace": true, "new": true,
	"operator": true, "private": true, "protected": true, "public": true,
	"register": true, "return": true, "short": true, "signed": true,
	"sizeof": true, "static": true, "struct": true, "switch": true,
	"template": true, "this": true, "throw": true, "true": true, "try": true,
	"typedef": true, "typename": true, "union": true, "unsigned": true,
	"using": true, "virtual": true, "void": true, "volatile": true,
	"while": true,
}

type resolver struct {
	ir *declir.IR
}

func (r *resolver) PrimitiveType(k typegraph.Kind) string {
	switch k {
	case typegraph.KindNull:
		return "std::nullptr_t"
	case typegraph.KindBool:
		return "bool"
	case typegraph.KindInteger:
		return "int64_t"
	case typegraph.KindDouble:
		return "double"
	case typegraph.KindString:
		return "std::string"
	default:
		return "std::any"
	}
}

func (r *resolver) StringType(typegraph.StringKind) string {
	return "std::string"
}

func (r *resolver) ArrayType(elemType string) string {
	return "std::vector<" + elemType + ">"
}

func (r *resolver) NullableType(inner string) string {
	return "std::optional<" + inner + ">"
}

// RefType holds forward-declared structs through a shared pointer, since
// they may still be incomplete at the point of use.
func (r *resolver) RefType(name string, ref typegraph.TypeRef, _ bool) string {
	if r.ir.IsForwarded(ref) {
		return "std::shared_ptr<" + name + ">"
	}
	return name
}

func (r *resolver) FormatFieldName(property string) string {
	name := render.ToSnakeCase(property)
	if keywords[name] {
		name += "_"
	}
	return name
}

func (r *resolver) FormatCaseName(value string) string {
	return render.ToPascalCase(value)
}

func (r *resolver) EnrichField(*render.Field) {}
