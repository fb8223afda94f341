// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package gotypes

import (
	"strings"

	"github.com/dacolabs/typegen/internal/render"
	"github.com/dacolabs/typegen/internal/typegraph"
)

// Common Go acronyms that should be fully uppercased.
var acronyms = map[string]string{
	"id":   "ID",
	"url":  "URL",
	"http": "HTTP",
	"api":  "API",
	"json": "JSON",
	"xml":  "XML",
	"sql":  "SQL",
	"html": "HTML",
	"ip":   "IP",
	"tcp":  "TCP",
	"udp":  "UDP",
	"tls":  "TLS",
	"ssl":  "SSL",
	"ssh":  "SSH",
	"cpu":  "CPU",
	"uri":  "URI",
	"uuid": "UUID",
}

type resolver struct {
	breakers  map[typegraph.TypeRef]struct{}
	needsTime bool
}

func (r *resolver) PrimitiveType(k typegraph.Kind) string {
	switch k {
	case typegraph.KindBool:
		return "bool"
	case typegraph.KindInteger:
		return "int64"
	case typegraph.KindDouble:
		return "float64"
	case typegraph.KindString:
		return "string"
	default:
		return "any"
	}
}

// StringType maps date-times to time.Time, which unmarshals RFC 3339.
// Dates and times of day stay strings.
func (r *resolver) StringType(k typegraph.StringKind) string {
	if k == typegraph.StringDateTime {
		r.needsTime = true
		return "time.Time"
	}
	return "string"
}

func (r *resolver) ArrayType(elemType string) string {
	return "[]" + elemType
}

func (r *resolver) NullableType(inner string) string {
	if isIndirect(inner) {
		return inner
	}
	return "*" + inner
}

// RefType uses a pointer for direct references to cycle breakers.
func (r *resolver) RefType(name string, ref typegraph.TypeRef, direct bool) string {
	if _, ok := r.breakers[ref]; ok && direct {
		return "*" + name
	}
	return name
}

func (r *resolver) FormatFieldName(property string) string {
	return toPascalCase(property)
}

func (r *resolver) FormatCaseName(value string) string {
	return toPascalCase(value)
}

func (r *resolver) EnrichField(f *render.Field) {
	tag := f.JSONName
	if f.Nullable {
		tag += ",omitempty"
	}
	f.Tag = "`json:" + quoteTag(tag) + "`"
}

// isIndirect reports whether a Go type string already has a nil value.
func isIndirect(t string) bool {
	return strings.HasPrefix(t, "*") || strings.HasPrefix(t, "[]") || strings.HasPrefix(t, "map[") || t == "any"
}

// quoteTag quotes a struct tag value. Backquotes cannot appear in a raw
// string literal and are dropped.
func quoteTag(s string) string {
	s = strings.ReplaceAll(s, "`", "")
	s = strings.ReplaceAll(s, `\`, `\\`)
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}

// toPascalCase converts a property key to an exported Go identifier.
// It handles common Go acronyms (ID, URL, HTTP, API, JSON, XML, SQL, HTML).
func toPascalCase(s string) string {
	parts := strings.FieldsFunc(render.ToSnakeCase(s), func(r rune) bool {
		return r == '_'
	})

	var sb strings.Builder
	for _, part := range parts {
		if acronym, ok := acronyms[part]; ok {
			sb.WriteString(acronym)
		} else {
			sb.WriteString(render.ToPascalCase(part))
		}
	}

	return sb.String()
}
