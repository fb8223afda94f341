// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package render

import "github.com/dacolabs/typegen/internal/typegraph"

// File is the complete input passed to a target template.
type File struct {
	Package string
	Header  []string
	Decls   []Decl         // in declaration order
	Aliases []AliasDecl    // top levels without a declaration of their own
	Extra   map[string]any // target-specific template data
}

// DeclKind selects the shape of a declaration.
type DeclKind string

// Declaration shapes.
const (
	DeclStruct DeclKind = "struct"
	DeclEnum   DeclKind = "enum"
	DeclUnion  DeclKind = "union"
)

// Decl is one forward declaration or definition.
type Decl struct {
	Kind     DeclKind
	Forward  bool // only a forward declaration
	Name     string
	Fields   []Field   // structs, in property order
	Cases    []Case    // enums, in first-seen order
	Variants []Variant // unions, non-null members only
	Nullable bool      // unions that also admit null
}

// Field is a single property of a struct.
type Field struct {
	Name     string // target identifier (may be mutated by EnrichField)
	JSONName string // property key in the samples
	Type     string // fully resolved target type string
	Nullable bool   // the property may be null or absent
	Tag      string // target annotation, e.g. `json:"name,omitempty"`
}

// Case is one enum case.
type Case struct {
	Name  string // target identifier
	Value string // the string observed in the samples
	Count int
}

// Variant is one member of a union.
type Variant struct {
	Name string // identifier of the alternative
	Type string
	Kind typegraph.Kind
}

// AliasDecl names the type of a top level.
type AliasDecl struct {
	Name string
	Type string
}

// TypeResolver converts graph types to target-language type strings and
// naming conventions. Each target implements this interface to control how
// types map to its output format.
type TypeResolver interface {
	// PrimitiveType maps any, null, bool, integer, double and plain string.
	PrimitiveType(k typegraph.Kind) string

	// StringType maps a date, time or date-time string.
	StringType(k typegraph.StringKind) string

	// ArrayType wraps an element type string in an array type.
	ArrayType(elemType string) string

	// NullableType wraps a type string for a value that may be null.
	NullableType(inner string) string

	// RefType returns the type string for a reference to a named type.
	// direct is false when the reference sits inside an array element.
	RefType(name string, r typegraph.TypeRef, direct bool) string

	// FormatFieldName formats a property key as a field identifier.
	FormatFieldName(property string) string

	// FormatCaseName formats an enum value as a case identifier.
	FormatCaseName(value string) string

	// EnrichField applies language-specific post-processing to a resolved
	// field, such as tags or nullability annotations.
	EnrichField(f *Field)
}
