// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package typegraph provides the structural type graph produced by inference.
//
// Types live in an arena and are addressed by TypeRef handles. The Builder
// hash-conses every request, so two structurally identical types always share
// one handle and handle equality is structural equality.
package typegraph

import "fmt"

// Kind identifies the variant of a Type.
type Kind uint8

const (
	KindAny Kind = iota
	KindNull
	KindBool
	KindInteger
	KindDouble
	KindString
	KindEnum
	KindArray
	KindObject
	KindUnion
)

var kindNames = [...]string{
	KindAny:     "any",
	KindNull:    "null",
	KindBool:    "bool",
	KindInteger: "integer",
	KindDouble:  "double",
	KindString:  "string",
	KindEnum:    "enum",
	KindArray:   "array",
	KindObject:  "object",
	KindUnion:   "union",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// IsPrimitive reports whether k has no children and no payload.
func (k Kind) IsPrimitive() bool {
	switch k {
	case KindAny, KindNull, KindBool, KindInteger, KindDouble, KindString:
		return true
	}
	return false
}

// StringKind is the subtype of a string type.
type StringKind uint8

const (
	StringPlain StringKind = iota
	StringDate
	StringTime
	StringDateTime
)

var stringKindNames = [...]string{
	StringPlain:    "string",
	StringDate:     "date",
	StringTime:     "time",
	StringDateTime: "date-time",
}

func (k StringKind) String() string {
	if int(k) < len(stringKindNames) {
		return stringKindNames[k]
	}
	return fmt.Sprintf("StringKind(%d)", k)
}

// TypeRef is a handle to a Type in a graph. The zero value is invalid.
type TypeRef uint32

// NoType is the invalid handle.
const NoType TypeRef = 0

// IsValid reports whether r refers to a type.
func (r TypeRef) IsValid() bool { return r != NoType }

// CaseCount is one enum case and the number of times it was observed.
type CaseCount struct {
	Case  string
	Count int
}

// Property is a named object member.
type Property struct {
	Name string
	Type TypeRef
}

// Type is an immutable node of the type graph.
type Type struct {
	Kind       Kind
	StringKind StringKind  // KindString only
	Cases      []CaseCount // KindEnum, in first-seen order
	Elem       TypeRef     // KindArray
	Properties []Property  // KindObject, in first-seen order
	Members    []TypeRef   // KindUnion, sorted by handle
}

// TopLevel is a named root of the graph.
type TopLevel struct {
	Name string
	Type TypeRef
}
