// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package cjson stores sample documents as compact tagged values.
//
// A Value is a 32-bit handle: the low four bits hold its Tag and the rest
// index into the owning Store. Objects are stored as flat key/value runs and
// strings are interned, so a large corpus costs little more than its distinct
// strings.
package cjson

import (
	"fmt"

	"github.com/dacolabs/typegen/internal/datetime"
)

// Tag is the discriminant of a Value.
type Tag uint8

const (
	TagNull Tag = iota
	TagFalse
	TagTrue
	TagInteger
	TagDouble
	TagInternedString
	TagUninternedString
	TagObject
	TagArray
	TagDate
	TagTime
	TagDateTime
)

var tagNames = [...]string{
	TagNull:             "null",
	TagFalse:            "false",
	TagTrue:             "true",
	TagInteger:          "integer",
	TagDouble:           "double",
	TagInternedString:   "interned-string",
	TagUninternedString: "uninterned-string",
	TagObject:           "object",
	TagArray:            "array",
	TagDate:             "date",
	TagTime:             "time",
	TagDateTime:         "date-time",
}

func (t Tag) String() string {
	if int(t) < len(tagNames) {
		return tagNames[t]
	}
	return fmt.Sprintf("Tag(%d)", t)
}

const tagBits = 4

// Value is a tagged handle into a Store.
type Value uint32

func makeValue(t Tag, index int) Value {
	return Value(uint32(index)<<tagBits | uint32(t))
}

// Tag returns the discriminant of v.
func (v Value) Tag() Tag {
	return Tag(v & (1<<tagBits - 1))
}

func (v Value) index() int {
	return int(v >> tagBits)
}

// DefaultInternLimit is the longest string, in bytes, that is interned when
// Options.InternLimit is not set.
const DefaultInternLimit = 128

// Options controls how strings are classified while building a Store.
type Options struct {
	// InferDates tags date, time and date-time literals with their own tags.
	InferDates bool
	// InternLimit is the longest string that is interned. Longer strings are
	// stored as uninterned and are never considered enum cases.
	InternLimit int
}

// Member is one key/value pair of an object.
type Member struct {
	Key   string
	Value Value
}

// Store owns the payloads of Values.
type Store struct {
	opts        Options
	strings     []string
	stringIndex map[string]int
	objects     [][]Value
	arrays      [][]Value
}

// NewStore returns an empty Store.
func NewStore(opts Options) *Store {
	if opts.InternLimit <= 0 {
		opts.InternLimit = DefaultInternLimit
	}
	return &Store{
		opts:        opts,
		stringIndex: make(map[string]int),
	}
}

// Null returns the null value.
func (s *Store) Null() Value { return makeValue(TagNull, 0) }

// Bool returns a boolean value.
func (s *Store) Bool(b bool) Value {
	if b {
		return makeValue(TagTrue, 0)
	}
	return makeValue(TagFalse, 0)
}

// Integer returns an integer value. Number payloads are not retained.
func (s *Store) Integer() Value { return makeValue(TagInteger, 0) }

// Double returns a floating point value.
func (s *Store) Double() Value { return makeValue(TagDouble, 0) }

// Str classifies and stores a string literal.
func (s *Store) Str(str string) Value {
	if s.opts.InferDates {
		switch {
		case datetime.IsDate(str):
			return makeValue(TagDate, s.intern(str))
		case datetime.IsTime(str):
			return makeValue(TagTime, s.intern(str))
		case datetime.IsDateTime(str):
			return makeValue(TagDateTime, s.intern(str))
		}
	}
	if len(str) > s.opts.InternLimit {
		s.strings = append(s.strings, str)
		return makeValue(TagUninternedString, len(s.strings)-1)
	}
	return makeValue(TagInternedString, s.intern(str))
}

// Object stores an object with the given members in order.
func (s *Store) Object(members ...Member) Value {
	flat := make([]Value, 0, 2*len(members))
	for _, m := range members {
		flat = append(flat, makeValue(TagInternedString, s.intern(m.Key)), m.Value)
	}
	s.objects = append(s.objects, flat)
	return makeValue(TagObject, len(s.objects)-1)
}

// Array stores an array with the given items.
func (s *Store) Array(items ...Value) Value {
	s.arrays = append(s.arrays, append([]Value(nil), items...))
	return makeValue(TagArray, len(s.arrays)-1)
}

// StringOf returns the text of a string-tagged value (including keys and
// date-like values).
func (s *Store) StringOf(v Value) string {
	switch v.Tag() {
	case TagInternedString, TagUninternedString, TagDate, TagTime, TagDateTime:
		return s.strings[v.index()]
	}
	panic("cjson: StringOf on " + v.Tag().String())
}

// ObjectOf returns the flat [key, value, key, value, ...] body of an object.
// Keys are string values.
func (s *Store) ObjectOf(v Value) []Value {
	if v.Tag() != TagObject {
		panic("cjson: ObjectOf on " + v.Tag().String())
	}
	return s.objects[v.index()]
}

// ArrayOf returns the items of an array.
func (s *Store) ArrayOf(v Value) []Value {
	if v.Tag() != TagArray {
		panic("cjson: ArrayOf on " + v.Tag().String())
	}
	return s.arrays[v.index()]
}

func (s *Store) intern(str string) int {
	if i, ok := s.stringIndex[str]; ok {
		return i
	}
	s.strings = append(s.strings, str)
	i := len(s.strings) - 1
	s.stringIndex[str] = i
	return i
}
