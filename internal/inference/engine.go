// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package inference folds sample values into a structural type graph.
package inference

import (
	"github.com/dacolabs/typegen/internal/cjson"
	"github.com/dacolabs/typegen/internal/datetime"
	"github.com/dacolabs/typegen/internal/typegraph"
	"github.com/dacolabs/typegen/internal/typenames"
	"github.com/dacolabs/typegen/internal/union"
)

// Options controls inference.
type Options struct {
	// InferEnums records eligible strings as enum cases.
	InferEnums bool
	// Union tunes how observations at one position are folded.
	Union union.Options
}

// Engine infers types for values held in one store. It is not safe for
// concurrent use: the builder it writes to is shared state.
type Engine struct {
	builder *typegraph.Builder
	store   *cjson.Store
	opts    Options
}

// New returns an Engine writing into b.
func New(b *typegraph.Builder, s *cjson.Store, opts Options) *Engine {
	return &Engine{builder: b, store: s, opts: opts}
}

// InferTopLevel infers the type of a set of sample documents and registers
// it as a named root.
func (e *Engine) InferTopLevel(name string, docs []cjson.Value) typegraph.TypeRef {
	r := e.Infer(Flat(docs...), typenames.Make(name, false))
	e.builder.AddTopLevel(name, r)
	return r
}

// Infer returns the smallest type covering every value in values.
func (e *Engine) Infer(values Nested, names typenames.Names) typegraph.TypeRef {
	acc := union.New[[]cjson.Value](e.builder, names, hooks{e}, e.opts.Union)
	numValues := 0

	values.ForEachValue(func(v cjson.Value) {
		numValues++
		switch v.Tag() {
		case cjson.TagNull:
			acc.AddNull()
		case cjson.TagFalse, cjson.TagTrue:
			acc.AddBool()
		case cjson.TagInteger:
			acc.AddInteger()
		case cjson.TagDouble:
			acc.AddDouble()
		case cjson.TagInternedString:
			if e.opts.InferEnums && !acc.HaveString() {
				s := e.store.StringOf(v)
				if canBeEnumCase(s) {
					acc.AddEnumCase(s)
				} else {
					acc.AddStringType(typegraph.StringPlain)
				}
			} else {
				acc.AddStringType(typegraph.StringPlain)
			}
		case cjson.TagUninternedString:
			acc.AddStringType(typegraph.StringPlain)
		case cjson.TagObject:
			acc.AddObject(e.store.ObjectOf(v))
		case cjson.TagArray:
			acc.AddArray(e.store.ArrayOf(v))
		case cjson.TagDate:
			acc.AddStringType(typegraph.StringDate)
		case cjson.TagTime:
			acc.AddStringType(typegraph.StringTime)
		case cjson.TagDateTime:
			acc.AddStringType(typegraph.StringDateTime)
		default:
			panic("inference: unknown value tag " + v.Tag().String())
		}
	})

	acc.SetNumValues(numValues)
	return acc.Build()
}

// inferObject merges object samples into one object type. Properties keep
// their first-seen order; a property missing from some samples is nullable.
func (e *Engine) inferObject(names typenames.Names, objects [][]cjson.Value) typegraph.TypeRef {
	var propNames []string
	propValues := make(map[string][]cjson.Value)
	present := make(map[string]int)

	for _, body := range objects {
		seen := make(map[string]struct{}, len(body)/2)
		for i := 0; i+1 < len(body); i += 2 {
			key := e.store.StringOf(body[i])
			if _, ok := propValues[key]; !ok {
				propNames = append(propNames, key)
			}
			propValues[key] = append(propValues[key], body[i+1])
			if _, ok := seen[key]; !ok {
				seen[key] = struct{}{}
				present[key]++
			}
		}
	}

	props := make([]typegraph.Property, 0, len(propNames))
	for _, key := range propNames {
		hint := typenames.Make(key, true)
		t := e.Infer(Flat(propValues[key]...), hint)
		if present[key] < len(objects) {
			t = e.builder.MakeNullable(t, hint)
		}
		props = append(props, typegraph.Property{Name: key, Type: t})
	}

	return e.builder.ObjectType(names, props)
}

func (e *Engine) inferArray(names typenames.Names, arrays [][]cjson.Value) typegraph.TypeRef {
	bodies := make([]Nested, len(arrays))
	for i, a := range arrays {
		bodies[i] = Flat(a...)
	}
	elem := e.Infer(Group(bodies...), names.Singularized())
	return e.builder.ArrayType(elem)
}

// hooks adapts an Engine to union.Hooks.
type hooks struct{ e *Engine }

func (h hooks) MakeEnum(names typenames.Names, cases []typegraph.CaseCount) typegraph.TypeRef {
	return h.e.builder.StringType(names, cases)
}

func (h hooks) MakeObject(names typenames.Names, objects [][]cjson.Value) typegraph.TypeRef {
	return h.e.inferObject(names, objects)
}

func (h hooks) MakeArray(names typenames.Names, arrays [][]cjson.Value) typegraph.TypeRef {
	return h.e.inferArray(names, arrays)
}

// canBeEnumCase reports whether s may be an enum case. Date-like literals are
// not; the empty string is.
func canBeEnumCase(s string) bool {
	if s == "" {
		return true
	}
	return !datetime.IsDate(s) && !datetime.IsTime(s) && !datetime.IsDateTime(s)
}
