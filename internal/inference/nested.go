// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package inference

import "github.com/dacolabs/typegen/internal/cjson"

// Nested is a stream of observations of one schema position. It is either a
// flat run of leaf values or a list of nested streams, one per source (for
// example one per array body across sample documents).
type Nested struct {
	Leaves []cjson.Value
	Groups []Nested
}

// Flat returns a stream of leaf values.
func Flat(values ...cjson.Value) Nested {
	return Nested{Leaves: values}
}

// Group returns a stream made of other streams.
func Group(streams ...Nested) Nested {
	return Nested{Groups: streams}
}

// ForEachRun calls f with every flat run of leaves, in order.
func (n Nested) ForEachRun(f func([]cjson.Value)) {
	if len(n.Leaves) > 0 {
		f(n.Leaves)
	}
	for _, g := range n.Groups {
		g.ForEachRun(f)
	}
}

// ForEachValue calls f with every leaf value, in order.
func (n Nested) ForEachValue(f func(cjson.Value)) {
	n.ForEachRun(func(run []cjson.Value) {
		for _, v := range run {
			f(v)
		}
	})
}

// Len returns the number of leaf values.
func (n Nested) Len() int {
	count := 0
	n.ForEachRun(func(run []cjson.Value) { count += len(run) })
	return count
}
