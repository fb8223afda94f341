// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package union accumulates heterogeneous observations of one schema position
// and folds them into the smallest type that covers all of them.
package union

import (
	"fmt"

	"github.com/dacolabs/typegen/internal/typegraph"
	"github.com/dacolabs/typegen/internal/typenames"
)

// StringPolicy decides what happens to enum cases once a plain string has
// been observed at the same position.
type StringPolicy int

const (
	// CollapseToString folds all enum cases into the plain string member.
	CollapseToString StringPolicy = iota
	// KeepEnum keeps the enum cases as an enum member next to the plain
	// string member.
	KeepEnum
)

// ParseStringPolicy maps a configuration value to a StringPolicy.
func ParseStringPolicy(s string) (StringPolicy, error) {
	switch s {
	case "", "collapse":
		return CollapseToString, nil
	case "keep-enum":
		return KeepEnum, nil
	}
	return 0, fmt.Errorf("unknown string policy %q (want collapse or keep-enum)", s)
}

func (p StringPolicy) String() string {
	if p == KeepEnum {
		return "keep-enum"
	}
	return "collapse"
}

// Hooks builds the composite members of a union. P is the payload type of
// pending object and array observations.
type Hooks[P any] interface {
	MakeEnum(names typenames.Names, cases []typegraph.CaseCount) typegraph.TypeRef
	MakeObject(names typenames.Names, objects []P) typegraph.TypeRef
	MakeArray(names typenames.Names, arrays []P) typegraph.TypeRef
}

// Options tune how observations are folded.
type Options struct {
	Policy StringPolicy
	// MaxEnumCases turns an enum with more distinct cases into a plain
	// string. Zero means no limit.
	MaxEnumCases int
	// WidenIntegers drops the integer member when a double was also seen.
	WidenIntegers bool
}

// Accumulator collects observations for a single inference call.
type Accumulator[P any] struct {
	builder *typegraph.Builder
	names   typenames.Names
	hooks   Hooks[P]
	opts    Options

	haveNull    bool
	haveBool    bool
	haveInteger bool
	haveDouble  bool
	stringKinds [typegraph.StringDateTime + 1]bool

	enumCases  []string
	enumCounts map[string]int

	objects []P
	arrays  []P

	numValues    int
	numValuesSet bool
}

// New returns an empty Accumulator.
func New[P any](b *typegraph.Builder, names typenames.Names, hooks Hooks[P], opts Options) *Accumulator[P] {
	return &Accumulator[P]{
		builder:    b,
		names:      names,
		hooks:      hooks,
		opts:       opts,
		enumCounts: make(map[string]int),
	}
}

func (a *Accumulator[P]) AddNull()    { a.haveNull = true }
func (a *Accumulator[P]) AddBool()    { a.haveBool = true }
func (a *Accumulator[P]) AddInteger() { a.haveInteger = true }
func (a *Accumulator[P]) AddDouble()  { a.haveDouble = true }

// AddStringType records a string of the given subtype. A plain string
// disqualifies enum inference for the rest of the call.
func (a *Accumulator[P]) AddStringType(k typegraph.StringKind) {
	a.stringKinds[k] = true
}

// AddEnumCase records one occurrence of an enum case.
func (a *Accumulator[P]) AddEnumCase(s string) {
	if _, ok := a.enumCounts[s]; !ok {
		a.enumCases = append(a.enumCases, s)
	}
	a.enumCounts[s]++
}

// AddObject records a pending object observation.
func (a *Accumulator[P]) AddObject(o P) { a.objects = append(a.objects, o) }

// AddArray records a pending array observation.
func (a *Accumulator[P]) AddArray(arr P) { a.arrays = append(a.arrays, arr) }

// HaveString reports whether a plain string was observed.
func (a *Accumulator[P]) HaveString() bool {
	return a.stringKinds[typegraph.StringPlain]
}

// SetNumValues records the number of leaf values observed. It must be called
// at most once.
func (a *Accumulator[P]) SetNumValues(n int) {
	if a.numValuesSet {
		panic("union: number of values can only be set once")
	}
	a.numValues = n
	a.numValuesSet = true
}

// NumValues returns the value recorded by SetNumValues.
func (a *Accumulator[P]) NumValues() int { return a.numValues }

// Build folds the observations into one type. A single observed kind yields
// that type directly; several yield a union; none yields any.
func (a *Accumulator[P]) Build() typegraph.TypeRef {
	var members []typegraph.TypeRef
	add := func(r typegraph.TypeRef) { members = append(members, r) }

	if a.haveNull {
		add(a.builder.Primitive(typegraph.KindNull))
	}
	if a.haveBool {
		add(a.builder.Primitive(typegraph.KindBool))
	}
	if a.haveInteger && !(a.opts.WidenIntegers && a.haveDouble) {
		add(a.builder.Primitive(typegraph.KindInteger))
	}
	if a.haveDouble {
		add(a.builder.Primitive(typegraph.KindDouble))
	}

	haveString := a.HaveString()
	if len(a.enumCases) > 0 {
		tooMany := a.opts.MaxEnumCases > 0 && len(a.enumCases) > a.opts.MaxEnumCases
		switch {
		case tooMany:
			haveString = true
		case !haveString || a.opts.Policy == KeepEnum:
			add(a.hooks.MakeEnum(a.names, a.caseCounts()))
		}
	}
	if haveString {
		add(a.builder.Primitive(typegraph.KindString))
	}
	for k := typegraph.StringDate; k <= typegraph.StringDateTime; k++ {
		if a.stringKinds[k] {
			add(a.builder.StringSubtype(k))
		}
	}

	if len(a.objects) > 0 {
		add(a.hooks.MakeObject(a.names, a.objects))
	}
	if len(a.arrays) > 0 {
		add(a.hooks.MakeArray(a.names, a.arrays))
	}

	switch len(members) {
	case 0:
		return a.builder.Primitive(typegraph.KindAny)
	case 1:
		return members[0]
	}
	return a.builder.UnionType(a.names, members)
}

func (a *Accumulator[P]) caseCounts() []typegraph.CaseCount {
	cases := make([]typegraph.CaseCount, len(a.enumCases))
	for i, c := range a.enumCases {
		cases[i] = typegraph.CaseCount{Case: c, Count: a.enumCounts[c]}
	}
	return cases
}
