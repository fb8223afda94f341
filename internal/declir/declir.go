// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package declir orders the types of a graph into forward and define
// declarations that a renderer can emit top to bottom, and selects the types
// that must be boxed to break cycles in targets without forward declarations.
package declir

import (
	"errors"
	"fmt"

	"github.com/dacolabs/typegen/internal/typegraph"
)

// ErrUnbreakableCycle is returned when a cycle contains no type that the
// target can forward declare or box.
var ErrUnbreakableCycle = errors.New("found a cycle that cannot be broken")

// Kind distinguishes forward declarations from definitions.
type Kind int

const (
	// Forward announces a type without specifying it.
	Forward Kind = iota
	// Define fully specifies a type.
	Define
)

func (k Kind) String() string {
	if k == Forward {
		return "forward"
	}
	return "define"
}

// Declaration is one unit of renderer output.
type Declaration struct {
	Kind Kind
	Type typegraph.TypeRef
}

// IR is an ordered declaration sequence.
type IR struct {
	Declarations []Declaration
	// Forwarded holds every type that received a forward declaration.
	Forwarded map[typegraph.TypeRef]struct{}
}

// IsForwarded reports whether r received a forward declaration.
func (ir *IR) IsForwarded(r typegraph.TypeRef) bool {
	_, ok := ir.Forwarded[r]
	return ok
}

// Validate checks that every forwarded type is forward declared exactly once
// and defined exactly once, forward first, and that nothing else is forward
// declared.
func (ir *IR) Validate() error {
	forwardAt := make(map[typegraph.TypeRef]int)
	defineAt := make(map[typegraph.TypeRef]int)
	for i, d := range ir.Declarations {
		seen := defineAt
		if d.Kind == Forward {
			seen = forwardAt
			if !ir.IsForwarded(d.Type) {
				return fmt.Errorf("type %d is forward declared but not in the forwarded set", d.Type)
			}
		}
		if _, dup := seen[d.Type]; dup {
			return fmt.Errorf("type %d has more than one %s declaration", d.Type, d.Kind)
		}
		seen[d.Type] = i
	}
	for r := range ir.Forwarded {
		f, okF := forwardAt[r]
		d, okD := defineAt[r]
		if !okF || !okD {
			return fmt.Errorf("forwarded type %d lacks a forward or define declaration", r)
		}
		if f >= d {
			return fmt.Errorf("forwarded type %d is defined before it is forward declared", r)
		}
	}
	return nil
}

// Graph is the view of a type graph the ordering algorithms need.
type Graph interface {
	TopLevelTypes() []typegraph.TypeRef
	Children(r typegraph.TypeRef) []typegraph.TypeRef
}

// Predicate is a per-type capability test supplied by a target.
type Predicate func(typegraph.TypeRef) bool

// findBreaker returns the breaker for a cycle closing at t, if t is on path.
// path runs from the outermost ancestor to the innermost. Candidates are tried
// from t's occurrence inward, so the outermost eligible ancestor wins. A nil
// canBreak picks t's occurrence itself.
func findBreaker(t typegraph.TypeRef, path []typegraph.TypeRef, canBreak Predicate) (typegraph.TypeRef, bool, error) {
	index := -1
	for i, p := range path {
		if p == t {
			index = i
			break
		}
	}
	if index < 0 {
		return typegraph.NoType, false, nil
	}
	if canBreak == nil {
		return path[index], true, nil
	}
	for _, candidate := range path[index:] {
		if canBreak(candidate) {
			return candidate, true, nil
		}
	}
	return typegraph.NoType, false, fmt.Errorf("%w: cycle through type %d", ErrUnbreakableCycle, t)
}

// extend returns path with t appended, never sharing a backing array with
// sibling paths.
func extend(path []typegraph.TypeRef, t typegraph.TypeRef) []typegraph.TypeRef {
	out := make([]typegraph.TypeRef, len(path), len(path)+1)
	copy(out, path)
	return append(out, t)
}
