// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package typenames carries naming hints threaded alongside type inference.
// Hints are only used for identifier generation and never affect type identity.
package typenames

import "github.com/jinzhu/inflection"

// Names is a naming hint for a type.
type Names struct {
	// Base holds candidate names in first-seen order.
	Base []string
	// Inferred is true when the names were derived from property keys
	// rather than given explicitly (e.g. a top-level name).
	Inferred bool
}

// Make returns a hint with a single base name.
func Make(name string, inferred bool) Names {
	if name == "" {
		return Names{Inferred: inferred}
	}
	return Names{Base: []string{name}, Inferred: inferred}
}

// Singularized returns the hint for the element type of an array whose
// own name is n, e.g. "users" -> "user".
func (n Names) Singularized() Names {
	out := Names{Inferred: true}
	for _, b := range n.Base {
		out.Base = appendUnique(out.Base, inflection.Singular(b))
	}
	return out
}

// Merge combines two hints. Explicit names win over inferred ones.
func (n Names) Merge(other Names) Names {
	switch {
	case n.IsEmpty():
		return other.clone()
	case other.IsEmpty():
		return n.clone()
	case !n.Inferred && other.Inferred:
		return n.clone()
	case n.Inferred && !other.Inferred:
		return other.clone()
	}
	out := n.clone()
	for _, b := range other.Base {
		out.Base = appendUnique(out.Base, b)
	}
	return out
}

// Combined returns the single best name, or "" if there is none.
func (n Names) Combined() string {
	if len(n.Base) == 0 {
		return ""
	}
	return n.Base[0]
}

// IsEmpty reports whether the hint carries no names.
func (n Names) IsEmpty() bool {
	return len(n.Base) == 0
}

func (n Names) clone() Names {
	return Names{Base: append([]string(nil), n.Base...), Inferred: n.Inferred}
}

func appendUnique(list []string, s string) []string {
	for _, x := range list {
		if x == s {
			return list
		}
	}
	return append(list, s)
}
