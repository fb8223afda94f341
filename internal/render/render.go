// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package render turns a sealed type graph into source code for a target
// language.
package render

import (
	"errors"
	"fmt"
	"sort"

	"github.com/dacolabs/typegen/internal/typegraph"
)

// ErrUnknownTarget is returned by Register.Get for an unregistered name.
var ErrUnknownTarget = errors.New("unknown target")

// Options are the target-independent rendering settings.
type Options struct {
	// Package is the package or namespace name for targets that have one.
	Package string
	// Header lines are emitted as a leading comment.
	Header []string
}

// Target defines the interface all output targets must implement.
type Target interface {
	// Name returns the target's identifier (e.g., "rust", "cpp")
	Name() string

	// FileExtension returns the appropriate file extension (e.g., ".rs", ".hpp")
	FileExtension() string

	// Render emits declarations for every top level of g
	Render(g *typegraph.Graph, opts Options) ([]byte, error)
}

// Register maps target names to targets.
type Register map[string]Target

// NewRegister returns a register holding targets under their own names.
func NewRegister(targets ...Target) Register {
	r := make(Register, len(targets))
	for _, t := range targets {
		r[t.Name()] = t
	}
	return r
}

// Get retrieves a target by name.
func (r Register) Get(name string) (Target, error) {
	t, ok := r[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTarget, name)
	}
	return t, nil
}

// Available returns all registered target names, sorted.
func (r Register) Available() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
