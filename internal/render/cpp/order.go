// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package cpp

import (
	"errors"
	"fmt"

	"github.com/dacolabs/typegen/internal/declir"
	"github.com/dacolabs/typegen/internal/render"
	"github.com/dacolabs/typegen/internal/typegraph"
)

// ErrUseBeforeDeclaration is returned when a definition needs a type that is
// neither defined nor forward declared before it. This happens when a cycle
// is entered through a union, which C++ cannot forward declare.
var ErrUseBeforeDeclaration = errors.New("type used before its declaration")

// checkDeclared verifies that every definition only uses types defined
// earlier, or forwarded types announced earlier (held through shared_ptr).
func checkDeclared(g *typegraph.Graph, ir *declir.IR, namer *render.Namer) error {
	defined := make(map[typegraph.TypeRef]bool)
	announced := make(map[typegraph.TypeRef]bool)

	for _, d := range ir.Declarations {
		if d.Kind == declir.Forward {
			announced[d.Type] = true
			continue
		}
		for _, dep := range namedDeps(g, d.Type) {
			if defined[dep] || (announced[dep] && ir.IsForwarded(dep)) {
				continue
			}
			user, _ := namer.Name(d.Type)
			used, _ := namer.Name(dep)
			return fmt.Errorf("%w: %s uses %s", ErrUseBeforeDeclaration, user, used)
		}
		defined[d.Type] = true
	}
	return nil
}

// namedDeps returns the named types r refers to, looking through arrays and
// nullable wrappers.
func namedDeps(g *typegraph.Graph, r typegraph.TypeRef) []typegraph.TypeRef {
	var deps []typegraph.TypeRef
	seen := make(map[typegraph.TypeRef]bool)
	var walk func(typegraph.TypeRef)
	walk = func(t typegraph.TypeRef) {
		for _, c := range g.Children(t) {
			if seen[c] {
				continue
			}
			seen[c] = true
			if render.IsNamed(g, c) {
				deps = append(deps, c)
				continue
			}
			walk(c)
		}
	}
	walk(r)
	return deps
}
