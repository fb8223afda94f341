// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package declir

import (
	"slices"

	"github.com/dacolabs/typegen/internal/typegraph"
)

// breakerContext holds the mutable state of one SelectBreakers call.
type breakerContext struct {
	g          Graph
	isImplicit Predicate
	canBreak   Predicate

	queue    []typegraph.TypeRef
	visited  map[typegraph.TypeRef]struct{}
	breakers map[typegraph.TypeRef]struct{}
}

// SelectBreakers returns the types that must be represented through an
// indirection so that every cycle of g is broken, for targets that have no
// forward declarations.
//
// Implicit breakers (types that are already indirect, such as arrays) are not
// part of any path: their children are queued and walked with a fresh path.
// Queued types are taken last-in first-out, starting from the top levels.
func SelectBreakers(g Graph, isImplicit, canBreak Predicate) (map[typegraph.TypeRef]struct{}, error) {
	ctx := &breakerContext{
		g:          g,
		isImplicit: isImplicit,
		canBreak:   canBreak,
		queue:      slices.Clone(g.TopLevelTypes()),
		visited:    make(map[typegraph.TypeRef]struct{}),
		breakers:   make(map[typegraph.TypeRef]struct{}),
	}

	for len(ctx.queue) > 0 {
		last := len(ctx.queue) - 1
		t := ctx.queue[last]
		ctx.queue = ctx.queue[:last]
		if err := ctx.visit(t, nil); err != nil {
			return nil, err
		}
	}

	return ctx.breakers, nil
}

func (c *breakerContext) visit(t typegraph.TypeRef, path []typegraph.TypeRef) error {
	if _, ok := c.visited[t]; ok {
		return nil
	}

	if c.isImplicit(t) {
		c.queue = append(c.queue, c.g.Children(t)...)
	} else {
		breaker, found, err := findBreaker(t, path, c.canBreak)
		if err != nil {
			return err
		}
		if found {
			c.breakers[breaker] = struct{}{}
			return nil
		}

		childPath := extend(path, t)
		for _, child := range c.g.Children(t) {
			if err := c.visit(child, childPath); err != nil {
				return err
			}
		}
	}

	c.visited[t] = struct{}{}
	return nil
}
