// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package declir

import (
	"slices"

	"github.com/dacolabs/typegen/internal/typegraph"
)

// orderContext holds the mutable state of one Order call.
type orderContext struct {
	canForward       Predicate
	childrenOf       func(typegraph.TypeRef) []typegraph.TypeRef
	needsDeclaration Predicate

	visited      map[typegraph.TypeRef]struct{}
	forwarded    map[typegraph.TypeRef]struct{}
	declarations []Declaration
}

// Order computes the declaration sequence for g.
//
// canForward is nil for targets without forward declarations; otherwise it
// tells which types may be forward declared. childrenOf gives the types a
// type depends on for declaration purposes, and needsDeclaration decides
// whether a type is declared at all.
//
// With forward declarations, top levels are visited in reverse and the
// sequence is emitted as built; without, the post-order sequence is reversed.
func Order(g Graph, canForward Predicate, childrenOf func(typegraph.TypeRef) []typegraph.TypeRef, needsDeclaration Predicate) (*IR, error) {
	ctx := &orderContext{
		canForward:       canForward,
		childrenOf:       childrenOf,
		needsDeclaration: needsDeclaration,
		visited:          make(map[typegraph.TypeRef]struct{}),
		forwarded:        make(map[typegraph.TypeRef]struct{}),
	}

	topLevels := slices.Clone(g.TopLevelTypes())
	if canForward != nil {
		slices.Reverse(topLevels)
	}

	for _, t := range topLevels {
		if err := ctx.visit(t, nil); err != nil {
			return nil, err
		}
	}

	if canForward == nil {
		slices.Reverse(ctx.declarations)
	}

	return &IR{Declarations: ctx.declarations, Forwarded: ctx.forwarded}, nil
}

func (c *orderContext) visit(t typegraph.TypeRef, path []typegraph.TypeRef) error {
	if _, ok := c.visited[t]; ok {
		return nil
	}

	breaker, found, err := findBreaker(t, path, c.canForward)
	if err != nil {
		return err
	}
	if found {
		// Without a forward mechanism the ancestor's own visit defines it.
		if c.canForward != nil {
			if _, ok := c.forwarded[breaker]; !ok {
				c.declarations = append(c.declarations, Declaration{Kind: Forward, Type: breaker})
				c.forwarded[breaker] = struct{}{}
			}
		}
		return nil
	}

	childPath := extend(path, t)
	for _, child := range c.childrenOf(t) {
		if err := c.visit(child, childPath); err != nil {
			return err
		}
	}

	if _, ok := c.visited[t]; ok {
		return nil
	}
	if _, ok := c.forwarded[t]; ok || c.needsDeclaration(t) {
		c.declarations = append(c.declarations, Declaration{Kind: Define, Type: t})
		c.visited[t] = struct{}{}
	}
	return nil
}
