// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package render

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/dacolabs/typegen/internal/typegraph"
)

// words splits s on non-alphanumeric characters and lower-to-upper case
// transitions, so "firstName", "first_name" and "First-Name" all give
// [first Name].
func words(s string) []string {
	var out []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			out = append(out, string(cur))
			cur = cur[:0]
		}
	}
	runes := []rune(s)
	for i, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush()
			continue
		}
		if unicode.IsUpper(r) && len(cur) > 0 {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				flush()
			}
		}
		cur = append(cur, r)
	}
	flush()
	return out
}

// ToPascalCase converts a string to a PascalCase identifier. A leading digit
// gets an "N" prefix.
func ToPascalCase(s string) string {
	var sb strings.Builder
	for _, w := range words(s) {
		runes := []rune(w)
		sb.WriteRune(unicode.ToUpper(runes[0]))
		sb.WriteString(string(runes[1:]))
	}
	result := sb.String()
	if result != "" && unicode.IsDigit([]rune(result)[0]) {
		result = "N" + result
	}
	return result
}

// ToSnakeCase converts a string to a valid snake_case identifier.
// It splits on non-alphanumeric characters and case changes, lowercases each
// part, and prefixes with underscore if the result starts with a digit.
func ToSnakeCase(s string) string {
	parts := words(s)
	for i, part := range parts {
		parts[i] = strings.ToLower(part)
	}

	result := strings.Join(parts, "_")
	if result != "" && result[0] >= '0' && result[0] <= '9' {
		result = "_" + result
	}
	return result
}

// uniqueName returns base, or base with the smallest numeric suffix from 2 up
// that is not in taken, and records the result.
func uniqueName(base string, taken map[string]struct{}) string {
	name := base
	for i := 2; ; i++ {
		if _, ok := taken[name]; !ok {
			break
		}
		name = base + strconv.Itoa(i)
	}
	taken[name] = struct{}{}
	return name
}

// IsNamed reports whether r is declared under its own identifier: objects,
// enums and unions with more than one non-null member.
func IsNamed(g *typegraph.Graph, r typegraph.TypeRef) bool {
	switch g.Kind(r) {
	case typegraph.KindObject, typegraph.KindEnum:
		return true
	case typegraph.KindUnion:
		return len(g.NonNullMembers(r)) > 1
	}
	return false
}

// Alias is a top level whose type is declared under another name, or not
// declared at all.
type Alias struct {
	Name string
	Type typegraph.TypeRef
}

// Namer assigns unique PascalCase identifiers to the named types of a graph.
// Top levels claim their own names first; remaining types are named from
// their hints in depth-first order.
type Namer struct {
	names     map[typegraph.TypeRef]string
	aliases   []Alias
	topLevels []string
}

// NewNamer names every named type reachable from the top levels of g.
func NewNamer(g *typegraph.Graph, reserved ...string) *Namer {
	n := &Namer{names: make(map[typegraph.TypeRef]string)}
	taken := make(map[string]struct{}, len(reserved))
	for _, r := range reserved {
		taken[r] = struct{}{}
	}

	for _, tl := range g.TopLevels() {
		name := uniqueName(fallback(ToPascalCase(tl.Name), "TopLevel"), taken)
		n.topLevels = append(n.topLevels, name)
		if _, named := n.names[tl.Type]; named || !IsNamed(g, tl.Type) {
			n.aliases = append(n.aliases, Alias{Name: name, Type: tl.Type})
			continue
		}
		n.names[tl.Type] = name
	}

	for r := range g.All(g.TopLevelTypes()...) {
		if _, ok := n.names[r]; ok || !IsNamed(g, r) {
			continue
		}
		base := fallback(ToPascalCase(g.Names(r).Combined()), kindFallback(g.Kind(r)))
		n.names[r] = uniqueName(base, taken)
	}

	return n
}

// Name returns the identifier of r, if r is a named type.
func (n *Namer) Name(r typegraph.TypeRef) (string, bool) {
	name, ok := n.names[r]
	return name, ok
}

// TopLevelNames returns the declared identifier of each top level, in
// top-level order.
func (n *Namer) TopLevelNames() []string {
	return n.topLevels
}

// Aliases returns top levels that need an alias declaration, in top-level
// order.
func (n *Namer) Aliases() []Alias {
	return n.aliases
}

func fallback(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func kindFallback(k typegraph.Kind) string {
	switch k {
	case typegraph.KindEnum:
		return "Enum"
	case typegraph.KindUnion:
		return "Union"
	}
	return "Object"
}
