// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package cjson

import (
	"errors"
	"fmt"
	"io"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// ParseJSON reads every top-level JSON value in r (a single document,
// concatenated documents or JSON Lines) into the store.
func (s *Store) ParseJSON(r io.Reader) ([]Value, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var docs []Value
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return docs, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read JSON: %w", err)
		}
		v, err := s.jsonValue(dec, tok)
		if err != nil {
			return nil, err
		}
		docs = append(docs, v)
	}
}

func (s *Store) jsonValue(dec *json.Decoder, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return s.jsonObject(dec)
		case '[':
			return s.jsonArray(dec)
		}
		return 0, fmt.Errorf("unexpected delimiter %q", t)
	case string:
		return s.Str(t), nil
	case json.Number:
		return s.number(string(t)), nil
	case float64:
		return s.Double(), nil
	case bool:
		return s.Bool(t), nil
	case nil:
		return s.Null(), nil
	}
	return 0, fmt.Errorf("unexpected JSON token %v", tok)
}

func (s *Store) jsonObject(dec *json.Decoder) (Value, error) {
	var members []Member
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return 0, fmt.Errorf("failed to read object key: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return 0, fmt.Errorf("object key is %T, not a string", keyTok)
		}
		valTok, err := dec.Token()
		if err != nil {
			return 0, fmt.Errorf("failed to read value of %q: %w", key, err)
		}
		v, err := s.jsonValue(dec, valTok)
		if err != nil {
			return 0, err
		}
		members = append(members, Member{Key: key, Value: v})
	}
	if _, err := dec.Token(); err != nil {
		return 0, fmt.Errorf("unterminated object: %w", err)
	}
	return s.Object(members...), nil
}

func (s *Store) jsonArray(dec *json.Decoder) (Value, error) {
	var items []Value
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return 0, fmt.Errorf("failed to read array item: %w", err)
		}
		v, err := s.jsonValue(dec, tok)
		if err != nil {
			return 0, err
		}
		items = append(items, v)
	}
	if _, err := dec.Token(); err != nil {
		return 0, fmt.Errorf("unterminated array: %w", err)
	}
	return s.Array(items...), nil
}

func (s *Store) number(text string) Value {
	if strings.ContainsAny(text, ".eE") {
		return s.Double()
	}
	return s.Integer()
}

// ParseYAML reads every document of a YAML stream into the store.
// Mapping key order is preserved and aliases are expanded.
func (s *Store) ParseYAML(r io.Reader) ([]Value, error) {
	dec := yaml.NewDecoder(r)

	var docs []Value
	for {
		var doc yaml.Node
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			return docs, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read YAML: %w", err)
		}
		v, err := s.yamlValue(&doc)
		if err != nil {
			return nil, err
		}
		docs = append(docs, v)
	}
}

func (s *Store) yamlValue(n *yaml.Node) (Value, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return s.Null(), nil
		}
		return s.yamlValue(n.Content[0])
	case yaml.AliasNode:
		return s.yamlValue(n.Alias)
	case yaml.MappingNode:
		members, err := s.yamlMembers(n)
		if err != nil {
			return 0, err
		}
		return s.Object(members...), nil
	case yaml.SequenceNode:
		items := make([]Value, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := s.yamlValue(c)
			if err != nil {
				return 0, err
			}
			items = append(items, v)
		}
		return s.Array(items...), nil
	case yaml.ScalarNode:
		return s.yamlScalar(n)
	}
	return s.Null(), nil
}

// yamlMembers returns the members of a mapping in key order. Merge keys
// (<<) splice in the members of the referenced mappings; keys written in n
// take precedence over merged ones, and earlier merge sources over later.
func (s *Store) yamlMembers(n *yaml.Node) ([]Member, error) {
	explicit := make(map[string]bool, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		if k := n.Content[i]; !isMergeKey(k) {
			explicit[k.Value] = true
		}
	}

	members := make([]Member, 0, len(n.Content)/2)
	index := make(map[string]int, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]

		if isMergeKey(key) {
			merged, err := s.yamlMergeSources(val)
			if err != nil {
				return nil, err
			}
			for _, m := range merged {
				if _, seen := index[m.Key]; seen || explicit[m.Key] {
					continue
				}
				index[m.Key] = len(members)
				members = append(members, m)
			}
			continue
		}

		if key.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: unsupported non-scalar mapping key", key.Line)
		}
		v, err := s.yamlValue(val)
		if err != nil {
			return nil, err
		}
		if at, seen := index[key.Value]; seen {
			members[at].Value = v
			continue
		}
		index[key.Value] = len(members)
		members = append(members, Member{Key: key.Value, Value: v})
	}
	return members, nil
}

// yamlMergeSources returns the members a merge key refers to: one mapping or
// a sequence of mappings, possibly through aliases.
func (s *Store) yamlMergeSources(n *yaml.Node) ([]Member, error) {
	n = resolveAlias(n)
	switch n.Kind {
	case yaml.MappingNode:
		return s.yamlMembers(n)
	case yaml.SequenceNode:
		var out []Member
		seen := make(map[string]bool)
		for _, c := range n.Content {
			c = resolveAlias(c)
			if c.Kind != yaml.MappingNode {
				return nil, fmt.Errorf("line %d: merge sequence must hold mappings", c.Line)
			}
			members, err := s.yamlMembers(c)
			if err != nil {
				return nil, err
			}
			for _, m := range members {
				if !seen[m.Key] {
					seen[m.Key] = true
					out = append(out, m)
				}
			}
		}
		return out, nil
	}
	return nil, fmt.Errorf("line %d: merge value must be a mapping", n.Line)
}

func isMergeKey(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!merge"
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

func (s *Store) yamlScalar(n *yaml.Node) (Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return s.Null(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return 0, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return s.Bool(b), nil
	case "!!int":
		return s.Integer(), nil
	case "!!float":
		return s.Double(), nil
	}
	// !!str, !!timestamp and custom tags keep their literal text.
	return s.Str(n.Value), nil
}
