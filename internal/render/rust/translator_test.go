// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package rust

import (
	"strings"
	"testing"

	"github.com/dacolabs/typegen/internal/render"
	"github.com/dacolabs/typegen/internal/typegraph"
	"github.com/dacolabs/typegen/internal/typenames"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(n string) typenames.Names { return typenames.Make(n, true) }

func TestRender_SimpleStruct(t *testing.T) {
	b := typegraph.NewBuilder()
	str := b.Primitive(typegraph.KindString)
	user := b.ObjectType(names("user"), []typegraph.Property{
		{Name: "userName", Type: str},
		{Name: "type", Type: str},
		{Name: "score", Type: b.MakeNullable(b.Primitive(typegraph.KindDouble), typenames.Names{})},
		{Name: "tags", Type: b.ArrayType(str)},
	})
	b.AddTopLevel("user", user)

	out, err := (&Target{}).Render(b.Finish(), render.Options{})
	require.NoError(t, err)
	result := string(out)

	assert.Contains(t, result, "use serde::{Deserialize, Serialize};")
	assert.Contains(t, result, "pub struct User {")
	assert.Contains(t, result, "    #[serde(rename = \"userName\")]\n    pub user_name: String,")
	assert.Contains(t, result, "    pub r#type: String,")
	assert.NotContains(t, result, `rename = "type"`)
	assert.Contains(t, result, "    pub score: Option<f64>,")
	assert.Contains(t, result, "    pub tags: Vec<String>,")
}

func TestRender_DirectCycleIsBoxed(t *testing.T) {
	b := typegraph.NewBuilder()
	person := b.ReserveObject(names("person"))
	pet := b.ReserveObject(names("pet"))
	b.SetObjectProperties(person, []typegraph.Property{{Name: "pet", Type: pet}})
	b.SetObjectProperties(pet, []typegraph.Property{{Name: "owner", Type: b.MakeNullable(person, typenames.Names{})}})
	b.AddTopLevel("person", person)

	out, err := (&Target{}).Render(b.Finish(), render.Options{})
	require.NoError(t, err)
	result := string(out)

	assert.Contains(t, result, "    pub owner: Option<Box<Person>>,")
	assert.Contains(t, result, "    pub pet: Pet,")
}

func TestRender_ArrayCycleIsNotBoxed(t *testing.T) {
	b := typegraph.NewBuilder()
	node := b.ReserveObject(names("node"))
	b.SetObjectProperties(node, []typegraph.Property{{Name: "children", Type: b.ArrayType(node)}})
	b.AddTopLevel("tree", node)

	out, err := (&Target{}).Render(b.Finish(), render.Options{})
	require.NoError(t, err)
	result := string(out)

	assert.Contains(t, result, "pub struct Tree {")
	assert.Contains(t, result, "    pub children: Vec<Tree>,")
	assert.NotContains(t, result, "Box<")
}

func TestRender_EnumAndUnion(t *testing.T) {
	b := typegraph.NewBuilder()
	color := b.StringType(names("color"), []typegraph.CaseCount{{Case: "dark red", Count: 1}, {Case: "", Count: 1}})
	id := b.UnionType(names("id"), []typegraph.TypeRef{b.Primitive(typegraph.KindInteger), b.Primitive(typegraph.KindString)})
	b.AddTopLevel("color", color)
	b.AddTopLevel("id", id)
	b.AddTopLevel("flags", b.ArrayType(b.Primitive(typegraph.KindBool)))

	out, err := (&Target{}).Render(b.Finish(), render.Options{Header: []string{"from samples"}})
	require.NoError(t, err)
	result := string(out)

	assert.True(t, strings.HasPrefix(result, "// from samples\n"))
	assert.Contains(t, result, "pub enum Color {\n    #[serde(rename = \"dark red\")]\n    DarkRed,\n    #[serde(rename = \"\")]\n    Empty,\n}")
	assert.Contains(t, result, "#[serde(untagged)]\npub enum Id {")
	assert.Contains(t, result, "    Integer(i64),")
	assert.Contains(t, result, "    String(String),")
	assert.Contains(t, result, "pub type Flags = Vec<bool>;")
}

func TestRender_SelfReferenceIsBoxed(t *testing.T) {
	b := typegraph.NewBuilder()
	node := b.ReserveObject(names("node"))
	b.SetObjectProperties(node, []typegraph.Property{{Name: "next", Type: node}})
	b.AddTopLevel("node", node)

	out, err := (&Target{}).Render(b.Finish(), render.Options{})
	require.NoError(t, err)
	assert.Contains(t, string(out), "    pub next: Box<Node>,")
}

func TestRender_PathKeywords(t *testing.T) {
	b := typegraph.NewBuilder()
	str := b.Primitive(typegraph.KindString)
	rel := b.StringType(names("rel"), []typegraph.CaseCount{{Case: "self", Count: 2}, {Case: "next", Count: 1}})
	link := b.ObjectType(names("self"), []typegraph.Property{
		{Name: "self", Type: str},
		{Name: "super", Type: str},
		{Name: "crate", Type: str},
		{Name: "Self", Type: rel},
	})
	b.AddTopLevel("self", link)

	out, err := (&Target{}).Render(b.Finish(), render.Options{})
	require.NoError(t, err)
	result := string(out)

	assert.Contains(t, result, "pub struct Self2 {")
	assert.Contains(t, result, "    #[serde(rename = \"self\")]\n    pub self_: String,")
	assert.Contains(t, result, "    #[serde(rename = \"super\")]\n    pub super_: String,")
	assert.Contains(t, result, "    #[serde(rename = \"crate\")]\n    pub crate_: String,")
	assert.Contains(t, result, "    #[serde(rename = \"Self\")]\n    pub self_2: Rel,")
	assert.Contains(t, result, "    #[serde(rename = \"self\")]\n    Self_,")
	assert.NotContains(t, result, "r#crate")
	assert.NotContains(t, result, "r#self")
}

func TestTarget_Metadata(t *testing.T) {
	target := &Target{}
	assert.Equal(t, "rust", target.Name())
	assert.Equal(t, ".rs", target.FileExtension())
}
