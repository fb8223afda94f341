// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/dacolabs/typegen/internal/config"
	"github.com/dacolabs/typegen/internal/render"
	"github.com/dacolabs/typegen/internal/render/cpp"
	"github.com/dacolabs/typegen/internal/render/gotypes"
	"github.com/dacolabs/typegen/internal/render/rust"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const orderSample = `{"id": 1, "status": "shipped", "items": [{"sku": "A-1", "qty": 2}]}`

func testTargets() render.Register {
	return render.NewRegister(&cpp.Target{}, &gotypes.Target{}, &rust.Target{})
}

// inTempProject changes into a fresh directory holding order.json.
func inTempProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "order.json"), []byte(orderSample), 0o600))

	origDir, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	require.NoError(t, os.Chdir(dir))
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := NewRootCmd(testTargets())
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestNewRootCmd_Subcommands(t *testing.T) {
	root := NewRootCmd(testTargets())
	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"init", "generate", "targets", "version"})
}

func TestGenerate_Stdout(t *testing.T) {
	inTempProject(t)

	out, err := execute(t, "generate", "--target", "rust", "--non-interactive", "--stdout", "order.json")
	require.NoError(t, err)

	assert.Contains(t, out, "pub struct Order {")
	assert.Contains(t, out, "pub struct Item {")
	assert.Contains(t, out, "    pub items: Vec<Item>,")
	assert.Contains(t, out, "pub enum Status {")
}

func TestGenerate_FlagsOverrideInference(t *testing.T) {
	inTempProject(t)

	out, err := execute(t, "generate", "-t", "rust", "--enums=false", "--non-interactive", "--stdout", "--name", "purchase", "order.json")
	require.NoError(t, err)

	assert.Contains(t, out, "pub struct Purchase {")
	assert.Contains(t, out, "    pub status: String,")
	assert.NotContains(t, out, "pub enum")
}

func TestGenerate_EnvSelectsTarget(t *testing.T) {
	inTempProject(t)
	t.Setenv("TYPEGEN_TARGET", "cpp")

	out, err := execute(t, "generate", "--non-interactive", "--stdout", "order.json")
	require.NoError(t, err)

	assert.Contains(t, out, "#pragma once")
	assert.Contains(t, out, "struct Order {")
}

func TestGenerate_FromConfig(t *testing.T) {
	dir := inTempProject(t)

	cfg := config.Default()
	cfg.Target = "go"
	cfg.Output = "models"
	cfg.Package = "models"
	cfg.Inputs = []config.Input{{Name: "order", Files: []string{"order.json"}}}
	require.NoError(t, cfg.Save(filepath.Join(dir, "typegen.yaml")))

	out, err := execute(t, "generate", "--non-interactive")
	require.NoError(t, err)
	assert.Contains(t, out, "Generated 1 top-level type(s)")

	data, err := os.ReadFile(filepath.Join(dir, "models", "order.go"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "package models")
	assert.Contains(t, string(data), "type Order struct {")
}

func TestGenerate_Check(t *testing.T) {
	dir := inTempProject(t)

	_, err := execute(t, "generate", "-t", "rust", "--non-interactive", "order.json")
	require.NoError(t, err)

	out, err := execute(t, "generate", "-t", "rust", "--non-interactive", "--check", "order.json")
	require.NoError(t, err)
	assert.Empty(t, out)

	outFile := filepath.Join(dir, "types", "order.rs")
	require.NoError(t, os.WriteFile(outFile, []byte("// stale\n"), 0o600))

	out, err = execute(t, "generate", "-t", "rust", "--non-interactive", "--check", "order.json")
	assert.ErrorIs(t, err, ErrStale)
	assert.Contains(t, out, "@@")
	assert.Contains(t, out, "+++ generated")

	data, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Equal(t, "// stale\n", string(data))
}

func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{
			name:    "no inputs",
			args:    []string{"generate", "-t", "rust", "--non-interactive"},
			wantErr: "no inputs",
		},
		{
			name:    "no target",
			args:    []string{"generate", "--non-interactive", "order.json"},
			wantErr: "no target selected",
		},
		{
			name:    "unknown target",
			args:    []string{"generate", "-t", "cobol", "--non-interactive", "order.json"},
			wantErr: `unsupported target "cobol"`,
		},
		{
			name:    "invalid policy",
			args:    []string{"generate", "-t", "rust", "--string-policy", "merge", "--non-interactive", "order.json"},
			wantErr: "invalid configuration",
		},
		{
			name:    "missing sample",
			args:    []string{"generate", "-t", "rust", "--non-interactive", "--stdout", "missing.json"},
			wantErr: "failed to open samples",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inTempProject(t)
			_, err := execute(t, tt.args...)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestInit_NonInteractive(t *testing.T) {
	dir := inTempProject(t)

	out, err := execute(t, "init", "--non-interactive", "--target", "rust", "--input", "order", "--files", "order.json, extra.json")
	require.NoError(t, err)
	assert.Contains(t, out, "Initialization completed")

	cfg, err := config.Load(filepath.Join(dir, "typegen.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "rust", cfg.Target)
	assert.Equal(t, "types", cfg.Output)
	require.Len(t, cfg.Inputs, 1)
	assert.Equal(t, []string{"order.json", "extra.json"}, cfg.Inputs[0].Files)

	_, err = execute(t, "init", "--non-interactive")
	assert.ErrorContains(t, err, "already initialized")
}

func TestInit_UnknownTarget(t *testing.T) {
	inTempProject(t)

	_, err := execute(t, "init", "--non-interactive", "--target", "cobol")
	assert.ErrorIs(t, err, render.ErrUnknownTarget)
}

func TestTargets(t *testing.T) {
	out, err := execute(t, "targets")
	require.NoError(t, err)
	assert.Contains(t, out, "cpp")
	assert.Contains(t, out, ".hpp")
	assert.Contains(t, out, "rust")
	assert.Contains(t, out, ".rs")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "typegen version")
	assert.Contains(t, out, "targets: cpp, go, rust")

	out, err = execute(t, "version", "--short")
	require.NoError(t, err)
	assert.NotContains(t, out, "targets:")
	assert.NotEmpty(t, out)
}
