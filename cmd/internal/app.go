// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package internal contains the main application logic for the CLI.
package internal

import (
	"context"

	"github.com/dacolabs/typegen/internal/commands"
	"github.com/dacolabs/typegen/internal/render"
	"github.com/dacolabs/typegen/internal/render/cpp"
	"github.com/dacolabs/typegen/internal/render/gotypes"
	"github.com/dacolabs/typegen/internal/render/jsonschema"
	"github.com/dacolabs/typegen/internal/render/rust"
)

// Targets returns every target the CLI ships with.
func Targets() render.Register {
	return render.NewRegister(
		&cpp.Target{},
		&gotypes.Target{},
		&jsonschema.Target{},
		&rust.Target{},
	)
}

// Run is the main application logic, extracted for testability.
// It accepts OS dependencies as parameters (context, arguments).
func Run(ctx context.Context, args []string) error {
	rootCmd := commands.NewRootCmd(Targets())
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}
