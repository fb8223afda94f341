// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package commands contains all CLI command definitions.
package commands

import (
	"github.com/dacolabs/typegen/internal/render"
	"github.com/dacolabs/typegen/internal/session"
	"github.com/spf13/cobra"
)

// NewRootCmd creates and returns the root command for the CLI.
func NewRootCmd(targets render.Register) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "typegen",
		Short: "Infer types from JSON samples and generate code",
		Long: `typegen infers a type graph from sample JSON or YAML documents and
renders it as source code for a target language.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newInitCmd(targets))
	rootCmd.AddCommand(newTargetsCmd(targets))
	rootCmd.AddCommand(newVersionCmd(targets))
	registerGenerateCmd(rootCmd, targets)

	return rootCmd
}

func registerGenerateCmd(parent *cobra.Command, targets render.Register) {
	cmd := newGenerateCmd(targets)
	cmd.PersistentPreRunE = session.PreRunLoad
	parent.AddCommand(cmd)
}
