// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"fmt"

	"github.com/dacolabs/typegen/internal/render"
	"github.com/dacolabs/typegen/internal/version"
	"github.com/spf13/cobra"
)

func newVersionCmd(targets render.Register) *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show the typegen version and supported targets",
		Example: `  # Show the build and the targets it can render
  typegen version

  # Print only the version number
  typegen version --short`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			build := version.Current()
			out := build.Report(targets.Available())
			if short {
				out = build.Version
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}

	cmd.Flags().BoolVar(&short, "short", false, "Print only the version number")

	return cmd
}
