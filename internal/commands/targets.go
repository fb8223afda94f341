// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"github.com/dacolabs/typegen/internal/prompts"
	"github.com/dacolabs/typegen/internal/render"
	"github.com/spf13/cobra"
)

func newTargetsCmd(targets render.Register) *cobra.Command {
	return &cobra.Command{
		Use:   "targets",
		Short: "List the available target languages",
		Example: `  # List targets with their file extensions
  typegen targets`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTargets(cmd, targets)
		},
	}
}

func runTargets(cmd *cobra.Command, targets render.Register) error {
	names := targets.Available()
	fields := make([]prompts.ResultField, 0, len(names))
	for _, name := range names {
		t, err := targets.Get(name)
		if err != nil {
			return err
		}
		fields = append(fields, prompts.ResultField{Label: name, Value: t.FileExtension()})
	}
	prompts.PrintResult(cmd.OutOrStdout(), fields, "")
	return nil
}
