// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dacolabs/typegen/internal/config"
	"github.com/dacolabs/typegen/internal/prompts"
	"github.com/dacolabs/typegen/internal/render"
	"github.com/dacolabs/typegen/internal/session"
	"github.com/spf13/cobra"
)

type initOptions struct {
	answers        prompts.InitAnswers
	nonInteractive bool
}

func newInitCmd(targets render.Register) *cobra.Command {
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new typegen project",
		Long:  `Initialize a new typegen project with a typegen.yaml configuration file.`,
		Example: `  # Interactive mode
  typegen init

  # Non-interactive
  typegen init --target rust --input order --files samples/order.json --non-interactive`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, targets, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.answers.Target, "target", "t", "", fmt.Sprintf("Target language (%s)", strings.Join(targets.Available(), ", ")))
	cmd.Flags().StringVarP(&opts.answers.Output, "output", "o", "types", "Output directory")
	cmd.Flags().StringVarP(&opts.answers.Package, "package", "p", "", "Package or namespace of generated code")
	cmd.Flags().StringVarP(&opts.answers.Input, "input", "i", "", "Name of the first top-level type")
	cmd.Flags().StringVarP(&opts.answers.Files, "files", "f", "", "Sample files of the first input, comma-separated")
	cmd.Flags().BoolVar(&opts.nonInteractive, "non-interactive", false, "Run without prompts")

	return cmd
}

func runInit(cmd *cobra.Command, targets render.Register, opts *initOptions) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	cfgPath := filepath.Join(cwd, session.ConfigFileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return errors.New("typegen.yaml already exists; project already initialized")
	}

	if !opts.nonInteractive && stdinIsTerminal() {
		if err := prompts.RunInitForm(&opts.answers, targets.Available()); err != nil {
			return err
		}
	}

	answers := opts.answers
	if answers.Target != "" {
		if _, err := targets.Get(answers.Target); err != nil {
			return err
		}
	}

	cfg := config.Default()
	cfg.Target = answers.Target
	cfg.Output = answers.Output
	cfg.Package = answers.Package
	if answers.Input != "" {
		if err := prompts.ValidateInputName(answers.Input); err != nil {
			return fmt.Errorf("invalid input name: %w", err)
		}
		cfg.Inputs = []config.Input{{Name: answers.Input, Files: splitList(answers.Files)}}
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := cfg.Save(cfgPath); err != nil {
		return fmt.Errorf("failed to write typegen.yaml: %w", err)
	}

	prompts.PrintResult(cmd.OutOrStdout(), []prompts.ResultField{
		{Label: "Config", Value: cfgPath},
	}, "Initialization completed")
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
