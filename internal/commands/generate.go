// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dacolabs/typegen/internal/config"
	"github.com/dacolabs/typegen/internal/logging"
	"github.com/dacolabs/typegen/internal/pipeline"
	"github.com/dacolabs/typegen/internal/prompts"
	"github.com/dacolabs/typegen/internal/render"
	"github.com/dacolabs/typegen/internal/session"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type generateOptions struct {
	name           string
	stdout         bool
	check          bool
	nonInteractive bool
}

// flagKeys maps generate flags to config keys.
var flagKeys = map[string]string{
	"target":         "target",
	"output":         "output",
	"package":        "package",
	"enums":          "inference.enums",
	"dates":          "inference.dates",
	"intern-limit":   "inference.intern_limit",
	"string-policy":  "inference.string_policy",
	"max-enum-cases": "inference.max_enum_cases",
	"widen-integers": "inference.widen_integers",
	"log-level":      "log.level",
	"log-format":     "log.format",
}

func newGenerateCmd(targets render.Register) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate [sample files...]",
		Short: "Infer types from samples and render them",
		Long: fmt.Sprintf(`Infer types from sample documents and render them for a target.

Without arguments the inputs listed in typegen.yaml are used. With arguments
the files are the samples of a single top-level type.

Every flag can also be set with a TYPEGEN_* environment variable, e.g.
TYPEGEN_TARGET or TYPEGEN_INFERENCE_ENUMS.

Available targets: %s`, strings.Join(targets.Available(), ", ")),
		Example: `  # Use the inputs from typegen.yaml
  typegen generate

  # Generate Rust types for a set of samples
  typegen generate --target rust --name order samples/*.json

  # Print C++ to stdout without enum inference
  typegen generate -t cpp --enums=false --stdout order.json

  # Verify committed types are up to date (for CI)
  typegen generate --check`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, targets, opts, args)
		},
	}

	flags := cmd.Flags()
	flags.StringP("target", "t", "", fmt.Sprintf("Target language (%s)", strings.Join(targets.Available(), ", ")))
	flags.StringP("output", "o", "", "Output directory")
	flags.StringP("package", "p", "", "Package or namespace of generated code")
	flags.Bool("enums", true, "Infer enums from repeated strings")
	flags.Bool("dates", true, "Infer date, time and date-time strings")
	flags.Int("intern-limit", 0, "Longest string considered for enums (0 for the default)")
	flags.String("string-policy", "", "How enums combine with plain strings (collapse, keep-enum)")
	flags.Int("max-enum-cases", 0, "Enums with more cases become strings (0 for no limit)")
	flags.Bool("widen-integers", false, "Merge integers into doubles when both are seen")
	flags.String("log-level", "", "Log level (debug, info, warn, error)")
	flags.String("log-format", "", "Log format (text, json)")
	flags.StringVarP(&opts.name, "name", "n", "", "Top-level type name for sample files given as arguments")
	flags.BoolVar(&opts.stdout, "stdout", false, "Write generated code to stdout")
	flags.BoolVar(&opts.check, "check", false, "Fail with a diff when the output file is out of date")
	flags.BoolVar(&opts.nonInteractive, "non-interactive", false, "Fail instead of prompting for missing settings")

	return cmd
}

func bindFlags(flags *pflag.FlagSet) (*viper.Viper, error) {
	v := config.NewViper()
	for flag, key := range flagKeys {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return nil, fmt.Errorf("failed to bind --%s: %w", flag, err)
		}
	}
	return v, nil
}

func runGenerate(cmd *cobra.Command, targets render.Register, opts *generateOptions, args []string) error {
	ctx, err := session.RequireFromCommand(cmd)
	if err != nil {
		return err
	}

	v, err := bindFlags(cmd.Flags())
	if err != nil {
		return err
	}
	cfg := *ctx.Config
	cfg.Overlay(v)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	inputs := resolveInputs(ctx, opts, args)
	if len(inputs) == 0 {
		return errors.New("no inputs: pass sample files or add inputs to typegen.yaml")
	}

	if !opts.nonInteractive && stdinIsTerminal() && (cfg.Target == "" || (cfg.Output == "" && !opts.stdout)) {
		if err := prompts.RunGenerateForm(&cfg.Target, &cfg.Output, targets.Available()); err != nil {
			return err
		}
	}
	if cfg.Target == "" {
		return errors.New("no target selected")
	}

	target, err := targets.Get(cfg.Target)
	if err != nil {
		return fmt.Errorf("unsupported target %q. Available targets: %s",
			cfg.Target, strings.Join(targets.Available(), ", "))
	}

	logger, err := logging.New(logging.Config{
		Level:  cfg.Log.Level,
		Format: logging.Format(cfg.Log.Format),
		Output: cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}

	result, err := pipeline.New(logger).Run(cmd.Context(), &cfg, inputs, target)
	if err != nil {
		return err
	}

	if opts.stdout {
		_, err := cmd.OutOrStdout().Write(result.Code)
		return err
	}

	if cfg.Output == "" {
		return errors.New("no output directory")
	}
	outDir := ctx.Path(cfg.Output)
	outFile := filepath.Join(outDir, outputBase(inputs)+target.FileExtension())
	if opts.check {
		return checkOutput(cmd.OutOrStdout(), outFile, result.Code)
	}

	if err := os.MkdirAll(outDir, 0o750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(outFile, result.Code, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", outFile, err)
	}

	prompts.PrintResult(cmd.OutOrStdout(), []prompts.ResultField{
		{Label: "Target", Value: target.Name()},
		{Label: "Samples", Value: strconv.Itoa(result.Samples)},
		{Label: "File", Value: outFile},
	}, fmt.Sprintf("Generated %d top-level type(s)", len(inputs)))
	return nil
}

// resolveInputs returns the sample files from args, or the configured inputs
// with paths resolved against the project directory.
func resolveInputs(ctx *session.Context, opts *generateOptions, args []string) []pipeline.Input {
	if len(args) > 0 {
		name := opts.name
		if name == "" {
			base := filepath.Base(args[0])
			name = strings.TrimSuffix(base, filepath.Ext(base))
		}
		return []pipeline.Input{{Name: name, Files: args}}
	}

	inputs := make([]pipeline.Input, len(ctx.Config.Inputs))
	for i, in := range ctx.Config.Inputs {
		files := make([]string, len(in.Files))
		for j, f := range in.Files {
			files[j] = ctx.Path(f)
		}
		inputs[i] = pipeline.Input{Name: in.Name, Files: files}
	}
	return inputs
}

func outputBase(inputs []pipeline.Input) string {
	if len(inputs) == 1 {
		return render.ToSnakeCase(inputs[0].Name)
	}
	return "types"
}
