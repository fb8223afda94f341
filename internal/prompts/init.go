// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package prompts

import (
	"github.com/charmbracelet/huh"
)

// InitAnswers holds the values collected by RunInitForm.
type InitAnswers struct {
	Target  string
	Output  string
	Package string
	Input   string
	// Files is a comma-separated list of sample files.
	Files string
}

// RunInitForm runs the interactive form for the init command.
// Fields already set in answers are used as defaults.
func RunInitForm(answers *InitAnswers, targets []string) error {
	return huh.NewForm(
		huh.NewGroup(
			targetSelect(&answers.Target, targets),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Output directory").
				Placeholder("types").
				Validate(requiredValidator("output directory")).
				Value(&answers.Output),
			huh.NewInput().
				Title("Package or namespace").
				Description("Leave empty for the target default").
				Value(&answers.Package),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Top-level type name").
				Description("Leave empty to add inputs later").
				Validate(func(s string) error {
					if s == "" {
						return nil
					}
					return ValidateInputName(s)
				}).
				Value(&answers.Input),
			huh.NewInput().
				Title("Sample files").
				Placeholder("samples/order.json,samples/order.yaml").
				Value(&answers.Files),
		),
	).WithTheme(Theme()).Run()
}
