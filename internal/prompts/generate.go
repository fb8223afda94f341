// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package prompts

import "github.com/charmbracelet/huh"

// RunGenerateForm prompts for the generation settings that are still empty.
// It does nothing when both are set.
func RunGenerateForm(target, output *string, targets []string) error {
	var fields []huh.Field
	if *target == "" {
		fields = append(fields, targetSelect(target, targets))
	}
	if *output == "" {
		fields = append(fields, huh.NewInput().
			Title("Output directory").
			Placeholder("types").
			Validate(requiredValidator("output directory")).
			Value(output))
	}
	if len(fields) == 0 {
		return nil
	}
	return huh.NewForm(huh.NewGroup(fields...)).WithTheme(Theme()).Run()
}
