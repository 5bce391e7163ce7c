// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package prompts

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/dacolabs/sanity-codegen/internal/schema"
)

// RunRootsForm asks which roots of a snapshot to generate and returns their
// sanitized names. Every root starts selected.
func RunRootsForm(roots []*schema.Field) ([]string, error) {
	var names []string
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Schemas to generate").
				Options(rootOptions(roots)...).
				Filterable(true).
				Validate(nonEmptyValidator[string]("schema")).
				Value(&names),
		),
	).WithTheme(Theme()).Run()
	return names, err
}

// RunRootForm asks for a single root and returns its sanitized name.
func RunRootForm(title string, roots []*schema.Field) (string, error) {
	var name string
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(title).
				Options(rootOptions(roots)...).
				Filtering(true).
				Height(8).
				Value(&name),
		),
	).WithTheme(Theme()).Run()
	return name, err
}

func rootOptions(roots []*schema.Field) []huh.Option[string] {
	options := make([]huh.Option[string], 0, len(roots))
	for _, r := range roots {
		if r.Name == "" {
			continue
		}
		name := schema.Sanitize(r.Name)
		label := fmt.Sprintf("%s (%s)", name, r.Kind)
		options = append(options, huh.NewOption(label, name).Selected(true))
	}
	return options
}
