// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package prompts

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/dacolabs/sanity-codegen/internal/config"
	"github.com/dacolabs/sanity-codegen/internal/presets"
)

// InitResult holds the answers of RunInitForm.
type InitResult struct {
	Input   string
	Output  string
	Formats []string
	Combine bool
	// Preset is the name of the preset seeding the snapshot, empty for an
	// empty snapshot.
	Preset string
}

// RunInitForm runs the interactive form for the init command. The result is
// pre-filled from defaults.
func RunInitForm(defaults InitResult, available []presets.Preset) (InitResult, error) {
	result := defaults

	presetOptions := []huh.Option[string]{huh.NewOption("None (empty snapshot)", "")}
	for _, p := range available {
		presetOptions = append(presetOptions, huh.NewOption(fmt.Sprintf("%s  (%s)", p.Title, p.Description), p.Name))
	}

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Snapshot file").
				Description("JSON or YAML file holding the schema tree").
				Placeholder("schemas.json").
				Validate(requiredValidator("snapshot file")).
				Value(&result.Input),
			huh.NewSelect[string]().
				Title("Start from a preset").
				Options(presetOptions...).
				Value(&result.Preset),
		),
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Output formats").
				Options(formatOptions(result.Formats)...).
				Validate(nonEmptyValidator[string]("format")).
				Value(&result.Formats),
			huh.NewInput().
				Title("Output directory").
				Placeholder("generated").
				Validate(requiredValidator("output directory")).
				Value(&result.Output),
			huh.NewConfirm().
				Title("Write one combined file per format?").
				Affirmative("Yes").
				Negative("No, one file per schema").
				Value(&result.Combine),
		),
	).WithTheme(Theme()).Run()
	return result, err
}

// RunFormatsForm asks which output formats to generate.
func RunFormatsForm(selected []string) ([]string, error) {
	formats := selected
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Output formats").
				Options(formatOptions(selected)...).
				Validate(nonEmptyValidator[string]("format")).
				Value(&formats),
		),
	).WithTheme(Theme()).Run()
	return formats, err
}

var formatDescriptions = map[string]string{
	"groq":       "GROQ queries and fetch helpers",
	"jsonschema": "JSON Schema of the document shape",
	"markdown":   "Markdown reference page",
	"sanity":     "Sanity schema module (definition, queries, interface)",
	"typescript": "TypeScript interface",
}

func formatOptions(selected []string) []huh.Option[string] {
	isSelected := make(map[string]bool, len(selected))
	for _, s := range selected {
		isSelected[s] = true
	}
	options := make([]huh.Option[string], 0, len(config.Formats))
	for _, f := range config.Formats {
		label := f
		if d, ok := formatDescriptions[f]; ok {
			label = fmt.Sprintf("%-11s %s", f, d)
		}
		options = append(options, huh.NewOption(label, f).Selected(isSelected[f]))
	}
	return options
}
