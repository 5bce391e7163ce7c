// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package prompts

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/dacolabs/sanity-codegen/internal/presets"
	"github.com/dacolabs/sanity-codegen/internal/schema"
)

// RunFieldForm prompts the user to describe a field. When root is true only
// Document and Object kinds are offered. types lists the custom type names
// a field may refer to; existing holds the sibling names already taken.
func RunFieldForm(f *schema.Field, root bool, types []string, existing map[string]bool) error {
	if err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Placeholder("e.g., Blog Post").
				Value(&f.Name).
				Validate(identifierValidator(existing)),
			huh.NewSelect[schema.Kind]().
				Title("Type").
				Options(kindOptions(root, types)...).
				Filtering(!root).
				Height(10).
				Value(&f.Kind),
			huh.NewInput().
				Title("Description (optional)").
				Value(&f.Description),
		),
	).WithTheme(Theme()).Run(); err != nil {
		return err
	}
	f.Title = presets.Title(f.Name)

	switch f.Kind {
	case schema.KindDocument, schema.KindObject:
		return runChildrenForm(f, types)

	case schema.KindReference:
		return runReferenceForm(f, types)

	case schema.KindArray:
		return runArrayForm(f, types)

	case schema.KindImage:
		return runImageForm(f)

	case schema.KindString:
		return runStringForm(f)
	}
	return nil
}

func runChildrenForm(f *schema.Field, types []string) error {
	f.Fields = []*schema.Field{}
	names := make(map[string]bool)
	for {
		var addField bool
		if err := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title("Add a field to " + f.Name + "?").
					Affirmative("Yes").
					Negative("No").
					Value(&addField),
			),
		).WithTheme(Theme()).Run(); err != nil {
			return err
		}
		if !addField {
			return nil
		}

		child := &schema.Field{}
		if err := RunFieldForm(child, false, types, names); err != nil {
			return err
		}
		names[child.Name] = true
		f.Fields = append(f.Fields, child)
	}
}

func runReferenceForm(f *schema.Field, types []string) error {
	if len(types) == 0 {
		return errors.New("a reference needs at least one custom type to point to")
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Referenced types").
				Options(huh.NewOptions(types...)...).
				Validate(nonEmptyValidator[string]("type")).
				Value(&f.To),
			huh.NewConfirm().
				Title("Weak reference?").
				Value(&f.Weak),
		),
	).WithTheme(Theme()).Run()
}

func runArrayForm(f *schema.Field, types []string) error {
	members := make([]string, 0, len(schema.BuiltinKinds)+len(types))
	for _, k := range schema.BuiltinKinds {
		if k != schema.KindArray {
			members = append(members, string(k))
		}
	}
	members = append(members, types...)

	f.Options = &schema.Options{}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Member types").
				Options(huh.NewOptions(members...)...).
				Filterable(true).
				Validate(nonEmptyValidator[string]("member type")).
				Value(&f.Of),
			huh.NewSelect[string]().
				Title("Layout").
				Options(
					huh.NewOption("Default", ""),
					huh.NewOption("Grid", schema.LayoutGrid),
					huh.NewOption("List", schema.LayoutList),
					huh.NewOption("Tags", schema.LayoutTags),
				).
				Value(&f.Options.Layout),
			huh.NewConfirm().
				Title("Sortable?").
				Value(&f.Options.Sortable),
		),
	).WithTheme(Theme()).Run()
}

func runImageForm(f *schema.Field) error {
	f.Options = &schema.Options{}
	f.InternalConfig = &schema.InternalConfig{}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Enable hotspot?").
				Value(&f.Options.Hotspot),
			huh.NewInput().
				Title("Accepted file types (optional)").
				Placeholder("e.g., image/*").
				Value(&f.Options.Accept),
			huh.NewConfirm().
				Title("Add a caption field?").
				Value(&f.InternalConfig.Caption),
			huh.NewConfirm().
				Title("Add an alternative text field?").
				Value(&f.InternalConfig.Alt),
		),
	).WithTheme(Theme()).Run()
}

func runStringForm(f *schema.Field) error {
	var values string
	if err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Allowed values (comma-separated, optional)").
				Description("Use title:value to set a title different from the value").
				Placeholder("e.g., Light:light,Dark:dark").
				Value(&values),
		),
	).WithTheme(Theme()).Run(); err != nil {
		return err
	}

	if list := parseListOptions(values); len(list) > 0 {
		f.Options = &schema.Options{List: list}
		f.InternalConfig = &schema.InternalConfig{Predefined: true}
	}
	return nil
}

// kindOptions lists the built-in kinds followed by the custom types. Roots
// may only be documents or objects.
func kindOptions(root bool, types []string) []huh.Option[schema.Kind] {
	if root {
		return []huh.Option[schema.Kind]{
			huh.NewOption("Document", schema.KindDocument),
			huh.NewOption("Object", schema.KindObject),
		}
	}
	options := make([]huh.Option[schema.Kind], 0, len(schema.BuiltinKinds)+len(types))
	for _, k := range schema.BuiltinKinds {
		options = append(options, huh.NewOption(string(k), k))
	}
	for _, t := range types {
		options = append(options, huh.NewOption(t+" (custom)", schema.Kind(t)))
	}
	return options
}

// parseListOptions reads "a,b" or "Title A:a,Title B:b" into list options.
// Entries without a title are titled after their value.
func parseListOptions(s string) []schema.ListOption {
	var list []schema.ListOption
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		title, value, ok := strings.Cut(part, ":")
		if !ok {
			value = title
			title = presets.Title(value)
		}
		list = append(list, schema.ListOption{
			Title: strings.TrimSpace(title),
			Value: strings.TrimSpace(value),
		})
	}
	return list
}
