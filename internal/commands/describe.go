// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dacolabs/sanity-codegen/internal/prompts"
	"github.com/dacolabs/sanity-codegen/internal/schema"
	"github.com/dacolabs/sanity-codegen/internal/session"
)

func (a *app) newDescribeCmd() *cobra.Command {
	var (
		output      string
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "describe [SCHEMA]",
		Short: "Show the project overview or the field tree of a schema",
		Long: `Without arguments, show the resolved configuration and the schemas of the
snapshot. With a schema name, show its field tree; -o json and -o yaml print
the schema as it is stored in the snapshot.`,
		Example: `  # Describe the project
  sanity-codegen describe

  # Field tree of a schema
  sanity-codegen describe Blog_Post

  # Schema as YAML
  sanity-codegen describe Blog_Post -o yaml

  # Pick the schema interactively
  sanity-codegen describe -I`,
		Args:    cobra.MaximumNArgs(1),
		PreRunE: a.preRunLoad(),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := session.RequireFromCommand(cmd)
			if err != nil {
				return err
			}
			if interactive && len(args) == 0 {
				if len(sc.Roots) == 0 {
					return fmt.Errorf("no schemas in %s", sc.Config.Input)
				}
				name, err := prompts.RunRootForm("Schema to describe", sc.Roots)
				if err != nil {
					return err
				}
				args = []string{name}
			}
			return runDescribe(cmd.OutOrStdout(), sc, args, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "text", "Output format (text, json or yaml)")
	cmd.Flags().BoolVarP(&interactive, "interactive", "I", false, "Pick the schema interactively")
	return cmd
}

func runDescribe(out io.Writer, sc *session.Context, names []string, output string) error {
	if output != "text" {
		format, err := schema.ParseFormat(output)
		if err != nil {
			return err
		}
		roots, err := sc.Select(names...)
		if err != nil {
			return err
		}
		return schema.Write(out, roots, format)
	}

	if len(names) == 0 {
		cfg := sc.Config
		prompts.PrintResult(out, []prompts.ResultField{
			{Label: "Input", Value: cfg.Input},
			{Label: "Output", Value: cfg.Output},
			{Label: "Formats", Value: strings.Join(cfg.Formats, ", ")},
			{Label: "Combine", Value: fmt.Sprint(cfg.CombineEnabled())},
			{Label: "Validate", Value: fmt.Sprint(cfg.ValidationEnabled())},
		}, "")
		prompts.PrintResult(out, []prompts.ResultField{{Label: "Schemas", Value: ""}}, "")
		return runTypesList(out, sc)
	}

	roots, err := sc.Select(names...)
	if err != nil {
		return err
	}
	root := roots[0]
	prompts.PrintResult(out, []prompts.ResultField{
		{Label: "Name", Value: schema.Sanitize(root.Name)},
		{Label: "Kind", Value: string(root.Kind)},
		{Label: "Title", Value: root.Title},
		{Label: "Description", Value: root.Description},
		{Label: "Slug", Value: fmt.Sprint(schema.HasSlug(root))},
	}, "")
	_, _ = fmt.Fprintln(out)
	writeTree(out, root.Fields, 0)
	return nil
}

// writeTree prints one line per field, indented by depth.
func writeTree(out io.Writer, fields []*schema.Field, depth int) {
	for _, f := range fields {
		_, _ = fmt.Fprintf(out, "%s%s: %s\n", strings.Repeat("  ", depth), f.Name, fieldSummary(f))
		writeTree(out, f.Fields, depth+1)
	}
}

func fieldSummary(f *schema.Field) string {
	summary := string(f.Kind)
	switch {
	case f.Kind == schema.KindReference && len(f.To) > 0:
		summary += " -> " + strings.Join(f.To, " | ")
	case f.Kind == schema.KindArray:
		summary += " of " + strings.Join(f.Of, " | ")
	case len(f.PredefinedList()) > 0:
		values := make([]string, 0, len(f.PredefinedList()))
		for _, opt := range f.PredefinedList() {
			values = append(values, opt.Value)
		}
		summary += " (" + strings.Join(values, ", ") + ")"
	}
	var flags []string
	if f.Hidden {
		flags = append(flags, "hidden")
	}
	if f.ReadOnly {
		flags = append(flags, "read-only")
	}
	if len(flags) > 0 {
		summary += " [" + strings.Join(flags, ", ") + "]"
	}
	return summary
}
