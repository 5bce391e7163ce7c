// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/dacolabs/sanity-codegen/internal/prompts"
	"github.com/dacolabs/sanity-codegen/internal/schema"
	"github.com/dacolabs/sanity-codegen/internal/session"
)

func (a *app) newTypesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "types",
		Short: "Manage the schema types of the snapshot",
	}

	cmd.AddCommand(a.newTypesListCmd(), a.newTypesAddCmd())
	return cmd
}

func (a *app) newTypesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the schema types of the snapshot",
		Long: `List the root schemas of the snapshot with their kind and field count,
followed by the custom types they use that the snapshot does not define.`,
		Example: `  # List types
  sanity-codegen types list`,
		PreRunE: a.preRunLoad(),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := session.RequireFromCommand(cmd)
			if err != nil {
				return err
			}
			return runTypesList(cmd.OutOrStdout(), sc)
		},
	}
}

func runTypesList(out io.Writer, sc *session.Context) error {
	if len(sc.Roots) == 0 {
		_, _ = fmt.Fprintln(out, "No types defined.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tKIND\tFIELDS\tDESCRIPTION")
	for _, r := range sc.Roots {
		desc := r.Description
		if utf8.RuneCountInString(desc) > 40 {
			desc = string([]rune(desc)[:37]) + "..."
		}
		if desc == "" {
			desc = "-"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", schema.Sanitize(r.Name), r.Kind, len(r.Fields), desc)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if missing := sc.Registry.Unresolved(); len(missing) > 0 {
		_, _ = fmt.Fprintf(out, "\nUnresolved types: %s\n", strings.Join(missing, ", "))
	}
	return nil
}

func (a *app) newTypesAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add",
		Short: "Describe a new schema type and add it to the snapshot",
		Long: `Describe a new document or object type interactively and append it to the
snapshot file.`,
		Example: `  # Add a type
  sanity-codegen types add`,
		PreRunE: a.preRunLoad(),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := session.RequireFromCommand(cmd)
			if err != nil {
				return err
			}
			if sc.Config.Select != "" {
				return errors.New("types add rewrites the whole snapshot and cannot be used with --select")
			}

			existing := make(map[string]bool, len(sc.Roots))
			for _, r := range sc.Roots {
				existing[r.Name] = true
			}
			f := &schema.Field{}
			if err := prompts.RunFieldForm(f, true, sc.Registry.Names(), existing); err != nil {
				return err
			}

			if err := appendRoot(sc, f); err != nil {
				return err
			}
			prompts.PrintResult(cmd.OutOrStdout(), []prompts.ResultField{
				{Label: "Type", Value: schema.Sanitize(f.Name)},
				{Label: "Kind", Value: string(f.Kind)},
				{Label: "Fields", Value: fmt.Sprint(len(f.Fields))},
			}, fmt.Sprintf("Added to %s", sc.Config.Input))
			return nil
		},
	}
}

// appendRoot writes the snapshot back with f as its last root.
func appendRoot(sc *session.Context, f *schema.Field) error {
	roots := append(append([]*schema.Field(nil), sc.Roots...), f)

	path := sc.InputPath()
	out, err := os.Create(path) //nolint:gosec // path comes from the project config
	if err != nil {
		return fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer out.Close() //nolint:errcheck

	if err := schema.Write(out, roots, schema.FormatFromPath(path)); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return sc.Reload()
}
