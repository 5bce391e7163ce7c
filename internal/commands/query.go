// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dacolabs/sanity-codegen/internal/codegen"
	"github.com/dacolabs/sanity-codegen/internal/schema"
	"github.com/dacolabs/sanity-codegen/internal/session"
	"github.com/dacolabs/sanity-codegen/internal/translate/groq"
	"github.com/dacolabs/sanity-codegen/internal/translate/typescript"
)

type queryOptions struct {
	bySlug bool
	all    bool
}

func (a *app) newQueryCmd() *cobra.Command {
	opts := &queryOptions{}

	cmd := &cobra.Command{
		Use:   "query [SCHEMA...]",
		Short: "Print the GROQ queries of schemas",
		Long: `Print the GROQ queries of schemas, ready to paste into a front-end.

By default the query constants and fetch helpers are printed. --all and
--by-slug print the bare query fetching every document, or the one
fetching a document by its slug.`,
		Example: `  # Query constants and helpers for every schema
  sanity-codegen query

  # Bare query fetching a blog post by slug
  sanity-codegen query Blog_Post --by-slug`,
		PreRunE: a.preRunLoad(),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := session.RequireFromCommand(cmd)
			if err != nil {
				return err
			}
			if opts.bySlug && opts.all {
				return fmt.Errorf("--all and --by-slug are mutually exclusive")
			}
			return printSections(cmd, sc, args, func(r *schema.Field) (string, error) {
				switch {
				case opts.bySlug:
					return groq.BySlugQuery(r, true, sc.Registry), nil
				case opts.all:
					return groq.AllQuery(r, true, sc.Registry), nil
				}
				return groq.Declarations(r, sc.Registry), nil
			})
		},
	}

	cmd.Flags().BoolVar(&opts.bySlug, "by-slug", false, "Print only the query fetching a document by slug")
	cmd.Flags().BoolVar(&opts.all, "all", false, "Print only the query fetching every document")

	return cmd
}

func (a *app) newInterfaceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "interface [SCHEMA...]",
		Short: "Print the TypeScript interfaces of schemas",
		Example: `  # Interface of one schema
  sanity-codegen interface Blog_Post`,
		PreRunE: a.preRunLoad(),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := session.RequireFromCommand(cmd)
			if err != nil {
				return err
			}
			return printSections(cmd, sc, args, func(r *schema.Field) (string, error) {
				return typescript.Interface(r, true), nil
			})
		},
	}
}

// printSections renders the named roots, or every root, to the command
// output.
func printSections(cmd *cobra.Command, sc *session.Context, names []string, render func(*schema.Field) (string, error)) error {
	roots, err := sc.Select(names...)
	if err != nil {
		return err
	}
	out, err := codegen.Sections(roots, render)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(out, "\n"))
	return err
}
