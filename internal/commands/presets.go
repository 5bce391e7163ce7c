// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dacolabs/sanity-codegen/internal/presets"
	"github.com/dacolabs/sanity-codegen/internal/schema"
)

func newPresetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "Browse the bundled starter schemas",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the bundled presets",
		Example: `  # List presets
  sanity-codegen presets list`,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := presets.List()
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "NAME\tTITLE\tSCHEMAS\tDESCRIPTION")
			for _, p := range list {
				_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", p.Name, p.Title, p.Roots, p.Description)
			}
			return w.Flush()
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show NAME",
		Short: "Print the snapshot of a preset",
		Example: `  # Print a preset as JSON
  sanity-codegen presets show hero_banner`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			roots, err := presets.Get(args[0])
			if err != nil {
				return err
			}
			return schema.Write(cmd.OutOrStdout(), roots, schema.JSON)
		},
	})

	return cmd
}
