// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dacolabs/sanity-codegen/internal/remote"
	"github.com/dacolabs/sanity-codegen/internal/schema"
	"github.com/dacolabs/sanity-codegen/internal/session"
	"github.com/dacolabs/sanity-codegen/internal/translate"
)

type exportOptions struct {
	github string
	format string
	file   string
}

func (a *app) newExportCmd() *cobra.Command {
	opts := &exportOptions{}

	cmd := &cobra.Command{
		Use:   "export [SCHEMA...]",
		Short: "Write the snapshot, or a subset of it, as JSON or YAML",
		Long: fmt.Sprintf(`Write the snapshot, or the named schemas of it, as JSON or YAML.

With --github the snapshot is fetched from a GitHub repository instead of
the project. The repository must contain %s.`, remote.SnapshotPath),
		Example: `  # Convert the project snapshot to YAML
  sanity-codegen export --format yaml --file schemas.yaml

  # Fetch a snapshot published on GitHub
  sanity-codegen export --github acme/website@main --file schemas.json`,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.github != "" {
				return nil
			}
			return a.preRunLoad()(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runExport(cmd, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.github, "github", "", "GitHub repository to fetch the snapshot from (owner/repo[@branch] or URL)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "json", "Output format (json or yaml)")
	cmd.Flags().StringVar(&opts.file, "file", "", "Write to a file instead of standard output")

	return cmd
}

func (a *app) runExport(cmd *cobra.Command, names []string, opts *exportOptions) error {
	format, err := schema.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	var roots []*schema.Field
	if opts.github != "" {
		repo, err := remote.ParseGitHubURL(opts.github)
		if err != nil {
			return err
		}
		all, err := remote.NewClient(a.log).LoadGitHub(cmd.Context(), repo, a.opts.selector)
		if err != nil {
			return err
		}
		sc := &session.Context{Roots: all, Registry: translate.NewRegistry(all)}
		if roots, err = sc.Select(names...); err != nil {
			return err
		}
	} else {
		sc, err := session.RequireFromCommand(cmd)
		if err != nil {
			return err
		}
		if roots, err = sc.Select(names...); err != nil {
			return err
		}
	}

	var out io.Writer = cmd.OutOrStdout()
	if opts.file != "" {
		f, err := os.Create(opts.file) //nolint:gosec // path is provided by the user
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", opts.file, err)
		}
		defer f.Close() //nolint:errcheck
		out = f
	}

	if err := schema.Write(out, roots, format); err != nil {
		return err
	}
	if opts.file != "" {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported %d schema(s) to %s\n", len(roots), opts.file)
	}
	return nil
}
