// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"

	"github.com/dacolabs/sanity-codegen/internal/codegen"
	"github.com/dacolabs/sanity-codegen/internal/config"
	"github.com/dacolabs/sanity-codegen/internal/prompts"
	"github.com/dacolabs/sanity-codegen/internal/session"
	"github.com/dacolabs/sanity-codegen/internal/watch"
)

type generateOptions struct {
	formats     []string
	output      string
	combine     bool
	watch       bool
	noValidate  bool
	interactive bool
	workers     int
}

func (a *app) newGenerateCmd() *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate [SCHEMA...]",
		Short: "Generate artifacts for the schemas of the snapshot",
		Long: fmt.Sprintf(`Generate artifacts for the schemas of the snapshot.

Without arguments every root schema of the snapshot is generated. Each
format writes one file per schema, or one file holding every schema with
--combine.

Available formats: %s`, strings.Join(config.Formats, ", ")),
		Example: `  # Generate the configured formats for every schema
  sanity-codegen generate

  # Generate two schemas as TypeScript interfaces and queries
  sanity-codegen generate Blog_Post Author --format typescript,groq

  # Pick schemas and formats interactively
  sanity-codegen generate --interactive

  # Regenerate whenever the snapshot changes
  sanity-codegen generate --watch`,
		PreRunE: a.preRunLoad(),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := session.RequireFromCommand(cmd)
			if err != nil {
				return err
			}
			return a.runGenerate(cmd, sc, args, opts)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.formats, "format", "f", nil, fmt.Sprintf("Output formats, comma-separated (%s)", strings.Join(config.Formats, ", ")))
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output directory (overrides the configured output)")
	cmd.Flags().BoolVar(&opts.combine, "combine", false, "Write one file per format holding every schema")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "Regenerate whenever the snapshot changes")
	cmd.Flags().BoolVar(&opts.noValidate, "no-validate", false, "Skip the syntax check of generated files")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "I", false, "Pick schemas and formats interactively")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "Number of parallel workers (default: number of CPUs)")

	return cmd
}

func (a *app) runGenerate(cmd *cobra.Command, sc *session.Context, names []string, opts *generateOptions) error {
	cfg := sc.Config
	flags := &config.Config{Formats: opts.formats, Output: opts.output}
	if cmd.Flags().Changed("combine") {
		flags.Combine = &opts.combine
	}
	if opts.noValidate {
		disabled := false
		flags.Check = &disabled
	}
	cfg = config.Merge(cfg, flags)
	if err := cfg.Validate(); err != nil {
		return err
	}
	sc.Config = cfg

	if opts.interactive {
		var err error
		if len(names) == 0 {
			if names, err = prompts.RunRootsForm(sc.Roots); err != nil {
				return err
			}
		}
		if len(opts.formats) == 0 {
			if cfg.Formats, err = prompts.RunFormatsForm(cfg.Formats); err != nil {
				return err
			}
		}
	}

	generate := func(ctx context.Context) error {
		return a.generateOnce(ctx, cmd, sc, names, opts.workers)
	}

	if !opts.watch {
		return generate(cmd.Context())
	}

	w := watch.New(sc.InputPath(), a.log)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Watching %s for changes (Ctrl+C to stop)\n", cfg.Input)
	return w.Run(cmd.Context(), func(ctx context.Context) error {
		if err := sc.Reload(); err != nil {
			return err
		}
		return generate(ctx)
	})
}

func (a *app) generateOnce(ctx context.Context, cmd *cobra.Command, sc *session.Context, names []string, workers int) error {
	cfg := sc.Config
	roots, err := sc.Select(names...)
	if err != nil {
		return err
	}
	translators, err := translatorsFor(registerTranslators(cfg.ClientImport), cfg.Formats)
	if err != nil {
		return err
	}

	banner := cfg.Banner
	if banner == "" {
		banner = codegen.DefaultBanner
	}

	outDir := sc.OutputPath()
	if err := os.MkdirAll(outDir, 0o750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	gen := codegen.New(osfs.New(outDir), codegen.Options{
		Combine:  cfg.CombineEnabled(),
		Validate: cfg.ValidationEnabled(),
		Banner:   banner,
	}, a.log).WithWorkers(workers)

	results, err := gen.Run(ctx, roots, sc.Registry, translators)
	if err != nil {
		return err
	}

	fields := make([]prompts.ResultField, 0, len(results))
	for _, r := range results {
		fields = append(fields, prompts.ResultField{
			Label: r.Format,
			Value: fmt.Sprintf("%s (%d schema(s), %d bytes)", filepath.Join(cfg.Output, r.Path), len(r.Roots), r.Size),
		})
	}
	prompts.PrintResult(cmd.OutOrStdout(), fields, fmt.Sprintf("Generated %d file(s)", len(results)))
	return nil
}
