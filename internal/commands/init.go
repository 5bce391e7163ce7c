// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dacolabs/sanity-codegen/internal/config"
	"github.com/dacolabs/sanity-codegen/internal/presets"
	"github.com/dacolabs/sanity-codegen/internal/prompts"
	"github.com/dacolabs/sanity-codegen/internal/schema"
)

type initOptions struct {
	output         string
	formats        []string
	combine        bool
	preset         string
	nonInteractive bool
}

func (a *app) newInitCmd() *cobra.Command {
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new sanity-codegen project",
		Long: fmt.Sprintf(`Initialize a new sanity-codegen project with a %s configuration file
and a starter snapshot, either empty or copied from a preset.`, config.FileName),
		Example: fmt.Sprintf(`  # Interactive mode
  sanity-codegen init

  # Non-interactive, starting from a preset
  sanity-codegen init --preset photo_gallery --format sanity,jsonschema --non-interactive

Available presets: %s`, strings.Join(presets.Names(), ", ")),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInit(cmd, opts)
		},
	}

	defaults := config.Default()
	cmd.Flags().StringVarP(&opts.output, "output", "o", defaults.Output, "Output directory")
	cmd.Flags().StringSliceVarP(&opts.formats, "format", "f", defaults.Formats, fmt.Sprintf("Output formats (%s)", strings.Join(config.Formats, ", ")))
	cmd.Flags().BoolVar(&opts.combine, "combine", false, "Write one file per format holding every schema")
	cmd.Flags().StringVarP(&opts.preset, "preset", "p", "", "Preset seeding the snapshot")
	cmd.Flags().BoolVar(&opts.nonInteractive, "non-interactive", false, "Run without prompts")

	return cmd
}

func (a *app) runInit(cmd *cobra.Command, opts *initOptions) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	// Check that the current directory isn't already initialized
	cfgPath := filepath.Join(cwd, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return fmt.Errorf("%s already exists; project already initialized", config.FileName)
	}

	answers := prompts.InitResult{
		Input:   a.opts.input,
		Output:  opts.output,
		Formats: opts.formats,
		Combine: opts.combine,
		Preset:  opts.preset,
	}
	if answers.Input == "" {
		answers.Input = config.Default().Input
	}

	if !opts.nonInteractive {
		available, err := presets.List()
		if err != nil {
			return err
		}
		if answers, err = prompts.RunInitForm(answers, available); err != nil {
			return err
		}
	}

	cfg := &config.Config{
		Version: config.CurrentConfigVersion,
		Input:   answers.Input,
		Output:  answers.Output,
		Formats: answers.Formats,
	}
	if answers.Combine {
		cfg.Combine = &answers.Combine
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	snapshotStatus, err := writeStarterSnapshot(filepath.Join(cwd, answers.Input), answers.Preset)
	if err != nil {
		return err
	}

	if err := cfg.Save(cfgPath); err != nil {
		return fmt.Errorf("config file couldn't be saved: %w", err)
	}
	a.log.WithField("path", cfgPath).Debug("wrote config")

	preset := answers.Preset
	if preset == "" {
		preset = "none"
	}
	prompts.PrintResult(cmd.OutOrStdout(), []prompts.ResultField{
		{Label: "Config", Value: config.FileName},
		{Label: "Snapshot", Value: fmt.Sprintf("%s (%s)", answers.Input, snapshotStatus)},
		{Label: "Preset", Value: preset},
		{Label: "Formats", Value: strings.Join(cfg.Formats, ", ")},
		{Label: "Output", Value: cfg.Output},
	}, "Initialization completed")
	return nil
}

// writeStarterSnapshot creates the snapshot file unless it already exists.
// It reports whether the file was created or kept.
func writeStarterSnapshot(path, preset string) (string, error) {
	if _, err := os.Stat(path); err == nil {
		if preset != "" {
			return "", fmt.Errorf("snapshot %s already exists; remove --preset to keep it", path)
		}
		return "kept", nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}

	var roots []*schema.Field
	if preset != "" {
		var err error
		if roots, err = presets.Get(preset); err != nil {
			return "", err
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return "", fmt.Errorf("failed to create snapshot directory: %w", err)
	}
	f, err := os.Create(path) //nolint:gosec // path is derived from the config
	if err != nil {
		return "", fmt.Errorf("failed to create snapshot: %w", err)
	}
	defer f.Close() //nolint:errcheck

	if err := schema.Write(f, roots, schema.FormatFromPath(path)); err != nil {
		return "", fmt.Errorf("failed to write snapshot: %w", err)
	}
	return "created", nil
}
