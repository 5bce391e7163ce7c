// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package commands contains all CLI command definitions.
package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dacolabs/sanity-codegen/internal/config"
	"github.com/dacolabs/sanity-codegen/internal/session"
	"github.com/dacolabs/sanity-codegen/internal/translate"
	"github.com/dacolabs/sanity-codegen/internal/translate/groq"
	"github.com/dacolabs/sanity-codegen/internal/translate/jsonschema"
	"github.com/dacolabs/sanity-codegen/internal/translate/markdown"
	"github.com/dacolabs/sanity-codegen/internal/translate/sanity"
	"github.com/dacolabs/sanity-codegen/internal/translate/typescript"
)

// globalOptions are the persistent flags of the root command.
type globalOptions struct {
	input     string
	selector  string
	verbose   bool
	logFormat string
}

// app carries the dependencies shared by every command.
type app struct {
	getenv func(string) string
	log    *logrus.Logger
	opts   globalOptions
}

// NewRootCmd creates and returns the root command for the CLI. getenv is
// used for configuration lookups; nil means os.Getenv.
func NewRootCmd(getenv func(string) string) *cobra.Command {
	if getenv == nil {
		getenv = os.Getenv
	}
	a := &app{getenv: getenv, log: logrus.New()}

	rootCmd := &cobra.Command{
		Use:   "sanity-codegen",
		Short: "Generate Sanity schema modules, GROQ queries and TypeScript interfaces",
		Long: `Generate Sanity schema definitions, GROQ queries, TypeScript interfaces and
JSON Schemas from a schema snapshot: a JSON or YAML file describing the
documents and objects of a Sanity studio.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setupLogging(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&a.opts.input, "input", "i", "", "Schema snapshot file (overrides the configured input)")
	flags.StringVar(&a.opts.selector, "select", "", "JSONPath expression selecting the roots of the snapshot")
	flags.BoolVarP(&a.opts.verbose, "verbose", "v", false, "Enable debug logging")
	flags.StringVar(&a.opts.logFormat, "log-format", "text", "Log format (text or json)")

	rootCmd.AddCommand(
		a.newInitCmd(),
		a.newGenerateCmd(),
		a.newQueryCmd(),
		a.newInterfaceCmd(),
		a.newTypesCmd(),
		a.newDescribeCmd(),
		a.newExportCmd(),
		newPresetsCmd(),
		a.newServeCmd(),
		newVersionCmd(),
	)

	return rootCmd
}

func (a *app) setupLogging(cmd *cobra.Command) error {
	a.log.SetOutput(cmd.ErrOrStderr())
	a.log.SetLevel(logrus.WarnLevel)
	if a.opts.verbose {
		a.log.SetLevel(logrus.DebugLevel)
	}
	switch a.opts.logFormat {
	case "text", "":
		a.log.SetFormatter(&logrus.TextFormatter{})
	case "json":
		a.log.SetFormatter(&logrus.JSONFormatter{})
	default:
		return fmt.Errorf("unsupported log format %q (use text or json)", a.opts.logFormat)
	}
	return nil
}

// sessionOptions builds the project context options from the global flags.
func (a *app) sessionOptions(*cobra.Command) session.Options {
	return session.Options{
		Getenv: a.getenv,
		Flags:  &config.Config{Input: a.opts.input, Select: a.opts.selector},
	}
}

// preRunLoad loads the project context before a command runs.
func (a *app) preRunLoad() func(*cobra.Command, []string) error {
	return session.PreRunLoad(a.sessionOptions)
}

// registerTranslators returns every output format, configured with the
// client import line of the project.
func registerTranslators(clientImport string) translate.Register {
	return translate.NewRegister(
		&sanity.Translator{ClientImport: clientImport},
		&groq.Translator{ClientImport: clientImport},
		&typescript.Translator{},
		&jsonschema.Translator{},
		&markdown.Translator{},
	)
}

// translatorsFor resolves format names into translators.
func translatorsFor(reg translate.Register, formats []string) ([]translate.Translator, error) {
	out := make([]translate.Translator, 0, len(formats))
	for _, f := range formats {
		tr, err := reg.Get(strings.TrimSpace(f))
		if err != nil {
			return nil, fmt.Errorf("%w (available: %s)", err, strings.Join(reg.Available(), ", "))
		}
		out = append(out, tr)
	}
	return out, nil
}
