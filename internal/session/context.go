// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package session provides project context loading for CLI commands.
package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dacolabs/sanity-codegen/internal/config"
	"github.com/dacolabs/sanity-codegen/internal/schema"
	"github.com/dacolabs/sanity-codegen/internal/translate"
)

var (
	// ErrNotInitialized indicates no .sanity-codegen.yaml was found and no
	// input was given on the command line.
	ErrNotInitialized = errors.New("not in a sanity-codegen project (.sanity-codegen.yaml not found, run init or pass --input)")

	// ErrInvalidConfig indicates the config file exists but is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrNoInput indicates the configuration names no snapshot file.
	ErrNoInput = errors.New("no input snapshot configured")

	// ErrInvalidSnapshot indicates the snapshot exists but couldn't be decoded.
	ErrInvalidSnapshot = errors.New("invalid schema snapshot")
)

// contextKey is used to store Context in context.Context.
type contextKey struct{}

// Options control how a project context is resolved.
type Options struct {
	// Dir is the project directory. Empty means the working directory.
	Dir string
	// Getenv looks up environment variables. Nil means os.Getenv.
	Getenv func(string) string
	// Flags holds values given on the command line; they override both the
	// project and the user configuration.
	Flags *config.Config
}

// Context holds the resolved configuration and the loaded snapshot.
type Context struct {
	// Config is the merged configuration (user, project, flags).
	Config *config.Config

	// Dir is the project directory relative paths are resolved against.
	Dir string

	// Roots are the root fields of the snapshot, after selection.
	Roots []*schema.Field

	// Registry resolves custom type names against Roots.
	Registry *translate.Registry
}

// Resolve merges the user configuration, the project configuration in
// opts.Dir and opts.Flags, in increasing precedence.
func Resolve(opts Options) (*config.Config, string, error) {
	dir := opts.Dir
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, "", fmt.Errorf("failed to get current directory: %w", err)
		}
		dir = cwd
	}
	getenv := opts.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	user, err := config.LoadUser(getenv)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	var project *config.Config
	configPath := filepath.Join(dir, config.FileName)
	if _, statErr := os.Stat(configPath); statErr == nil {
		project, err = config.Load(configPath)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	} else if opts.Flags == nil || opts.Flags.Input == "" {
		return nil, "", ErrNotInitialized
	}

	cfg := config.Merge(config.Merge(user, project), opts.Flags)
	if cfg.Version == 0 {
		cfg.Version = config.CurrentConfigVersion
	}
	if len(cfg.Formats) == 0 {
		cfg.Formats = config.Default().Formats
	}
	if cfg.Output == "" {
		cfg.Output = config.Default().Output
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return cfg, dir, nil
}

// Load resolves the configuration, reads the snapshot it names and returns
// a new context.Context with the Context stored in it.
func Load(ctx context.Context, opts Options) (context.Context, error) {
	cfg, dir, err := Resolve(opts)
	if err != nil {
		return nil, err
	}

	sc := &Context{Config: cfg, Dir: dir}
	if err := sc.Reload(); err != nil {
		return nil, err
	}
	return context.WithValue(ctx, contextKey{}, sc), nil
}

// InputPath returns the absolute path of the configured snapshot.
func (c *Context) InputPath() string {
	if filepath.IsAbs(c.Config.Input) {
		return c.Config.Input
	}
	return filepath.Join(c.Dir, c.Config.Input)
}

// OutputPath returns the absolute path of the configured output directory.
func (c *Context) OutputPath() string {
	if filepath.IsAbs(c.Config.Output) {
		return c.Config.Output
	}
	return filepath.Join(c.Dir, c.Config.Output)
}

// Reload reads the snapshot again, replacing Roots and Registry.
func (c *Context) Reload() error {
	if c.Config.Input == "" {
		return ErrNoInput
	}
	input := c.InputPath()
	loader := schema.NewLoader(os.DirFS(filepath.Dir(input)))
	roots, err := loader.LoadFile(filepath.Base(input), c.Config.Select)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s does not exist", ErrNoInput, input)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	c.Roots = roots
	c.Registry = translate.NewRegistry(roots)
	return nil
}

// Select returns the roots named by names, in the given order, or every
// root when names is empty.
func (c *Context) Select(names ...string) ([]*schema.Field, error) {
	if len(names) == 0 {
		return c.Roots, nil
	}
	roots := make([]*schema.Field, 0, len(names))
	for _, name := range names {
		r, ok := c.Registry.Resolve(name)
		if !ok {
			return nil, fmt.Errorf("schema %q not found (available: %s)", name, strings.Join(c.Registry.Names(), ", "))
		}
		roots = append(roots, r)
	}
	return roots, nil
}

// From extracts the Context from a context.Context.
// Returns nil if no Context is stored.
func From(ctx context.Context) *Context {
	if sc, ok := ctx.Value(contextKey{}).(*Context); ok {
		return sc
	}
	return nil
}
