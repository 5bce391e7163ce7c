// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package config handles sanity-codegen project and user configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// CurrentConfigVersion is the current version of the config file format.
const CurrentConfigVersion = 1

const (
	// FileName is the project configuration file looked up in the working
	// directory.
	FileName = ".sanity-codegen.yaml"

	// UserConfigEnv overrides the location of the user configuration file.
	UserConfigEnv = "SANITY_CODEGEN_CONFIG"

	userConfigPath = "sanity-codegen/config.yaml"
)

// Formats lists the output formats a config may select.
var Formats = []string{"groq", "jsonschema", "markdown", "sanity", "typescript"}

var (
	// ErrUnsupportedVersion indicates a config file written for another
	// version of the format.
	ErrUnsupportedVersion = errors.New("unsupported config version")

	// ErrUnknownFormat indicates a format name that no translator serves.
	ErrUnknownFormat = errors.New("unknown format")
)

// Config represents a .sanity-codegen.yaml file. The user configuration file
// has the same shape; its values apply where the project leaves a field unset.
type Config struct {
	Version      int      `yaml:"version"`
	Input        string   `yaml:"input,omitempty"`
	Select       string   `yaml:"select,omitempty"`
	Output       string   `yaml:"output,omitempty"`
	Formats      []string `yaml:"formats,omitempty"`
	Combine      *bool    `yaml:"combine,omitempty"`
	Check        *bool    `yaml:"validate,omitempty"`
	Banner       string   `yaml:"banner,omitempty"`
	ClientImport string   `yaml:"client_import,omitempty"`
}

// Default returns the configuration written by init.
func Default() *Config {
	return &Config{
		Version: CurrentConfigVersion,
		Input:   "schemas.json",
		Output:  "generated",
		Formats: []string{"sanity"},
	}
}

// Load reads a Config from a file path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// UserConfigFile returns the location of the user configuration file.
func UserConfigFile(getenv func(string) string) (string, error) {
	if getenv != nil {
		if location := getenv(UserConfigEnv); location != "" {
			return location, nil
		}
	}
	location, err := xdg.ConfigFile(userConfigPath)
	if err != nil {
		return "", fmt.Errorf("failed to locate user config: %w", err)
	}
	return location, nil
}

// LoadUser reads the user configuration. A missing file yields an empty
// Config.
func LoadUser(getenv func(string) string) (*Config, error) {
	location, err := UserConfigFile(getenv)
	if err != nil {
		return nil, err
	}
	cfg, err := Load(location)
	if errors.Is(err, os.ErrNotExist) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read user config %s: %w", location, err)
	}
	return cfg, nil
}

// Save writes the Config to a file path.
func (c *Config) Save(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	return enc.Encode(c)
}

// Validate checks the configuration for required fields and valid values.
func (c *Config) Validate() error {
	if c.Version != CurrentConfigVersion {
		return fmt.Errorf("%w: %d", ErrUnsupportedVersion, c.Version)
	}
	for _, f := range c.Formats {
		if !slices.Contains(Formats, f) {
			return fmt.Errorf("%w %q (available: %s)", ErrUnknownFormat, f, strings.Join(Formats, ", "))
		}
	}
	return nil
}

// Merge returns a copy of base with every field set in over applied on top.
// Neither argument is modified.
func Merge(base, over *Config) *Config {
	out := &Config{}
	if base != nil {
		*out = *base
		out.Formats = slices.Clone(base.Formats)
	}
	if over == nil {
		return out
	}
	if over.Version != 0 {
		out.Version = over.Version
	}
	if over.Input != "" {
		out.Input = over.Input
	}
	if over.Select != "" {
		out.Select = over.Select
	}
	if over.Output != "" {
		out.Output = over.Output
	}
	if len(over.Formats) > 0 {
		out.Formats = slices.Clone(over.Formats)
	}
	if over.Combine != nil {
		out.Combine = over.Combine
	}
	if over.Check != nil {
		out.Check = over.Check
	}
	if over.Banner != "" {
		out.Banner = over.Banner
	}
	if over.ClientImport != "" {
		out.ClientImport = over.ClientImport
	}
	return out
}

// CombineEnabled reports whether roots are written to one file per format.
func (c *Config) CombineEnabled() bool {
	return c.Combine != nil && *c.Combine
}

// ValidationEnabled reports whether outputs are syntax checked. It defaults
// to true.
func (c *Config) ValidationEnabled() bool {
	return c.Check == nil || *c.Check
}
