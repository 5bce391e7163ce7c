// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package presets ships ready-made schema snapshots to start a project from.
package presets

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dacolabs/sanity-codegen/internal/schema"
)

//go:embed data/*.json
var data embed.FS

// ErrUnknown is returned for a preset name that is not shipped.
var ErrUnknown = errors.New("unknown preset")

// Preset describes one embedded snapshot.
type Preset struct {
	Name        string
	Title       string
	Description string
	Roots       int
}

var titleCaser = cases.Title(language.English)

// List returns the shipped presets sorted by name.
func List() ([]Preset, error) {
	entries, err := fs.ReadDir(data, "data")
	if err != nil {
		return nil, fmt.Errorf("reading presets: %w", err)
	}

	presets := make([]Preset, 0, len(entries))
	for _, e := range entries {
		name := strings.TrimSuffix(e.Name(), ".json")
		roots, err := Get(name)
		if err != nil {
			return nil, err
		}
		p := Preset{Name: name, Title: Title(name), Roots: len(roots)}
		if len(roots) > 0 {
			p.Description = roots[0].Description
		}
		presets = append(presets, p)
	}
	sort.Slice(presets, func(i, j int) bool { return presets[i].Name < presets[j].Name })
	return presets, nil
}

// Names returns the shipped preset names sorted.
func Names() []string {
	entries, _ := fs.ReadDir(data, "data")
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(names)
	return names
}

// Get decodes the named preset. Every call returns a fresh tree.
func Get(name string) ([]*schema.Field, error) {
	raw, err := data.ReadFile(path.Join("data", name+".json"))
	if err != nil {
		return nil, fmt.Errorf("%w: %s (available: %s)", ErrUnknown, name, strings.Join(Names(), ", "))
	}
	roots, err := schema.Decode(raw, schema.JSON, "")
	if err != nil {
		return nil, fmt.Errorf("decoding preset %s: %w", name, err)
	}
	return roots, nil
}

// Title turns a preset or schema identifier into a human title:
// "photo_gallery" becomes "Photo Gallery".
func Title(name string) string {
	return titleCaser.String(strings.NewReplacer("_", " ", "-", " ").Replace(name))
}
