// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package translate provides the translator contract, the custom type
// resolver and helpers shared by the Sanity artifact generators.
package translate

import (
	"fmt"
	"sort"

	"github.com/dacolabs/sanity-codegen/internal/schema"
)

// Translator defines the interface all artifact translators must implement.
type Translator interface {
	// Name returns the translator's identifier (e.g., "sanity", "groq").
	Name() string

	// Translate renders the artifact for a root field. Custom type names
	// are looked up through resolver.
	Translate(root *schema.Field, resolver TypeResolver) ([]byte, error)

	// FileExtension returns the appropriate file extension (e.g., ".ts").
	FileExtension() string
}

// Register maps translator names to translators.
type Register map[string]Translator

// NewRegister builds a Register keyed by each translator's Name.
func NewRegister(ts ...Translator) Register {
	r := make(Register, len(ts))
	for _, t := range ts {
		r[t.Name()] = t
	}
	return r
}

// Get retrieves a translator by name.
func (r Register) Get(name string) (Translator, error) {
	t, ok := r[name]
	if !ok {
		return nil, fmt.Errorf("unknown translator: %s", name)
	}
	return t, nil
}

// Available returns all registered translator names, sorted.
func (r Register) Available() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
