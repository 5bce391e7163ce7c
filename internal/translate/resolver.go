// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package translate

import (
	"github.com/dacolabs/sanity-codegen/internal/schema"
)

// TypeResolver maps a type name to the field that defines it.
// The boolean result is false when no custom type carries that name; callers
// decide at each use site what "not found" produces.
type TypeResolver interface {
	Resolve(name string) (*schema.Field, bool)
}

// ResolverFunc adapts a function to the TypeResolver interface.
type ResolverFunc func(name string) (*schema.Field, bool)

// Resolve calls f(name).
func (f ResolverFunc) Resolve(name string) (*schema.Field, bool) {
	return f(name)
}

// Empty is a resolver that knows no custom types.
var Empty TypeResolver = ResolverFunc(func(string) (*schema.Field, bool) { return nil, false })

// Registry is an immutable snapshot of the custom types currently defined,
// typically every root schema of a snapshot file.
type Registry struct {
	types []*schema.Field
}

// NewRegistry creates a Registry over the given root fields. Roots with an
// empty name are skipped: they can never be referenced.
func NewRegistry(roots []*schema.Field) *Registry {
	types := make([]*schema.Field, 0, len(roots))
	for _, r := range roots {
		if r == nil || r.Name == "" {
			continue
		}
		types = append(types, r)
	}
	return &Registry{types: types}
}

// Resolve returns the first registered type whose sanitized or raw name
// equals name.
func (r *Registry) Resolve(name string) (*schema.Field, bool) {
	if name == "" {
		return nil, false
	}
	for _, t := range r.types {
		if schema.Sanitize(t.Name) == name || t.Name == name {
			return t, true
		}
	}
	return nil, false
}

// Names returns the sanitized names of the registered types in order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.types))
	for i, t := range r.types {
		names[i] = schema.Sanitize(t.Name)
	}
	return names
}

// Types returns the registered root fields in order.
func (r *Registry) Types() []*schema.Field {
	return r.types
}

// Unresolved returns the custom type names referenced under the registered
// roots that the registry cannot resolve.
func (r *Registry) Unresolved() []string {
	var missing []string
	for _, name := range schema.ReferencedTypes(r.types...) {
		if _, ok := r.Resolve(name); !ok {
			missing = append(missing, name)
		}
	}
	return missing
}
