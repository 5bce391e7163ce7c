// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package jsonschema describes the documents of a Sanity schema as a JSON
// Schema (draft 2020-12). Custom types are emitted once under $defs and
// referenced by $ref.
package jsonschema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/dacolabs/sanity-codegen/internal/schema"
	"github.com/dacolabs/sanity-codegen/internal/translate"
)

// Draft is the dialect declared by generated schemas.
const Draft = "https://json-schema.org/draft/2020-12/schema"

// Build returns the JSON Schema describing documents of root.
func Build(root *schema.Field, resolver translate.TypeResolver) *jsonschema.Schema {
	if resolver == nil {
		resolver = translate.Empty
	}
	b := &builder{resolver: resolver, defs: make(map[string]*jsonschema.Schema)}
	s := b.field(root)
	s.Schema = Draft
	if s.Title == "" {
		s.Title = root.Name
	}
	if len(b.defs) > 0 {
		s.Defs = b.defs
	}
	return s
}

type builder struct {
	resolver translate.TypeResolver
	defs     map[string]*jsonschema.Schema
}

func (b *builder) field(f *schema.Field) *jsonschema.Schema {
	s := b.kind(f)
	if f.Title != "" {
		s.Title = f.Title
	}
	if f.Description != "" {
		s.Description = f.Description
	}
	s.ReadOnly = f.ReadOnly
	return s
}

func (b *builder) kind(f *schema.Field) *jsonschema.Schema {
	if schema.HasFields(f) {
		props := make(map[string]*jsonschema.Schema, len(f.Fields))
		for _, child := range f.Fields {
			props[schema.Sanitize(child.Name)] = b.field(child)
		}
		obj := object(props)
		if f.Kind == schema.KindDocument {
			obj.Properties["_id"] = str()
			obj.Properties["_type"] = &jsonschema.Schema{Type: "string", Enum: []any{schema.Sanitize(f.Name)}}
		}
		return obj
	}

	switch f.Kind {
	case schema.KindString:
		s := str()
		for _, opt := range f.PredefinedList() {
			s.Enum = append(s.Enum, opt.Value)
		}
		return s
	case schema.KindArray:
		return b.array(f.Of)
	case schema.KindReference:
		s := reference()
		if len(f.To) > 0 {
			targets := make([]string, len(f.To))
			for i, to := range f.To {
				targets[i] = schema.Sanitize(to)
			}
			s.Description = "Reference to " + strings.Join(targets, ", ")
		}
		return s
	}
	if !f.Kind.IsBuiltin() {
		return b.ref(string(f.Kind))
	}
	return builtin(f.Kind)
}

func (b *builder) array(of []string) *jsonschema.Schema {
	s := &jsonschema.Schema{Type: "array"}
	members := make([]*jsonschema.Schema, 0, len(of))
	for _, m := range of {
		if schema.IsBuiltin(m) {
			members = append(members, builtin(schema.Kind(m)))
		} else {
			members = append(members, b.ref(m))
		}
	}
	switch len(members) {
	case 0:
	case 1:
		s.Items = members[0]
	default:
		s.Items = &jsonschema.Schema{AnyOf: members}
	}
	return s
}

// ref registers the definition of a custom type and returns a reference to
// it. The placeholder stored before recursing stops self-referencing types.
func (b *builder) ref(name string) *jsonschema.Schema {
	key := schema.Sanitize(name)
	if _, ok := b.defs[key]; !ok {
		b.defs[key] = &jsonschema.Schema{}
		def, found := b.resolver.Resolve(name)
		if found {
			b.defs[key] = b.field(def)
		} else {
			b.defs[key] = &jsonschema.Schema{Description: fmt.Sprintf("unresolved type %s", name)}
		}
	}
	return &jsonschema.Schema{Ref: "#/$defs/" + key}
}

func builtin(k schema.Kind) *jsonschema.Schema {
	switch k {
	case schema.KindBoolean:
		return &jsonschema.Schema{Type: "boolean"}
	case schema.KindNumber:
		return &jsonschema.Schema{Type: "number"}
	case schema.KindString, schema.KindText:
		return str()
	case schema.KindDate:
		return &jsonschema.Schema{Type: "string", Format: "date"}
	case schema.KindDatetime:
		return &jsonschema.Schema{Type: "string", Format: "date-time"}
	case schema.KindURL:
		return &jsonschema.Schema{Type: "string", Format: "uri"}
	case schema.KindSlug:
		return object(map[string]*jsonschema.Schema{"_type": str(), "current": str()})
	case schema.KindGeopoint:
		n := func() *jsonschema.Schema { return &jsonschema.Schema{Type: "number"} }
		return object(map[string]*jsonschema.Schema{"lat": n(), "lng": n(), "alt": n()})
	case schema.KindImage, schema.KindFile:
		return object(map[string]*jsonschema.Schema{"_type": str(), "asset": reference()})
	case schema.KindReference:
		return reference()
	case schema.KindArray:
		return &jsonschema.Schema{Type: "array"}
	case schema.KindDocument, schema.KindObject:
		return object(map[string]*jsonschema.Schema{})
	}
	// Block and Span are portable text nodes.
	return object(map[string]*jsonschema.Schema{"_type": str(), "_key": str()})
}

func str() *jsonschema.Schema {
	return &jsonschema.Schema{Type: "string"}
}

func object(props map[string]*jsonschema.Schema) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "object", Properties: props}
}

func reference() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"_ref":  str(),
			"_type": str(),
			"_weak": {Type: "boolean"},
		},
		Required: []string{"_ref"},
	}
}

// Translator emits JSON Schema documents.
type Translator struct{}

// Name returns the translator identifier.
func (t *Translator) Name() string {
	return "jsonschema"
}

// FileExtension returns the file extension for generated documents.
func (t *Translator) FileExtension() string {
	return ".schema.json"
}

// Translate renders the JSON Schema of root, indented with two spaces.
func (t *Translator) Translate(root *schema.Field, resolver translate.TypeResolver) ([]byte, error) {
	if root == nil {
		return nil, fmt.Errorf("jsonschema: nil root")
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(Build(root, resolver)); err != nil {
		return nil, fmt.Errorf("encoding json schema for %s: %w", root.Name, err)
	}
	return buf.Bytes(), nil
}
