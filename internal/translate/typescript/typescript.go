// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package typescript generates TypeScript interfaces for Sanity schemas.
package typescript

import (
	"fmt"
	"strings"

	"github.com/dacolabs/sanity-codegen/internal/schema"
	"github.com/dacolabs/sanity-codegen/internal/translate"
)

// Interface renders the TypeScript interface of a field. At root the members
// are wrapped in an exported interface named after the sanitized schema
// name. Nested object members are flattened into the enclosing interface.
func Interface(f *schema.Field, isRoot bool) string {
	var sb strings.Builder
	if isRoot {
		fmt.Fprintf(&sb, "export interface %s {\n", schema.Sanitize(f.Name))
	}

	name := schema.Sanitize(f.Name)
	switch {
	case schema.HasFields(f):
		for _, child := range f.Fields {
			sb.WriteString(Interface(child, false))
		}
	case f.Kind == schema.KindArray:
		fmt.Fprintf(&sb, "%s: %s;\n", name, arrayType(f.Of))
	case f.Kind == schema.KindString && len(f.PredefinedList()) > 0:
		values := make([]string, 0, len(f.PredefinedList()))
		for _, opt := range f.PredefinedList() {
			values = append(values, translate.Quote(opt.Value))
		}
		fmt.Fprintf(&sb, "%s: %s;\n", name, strings.Join(values, " | "))
	default:
		fmt.Fprintf(&sb, "%s: %s;\n", name, TypeName(f.Kind))
	}

	if isRoot {
		sb.WriteString("}\n")
	}
	return sb.String()
}

// TypeName maps a kind to its TypeScript type.
func TypeName(k schema.Kind) string {
	switch k {
	case schema.KindBlock:
		return "PortableTextBlock"
	case schema.KindBoolean:
		return "boolean"
	case schema.KindDate, schema.KindDatetime:
		return "Date"
	case schema.KindDocument, schema.KindFile, schema.KindGeopoint,
		schema.KindImage, schema.KindObject, schema.KindURL:
		return string(k)
	case schema.KindNumber:
		return "number"
	case schema.KindReference:
		return "any /* TODO: fix reference type */"
	case schema.KindSlug, schema.KindString:
		return "string"
	case schema.KindText:
		return "String"
	case schema.KindArray:
		return "Array<any>"
	}
	if k.IsBuiltin() {
		return k.Lower()
	}
	return schema.Sanitize(string(k))
}

func arrayType(of []string) string {
	if len(of) == 0 {
		return "Array<any>"
	}
	members := make([]string, len(of))
	for i, m := range of {
		members[i] = TypeName(schema.Kind(m))
	}
	return "Array<" + strings.Join(members, " | ") + ">"
}

// Translator emits a module holding the root interface.
type Translator struct{}

// Name returns the translator identifier.
func (t *Translator) Name() string {
	return "typescript"
}

// FileExtension returns the file extension for generated modules.
func (t *Translator) FileExtension() string {
	return ".ts"
}

// Translate renders the interface for root. The resolver is unused: custom
// member types are referenced by name.
func (t *Translator) Translate(root *schema.Field, _ translate.TypeResolver) ([]byte, error) {
	if root == nil {
		return nil, fmt.Errorf("typescript: nil root")
	}
	return []byte(Interface(root, true)), nil
}
