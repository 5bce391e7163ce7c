// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package sanity generates Sanity Studio schema modules built from
// defineType and defineField calls.
package sanity

import (
	"fmt"
	"strings"

	"github.com/dacolabs/sanity-codegen/internal/schema"
	"github.com/dacolabs/sanity-codegen/internal/translate"
	"github.com/dacolabs/sanity-codegen/internal/translate/groq"
	"github.com/dacolabs/sanity-codegen/internal/translate/typescript"
)

// Import is the statement every generated schema module starts with.
const Import = "import {defineField, defineType} from 'sanity'"

const captionField = `defineField({
  type: 'string',
  name: "caption",
  title: "Caption",
}),`

const altField = `defineField({
  type: 'string',
  name: "alt",
  title: "Alt text",
  description: "Alternative text for screenreaders. Falls back on caption if not set",
  validation: (rule) => rule.required().max(255).min(10),
}),`

// Definition renders the schema definition of a field. A root field yields
// the complete module: imports, the defineType export, the GROQ query
// declarations and the TypeScript interface. Any other field yields a
// defineField fragment.
func Definition(f *schema.Field, isRoot bool, resolver translate.TypeResolver) string {
	if !isRoot {
		return definition(f, false)
	}
	return (&Translator{}).module(f, resolver)
}

func definition(f *schema.Field, isRoot bool) string {
	var sb strings.Builder
	writeBase(&sb, f, isRoot)

	switch {
	case schema.HasFields(f):
		writeFields(&sb, f.Fields)
	case f.Kind == schema.KindImage:
		writeImage(&sb, f)
	case f.Kind == schema.KindReference:
		writeReference(&sb, f)
	case f.Kind == schema.KindArray:
		writeArray(&sb, f)
	case f.Kind == schema.KindString && len(f.PredefinedList()) > 0:
		writeList(&sb, f.PredefinedList())
	}

	if isRoot {
		sb.WriteString("});")
	} else {
		sb.WriteString("}),")
	}
	return sb.String()
}

func writeBase(sb *strings.Builder, f *schema.Field, isRoot bool) {
	if isRoot {
		sb.WriteString("defineType({\n")
	} else {
		sb.WriteString("defineField({\n")
	}
	fmt.Fprintf(sb, "  type: %s,\n", translate.SingleQuote(typeName(f.Kind)))
	fmt.Fprintf(sb, "  name: %s,\n", translate.Quote(schema.Sanitize(f.Name)))
	fmt.Fprintf(sb, "  title: %s,\n", translate.Quote(f.Title))
	if f.Description != "" {
		fmt.Fprintf(sb, "  description: %s,\n", translate.Quote(f.Description))
	}
	if f.Hidden {
		sb.WriteString("  hidden: true,\n")
	}
	if f.ReadOnly {
		sb.WriteString("  readOnly: true,\n")
	}
}

// typeName is the Sanity type identifier of a kind: lowercase for built-ins,
// the sanitized type name otherwise.
func typeName(k schema.Kind) string {
	if k.IsBuiltin() {
		return k.Lower()
	}
	return schema.Sanitize(string(k))
}

func writeFields(sb *strings.Builder, fields []*schema.Field) {
	sb.WriteString("  fields: [\n")
	for _, child := range fields {
		sb.WriteString(translate.Indent(definition(child, false), 2))
		sb.WriteString("\n")
	}
	sb.WriteString("  ],\n")
}

func writeImage(sb *strings.Builder, f *schema.Field) {
	hotspot, accept, sources := f.ImageOptions()
	if hotspot || accept != "" || sources != "" {
		sb.WriteString("  options: {\n")
		if hotspot {
			sb.WriteString("    hotspot: true,\n")
		}
		if accept != "" {
			fmt.Fprintf(sb, "    accept: %s,\n", translate.SingleQuote(accept))
		}
		if sources != "" {
			fmt.Fprintf(sb, "    sources: %s,\n", translate.SingleQuote(sources))
		}
		sb.WriteString("  },\n")
	}

	cfg := f.InternalConfig
	if cfg == nil || (!cfg.Caption && !cfg.Alt) {
		return
	}
	sb.WriteString("  fields: [\n")
	if cfg.Caption {
		sb.WriteString(translate.Indent(captionField, 2) + "\n")
	}
	if cfg.Alt {
		sb.WriteString(translate.Indent(altField, 2) + "\n")
	}
	sb.WriteString("  ],\n")
}

func writeReference(sb *strings.Builder, f *schema.Field) {
	fmt.Fprintf(sb, "  weak: %t,\n", f.Weak)
	targets := make([]string, len(f.To))
	for i, to := range f.To {
		targets[i] = fmt.Sprintf("{type: %s}", translate.SingleQuote(strings.ToLower(schema.Sanitize(to))))
	}
	fmt.Fprintf(sb, "  to: [%s],\n", strings.Join(targets, ", "))
}

func writeArray(sb *strings.Builder, f *schema.Field) {
	members := make([]string, len(f.Of))
	for i, m := range f.Of {
		members[i] = fmt.Sprintf("{type: %s}", translate.SingleQuote(strings.ToLower(schema.Sanitize(m))))
	}
	fmt.Fprintf(sb, "  of: [%s],\n", strings.Join(members, ", "))

	if f.Options == nil || (f.Options.Layout == "" && !f.Options.Sortable) {
		return
	}
	sb.WriteString("  options: {\n")
	if f.Options.Layout != "" {
		fmt.Fprintf(sb, "    layout: %s,\n", translate.SingleQuote(f.Options.Layout))
	}
	if f.Options.Sortable {
		sb.WriteString("    sortable: true,\n")
	}
	sb.WriteString("  },\n")
}

func writeList(sb *strings.Builder, list []schema.ListOption) {
	sb.WriteString("  options: {\n")
	sb.WriteString("    list: [\n")
	for _, opt := range list {
		fmt.Fprintf(sb, "      {title: %s, value: %s},\n",
			translate.SingleQuote(opt.Title), translate.SingleQuote(opt.Value))
	}
	sb.WriteString("    ],\n")
	sb.WriteString("  },\n")
}

// Translator emits complete schema modules.
type Translator struct {
	// ClientImport is an optional import line providing the `client` used
	// by the generated fetch helpers.
	ClientImport string
}

// Name returns the translator identifier.
func (t *Translator) Name() string {
	return "sanity"
}

// FileExtension returns the file extension for generated modules.
func (t *Translator) FileExtension() string {
	return ".ts"
}

// Translate renders the schema module for root.
func (t *Translator) Translate(root *schema.Field, resolver translate.TypeResolver) ([]byte, error) {
	if root == nil {
		return nil, fmt.Errorf("sanity: nil root")
	}
	return []byte(t.module(root, resolver)), nil
}

func (t *Translator) module(root *schema.Field, resolver translate.TypeResolver) string {
	var sb strings.Builder
	sb.WriteString(Import + "\n")
	sb.WriteString(groq.Import + "\n")
	if t.ClientImport != "" {
		sb.WriteString(t.ClientImport + "\n")
	}
	sb.WriteString("\nexport default ")
	sb.WriteString(definition(root, true))
	sb.WriteString("\n\n")
	sb.WriteString(groq.Declarations(root, resolver))
	sb.WriteString("\n\n")
	sb.WriteString(typescript.Interface(root, true))
	return sb.String()
}
