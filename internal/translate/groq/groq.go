// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package groq generates GROQ queries and typed fetch helpers for Sanity
// schemas.
package groq

import (
	"fmt"
	"strings"

	"github.com/dacolabs/sanity-codegen/internal/schema"
	"github.com/dacolabs/sanity-codegen/internal/translate"
)

// Import is the statement the query declarations depend on.
const Import = "import groq from 'groq'"

var templateReplacer = strings.NewReplacer("`", "\\`", "${", "\\${")

// Declarations returns the exported query constants and fetch helpers for a
// root schema. The by-slug pair is only emitted when the root is an object
// with a direct slug field.
func Declarations(root *schema.Field, resolver translate.TypeResolver) string {
	name := schema.Sanitize(root.Name)
	upper := strings.ToUpper(name)
	fn := strings.ReplaceAll(name, "_", "")

	var blocks []string
	if schema.HasSlug(root) {
		blocks = append(blocks, fmt.Sprintf(
			"export const %s_BY_SLUG_QUERY = groq`\n%s\n`\nexport const get%sBySlug = (slug: string) => client.fetch(%s_BY_SLUG_QUERY, {slug})",
			upper, template(BySlugQuery(root, true, resolver)), fn, upper))
	}
	blocks = append(blocks, fmt.Sprintf(
		"export const ALL_%s_QUERY = groq`\n%s\n`\nexport const getAll%s = () => client.fetch(ALL_%s_QUERY)",
		upper, template(AllQuery(root, true, resolver)), fn, upper))

	return strings.Join(blocks, "\n\n")
}

func template(query string) string {
	return templateReplacer.Replace(query)
}

// Translator emits a standalone module holding the query declarations.
type Translator struct {
	// ClientImport is an optional import line providing `client`.
	ClientImport string
}

// Name returns the translator identifier.
func (t *Translator) Name() string {
	return "groq"
}

// FileExtension returns the file extension for generated modules.
func (t *Translator) FileExtension() string {
	return ".ts"
}

// Translate renders the query module for root.
func (t *Translator) Translate(root *schema.Field, resolver translate.TypeResolver) ([]byte, error) {
	if root == nil {
		return nil, fmt.Errorf("groq: nil root")
	}
	var sb strings.Builder
	sb.WriteString(Import + "\n")
	if t.ClientImport != "" {
		sb.WriteString(t.ClientImport + "\n")
	}
	sb.WriteString("\n")
	sb.WriteString(Declarations(root, resolver))
	sb.WriteString("\n")
	return []byte(sb.String()), nil
}
