// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package markdown renders Sanity schemas as markdown reference pages.
package markdown

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/dacolabs/sanity-codegen/internal/schema"
	"github.com/dacolabs/sanity-codegen/internal/translate"
)

//go:embed markdown.md.tmpl
var tmplFS embed.FS

var funcMap = template.FuncMap{
	"cell": cell,
}

var tmpl = template.Must(template.New("markdown.md.tmpl").Funcs(funcMap).ParseFS(tmplFS, "markdown.md.tmpl"))

// page is the data handed to the template.
type page struct {
	Title       string
	Name        string
	Kind        schema.Kind
	Description string
	Slug        string
	Rows        []row
	Unresolved  []string
}

// row is one field of the table. Nested fields use dotted paths.
type row struct {
	Path        string
	Type        string
	Title       string
	Description string
	Notes       string
}

// Translator emits one reference page per root.
type Translator struct{}

// Name returns the translator identifier.
func (t *Translator) Name() string {
	return "markdown"
}

// FileExtension returns the file extension for generated pages.
func (t *Translator) FileExtension() string {
	return ".md"
}

// Translate renders the reference page of root. Custom types known to
// resolver link to their own page; the others are listed as unresolved.
func (t *Translator) Translate(root *schema.Field, resolver translate.TypeResolver) ([]byte, error) {
	if root == nil {
		return nil, fmt.Errorf("markdown: nil root")
	}
	if resolver == nil {
		resolver = translate.Empty
	}

	p := page{
		Title:       root.Title,
		Name:        schema.Sanitize(root.Name),
		Kind:        root.Kind,
		Description: root.Description,
	}
	if p.Title == "" {
		p.Title = root.Name
	}
	if schema.HasSlug(root) {
		p.Slug = strings.ToUpper(p.Name) + "_BY_SLUG_QUERY"
	}

	b := &builder{resolver: resolver, seen: map[string]bool{}}
	for _, child := range root.Fields {
		b.walk(child, "")
	}
	p.Rows = b.rows
	p.Unresolved = b.unresolved

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "markdown.md.tmpl", p); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.Bytes(), nil
}

type builder struct {
	resolver   translate.TypeResolver
	rows       []row
	unresolved []string
	seen       map[string]bool
}

func (b *builder) walk(f *schema.Field, prefix string) {
	p := schema.Sanitize(f.Name)
	if prefix != "" {
		p = prefix + "." + p
	}
	b.rows = append(b.rows, row{
		Path:        p,
		Type:        b.typeOf(f),
		Title:       f.Title,
		Description: f.Description,
		Notes:       notes(f),
	})
	if schema.HasFields(f) {
		for _, child := range f.Fields {
			b.walk(child, p)
		}
	}
}

func (b *builder) typeOf(f *schema.Field) string {
	switch f.Kind {
	case schema.KindArray:
		if len(f.Of) == 0 {
			return "Array"
		}
		return "Array of " + b.names(f.Of)
	case schema.KindReference:
		if len(f.To) == 0 {
			return "Reference"
		}
		return "Reference to " + b.names(f.To)
	}
	return b.name(string(f.Kind))
}

func (b *builder) names(kinds []string) string {
	out := make([]string, len(kinds))
	for i, k := range kinds {
		out[i] = b.name(k)
	}
	return strings.Join(out, ", ")
}

// name renders a kind. Custom types link to the page of the resolved root.
func (b *builder) name(kind string) string {
	if schema.IsBuiltin(kind) {
		return kind
	}
	target := schema.Sanitize(kind)
	if _, ok := b.resolver.Resolve(target); ok {
		return "[" + target + "](" + target + ".md)"
	}
	if !b.seen[target] {
		b.seen[target] = true
		b.unresolved = append(b.unresolved, target)
	}
	return target
}

func notes(f *schema.Field) string {
	var parts []string
	if f.Hidden {
		parts = append(parts, "hidden")
	}
	if f.ReadOnly {
		parts = append(parts, "read-only")
	}
	if f.Kind == schema.KindReference && f.Weak {
		parts = append(parts, "weak")
	}
	if list := f.PredefinedList(); len(list) > 0 {
		values := make([]string, len(list))
		for i, opt := range list {
			values[i] = "`" + opt.Value + "`"
		}
		parts = append(parts, "values: "+strings.Join(values, ", "))
	}
	if o := f.Options; o != nil {
		switch f.Kind {
		case schema.KindArray:
			if o.Layout != "" {
				parts = append(parts, "layout: "+o.Layout)
			}
			if o.Sortable {
				parts = append(parts, "sortable")
			}
		case schema.KindImage:
			if o.Hotspot {
				parts = append(parts, "hotspot")
			}
			if o.Accept != "" {
				parts = append(parts, "accept: `"+o.Accept+"`")
			}
		}
	}
	if ic := f.InternalConfig; ic != nil && f.Kind == schema.KindImage {
		if ic.Caption {
			parts = append(parts, "caption")
		}
		if ic.Alt {
			parts = append(parts, "alt text")
		}
	}
	return cell(strings.Join(parts, ", "))
}

var cellReplacer = strings.NewReplacer("|", `\|`, "\r\n", " ", "\n", " ")

// cell escapes text for a table cell.
func cell(s string) string {
	return cellReplacer.Replace(s)
}
