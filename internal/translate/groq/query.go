// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package groq

import (
	"fmt"
	"strings"

	"github.com/dacolabs/sanity-codegen/internal/schema"
	"github.com/dacolabs/sanity-codegen/internal/translate"
)

const (
	referenceTODO = "// TODO: Add query for reference type, unsupported by codegen."
	fileComment   = "// In order to download a file from your front-end you need to append ?dl=<filename-of-your-choice.pdf> to the file URL. If you leave the filename blank, the original filename will be used if present."
)

// walker carries the state of one query rendering. visiting holds the custom
// type names currently being expanded so that self-referencing types stop
// at the first repeat.
type walker struct {
	resolver translate.TypeResolver
	visiting map[string]bool
}

func newWalker(resolver translate.TypeResolver) *walker {
	if resolver == nil {
		resolver = translate.Empty
	}
	return &walker{resolver: resolver, visiting: make(map[string]bool)}
}

// AllQuery renders the projection fetching every document of the field's
// type. At root the projection is preceded by a filter on the sanitized
// schema name.
func AllQuery(f *schema.Field, isRoot bool, resolver translate.TypeResolver) string {
	return newWalker(resolver).all(f, isRoot)
}

// BySlugQuery renders the query fetching the first document whose slug
// equals $slug. Only Object fields are expanded, and only a field literally
// named "slug" is rewritten to slug.current.
func BySlugQuery(f *schema.Field, isRoot bool, _ translate.TypeResolver) string {
	body := bySlug(f)
	if !isRoot {
		return body
	}
	prefix := fmt.Sprintf(`*[_type == "%s" && slug.current == $slug][0]`, schema.Sanitize(f.Name))
	if f.Kind == schema.KindObject {
		return prefix + body
	}
	return prefix + block([]string{body})
}

func (w *walker) all(f *schema.Field, isRoot bool) string {
	var sb strings.Builder
	if isRoot {
		fmt.Fprintf(&sb, `*[_type == "%s"]`, schema.Sanitize(f.Name))
	}

	open := isRoot || schema.HasFields(f)
	var parts []string
	emit := func(text string) {
		if text == "" {
			return
		}
		if open {
			parts = append(parts, text)
		} else {
			sb.WriteString(text)
		}
	}

	if !f.Kind.IsBuiltin() {
		emit(w.custom(string(f.Kind)))
	}

	if schema.HasFields(f) {
		for _, child := range f.Fields {
			parts = append(parts, w.entry(child))
		}
	} else {
		switch f.Kind {
		case schema.KindReference:
			emit(reference(f))
		case schema.KindFile:
			emit(fileProjection())
		case schema.KindArray:
			emit(w.array(f))
		}
	}

	if open {
		sb.WriteString(block(parts))
	}
	return sb.String()
}

// entry renders one child of a projection: its sanitized name, followed by
// its own projection when it needs one.
func (w *walker) entry(child *schema.Field) string {
	e := schema.Sanitize(child.Name)
	if schema.NeedsRecursiveExport(child) {
		e += w.all(child, false)
	}
	return e
}

// custom expands a user-defined type into a projection of its fields.
// An unknown name expands to an empty projection.
func (w *walker) custom(name string) string {
	def, ok := w.resolver.Resolve(name)
	if !ok {
		return block(nil)
	}
	if w.visiting[name] {
		return block([]string{"// TODO: " + name + " references itself, select its fields manually"})
	}
	w.visiting[name] = true
	defer delete(w.visiting, name)

	var parts []string
	if schema.HasFields(def) {
		for _, child := range def.Fields {
			parts = append(parts, w.entry(child))
		}
	}
	return block(parts)
}

func (w *walker) array(f *schema.Field) string {
	parts := make([]string, 0, len(f.Of))
	for _, member := range f.Of {
		parts = append(parts, w.arrayMember(member))
	}
	return block(parts)
}

func (w *walker) arrayMember(member string) string {
	if member == string(schema.KindObject) {
		def, ok := w.resolver.Resolve(member)
		if !ok {
			return w.all(schema.NewDocument(""), false)
		}
		// A custom type may itself be named Object.
		if w.visiting[member] {
			return block([]string{"// TODO: " + member + " references itself, select its fields manually"})
		}
		w.visiting[member] = true
		defer delete(w.visiting, member)
		return w.all(def, false)
	}
	if schema.IsBuiltin(member) {
		return member
	}

	guard := fmt.Sprintf("_type == '%s' => ", schema.Sanitize(member))
	def, ok := w.resolver.Resolve(member)
	if !ok {
		return guard + block([]string{"// TODO: Add selection of fields for " + member})
	}
	if w.visiting[member] {
		return guard + block([]string{"// TODO: " + member + " references itself, select its fields manually"})
	}
	w.visiting[member] = true
	defer delete(w.visiting, member)

	expansion := w.all(def, false)
	if expansion == "" {
		expansion = "{...}"
	}
	return guard + expansion
}

func reference(f *schema.Field) string {
	parts := make([]string, 0, len(f.To))
	for _, to := range f.To {
		parts = append(parts, referenceTODO+"\n"+to)
	}
	return strings.Join(parts, ",\n")
}

func fileProjection() string {
	return block([]string{
		fileComment + "\n" + `"url": asset->url`,
		`"originalFilename": asset->originalFilename`,
		`"extension": asset->extension`,
		`"size": asset->size`,
	})
}

func bySlug(f *schema.Field) string {
	if f.Kind != schema.KindObject {
		return slugEntry(f.Name)
	}
	parts := make([]string, 0, len(f.Fields))
	for _, child := range f.Fields {
		e := slugEntry(child.Name)
		if child.Kind == schema.KindObject {
			e += bySlug(child)
		}
		parts = append(parts, e)
	}
	return block(parts)
}

func slugEntry(name string) string {
	if name == "slug" {
		return `"slug": slug.current`
	}
	return name
}

// block wraps comma separated entries in an indented projection.
func block(parts []string) string {
	if len(parts) == 0 {
		return "{}"
	}
	return "{\n" + translate.Indent(strings.Join(parts, ",\n"), 1) + "\n}"
}
