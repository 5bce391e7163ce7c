// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package schema

import "strings"

var builtinSet = func() map[Kind]struct{} {
	m := make(map[Kind]struct{}, len(BuiltinKinds))
	for _, k := range BuiltinKinds {
		m[k] = struct{}{}
	}
	return m
}()

// IsBuiltin reports whether name is exactly one of the built-in kind tags.
// The match is case-sensitive: "object" is a custom type name.
func IsBuiltin(name string) bool {
	_, ok := builtinSet[Kind(name)]
	return ok
}

// IsBuiltin reports whether the kind is one of the built-in tags.
func (k Kind) IsBuiltin() bool {
	return IsBuiltin(string(k))
}

// Lower returns the lowercase tag used for built-in types in Sanity source.
func (k Kind) Lower() string {
	return strings.ToLower(string(k))
}

// HasFields reports whether the field carries children: Document and Object
// always do, and any other field does when it holds a non-empty fields list.
func HasFields(f *Field) bool {
	return f.Kind == KindDocument || f.Kind == KindObject || len(f.Fields) > 0
}

// NeedsRecursiveExport reports whether the query generator must expand the
// field instead of projecting it as a flat leaf.
func NeedsRecursiveExport(f *Field) bool {
	switch f.Kind {
	case KindObject, KindFile, KindDocument, KindArray:
		return true
	}
	return !f.Kind.IsBuiltin()
}

// HasSlug reports whether an Object field has a direct Slug child.
// Document fields and deeper descendants are not inspected.
func HasSlug(f *Field) bool {
	if f.Kind != KindObject {
		return false
	}
	for _, child := range f.Fields {
		if child.Kind == KindSlug {
			return true
		}
	}
	return false
}

// Sanitize turns a display name into an identifier usable in generated
// source: spaces become underscores and every character outside
// [a-zA-Z0-9_] is dropped.
func Sanitize(name string) string {
	var sb strings.Builder
	sb.Grow(len(name))
	for _, r := range name {
		switch {
		case r == ' ':
			sb.WriteByte('_')
		case r == '_',
			r >= 'a' && r <= 'z',
			r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9':
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
