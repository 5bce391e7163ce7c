// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package schema provides the Sanity field tree model, its classifiers,
// and snapshot loading, selection and traversal utilities.
package schema

// Kind is the tag selecting a field variant. Any value outside the built-in
// set names a user-defined type resolved through a type resolver.
type Kind string

// Built-in Sanity kinds.
const (
	KindArray     Kind = "Array"
	KindBlock     Kind = "Block"
	KindBoolean   Kind = "Boolean"
	KindDate      Kind = "Date"
	KindDatetime  Kind = "Datetime"
	KindDocument  Kind = "Document"
	KindFile      Kind = "File"
	KindGeopoint  Kind = "Geopoint"
	KindImage     Kind = "Image"
	KindNumber    Kind = "Number"
	KindObject    Kind = "Object"
	KindReference Kind = "Reference"
	KindSlug      Kind = "Slug"
	KindString    Kind = "String"
	KindSpan      Kind = "Span"
	KindText      Kind = "Text"
	KindURL       Kind = "URL"
)

// BuiltinKinds lists every built-in kind in declaration order.
var BuiltinKinds = []Kind{
	KindArray,
	KindBlock,
	KindBoolean,
	KindDate,
	KindDatetime,
	KindDocument,
	KindFile,
	KindGeopoint,
	KindImage,
	KindNumber,
	KindObject,
	KindReference,
	KindSlug,
	KindString,
	KindSpan,
	KindText,
	KindURL,
}

// Array layouts accepted by Sanity.
const (
	LayoutGrid = "grid"
	LayoutList = "list"
	LayoutTags = "tags"
)

// Field is a node of the schema tree. The serialized form is a direct dump
// of this struct, so the JSON keys follow the snapshot files written by the
// editor: the kind is stored under "type".
type Field struct {
	Name        string `json:"name" yaml:"name"`
	Kind        Kind   `json:"type" yaml:"type"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Hidden      bool   `json:"hidden" yaml:"hidden"`
	ReadOnly    bool   `json:"readOnly" yaml:"readOnly"`

	// Fields holds the children of Document and Object fields.
	Fields []*Field `json:"fields,omitempty" yaml:"fields,omitempty"`

	// Reference attributes.
	Weak bool     `json:"weak,omitempty" yaml:"weak,omitempty"`
	To   []string `json:"to,omitempty" yaml:"to,omitempty"`

	// Array attributes.
	Of []string `json:"of,omitempty" yaml:"of,omitempty"`

	Options        *Options        `json:"options,omitempty" yaml:"options,omitempty"`
	InternalConfig *InternalConfig `json:"internalConfig,omitempty" yaml:"internalConfig,omitempty"`
}

// Options carries the Sanity options object. Which keys are meaningful
// depends on the kind: Image uses Hotspot, Accept and Sources; Array uses
// Layout and Sortable; String uses List.
type Options struct {
	Hotspot  bool         `json:"hotspot,omitempty" yaml:"hotspot,omitempty"`
	Accept   string       `json:"accept,omitempty" yaml:"accept,omitempty"`
	Sources  string       `json:"sources,omitempty" yaml:"sources,omitempty"`
	Layout   string       `json:"layout,omitempty" yaml:"layout,omitempty"`
	Sortable bool         `json:"sortable,omitempty" yaml:"sortable,omitempty"`
	List     []ListOption `json:"list,omitempty" yaml:"list,omitempty"`
}

// ListOption is one entry of a predefined string list.
type ListOption struct {
	Title string `json:"title" yaml:"title"`
	Value string `json:"value" yaml:"value"`
}

// InternalConfig holds generator-only flags that are never emitted as
// Sanity properties themselves.
type InternalConfig struct {
	// Caption and Alt add synthetic child fields to Image definitions.
	Caption bool `json:"caption,omitempty" yaml:"caption,omitempty"`
	Alt     bool `json:"alt,omitempty" yaml:"alt,omitempty"`
	// Predefined turns a String field into a closed enumeration.
	Predefined bool `json:"predefined,omitempty" yaml:"predefined,omitempty"`
}

// NewDocument returns an empty Document field with the given name.
func NewDocument(name string) *Field {
	return &Field{Kind: KindDocument, Name: name, Fields: []*Field{}}
}

// ImageOptions returns the image options, zero valued when unset.
func (f *Field) ImageOptions() (hotspot bool, accept, sources string) {
	if f.Options == nil {
		return false, "", ""
	}
	return f.Options.Hotspot, f.Options.Accept, f.Options.Sources
}

// PredefinedList returns the enumeration values of a String field when it is
// marked predefined, or nil otherwise.
func (f *Field) PredefinedList() []ListOption {
	if f.InternalConfig == nil || !f.InternalConfig.Predefined || f.Options == nil {
		return nil
	}
	return f.Options.List
}

// Clone returns a deep copy of the field tree.
func (f *Field) Clone() *Field {
	if f == nil {
		return nil
	}
	c := *f
	if f.Fields != nil {
		c.Fields = make([]*Field, len(f.Fields))
		for i, child := range f.Fields {
			c.Fields[i] = child.Clone()
		}
	}
	if f.To != nil {
		c.To = append([]string(nil), f.To...)
	}
	if f.Of != nil {
		c.Of = append([]string(nil), f.Of...)
	}
	if f.Options != nil {
		opts := *f.Options
		if f.Options.List != nil {
			opts.List = append([]ListOption(nil), f.Options.List...)
		}
		c.Options = &opts
	}
	if f.InternalConfig != nil {
		ic := *f.InternalConfig
		c.InternalConfig = &ic
	}
	return &c
}
