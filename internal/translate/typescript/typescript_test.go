// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package typescript

import (
	"testing"

	"github.com/hexops/autogold/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dacolabs/sanity-codegen/internal/schema"
	"github.com/dacolabs/sanity-codegen/internal/translate"
)

func TestInterface_Root(t *testing.T) {
	root := &schema.Field{
		Name:  "Blog Post",
		Kind:  schema.KindDocument,
		Title: "Blog Post",
		Fields: []*schema.Field{
			{Name: "title", Kind: schema.KindString, Title: "Title"},
		},
	}

	assert.Equal(t, "export interface Blog_Post {\ntitle: string;\n}\n", Interface(root, true))
}

func TestInterface_Members(t *testing.T) {
	tests := []struct {
		name  string
		field *schema.Field
		want  string
	}{
		{
			name: "predefined list becomes a union",
			field: &schema.Field{
				Name:           "colorField",
				Kind:           schema.KindString,
				Options:        &schema.Options{List: []schema.ListOption{{Title: "Red", Value: "red"}, {Title: "Blue", Value: "blue"}}},
				InternalConfig: &schema.InternalConfig{Predefined: true},
			},
			want: "colorField: \"red\" | \"blue\";\n",
		},
		{
			name: "repeated list values are kept",
			field: &schema.Field{
				Name:           "colorField",
				Kind:           schema.KindString,
				Options:        &schema.Options{List: []schema.ListOption{{Title: "Red", Value: "red"}, {Title: "Red", Value: "red"}}},
				InternalConfig: &schema.InternalConfig{Predefined: true},
			},
			want: "colorField: \"red\" | \"red\";\n",
		},
		{
			name:  "repeated array members are kept",
			field: &schema.Field{Name: "items", Kind: schema.KindArray, Of: []string{"Hero", "Hero"}},
			want:  "items: Array<Hero | Hero>;\n",
		},
		{
			name: "list without predefined flag stays a string",
			field: &schema.Field{
				Name:    "colorField",
				Kind:    schema.KindString,
				Options: &schema.Options{List: []schema.ListOption{{Title: "Red", Value: "red"}}},
			},
			want: "colorField: string;\n",
		},
		{
			name:  "array of mixed members",
			field: &schema.Field{Name: "items", Kind: schema.KindArray, Of: []string{"String", "Hero", "Image"}},
			want:  "items: Array<string | Hero | Image>;\n",
		},
		{
			name:  "array without members",
			field: &schema.Field{Name: "items", Kind: schema.KindArray},
			want:  "items: Array<any>;\n",
		},
		{
			name:  "sanitized member name",
			field: &schema.Field{Name: "hero banner", Kind: "Hero Banner"},
			want:  "hero_banner: Hero_Banner;\n",
		},
		{
			name:  "reference",
			field: &schema.Field{Name: "author", Kind: schema.KindReference, To: []string{"Author"}},
			want:  "author: any /* TODO: fix reference type */;\n",
		},
		{
			name: "nested object is flattened",
			field: &schema.Field{Name: "seo", Kind: schema.KindObject, Fields: []*schema.Field{
				{Name: "metaTitle", Kind: schema.KindString},
				{Name: "noIndex", Kind: schema.KindBoolean},
			}},
			want: "metaTitle: string;\nnoIndex: boolean;\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Interface(tt.field, false))
		})
	}
}

func TestTypeName(t *testing.T) {
	tests := []struct {
		kind schema.Kind
		want string
	}{
		{schema.KindBlock, "PortableTextBlock"},
		{schema.KindBoolean, "boolean"},
		{schema.KindDate, "Date"},
		{schema.KindDatetime, "Date"},
		{schema.KindDocument, "Document"},
		{schema.KindFile, "File"},
		{schema.KindGeopoint, "Geopoint"},
		{schema.KindImage, "Image"},
		{schema.KindNumber, "number"},
		{schema.KindObject, "Object"},
		{schema.KindSlug, "string"},
		{schema.KindString, "string"},
		{schema.KindText, "String"},
		{schema.KindURL, "URL"},
		{schema.KindSpan, "span"},
		{schema.KindArray, "Array<any>"},
		{"Author", "Author"},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.want, TypeName(tt.kind))
		})
	}
}

func TestTranslator_Translate(t *testing.T) {
	root := &schema.Field{
		Name: "Page",
		Kind: schema.KindDocument,
		Fields: []*schema.Field{
			{Name: "title", Kind: schema.KindString},
			{Name: "count", Kind: schema.KindNumber},
			{Name: "published", Kind: schema.KindBoolean},
			{Name: "tags", Kind: schema.KindArray, Of: []string{"String"}},
			{Name: "hero", Kind: "Hero"},
			{Name: "seo", Kind: schema.KindObject, Fields: []*schema.Field{
				{Name: "metaTitle", Kind: schema.KindString},
			}},
		},
	}

	tr := &Translator{}
	assert.Equal(t, "typescript", tr.Name())
	assert.Equal(t, ".ts", tr.FileExtension())

	out, err := tr.Translate(root, translate.Empty)
	require.NoError(t, err)
	autogold.Expect(`export interface Page {
title: string;
count: number;
published: boolean;
tags: Array<string>;
hero: Hero;
metaTitle: string;
}
`).Equal(t, string(out))

	_, err = tr.Translate(nil, translate.Empty)
	assert.Error(t, err)
}
