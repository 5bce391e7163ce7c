// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package sanity

import (
	"strings"
	"testing"

	"github.com/hexops/autogold/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dacolabs/sanity-codegen/internal/schema"
	"github.com/dacolabs/sanity-codegen/internal/translate"
)

func blogPost() *schema.Field {
	return &schema.Field{
		Name:  "Blog Post",
		Kind:  schema.KindDocument,
		Title: "Blog Post",
		Fields: []*schema.Field{
			{Name: "title", Kind: schema.KindString, Title: "Title"},
		},
	}
}

func TestDefinition_Root(t *testing.T) {
	got := Definition(blogPost(), true, translate.Empty)

	autogold.Expect(`import {defineField, defineType} from 'sanity'
import groq from 'groq'

export default defineType({
  type: 'document',
  name: "Blog_Post",
  title: "Blog Post",
  fields: [
    defineField({
      type: 'string',
      name: "title",
      title: "Title",
    }),
  ],
});

export const ALL_BLOG_POST_QUERY = groq` + "`" + `
*[_type == "Blog_Post"]{
  title
}
` + "`" + `
export const getAllBlogPost = () => client.fetch(ALL_BLOG_POST_QUERY)

export interface Blog_Post {
title: string;
}
`).Equal(t, got)

	assert.Equal(t, 1, strings.Count(got, "defineType("))
	assert.True(t, strings.HasSuffix(got, "export interface Blog_Post {\ntitle: string;\n}\n"))
}

func TestDefinition_Deterministic(t *testing.T) {
	root := blogPost()
	resolver := translate.NewRegistry([]*schema.Field{root})

	assert.Equal(t, Definition(root, true, resolver), Definition(root, true, resolver))
}

func TestDefinition_Fragments(t *testing.T) {
	tests := []struct {
		name  string
		field *schema.Field
		want  string
	}{
		{
			name:  "reference",
			field: &schema.Field{Name: "author", Kind: schema.KindReference, Title: "Author", To: []string{"Author"}},
			want: `defineField({
  type: 'reference',
  name: "author",
  title: "Author",
  weak: false,
  to: [{type: 'author'}],
}),`,
		},
		{
			name: "predefined list",
			field: &schema.Field{
				Name:           "colorField",
				Kind:           schema.KindString,
				Title:          "Color",
				Options:        &schema.Options{List: []schema.ListOption{{Title: "Red", Value: "red"}, {Title: "Blue", Value: "blue"}}},
				InternalConfig: &schema.InternalConfig{Predefined: true},
			},
			want: `defineField({
  type: 'string',
  name: "colorField",
  title: "Color",
  options: {
    list: [
      {title: 'Red', value: 'red'},
      {title: 'Blue', value: 'blue'},
    ],
  },
}),`,
		},
		{
			name: "flags and description",
			field: &schema.Field{
				Name:        "internal note",
				Kind:        schema.KindText,
				Title:       "Internal note",
				Description: `Shown to "editors" only`,
				Hidden:      true,
				ReadOnly:    true,
			},
			want: `defineField({
  type: 'text',
  name: "internal_note",
  title: "Internal note",
  description: "Shown to \"editors\" only",
  hidden: true,
  readOnly: true,
}),`,
		},
		{
			name: "array with options",
			field: &schema.Field{
				Name:    "tags",
				Kind:    schema.KindArray,
				Title:   "Tags",
				Of:      []string{"String", "Hero Banner"},
				Options: &schema.Options{Layout: schema.LayoutTags, Sortable: true},
			},
			want: `defineField({
  type: 'array',
  name: "tags",
  title: "Tags",
  of: [{type: 'string'}, {type: 'hero_banner'}],
  options: {
    layout: 'tags',
    sortable: true,
  },
}),`,
		},
		{
			name:  "repeated reference targets are kept",
			field: &schema.Field{Name: "author", Kind: schema.KindReference, Title: "Author", To: []string{"Author", "Author"}},
			want: `defineField({
  type: 'reference',
  name: "author",
  title: "Author",
  weak: false,
  to: [{type: 'author'}, {type: 'author'}],
}),`,
		},
		{
			name:  "repeated array members are kept",
			field: &schema.Field{Name: "items", Kind: schema.KindArray, Title: "Items", Of: []string{"String", "String"}},
			want: `defineField({
  type: 'array',
  name: "items",
  title: "Items",
  of: [{type: 'string'}, {type: 'string'}],
}),`,
		},
		{
			name: "repeated list values are kept",
			field: &schema.Field{
				Name:           "colorField",
				Kind:           schema.KindString,
				Title:          "Color",
				Options:        &schema.Options{List: []schema.ListOption{{Title: "Red", Value: "red"}, {Title: "Red", Value: "red"}}},
				InternalConfig: &schema.InternalConfig{Predefined: true},
			},
			want: `defineField({
  type: 'string',
  name: "colorField",
  title: "Color",
  options: {
    list: [
      {title: 'Red', value: 'red'},
      {title: 'Red', value: 'red'},
    ],
  },
}),`,
		},
		{
			name:  "custom kind",
			field: &schema.Field{Name: "hero", Kind: "Hero Banner", Title: "Hero"},
			want: `defineField({
  type: 'Hero_Banner',
  name: "hero",
  title: "Hero",
}),`,
		},
		{
			name: "image with options and synthetic fields",
			field: &schema.Field{
				Name:           "cover",
				Kind:           schema.KindImage,
				Title:          "Cover",
				Options:        &schema.Options{Hotspot: true, Accept: "image/*"},
				InternalConfig: &schema.InternalConfig{Caption: true, Alt: true},
			},
			want: `defineField({
  type: 'image',
  name: "cover",
  title: "Cover",
  options: {
    hotspot: true,
    accept: 'image/*',
  },
  fields: [
    defineField({
      type: 'string',
      name: "caption",
      title: "Caption",
    }),
    defineField({
      type: 'string',
      name: "alt",
      title: "Alt text",
      description: "Alternative text for screenreaders. Falls back on caption if not set",
      validation: (rule) => rule.required().max(255).min(10),
    }),
  ],
}),`,
		},
		{
			name:  "plain image",
			field: &schema.Field{Name: "cover", Kind: schema.KindImage, Title: "Cover"},
			want: `defineField({
  type: 'image',
  name: "cover",
  title: "Cover",
}),`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Definition(tt.field, false, translate.Empty))
		})
	}
}

func TestDefinition_NestedIndentation(t *testing.T) {
	root := &schema.Field{
		Name: "Page",
		Kind: schema.KindDocument,
		Fields: []*schema.Field{
			{Name: "seo", Kind: schema.KindObject, Fields: []*schema.Field{
				{Name: "metaTitle", Kind: schema.KindString},
			}},
		},
	}

	got := Definition(root, true, translate.Empty)
	assert.Contains(t, got, "\n    defineField({\n      type: 'object',\n      name: \"seo\",\n")
	assert.Contains(t, got, "\n        defineField({\n          type: 'string',\n          name: \"metaTitle\",\n")
	assert.Contains(t, got, "\n        }),\n      ],\n    }),\n  ],\n});")
}

func TestDefinition_SlugHelpers(t *testing.T) {
	root := &schema.Field{
		Name:  "Hero",
		Kind:  schema.KindObject,
		Title: "Hero",
		Fields: []*schema.Field{
			{Name: "slug", Kind: schema.KindSlug, Title: "Slug"},
		},
	}

	got := Definition(root, true, translate.Empty)
	bySlug := strings.Index(got, "export const HERO_BY_SLUG_QUERY")
	all := strings.Index(got, "export const ALL_HERO_QUERY")
	iface := strings.Index(got, "export interface Hero {")
	require.NotEqual(t, -1, bySlug)
	assert.Less(t, bySlug, all)
	assert.Less(t, all, iface)
	assert.Contains(t, got, "getHeroBySlug")
}

func TestTranslator_Translate(t *testing.T) {
	tr := &Translator{ClientImport: "import {client} from '../lib/client'"}
	assert.Equal(t, "sanity", tr.Name())
	assert.Equal(t, ".ts", tr.FileExtension())

	out, err := tr.Translate(blogPost(), translate.Empty)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out),
		Import+"\nimport groq from 'groq'\nimport {client} from '../lib/client'\n\nexport default defineType({\n"))

	_, err = tr.Translate(nil, translate.Empty)
	assert.Error(t, err)
}
