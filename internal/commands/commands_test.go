// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/dacolabs/sanity-codegen/internal/config"
	"github.com/dacolabs/sanity-codegen/internal/session"
)

// execute runs the CLI in dir and returns what it printed on stdout.
func execute(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	t.Chdir(dir)

	missing := filepath.Join(t.TempDir(), "config.yaml")
	cmd := NewRootCmd(func(key string) string {
		if key == config.UserConfigEnv {
			return missing
		}
		return ""
	})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

// initProject runs a non-interactive init from preset in a fresh directory.
func initProject(t *testing.T, preset string, extra ...string) string {
	t.Helper()
	dir := t.TempDir()
	args := append([]string{"init", "--non-interactive", "--preset", preset}, extra...)
	_, err := execute(t, dir, args...)
	require.NoError(t, err)
	return dir
}

func TestInit(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, dir, "init", "--non-interactive", "--preset", "hero_banner", "--format", "sanity,groq")
	require.NoError(t, err)
	assert.Contains(t, out, "Initialization completed")

	cfg, err := config.Load(filepath.Join(dir, config.FileName))
	require.NoError(t, err)
	assert.Equal(t, &config.Config{
		Version: 1,
		Input:   "schemas.json",
		Output:  "generated",
		Formats: []string{"sanity", "groq"},
	}, cfg)

	data, err := os.ReadFile(filepath.Join(dir, "schemas.json")) //nolint:gosec // test file path
	require.NoError(t, err)
	assert.Contains(t, string(data), `"name": "Hero Banner"`)

	_, err = execute(t, dir, "init", "--non-interactive")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already initialized")
}

func TestInit_EmptySnapshot(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, dir, "init", "--non-interactive", "-i", "schemas/site.yaml")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "schemas", "site.yaml")) //nolint:gosec // test file path
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))

	out, err := execute(t, dir, "types", "list")
	require.NoError(t, err)
	assert.Equal(t, "No types defined.\n", out)
}

func TestInit_InvalidOptions(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"unknown preset", []string{"--preset", "landing"}, "unknown preset"},
		{"unknown format", []string{"--format", "graphql"}, "unknown format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			_, err := execute(t, dir, append([]string{"init", "--non-interactive"}, tt.args...)...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)

			_, statErr := os.Stat(filepath.Join(dir, config.FileName))
			assert.True(t, os.IsNotExist(statErr))
		})
	}
}

func TestGenerate(t *testing.T) {
	dir := initProject(t, "hero_banner")

	out, err := execute(t, dir, "generate")
	require.NoError(t, err)
	assert.Contains(t, out, "Generated 1 file(s)")

	data, err := os.ReadFile(filepath.Join(dir, "generated", "Hero_Banner.ts")) //nolint:gosec // test file path
	require.NoError(t, err)
	module := string(data)
	assert.True(t, strings.HasPrefix(module, "// Code generated by sanity-codegen. DO NOT EDIT.\n\n"))
	assert.Contains(t, module, "export default defineType({")
	assert.Contains(t, module, "export const HERO_BANNER_BY_SLUG_QUERY = groq`")
	assert.Contains(t, module, "export interface Hero_Banner {")
}

func TestGenerate_FormatsAndOutput(t *testing.T) {
	dir := initProject(t, "photo_gallery")

	_, err := execute(t, dir, "generate", "Photo", "--format", "typescript,jsonschema", "--output", "web/types")
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, "web", "types", "typescript", "Photo.ts"))
	assert.FileExists(t, filepath.Join(dir, "web", "types", "jsonschema", "Photo.schema.json"))
	assert.NoFileExists(t, filepath.Join(dir, "web", "types", "typescript", "Photo_Gallery.ts"))
}

func TestGenerate_Markdown(t *testing.T) {
	dir := initProject(t, "photo_gallery", "--format", "markdown")

	_, err := execute(t, dir, "generate")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "generated", "Photo_Gallery.md")) //nolint:gosec // test file path
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# Photo Gallery\n"))
	assert.Contains(t, string(data), "[Photo](Photo.md)")
	assert.FileExists(t, filepath.Join(dir, "generated", "Photo.md"))
}

func TestGenerate_Combine(t *testing.T) {
	dir := initProject(t, "photo_gallery", "--combine")

	_, err := execute(t, dir, "generate")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "generated", "sanity-combined.ts")) //nolint:gosec // test file path
	require.NoError(t, err)
	assert.Contains(t, string(data), "// ------------------ Photo Gallery ------------------\n")
	assert.Contains(t, string(data), "// ------------------ Photo ------------------\n")
}

func TestGenerate_Errors(t *testing.T) {
	dir := initProject(t, "photo_gallery")

	_, err := execute(t, dir, "generate", "Landing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `schema "Landing" not found`)

	_, err = execute(t, dir, "generate", "--format", "graphql")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")

	_, err = execute(t, t.TempDir(), "generate")
	assert.ErrorIs(t, err, session.ErrNotInitialized)
}

func TestQuery(t *testing.T) {
	dir := initProject(t, "hero_banner")

	out, err := execute(t, dir, "query", "--by-slug")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, `*[_type == "Hero_Banner" && slug.current == $slug][0]{`))
	assert.Contains(t, out, `"slug": slug.current`)

	out, err = execute(t, dir, "query", "Hero_Banner", "--all")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, `*[_type == "Hero_Banner"]{`))

	out, err = execute(t, dir, "query")
	require.NoError(t, err)
	assert.Contains(t, out, "export const getAllHeroBanner = () => client.fetch(ALL_HERO_BANNER_QUERY)")

	_, err = execute(t, dir, "query", "--all", "--by-slug")
	assert.Error(t, err)
}

func TestInterface(t *testing.T) {
	dir := initProject(t, "photo_gallery")

	out, err := execute(t, dir, "interface")
	require.NoError(t, err)
	assert.Contains(t, out, "// ------------------ Photo Gallery ------------------\nexport interface Photo_Gallery {\n")
	assert.Contains(t, out, "export interface Photo {\n")
}

func TestTypesList(t *testing.T) {
	dir := initProject(t, "photo_gallery")

	out, err := execute(t, dir, "types", "list")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.GreaterOrEqual(t, len(lines), 3)
	assert.Regexp(t, `^NAME\s+KIND\s+FIELDS\s+DESCRIPTION$`, lines[0])
	assert.Regexp(t, `^Photo_Gallery\s+Document\s+\d+\s+`, lines[1])
	assert.Regexp(t, `^Photo\s+Object\s+2\s+`, lines[2])
	assert.Contains(t, out, "Unresolved types: Photographer")
}

func TestDescribe(t *testing.T) {
	dir := initProject(t, "photo_gallery")

	out, err := execute(t, dir, "describe")
	require.NoError(t, err)
	assert.Contains(t, out, "schemas.json")
	assert.Contains(t, out, "Photo_Gallery")

	out, err = execute(t, dir, "describe", "Photo_Gallery")
	require.NoError(t, err)
	assert.Contains(t, out, "photos: Array of Photo")
	assert.Contains(t, out, "photographer: Reference -> Photographer")

	out, err = execute(t, dir, "describe", "Photo", "-o", "yaml")
	require.NoError(t, err)
	var roots []map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &roots))
	require.Len(t, roots, 1)
	assert.Equal(t, "Photo", roots[0]["name"])

	_, err = execute(t, dir, "describe", "Photo", "-o", "xml")
	assert.Error(t, err)
}

func TestExport(t *testing.T) {
	dir := initProject(t, "photo_gallery")

	out, err := execute(t, dir, "export", "--file", "out.yaml", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 2 schema(s) to out.yaml")

	data, err := os.ReadFile(filepath.Join(dir, "out.yaml")) //nolint:gosec // test file path
	require.NoError(t, err)
	assert.Contains(t, string(data), "name: Photo Gallery")

	out, err = execute(t, dir, "export", "--select", "$[?(@.type == 'Object')]")
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "Photo"`)
	assert.NotContains(t, out, `"name": "Photo Gallery"`)
}

func TestPresets(t *testing.T) {
	out, err := execute(t, t.TempDir(), "presets", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "hero_banner")
	assert.Contains(t, out, "Photo Gallery")

	out, err = execute(t, t.TempDir(), "presets", "show", "hero_banner")
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "Hero Banner"`)
}

func TestVersion(t *testing.T) {
	out, err := execute(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "sanity-codegen version "))

	out, err = execute(t, t.TempDir(), "version", "--short")
	require.NoError(t, err)
	assert.NotContains(t, out, "sanity-codegen")
}

func TestLogFormat(t *testing.T) {
	_, err := execute(t, t.TempDir(), "version", "--log-format", "json")
	assert.NoError(t, err)

	_, err = execute(t, t.TempDir(), "version", "--log-format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported log format")
}
