// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dacolabs/sanity-codegen/internal/config"
)

const snapshot = `[
  {"name": "Blog Post", "type": "Document", "title": "Blog Post", "fields": [
    {"name": "title", "type": "String", "title": "Title"},
    {"name": "hero", "type": "Hero", "title": "Hero"}
  ]},
  {"name": "Hero", "type": "Object", "title": "Hero", "fields": [
    {"name": "heading", "type": "String", "title": "Heading"}
  ]}
]`

// project writes files into a fresh directory and returns it.
func project(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
	return dir
}

// noUserConfig points the user configuration at a file that doesn't exist.
func noUserConfig(t *testing.T) func(string) string {
	missing := filepath.Join(t.TempDir(), "config.yaml")
	return func(key string) string {
		if key == config.UserConfigEnv {
			return missing
		}
		return ""
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		files     map[string]string
		flags     *config.Config
		wantErr   error
		wantRoots []string
	}{
		{
			name:    "not initialized",
			wantErr: ErrNotInitialized,
		},
		{
			name:    "invalid config",
			files:   map[string]string{config.FileName: "version: 2\n"},
			wantErr: ErrInvalidConfig,
		},
		{
			name:    "unknown format",
			files:   map[string]string{config.FileName: "version: 1\ninput: s.json\nformats: [graphql]\n"},
			wantErr: ErrInvalidConfig,
		},
		{
			name:    "no input",
			files:   map[string]string{config.FileName: "version: 1\n"},
			wantErr: ErrNoInput,
		},
		{
			name:    "missing snapshot",
			files:   map[string]string{config.FileName: "version: 1\ninput: schemas.json\n"},
			wantErr: ErrNoInput,
		},
		{
			name: "invalid snapshot",
			files: map[string]string{
				config.FileName: "version: 1\ninput: schemas.json\n",
				"schemas.json":  `{"name": `,
			},
			wantErr: ErrInvalidSnapshot,
		},
		{
			name: "valid",
			files: map[string]string{
				config.FileName: "version: 1\ninput: schemas/site.json\n",
				"schemas/site.json": snapshot,
			},
			wantRoots: []string{"Blog Post", "Hero"},
		},
		{
			name: "selector from config",
			files: map[string]string{
				config.FileName: "version: 1\ninput: schemas.json\nselect: \"$[?(@.type == 'Object')]\"\n",
				"schemas.json":  snapshot,
			},
			wantRoots: []string{"Hero"},
		},
		{
			name:      "input flag without project",
			files:     map[string]string{"schemas.json": snapshot},
			flags:     &config.Config{Input: "schemas.json"},
			wantRoots: []string{"Blog Post", "Hero"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := project(t, tt.files)

			ctx, err := Load(context.Background(), Options{Dir: dir, Getenv: noUserConfig(t), Flags: tt.flags})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			sc := From(ctx)
			require.NotNil(t, sc)

			var names []string
			for _, r := range sc.Roots {
				names = append(names, r.Name)
			}
			assert.Equal(t, tt.wantRoots, names)
			assert.Equal(t, []string{"sanity"}, sc.Config.Formats)
			assert.Equal(t, filepath.Join(dir, "generated"), sc.OutputPath())
		})
	}
}

func TestResolve_Precedence(t *testing.T) {
	dir := project(t, map[string]string{
		config.FileName: "version: 1\ninput: schemas.json\nformats: [sanity, groq]\n",
		"user.yaml":     "output: web/src/schemas\nformats: [typescript]\nbanner: from user\n",
	})
	getenv := func(key string) string {
		if key == config.UserConfigEnv {
			return filepath.Join(dir, "user.yaml")
		}
		return ""
	}

	cfg, gotDir, err := Resolve(Options{Dir: dir, Getenv: getenv})
	require.NoError(t, err)
	assert.Equal(t, dir, gotDir)
	assert.Equal(t, "web/src/schemas", cfg.Output)
	assert.Equal(t, []string{"sanity", "groq"}, cfg.Formats)
	assert.Equal(t, "from user", cfg.Banner)

	cfg, _, err = Resolve(Options{Dir: dir, Getenv: getenv, Flags: &config.Config{Output: "out", Formats: []string{"jsonschema"}}})
	require.NoError(t, err)
	assert.Equal(t, "out", cfg.Output)
	assert.Equal(t, []string{"jsonschema"}, cfg.Formats)
}

func TestContext_Select(t *testing.T) {
	dir := project(t, map[string]string{
		config.FileName: "version: 1\ninput: schemas.json\n",
		"schemas.json":  snapshot,
	})
	ctx, err := Load(context.Background(), Options{Dir: dir, Getenv: noUserConfig(t)})
	require.NoError(t, err)
	sc := From(ctx)

	all, err := sc.Select()
	require.NoError(t, err)
	assert.Len(t, all, 2)

	picked, err := sc.Select("Hero", "Blog_Post")
	require.NoError(t, err)
	require.Len(t, picked, 2)
	assert.Equal(t, "Hero", picked[0].Name)
	assert.Equal(t, "Blog Post", picked[1].Name)

	_, err = sc.Select("Landing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "available: Blog_Post, Hero")
}

func TestContext_Reload(t *testing.T) {
	dir := project(t, map[string]string{
		config.FileName: "version: 1\ninput: schemas.json\n",
		"schemas.json":  snapshot,
	})
	ctx, err := Load(context.Background(), Options{Dir: dir, Getenv: noUserConfig(t)})
	require.NoError(t, err)
	sc := From(ctx)
	require.Len(t, sc.Roots, 2)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "schemas.json"),
		[]byte(`{"name": "Page", "type": "Document", "title": "Page", "fields": []}`), 0o600))
	require.NoError(t, sc.Reload())
	require.Len(t, sc.Roots, 1)
	_, ok := sc.Registry.Resolve("Page")
	assert.True(t, ok)
}

func TestFrom_NoContextStored(t *testing.T) {
	assert.Nil(t, From(context.Background()))
}

func TestPreRunLoad_WithCommandExecution(t *testing.T) {
	tests := []struct {
		name    string
		files   map[string]string
		wantErr error
	}{
		{
			name: "valid project",
			files: map[string]string{
				config.FileName: "version: 1\ninput: schemas.json\n",
				"schemas.json":  snapshot,
			},
		},
		{
			name:    "not initialized",
			wantErr: ErrNotInitialized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := project(t, tt.files)
			getenv := noUserConfig(t)

			var captured *Context
			rootCmd := &cobra.Command{
				Use: "test",
				PersistentPreRunE: PreRunLoad(func(*cobra.Command) Options {
					return Options{Dir: dir, Getenv: getenv}
				}),
			}
			rootCmd.AddCommand(&cobra.Command{
				Use: "sub",
				RunE: func(cmd *cobra.Command, args []string) error {
					sc, err := RequireFromCommand(cmd)
					captured = sc
					return err
				},
			})

			rootCmd.SetArgs([]string{"sub"})
			err := rootCmd.ExecuteContext(context.Background())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, captured)
			assert.Len(t, captured.Roots, 2)
		})
	}
}

func TestRequireFromCommand_NotLoaded(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())

	_, err := RequireFromCommand(cmd)
	assert.Error(t, err)
	assert.Nil(t, FromCommand(cmd))
}
