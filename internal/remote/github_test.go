// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package remote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dacolabs/sanity-codegen/internal/schema"
)

const snapshot = `[
  {"name": "Blog Post", "type": "Document", "title": "Blog Post", "fields": [
    {"name": "title", "type": "String", "title": "Title"}
  ]},
  {"name": "Hero", "type": "Object", "title": "Hero", "fields": []}
]`

func TestParseGitHubURL(t *testing.T) {
	tests := []struct {
		in      string
		want    Repository
		wantErr bool
	}{
		{in: "acme/site", want: Repository{"acme", "site", "main"}},
		{in: "acme/site@develop", want: Repository{"acme", "site", "develop"}},
		{in: "acme/site@feature/hero", want: Repository{"acme", "site", "feature/hero"}},
		{in: "github.com/acme/site.git", want: Repository{"acme", "site", "main"}},
		{in: "https://github.com/acme/site", want: Repository{"acme", "site", "main"}},
		{in: "https://github.com/acme/site/tree/release/v2", want: Repository{"acme", "site", "release/v2"}},
		{in: "https://github.com/acme/site@v1", want: Repository{"acme", "site", "v1"}},
		{in: "https://gitlab.com/acme/site", wantErr: true},
		{in: "acme", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseGitHubURL(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClient_SnapshotURL(t *testing.T) {
	c := NewClient(nil)
	assert.Equal(t,
		"https://github.com/acme/site/raw/main/.sanity_codegen/schema.json",
		c.SnapshotURL(Repository{Owner: "acme", Name: "site", Branch: "main"}))
}

func TestClient_LoadGitHub(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/acme/site/raw/main/.sanity_codegen/schema.json" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(snapshot))
	}))
	defer srv.Close()

	logger, _ := test.NewNullLogger()
	c := NewClient(logger).WithBaseURL(srv.URL + "/")

	roots, err := c.LoadGitHub(context.Background(), Repository{"acme", "site", "main"}, "")
	require.NoError(t, err)
	require.Len(t, roots, 2)
	assert.Equal(t, "Blog Post", roots[0].Name)
	assert.Equal(t, schema.KindObject, roots[1].Kind)

	roots, err = c.LoadGitHub(context.Background(), Repository{"acme", "site", "main"}, "$[?(@.type == 'Object')]")
	require.NoError(t, err)
	require.Len(t, roots, 1)
	assert.Equal(t, "Hero", roots[0].Name)
}

func TestClient_FetchGitHub_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	logger, _ := test.NewNullLogger()
	c := NewClient(logger).WithBaseURL(srv.URL)

	_, err := c.FetchGitHub(context.Background(), Repository{"acme", "missing", "main"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "status 404")
}

func TestClient_FetchGitHub_RetriesServerErrors(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(snapshot))
	}))
	defer srv.Close()

	logger, _ := test.NewNullLogger()
	c := NewClient(logger).WithBaseURL(srv.URL).WithRetries(2)
	c.http.RetryWaitMin = 0
	c.http.RetryWaitMax = 0

	data, err := c.FetchGitHub(context.Background(), Repository{"acme", "site", "main"})
	require.NoError(t, err)
	assert.JSONEq(t, snapshot, string(data))
	assert.Equal(t, int32(2), hits.Load())
}

func TestClient_FetchGitHub_GivesUp(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	logger, _ := test.NewNullLogger()
	c := NewClient(logger).WithBaseURL(srv.URL).WithRetries(0)

	_, err := c.FetchGitHub(context.Background(), Repository{"acme", "site", "main"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "status 500")
}

func TestClient_LoadGitHub_InvalidSnapshot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"name": `))
	}))
	defer srv.Close()

	logger, _ := test.NewNullLogger()
	c := NewClient(logger).WithBaseURL(srv.URL)

	_, err := c.LoadGitHub(context.Background(), Repository{"acme", "site", "main"}, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode snapshot")
}
