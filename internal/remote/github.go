// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package remote fetches schema snapshots published in GitHub repositories.
package remote

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"

	"github.com/dacolabs/sanity-codegen/internal/schema"
)

// ErrNotFound is returned when the repository does not serve a snapshot.
var ErrNotFound = errors.New("remote snapshot not found")

const (
	// DefaultBaseURL is the GitHub web host serving raw files.
	DefaultBaseURL = "https://github.com"
	// SnapshotPath is where a repository publishes its snapshot.
	SnapshotPath = ".sanity_codegen/schema.json"
	// DefaultBranch is used when no branch is given.
	DefaultBranch = "main"

	maxSnapshotSize = 16 << 20
)

// Repository identifies the branch of a GitHub repository.
type Repository struct {
	Owner  string
	Name   string
	Branch string
}

func (r Repository) String() string {
	return fmt.Sprintf("%s/%s@%s", r.Owner, r.Name, r.Branch)
}

// ParseGitHubURL extracts a Repository from "owner/repo[@branch]" or from a
// github.com URL, optionally pointing at a tree. The branch defaults to main.
func ParseGitHubURL(s string) (Repository, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return Repository{}, fmt.Errorf("empty repository reference")
	}

	var branch string
	if i := strings.LastIndex(raw, "@"); i > 0 {
		raw, branch = raw[:i], raw[i+1:]
	}

	if strings.Contains(raw, "://") {
		u, err := url.Parse(raw)
		if err != nil {
			return Repository{}, fmt.Errorf("invalid repository url %q: %w", s, err)
		}
		if u.Host != "github.com" && u.Host != "www.github.com" {
			return Repository{}, fmt.Errorf("not a github url: %q", s)
		}
		raw = u.Path
	} else {
		raw = strings.TrimPrefix(raw, "github.com/")
	}

	parts := strings.Split(strings.Trim(raw, "/"), "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return Repository{}, fmt.Errorf("invalid repository reference %q: want owner/repo", s)
	}
	repo := Repository{Owner: parts[0], Name: strings.TrimSuffix(parts[1], ".git"), Branch: branch}
	if repo.Branch == "" && len(parts) >= 4 && parts[2] == "tree" {
		repo.Branch = strings.Join(parts[3:], "/")
	}
	if repo.Branch == "" {
		repo.Branch = DefaultBranch
	}
	return repo, nil
}

// Client downloads snapshots over HTTP, retrying transient failures.
type Client struct {
	baseURL string
	http    *retryablehttp.Client
	log     logrus.FieldLogger
}

// NewClient creates a Client for github.com.
func NewClient(log logrus.FieldLogger) *Client {
	if log == nil {
		log = logrus.StandardLogger()
	}
	hc := retryablehttp.NewClient()
	hc.Logger = leveledLogger{log: log}
	hc.RetryMax = 3
	hc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	return &Client{baseURL: DefaultBaseURL, http: hc, log: log}
}

// WithBaseURL points the client at another host.
func (c *Client) WithBaseURL(u string) *Client {
	c.baseURL = strings.TrimSuffix(u, "/")
	return c
}

// WithRetries sets how many times a failed request is retried.
func (c *Client) WithRetries(n int) *Client {
	if n >= 0 {
		c.http.RetryMax = n
	}
	return c
}

// SnapshotURL returns the raw file URL of the repository snapshot.
func (c *Client) SnapshotURL(repo Repository) string {
	return fmt.Sprintf("%s/%s/%s/raw/%s/%s", c.baseURL, repo.Owner, repo.Name, repo.Branch, SnapshotPath)
}

// FetchGitHub downloads the raw snapshot of repo.
func (c *Client) FetchGitHub(ctx context.Context, repo Repository) ([]byte, error) {
	u := c.SnapshotURL(repo)
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", repo, err)
	}
	req.Header.Set("Accept", "application/json")

	c.log.WithField("url", u).Debug("fetching snapshot")
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", repo, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch %s: %w (status %d)", repo, ErrNotFound, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxSnapshotSize+1))
	if err != nil {
		return nil, fmt.Errorf("read snapshot of %s: %w", repo, err)
	}
	if len(data) > maxSnapshotSize {
		return nil, fmt.Errorf("snapshot of %s exceeds %d bytes", repo, maxSnapshotSize)
	}
	return data, nil
}

// LoadGitHub downloads and decodes the snapshot of repo, keeping the roots
// matched by selector when it is not empty.
func (c *Client) LoadGitHub(ctx context.Context, repo Repository, selector string) ([]*schema.Field, error) {
	data, err := c.FetchGitHub(ctx, repo)
	if err != nil {
		return nil, err
	}
	roots, err := schema.Decode(data, schema.JSON, selector)
	if err != nil {
		return nil, fmt.Errorf("decode snapshot of %s: %w", repo, err)
	}
	return roots, nil
}

// leveledLogger forwards retryablehttp logging to logrus.
type leveledLogger struct {
	log logrus.FieldLogger
}

func (l leveledLogger) with(keysAndValues []any) logrus.FieldLogger {
	fields := make(logrus.Fields, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}
	return l.log.WithFields(fields)
}

func (l leveledLogger) Error(msg string, keysAndValues ...any) {
	l.with(keysAndValues).Error(msg)
}

func (l leveledLogger) Info(msg string, keysAndValues ...any) {
	l.with(keysAndValues).Info(msg)
}

func (l leveledLogger) Debug(msg string, keysAndValues ...any) {
	l.with(keysAndValues).Debug(msg)
}

func (l leveledLogger) Warn(msg string, keysAndValues ...any) {
	l.with(keysAndValues).Warn(msg)
}
