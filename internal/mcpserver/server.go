// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package mcpserver exposes the generators as Model Context Protocol tools
// served over stdio.
package mcpserver

import (
	"context"
	"fmt"
	"io"
	stdlog "log"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"

	"github.com/dacolabs/sanity-codegen/internal/codegen"
	"github.com/dacolabs/sanity-codegen/internal/schema"
	"github.com/dacolabs/sanity-codegen/internal/translate"
	"github.com/dacolabs/sanity-codegen/internal/translate/groq"
	"github.com/dacolabs/sanity-codegen/internal/translate/jsonschema"
	"github.com/dacolabs/sanity-codegen/internal/translate/markdown"
	"github.com/dacolabs/sanity-codegen/internal/translate/sanity"
	"github.com/dacolabs/sanity-codegen/internal/translate/typescript"
)

// Name is the server name announced to clients.
const Name = "sanity-codegen"

const (
	argSnapshot = "snapshot"
	argRoot     = "root"
	argBySlug   = "by_slug"
)

// Server wraps an MCP server with the generator tools registered.
type Server struct {
	mcp *server.MCPServer
	log logrus.FieldLogger
}

// New creates a Server announcing version.
func New(version string, log logrus.FieldLogger) *Server {
	if log == nil {
		log = logrus.StandardLogger()
	}
	s := &Server{
		mcp: server.NewMCPServer(Name, version,
			server.WithToolCapabilities(false),
			server.WithRecovery(),
			server.WithInstructions("Generate Sanity schema modules, GROQ queries and TypeScript interfaces from a schema snapshot (a JSON array of root fields)."),
		),
		log: log,
	}
	s.register()
	return s
}

// MCP returns the underlying server.
func (s *Server) MCP() *server.MCPServer {
	return s.mcp
}

// Serve answers requests read from in until ctx is done or in is closed.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := server.NewStdioServer(s.mcp)
	stdio.SetErrorLogger(stdlog.New(logWriter{s.log}, "", 0))
	s.log.Info("serving MCP over stdio")
	return stdio.Listen(ctx, in, out)
}

func (s *Server) register() {
	snapshot := mcp.WithString(argSnapshot, mcp.Required(),
		mcp.Description("Schema snapshot: a JSON array of root fields, or a single root field"))
	root := mcp.WithString(argRoot,
		mcp.Description("Name of the root to generate for; all roots when omitted"))

	s.mcp.AddTool(mcp.NewTool("generate_schema",
		mcp.WithDescription("Generate the Sanity schema module (defineType export, GROQ queries and TypeScript interface) for schema roots"),
		mcp.WithReadOnlyHintAnnotation(true),
		snapshot, root,
	), s.handle("generate_schema", s.generateSchema))

	s.mcp.AddTool(mcp.NewTool("generate_queries",
		mcp.WithDescription("Generate GROQ queries for schema roots"),
		mcp.WithReadOnlyHintAnnotation(true),
		snapshot, root,
		mcp.WithBoolean(argBySlug, mcp.Description("Return only the query fetching one document by slug")),
	), s.handle("generate_queries", s.generateQueries))

	s.mcp.AddTool(mcp.NewTool("generate_interface",
		mcp.WithDescription("Generate TypeScript interfaces for schema roots"),
		mcp.WithReadOnlyHintAnnotation(true),
		snapshot, root,
	), s.handle("generate_interface", s.generateInterface))

	s.mcp.AddTool(mcp.NewTool("generate_json_schema",
		mcp.WithDescription("Generate a JSON Schema describing the documents of schema roots"),
		mcp.WithReadOnlyHintAnnotation(true),
		snapshot, root,
	), s.handle("generate_json_schema", s.generateJSONSchema))

	s.mcp.AddTool(mcp.NewTool("generate_docs",
		mcp.WithDescription("Generate markdown reference pages for schema roots"),
		mcp.WithReadOnlyHintAnnotation(true),
		snapshot, root,
	), s.handle("generate_docs", s.generateDocs))

	s.mcp.AddTool(mcp.NewTool("list_types",
		mcp.WithDescription("List the custom types defined by a snapshot and the ones it references without defining"),
		mcp.WithReadOnlyHintAnnotation(true),
		snapshot,
	), s.handle("list_types", s.listTypes))
}

// request is the decoded input shared by every tool.
type request struct {
	call     mcp.CallToolRequest
	roots    []*schema.Field
	registry *translate.Registry
}

type toolFunc func(ctx context.Context, req *request) (string, error)

// handle decodes the snapshot argument and reports every failure as a tool
// error so the transport never fails on bad input.
func (s *Server) handle(name string, fn toolFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, call mcp.CallToolRequest) (res *mcp.CallToolResult, err error) {
		log := s.log.WithField("tool", name)
		defer func() {
			if r := recover(); r != nil {
				log.WithField("panic", r).Error("tool panicked")
				res, err = mcp.NewToolResultError(fmt.Sprintf("%s failed: %v", name, r)), nil
			}
		}()

		raw, err := call.RequireString(argSnapshot)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		all, err := schema.Decode([]byte(raw), schema.JSON, "")
		if err != nil {
			log.WithError(err).Debug("invalid snapshot")
			return mcp.NewToolResultError(fmt.Sprintf("invalid snapshot: %v", err)), nil
		}

		req := &request{call: call, roots: all, registry: translate.NewRegistry(all)}
		if rootName := call.GetString(argRoot, ""); rootName != "" {
			r, ok := req.registry.Resolve(rootName)
			if !ok {
				return mcp.NewToolResultError(fmt.Sprintf("root %q not found (available: %s)",
					rootName, strings.Join(req.registry.Names(), ", "))), nil
			}
			req.roots = []*schema.Field{r}
		}

		out, err := fn(ctx, req)
		if err != nil {
			log.WithError(err).Warn("tool failed")
			return mcp.NewToolResultError(err.Error()), nil
		}
		log.WithField("roots", len(req.roots)).Debug("tool succeeded")
		return mcp.NewToolResultText(out), nil
	}
}

func (s *Server) generateSchema(_ context.Context, req *request) (string, error) {
	return codegen.Sections(req.roots, func(r *schema.Field) (string, error) {
		return sanity.Definition(r, true, req.registry), nil
	})
}

func (s *Server) generateQueries(_ context.Context, req *request) (string, error) {
	bySlug := req.call.GetBool(argBySlug, false)
	return codegen.Sections(req.roots, func(r *schema.Field) (string, error) {
		if bySlug {
			return groq.BySlugQuery(r, true, req.registry), nil
		}
		return groq.Declarations(r, req.registry), nil
	})
}

func (s *Server) generateInterface(_ context.Context, req *request) (string, error) {
	return codegen.Sections(req.roots, func(r *schema.Field) (string, error) {
		return typescript.Interface(r, true), nil
	})
}

func (s *Server) generateJSONSchema(_ context.Context, req *request) (string, error) {
	tr := &jsonschema.Translator{}
	return codegen.Sections(req.roots, func(r *schema.Field) (string, error) {
		out, err := tr.Translate(r, req.registry)
		return string(out), err
	})
}

// generateDocs concatenates the pages: each one opens with its own heading.
func (s *Server) generateDocs(_ context.Context, req *request) (string, error) {
	if len(req.roots) == 0 {
		return "", fmt.Errorf("snapshot has no roots")
	}
	tr := &markdown.Translator{}
	pages := make([]string, 0, len(req.roots))
	for _, r := range req.roots {
		out, err := tr.Translate(r, req.registry)
		if err != nil {
			return "", err
		}
		pages = append(pages, string(out))
	}
	return strings.Join(pages, "\n"), nil
}

func (s *Server) listTypes(_ context.Context, req *request) (string, error) {
	var sb strings.Builder
	for _, r := range req.registry.Types() {
		fmt.Fprintf(&sb, "%s (%s, %d fields)\n", schema.Sanitize(r.Name), r.Kind, len(r.Fields))
	}
	if missing := req.registry.Unresolved(); len(missing) > 0 {
		fmt.Fprintf(&sb, "unresolved: %s\n", strings.Join(missing, ", "))
	}
	return sb.String(), nil
}

// logWriter routes the stdio transport's error log to logrus.
type logWriter struct {
	log logrus.FieldLogger
}

func (w logWriter) Write(p []byte) (int, error) {
	w.log.Error(strings.TrimSpace(string(p)))
	return len(p), nil
}
