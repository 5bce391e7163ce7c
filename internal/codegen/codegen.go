// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package codegen renders schema roots through a set of translators in
// parallel and writes the artifacts to a filesystem.
package codegen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"runtime"
	"sort"
	"strconv"
	"strings"

	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/dacolabs/sanity-codegen/internal/schema"
	"github.com/dacolabs/sanity-codegen/internal/translate"
	"github.com/dacolabs/sanity-codegen/internal/validate"
)

// DefaultBanner heads every generated TypeScript file unless configured
// otherwise.
const DefaultBanner = "Code generated by sanity-codegen. DO NOT EDIT."

// Options control where and how artifacts are written.
type Options struct {
	// OutputDir is the directory, relative to the filesystem root, receiving
	// the artifacts.
	OutputDir string
	// Combine writes one file per format holding every root.
	Combine bool
	// Validate parses TypeScript and JSON outputs before writing them.
	Validate bool
	// Banner is the comment heading TypeScript outputs. Empty disables it.
	Banner string
}

// Result describes one written artifact.
type Result struct {
	Format string
	Path   string
	Roots  []string
	Size   int
}

// Generator writes generated artifacts to a billy filesystem.
type Generator struct {
	fs      billy.Filesystem
	opts    Options
	workers int
	log     logrus.FieldLogger
}

// New creates a Generator writing to fs.
func New(fs billy.Filesystem, opts Options, log logrus.FieldLogger) *Generator {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Generator{
		fs:      fs,
		opts:    opts,
		workers: runtime.GOMAXPROCS(0),
		log:     log,
	}
}

// WithWorkers sets the number of parallel workers.
func (g *Generator) WithWorkers(n int) *Generator {
	if n > 0 {
		g.workers = n
	}
	return g
}

// task is one translator applied to one root.
type task struct {
	index      int
	root       *schema.Field
	translator translate.Translator
	out        []byte
}

// artifact is the content of one output file.
type artifact struct {
	format string
	path   string
	roots  []string
	data   []byte
}

// Run translates every root with every translator and writes the results.
// Custom type names are resolved through resolver. Results are sorted by
// path.
func (g *Generator) Run(ctx context.Context, roots []*schema.Field, resolver translate.TypeResolver, translators []translate.Translator) ([]Result, error) {
	if len(roots) == 0 {
		return nil, fmt.Errorf("no schemas to generate")
	}
	if len(translators) == 0 {
		return nil, fmt.Errorf("no output formats selected")
	}
	if resolver == nil {
		resolver = translate.NewRegistry(roots)
	}

	tasks := make([]*task, 0, len(roots)*len(translators))
	for _, tr := range translators {
		for i, root := range roots {
			tasks = append(tasks, &task{index: i, root: root, translator: tr})
		}
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(g.workers)
	for _, t := range tasks {
		eg.Go(func() error {
			select {
			case <-egCtx.Done():
				return egCtx.Err()
			default:
			}
			out, err := t.translator.Translate(t.root, resolver)
			if err != nil {
				return fmt.Errorf("translate %s to %s: %w", t.root.Name, t.translator.Name(), err)
			}
			t.out = out
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	var artifacts []artifact
	var err error
	if g.opts.Combine {
		artifacts, err = g.combine(tasks, translators)
	} else {
		artifacts, err = g.split(tasks, len(translators) > 1)
	}
	if err != nil {
		return nil, err
	}

	if g.opts.Validate {
		if err := g.validate(ctx, artifacts); err != nil {
			return nil, err
		}
	}

	sort.Slice(artifacts, func(i, j int) bool { return artifacts[i].path < artifacts[j].path })

	results := make([]Result, 0, len(artifacts))
	for _, a := range artifacts {
		if err := g.write(a); err != nil {
			return nil, err
		}
		results = append(results, Result{Format: a.format, Path: a.path, Roots: a.roots, Size: len(a.data)})
	}
	return results, nil
}

// split produces one file per root and format. With several formats each
// format gets its own subdirectory.
func (g *Generator) split(tasks []*task, perFormatDir bool) ([]artifact, error) {
	seen := make(map[string]string, len(tasks))
	artifacts := make([]artifact, 0, len(tasks))
	for _, t := range tasks {
		dir := g.opts.OutputDir
		if perFormatDir {
			dir = path.Join(dir, t.translator.Name())
		}
		name := fileBase(t.root, t.index)
		p := path.Join(dir, name+t.translator.FileExtension())
		if prev, ok := seen[p]; ok {
			return nil, fmt.Errorf("schemas %q and %q both generate %s", prev, t.root.Name, p)
		}
		seen[p] = t.root.Name

		artifacts = append(artifacts, artifact{
			format: t.translator.Name(),
			path:   p,
			roots:  []string{t.root.Name},
			data:   g.withBanner(t.translator.FileExtension(), t.out),
		})
	}
	return artifacts, nil
}

// combine produces one file per format. TypeScript sections are separated
// by a comment naming the root and markdown pages simply follow each other.
// JSON outputs are merged into one object keyed by sanitized root name.
func (g *Generator) combine(tasks []*task, translators []translate.Translator) ([]artifact, error) {
	artifacts := make([]artifact, 0, len(translators))
	for _, tr := range translators {
		var (
			names    []string
			sections [][]byte
			roots    []*schema.Field
		)
		for _, t := range tasks {
			if t.translator != tr {
				continue
			}
			names = append(names, t.root.Name)
			sections = append(sections, t.out)
			roots = append(roots, t.root)
		}

		ext := tr.FileExtension()
		var data []byte
		if strings.HasSuffix(ext, ".json") {
			merged, err := mergeJSON(roots, sections)
			if err != nil {
				return nil, fmt.Errorf("combine %s: %w", tr.Name(), err)
			}
			data = merged
		} else {
			var buf bytes.Buffer
			for i, root := range roots {
				if i > 0 {
					buf.WriteString("\n")
				}
				if ext != ".md" {
					buf.WriteString(SectionHeader(root))
				}
				buf.Write(sections[i])
				if !bytes.HasSuffix(sections[i], []byte("\n")) {
					buf.WriteString("\n")
				}
			}
			data = g.withBanner(ext, buf.Bytes())
		}

		artifacts = append(artifacts, artifact{
			format: tr.Name(),
			path:   path.Join(g.opts.OutputDir, tr.Name()+"-combined"+ext),
			roots:  names,
			data:   data,
		})
	}
	return artifacts, nil
}

func mergeJSON(roots []*schema.Field, sections [][]byte) ([]byte, error) {
	merged := make(map[string]json.RawMessage, len(roots))
	for i, root := range roots {
		merged[fileBase(root, i)] = json.RawMessage(sections[i])
	}
	out, err := json.MarshalIndent(merged, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}

func (g *Generator) validate(ctx context.Context, artifacts []artifact) error {
	for _, a := range artifacts {
		if err := validate.Validate(ctx, a.data, a.path); err != nil {
			return fmt.Errorf("generated %s is invalid: %w", a.format, err)
		}
	}
	return nil
}

func (g *Generator) write(a artifact) error {
	if dir := path.Dir(a.path); dir != "." && dir != "" {
		if err := g.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory for %s: %w", a.path, err)
		}
	}
	if err := util.WriteFile(g.fs, a.path, a.data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", a.path, err)
	}
	g.log.WithFields(logrus.Fields{
		"format": a.format,
		"path":   a.path,
		"roots":  len(a.roots),
	}).Debug("wrote artifact")
	return nil
}

func (g *Generator) withBanner(ext string, data []byte) []byte {
	if g.opts.Banner == "" || ext != ".ts" {
		return data
	}
	return append([]byte(bannerComment(g.opts.Banner)+"\n"), data...)
}

// bannerComment turns banner text into line comments unless it already is
// a comment.
func bannerComment(banner string) string {
	banner = strings.TrimRight(banner, "\n")
	trimmed := strings.TrimSpace(banner)
	if strings.HasPrefix(trimmed, "//") || strings.HasPrefix(trimmed, "/*") {
		return banner + "\n"
	}
	var sb strings.Builder
	for _, line := range strings.Split(banner, "\n") {
		sb.WriteString(strings.TrimRight("// "+line, " "))
		sb.WriteString("\n")
	}
	return sb.String()
}

// fileBase is the file name stem of a root: its sanitized name, or a
// positional name when sanitizing leaves nothing.
func fileBase(root *schema.Field, index int) string {
	if name := schema.Sanitize(root.Name); name != "" {
		return name
	}
	return "schema_" + strconv.Itoa(index)
}

// SectionHeader is the comment line opening the section of root in a
// combined output.
func SectionHeader(root *schema.Field) string {
	title := root.Title
	if title == "" {
		title = root.Name
	}
	return "// ------------------ " + title + " ------------------\n"
}

// Sections renders every root and joins the outputs, opening each one with
// its SectionHeader when there is more than one root.
func Sections(roots []*schema.Field, render func(*schema.Field) (string, error)) (string, error) {
	if len(roots) == 0 {
		return "", fmt.Errorf("snapshot has no roots")
	}
	if len(roots) == 1 {
		return render(roots[0])
	}
	var sb strings.Builder
	for i, r := range roots {
		out, err := render(r)
		if err != nil {
			return "", fmt.Errorf("%s: %w", r.Name, err)
		}
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(SectionHeader(r))
		sb.WriteString(strings.TrimRight(out, "\n"))
		sb.WriteString("\n")
	}
	return sb.String(), nil
}
