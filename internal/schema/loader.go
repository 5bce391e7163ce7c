// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is a snapshot serialization format.
type Format string

// Supported snapshot formats.
const (
	JSON Format = "json"
	YAML Format = "yaml"
)

var (
	// ErrUnsupportedFormat indicates a snapshot in an unknown serialization.
	ErrUnsupportedFormat = errors.New("unsupported snapshot format")

	// ErrEmptySelection indicates a selector matched no root fields.
	ErrEmptySelection = errors.New("selection matched no schemas")
)

// FormatFromPath returns YAML for .yaml/.yml paths and JSON otherwise.
func FormatFromPath(path string) Format {
	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		return YAML
	}
	return JSON
}

// ParseFormat converts a user supplied format name.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// Loader loads snapshots from a filesystem.
type Loader struct {
	fsys fs.FS
}

// NewLoader creates a Loader that reads from the given filesystem.
func NewLoader(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys}
}

// LoadFile loads a snapshot file and returns its root fields.
// The format is determined from the file extension. When selector is not
// empty it is applied as a JSONPath expression before the roots are typed.
func (l *Loader) LoadFile(filePath, selector string) ([]*Field, error) {
	f, err := l.fsys.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	roots, err := Decode(data, FormatFromPath(filePath), selector)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filePath, err)
	}
	return roots, nil
}

// Decode parses snapshot bytes. A snapshot is either an array of root
// fields or a single root field; both yield a slice.
func Decode(data []byte, format Format, selector string) ([]*Field, error) {
	var raw any
	switch format {
	case JSON:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	case YAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	if selector != "" {
		selected, err := Select(raw, selector)
		if err != nil {
			return nil, err
		}
		raw = selected
	}

	return fromGeneric(raw)
}

// fromGeneric types a decoded snapshot by round-tripping through JSON.
func fromGeneric(raw any) ([]*Field, error) {
	var items []any
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case []any:
		items = v
	case map[string]any:
		items = []any{v}
	default:
		return nil, fmt.Errorf("snapshot must be a field or an array of fields, got %T", raw)
	}

	data, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("failed to re-encode snapshot: %w", err)
	}

	var roots []*Field
	if err := json.Unmarshal(data, &roots); err != nil {
		return nil, fmt.Errorf("invalid field tree: %w", err)
	}
	roots = dropNil(roots)
	for _, root := range roots {
		normalize(root)
	}
	return roots, nil
}

// normalize gives every Document and Object a non-nil fields list, since
// encoders drop empty lists. Null entries are dropped.
func normalize(f *Field) {
	if f.Fields != nil {
		f.Fields = dropNil(f.Fields)
	}
	if f.Fields == nil && (f.Kind == KindDocument || f.Kind == KindObject) {
		f.Fields = []*Field{}
	}
	for _, child := range f.Fields {
		normalize(child)
	}
}

func dropNil(fields []*Field) []*Field {
	out := fields[:0]
	for _, f := range fields {
		if f != nil {
			out = append(out, f)
		}
	}
	return out
}

// Write encodes root fields in the given format. JSON output mirrors the
// editor's export: a two-space indented array.
func Write(w io.Writer, roots []*Field, format Format) error {
	if roots == nil {
		roots = []*Field{}
	}
	switch format {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(roots)
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(roots); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}
