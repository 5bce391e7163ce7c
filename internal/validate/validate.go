// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package validate checks generated artifacts for syntax errors before they
// are written: TypeScript modules are parsed with tree-sitter, JSON
// documents with ojg.
package validate

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ohler55/ojg/oj"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// Error locates the first syntax error of a generated file.
type Error struct {
	FilePath string
	Line     uint32 // 0-indexed
	Column   uint32 // 0-indexed
	Message  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.FilePath, e.Line+1, e.Column+1, e.Message)
}

// Validate checks content according to the extension of filePath. Files of
// other types pass through.
func Validate(ctx context.Context, content []byte, filePath string) error {
	switch {
	case strings.HasSuffix(filePath, ".json"):
		return validateJSON(content, filePath)
	case isTypeScript(filePath):
		return validateTypeScript(ctx, content, filePath)
	}
	return nil
}

// Errors returns every syntax error location in a TypeScript module. It
// returns nil for valid content or files of other types.
func Errors(ctx context.Context, content []byte, filePath string) []Error {
	if !isTypeScript(filePath) {
		return nil
	}
	root, err := parse(ctx, content)
	if err != nil || !root.HasError() {
		return nil
	}
	var errs []Error
	collectErrors(root, filePath, &errs)
	return errs
}

func isTypeScript(filePath string) bool {
	ext := strings.ToLower(filepath.Ext(filePath))
	return ext == ".ts" || ext == ".tsx"
}

func parse(ctx context.Context, content []byte) (*sitter.Node, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(typescript.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, err
	}
	root := tree.RootNode()
	if root == nil {
		return nil, fmt.Errorf("tree-sitter returned nil root")
	}
	return root, nil
}

func validateTypeScript(ctx context.Context, content []byte, filePath string) error {
	root, err := parse(ctx, content)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", filePath, err)
	}
	if !root.HasError() {
		return nil
	}
	if node := findFirstError(root); node != nil {
		return &Error{
			FilePath: filePath,
			Line:     uint32(node.StartPoint().Row),
			Column:   uint32(node.StartPoint().Column),
			Message:  "syntax error",
		}
	}
	return &Error{FilePath: filePath, Message: "syntax tree contains errors"}
}

func validateJSON(content []byte, filePath string) error {
	if _, err := oj.Parse(content); err != nil {
		return &Error{FilePath: filePath, Message: err.Error()}
	}
	return nil
}

func findFirstError(node *sitter.Node) *sitter.Node {
	if node.IsError() || node.IsMissing() {
		return node
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.HasError() || child.IsError() || child.IsMissing() {
			if found := findFirstError(child); found != nil {
				return found
			}
		}
	}
	return nil
}

func collectErrors(node *sitter.Node, filePath string, errs *[]Error) {
	if node.IsError() || node.IsMissing() {
		*errs = append(*errs, Error{
			FilePath: filePath,
			Line:     uint32(node.StartPoint().Row),
			Column:   uint32(node.StartPoint().Column),
			Message:  "syntax error",
		})
		return
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.HasError() || child.IsError() || child.IsMissing() {
			collectErrors(child, filePath, errs)
		}
	}
}
