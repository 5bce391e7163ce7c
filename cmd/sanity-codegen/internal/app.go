// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package internal wires the sanity-codegen command tree to the process.
package internal

import (
	"context"
	"io"

	"github.com/dacolabs/sanity-codegen/internal/commands"
)

// Run executes the command line args against the command tree. Commands read
// configuration through getenv and print to stdout; logs and usage errors
// go to stderr.
func Run(ctx context.Context, args []string, getenv func(string) string, stdout, stderr io.Writer) error {
	root := commands.NewRootCmd(getenv)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.ExecuteContext(ctx)
}
