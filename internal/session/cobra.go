// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package session

import (
	"errors"

	"github.com/spf13/cobra"
)

// FromCommand extracts the Context from a cobra.Command's context.
// Returns nil if no Context is stored.
func FromCommand(cmd *cobra.Command) *Context {
	return From(cmd.Context())
}

// RequireFromCommand extracts the Context from a cobra.Command's context,
// returning an error if not found.
func RequireFromCommand(cmd *cobra.Command) (*Context, error) {
	ctx := FromCommand(cmd)
	if ctx == nil {
		return nil, errors.New("project context not loaded")
	}
	return ctx, nil
}

// PreRunLoad returns a PreRunE function that loads the project context with
// the options built by opts and stores it in the command's context.
func PreRunLoad(opts func(*cobra.Command) Options) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		var o Options
		if opts != nil {
			o = opts(cmd)
		}
		ctx, err := Load(cmd.Context(), o)
		if err != nil {
			return err
		}
		cmd.SetContext(ctx)
		return nil
	}
}
