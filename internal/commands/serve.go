// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"github.com/spf13/cobra"

	"github.com/dacolabs/sanity-codegen/internal/mcpserver"
	"github.com/dacolabs/sanity-codegen/internal/version"
)

func (a *app) newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the generators as Model Context Protocol tools over stdio",
		Long: `Serve the generators as Model Context Protocol tools over stdio, for use by
editors and assistants. Every tool takes the snapshot as a JSON string, so
no project is needed. Logs go to standard error.`,
		Example: `  # Register with an MCP client
  sanity-codegen serve`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := mcpserver.New(version.Short(), a.log)
			return s.Serve(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}
