// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"log/slog"

	"github.com/kraklabs/graphqlcore/internal/errors"
)

// runMCP would expose the engine's IDE query surface (goto-definition,
// hover, completion) as a Model Context Protocol server over stdio, so
// an LLM-driven coding agent can ask the same questions an editor does.
// Not implemented: it returns an input error, and no server transport
// exists for the lsp subcommand either.
func runMCP(root string, fc *FileConfig, globals GlobalFlags, logger *slog.Logger) error {
	return errors.NewInputError(
		"mcp is not yet implemented",
		"",
		"Drive pkg/analysis directly, or use the validate/lint/check subcommands",
	)
}
