// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"log/slog"

	"github.com/kraklabs/graphqlcore/internal/errors"
)

// runLSP would speak the Language Server Protocol over stdio, backing
// an editor with the same engine this CLI drives directly. Not yet
// implemented — pkg/analysis.Snapshot's IDE methods (GotoDefinition,
// Hover, Completion, ...) are already request/response-shaped for this,
// but no JSON-RPC transport sits in front of them yet.
func runLSP(root string, fc *FileConfig, globals GlobalFlags, logger *slog.Logger) error {
	return errors.NewInputError(
		"lsp is not yet implemented",
		"",
		"Drive pkg/analysis.Snapshot's IDE methods directly, or use the validate/lint/check subcommands",
	)
}
