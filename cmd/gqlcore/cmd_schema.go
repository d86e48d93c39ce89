// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"log/slog"

	"github.com/kraklabs/graphqlcore/internal/errors"
)

// runSchemaDownload introspects a running GraphQL endpoint and writes
// its schema to disk as SDL, the counterpart to a project's own
// hand-written schema files. Not yet implemented: the engine only
// consumes SDL it's handed, it doesn't speak the GraphQL introspection
// query itself.
func runSchemaDownload(endpoint, out string, globals GlobalFlags, logger *slog.Logger) error {
	return errors.NewInputError(
		"schema download is not yet implemented",
		"",
		"Write the project's SDL by hand, or introspect the endpoint with an external tool",
	)
}
