// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/kraklabs/graphqlcore/internal/output"
	"github.com/kraklabs/graphqlcore/pkg/engine"
	"github.com/kraklabs/graphqlcore/pkg/syntax"
)

// ProjectStats is one project's file/type/operation tally.
type ProjectStats struct {
	Name          string `json:"name"`
	SchemaFiles   int    `json:"schema_files"`
	DocumentFiles int    `json:"document_files"`
	Types         int    `json:"types"`
	Operations    int    `json:"operations"`
	Fragments     int    `json:"fragments"`
}

// runStats reports per-project file/type/operation counts.
func runStats(root string, fc *FileConfig, globals GlobalFlags, logger *slog.Logger, w io.Writer) error {
	projects, err := loadProjects(root, fc, globals.ProjectFilter, globals.MetricsAddr, logger)
	if err != nil {
		return err
	}

	stats := make([]ProjectStats, 0, len(projects))
	for _, lp := range projects {
		snap := lp.Engine.Snapshot()
		view := snap.SchemaView()

		opCount := 0
		for _, id := range snap.DocumentFileIds() {
			fe, ok := snap.FileEntry(id)
			if !ok {
				continue
			}
			if fe.Language == engine.LangGraphQL {
				opCount += countOperations(fe.Content)
			}
		}

		stats = append(stats, ProjectStats{
			Name:          lp.Name,
			SchemaFiles:   len(lp.SchemaURIs),
			DocumentFiles: len(lp.DocumentURIs),
			Types:         len(view.Types),
			Operations:    opCount,
			Fragments:     len(snap.AllFragments()),
		})
	}

	if globals.JSON() {
		return output.JSONTo(w, stats)
	}
	for _, s := range stats {
		fmt.Fprintf(w, "%s: %d schema file(s), %d document file(s), %d type(s), %d operation(s), %d fragment(s)\n",
			s.Name, s.SchemaFiles, s.DocumentFiles, s.Types, s.Operations, s.Fragments)
	}
	return nil
}

// countOperations parses a plain .graphql/.gql document's source and
// counts its top-level operation definitions, tolerating parse errors
// by counting whatever the recovered tree still holds. Embedded blocks
// inside a TS/JS host file aren't counted here, since only pkg/analysis
// itself derives their per-block structure.
func countOperations(source string) int {
	root := syntax.Parse(source).Root
	return len(root.ChildrenOf(syntax.NodeOperationDefinition))
}
