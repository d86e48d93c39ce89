// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"io"
	"log/slog"

	"github.com/kraklabs/graphqlcore/pkg/diag"
)

// runDeprecations reports every no_deprecated finding project-wide,
// rather than the per-document view a validate/lint run gives: the
// same rule, the same diagnostics, just collected across every
// document in one pass instead of reported file by file.
func runDeprecations(root string, fc *FileConfig, globals GlobalFlags, logger *slog.Logger, w io.Writer) error {
	projects, err := loadProjects(root, fc, globals.ProjectFilter, globals.MetricsAddr, logger)
	if err != nil {
		return err
	}

	byURI := map[string][]diag.Diagnostic{}
	for _, lp := range projects {
		snap := lp.Engine.Snapshot()
		for uri, findings := range snap.AllLintDiagnostics() {
			for _, f := range findings {
				if f.Diagnostic.Rule == "no_deprecated" {
					byURI[uri] = append(byURI[uri], f.Diagnostic)
				}
			}
		}
	}

	ds := collectWire(byURI)
	return RenderReport(w, ds, globals.Format, globals.NoColor())
}
