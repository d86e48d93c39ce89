// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/kraklabs/graphqlcore/internal/errors"
	"github.com/kraklabs/graphqlcore/pkg/diag"
)

// runLint loads every selected project and runs the configured lint
// rule set over it, exiting ExitLint if any error-severity finding
// survives the configured rule severities.
func runLint(root string, fc *FileConfig, globals GlobalFlags, logger *slog.Logger, w io.Writer) error {
	projects, err := loadProjects(root, fc, globals.ProjectFilter, globals.MetricsAddr, logger)
	if err != nil {
		return err
	}

	progressCfg := NewProgressConfig(globals)

	byURI := map[string][]diag.Diagnostic{}
	for _, lp := range projects {
		spinner := NewSpinner(progressCfg, fmt.Sprintf("linting %s", lp.Name))
		snap := lp.Engine.Snapshot()
		for uri, findings := range snap.AllLintDiagnostics() {
			for _, f := range findings {
				byURI[uri] = append(byURI[uri], f.Diagnostic)
			}
		}
		if spinner != nil {
			_ = spinner.Finish()
		}
	}

	ds := collectWire(byURI)
	if err := RenderReport(w, ds, globals.Format, globals.NoColor()); err != nil {
		return err
	}

	errs, _ := countBySeverity(ds)
	if errs > 0 {
		return errors.NewLintError(
			fmt.Sprintf("%d lint error(s) found", errs),
			"",
			"Fix the reported findings, or relax their severity in gqlcore.yaml",
			nil,
		)
	}
	return nil
}
