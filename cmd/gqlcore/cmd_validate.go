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

// runValidate loads every selected project and runs schema-merge plus
// executable-document validation over it, rendering the combined result
// in globals.Format and exiting ExitValidation if any error-severity
// diagnostic was found.
func runValidate(root string, fc *FileConfig, globals GlobalFlags, logger *slog.Logger, w io.Writer) error {
	projects, err := loadProjects(root, fc, globals.ProjectFilter, globals.MetricsAddr, logger)
	if err != nil {
		return err
	}

	progressCfg := NewProgressConfig(globals)

	byURI := map[string][]diag.Diagnostic{}
	for _, lp := range projects {
		snap := lp.Engine.Snapshot()
		for _, fd := range snap.SchemaDiagnostics() {
			byURI[fd.URI] = append(byURI[fd.URI], fd.Diagnostic)
		}

		ids := snap.DocumentFileIds()
		bar := NewProgressBar(progressCfg, int64(len(ids)), fmt.Sprintf("validating %s", lp.Name))
		for _, id := range ids {
			fe, ok := snap.FileEntry(id)
			if !ok {
				continue
			}
			if ds := snap.ValidationDiagnostics(id); len(ds) > 0 {
				byURI[fe.URI] = append(byURI[fe.URI], ds...)
			}
			if bar != nil {
				_ = bar.Add(1)
			}
		}
		if bar != nil {
			_ = bar.Finish()
		}
	}

	ds := collectWire(byURI)
	if err := RenderReport(w, ds, globals.Format, globals.NoColor()); err != nil {
		return err
	}

	errs, _ := countBySeverity(ds)
	if errs > 0 {
		return errors.NewValidationError(
			fmt.Sprintf("%d validation error(s) found", errs),
			"",
			"Fix the reported errors and re-run",
			nil,
		)
	}
	return nil
}
