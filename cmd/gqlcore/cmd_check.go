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

// runCheck combines validation and lint into a single pass, rendering
// one merged diagnostic report and returning a single terminal exit
// code: ExitValidation if any validation error survived, else ExitLint
// if any lint error survived, else success.
func runCheck(root string, fc *FileConfig, globals GlobalFlags, logger *slog.Logger, w io.Writer) error {
	projects, err := loadProjects(root, fc, globals.ProjectFilter, globals.MetricsAddr, logger)
	if err != nil {
		return err
	}

	byURI := map[string][]diag.Diagnostic{}
	validationErrs := 0
	lintErrs := 0
	for _, lp := range projects {
		snap := lp.Engine.Snapshot()

		for _, fd := range snap.SchemaDiagnostics() {
			byURI[fd.URI] = append(byURI[fd.URI], fd.Diagnostic)
			if fd.Diagnostic.Severity == diag.Error {
				validationErrs++
			}
		}
		for uri, ds := range snap.AllValidationDiagnostics() {
			byURI[uri] = append(byURI[uri], ds...)
			for _, d := range ds {
				if d.Severity == diag.Error {
					validationErrs++
				}
			}
		}
		for uri, findings := range snap.AllLintDiagnostics() {
			for _, f := range findings {
				byURI[uri] = append(byURI[uri], f.Diagnostic)
				if f.Diagnostic.Severity == diag.Error {
					lintErrs++
				}
			}
		}
	}

	ds := collectWire(byURI)
	if err := RenderReport(w, ds, globals.Format, globals.NoColor()); err != nil {
		return err
	}

	if validationErrs > 0 {
		return errors.NewValidationError(
			fmt.Sprintf("%d validation error(s) found", validationErrs),
			"",
			"Fix the reported errors and re-run",
			nil,
		)
	}
	if lintErrs > 0 {
		return errors.NewLintError(
			fmt.Sprintf("%d lint error(s) found", lintErrs),
			"",
			"Fix the reported findings, or relax their severity in gqlcore.yaml",
			nil,
		)
	}
	return nil
}
