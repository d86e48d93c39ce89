// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/kraklabs/graphqlcore/internal/output"
	"github.com/kraklabs/graphqlcore/pkg/hir"
)

// introspectionTypes mirrors pkg/lint's unused_fields exemption: these
// types' fields are reachable only through introspection, so they never
// count against coverage either way.
var introspectionTypes = map[string]bool{
	"__Schema": true, "__Type": true, "__Field": true, "__InputValue": true,
	"__EnumValue": true, "__Directive": true, "__TypeKind": true, "__DirectiveLocation": true,
}

// CoverageReport is one project's schema field coverage: the fraction
// of eligible object/interface fields that at least one document in the
// project selects.
type CoverageReport struct {
	Name           string  `json:"name"`
	EligibleFields int     `json:"eligible_fields"`
	UnusedFields   int     `json:"unused_fields"`
	Percent        float64 `json:"percent"`
}

// runCoverage reports, per project, what percentage of schema fields are
// touched by at least one document — the complement of what the
// unused_fields lint rule flags, using the same root-type/introspection
// exemptions so the two numbers agree.
func runCoverage(root string, fc *FileConfig, globals GlobalFlags, logger *slog.Logger, w io.Writer) error {
	projects, err := loadProjects(root, fc, globals.ProjectFilter, globals.MetricsAddr, logger)
	if err != nil {
		return err
	}

	reports := make([]CoverageReport, 0, len(projects))
	for _, lp := range projects {
		snap := lp.Engine.Snapshot()
		view := snap.SchemaView()

		rootTypes := map[string]bool{
			view.QueryType:        true,
			view.MutationType:     true,
			view.SubscriptionType: true,
		}

		eligible := 0
		for name, td := range view.Types {
			if rootTypes[name] || introspectionTypes[name] {
				continue
			}
			if td.Kind != hir.KindObject && td.Kind != hir.KindInterface {
				continue
			}
			eligible += len(td.Fields)
		}

		unused := 0
		for _, findings := range snap.AllLintDiagnostics() {
			for _, f := range findings {
				if f.Diagnostic.Rule == "unused_fields" {
					unused++
				}
			}
		}

		pct := 100.0
		if eligible > 0 {
			pct = 100.0 * float64(eligible-unused) / float64(eligible)
		}

		reports = append(reports, CoverageReport{
			Name:           lp.Name,
			EligibleFields: eligible,
			UnusedFields:   unused,
			Percent:        pct,
		})
	}

	if globals.JSON() {
		return output.JSONTo(w, reports)
	}
	for _, r := range reports {
		fmt.Fprintf(w, "%s: %.1f%% (%d/%d fields used)\n", r.Name, r.Percent, r.EligibleFields-r.UnusedFields, r.EligibleFields)
	}
	return nil
}
