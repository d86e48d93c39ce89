// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/kraklabs/graphqlcore/internal/output"
	"github.com/kraklabs/graphqlcore/pkg/diag"
)

// FragmentUsage is one fragment's project-wide usage report.
type FragmentUsage struct {
	Project string `json:"project"`
	File    string `json:"file"`
	Name    string `json:"name"`
	Unused  bool   `json:"unused"`
}

// fragmentKey identifies a fragment definition by where it's declared,
// since names aren't unique across files.
type fragmentKey struct {
	uri   string
	start diag.Position
}

// runFragments reports every fragment declared across the project and
// flags the ones unused_fragments would flag as dead, reusing that
// rule's own findings (keyed by file + name range) instead of
// re-deriving the usage index.
func runFragments(root string, fc *FileConfig, globals GlobalFlags, logger *slog.Logger, w io.Writer) error {
	projects, err := loadProjects(root, fc, globals.ProjectFilter, globals.MetricsAddr, logger)
	if err != nil {
		return err
	}

	var reports []FragmentUsage
	for _, lp := range projects {
		snap := lp.Engine.Snapshot()

		unused := map[fragmentKey]bool{}
		for uri, findings := range snap.AllLintDiagnostics() {
			for _, f := range findings {
				if f.Diagnostic.Rule == "unused_fragments" {
					unused[fragmentKey{uri: uri, start: f.Diagnostic.Range.Start}] = true
				}
			}
		}

		for name, frag := range snap.AllFragments() {
			reports = append(reports, FragmentUsage{
				Project: lp.Name,
				File:    frag.File,
				Name:    name,
				Unused:  unused[fragmentKey{uri: frag.File, start: frag.NameRange.Start}],
			})
		}
	}

	sort.Slice(reports, func(i, j int) bool {
		if reports[i].File != reports[j].File {
			return reports[i].File < reports[j].File
		}
		return reports[i].Name < reports[j].Name
	})

	if globals.JSON() {
		return output.JSONTo(w, reports)
	}
	for _, r := range reports {
		status := "used"
		if r.Unused {
			status = "unused"
		}
		fmt.Fprintf(w, "%s %s: %s (%s)\n", r.File, r.Name, status, r.Project)
	}
	return nil
}
