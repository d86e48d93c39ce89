// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/kraklabs/graphqlcore/internal/errors"
	"github.com/kraklabs/graphqlcore/pkg/analysis"
	"github.com/kraklabs/graphqlcore/pkg/engine"
	"github.com/kraklabs/graphqlcore/pkg/project"
)

// LoadedProject is one gqlcore.yaml project bound to a populated engine:
// every schema/document file on disk matching its patterns has been
// read and added.
type LoadedProject struct {
	Name         string
	Engine       *analysis.Engine
	SchemaURIs   []string
	DocumentURIs []string
}

// loadProject walks root, matches every regular file against pfc's
// schema/document patterns (by way of its derived project.Config), and
// populates a fresh engine with whatever it finds. Files matching
// neither pattern set are ignored.
func loadProject(root string, pfc ProjectFileConfig, logger *slog.Logger) (*LoadedProject, error) {
	cfg := project.Config{
		Name:      pfc.Name,
		Schema:    pfc.Schema,
		Documents: pfc.Documents,
		Include:   pfc.Include,
		Exclude:   pfc.Exclude,
	}

	eng := analysis.NewEngine(logger)
	eng.SetLintConfig(pfc.LintConfigFor())

	lp := &LoadedProject{Name: pfc.Name, Engine: eng}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)

		isSchema := cfg.IsSchemaMember(rel)
		isDoc := len(cfg.Documents) > 0 && matchesAny(rel, cfg.Documents) && cfg.IsDocumentMember(rel)
		if !isSchema && !isDoc {
			return nil
		}

		content, readErr := os.ReadFile(path)
		if readErr != nil {
			return fmt.Errorf("reading %s: %w", path, readErr)
		}

		uri := "file://" + filepath.ToSlash(path)
		lang := engine.LanguageFromPath(path)

		if isSchema {
			eng.AddFile(uri, string(content), lang, engine.KindSchema)
			lp.SchemaURIs = append(lp.SchemaURIs, uri)
		} else {
			eng.AddFile(uri, string(content), lang, engine.KindExecutableGraphQL)
			lp.DocumentURIs = append(lp.DocumentURIs, uri)
		}
		return nil
	})
	if err != nil {
		return nil, errors.NewInputError(
			"Failed to walk project files",
			err.Error(),
			fmt.Sprintf("Check that %s exists and is readable", root),
		)
	}

	eng.RebuildProjectFiles()
	sort.Strings(lp.SchemaURIs)
	sort.Strings(lp.DocumentURIs)
	return lp, nil
}

func matchesAny(path string, patterns []string) bool {
	for _, pat := range patterns {
		if project.MatchesAny(path, pat) {
			return true
		}
	}
	return false
}

// loadProjects resolves and loads every project the run should cover
// (all, or --project's single named project). When metricsAddr is set,
// the first loaded project's engine metrics are served there for the
// rest of the run — a single address can back only one engine's gauges
// at a time, so multi-project runs only instrument the first.
func loadProjects(root string, fc *FileConfig, filter, metricsAddr string, logger *slog.Logger) ([]*LoadedProject, error) {
	selected, err := fc.selectedProjects(filter)
	if err != nil {
		return nil, err
	}

	out := make([]*LoadedProject, 0, len(selected))
	for _, pfc := range selected {
		lp, err := loadProject(root, pfc, logger)
		if err != nil {
			return nil, err
		}
		out = append(out, lp)
	}

	if metricsAddr != "" && len(out) > 0 {
		serveMetrics(metricsAddr, out[0].Engine, logger)
	}
	return out, nil
}
