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
	"github.com/kraklabs/graphqlcore/pkg/engine"
	"github.com/kraklabs/graphqlcore/pkg/syntax"
)

// OperationComplexity is one operation's selection-depth/field-count
// report.
type OperationComplexity struct {
	Project string `json:"project"`
	File    string `json:"file"`
	Name    string `json:"name"`
	Kind    string `json:"kind"`
	Depth   int    `json:"depth"`
	Fields  int    `json:"fields"`
}

// runComplexity reports every operation's selection-set depth and
// field count, so a reviewer can spot a query that will fan out
// expensively at the resolver layer before it ships.
func runComplexity(root string, fc *FileConfig, globals GlobalFlags, logger *slog.Logger, w io.Writer) error {
	projects, err := loadProjects(root, fc, globals.ProjectFilter, globals.MetricsAddr, logger)
	if err != nil {
		return err
	}

	var reports []OperationComplexity
	for _, lp := range projects {
		snap := lp.Engine.Snapshot()
		for _, id := range snap.DocumentFileIds() {
			fe, ok := snap.FileEntry(id)
			if !ok || fe.Language != engine.LangGraphQL {
				continue
			}
			tree := syntax.Parse(fe.Content).Root
			for _, op := range tree.ChildrenOf(syntax.NodeOperationDefinition) {
				name := "(anonymous)"
				if n := op.Child(syntax.NodeName); n != nil {
					name = n.Text
				}
				depth, fields := 0, 0
				if sel := op.Child(syntax.NodeSelectionSet); sel != nil {
					depth, fields = measureSelectionSet(sel)
				}
				reports = append(reports, OperationComplexity{
					Project: lp.Name,
					File:    fe.URI,
					Name:    name,
					Kind:    op.Text,
					Depth:   depth,
					Fields:  fields,
				})
			}
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
		fmt.Fprintf(w, "%s %s %s: depth=%d fields=%d\n", r.File, r.Kind, r.Name, r.Depth, r.Fields)
	}
	return nil
}

// measureSelectionSet walks a selection set recursively, returning its
// maximum nesting depth (1 for a selection set with no nested selection
// sets) and the total number of field selections it contains, including
// fields reached through inline fragments. Fragment spreads aren't
// followed — resolving them needs the project-wide fragment index, and
// a spread's own depth/field count is reported wherever it's defined.
func measureSelectionSet(sel *syntax.Node) (depth, fields int) {
	maxChildDepth := 0
	for _, child := range sel.Children {
		switch child.Kind {
		case syntax.NodeField:
			fields++
			if inner := child.Child(syntax.NodeSelectionSet); inner != nil {
				d, f := measureSelectionSet(inner)
				fields += f
				if d > maxChildDepth {
					maxChildDepth = d
				}
			}
		case syntax.NodeInlineFragment:
			if inner := child.Child(syntax.NodeSelectionSet); inner != nil {
				d, f := measureSelectionSet(inner)
				fields += f
				if d > maxChildDepth {
					maxChildDepth = d
				}
			}
		}
	}
	return maxChildDepth + 1, fields
}
