// Copyright 2025 KrakLabs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package analysis

import (
	"github.com/kraklabs/graphqlcore/pkg/diag"
	"github.com/kraklabs/graphqlcore/pkg/engine"
	"github.com/kraklabs/graphqlcore/pkg/hir"
	"github.com/kraklabs/graphqlcore/pkg/lint"
)

// lintDocuments builds one lint.Document per GraphQL region in a file:
// the whole file for a plain .graphql/.gql document, or one Document per
// extracted embedded block for a host TS/JS file. A rule's CheckDocument
// re-parses doc.Source itself, so Source must be pure GraphQL text — for
// an embedded block that means the block's own text, not the host
// file's. Structs is narrowed to that same region's definitions and
// translated to the same block-local coordinate origin as Source, so a
// freshly built *syntax.LineIndex over doc.Source stays consistent with
// doc.Structs' Range/NameRange fields; LineOffset then shifts the rule's
// resulting diagnostics back into host-file coordinates.
func lintDocuments(fe engine.FileEntry, entry fileStructureEntry) []lint.Document {
	if fe.Language == engine.LangGraphQL {
		return []lint.Document{{
			URI:        fe.URI,
			Source:     fe.Content,
			LineOffset: 0,
			Structs:    filterByBlock(entry.Structure, -1, 0),
		}}
	}

	docs := make([]lint.Document, 0, len(entry.Blocks))
	for _, b := range entry.Blocks {
		docs = append(docs, lint.Document{
			URI:        fe.URI,
			Source:     b.Source,
			LineOffset: b.StartLine,
			Structs:    filterByBlock(entry.Structure, b.Index, b.StartLine),
		})
	}
	return docs
}

// filterByBlock narrows a file's full (host-coordinate) structural data
// down to the operations/fragments originating from one embedded block
// (or the file's own top-level text, for blockIndex -1), shifting their
// ranges back by startLine so they read as block-local.
func filterByBlock(full hir.FileStructureData, blockIndex, startLine int) hir.FileStructureData {
	var out hir.FileStructureData
	out.TypeDefs = append(out.TypeDefs, full.TypeDefs...)
	for _, op := range full.Operations {
		if op.BlockIndex == blockIndex {
			op.Range = shiftRange(op.Range, -startLine)
			op.NameRange = shiftRange(op.NameRange, -startLine)
			out.Operations = append(out.Operations, op)
		}
	}
	for _, f := range full.Fragments {
		if f.BlockIndex == blockIndex {
			f.Range = shiftRange(f.Range, -startLine)
			f.NameRange = shiftRange(f.NameRange, -startLine)
			out.Fragments = append(out.Fragments, f)
		}
	}
	return out
}

func shiftRange(r diag.Range, delta int) diag.Range {
	r.Start.Line += delta
	r.End.Line += delta
	return r
}

// LintDiagnostics runs every registered standalone and document+schema
// lint rule against one document file, region by region.
func (s *Snapshot) LintDiagnostics(id engine.FileId) []lint.LintDiagnostic {
	fe, ok := s.raw.FileEntry(id)
	if !ok {
		return nil
	}
	entry, ok := s.fileStructure(id)
	if !ok {
		return nil
	}

	view := s.SchemaView()
	cfg := s.engine.lintCfg
	var out []lint.LintDiagnostic
	for _, doc := range lintDocuments(fe, entry) {
		for _, d := range s.engine.lintRegistry.RunDocument(doc, view, cfg) {
			d.Diagnostic = d.Diagnostic.ShiftLines(doc.LineOffset)
			out = append(out, d)
		}
	}
	return out
}

// projectFiles builds the lint.ProjectFiles a project-scoped rule needs:
// every document region across every document file, plus the merged
// schema and project-wide fragment index.
func (s *Snapshot) projectFiles() lint.ProjectFiles {
	var docs []lint.Document
	for _, id := range s.raw.DocumentFileIds {
		fe, ok := s.raw.FileEntry(id)
		if !ok {
			continue
		}
		entry, ok := s.fileStructure(id)
		if !ok {
			continue
		}
		docs = append(docs, lintDocuments(fe, entry)...)
	}
	return lint.ProjectFiles{
		Documents:    docs,
		Schema:       s.SchemaView(),
		AllFragments: s.AllFragments(),
	}
}

// AllLintDiagnostics runs every standalone, document+schema, and
// project-scoped lint rule across the whole project, keyed by URI.
//
// Project rules compute their own ranges from each lint.Document's
// block-local Source/Structs, so their output needs the same
// LineOffset shift as the standalone pass. That shift is looked up by
// URI from the last-seen document for that URI — exact for the common
// case of one embedded block per host file; a host file with more than
// one block sharing lint.ProjectFiles across rules can under-shift
// diagnostics attributed to an earlier block in the same file.
func (s *Snapshot) AllLintDiagnostics() map[string][]lint.LintDiagnostic {
	out := map[string][]lint.LintDiagnostic{}
	for _, id := range s.raw.DocumentFileIds {
		fe, ok := s.raw.FileEntry(id)
		if !ok {
			continue
		}
		out[fe.URI] = append(out[fe.URI], s.LintDiagnostics(id)...)
	}

	files := s.projectFiles()
	offsetByURI := map[string]int{}
	for _, doc := range files.Documents {
		offsetByURI[doc.URI] = doc.LineOffset
	}

	cfg := s.engine.lintCfg
	for uri, ds := range s.engine.lintRegistry.RunProject(files, cfg) {
		offset := offsetByURI[uri]
		for _, d := range ds {
			d.Diagnostic = d.Diagnostic.ShiftLines(offset)
			out[uri] = append(out[uri], d)
		}
	}
	return out
}
