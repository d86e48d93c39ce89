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
	"github.com/kraklabs/graphqlcore/pkg/ide"
)

// fileView builds the ide.FileView for one file, reusing the same
// memoized fileStructure entry every other query layer reads — the IDE
// layer never re-derives blocks or HIR itself.
func (s *Snapshot) fileView(id engine.FileId) (ide.FileView, bool) {
	fe, ok := s.raw.FileEntry(id)
	if !ok {
		return ide.FileView{}, false
	}
	entry, ok := s.fileStructure(id)
	if !ok {
		return ide.FileView{}, false
	}
	return ide.FileView{
		URI:     fe.URI,
		Source:  fe.Content,
		Blocks:  entry.Blocks,
		Structs: entry.Structure,
	}, true
}

// FileView exposes fileView to callers outside this package (an LSP
// server needing to pass a specific file's view into a batch IDE call).
func (s *Snapshot) FileView(id engine.FileId) (ide.FileView, bool) {
	return s.fileView(id)
}

// project builds the ide.Project cross-file context: the merged schema,
// the project-wide fragment index, and every document file's view.
func (s *Snapshot) project() ide.Project {
	var docs []ide.FileView
	for _, id := range s.raw.DocumentFileIds {
		if fv, ok := s.fileView(id); ok {
			docs = append(docs, fv)
		}
	}
	return ide.Project{
		Schema:       s.SchemaView(),
		AllFragments: s.AllFragments(),
		Documents:    docs,
	}
}

// GotoDefinition resolves the symbol at pos in file id to its defining
// location.
func (s *Snapshot) GotoDefinition(id engine.FileId, pos diag.Position) (ide.Location, bool) {
	fv, ok := s.fileView(id)
	if !ok {
		return ide.Location{}, false
	}
	return ide.GotoDefinition(fv, pos, s.project())
}

// Hover returns the hover text for the symbol at pos in file id.
func (s *Snapshot) Hover(id engine.FileId, pos diag.Position) (ide.HoverInfo, bool) {
	fv, ok := s.fileView(id)
	if !ok {
		return ide.HoverInfo{}, false
	}
	return ide.Hover(fv, pos, s.project())
}

// Completion returns completion items at pos in file id.
func (s *Snapshot) Completion(id engine.FileId, pos diag.Position) []ide.CompletionItem {
	fv, ok := s.fileView(id)
	if !ok {
		return nil
	}
	return ide.Completion(fv, pos, s.project())
}

// FindFieldReferences finds every selection of targetType.targetField
// across the whole project.
func (s *Snapshot) FindFieldReferences(targetType, targetField string) []ide.Location {
	proj := s.project()
	return ide.FindFieldReferences(proj.Documents, targetType, targetField, proj.Schema)
}

// FindFragmentReferences finds every spread of fragmentName across the
// whole project.
func (s *Snapshot) FindFragmentReferences(fragmentName string) []ide.Location {
	return ide.FindFragmentReferences(s.project().Documents, fragmentName)
}

// DocumentSymbols returns file id's outline (operations, fragments,
// type definitions).
func (s *Snapshot) DocumentSymbols(id engine.FileId) []ide.DocumentSymbol {
	fv, ok := s.fileView(id)
	if !ok {
		return nil
	}
	return ide.DocumentSymbols(fv)
}

// WorkspaceSymbols searches every document and schema file's symbols
// for a case-insensitive substring match on query.
func (s *Snapshot) WorkspaceSymbols(query string) []ide.WorkspaceSymbol {
	return ide.WorkspaceSymbols(query, s.project())
}

// CodeLenses returns file id's code lenses (fragment/operation
// reference counts, run-operation affordances).
func (s *Snapshot) CodeLenses(id engine.FileId, endpointConfigured bool) []ide.CodeLens {
	fv, ok := s.fileView(id)
	if !ok {
		return nil
	}
	return ide.CodeLenses(fv, s.project(), endpointConfigured)
}

// FoldingRanges returns file id's collapsible multi-line regions.
func (s *Snapshot) FoldingRanges(id engine.FileId) []ide.FoldingRange {
	fv, ok := s.fileView(id)
	if !ok {
		return nil
	}
	return ide.FoldingRanges(fv)
}

// SemanticTokens returns file id's semantic token stream.
func (s *Snapshot) SemanticTokens(id engine.FileId) []ide.SemanticToken {
	fv, ok := s.fileView(id)
	if !ok {
		return nil
	}
	return ide.SemanticTokens(fv, s.SchemaView())
}

// InlayHints returns file id's inlay hints, optionally restricted to
// the ranges overlapping filter.
func (s *Snapshot) InlayHints(id engine.FileId, filter *diag.Range) []ide.InlayHint {
	fv, ok := s.fileView(id)
	if !ok {
		return nil
	}
	return ide.InlayHints(fv, s.SchemaView(), filter)
}
