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

// Package ide answers editor-style queries — goto-definition,
// references, hover, completion, symbols, code lenses, folding ranges,
// semantic tokens, inlay hints — against a file's syntax tree, its HIR,
// and the project's merged schema and fragment index.
package ide

import (
	"github.com/kraklabs/graphqlcore/pkg/diag"
	"github.com/kraklabs/graphqlcore/pkg/hir"
	"github.com/kraklabs/graphqlcore/pkg/syntax"
	"github.com/kraklabs/graphqlcore/pkg/validate"
)

// FileView is one file's content plus the structural data already
// derived for it: enough for every query in this package to run without
// re-deriving HIR itself.
type FileView struct {
	URI     string
	Source  string // the host file's own text (identical to GraphQL text for a plain .graphql file)
	Blocks  []syntax.ExtractedBlock
	Structs hir.FileStructureData
}

// Project is the cross-file context IDE queries that look beyond one
// file need: the merged schema and the project-wide fragment index.
type Project struct {
	Schema       validate.SchemaView
	AllFragments map[string]hir.FragmentStructure
	Documents    []FileView
}

// located is the resolved GraphQL region a host position falls inside:
// its own source text, parsed root, line index, and (for an embedded
// block) the projector back to host coordinates.
type located struct {
	source      string
	root        *syntax.Node
	li          *syntax.LineIndex
	projector   *syntax.BlockProjector // nil for a plain top-level GraphQL file
	blockOffset int
}

// toHostRange converts a range expressed in the located region's own
// coordinates into host-file coordinates.
func (l *located) toHostRange(r diag.Range) diag.Range {
	if l.projector == nil {
		return r
	}
	return l.projector.ProjectRange(r)
}

// FindBlockForPosition resolves pos (in host-file coordinates) to the
// GraphQL region it falls inside: an embedded block, or the file's own
// top-level text when it has no blocks (a plain .graphql/.gql file).
// ok is false when pos lands inside host TS/JS code that isn't GraphQL
// at all (a file with blocks, but pos outside every one of them).
func FindBlockForPosition(fv FileView, pos diag.Position) (offset int, ok bool) {
	loc, ok := locate(fv, pos)
	if !ok {
		return 0, false
	}
	return loc.blockOffset, true
}

func locate(fv FileView, pos diag.Position) (*located, bool) {
	if len(fv.Blocks) == 0 {
		li := syntax.NewLineIndex(fv.Source)
		offset := li.Offset(pos)
		root := syntax.Parse(fv.Source).Root
		return &located{source: fv.Source, root: root, li: li, blockOffset: offset}, true
	}

	hostLi := syntax.NewLineIndex(fv.Source)
	hostOffset := hostLi.Offset(pos)
	for _, block := range fv.Blocks {
		projector := syntax.NewBlockProjector(block, hostLi)
		if !projector.Contains(hostOffset) {
			continue
		}
		blockLi := syntax.NewLineIndex(block.Source)
		blockOffset := blockLi.Offset(projector.BlockPosition(hostOffset))
		root := syntax.Parse(block.Source).Root
		return &located{source: block.Source, root: root, li: blockLi, projector: projector, blockOffset: blockOffset}, true
	}
	return nil, false
}
