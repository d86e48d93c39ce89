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
	"github.com/kraklabs/graphqlcore/pkg/engine"
	"github.com/kraklabs/graphqlcore/pkg/hir"
	"github.com/kraklabs/graphqlcore/pkg/schema"
	"github.com/kraklabs/graphqlcore/pkg/syntax"
	"github.com/kraklabs/graphqlcore/pkg/validate"
)

// fileStructureEntry is the memoized per-file derivation: the parsed
// blocks (needed by the IDE layer's position mapping) alongside the
// structural data the HIR layer derives from them.
type fileStructureEntry struct {
	LineIndex *syntax.LineIndex
	Blocks    []syntax.ExtractedBlock
	Structure hir.FileStructureData
}

type schemaEntry struct {
	Result schema.MergedSchemaResult
}

type fragmentsEntry struct {
	All map[string]hir.FragmentStructure
}

// fileBlocks extracts embedded GraphQL blocks from a host file. Plain
// .graphql/.gql files (LangGraphQL) have none — their own text is the
// GraphQL source. Extraction failures (e.g. an unparseable host file)
// degrade to "no blocks found" rather than failing the query, matching
// the engine's "no failures, total" design.
func fileBlocks(fe engine.FileEntry) []syntax.ExtractedBlock {
	if fe.Language == engine.LangGraphQL {
		return nil
	}
	blocks, err := syntax.ExtractEmbeddedBlocks([]byte(fe.Content), fe.Language)
	if err != nil {
		return nil
	}
	return blocks
}

// fileStructure is the tracked file_structure(FileId) query: memoized on
// (id, contentRev), so an edit inside one file's selection set recomputes
// only that file's entry, never the whole project's.
func (s *Snapshot) fileStructure(id engine.FileId) (fileStructureEntry, bool) {
	fe, ok := s.raw.FileEntry(id)
	if !ok {
		return fileStructureEntry{}, false
	}
	key := engine.FileKey(id, fe.ContentRev)
	return s.engine.structureMemo.Get(key, s.raw.Stats(), "file_structure", func() fileStructureEntry {
		li := syntax.NewLineIndex(fe.Content)
		root := &syntax.Node{Kind: syntax.NodeDocument}
		if fe.Language == engine.LangGraphQL {
			root = syntax.Parse(fe.Content).Root
		}
		blocks := fileBlocks(fe)
		return fileStructureEntry{
			LineIndex: li,
			Blocks:    blocks,
			Structure: hir.FileStructure(fe.URI, li, root, blocks),
		}
	}), true
}

// schemaKey folds every schema file's (id, contentRev) into one
// project-wide key, so the merged schema is only rebuilt when a schema
// file's content (or the schema file set itself) actually changes —
// editing inside a document file never touches this key.
func (s *Snapshot) schemaKey() string {
	return engine.ProjectKey(s.raw, s.raw.SchemaFileIds)
}

// mergedSchema is the tracked schema merge+validate query (§4.4):
// memoized across every schema file's content revision.
func (s *Snapshot) mergedSchema() schema.MergedSchemaResult {
	key := s.schemaKey()
	entry := s.engine.schemaMemo.Get(key, s.raw.Stats(), "merged_schema", func() schemaEntry {
		var inputs []schema.FileInput
		for _, id := range s.raw.SchemaFileIds {
			fe, ok := s.raw.FileEntry(id)
			if !ok {
				continue
			}
			structs, _ := s.fileStructure(id)
			inputs = append(inputs, schema.FileInput{URI: fe.URI, Source: fe.Content, Structs: structs.Structure})
		}
		return schemaEntry{Result: schema.BuildMergedSchema(inputs)}
	})
	return entry.Result
}

// SchemaView builds the validate.SchemaView the executable-document
// validator, the lint framework, and the IDE feature layer all consume.
func (s *Snapshot) SchemaView() validate.SchemaView {
	m := s.mergedSchema()
	return validate.SchemaView{
		Types:            m.Types,
		QueryType:        m.QueryType,
		MutationType:     m.MutationType,
		SubscriptionType: m.SubscriptionType,
	}
}

// SchemaDiagnostics returns the schema merger's own diagnostics (build
// failures, duplicate/undefined types, missing root type) — distinct
// from per-document validation diagnostics. Each is attributed to its
// owning schema file; project-wide findings (a missing root type) carry
// an empty URI.
func (s *Snapshot) SchemaDiagnostics() []schema.FileDiagnostic {
	return s.mergedSchema().Diagnostics
}

// AllFragments is the tracked all_fragments(ProjectFiles) query,
// aggregating every document file's fragment structures project-wide.
func (s *Snapshot) AllFragments() map[string]hir.FragmentStructure {
	key := engine.ProjectKey(s.raw, s.raw.DocumentFileIds)
	entry := s.engine.fragmentsMemo.Get(key, s.raw.Stats(), "all_fragments", func() fragmentsEntry {
		var uris []string
		var perFile []hir.FileStructureData
		for _, id := range s.raw.DocumentFileIds {
			fe, ok := s.raw.FileEntry(id)
			if !ok {
				continue
			}
			structs, _ := s.fileStructure(id)
			uris = append(uris, fe.URI)
			perFile = append(perFile, structs.Structure)
		}
		return fragmentsEntry{All: hir.AllFragments(uris, perFile)}
	})
	return entry.All
}
