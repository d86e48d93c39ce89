// Copyright 2025 KrakLabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// For commercial licensing, contact: licensing@kraklabs.com
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package testing

import (
	"testing"

	"github.com/kraklabs/graphqlcore/pkg/analysis"
	"github.com/kraklabs/graphqlcore/pkg/engine"
)

// NewFixtureEngine creates a fresh analysis engine for a single test.
// Every fixture engine is independent: nothing seeded into one is
// visible from another.
func NewFixtureEngine(t *testing.T) *analysis.Engine {
	t.Helper()
	return analysis.NewEngine(nil)
}

// AddSchema seeds a schema file into eng and rebuilds the project's
// file partitions so the new file is immediately visible to the next
// snapshot's SchemaFileIds/DocumentFileIds.
//
// Example:
//
//	eng := testing.NewFixtureEngine(t)
//	testing.AddSchema(t, eng, "file:///schema.graphql", "type Query { user: User }")
func AddSchema(t *testing.T, eng *analysis.Engine, uri, source string) engine.FileId {
	t.Helper()
	id, _ := eng.AddFile(uri, source, engine.LangGraphQL, engine.KindSchema)
	eng.RebuildProjectFiles()
	return id
}

// AddDocument seeds an executable GraphQL document into eng and
// rebuilds the project's file partitions.
//
// Example:
//
//	testing.AddDocument(t, eng, "file:///op.graphql", "query A { user { id } }")
func AddDocument(t *testing.T, eng *analysis.Engine, uri, source string) engine.FileId {
	t.Helper()
	id, _ := eng.AddFile(uri, source, engine.LangGraphQL, engine.KindExecutableGraphQL)
	eng.RebuildProjectFiles()
	return id
}

// AddDocumentLang is AddDocument for an embedded-GraphQL host language
// (TypeScript/JavaScript), for tests exercising the extracted-block path.
func AddDocumentLang(t *testing.T, eng *analysis.Engine, uri, source string, lang engine.Language) engine.FileId {
	t.Helper()
	id, _ := eng.AddFile(uri, source, lang, engine.KindExecutableGraphQL)
	eng.RebuildProjectFiles()
	return id
}

// CountDelta returns how many times named query ran between two
// QueryStats snapshots. Tests use this to assert that incremental
// re-analysis recomputed exactly the tracked queries it should have,
// and no others.
func CountDelta(before, after map[string]int64, name string) int64 {
	return after[name] - before[name]
}
