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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewFixtureEngine verifies a fresh engine starts empty.
func TestNewFixtureEngine(t *testing.T) {
	eng := NewFixtureEngine(t)
	require.NotNil(t, eng)

	snap := eng.Snapshot()
	assert.Empty(t, snap.SchemaFileIds())
	assert.Empty(t, snap.DocumentFileIds())
}

// TestAddSchema verifies schema files become visible via SchemaView.
func TestAddSchema(t *testing.T) {
	eng := NewFixtureEngine(t)
	AddSchema(t, eng, "file:///schema.graphql", "type Query { user: User } type User { id: ID! }")

	snap := eng.Snapshot()
	view := snap.SchemaView()
	assert.Contains(t, view.Types, "Query")
	assert.Contains(t, view.Types, "User")
}

// TestAddDocument verifies documents validate against a seeded schema.
func TestAddDocument(t *testing.T) {
	eng := NewFixtureEngine(t)
	AddSchema(t, eng, "file:///schema.graphql", "type Query { user: User } type User { id: ID! }")
	id := AddDocument(t, eng, "file:///op.graphql", "query A { user { id } }")

	snap := eng.Snapshot()
	assert.Empty(t, snap.ValidationDiagnostics(id))
}

// TestAddDocument_InvalidSelection verifies an invalid document produces
// diagnostics, so fixtures aren't silently accepting garbage.
func TestAddDocument_InvalidSelection(t *testing.T) {
	eng := NewFixtureEngine(t)
	AddSchema(t, eng, "file:///schema.graphql", "type Query { user: User } type User { id: ID! }")
	id := AddDocument(t, eng, "file:///op.graphql", "query A { user { missing } }")

	snap := eng.Snapshot()
	assert.NotEmpty(t, snap.ValidationDiagnostics(id))
}

// TestFixtureEngineIsolation verifies each fixture engine is independent.
func TestFixtureEngineIsolation(t *testing.T) {
	eng1 := NewFixtureEngine(t)
	AddSchema(t, eng1, "file:///a.graphql", "type Query { a: String }")

	eng2 := NewFixtureEngine(t)
	snap2 := eng2.Snapshot()
	assert.Empty(t, snap2.SchemaFileIds(), "second engine must not see the first engine's files")
}

// TestCountDelta verifies repeated reads over unchanged content hit the
// memoization cache rather than recompute.
func TestCountDelta(t *testing.T) {
	eng := NewFixtureEngine(t)
	AddSchema(t, eng, "file:///schema.graphql", "type Query { a: String }")

	before := eng.Stats().Snapshot()
	snap := eng.Snapshot()
	snap.SchemaView()
	snap.SchemaView() // second call must hit the cache, not recompute
	after := eng.Stats().Snapshot()

	assert.Equal(t, int64(1), CountDelta(before, after, "merged_schema"))
}
