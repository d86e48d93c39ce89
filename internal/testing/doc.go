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

// Package testing provides test helpers for gqlcore integration tests.
//
// It wraps pkg/analysis.Engine construction and file seeding so package
// tests elsewhere in the module don't each reimplement the same
// boilerplate of adding schema/document files and rebuilding project
// partitions before taking a snapshot.
//
// # Quick Start
//
//	func TestMyFeature(t *testing.T) {
//	    eng := testing.NewFixtureEngine(t)
//	    testing.AddSchema(t, eng, "file:///schema.graphql", "type Query { user: User } type User { id: ID! }")
//	    testing.AddDocument(t, eng, "file:///op.graphql", "query { user { id } }")
//
//	    snap := eng.Snapshot()
//	    // assert against snap...
//	}
//
// # Counting Memoized Query Invocations
//
// CountDelta captures how many times a named query ran between two
// points, which is how tests assert that incremental re-analysis only
// recomputes what actually changed:
//
//	before := eng.Stats().Snapshot()
//	snap := eng.Snapshot()
//	snap.SchemaView()
//	after := eng.Stats().Snapshot()
//	testing.CountDelta(before, after, "merged_schema") // == 1
package testing
