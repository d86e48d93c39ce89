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

package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddFile_NewAssignsStableID(t *testing.T) {
	r := NewRegistry(nil)
	id, isNew := r.AddFile("file:///a.graphql", "type Query { a: String }", LangGraphQL, KindSchema)
	require.True(t, isNew)
	require.NotZero(t, id)

	snap := r.Snapshot()
	fe, ok := snap.FileEntry(id)
	require.True(t, ok)
	assert.Equal(t, "type Query { a: String }", fe.Content)
	assert.EqualValues(t, 1, fe.ContentRev)
}

// TestAddFile_NoOpSaveDoesNotBumpRevision verifies content idempotence.
func TestAddFile_NoOpSaveDoesNotBumpRevision(t *testing.T) {
	r := NewRegistry(nil)
	id, _ := r.AddFile("file:///a.graphql", "type Query { a: String }", LangGraphQL, KindSchema)

	before := r.Snapshot()
	feBefore, _ := before.FileEntry(id)

	id2, isNew := r.AddFile("file:///a.graphql", "type Query { a: String }", LangGraphQL, KindSchema)
	require.False(t, isNew)
	assert.Equal(t, id, id2)

	after := r.Snapshot()
	feAfter, _ := after.FileEntry(id)
	assert.Equal(t, feBefore.ContentRev, feAfter.ContentRev, "no-op save must not bump content revision")
	assert.Equal(t, before.Revision, after.Revision, "no-op save must not bump global revision")
}

func TestAddFile_ContentChangeBumpsOnlyThatFile(t *testing.T) {
	r := NewRegistry(nil)
	idA, _ := r.AddFile("file:///a.graphql", "type Query { a: String }", LangGraphQL, KindSchema)
	idB, _ := r.AddFile("file:///b.graphql", "type Mutation { b: String }", LangGraphQL, KindSchema)

	before := r.Snapshot()
	feBBefore, _ := before.FileEntry(idB)

	r.AddFile("file:///a.graphql", "type Query { a: String! }", LangGraphQL, KindSchema)

	after := r.Snapshot()
	feABefore, _ := before.FileEntry(idA)
	feAAfter, _ := after.FileEntry(idA)
	feBAfter, _ := after.FileEntry(idB)

	assert.Greater(t, feAAfter.ContentRev, feABefore.ContentRev)
	assert.Equal(t, feBBefore.ContentRev, feBAfter.ContentRev, "editing A must not bump B's content revision")
}

func TestRemoveFile_DropsLookupImmediately(t *testing.T) {
	r := NewRegistry(nil)
	id, _ := r.AddFile("file:///a.graphql", "type Query { a: String }", LangGraphQL, KindSchema)
	r.RemoveFile(id)

	snap := r.Snapshot()
	_, ok := snap.FileEntry(id)
	assert.False(t, ok)
	_, ok = snap.Lookup("file:///a.graphql")
	assert.False(t, ok)
}

func TestRebuildProjectFiles_PartitionsByKind(t *testing.T) {
	r := NewRegistry(nil)
	r.AddFile("file:///schema.graphql", "type Query { a: String }", LangGraphQL, KindSchema)
	r.AddFile("file:///op.graphql", "query A { a }", LangGraphQL, KindExecutableGraphQL)
	r.RebuildProjectFiles()

	snap := r.Snapshot()
	require.Len(t, snap.SchemaFileIds, 1)
	require.Len(t, snap.DocumentFileIds, 1)
}

func TestRebuildProjectFiles_NoOpDoesNotBumpRevision(t *testing.T) {
	r := NewRegistry(nil)
	r.AddFile("file:///schema.graphql", "type Query { a: String }", LangGraphQL, KindSchema)
	r.RebuildProjectFiles()

	before := r.Snapshot()
	r.RebuildProjectFiles()
	after := r.Snapshot()

	assert.Equal(t, before.Revision, after.Revision)
}

func TestAddFileVersioned_DropsStaleVersions(t *testing.T) {
	r := NewRegistry(nil)
	id, applied := r.AddFileVersioned("file:///a.graphql", "v1", LangGraphQL, KindSchema, 2)
	require.True(t, applied)

	_, applied = r.AddFileVersioned("file:///a.graphql", "v0-stale", LangGraphQL, KindSchema, 1)
	assert.False(t, applied, "a version <= the last seen version must be dropped")

	snap := r.Snapshot()
	fe, _ := snap.FileEntry(id)
	assert.Equal(t, "v1", fe.Content, "stale update must not have applied")

	_, applied = r.AddFileVersioned("file:///a.graphql", "v3", LangGraphQL, KindSchema, 3)
	assert.True(t, applied)
}

func TestMemo_GranularInvalidation(t *testing.T) {
	r := NewRegistry(nil)
	idA, _ := r.AddFile("file:///a.graphql", "A1", LangGraphQL, KindExecutableGraphQL)
	idB, _ := r.AddFile("file:///b.graphql", "B1", LangGraphQL, KindExecutableGraphQL)
	stats := r.Stats()

	memo := NewMemo[string]()
	queryA := func(s *Snapshot) string {
		fe, _ := s.FileEntry(idA)
		return memo.Get(FileKey(idA, fe.ContentRev), stats, "fileQuery", func() string { return fe.Content })
	}
	queryB := func(s *Snapshot) string {
		fe, _ := s.FileEntry(idB)
		return memo.Get(FileKey(idB, fe.ContentRev), stats, "fileQuery", func() string { return fe.Content })
	}

	snap := r.Snapshot()
	queryA(snap)
	queryB(snap)
	require.EqualValues(t, 2, stats.Count("fileQuery"))

	r.AddFile("file:///a.graphql", "A2", LangGraphQL, KindExecutableGraphQL)
	snap = r.Snapshot()
	queryA(snap)
	require.EqualValues(t, 3, stats.Count("fileQuery"), "A changed, must recompute")

	queryB(snap)
	require.EqualValues(t, 3, stats.Count("fileQuery"), "B unchanged, must hit cache")
}
