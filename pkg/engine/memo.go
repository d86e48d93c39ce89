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
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Memo is a generic memoization cache for a tracked query. The cache key
// is expected to embed the revisions of every input the query read, so
// that key equality across two calls *is* the "are my inputs unchanged"
// check — the engine never needs to separately diff dependency graphs.
//
// This is the mechanism that makes every "tracked function" in the spec
// (file_structure, schema_types, validation, lint rules, ...) memoized
// and demand-driven: callers build a key from a Snapshot's per-file and
// per-list revisions (see FileKey/ProjectKey below) and call Get.
type Memo[V any] struct {
	mu      sync.Mutex
	entries map[string]V
}

// NewMemo creates an empty memoization cache for one tracked query.
func NewMemo[V any]() *Memo[V] {
	return &Memo[V]{entries: make(map[string]V)}
}

// Get returns the cached value for key, computing and storing it via
// compute on a miss. stats/name are optional instrumentation: when
// non-nil, a cache miss increments stats.Inc(name) so tests can observe
// recomputation counts.
func (m *Memo[V]) Get(key string, stats *QueryStats, name string, compute func() V) V {
	m.mu.Lock()
	if v, ok := m.entries[key]; ok {
		m.mu.Unlock()
		return v
	}
	m.mu.Unlock()

	v := compute()
	stats.Inc(name)

	m.mu.Lock()
	m.entries[key] = v
	m.mu.Unlock()
	return v
}

// Len reports the number of cached entries, mostly useful in tests.
func (m *Memo[V]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Clear drops every cached entry.
func (m *Memo[V]) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]V)
}

// FileKey builds a memoization key for a query whose only input is a
// single file's content (e.g. parse, file_structure).
func FileKey(id FileId, contentRev uint64) string {
	return fmt.Sprintf("f:%d@%d", id, contentRev)
}

// FileKey2 builds a memoization key for a query reading one file's
// content plus one other revisioned input (e.g. document validation,
// which reads a file and the merged schema's revision).
func FileKey2(id FileId, contentRev, otherRev uint64) string {
	return fmt.Sprintf("f:%d@%d+%d", id, contentRev, otherRev)
}

// ProjectKey builds a memoization key for a query that reads the entire
// ProjectFiles aggregate (schema_types, all_fragments, project lint
// rules): every included file's (id, contentRev) pair, sorted so
// iteration order never affects the key.
func ProjectKey(s *Snapshot, ids []FileId) string {
	parts := make([]string, 0, len(ids)+2)
	for _, id := range ids {
		if fe, ok := s.FileEntry(id); ok {
			parts = append(parts, fmt.Sprintf("%d@%d", id, fe.ContentRev))
		}
	}
	sort.Strings(parts)
	return strings.Join(parts, ",")
}
