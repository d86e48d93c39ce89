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

package validate

import (
	"sync"

	"github.com/kraklabs/graphqlcore/pkg/diag"
)

// ValidationResult is the cached outcome of validating one executable
// document.
type ValidationResult struct {
	Diagnostics []diag.Diagnostic
}

// maxCacheEntries is the cap the spec calls "approximately 1000
// entries"; once reached, the cache is cleared outright rather than
// evicting individual entries, matching the spec's explicit "drop all"
// policy (a simple choice the spec allows implementations to replace
// with LRU — this one doesn't, since the incremental engine's own
// per-file memoization already absorbs most of the repeat-query
// traffic this cache exists to catch, namely *cross-snapshot*
// repetition that Memo can't see).
const maxCacheEntries = 1000

// Cache is a content-hash-keyed validation result cache. Each
// analysis.Engine owns its own Cache; engines do not share cached
// results. It is a second-tier memo the incremental engine's per-snapshot
// Memo cannot express, because a ValidationKey is derived from content
// hashes, not snapshot revisions: two different snapshots (e.g. before
// and after an unrelated file's edit) can still share a cache hit if
// the specific document+schema+fragments triple is unchanged.
type Cache struct {
	mu      sync.RWMutex
	entries map[ValidationKey]*ValidationResult
}

// NewCache creates an empty validation cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[ValidationKey]*ValidationResult)}
}

// Get returns the cached result for key, if present.
func (c *Cache) Get(key ValidationKey) (*ValidationResult, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	r, ok := c.entries[key]
	return r, ok
}

// Put stores result under key, clearing the whole cache first if it has
// reached its cap.
func (c *Cache) Put(key ValidationKey, result *ValidationResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.entries) >= maxCacheEntries {
		c.entries = make(map[ValidationKey]*ValidationResult)
	}
	c.entries[key] = result
}

// Len reports the number of cached entries, mostly useful in tests.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
