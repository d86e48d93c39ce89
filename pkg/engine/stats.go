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
	"sync"
	"sync/atomic"
)

// QueryStats counts tracked-function recomputations per query name.
//
// It exists so the granularity invariants in the spec's testable
// properties (content idempotence, granular invalidation) can be verified
// mechanically: a test adds files, calls a query, records the counter,
// mutates one file, calls the query again, and asserts the counter for
// unrelated queries did not move. Tests should prefer this over timing.
type QueryStats struct {
	mu     sync.Mutex
	counts map[string]*int64
}

// NewQueryStats creates an empty, ready-to-use counter set.
func NewQueryStats() *QueryStats {
	return &QueryStats{counts: make(map[string]*int64)}
}

func (s *QueryStats) counter(name string) *int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.counts[name]
	if !ok {
		c = new(int64)
		s.counts[name] = c
	}
	return c
}

// Inc records one recomputation of the named tracked query.
func (s *QueryStats) Inc(name string) {
	if s == nil {
		return
	}
	atomic.AddInt64(s.counter(name), 1)
}

// Count returns the number of recomputations recorded for name so far.
func (s *QueryStats) Count(name string) int64 {
	if s == nil {
		return 0
	}
	return atomic.LoadInt64(s.counter(name))
}

// Snapshot returns a point-in-time copy of all counters, for diffing in
// tests ("recorded counter before edit" vs "after edit").
func (s *QueryStats) Snapshot() map[string]int64 {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]int64, len(s.counts))
	for k, v := range s.counts {
		out[k] = atomic.LoadInt64(v)
	}
	return out
}
