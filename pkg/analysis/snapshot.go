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

import "github.com/kraklabs/graphqlcore/pkg/engine"

// Snapshot is a consistent, immutable view of one project at a single
// revision: every query method on it (file structure, merged schema,
// validation, lint, IDE features) reads only from raw and the engine's
// memo tables, never from Engine's mutable registry directly, so a
// concurrent write never changes what a Snapshot already in a caller's
// hand observes.
type Snapshot struct {
	raw    *engine.Snapshot
	engine *Engine
}

// Lookup resolves a URI to its FileId within this snapshot.
func (s *Snapshot) Lookup(uri string) (engine.FileId, bool) {
	return s.raw.Lookup(uri)
}

// FileEntry returns one file's tracked content and metadata.
func (s *Snapshot) FileEntry(id engine.FileId) (engine.FileEntry, bool) {
	return s.raw.FileEntry(id)
}

// DocumentFileIds lists every file classified as an executable-document
// member of the project.
func (s *Snapshot) DocumentFileIds() []engine.FileId {
	return s.raw.DocumentFileIds
}

// SchemaFileIds lists every file classified as a schema member of the
// project.
func (s *Snapshot) SchemaFileIds() []engine.FileId {
	return s.raw.SchemaFileIds
}

// Stats exposes the tracked-query invocation counters this snapshot's
// queries feed into.
func (s *Snapshot) Stats() *engine.QueryStats {
	return s.raw.Stats()
}
