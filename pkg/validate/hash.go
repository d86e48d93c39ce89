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

// Package validate implements executable-document validation against a
// merged schema, and the content-hash cache that makes validation cheap
// to re-run on every keystroke instead of re-validating a whole file.
package validate

import (
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// DocumentHash hashes text line-by-line after whitespace normalization:
// each line trimmed, empty lines dropped. Intra-line whitespace (inside
// string literals and comments) stays significant, since trimming only
// strips leading/trailing space per line rather than collapsing runs.
//
// Two documents differing only in leading indentation or trailing
// blank lines must hash identically, so reformatting a file doesn't
// force a cache miss.
func DocumentHash(text string) uint64 {
	h := xxhash.New()
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		h.Write([]byte(trimmed))
		h.Write([]byte{'\n'})
	}
	return h.Sum64()
}

// SchemaHash hashes the merged schema's canonical SDL serialization, so
// that any schema change invalidates every cached validation result.
func SchemaHash(canonicalSDL string) uint64 {
	return xxhash.Sum64String(canonicalSDL)
}

// FragmentDep is one fragment dependency: its name and source text.
type FragmentDep struct {
	Name   string
	Source string
}

// FragmentsHash hashes the sorted (by name) set of fragment
// dependencies, so that the hash is independent of the order fragments
// were discovered or supplied in.
func FragmentsHash(deps []FragmentDep) uint64 {
	sorted := append([]FragmentDep(nil), deps...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	h := xxhash.New()
	for _, d := range sorted {
		h.Write([]byte(d.Name))
		h.Write([]byte{0})
		h.Write([]byte(d.Source))
		h.Write([]byte{0})
	}
	return h.Sum64()
}

// ValidationKey is the triple of content hashes that identifies one
// validation cache entry: the document's own content, the schema it was
// validated against, and the set of fragments it transitively depends
// on.
type ValidationKey struct {
	DocumentHash  uint64
	SchemaHash    uint64
	FragmentsHash uint64
}
