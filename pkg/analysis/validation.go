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
	"sort"

	"github.com/kraklabs/graphqlcore/pkg/diag"
	"github.com/kraklabs/graphqlcore/pkg/engine"
	"github.com/kraklabs/graphqlcore/pkg/hir"
	"github.com/kraklabs/graphqlcore/pkg/schema"
	"github.com/kraklabs/graphqlcore/pkg/syntax"
	"github.com/kraklabs/graphqlcore/pkg/validate"
)

// spreadNamesIn does a cheap lexical scan for "...Name" occurrences in
// src, good enough to seed the fragment dependency closure without a
// second parse pass.
func spreadNamesIn(src string) []string {
	var names []string
	for i := 0; i+3 < len(src); i++ {
		if src[i] != '.' || src[i+1] != '.' || src[i+2] != '.' {
			continue
		}
		j := i + 3
		for j < len(src) && (src[j] == ' ' || src[j] == '\t' || src[j] == '\n' || src[j] == '\r') {
			j++
		}
		start := j
		for j < len(src) && isNameByte(src[j]) {
			j++
		}
		if j > start && string(src[start:start+3]) != "on " {
			word := src[start:j]
			if word != "on" {
				names = append(names, word)
			}
		}
	}
	return names
}

func isNameByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// fragmentSource extracts a fragment definition's own source text from
// its owning file, using the line index to turn its line/column Range
// back into byte offsets.
func fragmentSource(fe engine.FileEntry, li *syntax.LineIndex, frag hir.FragmentStructure) string {
	start := li.Offset(frag.Range.Start)
	end := li.Offset(frag.Range.End)
	if start < 0 || end < start || end > len(fe.Content) {
		return ""
	}
	return fe.Content[start:end]
}

// validationDeps gathers the FragmentDep set a document transitively
// needs, resolving each referenced name against the project-wide
// fragment index and its owning file's content.
func (s *Snapshot) validationDeps(source string, all map[string]hir.FragmentStructure) []validate.FragmentDep {
	lookup := func(name string) (validate.FragmentDep, bool) {
		frag, ok := all[name]
		if !ok {
			return validate.FragmentDep{}, false
		}
		id, ok := s.raw.Lookup(frag.File)
		if !ok {
			return validate.FragmentDep{}, false
		}
		fe, ok := s.raw.FileEntry(id)
		if !ok {
			return validate.FragmentDep{}, false
		}
		entry, ok := s.fileStructure(id)
		if !ok {
			return validate.FragmentDep{}, false
		}
		text := fragmentSource(fe, entry.LineIndex, frag)
		return validate.FragmentDep{Name: name, Source: text}, true
	}

	seen := map[string]bool{}
	var out []validate.FragmentDep
	var visit func(name string)
	visit = func(name string) {
		if seen[name] {
			return
		}
		seen[name] = true
		dep, ok := lookup(name)
		if !ok {
			return
		}
		out = append(out, dep)
		for _, n := range spreadNamesIn(dep.Source) {
			visit(n)
		}
	}
	for _, n := range spreadNamesIn(source) {
		visit(n)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ValidationDiagnostics runs (or fetches from the content-hash cache)
// executable-document validation for one document file, per §4.5's
// cache-keyed-on-content-triple design: a cache hit requires the
// document's own text, the merged schema's canonical SDL, and the
// transitive fragment set to all match a previous run's, regardless of
// which engine snapshot produced them.
func (s *Snapshot) ValidationDiagnostics(id engine.FileId) []diag.Diagnostic {
	fe, ok := s.raw.FileEntry(id)
	if !ok {
		return nil
	}
	entry, ok := s.fileStructure(id)
	if !ok {
		return nil
	}

	merged := s.mergedSchema()
	allFrags := s.AllFragments()
	deps := s.validationDeps(fe.Content, allFrags)

	key := validate.ValidationKey{
		DocumentHash:  validate.DocumentHash(fe.Content),
		SchemaHash:    validate.SchemaHash(schema.CanonicalSDL(merged.Types)),
		FragmentsHash: validate.FragmentsHash(deps),
	}
	if cached, ok := s.engine.validationCache.Get(key); ok {
		return cached.Diagnostics
	}

	view := validate.SchemaView{
		Types:            merged.Types,
		QueryType:        merged.QueryType,
		MutationType:     merged.MutationType,
		SubscriptionType: merged.SubscriptionType,
	}
	diags := validate.Document(fe.URI, fe.Content, 0, view, allFrags)
	s.engine.validationCache.Put(key, &validate.ValidationResult{Diagnostics: diags})
	return diags
}

// AllValidationDiagnostics runs ValidationDiagnostics over every
// document file in the project, keyed by URI.
func (s *Snapshot) AllValidationDiagnostics() map[string][]diag.Diagnostic {
	out := map[string][]diag.Diagnostic{}
	for _, id := range s.raw.DocumentFileIds {
		fe, ok := s.raw.FileEntry(id)
		if !ok {
			continue
		}
		out[fe.URI] = s.ValidationDiagnostics(id)
	}
	return out
}
