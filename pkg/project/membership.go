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

package project

import "fmt"

// Config is one project's pattern configuration: the schema it
// validates against, the documents it contains, and the include/exclude
// filters layered on top of both.
type Config struct {
	Name      string
	Schema    []string // glob patterns identifying schema files
	Documents []string // glob patterns identifying executable documents
	Include   []string // if set, a document must match at least one
	Exclude   []string // if any matches, the document is excluded regardless of the above

	// SourceLine/SourceFile identify where this config was declared, for
	// overlap-error reporting.
	SourceFile string
	SourceLine int
}

// IsDocumentMember evaluates the membership rules for a document path p
// against this project's patterns, in order:
//  1. any exclude glob matches -> excluded
//  2. include is set and none match -> excluded
//  3. documents patterns are set and none match -> excluded
//  4. otherwise -> member
func (c *Config) IsDocumentMember(p string) bool {
	for _, pat := range c.Exclude {
		if MatchesAny(p, pat) {
			return false
		}
	}
	if len(c.Include) > 0 && !anyMatches(p, c.Include) {
		return false
	}
	if len(c.Documents) > 0 && !anyMatches(p, c.Documents) {
		return false
	}
	return true
}

// IsSchemaMember reports whether p matches this project's schema
// patterns (no include/exclude layering applies to schema patterns per
// the spec — only documents are filtered that way).
func (c *Config) IsSchemaMember(p string) bool {
	return anyMatches(p, c.Schema)
}

func anyMatches(p string, patterns []string) bool {
	for _, pat := range patterns {
		if MatchesAny(p, pat) {
			return true
		}
	}
	return false
}

// OverlapError reports that path was claimed by more than one project's
// patterns.
type OverlapError struct {
	Path     string
	Projects []string // project names claiming Path
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("file %q is claimed by multiple projects: %v", e.Path, e.Projects)
}

// DetectOverlap resolves every project's document+schema patterns
// against the given candidate file paths and reports every path claimed
// by more than one project.
func DetectOverlap(configs []Config, paths []string) []OverlapError {
	claims := make(map[string][]string)
	for _, p := range paths {
		for _, c := range configs {
			if c.IsSchemaMember(p) || (c.IsDocumentMember(p) && anyMatches(p, c.Documents)) {
				claims[p] = append(claims[p], c.Name)
			}
		}
	}

	var out []OverlapError
	for p, names := range claims {
		if len(names) > 1 {
			out = append(out, OverlapError{Path: p, Projects: names})
		}
	}
	return out
}

// ResolveProject returns the name of the first project p belongs to
// (schema or document membership), or "" if no project claims it.
// Callers needing overlap diagnostics should run DetectOverlap
// separately; this is the fast "which single project owns this file"
// path used by the registry to assign DocumentKind on load.
func ResolveProject(configs []Config, p string) (name string, isSchema bool, ok bool) {
	for _, c := range configs {
		if c.IsSchemaMember(p) {
			return c.Name, true, true
		}
		if anyMatches(p, c.Documents) && c.IsDocumentMember(p) {
			return c.Name, false, true
		}
	}
	return "", false, false
}
