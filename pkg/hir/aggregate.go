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

package hir

// SchemaTypes merges every schema file's type definitions into one
// name-keyed map, in the order the caller's structures appear. A later
// file's definition of the same name overwrites an earlier one in the
// map — last-writer-wins doesn't matter semantically because the schema
// merger's own validator is what reports the duplicate-definition
// diagnostic; this map just needs *a* definition to answer "what does
// this type look like" queries against.
func SchemaTypes(perFile []FileStructureData) map[string]TypeDef {
	out := make(map[string]TypeDef)
	for _, fs := range perFile {
		for _, td := range fs.TypeDefs {
			if td.IsExtension {
				// Extensions contribute fields but aren't a primary
				// definition; merged separately below once the base
				// type is known would require a second pass, so for the
				// structural (non-validating) view we fold an
				// extension's fields onto an existing base entry when
				// one is already present, and otherwise register it as
				// if it were the base (nothing reports a dangling
				// "extend" with no base).
				if base, ok := out[td.Name]; ok {
					base.Fields = append(base.Fields, td.Fields...)
					base.Implements = append(base.Implements, td.Implements...)
					out[td.Name] = base
					continue
				}
			}
			out[td.Name] = td
		}
	}
	return out
}

// AllFragments aggregates every document file's fragment structures
// into one name-keyed map across the whole project, stamping each
// entry's File field from the per-file structure it came from.
func AllFragments(uris []string, perFile []FileStructureData) map[string]FragmentStructure {
	out := make(map[string]FragmentStructure)
	for i, fs := range perFile {
		uri := ""
		if i < len(uris) {
			uri = uris[i]
		}
		for _, frag := range fs.Fragments {
			frag.File = uri
			out[frag.Name] = frag
		}
	}
	return out
}
