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

package lint

import (
	"fmt"
	"sort"

	"github.com/kraklabs/graphqlcore/pkg/diag"
)

// UniqueNames requires every named operation and every fragment to be
// unique project-wide. Operations and fragments live in independent
// namespaces: an operation and a fragment may share a name.
type UniqueNames struct{}

func (UniqueNames) Name() string                 { return "unique_names" }
func (UniqueNames) Description() string          { return "operation and fragment names must be globally unique" }
func (UniqueNames) DefaultSeverity() diag.Severity { return diag.Error }

func (r UniqueNames) CheckProject(files ProjectFiles) map[string][]LintDiagnostic {
	out := map[string][]LintDiagnostic{}

	opSeen := map[string][]namedLoc{}
	fragSeen := map[string][]namedLoc{}
	for _, doc := range files.Documents {
		for _, op := range doc.Structs.Operations {
			if op.Name == "" {
				continue
			}
			opSeen[op.Name] = append(opSeen[op.Name], namedLoc{uri: doc.URI, rng: op.NameRange})
		}
		for _, frag := range doc.Structs.Fragments {
			fragSeen[frag.Name] = append(fragSeen[frag.Name], namedLoc{uri: doc.URI, rng: frag.NameRange})
		}
	}

	reportDupes("operation", opSeen, out)
	reportDupes("fragment", fragSeen, out)
	return out
}

type namedLoc struct {
	uri string
	rng diag.Range
}

func reportDupes(kind string, seen map[string][]namedLoc, out map[string][]LintDiagnostic) {
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		locs := seen[name]
		if len(locs) < 2 {
			continue
		}
		for _, loc := range locs {
			out[loc.uri] = append(out[loc.uri], LintDiagnostic{
				URI: loc.uri,
				Diagnostic: diag.Diagnostic{
					Message: fmt.Sprintf("%s name %q is used %d times across the project", kind, name, len(locs)),
					Range:   loc.rng,
					Source:  "graphql-linter",
				},
			})
		}
	}
}
