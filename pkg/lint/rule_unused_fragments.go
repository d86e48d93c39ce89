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

	"github.com/kraklabs/graphqlcore/pkg/diag"
	"github.com/kraklabs/graphqlcore/pkg/syntax"
	"github.com/kraklabs/graphqlcore/pkg/validate"
)

// UnusedFragments flags fragments that no operation or other fragment
// spreads anywhere in the project, offering a fix that deletes the
// fragment definition.
type UnusedFragments struct{}

func (UnusedFragments) Name() string                 { return "unused_fragments" }
func (UnusedFragments) Description() string          { return "fragments never spread anywhere are flagged" }
func (UnusedFragments) DefaultSeverity() diag.Severity { return diag.Warning }

func (r UnusedFragments) CheckProject(files ProjectFiles) map[string][]LintDiagnostic {
	used := map[string]bool{}
	for _, doc := range files.Documents {
		for name := range validate.ReferencedFragments(doc.Source) {
			used[name] = true
		}
	}

	out := map[string][]LintDiagnostic{}
	for _, doc := range files.Documents {
		if len(doc.Structs.Fragments) == 0 {
			continue
		}
		li := syntax.NewLineIndex(doc.Source)
		for _, frag := range doc.Structs.Fragments {
			if used[frag.Name] {
				continue
			}
			fragByteRange := diag.ByteRange{Start: li.Offset(frag.Range.Start), End: li.Offset(frag.Range.End)}
			out[doc.URI] = append(out[doc.URI], LintDiagnostic{
				URI: doc.URI,
				Diagnostic: diag.Diagnostic{
					Message:   fmt.Sprintf("fragment %q is never used", frag.Name),
					Range:     frag.NameRange,
					ByteRange: fragByteRange,
					Source:    "graphql-linter",
					Fix: &diag.CodeFix{
						Label: fmt.Sprintf("Remove unused fragment %s", frag.Name),
						Edits: []diag.TextEdit{{ByteRange: fragByteRange, NewText: ""}},
					},
				},
			})
		}
	}
	return out
}
