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

import "github.com/kraklabs/graphqlcore/pkg/diag"

// NoAnonymousOperations requires every query/mutation/subscription to
// be named, so a document is unambiguous for tooling that keys
// diagnostics, code lenses, and test fixtures off operation names.
type NoAnonymousOperations struct{}

func (NoAnonymousOperations) Name() string        { return "no_anonymous_operations" }
func (NoAnonymousOperations) Description() string  { return "every operation must have a name" }
func (NoAnonymousOperations) DefaultSeverity() diag.Severity { return diag.Error }

func (r NoAnonymousOperations) CheckDocument(doc Document) []LintDiagnostic {
	var out []LintDiagnostic
	for _, op := range doc.Structs.Operations {
		if op.Name != "" {
			continue
		}
		out = append(out, LintDiagnostic{
			URI: doc.URI,
			Diagnostic: diag.Diagnostic{
				Message: "anonymous " + op.Kind + " must be named",
				Range:   op.Range,
				Source:  "graphql-linter",
			},
		})
	}
	return out
}
