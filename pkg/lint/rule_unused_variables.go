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
)

// UnusedVariables flags operation variables that are declared but never
// referenced anywhere in the operation's selection set, arguments, or
// directives, offering a fix that deletes the unused declaration together
// with the comma separating it from the previous declaration.
type UnusedVariables struct{}

func (UnusedVariables) Name() string                 { return "unused_variables" }
func (UnusedVariables) Description() string          { return "variables declared in an operation must be referenced" }
func (UnusedVariables) DefaultSeverity() diag.Severity { return diag.Warning }

func (r UnusedVariables) CheckDocument(doc Document) []LintDiagnostic {
	res := syntax.Parse(doc.Source)
	if len(res.Errors) > 0 {
		return nil
	}
	li := syntax.NewLineIndex(doc.Source)
	d := syntax.NewDocument(res.Root)

	var out []LintDiagnostic
	for _, op := range d.Operations {
		defsWrapper := op.Child(syntax.NodeToken)
		if defsWrapper == nil || defsWrapper.Text != "variableDefinitions" {
			continue
		}
		used := map[string]bool{}
		if sel := op.Child(syntax.NodeSelectionSet); sel != nil {
			collectVariableUses(sel, used)
		}
		for _, dir := range op.ChildrenOf(syntax.NodeDirective) {
			collectVariableUses(dir, used)
		}

		for _, vd := range defsWrapper.ChildrenOf(syntax.NodeVariableDefinition) {
			name := vd.Child(syntax.NodeName)
			if name == nil || used[name.Text] {
				continue
			}
			fixRange := vd.Range
			j := fixRange.Start
			for j > 0 && (doc.Source[j-1] == ' ' || doc.Source[j-1] == '\t') {
				j--
			}
			if j > 0 && doc.Source[j-1] == ',' {
				fixRange.Start = j - 1
			}
			out = append(out, LintDiagnostic{
				URI: doc.URI,
				Diagnostic: diag.Diagnostic{
					Message:   fmt.Sprintf("variable $%s is never used", name.Text),
					Range:     li.ToRange(vd.Range),
					ByteRange: vd.Range,
					Source:    "graphql-linter",
					Fix: &diag.CodeFix{
						Label: fmt.Sprintf("Remove unused variable $%s", name.Text),
						Edits: []diag.TextEdit{{ByteRange: fixRange, NewText: ""}},
					},
				},
			})
		}
	}
	return out
}

// collectVariableUses walks n for every NodeVariable reference (a value
// position's "$name") and records its name as used.
func collectVariableUses(n *syntax.Node, used map[string]bool) {
	syntax.Walk(n, func(child *syntax.Node) bool {
		if child.Kind == syntax.NodeVariable {
			used[child.Text] = true
		}
		return true
	})
}
