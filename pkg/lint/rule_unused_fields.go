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
	"github.com/kraklabs/graphqlcore/pkg/hir"
	"github.com/kraklabs/graphqlcore/pkg/syntax"
	"github.com/kraklabs/graphqlcore/pkg/validate"
)

// introspectionTypes are never flagged by unused_fields: their fields
// are reachable through introspection queries the project's own
// documents typically never spell out.
var introspectionTypes = map[string]bool{
	"__Schema": true, "__Type": true, "__Field": true, "__InputValue": true,
	"__EnumValue": true, "__Directive": true, "__TypeKind": true, "__DirectiveLocation": true,
}

// UnusedFields flags object/interface fields that no document, anywhere
// in the project, ever selects. Root operation types (Query/Mutation/
// Subscription, or whatever the schema names them) and introspection
// types are exempt, since a root field's only "caller" may be an
// external client the project can't see.
type UnusedFields struct{}

func (UnusedFields) Name() string                 { return "unused_fields" }
func (UnusedFields) Description() string          { return "schema object/interface fields never selected anywhere" }
func (UnusedFields) DefaultSeverity() diag.Severity { return diag.Warning }

func (r UnusedFields) CheckProject(files ProjectFiles) map[string][]LintDiagnostic {
	rootTypes := map[string]bool{
		files.Schema.QueryType:        true,
		files.Schema.MutationType:     true,
		files.Schema.SubscriptionType: true,
	}

	used := map[string]map[string]bool{} // typeName -> fieldName -> used
	for _, doc := range files.Documents {
		markUsedFields(doc.Source, files.Schema, used)
	}

	out := map[string][]LintDiagnostic{}
	typeNames := make([]string, 0, len(files.Schema.Types))
	for name := range files.Schema.Types {
		typeNames = append(typeNames, name)
	}
	sort.Strings(typeNames)

	for _, typeName := range typeNames {
		td := files.Schema.Types[typeName]
		if rootTypes[typeName] || introspectionTypes[typeName] {
			continue
		}
		if td.Kind != hir.KindObject && td.Kind != hir.KindInterface {
			continue
		}
		for _, f := range td.Fields {
			if used[typeName][f.Name] {
				continue
			}
			out[td.File] = append(out[td.File], LintDiagnostic{
				URI: td.File,
				Diagnostic: diag.Diagnostic{
					Message: fmt.Sprintf("field %q on type %q is never selected in the project", f.Name, typeName),
					Range:   f.NameRange,
					Source:  "graphql-linter",
				},
			})
		}
	}
	return out
}

// markUsedFields walks one document's operations and fragments and
// records every (type, field) pair it selects.
func markUsedFields(source string, schema validate.SchemaView, used map[string]map[string]bool) {
	res := syntax.Parse(source)
	if len(res.Errors) > 0 {
		return
	}
	d := syntax.NewDocument(res.Root)
	for _, op := range d.Operations {
		root := rootTypeForKind(op.Text, schema)
		if sel := op.Child(syntax.NodeSelectionSet); sel != nil {
			walkUsage(sel, root, schema, used)
		}
	}
	for _, frag := range d.Fragments {
		onType := ""
		if nt := frag.Child(syntax.NodeNamedType); nt != nil {
			onType = nt.Text
		}
		if sel := frag.Child(syntax.NodeSelectionSet); sel != nil {
			walkUsage(sel, onType, schema, used)
		}
	}
}

func walkUsage(sel *syntax.Node, typeName string, schema validate.SchemaView, used map[string]map[string]bool) {
	td, hasType := schema.Types[typeName]
	for _, child := range sel.Children {
		switch child.Kind {
		case syntax.NodeField:
			names := child.ChildrenOf(syntax.NodeName)
			if len(names) == 0 {
				continue
			}
			fieldName := names[len(names)-1].Text
			if used[typeName] == nil {
				used[typeName] = map[string]bool{}
			}
			used[typeName][fieldName] = true

			if !hasType {
				continue
			}
			for i := range td.Fields {
				if td.Fields[i].Name == fieldName {
					if inner := child.Child(syntax.NodeSelectionSet); inner != nil {
						walkUsage(inner, td.Fields[i].Type.Name, schema, used)
					}
					break
				}
			}
		case syntax.NodeInlineFragment:
			onType := typeName
			if nt := child.Child(syntax.NodeNamedType); nt != nil {
				onType = nt.Text
			}
			if inner := child.Child(syntax.NodeSelectionSet); inner != nil {
				walkUsage(inner, onType, schema, used)
			}
		}
	}
}
