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

package validate

import (
	"fmt"

	"github.com/kraklabs/graphqlcore/pkg/diag"
	"github.com/kraklabs/graphqlcore/pkg/hir"
	"github.com/kraklabs/graphqlcore/pkg/syntax"
)

// introspectionFields are always valid on the three root operation
// types regardless of what the schema itself declares, matching the
// spec-mandated introspection surface (__schema, __type, __typename).
var introspectionFields = map[string]bool{
	"__schema":   true,
	"__type":     true,
	"__typename": true,
}

// SchemaView is the subset of a merged schema the validator needs: the
// type map and root operation type names. Kept narrow so pkg/validate
// doesn't need to import pkg/schema's full result shape.
type SchemaView struct {
	Types            map[string]hir.TypeDef
	QueryType        string
	MutationType     string
	SubscriptionType string
}

// Document validates one parsed executable document (operations and
// fragments) against schema, resolving fragment spreads via
// allFragments. It never panics: a parse error on the document
// short-circuits validation and returns no diagnostics, per the
// failure-model contract — a document that doesn't parse has nothing
// meaningful to validate yet, and the tolerant parser's own errors
// already surface the problem.
//
// lineOffset shifts every diagnostic's line by that amount, translating
// positions computed against the document's own text (line 0 = the
// document's first line) into the coordinates of whatever file
// ultimately contains it (identity for a plain .graphql file, non-zero
// for an embedded block).
func Document(uri, source string, lineOffset int, schema SchemaView, allFragments map[string]hir.FragmentStructure) []diag.Diagnostic {
	res := syntax.Parse(source)
	if len(res.Errors) > 0 {
		return nil
	}

	li := syntax.NewLineIndex(source)
	doc := syntax.NewDocument(res.Root)
	v := &validator{schema: schema, allFragments: allFragments, li: li, used: map[string]bool{}}

	for _, op := range doc.Operations {
		rootType := rootTypeFor(op.Text, schema)
		if sel := op.Child(syntax.NodeSelectionSet); sel != nil {
			v.walkSelectionSet(sel, rootType)
		}
	}
	for _, frag := range doc.Fragments {
		onType := ""
		if nt := frag.Child(syntax.NodeNamedType); nt != nil {
			onType = nt.Text
			if _, ok := schema.Types[onType]; !ok {
				v.diags = append(v.diags, v.errAt(nt.Range, fmt.Sprintf("unknown type %q in fragment condition", onType), "unknown-type"))
			}
		}
		if sel := frag.Child(syntax.NodeSelectionSet); sel != nil {
			v.walkSelectionSet(sel, onType)
		}
	}

	out := make([]diag.Diagnostic, len(v.diags))
	for i, d := range v.diags {
		out[i] = d.ShiftLines(lineOffset)
	}
	return out
}

// ReferencedFragments re-walks source for fragment spreads and returns
// the set of fragment names spread anywhere in it, inside operations and
// inside fragment definitions alike. The lint framework's unused-fragment
// rule unions these sets across the project's documents to find
// fragments that are never spread.
func ReferencedFragments(source string) map[string]bool {
	res := syntax.Parse(source)
	doc := syntax.NewDocument(res.Root)
	used := map[string]bool{}
	for _, op := range doc.Operations {
		if sel := op.Child(syntax.NodeSelectionSet); sel != nil {
			collectFragmentSpreads(sel, used)
		}
	}
	for _, frag := range doc.Fragments {
		if sel := frag.Child(syntax.NodeSelectionSet); sel != nil {
			collectFragmentSpreads(sel, used)
		}
	}
	return used
}

func collectFragmentSpreads(sel *syntax.Node, used map[string]bool) {
	syntax.Walk(sel, func(n *syntax.Node) bool {
		if n.Kind == syntax.NodeFragmentSpread {
			if name := n.Child(syntax.NodeName); name != nil {
				used[name.Text] = true
			}
		}
		return true
	})
}

func rootTypeFor(opKind string, schema SchemaView) string {
	switch opKind {
	case "mutation":
		return schema.MutationType
	case "subscription":
		return schema.SubscriptionType
	default:
		return schema.QueryType
	}
}

type validator struct {
	schema       SchemaView
	allFragments map[string]hir.FragmentStructure
	li           *syntax.LineIndex
	used         map[string]bool
	diags        []diag.Diagnostic
}

func (v *validator) errAt(br diag.ByteRange, msg, code string) diag.Diagnostic {
	return diag.Diagnostic{
		Severity: diag.Error,
		Message:  msg,
		Range:    v.li.ToRange(br),
		Source:   "graphql-linter",
		Code:     code,
	}
}

// walkSelectionSet validates every selection in sel against typeName's
// fields, recursing into nested selection sets using each field's
// declared return type.
func (v *validator) walkSelectionSet(sel *syntax.Node, typeName string) {
	td, hasType := v.schema.Types[typeName]
	for _, child := range sel.Children {
		switch child.Kind {
		case syntax.NodeField:
			v.walkField(child, td, hasType)
		case syntax.NodeFragmentSpread:
			v.walkFragmentSpread(child)
		case syntax.NodeInlineFragment:
			onType := typeName
			if nt := child.Child(syntax.NodeNamedType); nt != nil {
				onType = nt.Text
				if _, ok := v.schema.Types[onType]; !ok {
					v.diags = append(v.diags, v.errAt(nt.Range, fmt.Sprintf("unknown type %q in inline fragment", onType), "unknown-type"))
					continue
				}
			}
			if inner := child.Child(syntax.NodeSelectionSet); inner != nil {
				v.walkSelectionSet(inner, onType)
			}
		}
	}
}

func (v *validator) walkField(field *syntax.Node, td hir.TypeDef, hasType bool) {
	names := field.ChildrenOf(syntax.NodeName)
	if len(names) == 0 {
		return
	}
	fieldName := names[len(names)-1].Text // alias form puts the real name last
	nameRange := names[len(names)-1].Range

	if fieldName == "__typename" || introspectionFields[fieldName] {
		if inner := field.Child(syntax.NodeSelectionSet); inner != nil {
			v.walkSelectionSet(inner, "")
		}
		return
	}

	if !hasType {
		return // unknown parent type already reported elsewhere
	}

	var matched *hir.FieldSig
	for i := range td.Fields {
		if td.Fields[i].Name == fieldName {
			matched = &td.Fields[i]
			break
		}
	}
	if matched == nil {
		v.diags = append(v.diags, v.errAt(nameRange, fmt.Sprintf("field %q does not exist on type %q", fieldName, td.Name), "unknown-field"))
		return
	}
	if matched.Deprecated {
		v.diags = append(v.diags, diag.Diagnostic{
			Severity: diag.Warning,
			Message:  fmt.Sprintf("field %q is deprecated: %s", fieldName, matched.DeprecReason),
			Range:    v.li.ToRange(nameRange),
			Source:   "graphql-linter",
			Code:     "deprecated-field",
		})
	}

	if inner := field.Child(syntax.NodeSelectionSet); inner != nil {
		v.walkSelectionSet(inner, matched.Type.Name)
	}
}

func (v *validator) walkFragmentSpread(spread *syntax.Node) {
	name := spread.Child(syntax.NodeName)
	if name == nil {
		return
	}
	v.used[name.Text] = true
	if _, ok := v.allFragments[name.Text]; !ok {
		v.diags = append(v.diags, v.errAt(name.Range, fmt.Sprintf("unknown fragment %q", name.Text), "unknown-fragment"))
	}
}
