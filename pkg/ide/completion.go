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

package ide

import (
	"github.com/kraklabs/graphqlcore/pkg/diag"
	"github.com/kraklabs/graphqlcore/pkg/syntax"
	"github.com/kraklabs/graphqlcore/pkg/validate"
)

// CompletionItemKind classifies a completion item for client-side icon
// selection.
type CompletionItemKind int

const (
	CompletionField CompletionItemKind = iota
	CompletionFragmentSpread
	CompletionInlineFragmentKeyword
	CompletionArgument
	CompletionVariable
)

// CompletionItem is one suggested completion.
type CompletionItem struct {
	Label  string
	Detail string
	Kind   CompletionItemKind
}

// Completion resolves context-driven completions at pos: inside a
// selection set on type T, T's fields; after "..." on T, fragments
// whose type condition is assignable to T plus the inline-fragment
// keyword; inside argument parens, the field's argument names; inside a
// variable position, the operation's declared variables.
func Completion(fv FileView, pos diag.Position, proj Project) []CompletionItem {
	loc, ok := locate(fv, pos)
	if !ok {
		return nil
	}

	if items, ok := completeVariableReference(loc, proj); ok {
		return items
	}
	if items, ok := completeArgumentName(loc, proj); ok {
		return items
	}
	if items, ok := completeFragmentSpread(loc, proj); ok {
		return items
	}
	return completeSelectionSetFields(loc, proj)
}

// completeSelectionSetFields offers typeName's fields when pos falls
// inside an open selection set.
func completeSelectionSetFields(loc *located, proj Project) []CompletionItem {
	typeName := WalkTypeStackToOffset(loc.root, loc.blockOffset, proj.Schema)
	td, ok := proj.Schema.Types[typeName]
	if !ok {
		return nil
	}
	out := make([]CompletionItem, 0, len(td.Fields))
	for _, f := range td.Fields {
		out = append(out, CompletionItem{Label: f.Name, Detail: f.Type.String(), Kind: CompletionField})
	}
	return out
}

// completeFragmentSpread offers fragments (and the inline-fragment
// keyword) when the cursor sits right after "...".
func completeFragmentSpread(loc *located, proj Project) ([]CompletionItem, bool) {
	offset := loc.blockOffset
	if offset < 3 || loc.source[offset-3:offset] != "..." {
		return nil, false
	}
	typeName := WalkTypeStackToOffset(loc.root, offset, proj.Schema)
	var out []CompletionItem
	for _, frag := range proj.AllFragments {
		if isAssignable(frag.TypeName, typeName, proj.Schema) {
			out = append(out, CompletionItem{Label: frag.Name, Detail: "fragment on " + frag.TypeName, Kind: CompletionFragmentSpread})
		}
	}
	out = append(out, CompletionItem{Label: "on", Detail: "inline fragment", Kind: CompletionInlineFragmentKeyword})
	return out, true
}

// isAssignable reports whether a selection on parentType may embed a
// fragment/inline-fragment declared on fragType: either they're the
// same type, or fragType is an interface/union parentType implements or
// belongs to.
func isAssignable(fragType, parentType string, schema validate.SchemaView) bool {
	if fragType == parentType {
		return true
	}
	td, ok := schema.Types[parentType]
	if !ok {
		return false
	}
	for _, impl := range td.Implements {
		if impl == fragType {
			return true
		}
	}
	return false
}

func completeArgumentName(loc *located, proj Project) ([]CompletionItem, bool) {
	sym := FindSymbolAtOffset(loc.root, loc.blockOffset)
	if sym == nil {
		return nil, false
	}
	field := enclosingField(sym.Path)
	if field == nil {
		return nil, false
	}
	argsWrapper := field.Child(syntax.NodeToken)
	if argsWrapper == nil || argsWrapper.Text != "arguments" {
		return nil, false
	}
	if loc.blockOffset < argsWrapper.Range.Start || loc.blockOffset > argsWrapper.Range.End {
		return nil, false
	}
	outerSel := selectionSetAfter(sym.Path, field)
	if outerSel == nil {
		return nil, false
	}
	parentType := WalkTypeStackToOffset(loc.root, outerSel.Range.Start, proj.Schema)
	td, ok := proj.Schema.Types[parentType]
	if !ok {
		return nil, false
	}
	names := field.ChildrenOf(syntax.NodeName)
	if len(names) == 0 {
		return nil, false
	}
	fieldName := names[len(names)-1].Text
	for _, f := range td.Fields {
		if f.Name != fieldName {
			continue
		}
		out := make([]CompletionItem, 0, len(f.Args))
		for _, a := range f.Args {
			out = append(out, CompletionItem{Label: a.Name, Detail: a.Type.String(), Kind: CompletionArgument})
		}
		return out, true
	}
	return nil, false
}

func completeVariableReference(loc *located, proj Project) ([]CompletionItem, bool) {
	offset := loc.blockOffset
	if offset < 1 || loc.source[offset-1] != '$' {
		return nil, false
	}
	sym := FindSymbolAtOffset(loc.root, offset-1)
	if sym == nil {
		return nil, false
	}
	op := enclosingOperation(sym.Path)
	if op == nil {
		return nil, false
	}
	defs := op.Child(syntax.NodeToken)
	if defs == nil || defs.Text != "variableDefinitions" {
		return nil, false
	}
	var out []CompletionItem
	for _, vd := range defs.ChildrenOf(syntax.NodeVariableDefinition) {
		name := vd.Child(syntax.NodeName)
		if name == nil {
			continue
		}
		out = append(out, CompletionItem{Label: name.Text, Kind: CompletionVariable})
	}
	return out, true
}
