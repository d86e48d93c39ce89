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
)

// Location is a definition/reference target: a file plus a range in
// that file's own host coordinates. A blank URI means "the file the
// query originated in".
type Location struct {
	URI   string
	Range diag.Range
}

// GotoDefinition resolves the symbol at pos in fv to its defining
// location, per the mapping in the IDE feature layer: a field resolves
// to its field-definition range in whichever schema file declares the
// parent type; a fragment spread to its fragment definition; a type
// name to its schema declaration; a variable reference to the enclosing
// operation's variable definition; an argument name to the field's
// argument definition; an operation name to the operation itself.
func GotoDefinition(fv FileView, pos diag.Position, proj Project) (Location, bool) {
	loc, ok := locate(fv, pos)
	if !ok {
		return Location{}, false
	}
	sym := FindSymbolAtOffset(loc.root, loc.blockOffset)
	if sym == nil {
		return Location{}, false
	}

	switch sym.Kind {
	case SymbolFieldName:
		return definitionForField(loc, sym, proj)
	case SymbolFragmentSpread:
		return definitionForFragmentSpread(sym, proj)
	case SymbolTypeName:
		return definitionForTypeName(sym, proj)
	case SymbolVariableReference:
		return definitionForVariable(loc, sym)
	case SymbolArgumentName:
		return definitionForArgument(loc, sym, proj)
	case SymbolOperationName:
		return definitionForOperation(loc, sym)
	}
	return Location{}, false
}

func definitionForField(loc *located, sym *ResolvedSymbol, proj Project) (Location, bool) {
	field := enclosingField(sym.Path)
	if field == nil {
		return Location{}, false
	}
	outerSel := selectionSetAfter(sym.Path, field)
	if outerSel == nil {
		return Location{}, false
	}
	parentType := WalkTypeStackToOffset(loc.root, outerSel.Range.Start, proj.Schema)
	td, ok := proj.Schema.Types[parentType]
	if !ok {
		return Location{}, false
	}
	names := field.ChildrenOf(syntax.NodeName)
	if len(names) == 0 {
		return Location{}, false
	}
	fieldName := names[len(names)-1].Text
	for _, f := range td.Fields {
		if f.Name == fieldName {
			return Location{URI: td.File, Range: f.NameRange}, true
		}
	}
	return Location{}, false
}

func definitionForFragmentSpread(sym *ResolvedSymbol, proj Project) (Location, bool) {
	name := fragmentSpreadNameNode(sym)
	if name == nil {
		return Location{}, false
	}
	frag, ok := proj.AllFragments[name.Text]
	if !ok {
		return Location{}, false
	}
	return Location{URI: frag.File, Range: frag.NameRange}, true
}

func definitionForTypeName(sym *ResolvedSymbol, proj Project) (Location, bool) {
	td, ok := proj.Schema.Types[sym.Node.Text]
	if !ok {
		return Location{}, false
	}
	return Location{URI: td.File, Range: td.NameRange}, true
}

func definitionForVariable(loc *located, sym *ResolvedSymbol) (Location, bool) {
	op := enclosingOperation(sym.Path)
	if op == nil {
		return Location{}, false
	}
	defs := op.Child(syntax.NodeToken)
	if defs == nil || defs.Text != "variableDefinitions" {
		return Location{}, false
	}
	for _, vd := range defs.ChildrenOf(syntax.NodeVariableDefinition) {
		name := vd.Child(syntax.NodeName)
		if name != nil && name.Text == sym.Node.Text {
			return Location{Range: loc.toHostRange(loc.li.ToRange(vd.Range))}, true
		}
	}
	return Location{}, false
}

func definitionForArgument(loc *located, sym *ResolvedSymbol, proj Project) (Location, bool) {
	field := enclosingField(sym.Path)
	if field == nil {
		return Location{}, false
	}
	outerSel := selectionSetAfter(sym.Path, field)
	if outerSel == nil {
		return Location{}, false
	}
	parentType := WalkTypeStackToOffset(loc.root, outerSel.Range.Start, proj.Schema)
	td, ok := proj.Schema.Types[parentType]
	if !ok {
		return Location{}, false
	}
	names := field.ChildrenOf(syntax.NodeName)
	if len(names) == 0 {
		return Location{}, false
	}
	fieldName := names[len(names)-1].Text
	for _, f := range td.Fields {
		if f.Name != fieldName {
			continue
		}
		for _, a := range f.Args {
			if a.Name == sym.Node.Text {
				return Location{URI: td.File, Range: a.Range}, true
			}
		}
	}
	return Location{}, false
}

func definitionForOperation(loc *located, sym *ResolvedSymbol) (Location, bool) {
	op := enclosingOperation(sym.Path)
	if op == nil {
		return Location{}, false
	}
	return Location{Range: loc.toHostRange(loc.li.ToRange(op.Range))}, true
}

// selectionSetAfter returns the nearest NodeSelectionSet ancestor of
// marker in path that sits strictly outside marker itself — i.e. the
// selection set marker (a field) is selected from, not one nested
// inside it.
func selectionSetAfter(path []*syntax.Node, marker *syntax.Node) *syntax.Node {
	idx := indexOf(path, marker)
	if idx < 0 {
		return nil
	}
	for _, n := range path[idx+1:] {
		if n.Kind == syntax.NodeSelectionSet {
			return n
		}
	}
	return nil
}

func indexOf(path []*syntax.Node, n *syntax.Node) int {
	for i, p := range path {
		if p == n {
			return i
		}
	}
	return -1
}
