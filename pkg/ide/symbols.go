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
	"strings"

	"github.com/kraklabs/graphqlcore/pkg/diag"
	"github.com/kraklabs/graphqlcore/pkg/syntax"
)

// SymbolTreeKind classifies a DocumentSymbol / WorkspaceSymbol entry.
type SymbolTreeKind int

const (
	DocSymbolOperation SymbolTreeKind = iota
	DocSymbolFragment
	DocSymbolType
	DocSymbolField
	DocSymbolFragmentSpreadRef
)

// DocumentSymbol is one entry in a file's hierarchical outline: a full
// range (declaration plus body) and a selection range (just the name),
// per the LSP document-symbol shape.
type DocumentSymbol struct {
	Name           string
	Kind           SymbolTreeKind
	Range          diag.Range
	SelectionRange diag.Range
	Children       []DocumentSymbol
}

// DocumentSymbols builds fv's outline in a single pass over each
// region's tree: every type/operation/fragment definition, with its
// fields (and nested selections) as children. Pre-computing the whole
// tree in one walk, rather than re-deriving each field's ancestry on
// demand, is what keeps this from degrading to the naive O(n^3) an LSP
// client would otherwise force with back-to-back document-symbol
// requests on a large generated schema.
func DocumentSymbols(fv FileView) []DocumentSymbol {
	var out []DocumentSymbol
	for _, loc := range regionsOf(fv) {
		doc := syntax.NewDocument(loc.root)
		for _, op := range doc.Operations {
			out = append(out, documentSymbolForOperation(op, loc))
		}
		for _, frag := range doc.Fragments {
			out = append(out, documentSymbolForFragment(frag, loc))
		}
		for _, td := range doc.TypeDefs {
			out = append(out, documentSymbolForTypeDef(td, loc))
		}
	}
	return out
}

func documentSymbolForOperation(op *syntax.Node, loc *located) DocumentSymbol {
	name := op.Child(syntax.NodeName)
	displayName, selRange := op.Text, loc.toHostRange(loc.li.ToRange(op.Range))
	if name != nil {
		displayName = name.Text
		selRange = loc.toHostRange(loc.li.ToRange(name.Range))
	}
	sym := DocumentSymbol{
		Name:           displayName,
		Kind:           DocSymbolOperation,
		Range:          loc.toHostRange(loc.li.ToRange(op.Range)),
		SelectionRange: selRange,
	}
	if sel := op.Child(syntax.NodeSelectionSet); sel != nil {
		sym.Children = selectionSymbols(sel, loc)
	}
	return sym
}

func documentSymbolForFragment(frag *syntax.Node, loc *located) DocumentSymbol {
	name := frag.Child(syntax.NodeName)
	displayName, selRange := "", loc.toHostRange(loc.li.ToRange(frag.Range))
	if name != nil {
		displayName = name.Text
		selRange = loc.toHostRange(loc.li.ToRange(name.Range))
	}
	sym := DocumentSymbol{
		Name:           displayName,
		Kind:           DocSymbolFragment,
		Range:          loc.toHostRange(loc.li.ToRange(frag.Range)),
		SelectionRange: selRange,
	}
	if sel := frag.Child(syntax.NodeSelectionSet); sel != nil {
		sym.Children = selectionSymbols(sel, loc)
	}
	return sym
}

func selectionSymbols(sel *syntax.Node, loc *located) []DocumentSymbol {
	var out []DocumentSymbol
	for _, child := range sel.Children {
		switch child.Kind {
		case syntax.NodeField:
			names := child.ChildrenOf(syntax.NodeName)
			if len(names) == 0 {
				continue
			}
			nameNode := names[len(names)-1]
			sym := DocumentSymbol{
				Name:           nameNode.Text,
				Kind:           DocSymbolField,
				Range:          loc.toHostRange(loc.li.ToRange(child.Range)),
				SelectionRange: loc.toHostRange(loc.li.ToRange(nameNode.Range)),
			}
			if inner := child.Child(syntax.NodeSelectionSet); inner != nil {
				sym.Children = selectionSymbols(inner, loc)
			}
			out = append(out, sym)
		case syntax.NodeInlineFragment:
			if inner := child.Child(syntax.NodeSelectionSet); inner != nil {
				out = append(out, selectionSymbols(inner, loc)...)
			}
		case syntax.NodeFragmentSpread:
			name := child.Child(syntax.NodeName)
			if name == nil {
				continue
			}
			out = append(out, DocumentSymbol{
				Name:           "..." + name.Text,
				Kind:           DocSymbolFragmentSpreadRef,
				Range:          loc.toHostRange(loc.li.ToRange(child.Range)),
				SelectionRange: loc.toHostRange(loc.li.ToRange(name.Range)),
			})
		}
	}
	return out
}

func documentSymbolForTypeDef(td *syntax.Node, loc *located) DocumentSymbol {
	name := td.Child(syntax.NodeName)
	displayName, selRange := "", loc.toHostRange(loc.li.ToRange(td.Range))
	if name != nil {
		displayName = name.Text
		selRange = loc.toHostRange(loc.li.ToRange(name.Range))
	}
	sym := DocumentSymbol{
		Name:           displayName,
		Kind:           DocSymbolType,
		Range:          loc.toHostRange(loc.li.ToRange(td.Range)),
		SelectionRange: selRange,
	}
	for _, fd := range td.ChildrenOf(syntax.NodeFieldDefinition) {
		fname := fd.Child(syntax.NodeName)
		if fname == nil {
			continue
		}
		sym.Children = append(sym.Children, DocumentSymbol{
			Name:           fname.Text,
			Kind:           DocSymbolField,
			Range:          loc.toHostRange(loc.li.ToRange(fd.Range)),
			SelectionRange: loc.toHostRange(loc.li.ToRange(fname.Range)),
		})
	}
	for _, ev := range td.ChildrenOf(syntax.NodeEnumValueDefinition) {
		ename := ev.Child(syntax.NodeName)
		if ename == nil {
			continue
		}
		sym.Children = append(sym.Children, DocumentSymbol{
			Name:           ename.Text,
			Kind:           DocSymbolField,
			Range:          loc.toHostRange(loc.li.ToRange(ev.Range)),
			SelectionRange: loc.toHostRange(loc.li.ToRange(ename.Range)),
		})
	}
	for _, iv := range td.ChildrenOf(syntax.NodeInputValueDefinition) {
		iname := iv.Child(syntax.NodeName)
		if iname == nil {
			continue
		}
		sym.Children = append(sym.Children, DocumentSymbol{
			Name:           iname.Text,
			Kind:           DocSymbolField,
			Range:          loc.toHostRange(loc.li.ToRange(iv.Range)),
			SelectionRange: loc.toHostRange(loc.li.ToRange(iname.Range)),
		})
	}
	return sym
}

// WorkspaceSymbol is a project-wide symbol match.
type WorkspaceSymbol struct {
	Name     string
	Kind     SymbolTreeKind
	Location Location
}

// WorkspaceSymbols case-insensitively substring-matches query against
// every schema type, fragment, and named operation in proj.
func WorkspaceSymbols(query string, proj Project) []WorkspaceSymbol {
	q := strings.ToLower(query)
	var out []WorkspaceSymbol
	for name, td := range proj.Schema.Types {
		if strings.Contains(strings.ToLower(name), q) {
			out = append(out, WorkspaceSymbol{Name: name, Kind: DocSymbolType, Location: Location{URI: td.File, Range: td.NameRange}})
		}
	}
	for name, frag := range proj.AllFragments {
		if strings.Contains(strings.ToLower(name), q) {
			out = append(out, WorkspaceSymbol{Name: name, Kind: DocSymbolFragment, Location: Location{URI: frag.File, Range: frag.NameRange}})
		}
	}
	for _, fv := range proj.Documents {
		for _, loc := range regionsOf(fv) {
			doc := syntax.NewDocument(loc.root)
			for _, op := range doc.Operations {
				name := op.Child(syntax.NodeName)
				if name == nil || !strings.Contains(strings.ToLower(name.Text), q) {
					continue
				}
				out = append(out, WorkspaceSymbol{
					Name:     name.Text,
					Kind:     DocSymbolOperation,
					Location: Location{URI: fv.URI, Range: loc.toHostRange(loc.li.ToRange(name.Range))},
				})
			}
		}
	}
	return out
}
