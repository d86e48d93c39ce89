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
	"fmt"
	"strings"

	"github.com/kraklabs/graphqlcore/pkg/diag"
	"github.com/kraklabs/graphqlcore/pkg/hir"
	"github.com/kraklabs/graphqlcore/pkg/syntax"
)

// HoverInfo is the rendered hover text for a symbol: a type signature
// plus, for fields, an argument list and return type.
type HoverInfo struct {
	Signature string
	Range     diag.Range
}

// Hover returns the hover text for the symbol at pos, or ok=false if
// nothing hoverable is there.
func Hover(fv FileView, pos diag.Position, proj Project) (HoverInfo, bool) {
	loc, ok := locate(fv, pos)
	if !ok {
		return HoverInfo{}, false
	}
	sym := FindSymbolAtOffset(loc.root, loc.blockOffset)
	if sym == nil {
		return HoverInfo{}, false
	}

	switch sym.Kind {
	case SymbolFieldName:
		field := enclosingField(sym.Path)
		if field == nil {
			return HoverInfo{}, false
		}
		outerSel := selectionSetAfter(sym.Path, field)
		if outerSel == nil {
			return HoverInfo{}, false
		}
		parentType := WalkTypeStackToOffset(loc.root, outerSel.Range.Start, proj.Schema)
		td, ok := proj.Schema.Types[parentType]
		if !ok {
			return HoverInfo{}, false
		}
		fieldName := sym.Node.Text
		for _, f := range td.Fields {
			if f.Name == fieldName {
				return HoverInfo{Signature: renderField(f), Range: loc.toHostRange(loc.li.ToRange(sym.Node.Range))}, true
			}
		}
	case SymbolTypeName:
		if td, ok := proj.Schema.Types[sym.Node.Text]; ok {
			return HoverInfo{Signature: renderTypeHeader(td), Range: loc.toHostRange(loc.li.ToRange(sym.Node.Range))}, true
		}
	case SymbolFragmentSpread:
		name := fragmentSpreadNameNode(sym)
		if name == nil {
			return HoverInfo{}, false
		}
		if frag, ok := proj.AllFragments[name.Text]; ok {
			return HoverInfo{Signature: fmt.Sprintf("fragment %s on %s", frag.Name, frag.TypeName), Range: loc.toHostRange(loc.li.ToRange(name.Range))}, true
		}
	case SymbolOperationName:
		op := enclosingOperation(sym.Path)
		if op == nil {
			return HoverInfo{}, false
		}
		return HoverInfo{Signature: renderOperation(op), Range: loc.toHostRange(loc.li.ToRange(sym.Node.Range))}, true
	case SymbolVariableReference:
		op := enclosingOperation(sym.Path)
		if op == nil {
			return HoverInfo{}, false
		}
		defs := op.Child(syntax.NodeToken)
		if defs == nil || defs.Text != "variableDefinitions" {
			return HoverInfo{}, false
		}
		for _, vd := range defs.ChildrenOf(syntax.NodeVariableDefinition) {
			name := vd.Child(syntax.NodeName)
			if name == nil || name.Text != sym.Node.Text {
				continue
			}
			typeText := ""
			if tr := variableTypeNode(vd.Children); tr != nil {
				typeText = hir.UnwrapType(tr).String()
			}
			return HoverInfo{Signature: fmt.Sprintf("$%s: %s", name.Text, typeText), Range: loc.toHostRange(loc.li.ToRange(sym.Node.Range))}, true
		}
	case SymbolArgumentName:
		field := enclosingField(sym.Path)
		if field == nil {
			return HoverInfo{}, false
		}
		outerSel := selectionSetAfter(sym.Path, field)
		if outerSel == nil {
			return HoverInfo{}, false
		}
		parentType := WalkTypeStackToOffset(loc.root, outerSel.Range.Start, proj.Schema)
		td, ok := proj.Schema.Types[parentType]
		if !ok {
			return HoverInfo{}, false
		}
		names := field.ChildrenOf(syntax.NodeName)
		if len(names) == 0 {
			return HoverInfo{}, false
		}
		fieldName := names[len(names)-1].Text
		for _, f := range td.Fields {
			if f.Name != fieldName {
				continue
			}
			for _, a := range f.Args {
				if a.Name == sym.Node.Text {
					return HoverInfo{Signature: fmt.Sprintf("%s: %s", a.Name, a.Type.String()), Range: loc.toHostRange(loc.li.ToRange(sym.Node.Range))}, true
				}
			}
		}
	}
	return HoverInfo{}, false
}

func renderOperation(op *syntax.Node) string {
	var b strings.Builder
	b.WriteString(op.Text)
	if name := op.Child(syntax.NodeName); name != nil {
		b.WriteString(" ")
		b.WriteString(name.Text)
	}
	defs := op.Child(syntax.NodeToken)
	if defs == nil || defs.Text != "variableDefinitions" {
		return b.String()
	}
	vars := defs.ChildrenOf(syntax.NodeVariableDefinition)
	if len(vars) == 0 {
		return b.String()
	}
	b.WriteString("(")
	for i, vd := range vars {
		if i > 0 {
			b.WriteString(", ")
		}
		name := vd.Child(syntax.NodeName)
		if name != nil {
			b.WriteString("$")
			b.WriteString(name.Text)
		}
		if tr := variableTypeNode(vd.Children); tr != nil {
			b.WriteString(": ")
			b.WriteString(hir.UnwrapType(tr).String())
		}
	}
	b.WriteString(")")
	return b.String()
}

// variableTypeNode finds the NodeNamedType/NodeListType/NodeNonNullType
// child of a variable definition, mirroring how the structural layer
// locates the same node to derive a VarSig's Type.
func variableTypeNode(children []*syntax.Node) *syntax.Node {
	for _, c := range children {
		switch c.Kind {
		case syntax.NodeNamedType, syntax.NodeListType, syntax.NodeNonNullType:
			return c
		}
	}
	return nil
}

func renderField(f hir.FieldSig) string {
	var b strings.Builder
	b.WriteString(f.Name)
	if len(f.Args) > 0 {
		b.WriteString("(")
		for i, a := range f.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(a.Name)
			b.WriteString(": ")
			b.WriteString(a.Type.String())
		}
		b.WriteString(")")
	}
	b.WriteString(": ")
	b.WriteString(f.Type.String())
	if f.Deprecated {
		b.WriteString(" @deprecated")
		if f.DeprecReason != "" {
			b.WriteString(fmt.Sprintf("(reason: %q)", f.DeprecReason))
		}
	}
	return b.String()
}

func renderTypeHeader(td hir.TypeDef) string {
	switch td.Kind {
	case hir.KindObject:
		return "type " + td.Name
	case hir.KindInterface:
		return "interface " + td.Name
	case hir.KindUnion:
		return "union " + td.Name
	case hir.KindEnum:
		return "enum " + td.Name
	case hir.KindScalar:
		return "scalar " + td.Name
	case hir.KindInputObject:
		return "input " + td.Name
	default:
		return td.Name
	}
}
