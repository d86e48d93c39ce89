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

package hir

import (
	"strings"

	"github.com/kraklabs/graphqlcore/pkg/diag"
	"github.com/kraklabs/graphqlcore/pkg/syntax"
)

// blockMultiplier offsets block-local operation/fragment indices so
// that an operation in embedded block 2 never collides with one in
// block 0 or the file's own top-level text (BlockIndex -1), per the
// "block-local indices are offset by a block multiplier" derivation
// rule.
const blockMultiplier = 1000

// FileStructure derives names/signatures/ranges for one file's own text
// plus each of its extracted embedded blocks. li is the host file's
// line index; blocks is empty for a plain .graphql file.
func FileStructure(uri string, li *syntax.LineIndex, root *syntax.Node, blocks []syntax.ExtractedBlock) FileStructureData {
	var out FileStructureData

	doc := syntax.NewDocument(root)
	out.TypeDefs = append(out.TypeDefs, typeDefsFrom(uri, li, doc)...)
	out.Operations = append(out.Operations, operationsFrom(li, doc, -1)...)
	out.Fragments = append(out.Fragments, fragmentsFrom(li, doc, -1)...)

	for i, block := range blocks {
		blockRoot := syntax.Parse(block.Source).Root
		blockDoc := syntax.NewDocument(blockRoot)
		projector := syntax.NewBlockProjector(block, li)

		out.Operations = append(out.Operations, operationsFromProjected(blockDoc, i, projector)...)
		out.Fragments = append(out.Fragments, fragmentsFromProjected(blockDoc, i, projector)...)
	}

	assignFileUniqueIndices(out.Operations, out.Fragments)

	return out
}

// assignFileUniqueIndices stamps each operation/fragment's Index field
// with a file-unique id: (BlockIndex+1)*blockMultiplier plus its
// position within that block's own operation (or fragment) list.
func assignFileUniqueIndices(ops []OperationStructure, frags []FragmentStructure) {
	opPos := map[int]int{}
	for i := range ops {
		b := ops[i].BlockIndex
		ops[i].Index = (b+1)*blockMultiplier + opPos[b]
		opPos[b]++
	}
	fragPos := map[int]int{}
	for i := range frags {
		b := frags[i].BlockIndex
		frags[i].Index = (b+1)*blockMultiplier + fragPos[b]
		fragPos[b]++
	}
}

func typeDefsFrom(uri string, li *syntax.LineIndex, doc *syntax.Document) []TypeDef {
	var out []TypeDef
	for _, n := range doc.TypeDefs {
		td := TypeDef{File: uri, Range: li.ToRange(n.Range), IsExtension: n.Kind == syntax.NodeObjectTypeExtension}
		if name := n.Child(syntax.NodeName); name != nil {
			td.Name = name.Text
			td.NameRange = li.ToRange(name.Range)
		}
		switch n.Kind {
		case syntax.NodeObjectTypeDefinition, syntax.NodeObjectTypeExtension:
			td.Kind = KindObject
			td.Implements = namedTypeTexts(n)
			td.Fields = fieldSigsFrom(li, n)
		case syntax.NodeInterfaceTypeDefinition:
			td.Kind = KindInterface
			td.Implements = namedTypeTexts(n)
			td.Fields = fieldSigsFrom(li, n)
		case syntax.NodeUnionTypeDefinition:
			td.Kind = KindUnion
			td.UnionTypes = namedTypeTexts(n)
		case syntax.NodeEnumTypeDefinition:
			td.Kind = KindEnum
			td.EnumValues = enumValuesFrom(li, n)
		case syntax.NodeScalarTypeDefinition:
			td.Kind = KindScalar
		case syntax.NodeInputObjectTypeDefinition:
			td.Kind = KindInputObject
			td.InputFields = inputValuesFrom(li, n)
		default:
			continue
		}
		out = append(out, td)
	}
	return out
}

func namedTypeTexts(n *syntax.Node) []string {
	var out []string
	for _, c := range n.ChildrenOf(syntax.NodeNamedType) {
		out = append(out, c.Text)
	}
	return out
}

func fieldSigsFrom(li *syntax.LineIndex, typeNode *syntax.Node) []FieldSig {
	var out []FieldSig
	for _, fd := range typeNode.ChildrenOf(syntax.NodeFieldDefinition) {
		sig := FieldSig{Range: li.ToRange(fd.Range)}
		if name := fd.Child(syntax.NodeName); name != nil {
			sig.Name = name.Text
			sig.NameRange = li.ToRange(name.Range)
		}
		if tr := findTypeRefNode(fd.Children); tr != nil {
			sig.Type = UnwrapType(tr)
		}
		if argsNode := findArgsNode(fd.Children); argsNode != nil {
			for _, iv := range argsNode.Children {
				sig.Args = append(sig.Args, argDefFrom(li, iv))
			}
		}
		sig.Deprecated, sig.DeprecReason = extractDeprecated(fd.ChildrenOf(syntax.NodeDirective))
		out = append(out, sig)
	}
	return out
}

func inputValuesFrom(li *syntax.LineIndex, typeNode *syntax.Node) []ArgDef {
	var out []ArgDef
	for _, iv := range typeNode.ChildrenOf(syntax.NodeInputValueDefinition) {
		out = append(out, argDefFrom(li, iv))
	}
	return out
}

func argDefFrom(li *syntax.LineIndex, iv *syntax.Node) ArgDef {
	a := ArgDef{Range: li.ToRange(iv.Range)}
	if name := iv.Child(syntax.NodeName); name != nil {
		a.Name = name.Text
	}
	if tr := findTypeRefNode(iv.Children); tr != nil {
		a.Type = UnwrapType(tr)
	}
	if v := iv.Child(syntax.NodeValue); v != nil {
		a.HasDefault = true
		a.DefaultText = v.Text
	}
	a.Deprecated, a.DeprecReason = extractDeprecated(iv.ChildrenOf(syntax.NodeDirective))
	return a
}

func enumValuesFrom(li *syntax.LineIndex, enumNode *syntax.Node) []EnumVal {
	var out []EnumVal
	for _, ev := range enumNode.ChildrenOf(syntax.NodeEnumValueDefinition) {
		v := EnumVal{Range: li.ToRange(ev.Range)}
		if name := ev.Child(syntax.NodeName); name != nil {
			v.Name = name.Text
		}
		v.Deprecated, v.DeprecReason = extractDeprecated(ev.ChildrenOf(syntax.NodeDirective))
		out = append(out, v)
	}
	return out
}

func extractDeprecated(directives []*syntax.Node) (bool, string) {
	for _, d := range directives {
		name := d.Child(syntax.NodeName)
		if name == nil || name.Text != "deprecated" {
			continue
		}
		reason := "No longer supported"
		for _, argsNode := range d.Children {
			if argsNode.Kind != syntax.NodeToken || argsNode.Text != "arguments" {
				continue
			}
			for _, arg := range argsNode.ChildrenOf(syntax.NodeArgument) {
				if argName := arg.Child(syntax.NodeName); argName != nil && argName.Text == "reason" {
					if v := arg.Child(syntax.NodeValue); v != nil {
						reason = strings.Trim(v.Text, `"`)
					}
				}
			}
		}
		return true, reason
	}
	return false, ""
}

func findTypeRefNode(children []*syntax.Node) *syntax.Node {
	for _, c := range children {
		switch c.Kind {
		case syntax.NodeNamedType, syntax.NodeListType, syntax.NodeNonNullType:
			return c
		}
	}
	return nil
}

func findArgsNode(children []*syntax.Node) *syntax.Node {
	for _, c := range children {
		if c.Kind == syntax.NodeToken && c.Text == "args" {
			return c
		}
	}
	return nil
}

// UnwrapType converts a CST type-reference node into its unwrapped
// TypeRef shape, per the unwrapping rule in the structure-layer
// derivation: NamedType -> (name, false, false); NonNull(Named) ->
// (name, false, true); NonNull(List(T)) -> list form with the outer
// non-null flag set; List(NonNull(Named)) -> (name, true, false, true).
// Doubly-nested lists collapse to a single list level around the
// innermost named type, since the IDE layer never needs list-of-list
// precision.
func UnwrapType(n *syntax.Node) TypeRef {
	switch n.Kind {
	case syntax.NodeNonNullType:
		inner := n.Children[0]
		if inner.Kind == syntax.NodeListType {
			r := unwrapListType(inner)
			r.IsNonNull = true
			return r
		}
		r := UnwrapType(inner)
		r.IsNonNull = true
		return r
	case syntax.NodeListType:
		return unwrapListType(n)
	case syntax.NodeNamedType:
		return TypeRef{Name: n.Text}
	default:
		return TypeRef{}
	}
}

func unwrapListType(listNode *syntax.Node) TypeRef {
	inner := listNode.Children[0]
	return TypeRef{Name: baseTypeName(inner), IsList: true, ItemNonNull: inner.Kind == syntax.NodeNonNullType}
}

func baseTypeName(n *syntax.Node) string {
	switch n.Kind {
	case syntax.NodeNonNullType, syntax.NodeListType:
		if len(n.Children) > 0 {
			return baseTypeName(n.Children[0])
		}
		return ""
	case syntax.NodeNamedType:
		return n.Text
	default:
		return ""
	}
}

func operationsFrom(li *syntax.LineIndex, doc *syntax.Document, blockIndex int) []OperationStructure {
	var out []OperationStructure
	for _, n := range doc.Operations {
		out = append(out, operationStructureOf(li.ToRange, n, blockIndex))
	}
	return out
}

func operationsFromProjected(doc *syntax.Document, blockIndex int, proj *syntax.BlockProjector) []OperationStructure {
	var out []OperationStructure
	for _, n := range doc.Operations {
		out = append(out, operationStructureOf(proj.ProjectRange, n, blockIndex))
	}
	return out
}

func operationStructureOf(toRange func(diag.ByteRange) diag.Range, n *syntax.Node, blockIndex int) OperationStructure {
	op := OperationStructure{Kind: n.Text, Range: toRange(n.Range), BlockIndex: blockIndex}
	if name := n.Child(syntax.NodeName); name != nil {
		op.Name = name.Text
		op.NameRange = toRange(name.Range)
	}
	for _, vd := range n.Children {
		if vd.Kind != syntax.NodeToken || vd.Text != "variableDefinitions" {
			continue
		}
		for _, v := range vd.ChildrenOf(syntax.NodeVariableDefinition) {
			vs := VarSig{Range: toRange(v.Range)}
			if name := v.Child(syntax.NodeName); name != nil {
				vs.Name = name.Text
			}
			if tr := findTypeRefNode(v.Children); tr != nil {
				vs.Type = UnwrapType(tr)
			}
			if val := v.Child(syntax.NodeValue); val != nil {
				vs.HasDefault = true
			}
			op.Variables = append(op.Variables, vs)
		}
	}
	return op
}

func fragmentsFrom(li *syntax.LineIndex, doc *syntax.Document, blockIndex int) []FragmentStructure {
	var out []FragmentStructure
	for _, n := range doc.Fragments {
		out = append(out, fragmentStructureOf(li.ToRange, n, blockIndex))
	}
	return out
}

func fragmentsFromProjected(doc *syntax.Document, blockIndex int, proj *syntax.BlockProjector) []FragmentStructure {
	var out []FragmentStructure
	for _, n := range doc.Fragments {
		out = append(out, fragmentStructureOf(proj.ProjectRange, n, blockIndex))
	}
	return out
}

func fragmentStructureOf(toRange func(diag.ByteRange) diag.Range, n *syntax.Node, blockIndex int) FragmentStructure {
	fs := FragmentStructure{Range: toRange(n.Range), BlockIndex: blockIndex}
	if name := n.Child(syntax.NodeName); name != nil {
		fs.Name = name.Text
		fs.NameRange = toRange(name.Range)
	}
	if onType := n.Child(syntax.NodeNamedType); onType != nil {
		fs.TypeName = onType.Text
	}
	return fs
}
