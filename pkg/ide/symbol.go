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

import "github.com/kraklabs/graphqlcore/pkg/syntax"

// SymbolKind classifies what's under the cursor for goto-definition,
// hover, and completion.
type SymbolKind int

const (
	SymbolUnknown SymbolKind = iota
	SymbolFieldName
	SymbolFragmentSpread
	SymbolTypeName
	SymbolOperationName
	SymbolVariableReference
	SymbolArgumentName
)

// ResolvedSymbol is what's under the cursor, plus the node chain from
// root down to it (path[0] is the innermost node), so callers can walk
// upward — e.g. goto-definition for a field needs the enclosing
// selection set to resolve the parent type.
type ResolvedSymbol struct {
	Kind SymbolKind
	Node *syntax.Node
	Path []*syntax.Node
}

// FindSymbolAtOffset walks root to the innermost node covering offset
// and classifies it using its ancestor chain.
func FindSymbolAtOffset(root *syntax.Node, offset int) *ResolvedSymbol {
	path := findPathToOffset(root, offset)
	if len(path) == 0 {
		return nil
	}
	node := path[0]
	return &ResolvedSymbol{Kind: classify(path), Node: node, Path: path}
}

// findPathToOffset returns the ancestor chain from the innermost node
// containing offset (index 0) up to root (last index), mirroring
// syntax.FindAtOffset's node-selection rule but retaining ancestry,
// which that function discards.
func findPathToOffset(root *syntax.Node, offset int) []*syntax.Node {
	if root == nil || offset < root.Range.Start || offset > root.Range.End {
		return nil
	}
	for _, c := range root.Children {
		if path := findPathToOffset(c, offset); path != nil {
			return append(path, root)
		}
	}
	return []*syntax.Node{root}
}

func classify(path []*syntax.Node) SymbolKind {
	node := path[0]
	parent := ancestor(path, 1)

	switch node.Kind {
	case syntax.NodeName:
		if parent == nil {
			return SymbolUnknown
		}
		switch parent.Kind {
		case syntax.NodeField:
			return SymbolFieldName
		case syntax.NodeArgument:
			return SymbolArgumentName
		case syntax.NodeOperationDefinition:
			return SymbolOperationName
		case syntax.NodeFragmentSpread:
			return SymbolFragmentSpread
		}
		return SymbolUnknown
	case syntax.NodeNamedType:
		return SymbolTypeName
	case syntax.NodeFragmentSpread:
		return SymbolFragmentSpread
	case syntax.NodeVariable:
		return SymbolVariableReference
	}

	// The cursor may sit just inside a composite node (e.g. right after
	// "..." before the fragment name is typed); fall back to the nearest
	// classifiable ancestor.
	for i := 1; i < len(path); i++ {
		switch path[i].Kind {
		case syntax.NodeFragmentSpread:
			return SymbolFragmentSpread
		case syntax.NodeField:
			return SymbolFieldName
		}
	}
	return SymbolUnknown
}

func ancestor(path []*syntax.Node, i int) *syntax.Node {
	if i >= len(path) {
		return nil
	}
	return path[i]
}

// fragmentSpreadNameNode returns the NodeName child identifying a
// SymbolFragmentSpread symbol's target, handling both forms classify
// can report: sym.Node itself being the spread's Name (cursor on the
// name text) or sym.Node being the FragmentSpread node (cursor on
// "..." before a name has been typed).
func fragmentSpreadNameNode(sym *ResolvedSymbol) *syntax.Node {
	if sym.Node.Kind == syntax.NodeName {
		return sym.Node
	}
	return sym.Node.Child(syntax.NodeName)
}
