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

package syntax

// Document is a typed view over a parsed CST root, splitting its
// definitions by kind so downstream layers (HIR derivation, schema
// merge) don't re-walk the raw node tree themselves.
type Document struct {
	Root *Node

	Operations  []*Node // NodeOperationDefinition
	Fragments   []*Node // NodeFragmentDefinition
	TypeDefs    []*Node // type-system definitions, including extensions
	SchemaDefs  []*Node // NodeSchemaDefinition
}

// NewDocument classifies root's top-level definitions into a Document.
func NewDocument(root *Node) *Document {
	d := &Document{Root: root}
	for _, c := range root.Children {
		switch c.Kind {
		case NodeOperationDefinition:
			d.Operations = append(d.Operations, c)
		case NodeFragmentDefinition:
			d.Fragments = append(d.Fragments, c)
		case NodeSchemaDefinition:
			d.SchemaDefs = append(d.SchemaDefs, c)
		case NodeObjectTypeDefinition, NodeObjectTypeExtension, NodeInterfaceTypeDefinition,
			NodeUnionTypeDefinition, NodeEnumTypeDefinition, NodeScalarTypeDefinition,
			NodeInputObjectTypeDefinition, NodeDirectiveDefinition:
			d.TypeDefs = append(d.TypeDefs, c)
		}
	}
	return d
}

// IsTypeSystemDocument reports whether this document contains any
// type-system definitions — the heuristic the registry's DocumentKind
// classification and the project binder's schema/document partition
// both rely on for files that aren't unambiguously one or the other
// from their extension alone.
func (d *Document) IsTypeSystemDocument() bool {
	return len(d.TypeDefs) > 0 || len(d.SchemaDefs) > 0
}

// IsExecutableDocument reports whether this document contains any
// operations or fragments.
func (d *Document) IsExecutableDocument() bool {
	return len(d.Operations) > 0 || len(d.Fragments) > 0
}

// Walk visits every node in the tree rooted at n, depth-first,
// pre-order, calling visit(n) for each. Shared by HIR derivation and the
// IDE layer's offset-targeted lookups.
func Walk(n *Node, visit func(*Node) bool) {
	if n == nil || !visit(n) {
		return
	}
	for _, c := range n.Children {
		Walk(c, visit)
	}
}

// FindAtOffset returns the innermost node whose range contains offset,
// or nil if offset falls outside root's range entirely. Used by
// goto-definition, hover, and completion to resolve "what's under the
// cursor".
func FindAtOffset(root *Node, offset int) *Node {
	if root == nil || offset < root.Range.Start || offset > root.Range.End {
		return nil
	}
	var best *Node
	Walk(root, func(n *Node) bool {
		if offset < n.Range.Start || offset > n.Range.End {
			return false
		}
		if best == nil || (n.Range.End-n.Range.Start) <= (best.Range.End-best.Range.Start) {
			best = n
		}
		return true
	})
	return best
}
