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

import "github.com/kraklabs/graphqlcore/pkg/diag"

// NodeKind classifies a CST node.
type NodeKind int

const (
	NodeDocument NodeKind = iota
	NodeOperationDefinition
	NodeFragmentDefinition
	NodeSchemaDefinition
	NodeObjectTypeDefinition
	NodeObjectTypeExtension
	NodeInterfaceTypeDefinition
	NodeUnionTypeDefinition
	NodeEnumTypeDefinition
	NodeScalarTypeDefinition
	NodeInputObjectTypeDefinition
	NodeDirectiveDefinition
	NodeFieldDefinition
	NodeInputValueDefinition
	NodeEnumValueDefinition
	NodeSelectionSet
	NodeField
	NodeFragmentSpread
	NodeInlineFragment
	NodeArgument
	NodeVariableDefinition
	NodeVariable
	NodeNamedType
	NodeListType
	NodeNonNullType
	NodeDirective
	NodeName
	NodeValue
	NodeDescription
	NodeToken
	NodeError
)

// Node is one entry in the error-tolerant GraphQL concrete syntax tree.
// Every node carries a byte range so callers (HIR derivation, IDE
// features) can always answer "what source span does this correspond
// to", even for partially-recovered trees.
//
// This tree is deliberately lighter than a fully lossless/trivia-
// preserving CST (see DESIGN.md): whitespace and comments are consumed
// by the lexer as "ignored" tokens and are not represented as nodes.
// Every significant construct still gets a precise range, which is all
// the HIR and IDE layers ever consult.
type Node struct {
	Kind     NodeKind
	Range    diag.ByteRange
	Children []*Node
	Text     string // set on leaf nodes: NodeName, NodeValue, NodeToken
}

// Child returns the first child of the given kind, or nil.
func (n *Node) Child(kind NodeKind) *Node {
	for _, c := range n.Children {
		if c.Kind == kind {
			return c
		}
	}
	return nil
}

// ChildrenOf returns every direct child of the given kind.
func (n *Node) ChildrenOf(kind NodeKind) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

// ParseError is a syntax error recovered during parsing. Diagnostic
// conversion (byte range -> line/column) happens at the pkg/diag
// boundary, not here.
type ParseError struct {
	Message string
	Range   diag.ByteRange
}

// ParseResult is the output of parsing one GraphQL source text: a best-
// effort CST root plus any recovered errors. Root is never nil, even for
// completely unparseable input (parse totality).
type ParseResult struct {
	Root   *Node
	Errors []ParseError
}
