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
	"sort"

	"github.com/kraklabs/graphqlcore/pkg/diag"
	"github.com/kraklabs/graphqlcore/pkg/syntax"
	"github.com/kraklabs/graphqlcore/pkg/validate"
)

// SemanticTokenKind classifies a SemanticToken for client-side coloring.
type SemanticTokenKind int

const (
	TokenKeyword SemanticTokenKind = iota
	TokenTypeName
	TokenField
	TokenFragmentSpreadName
)

// SemanticToken is one classified span, ready for LSP semantic-token
// delta encoding once sorted.
type SemanticToken struct {
	Range      diag.Range
	Kind       SemanticTokenKind
	Deprecated bool
}

const fragmentKeywordLen = len("fragment")

// SemanticTokens classifies every keyword, type name, selected field
// (marked deprecated when the schema says so), and fragment-spread
// identifier in fv, sorted by (line, column) ascending as LSP requires.
func SemanticTokens(fv FileView, schema validate.SchemaView) []SemanticToken {
	var out []SemanticToken
	for _, loc := range regionsOf(fv) {
		doc := syntax.NewDocument(loc.root)

		syntax.Walk(loc.root, func(n *syntax.Node) bool {
			if n.Kind == syntax.NodeNamedType {
				out = append(out, SemanticToken{Range: loc.toHostRange(loc.li.ToRange(n.Range)), Kind: TokenTypeName})
			}
			return true
		})

		for _, op := range doc.Operations {
			if kw, ok := keywordToken(op, len(op.Text), loc); ok {
				out = append(out, kw)
			}
			if sel := op.Child(syntax.NodeSelectionSet); sel != nil {
				walkFieldTokens(sel, rootTypeFor(op.Text, schema), schema, loc, &out)
			}
		}
		for _, frag := range doc.Fragments {
			if kw, ok := keywordToken(frag, fragmentKeywordLen, loc); ok {
				out = append(out, kw)
			}
			onType := ""
			if nt := frag.Child(syntax.NodeNamedType); nt != nil {
				onType = nt.Text
			}
			if sel := frag.Child(syntax.NodeSelectionSet); sel != nil {
				walkFieldTokens(sel, onType, schema, loc, &out)
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Range.Start.Less(out[j].Range.Start)
	})
	return out
}

// keywordToken reports the leading keyword token of a definition node
// whose Range.Start is the keyword's own start, true only when the
// keyword is actually present in source (not an anonymous operation).
func keywordToken(def *syntax.Node, keywordLen int, loc *located) (SemanticToken, bool) {
	firstChildStart := def.Range.End
	if len(def.Children) > 0 {
		firstChildStart = def.Children[0].Range.Start
	}
	if firstChildStart <= def.Range.Start || keywordLen == 0 {
		return SemanticToken{}, false
	}
	span := diag.ByteRange{Start: def.Range.Start, End: def.Range.Start + keywordLen}
	return SemanticToken{Range: loc.toHostRange(loc.li.ToRange(span)), Kind: TokenKeyword}, true
}

func walkFieldTokens(sel *syntax.Node, typeName string, schema validate.SchemaView, loc *located, out *[]SemanticToken) {
	td, hasType := schema.Types[typeName]
	for _, child := range sel.Children {
		switch child.Kind {
		case syntax.NodeField:
			names := child.ChildrenOf(syntax.NodeName)
			if len(names) == 0 {
				continue
			}
			nameNode := names[len(names)-1]
			deprecated, fieldType := false, ""
			if hasType {
				for i := range td.Fields {
					if td.Fields[i].Name == nameNode.Text {
						deprecated = td.Fields[i].Deprecated
						fieldType = td.Fields[i].Type.Name
						break
					}
				}
			}
			*out = append(*out, SemanticToken{Range: loc.toHostRange(loc.li.ToRange(nameNode.Range)), Kind: TokenField, Deprecated: deprecated})
			if inner := child.Child(syntax.NodeSelectionSet); inner != nil && fieldType != "" {
				walkFieldTokens(inner, fieldType, schema, loc, out)
			}
		case syntax.NodeInlineFragment:
			onType := typeName
			if nt := child.Child(syntax.NodeNamedType); nt != nil {
				onType = nt.Text
			}
			if inner := child.Child(syntax.NodeSelectionSet); inner != nil {
				walkFieldTokens(inner, onType, schema, loc, out)
			}
		case syntax.NodeFragmentSpread:
			if name := child.Child(syntax.NodeName); name != nil {
				*out = append(*out, SemanticToken{Range: loc.toHostRange(loc.li.ToRange(name.Range)), Kind: TokenFragmentSpreadName})
			}
		}
	}
}
