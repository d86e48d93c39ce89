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
	"github.com/kraklabs/graphqlcore/pkg/syntax"
	"github.com/kraklabs/graphqlcore/pkg/validate"
)

// FindFieldReferences walks every selection set in every document, and
// for each field resolves its parent type via the type-stack walk,
// recording a Location wherever (parentType, fieldName) matches the
// target.
func FindFieldReferences(docs []FileView, targetType, targetField string, schema validate.SchemaView) []Location {
	var out []Location
	for _, fv := range docs {
		for _, loc := range regionsOf(fv) {
			doc := syntax.NewDocument(loc.root)
			for _, op := range doc.Operations {
				if sel := op.Child(syntax.NodeSelectionSet); sel != nil {
					walkFieldRefs(sel, rootTypeFor(op.Text, schema), schema, targetType, targetField, fv.URI, loc, &out)
				}
			}
			for _, frag := range doc.Fragments {
				onType := ""
				if nt := frag.Child(syntax.NodeNamedType); nt != nil {
					onType = nt.Text
				}
				if sel := frag.Child(syntax.NodeSelectionSet); sel != nil {
					walkFieldRefs(sel, onType, schema, targetType, targetField, fv.URI, loc, &out)
				}
			}
		}
	}
	return out
}

func walkFieldRefs(sel *syntax.Node, typeName string, schema validate.SchemaView, targetType, targetField, uri string, loc *located, out *[]Location) {
	td, hasType := schema.Types[typeName]
	for _, child := range sel.Children {
		switch child.Kind {
		case syntax.NodeField:
			names := child.ChildrenOf(syntax.NodeName)
			if len(names) == 0 {
				continue
			}
			nameNode := names[len(names)-1]
			if typeName == targetType && nameNode.Text == targetField {
				*out = append(*out, Location{URI: uri, Range: loc.toHostRange(loc.li.ToRange(nameNode.Range))})
			}
			if !hasType {
				continue
			}
			inner := child.Child(syntax.NodeSelectionSet)
			if inner == nil {
				continue
			}
			var fieldType string
			for i := range td.Fields {
				if td.Fields[i].Name == nameNode.Text {
					fieldType = td.Fields[i].Type.Name
					break
				}
			}
			if fieldType != "" {
				walkFieldRefs(inner, fieldType, schema, targetType, targetField, uri, loc, out)
			}
		case syntax.NodeInlineFragment:
			onType := typeName
			if nt := child.Child(syntax.NodeNamedType); nt != nil {
				onType = nt.Text
			}
			if inner := child.Child(syntax.NodeSelectionSet); inner != nil {
				walkFieldRefs(inner, onType, schema, targetType, targetField, uri, loc, out)
			}
		}
	}
}

// FindFragmentReferences collects every "...fragmentName" spread across
// all documents.
func FindFragmentReferences(docs []FileView, fragmentName string) []Location {
	var out []Location
	for _, fv := range docs {
		for _, loc := range regionsOf(fv) {
			syntax.Walk(loc.root, func(n *syntax.Node) bool {
				if n.Kind != syntax.NodeFragmentSpread {
					return true
				}
				name := n.Child(syntax.NodeName)
				if name != nil && name.Text == fragmentName {
					out = append(out, Location{URI: fv.URI, Range: loc.toHostRange(loc.li.ToRange(name.Range))})
				}
				return true
			})
		}
	}
	return out
}

// regionsOf returns one located per GraphQL region in fv: the file's own
// top-level text for a plain .graphql file, or one per embedded block.
func regionsOf(fv FileView) []*located {
	if len(fv.Blocks) == 0 {
		li := syntax.NewLineIndex(fv.Source)
		root := syntax.Parse(fv.Source).Root
		return []*located{{source: fv.Source, root: root, li: li}}
	}
	hostLi := syntax.NewLineIndex(fv.Source)
	out := make([]*located, 0, len(fv.Blocks))
	for _, block := range fv.Blocks {
		projector := syntax.NewBlockProjector(block, hostLi)
		blockLi := syntax.NewLineIndex(block.Source)
		root := syntax.Parse(block.Source).Root
		out = append(out, &located{source: block.Source, root: root, li: blockLi, projector: projector})
	}
	return out
}
