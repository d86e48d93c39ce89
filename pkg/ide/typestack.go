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

// WalkTypeStackToOffset resolves the GraphQL type enclosing offset by
// walking the selection set from the operation/fragment root, descending
// into whichever nested selection set's range actually contains offset
// and resolving each step's field type against schema. Returns "" if
// offset isn't inside any operation/fragment's selection set, or the
// field/fragment type along the way can't be resolved.
func WalkTypeStackToOffset(root *syntax.Node, offset int, schema validate.SchemaView) string {
	doc := syntax.NewDocument(root)

	for _, op := range doc.Operations {
		if offset < op.Range.Start || offset > op.Range.End {
			continue
		}
		rootType := rootTypeFor(op.Text, schema)
		if sel := op.Child(syntax.NodeSelectionSet); sel != nil {
			return descend(sel, rootType, offset, schema)
		}
	}
	for _, frag := range doc.Fragments {
		if offset < frag.Range.Start || offset > frag.Range.End {
			continue
		}
		onType := ""
		if nt := frag.Child(syntax.NodeNamedType); nt != nil {
			onType = nt.Text
		}
		if sel := frag.Child(syntax.NodeSelectionSet); sel != nil {
			return descend(sel, onType, offset, schema)
		}
	}
	return ""
}

// enclosingOperation returns the nearest NodeOperationDefinition
// ancestor in path, or nil if none (e.g. inside a fragment).
func enclosingOperation(path []*syntax.Node) *syntax.Node {
	for _, n := range path {
		if n.Kind == syntax.NodeOperationDefinition {
			return n
		}
	}
	return nil
}

// enclosingField returns the nearest NodeField ancestor in path, or nil.
func enclosingField(path []*syntax.Node) *syntax.Node {
	for _, n := range path {
		if n.Kind == syntax.NodeField {
			return n
		}
	}
	return nil
}

func rootTypeFor(opKind string, schema validate.SchemaView) string {
	switch opKind {
	case "mutation":
		return schema.MutationType
	case "subscription":
		return schema.SubscriptionType
	default:
		return schema.QueryType
	}
}

// descend returns the type active at offset within sel, which is typed
// as typeName. It recurses into whichever field or inline fragment's
// selection set actually contains offset, and stops (returning
// typeName) once offset is inside sel itself but not inside any deeper
// selection set — the common case of completion right after "{".
func descend(sel *syntax.Node, typeName string, offset int, schema validate.SchemaView) string {
	td, hasType := schema.Types[typeName]
	for _, child := range sel.Children {
		if offset < child.Range.Start || offset > child.Range.End {
			continue
		}
		switch child.Kind {
		case syntax.NodeField:
			inner := child.Child(syntax.NodeSelectionSet)
			if inner == nil || offset < inner.Range.Start || offset > inner.Range.End {
				return typeName
			}
			if !hasType {
				return ""
			}
			names := child.ChildrenOf(syntax.NodeName)
			if len(names) == 0 {
				return ""
			}
			fieldName := names[len(names)-1].Text
			for i := range td.Fields {
				if td.Fields[i].Name == fieldName {
					return descend(inner, td.Fields[i].Type.Name, offset, schema)
				}
			}
			return ""
		case syntax.NodeInlineFragment:
			onType := typeName
			if nt := child.Child(syntax.NodeNamedType); nt != nil {
				onType = nt.Text
			}
			if inner := child.Child(syntax.NodeSelectionSet); inner != nil {
				return descend(inner, onType, offset, schema)
			}
		}
	}
	return typeName
}
