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
	"github.com/kraklabs/graphqlcore/pkg/hir"
	"github.com/kraklabs/graphqlcore/pkg/syntax"
	"github.com/kraklabs/graphqlcore/pkg/validate"
)

// InlayHint is a ": ReturnType" label rendered after a leaf field
// selection.
type InlayHint struct {
	Position diag.Position
	Label    string
}

// InlayHints walks every selection in fv, passing each field's resolved
// return type down as the parent type for its nested selection, and
// emits a label after every leaf field. __typename always resolves to
// String! without a schema lookup. When filter is non-nil, only hints
// whose position falls inside it (per diag.Range's 2D containment) are
// returned.
func InlayHints(fv FileView, schema validate.SchemaView, filter *diag.Range) []InlayHint {
	var out []InlayHint
	for _, loc := range regionsOf(fv) {
		doc := syntax.NewDocument(loc.root)
		for _, op := range doc.Operations {
			if sel := op.Child(syntax.NodeSelectionSet); sel != nil {
				walkInlayHints(sel, rootTypeFor(op.Text, schema), schema, loc, filter, &out)
			}
		}
		for _, frag := range doc.Fragments {
			onType := ""
			if nt := frag.Child(syntax.NodeNamedType); nt != nil {
				onType = nt.Text
			}
			if sel := frag.Child(syntax.NodeSelectionSet); sel != nil {
				walkInlayHints(sel, onType, schema, loc, filter, &out)
			}
		}
	}
	return out
}

func walkInlayHints(sel *syntax.Node, typeName string, schema validate.SchemaView, loc *located, filter *diag.Range, out *[]InlayHint) {
	td, hasType := schema.Types[typeName]
	for _, child := range sel.Children {
		switch child.Kind {
		case syntax.NodeField:
			names := child.ChildrenOf(syntax.NodeName)
			if len(names) == 0 {
				continue
			}
			nameNode := names[len(names)-1]
			inner := child.Child(syntax.NodeSelectionSet)

			if nameNode.Text == "__typename" {
				appendInlayHint(loc, filter, child.Range.End, "String!", out)
				continue
			}
			if !hasType {
				continue
			}
			var fieldType hir.TypeRef
			found := false
			for i := range td.Fields {
				if td.Fields[i].Name == nameNode.Text {
					fieldType = td.Fields[i].Type
					found = true
					break
				}
			}
			if !found {
				continue
			}
			if inner == nil {
				appendInlayHint(loc, filter, child.Range.End, fieldType.String(), out)
				continue
			}
			walkInlayHints(inner, fieldType.Name, schema, loc, filter, out)
		case syntax.NodeInlineFragment:
			onType := typeName
			if nt := child.Child(syntax.NodeNamedType); nt != nil {
				onType = nt.Text
			}
			if inner := child.Child(syntax.NodeSelectionSet); inner != nil {
				walkInlayHints(inner, onType, schema, loc, filter, out)
			}
		}
	}
}

func appendInlayHint(loc *located, filter *diag.Range, offset int, label string, out *[]InlayHint) {
	hostRange := loc.toHostRange(loc.li.ToRange(diag.ByteRange{Start: offset, End: offset}))
	pos := hostRange.End
	if filter != nil && !filter.Contains(pos) {
		return
	}
	*out = append(*out, InlayHint{Position: pos, Label: ": " + label})
}
