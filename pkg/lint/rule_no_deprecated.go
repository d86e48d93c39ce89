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

package lint

import (
	"fmt"

	"github.com/kraklabs/graphqlcore/pkg/diag"
	"github.com/kraklabs/graphqlcore/pkg/hir"
	"github.com/kraklabs/graphqlcore/pkg/syntax"
	"github.com/kraklabs/graphqlcore/pkg/validate"
)

// NoDeprecated flags selected fields, passed arguments, and referenced
// enum values that the schema marks @deprecated, surfacing the
// deprecation reason verbatim in the message.
type NoDeprecated struct{}

func (NoDeprecated) Name() string                 { return "no_deprecated" }
func (NoDeprecated) Description() string          { return "flag uses of deprecated fields, arguments, and enum values" }
func (NoDeprecated) DefaultSeverity() diag.Severity { return diag.Warning }

func (r NoDeprecated) CheckDocumentSchema(doc Document, schema validate.SchemaView) []LintDiagnostic {
	res := syntax.Parse(doc.Source)
	if len(res.Errors) > 0 {
		return nil
	}
	li := syntax.NewLineIndex(doc.Source)
	d := syntax.NewDocument(res.Root)
	w := &deprecationWalker{uri: doc.URI, schema: schema, li: li}

	for _, op := range d.Operations {
		root := rootTypeForKind(op.Text, schema)
		if sel := op.Child(syntax.NodeSelectionSet); sel != nil {
			w.walkSelectionSet(sel, root)
		}
	}
	for _, frag := range d.Fragments {
		onType := ""
		if nt := frag.Child(syntax.NodeNamedType); nt != nil {
			onType = nt.Text
		}
		if sel := frag.Child(syntax.NodeSelectionSet); sel != nil {
			w.walkSelectionSet(sel, onType)
		}
	}
	return w.out
}

func rootTypeForKind(kind string, schema validate.SchemaView) string {
	switch kind {
	case "mutation":
		return schema.MutationType
	case "subscription":
		return schema.SubscriptionType
	default:
		return schema.QueryType
	}
}

type deprecationWalker struct {
	uri    string
	schema validate.SchemaView
	li     *syntax.LineIndex
	out    []LintDiagnostic
}

func (w *deprecationWalker) walkSelectionSet(sel *syntax.Node, typeName string) {
	td, hasType := w.schema.Types[typeName]
	for _, child := range sel.Children {
		switch child.Kind {
		case syntax.NodeField:
			w.walkField(child, td, hasType)
		case syntax.NodeInlineFragment:
			onType := typeName
			if nt := child.Child(syntax.NodeNamedType); nt != nil {
				onType = nt.Text
			}
			if inner := child.Child(syntax.NodeSelectionSet); inner != nil {
				w.walkSelectionSet(inner, onType)
			}
		}
	}
}

func (w *deprecationWalker) walkField(field *syntax.Node, td hir.TypeDef, hasType bool) {
	names := field.ChildrenOf(syntax.NodeName)
	if len(names) == 0 {
		return
	}
	fieldName := names[len(names)-1].Text

	var matched *hir.FieldSig
	if hasType {
		for i := range td.Fields {
			if td.Fields[i].Name == fieldName {
				matched = &td.Fields[i]
				break
			}
		}
	}
	if matched != nil {
		if matched.Deprecated {
			w.report(names[len(names)-1].Range, fmt.Sprintf("field %q is deprecated: %s", fieldName, matched.DeprecReason))
		}
		for _, arg := range field.ChildrenOf(syntax.NodeArgument) {
			w.checkArgument(arg, matched.Args)
		}
		if inner := field.Child(syntax.NodeSelectionSet); inner != nil {
			w.walkSelectionSet(inner, matched.Type.Name)
		}
		return
	}
	if inner := field.Child(syntax.NodeSelectionSet); inner != nil {
		w.walkSelectionSet(inner, "")
	}
}

func (w *deprecationWalker) checkArgument(arg *syntax.Node, argDefs []hir.ArgDef) {
	nameNode := arg.Child(syntax.NodeName)
	if nameNode == nil {
		return
	}
	for _, def := range argDefs {
		if def.Name != nameNode.Text {
			continue
		}
		if def.Deprecated {
			w.report(nameNode.Range, fmt.Sprintf("argument %q is deprecated: %s", def.Name, def.DeprecReason))
		}
		if valueNode := arg.Child(syntax.NodeValue); valueNode != nil {
			w.checkEnumValue(valueNode, def)
		}
		return
	}
}

func (w *deprecationWalker) checkEnumValue(valueNode *syntax.Node, def hir.ArgDef) {
	td, ok := w.schema.Types[def.Type.Name]
	if !ok || td.Kind != hir.KindEnum {
		return
	}
	for _, ev := range td.EnumValues {
		if ev.Name == valueNode.Text && ev.Deprecated {
			w.report(valueNode.Range, fmt.Sprintf("enum value %q is deprecated: %s", ev.Name, ev.DeprecReason))
		}
	}
}

func (w *deprecationWalker) report(br diag.ByteRange, msg string) {
	w.out = append(w.out, LintDiagnostic{
		URI: w.uri,
		Diagnostic: diag.Diagnostic{
			Message: msg,
			Range:   w.li.ToRange(br),
			Source:  "graphql-linter",
		},
	})
}
