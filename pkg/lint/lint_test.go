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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraklabs/graphqlcore/pkg/hir"
	"github.com/kraklabs/graphqlcore/pkg/syntax"
	"github.com/kraklabs/graphqlcore/pkg/validate"
)

func buildDoc(uri, src string) Document {
	li := syntax.NewLineIndex(src)
	root := syntax.Parse(src).Root
	return Document{URI: uri, Source: src, Structs: hir.FileStructure(uri, li, root, nil)}
}

func testSchemaView() validate.SchemaView {
	return validate.SchemaView{
		QueryType:    "Query",
		MutationType: "Mutation",
		Types: map[string]hir.TypeDef{
			"Query": {
				Name: "Query",
				Kind: hir.KindObject,
				File: "file:///schema.graphql",
				Fields: []hir.FieldSig{
					{Name: "user", Type: hir.TypeRef{Name: "User"}},
				},
			},
			"User": {
				Name: "User",
				Kind: hir.KindObject,
				File: "file:///schema.graphql",
				Fields: []hir.FieldSig{
					{Name: "id", Type: hir.TypeRef{Name: "ID"}},
					{Name: "nick", Type: hir.TypeRef{Name: "String"}, Deprecated: true, DeprecReason: "use name"},
				},
			},
		},
	}
}

func TestNoAnonymousOperations_FlagsUnnamed(t *testing.T) {
	doc := buildDoc("file:///a.graphql", `query { user { id } }`)
	diags := NoAnonymousOperations{}.CheckDocument(doc)
	require.Len(t, diags, 1)
}

func TestNoAnonymousOperations_AllowsNamed(t *testing.T) {
	doc := buildDoc("file:///a.graphql", `query Q { user { id } }`)
	diags := NoAnonymousOperations{}.CheckDocument(doc)
	assert.Empty(t, diags)
}

func TestNoDeprecated_FlagsDeprecatedField(t *testing.T) {
	doc := buildDoc("file:///a.graphql", `query Q { user { nick } }`)
	diags := NoDeprecated{}.CheckDocumentSchema(doc, testSchemaView())
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Diagnostic.Message, "use name")
}

func TestUnusedVariables_FlagsUnreferenced(t *testing.T) {
	doc := buildDoc("file:///a.graphql", `query Q($id: ID, $unused: String) { user { id } }`)
	diags := UnusedVariables{}.CheckDocument(doc)
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Diagnostic.Message, "unused")
	assert.NotNil(t, diags[0].Diagnostic.Fix)
}

func TestUnusedVariables_AllowsReferenced(t *testing.T) {
	doc := buildDoc("file:///a.graphql", `query Q($id: ID) { user(id: $id) { id } }`)
	diags := UnusedVariables{}.CheckDocument(doc)
	assert.Empty(t, diags)
}

func TestUniqueNames_FlagsDuplicateOperation(t *testing.T) {
	files := ProjectFiles{Documents: []Document{
		buildDoc("file:///a.graphql", `query Q { user { id } }`),
		buildDoc("file:///b.graphql", `query Q { user { id } }`),
	}}
	out := UniqueNames{}.CheckProject(files)
	assert.Len(t, out["file:///a.graphql"], 1)
	assert.Len(t, out["file:///b.graphql"], 1)
}

func TestUniqueNames_IndependentNamespaces(t *testing.T) {
	files := ProjectFiles{Documents: []Document{
		buildDoc("file:///a.graphql", `query Shared { user { id } } fragment Shared on User { id }`),
	}}
	out := UniqueNames{}.CheckProject(files)
	assert.Empty(t, out)
}

func TestUnusedFragments_FlagsNeverSpread(t *testing.T) {
	files := ProjectFiles{Documents: []Document{
		buildDoc("file:///a.graphql", `fragment F on User { id }`),
	}}
	out := UnusedFragments{}.CheckProject(files)
	require.Len(t, out["file:///a.graphql"], 1)
	assert.NotNil(t, out["file:///a.graphql"][0].Diagnostic.Fix)
}

func TestUnusedFragments_AllowsSpread(t *testing.T) {
	files := ProjectFiles{Documents: []Document{
		buildDoc("file:///a.graphql", `query Q { user { ...F } } fragment F on User { id }`),
	}}
	out := UnusedFragments{}.CheckProject(files)
	assert.Empty(t, out)
}

func TestUnusedFields_FlagsNeverSelectedNonRootField(t *testing.T) {
	files := ProjectFiles{
		Documents: []Document{buildDoc("file:///a.graphql", `query Q { user { id } }`)},
		Schema:    testSchemaView(),
	}
	out := UnusedFields{}.CheckProject(files)
	require.Len(t, out["file:///schema.graphql"], 1)
	assert.Contains(t, out["file:///schema.graphql"][0].Diagnostic.Message, "nick")
}

func TestUnusedFields_ExemptsRootType(t *testing.T) {
	files := ProjectFiles{
		Documents: []Document{buildDoc("file:///a.graphql", `query Q { user { id nick } }`)},
		Schema:    testSchemaView(),
	}
	out := UnusedFields{}.CheckProject(files)
	assert.Empty(t, out["file:///schema.graphql"])
}

func TestRegistry_SkipsRuleConfiguredOff(t *testing.T) {
	reg := NewDefaultRegistry()
	doc := buildDoc("file:///a.graphql", `query { user { id } }`)
	cfg := LintConfig{Rules: map[string]RuleConfig{"no_anonymous_operations": {Severity: SeverityOff}}}
	diags := reg.RunDocument(doc, testSchemaView(), cfg)
	for _, d := range diags {
		assert.NotEqual(t, "no_anonymous_operations", d.Diagnostic.Rule)
	}
}

func TestRegistry_AppliesSeverityOverride(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterStandalone(NoAnonymousOperations{})
	doc := buildDoc("file:///a.graphql", `query { user { id } }`)
	cfg := LintConfig{Rules: map[string]RuleConfig{"no_anonymous_operations": {Severity: SeverityWarn}}}
	diags := reg.RunDocument(doc, testSchemaView(), cfg)
	require.Len(t, diags, 1)
	assert.Equal(t, "no_anonymous_operations", diags[0].Diagnostic.Rule)
}
