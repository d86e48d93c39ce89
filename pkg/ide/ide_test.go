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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraklabs/graphqlcore/pkg/diag"
	"github.com/kraklabs/graphqlcore/pkg/hir"
	"github.com/kraklabs/graphqlcore/pkg/syntax"
	"github.com/kraklabs/graphqlcore/pkg/validate"
)

func testSchema() validate.SchemaView {
	return validate.SchemaView{
		QueryType: "Query",
		Types: map[string]hir.TypeDef{
			"Query": {
				Name: "Query",
				Kind: hir.KindObject,
				File: "file:///schema.graphql",
				Fields: []hir.FieldSig{
					{Name: "user", Type: hir.TypeRef{Name: "User"}, NameRange: diag.Range{Start: diag.Position{Line: 0, Character: 0}}},
				},
			},
			"User": {
				Name: "User",
				Kind: hir.KindObject,
				File: "file:///schema.graphql",
				Fields: []hir.FieldSig{
					{Name: "id", Type: hir.TypeRef{Name: "ID", IsNonNull: true}, NameRange: diag.Range{Start: diag.Position{Line: 1, Character: 0}}},
					{
						Name: "nick", Type: hir.TypeRef{Name: "String"},
						Deprecated: true, DeprecReason: "use name",
						NameRange: diag.Range{Start: diag.Position{Line: 2, Character: 0}},
					},
				},
				Implements: []string{"Node"},
			},
		},
	}
}

func view(uri, src string) FileView {
	return FileView{URI: uri, Source: src}
}

func posOf(src, needle string) diag.Position {
	return posAtOffset(src, strings.Index(src, needle))
}

// posOfOffset resolves the position of needle in src, then shifts it by
// deltaChars columns on the same line — used to land the cursor inside
// a token that starts partway through a matched substring (e.g. "...F"'s
// name, 3 columns past the spread's own start).
func posOfOffset(src, needle string, deltaChars int) diag.Position {
	idx := strings.Index(src, needle)
	if idx < 0 {
		panic("needle not found: " + needle)
	}
	return posAtOffset(src, idx+deltaChars)
}

func posAtOffset(src string, offset int) diag.Position {
	if offset < 0 {
		panic("needle not found")
	}
	li := syntax.NewLineIndex(src)
	return li.Position(offset)
}

func TestFindSymbolAtOffset_ClassifiesFieldName(t *testing.T) {
	src := `query Q { user { id } }`
	root := syntax.Parse(src).Root
	offset := strings.Index(src, "user")
	sym := FindSymbolAtOffset(root, offset)
	require.NotNil(t, sym)
	assert.Equal(t, SymbolFieldName, sym.Kind)
	assert.Equal(t, "user", sym.Node.Text)
}

func TestFindSymbolAtOffset_ClassifiesFragmentSpread(t *testing.T) {
	src := `query Q { user { ...F } } fragment F on User { id }`
	root := syntax.Parse(src).Root
	offset := strings.Index(src, "...F") + 3
	sym := FindSymbolAtOffset(root, offset)
	require.NotNil(t, sym)
	assert.Equal(t, SymbolFragmentSpread, sym.Kind)
}

func TestWalkTypeStackToOffset_ResolvesNestedFieldType(t *testing.T) {
	src := `query Q { user { id } }`
	root := syntax.Parse(src).Root
	offset := strings.Index(src, "id")
	got := WalkTypeStackToOffset(root, offset, testSchema())
	assert.Equal(t, "User", got)
}

func TestGotoDefinition_Field(t *testing.T) {
	src := `query Q { user { nick } }`
	loc, ok := GotoDefinition(view("file:///a.graphql", src), posOf(src, "nick"), Project{Schema: testSchema()})
	require.True(t, ok)
	assert.Equal(t, "file:///schema.graphql", loc.URI)
}

func TestGotoDefinition_FragmentSpread(t *testing.T) {
	src := `query Q { user { ...F } } fragment F on User { id }`
	proj := Project{
		Schema: testSchema(),
		AllFragments: map[string]hir.FragmentStructure{
			"F": {Name: "F", TypeName: "User", File: "file:///a.graphql", NameRange: diag.Range{Start: diag.Position{Line: 5, Character: 0}}},
		},
	}
	loc, ok := GotoDefinition(view("file:///a.graphql", src), posOfOffset(src, "...F", 3), proj)
	require.True(t, ok)
	assert.Equal(t, "file:///a.graphql", loc.URI)
}

func TestHover_Field(t *testing.T) {
	src := `query Q { user { nick } }`
	info, ok := Hover(view("file:///a.graphql", src), posOf(src, "nick"), Project{Schema: testSchema()})
	require.True(t, ok)
	assert.Contains(t, info.Signature, "deprecated")
}

func TestHover_TypeName(t *testing.T) {
	src := `fragment F on User { id }`
	info, ok := Hover(view("file:///a.graphql", src), posOf(src, "User"), Project{Schema: testSchema()})
	require.True(t, ok)
	assert.Equal(t, "type User", info.Signature)
}

func TestHover_OperationName(t *testing.T) {
	src := `query Named($id: ID!) { user { id } }`
	info, ok := Hover(view("file:///a.graphql", src), posOf(src, "Named"), Project{Schema: testSchema()})
	require.True(t, ok)
	assert.Contains(t, info.Signature, "$id: ID!")
}

func TestCompletion_SelectionSetOffersFields(t *testing.T) {
	src := `query Q { user {  } }`
	items := Completion(view("file:///a.graphql", src), posOfOffset(src, "{  }", 1), Project{Schema: testSchema()})
	var names []string
	for _, it := range items {
		names = append(names, it.Label)
	}
	assert.Contains(t, names, "id")
	assert.Contains(t, names, "nick")
}

func TestCompletion_AfterSpreadOffersFragmentsAndInline(t *testing.T) {
	src := `query Q { user { ... } }`
	proj := Project{
		Schema: testSchema(),
		AllFragments: map[string]hir.FragmentStructure{
			"F": {Name: "F", TypeName: "User"},
		},
	}
	pos := posOfOffset(src, "...", 3)
	items := Completion(view("file:///a.graphql", src), pos, proj)
	var names []string
	for _, it := range items {
		names = append(names, it.Label)
	}
	assert.Contains(t, names, "F")
	assert.Contains(t, names, "on")
}

func TestFindFieldReferences_MatchesAcrossDocuments(t *testing.T) {
	docs := []FileView{
		view("file:///a.graphql", `query Q { user { nick } }`),
		view("file:///b.graphql", `fragment F on User { nick }`),
	}
	refs := FindFieldReferences(docs, "User", "nick", testSchema())
	assert.Len(t, refs, 2)
}

func TestFindFragmentReferences_CollectsSpreads(t *testing.T) {
	docs := []FileView{
		view("file:///a.graphql", `query Q { user { ...F } }`),
		view("file:///b.graphql", `query Q2 { user { ...F } }`),
		view("file:///c.graphql", `fragment F on User { id }`),
	}
	refs := FindFragmentReferences(docs, "F")
	assert.Len(t, refs, 2)
}

func TestDocumentSymbols_BuildsOperationOutline(t *testing.T) {
	src := `query Q { user { id nick } }`
	syms := DocumentSymbols(view("file:///a.graphql", src))
	require.Len(t, syms, 1)
	assert.Equal(t, "Q", syms[0].Name)
	require.Len(t, syms[0].Children, 1)
	assert.Equal(t, "user", syms[0].Children[0].Name)
	assert.Len(t, syms[0].Children[0].Children, 2)
}

func TestWorkspaceSymbols_CaseInsensitiveSubstring(t *testing.T) {
	proj := Project{Schema: testSchema()}
	syms := WorkspaceSymbols("use", proj)
	var names []string
	for _, s := range syms {
		names = append(names, s.Name)
	}
	assert.Contains(t, names, "User")
}

func TestCodeLenses_CountsFragmentReferences(t *testing.T) {
	fv := view("file:///f.graphql", `fragment F on User { id }`)
	proj := Project{
		Schema: testSchema(),
		Documents: []FileView{
			fv,
			view("file:///a.graphql", `query Q { user { ...F } }`),
		},
	}
	lenses := CodeLenses(fv, proj, false)
	require.NotEmpty(t, lenses)
	found := false
	for _, l := range lenses {
		if l.Kind == LensFragmentReferences {
			assert.Equal(t, "1 references", l.Title)
			found = true
		}
	}
	assert.True(t, found)
}

func TestCodeLenses_OperationGetsCurlAlwaysAndRunWhenConfigured(t *testing.T) {
	fv := view("file:///a.graphql", `query Q { user { id } }`)
	proj := Project{Schema: testSchema(), Documents: []FileView{fv}}

	withoutEndpoint := CodeLenses(fv, proj, false)
	withEndpoint := CodeLenses(fv, proj, true)
	assert.Len(t, countLens(withoutEndpoint, LensRunOperation), 0)
	assert.Len(t, countLens(withEndpoint, LensRunOperation), 1)
	assert.Len(t, countLens(withoutEndpoint, LensCopyAsCurl), 1)
}

func countLens(lenses []CodeLens, kind CodeLensKind) []CodeLens {
	var out []CodeLens
	for _, l := range lenses {
		if l.Kind == kind {
			out = append(out, l)
		}
	}
	return out
}

func TestFoldingRanges_SkipsSingleLineSelections(t *testing.T) {
	src := `query Q { user { id } }`
	ranges := FoldingRanges(view("file:///a.graphql", src))
	assert.Empty(t, ranges)
}

func TestFoldingRanges_FoldsMultiLineSelectionSet(t *testing.T) {
	src := "query Q {\n  user { id }\n}"
	ranges := FoldingRanges(view("file:///a.graphql", src))
	require.NotEmpty(t, ranges)
	assert.Equal(t, 0, ranges[0].StartLine)
	assert.Equal(t, 2, ranges[0].EndLine)
}

func TestSemanticTokens_SortedAndMarksDeprecated(t *testing.T) {
	src := `query Q { user { nick id } }`
	tokens := SemanticTokens(view("file:///a.graphql", src), testSchema())
	require.NotEmpty(t, tokens)
	for i := 1; i < len(tokens); i++ {
		assert.True(t, tokens[i-1].Range.Start.Less(tokens[i].Range.Start) || tokens[i-1].Range.Start == tokens[i].Range.Start)
	}
	var sawDeprecatedNick bool
	for _, tok := range tokens {
		if tok.Kind == TokenField && tok.Deprecated {
			sawDeprecatedNick = true
		}
	}
	assert.True(t, sawDeprecatedNick)
}

func TestInlayHints_ShowsReturnTypeAfterLeafField(t *testing.T) {
	src := `query Q { user { id } }`
	hints := InlayHints(view("file:///a.graphql", src), testSchema(), nil)
	var labels []string
	for _, h := range hints {
		labels = append(labels, h.Label)
	}
	assert.Contains(t, labels, ": ID!")
}

func TestInlayHints_TypenameAlwaysStringBang(t *testing.T) {
	src := `query Q { user { __typename } }`
	hints := InlayHints(view("file:///a.graphql", src), testSchema(), nil)
	require.Len(t, hints, 1)
	assert.Equal(t, ": String!", hints[0].Label)
}

func TestInlayHints_RangeFilterExcludesOutside(t *testing.T) {
	src := "query Q {\n  user { id }\n}"
	narrow := diag.Range{Start: diag.Position{Line: 0, Character: 0}, End: diag.Position{Line: 0, Character: 1}}
	hints := InlayHints(view("file:///a.graphql", src), testSchema(), &narrow)
	assert.Empty(t, hints)
}
