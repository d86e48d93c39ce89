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

package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraklabs/graphqlcore/pkg/hir"
)

func testSchema() SchemaView {
	return SchemaView{
		QueryType:    "Query",
		MutationType: "Mutation",
		Types: map[string]hir.TypeDef{
			"Query": {
				Name: "Query",
				Fields: []hir.FieldSig{
					{Name: "user", Type: hir.TypeRef{Name: "User"}},
				},
			},
			"User": {
				Name: "User",
				Fields: []hir.FieldSig{
					{Name: "id", Type: hir.TypeRef{Name: "ID"}},
					{Name: "name", Type: hir.TypeRef{Name: "String"}},
					{Name: "nick", Type: hir.TypeRef{Name: "String"}, Deprecated: true, DeprecReason: "use name"},
				},
			},
		},
	}
}

func TestDocument_UnknownField(t *testing.T) {
	diags := Document("file:///a.graphql", `query Q { user { bogus } }`, 0, testSchema(), nil)
	require.NotEmpty(t, diags)
	assert.Equal(t, "unknown-field", diags[0].Code)
}

func TestDocument_ValidSelection(t *testing.T) {
	diags := Document("file:///a.graphql", `query Q { user { id name } }`, 0, testSchema(), nil)
	assert.Empty(t, diags)
}

func TestDocument_DeprecatedFieldWarns(t *testing.T) {
	diags := Document("file:///a.graphql", `query Q { user { nick } }`, 0, testSchema(), nil)
	require.Len(t, diags, 1)
	assert.Equal(t, "deprecated-field", diags[0].Code)
}

func TestDocument_UnknownFragment(t *testing.T) {
	diags := Document("file:///a.graphql", `query Q { user { ...Missing } }`, 0, testSchema(), nil)
	require.NotEmpty(t, diags)
	assert.Equal(t, "unknown-fragment", diags[0].Code)
}

// TestDocument_LineOffsetShiftsDiagnostics covers embedded-document
// position translation: a diagnostic on line 0 of the block's own text
// must appear at lineOffset in host coordinates.
func TestDocument_LineOffsetShiftsDiagnostics(t *testing.T) {
	diags := Document("file:///host.ts", `query Q { user { bogus } }`, 5, testSchema(), nil)
	require.NotEmpty(t, diags)
	assert.Equal(t, 5, diags[0].Range.Start.Line)
}

func TestDocumentHash_WhitespaceNormalized(t *testing.T) {
	a := "query Q {\n  a\n}\n"
	b := "query Q {\n    a\n}"
	assert.Equal(t, DocumentHash(a), DocumentHash(b))
}

func TestFragmentsHash_OrderIndependent(t *testing.T) {
	deps1 := []FragmentDep{{Name: "B", Source: "b"}, {Name: "A", Source: "a"}}
	deps2 := []FragmentDep{{Name: "A", Source: "a"}, {Name: "B", Source: "b"}}
	assert.Equal(t, FragmentsHash(deps1), FragmentsHash(deps2))
}

func TestCache_DropAllOnOverflow(t *testing.T) {
	c := NewCache()
	for i := 0; i < maxCacheEntries+1; i++ {
		c.Put(ValidationKey{DocumentHash: uint64(i)}, &ValidationResult{})
	}
	assert.LessOrEqual(t, c.Len(), maxCacheEntries)
}

func TestReferencedFragments(t *testing.T) {
	used := ReferencedFragments(`query Q { user { ...Details } }`)
	assert.True(t, used["Details"])
	assert.False(t, used["Other"])
}
