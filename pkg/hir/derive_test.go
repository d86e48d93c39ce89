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

package hir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraklabs/graphqlcore/pkg/syntax"
)

func structureOf(t *testing.T, src string) FileStructureData {
	t.Helper()
	res := syntax.Parse(src)
	require.Empty(t, res.Errors)
	li := syntax.NewLineIndex(src)
	return FileStructure("file:///test.graphql", li, res.Root, nil)
}

func TestFileStructure_ObjectTypeFieldsAndDeprecation(t *testing.T) {
	fs := structureOf(t, `
type User {
  id: ID!
  name: String
  nickname: String @deprecated(reason: "use name instead")
  tags: [String!]!
}
`)
	require.Len(t, fs.TypeDefs, 1)
	user := fs.TypeDefs[0]
	assert.Equal(t, "User", user.Name)
	assert.Equal(t, KindObject, user.Kind)
	require.Len(t, user.Fields, 4)

	assert.Equal(t, TypeRef{Name: "ID", IsNonNull: true}, user.Fields[0].Type)
	assert.Equal(t, TypeRef{Name: "String"}, user.Fields[1].Type)

	nickname := user.Fields[2]
	assert.True(t, nickname.Deprecated)
	assert.Equal(t, "use name instead", nickname.DeprecReason)

	tags := user.Fields[3].Type
	assert.True(t, tags.IsList)
	assert.True(t, tags.IsNonNull)
	assert.True(t, tags.ItemNonNull)
	assert.Equal(t, "[String!]!", tags.String())
}

func TestFileStructure_OperationAndVariables(t *testing.T) {
	fs := structureOf(t, `
query GetUser($id: ID!, $includeTags: Boolean = false) {
  user(id: $id) { name }
}
`)
	require.Len(t, fs.Operations, 1)
	op := fs.Operations[0]
	assert.Equal(t, "GetUser", op.Name)
	assert.Equal(t, "query", op.Kind)
	require.Len(t, op.Variables, 2)
	assert.Equal(t, "id", op.Variables[0].Name)
	assert.True(t, op.Variables[0].Type.IsNonNull)
	assert.True(t, op.Variables[1].HasDefault)
}

// TestFileStructure_BodyEditStability is the body-edit-stability
// invariant: two documents whose operation body differs only in its
// selection set contents must yield identical structural output
// (aside from ranges, which are expected to shift).
func TestFileStructure_BodyEditStability(t *testing.T) {
	a := structureOf(t, `query Q { a }`)
	b := structureOf(t, `query Q { a b c { d e } }`)

	require.Len(t, a.Operations, 1)
	require.Len(t, b.Operations, 1)
	assert.Equal(t, a.Operations[0].Name, b.Operations[0].Name)
	assert.Equal(t, a.Operations[0].Kind, b.Operations[0].Kind)
	assert.Equal(t, a.Operations[0].Variables, b.Operations[0].Variables)
}

func TestFileStructure_FragmentOnType(t *testing.T) {
	fs := structureOf(t, `fragment F on User { id }`)
	require.Len(t, fs.Fragments, 1)
	assert.Equal(t, "F", fs.Fragments[0].Name)
	assert.Equal(t, "User", fs.Fragments[0].TypeName)
}

func TestSchemaTypes_MergesAcrossFiles(t *testing.T) {
	a := structureOf(t, `type Query { a: String }`)
	b := structureOf(t, `type Mutation { b: String }`)

	merged := SchemaTypes([]FileStructureData{a, b})
	require.Contains(t, merged, "Query")
	require.Contains(t, merged, "Mutation")
}

func TestAllFragments_StampsFile(t *testing.T) {
	a := structureOf(t, `fragment F on User { id }`)
	merged := AllFragments([]string{"file:///a.graphql"}, []FileStructureData{a})
	require.Contains(t, merged, "F")
	assert.Equal(t, "file:///a.graphql", merged["F"].File)
}
