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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_OperationAndFragment(t *testing.T) {
	src := `
query GetUser($id: ID!) {
  user(id: $id) {
    name
    ...Details
  }
}

fragment Details on User {
  email
}
`
	res := Parse(src)
	require.Empty(t, res.Errors)
	doc := NewDocument(res.Root)
	require.Len(t, doc.Operations, 1)
	require.Len(t, doc.Fragments, 1)

	op := doc.Operations[0]
	assert.Equal(t, "query", op.Text)
	nameNode := op.Child(NodeName)
	require.NotNil(t, nameNode)
	assert.Equal(t, "GetUser", nameNode.Text)
}

func TestParse_SchemaDefinitions(t *testing.T) {
	src := `
type Query {
  user(id: ID!): User
}

type User implements Node {
  id: ID!
  name: String
}

enum Role { ADMIN USER }
`
	res := Parse(src)
	require.Empty(t, res.Errors)
	doc := NewDocument(res.Root)
	assert.True(t, doc.IsTypeSystemDocument())
	assert.Len(t, doc.TypeDefs, 3)
}

// TestParse_TolerantOfGarbage verifies parse totality. Malformed input
// must still produce a non-nil root covering the full byte range, with
// the bad region reported as an error rather than a panic or partial
// tree.
func TestParse_TolerantOfGarbage(t *testing.T) {
	src := `query A { a b ### $$$ } type`
	res := Parse(src)
	require.NotNil(t, res.Root)
	assert.Equal(t, 0, res.Root.Range.Start)
	assert.Equal(t, len(src), res.Root.Range.End)
	assert.NotEmpty(t, res.Errors)
}

func TestParse_EmptyInput(t *testing.T) {
	res := Parse("")
	require.NotNil(t, res.Root)
	assert.Empty(t, res.Root.Children)
}

func TestFindAtOffset_ResolvesInnermostNode(t *testing.T) {
	src := `query A { user { name } }`
	res := Parse(src)
	// offset inside "name"
	offset := 20
	n := FindAtOffset(res.Root, offset)
	require.NotNil(t, n)
	assert.Equal(t, NodeName, n.Kind)
	assert.Equal(t, "name", n.Text)
}
