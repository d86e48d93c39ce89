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

package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraklabs/graphqlcore/pkg/hir"
	"github.com/kraklabs/graphqlcore/pkg/syntax"
)

func fileInput(t *testing.T, uri, src string) FileInput {
	t.Helper()
	res := syntax.Parse(src)
	li := syntax.NewLineIndex(src)
	return FileInput{URI: uri, Source: src, Structs: hir.FileStructure(uri, li, res.Root, nil)}
}

func TestBuildMergedSchema_Valid(t *testing.T) {
	files := []FileInput{
		fileInput(t, "file:///a.graphql", `type Query { user(id: ID!): User }`),
		fileInput(t, "file:///b.graphql", `type User { id: ID! name: String }`),
	}
	result := BuildMergedSchema(files)
	require.Contains(t, result.Types, "Query")
	require.Contains(t, result.Types, "User")
	assert.Empty(t, result.Diagnostics)
}

func TestBuildMergedSchema_UndefinedType(t *testing.T) {
	files := []FileInput{
		fileInput(t, "file:///a.graphql", `type Query { user: Missing }`),
	}
	result := BuildMergedSchema(files)
	// Partial schema returned even with a validation error.
	require.Contains(t, result.Types, "Query")
	require.NotEmpty(t, result.Diagnostics)

	found := false
	for _, d := range result.Diagnostics {
		if d.Diagnostic.Code == "undefined-type" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestBuildMergedSchema_DuplicateType(t *testing.T) {
	files := []FileInput{
		fileInput(t, "file:///a.graphql", `type Query { a: String }`),
		fileInput(t, "file:///b.graphql", `type Query { b: String }`),
	}
	result := BuildMergedSchema(files)
	found := false
	for _, d := range result.Diagnostics {
		if d.Diagnostic.Code == "duplicate-type-definition" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestBuildMergedSchema_MissingRootType(t *testing.T) {
	files := []FileInput{
		fileInput(t, "file:///a.graphql", `type User { id: ID! }`),
	}
	result := BuildMergedSchema(files)
	found := false
	for _, d := range result.Diagnostics {
		if d.Diagnostic.Code == "missing-root-type" {
			found = true
		}
	}
	assert.True(t, found)
}
