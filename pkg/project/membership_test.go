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

package project

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandBraces(t *testing.T) {
	got := ExpandBraces("src/**/*.{graphql,gql}")
	assert.ElementsMatch(t, []string{"src/**/*.graphql", "src/**/*.gql"}, got)
}

func TestExpandBraces_NoGroup(t *testing.T) {
	got := ExpandBraces("src/**/*.graphql")
	assert.Equal(t, []string{"src/**/*.graphql"}, got)
}

func TestMatchesGlob_DoubleStarAnyDepth(t *testing.T) {
	assert.True(t, MatchesGlob("src/a/b/c.graphql", "src/**/*.graphql"))
	assert.True(t, MatchesGlob("src/c.graphql", "src/**/*.graphql"))
	assert.False(t, MatchesGlob("other/c.graphql", "src/**/*.graphql"))
}

func TestMatchesGlob_CharClass(t *testing.T) {
	assert.True(t, MatchesGlob("a1.graphql", "a[0-9].graphql"))
	assert.False(t, MatchesGlob("ax.graphql", "a[0-9].graphql"))
}

func TestIsDocumentMember_ExcludeWins(t *testing.T) {
	c := Config{
		Documents: []string{"src/**/*.graphql"},
		Exclude:   []string{"src/generated/**"},
	}
	assert.True(t, c.IsDocumentMember("src/a.graphql"))
	assert.False(t, c.IsDocumentMember("src/generated/a.graphql"))
}

func TestIsDocumentMember_IncludeRestricts(t *testing.T) {
	c := Config{
		Documents: []string{"**/*.graphql"},
		Include:   []string{"src/app/**"},
	}
	assert.True(t, c.IsDocumentMember("src/app/a.graphql"))
	assert.False(t, c.IsDocumentMember("src/other/a.graphql"))
}

func TestDetectOverlap(t *testing.T) {
	configs := []Config{
		{Name: "web", Documents: []string{"src/**/*.graphql"}},
		{Name: "admin", Documents: []string{"src/app/**/*.graphql"}},
	}
	paths := []string{"src/app/query.graphql", "src/other/query.graphql"}
	overlaps := DetectOverlap(configs, paths)
	assert := assert.New(t)
	assert.Len(overlaps, 1)
	assert.Equal("src/app/query.graphql", overlaps[0].Path)
	assert.ElementsMatch([]string{"web", "admin"}, overlaps[0].Projects)
}
