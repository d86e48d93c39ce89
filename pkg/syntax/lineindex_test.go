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

	"github.com/kraklabs/graphqlcore/pkg/diag"
)

func TestLineIndex_PositionRoundTrip(t *testing.T) {
	content := "query A {\n  a\n  b\n}\n"
	li := NewLineIndex(content)

	pos := li.Position(16) // the "b" on line 2
	assert.Equal(t, 2, pos.Line)

	offset := li.Offset(pos)
	assert.Equal(t, 16, offset)
}

// TestLineIndex_UTF16Surrogates verifies UTF-16 position semantics: an emoji (a
// surrogate pair in UTF-16) must count as 2 characters, not 1, matching
// LSP's UTF-16 convention even though Go strings are UTF-8.
func TestLineIndex_UTF16Surrogates(t *testing.T) {
	content := "# 🚀 rocket\nquery A { a }"
	li := NewLineIndex(content)

	// "🚀" is 4 UTF-8 bytes and 2 UTF-16 code units.
	afterEmoji := li.Position(2 + len("🚀"))
	assert.Equal(t, 0, afterEmoji.Line)
	assert.Equal(t, 2+2, afterEmoji.Character, "surrogate pair counts as 2 UTF-16 units")
}

func TestLineIndex_ToRange(t *testing.T) {
	content := "type Query {\n  a: String\n}"
	li := NewLineIndex(content)
	r := li.ToRange(diag.ByteRange{Start: 13, End: 14})
	assert.Equal(t, 1, r.Start.Line)
}
