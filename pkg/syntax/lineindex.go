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
	"sort"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/kraklabs/graphqlcore/pkg/diag"
)

// LineIndex translates between byte offsets into a file's content and
// editor (line, UTF-16 code unit) positions. Built once per content
// revision and reused by every query that needs position translation,
// since computing line starts is O(n) but lookups are O(log n).
type LineIndex struct {
	content    string
	lineStarts []int // byte offset of the first byte of each line
}

// NewLineIndex scans content once, recording the byte offset where each
// line begins (the position right after each '\n', plus 0 for line 0).
func NewLineIndex(content string) *LineIndex {
	starts := []int{0}
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &LineIndex{content: content, lineStarts: starts}
}

// LineCount returns the number of lines in the content (always >= 1).
func (li *LineIndex) LineCount() int { return len(li.lineStarts) }

// Position converts a byte offset into a 0-indexed (line, UTF-16
// character) position, matching LSP position semantics. Offsets beyond
// the end of content clamp to the final position.
func (li *LineIndex) Position(byteOffset int) diag.Position {
	if byteOffset < 0 {
		byteOffset = 0
	}
	if byteOffset > len(li.content) {
		byteOffset = len(li.content)
	}

	line := sort.Search(len(li.lineStarts), func(i int) bool {
		return li.lineStarts[i] > byteOffset
	}) - 1
	if line < 0 {
		line = 0
	}

	lineStart := li.lineStarts[line]
	char := utf16Len(li.content[lineStart:byteOffset])
	return diag.Position{Line: line, Character: char}
}

// Offset converts a 0-indexed (line, UTF-16 character) position back
// into a byte offset. A character count past the end of the line clamps
// to the line's end (excluding its trailing newline).
func (li *LineIndex) Offset(pos diag.Position) int {
	if pos.Line < 0 {
		return 0
	}
	if pos.Line >= len(li.lineStarts) {
		return len(li.content)
	}

	lineStart := li.lineStarts[pos.Line]
	lineEnd := len(li.content)
	if pos.Line+1 < len(li.lineStarts) {
		lineEnd = li.lineStarts[pos.Line+1]
		for lineEnd > lineStart && (li.content[lineEnd-1] == '\n' || li.content[lineEnd-1] == '\r') {
			lineEnd--
		}
	}

	offset := lineStart
	remaining := pos.Character
	for remaining > 0 && offset < lineEnd {
		r, size := utf8.DecodeRuneInString(li.content[offset:])
		units := 1
		if r1, r2 := utf16.EncodeRune(r); r1 != utf16.ReplacementChar || r2 != utf16.ReplacementChar {
			units = 2
		}
		if remaining < units {
			break
		}
		offset += size
		remaining -= units
	}
	return offset
}

// utf16Len counts the number of UTF-16 code units s would encode to.
func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		if r1, r2 := utf16.EncodeRune(r); r1 == utf16.ReplacementChar && r2 == utf16.ReplacementChar {
			n++
		} else {
			n += 2
		}
	}
	return n
}

// ToRange converts a ByteRange to a diag.Range using this index.
func (li *LineIndex) ToRange(br diag.ByteRange) diag.Range {
	return diag.Range{Start: li.Position(br.Start), End: li.Position(br.End)}
}
