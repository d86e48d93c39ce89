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

// Package diag defines the diagnostic and position types shared across
// every layer of the analysis core: parser, HIR, schema, document
// validator, linter, and IDE feature layer.
//
// Positions are 0-indexed and counted in UTF-16 code units to match
// editor (LSP) conventions, per the position semantics contract.
package diag

// Severity classifies a diagnostic's importance.
type Severity int

const (
	Error Severity = iota
	Warning
	Info
	Hint
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Info:
		return "info"
	case Hint:
		return "hint"
	default:
		return "unknown"
	}
}

// Position is a 0-indexed (line, character) pair in UTF-16 code units.
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// Less reports whether p sorts before o in (line, character) order.
// Used to keep semantic-token streams and symbol lists LSP-sorted.
func (p Position) Less(o Position) bool {
	if p.Line != o.Line {
		return p.Line < o.Line
	}
	return p.Character < o.Character
}

// Range is a half-open [Start, End) span of Positions.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Contains reports whether p falls within r using proper 2D comparison,
// i.e. not a naive line-only check. Used by inlay hints' range filter.
func (r Range) Contains(p Position) bool {
	if p.Line < r.Start.Line || p.Line > r.End.Line {
		return false
	}
	if p.Line == r.Start.Line && p.Character < r.Start.Character {
		return false
	}
	if p.Line == r.End.Line && p.Character >= r.End.Character {
		return false
	}
	return true
}

// ByteRange is a [Start, End) span of byte offsets into a file's content.
type ByteRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// TextEdit replaces the bytes in Range with NewText.
type TextEdit struct {
	ByteRange ByteRange `json:"byte_range"`
	NewText   string    `json:"new_text"`
}

// CodeFix is a labeled, safe-to-apply set of edits attached to a diagnostic.
type CodeFix struct {
	Label string     `json:"label"`
	Edits []TextEdit `json:"edits"`
}

// Diagnostic is the uniform diagnostic shape produced by every analysis
// stage: the tolerant parser, the schema merger, the executable validator,
// and the lint framework.
type Diagnostic struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Range    Range    `json:"range"`
	Source   string   `json:"source"` // "parser" | "apollo-compiler" | "graphql-linter" | ...
	Code     string   `json:"code,omitempty"`

	// ByteRange is populated by lint diagnostics (and anything deriving
	// a CodeFix), which operate in byte-offset terms before translation.
	ByteRange ByteRange `json:"byte_range,omitempty"`

	// BlockLineOffset and BlockSource are set when the diagnostic
	// originates inside an embedded GraphQL block: BlockLineOffset is the
	// block's starting line within the host file, and BlockSource names
	// the block (for multi-block files).
	BlockLineOffset *int   `json:"block_line_offset,omitempty"`
	BlockSource     string `json:"block_source,omitempty"`

	Fix *CodeFix `json:"fix,omitempty"`

	// Rule is set by lint diagnostics to the originating rule's name.
	Rule string `json:"rule,omitempty"`
}

// ShiftLines returns a copy of d with every line in Range shifted by delta.
// Used to project diagnostics from an embedded block back into host
// coordinates (see pkg/syntax's position mapper).
func (d Diagnostic) ShiftLines(delta int) Diagnostic {
	d.Range.Start.Line += delta
	d.Range.End.Line += delta
	return d
}
