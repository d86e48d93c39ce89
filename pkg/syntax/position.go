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
	"strconv"

	"github.com/kraklabs/graphqlcore/pkg/diag"
)

// BlockProjector maps diagnostics and positions produced against an
// ExtractedBlock's own GraphQL source (block-relative, line 0 = the
// block's first line) back into the coordinates of the host TS/JS file
// the block was extracted from.
//
// For every position p inside a block, projecting p and then mapping it
// back through the block's own line index must recover the same host
// offset ExtractEmbeddedBlocks reported for that byte.
type BlockProjector struct {
	block    ExtractedBlock
	blockIdx *LineIndex
	hostIdx  *LineIndex
}

// NewBlockProjector builds a projector for one extracted block. hostIdx
// is the host file's line index (callers typically already hold one,
// built once per content revision and reused across all blocks in a
// file).
func NewBlockProjector(block ExtractedBlock, hostIdx *LineIndex) *BlockProjector {
	return &BlockProjector{
		block:    block,
		blockIdx: NewLineIndex(block.Source),
		hostIdx:  hostIdx,
	}
}

// HostOffset converts a byte offset within the block's own source into
// a byte offset in the host file's content.
func (bp *BlockProjector) HostOffset(blockOffset int) int {
	return bp.block.HostStart + blockOffset
}

// ProjectDiagnostic rewrites a diagnostic computed against the block's
// source (block-relative line/char, matching what diag.Position would
// be if the block were its own file) into host-file coordinates, and
// stamps BlockLineOffset/BlockSource so the IDE/CLI layers can tell it
// came from an embedded region.
func (bp *BlockProjector) ProjectDiagnostic(d diag.Diagnostic) diag.Diagnostic {
	out := d.ShiftLines(bp.block.StartLine)

	// A diagnostic on the block's first line also needs its character
	// column shifted by the host column the block starts on, since
	// ShiftLines only adjusts the line component.
	if d.Range.Start.Line == 0 {
		hostStartCol := bp.hostIdx.Position(bp.block.HostStart).Character
		out.Range.Start.Character += hostStartCol
	}
	if d.Range.End.Line == 0 {
		hostStartCol := bp.hostIdx.Position(bp.block.HostStart).Character
		out.Range.End.Character += hostStartCol
	}

	out.BlockLineOffset = &bp.block.StartLine
	out.BlockSource = bp.hostBlockLabel()
	return out
}

// ProjectRange converts a block-relative diag.Range into host
// coordinates, for IDE features (hover ranges, goto-definition targets)
// that need to return a host-file Range without a full Diagnostic.
func (bp *BlockProjector) ProjectRange(r diag.Range) diag.Range {
	startOffset := bp.blockIdx.Offset(r.Start)
	endOffset := bp.blockIdx.Offset(r.End)
	return diag.Range{
		Start: bp.hostIdx.Position(bp.HostOffset(startOffset)),
		End:   bp.hostIdx.Position(bp.HostOffset(endOffset)),
	}
}

// Contains reports whether hostOffset falls within the block's
// [HostStart, HostEnd) span in the host file.
func (bp *BlockProjector) Contains(hostOffset int) bool {
	return hostOffset >= bp.block.HostStart && hostOffset < bp.block.HostEnd
}

// BlockPosition converts a host-file byte offset inside this block's
// span into the equivalent position within the block's own source
// (line 0 = the block's first line), the inverse of HostOffset+ProjectRange.
func (bp *BlockProjector) BlockPosition(hostOffset int) diag.Position {
	return bp.blockIdx.Position(hostOffset - bp.block.HostStart)
}

// Block returns the ExtractedBlock this projector was built for.
func (bp *BlockProjector) Block() ExtractedBlock { return bp.block }

func (bp *BlockProjector) hostBlockLabel() string {
	if bp.block.Index == 0 {
		return "embedded"
	}
	return "embedded#" + strconv.Itoa(bp.block.Index)
}
