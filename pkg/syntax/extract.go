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
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/kraklabs/graphqlcore/pkg/engine"
)

// gqlTagNames are the identifiers that mark a tagged template literal or
// call expression as embedded GraphQL. Host frameworks vary; this list
// covers the common conventions (Apollo/urql/Relay-style `gql`/`graphql`
// tags, plus a bare `graphql` call).
var gqlTagNames = map[string]bool{
	"gql":     true,
	"graphql": true,
}

// magicCommentGraphQL matches the `/* GraphQL */` convention used to
// mark a plain (untagged) template literal as embedded GraphQL, for
// hosts that can't or don't want to import a tag function.
const magicCommentGraphQL = "graphql"

// ExtractedBlock is one embedded GraphQL source region found inside a
// host TS/JS file, along with the information needed to map positions
// and diagnostics back into host-file coordinates.
type ExtractedBlock struct {
	// Source is the GraphQL text itself, exactly as it appeared between
	// the template literal's backticks (including any ${...}
	// interpolations, which are replaced with a same-length placeholder
	// name so byte offsets inside the block stay meaningful — see
	// substituteInterpolations).
	Source string

	// HostStart/HostEnd are the byte offsets of Source within the host
	// file's content.
	HostStart int
	HostEnd   int

	// StartLine is the 0-indexed line in the host file where Source
	// begins; used to shift block-relative diagnostics back into host
	// coordinates (diag.Diagnostic.ShiftLines).
	StartLine int

	// Index disambiguates multiple blocks in one file for
	// diag.Diagnostic.BlockSource.
	Index int
}

// parserFor returns a tree-sitter parser configured for the given host
// language. Only TS/TSX/JS/JSX ever carry embedded GraphQL per the
// project binder's language classification.
func parserFor(lang engine.Language) (*sitter.Parser, error) {
	p := sitter.NewParser()
	switch lang {
	case engine.LangTypeScript:
		p.SetLanguage(typescript.GetLanguage())
	case engine.LangJavaScript:
		p.SetLanguage(javascript.GetLanguage())
	default:
		return nil, fmt.Errorf("embedded extraction not supported for language %s", lang)
	}
	return p, nil
}

// ExtractEmbeddedBlocks walks content's tree-sitter AST (as host
// language lang) looking for tagged template literals, call expressions,
// and magic-comment-marked template literals that carry embedded
// GraphQL, grounded on the tree-sitter walking style used for function
// and type extraction elsewhere in this codebase.
func ExtractEmbeddedBlocks(content []byte, lang engine.Language) ([]ExtractedBlock, error) {
	parser, err := parserFor(lang)
	if err != nil {
		return nil, err
	}
	tree, err := parser.ParseCtx(context.Background(), nil, content)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse: %w", err)
	}
	defer tree.Close()

	var blocks []ExtractedBlock
	li := NewLineIndex(string(content))
	walkForEmbedded(tree.RootNode(), content, li, &blocks)
	return blocks, nil
}

func walkForEmbedded(node *sitter.Node, content []byte, li *LineIndex, blocks *[]ExtractedBlock) {
	if node == nil {
		return
	}

	switch node.Type() {
	case "tagged_template_expression":
		if tag := node.ChildByFieldName("tag"); tag != nil && gqlTagNames[tag.Content(content)] {
			if tmpl := node.ChildByFieldName("quasi"); tmpl != nil {
				appendBlockFromTemplate(tmpl, content, li, blocks)
			}
		}

	case "call_expression":
		if fn := node.ChildByFieldName("function"); fn != nil && gqlTagNames[fn.Content(content)] {
			if args := node.ChildByFieldName("arguments"); args != nil {
				for i := 0; i < int(args.NamedChildCount()); i++ {
					arg := args.NamedChild(i)
					if arg.Type() == "template_string" || arg.Type() == "string" {
						appendBlockFromTemplate(arg, content, li, blocks)
					}
				}
			}
		}

	case "template_string":
		// Untagged template literal: only counts if immediately preceded
		// by a /* GraphQL */ (or /* graphql */) magic comment.
		if hasLeadingMagicComment(node, content) {
			appendBlockFromTemplate(node, content, li, blocks)
		}
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		walkForEmbedded(node.Child(i), content, li, blocks)
	}
}

// hasLeadingMagicComment reports whether the sibling immediately before
// node is a comment whose text contains "GraphQL" (case-insensitively),
// per the magic-comment convention for untagged embedded blocks.
func hasLeadingMagicComment(node *sitter.Node, content []byte) bool {
	prev := node.PrevSibling()
	if prev == nil || prev.Type() != "comment" {
		return false
	}
	return strings.Contains(strings.ToLower(prev.Content(content)), magicCommentGraphQL)
}

func appendBlockFromTemplate(tmpl *sitter.Node, content []byte, li *LineIndex, blocks *[]ExtractedBlock) {
	raw := tmpl.Content(content)
	// Strip the surrounding backticks (or quotes, for the rare
	// call-expression string-literal form).
	inner := raw
	if len(inner) >= 2 {
		inner = inner[1 : len(inner)-1]
	}
	start := int(tmpl.StartByte()) + 1
	end := int(tmpl.EndByte()) - 1

	*blocks = append(*blocks, ExtractedBlock{
		Source:    substituteInterpolations(inner),
		HostStart: start,
		HostEnd:   end,
		StartLine: li.Position(start).Line,
		Index:     len(*blocks),
	})
}

// substituteInterpolations replaces every `${...}` interpolation with a
// same-byte-length run of underscores, so the block's internal byte
// offsets (and therefore its parsed CST ranges) still line up 1:1 with
// HostStart+offset — an interpolation can't change the GraphQL token
// stream's shape (it always sits where a variable value would go), so
// blanking it out rather than removing it keeps position mapping exact.
func substituteInterpolations(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	depth := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if depth == 0 && c == '$' && i+1 < len(s) && s[i+1] == '{' {
			depth = 1
			b.WriteByte('_')
			b.WriteByte('_')
			i++
			continue
		}
		if depth > 0 {
			switch c {
			case '{':
				depth++
			case '}':
				depth--
			}
			b.WriteByte('_')
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}
