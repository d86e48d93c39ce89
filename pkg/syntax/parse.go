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
	"fmt"

	"github.com/kraklabs/graphqlcore/pkg/diag"
)

// Parse builds an error-tolerant CST from GraphQL source text. It never
// panics and never returns a nil Root: every byte of input is either
// consumed into a well-formed node or wrapped in a NodeError leaf, so a
// caller always gets a best-effort tree to derive HIR from, even for
// documents mid-edit (parse totality).
func Parse(content string) *ParseResult {
	p := &parser{lex: newLexer([]byte(content)), src: content}
	p.advance()
	root := p.parseDocument()
	return &ParseResult{Root: root, Errors: p.errors}
}

type parser struct {
	lex     *lexer
	src     string
	tok     Token
	prevEnd int
	errors  []ParseError
}

func (p *parser) advance() {
	p.prevEnd = p.tok.End
	p.tok = p.lex.Next()
}

func (p *parser) at(kind TokenKind, text string) bool {
	return p.tok.Kind == kind && (text == "" || p.tok.Text == text)
}

func (p *parser) atName(kw string) bool { return p.tok.Kind == TokName && p.tok.Text == kw }

func (p *parser) errorf(format string, args ...any) {
	p.errors = append(p.errors, ParseError{
		Message: fmt.Sprintf(format, args...),
		Range:   diag.ByteRange{Start: p.tok.Start, End: p.tok.End},
	})
}

// expectPunct consumes a punctuator token equal to text, or records an
// error and leaves the cursor in place (no token is consumed on failure,
// so the caller's recovery loop can decide what to skip).
func (p *parser) expectPunct(text string) (Token, bool) {
	if p.tok.Kind == TokPunct && p.tok.Text == text {
		t := p.tok
		p.advance()
		return t, true
	}
	p.errorf("expected %q, found %q", text, p.tok.Text)
	return Token{}, false
}

func (p *parser) parseDocument() *Node {
	doc := &Node{Kind: NodeDocument, Range: diag.ByteRange{Start: 0, End: len(p.src)}}
	for p.tok.Kind != TokEOF {
		start := p.tok.Start
		def := p.parseDefinition()
		if def != nil {
			doc.Children = append(doc.Children, def)
			continue
		}
		// Recovery: the current token didn't start a recognizable
		// definition. Wrap it as an error leaf and move on so one bad
		// token can't stall the whole parse.
		p.errorf("unexpected token %q", p.tok.Text)
		errNode := &Node{Kind: NodeError, Range: diag.ByteRange{Start: start, End: p.tok.End}, Text: p.tok.Text}
		doc.Children = append(doc.Children, errNode)
		if p.tok.Kind == TokEOF {
			break
		}
		p.advance()
	}
	doc.Range.End = len(p.src)
	return doc
}

func (p *parser) parseDefinition() *Node {
	// Leading string literal is a description; attach it to whatever
	// definition follows.
	var desc *Node
	if p.tok.Kind == TokString || p.tok.Kind == TokBlockString {
		desc = &Node{Kind: NodeDescription, Range: diag.ByteRange{Start: p.tok.Start, End: p.tok.End}, Text: p.tok.Text}
		p.advance()
	}

	if p.tok.Kind != TokName {
		return nil
	}

	var node *Node
	switch p.tok.Text {
	case "query", "mutation", "subscription":
		node = p.parseOperationDefinition()
	case "fragment":
		node = p.parseFragmentDefinition()
	case "schema":
		node = p.parseSchemaDefinition()
	case "type":
		node = p.parseObjectTypeDefinition(false)
	case "interface":
		node = p.parseInterfaceTypeDefinition()
	case "union":
		node = p.parseUnionTypeDefinition()
	case "enum":
		node = p.parseEnumTypeDefinition()
	case "scalar":
		node = p.parseScalarTypeDefinition()
	case "input":
		node = p.parseInputObjectTypeDefinition()
	case "directive":
		node = p.parseDirectiveDefinition()
	case "extend":
		node = p.parseExtension()
	case "{":
		// Shorthand query form starts directly with a selection set.
	default:
		return nil
	}

	if node == nil && p.at(TokPunct, "{") {
		node = p.parseOperationDefinition()
	}
	if node == nil {
		return nil
	}
	if desc != nil {
		node.Range.Start = desc.Range.Start
		node.Children = append([]*Node{desc}, node.Children...)
	}
	return node
}

func (p *parser) parseName() *Node {
	if p.tok.Kind != TokName {
		p.errorf("expected name, found %q", p.tok.Text)
		return &Node{Kind: NodeError, Range: diag.ByteRange{Start: p.tok.Start, End: p.tok.End}}
	}
	n := &Node{Kind: NodeName, Range: diag.ByteRange{Start: p.tok.Start, End: p.tok.End}, Text: p.tok.Text}
	p.advance()
	return n
}

func (p *parser) parseOperationDefinition() *Node {
	start := p.tok.Start
	node := &Node{Kind: NodeOperationDefinition}
	opKeyword := "query"
	if p.tok.Kind == TokName {
		opKeyword = p.tok.Text
		start = p.tok.Start
		p.advance()
	}
	node.Text = opKeyword

	if p.tok.Kind == TokName {
		node.Children = append(node.Children, p.parseName())
	}
	if p.at(TokPunct, "(") {
		node.Children = append(node.Children, p.parseVariableDefinitions())
	}
	node.Children = append(node.Children, p.parseDirectives()...)
	node.Children = append(node.Children, p.parseSelectionSet())
	node.Range = diag.ByteRange{Start: start, End: p.lastEnd()}
	return node
}

func (p *parser) parseFragmentDefinition() *Node {
	start := p.tok.Start
	p.advance() // 'fragment'
	node := &Node{Kind: NodeFragmentDefinition}
	node.Children = append(node.Children, p.parseName())
	if p.atName("on") {
		p.advance()
		node.Children = append(node.Children, p.parseNamedType())
	} else {
		p.errorf("expected 'on' in fragment definition")
	}
	node.Children = append(node.Children, p.parseDirectives()...)
	node.Children = append(node.Children, p.parseSelectionSet())
	node.Range = diag.ByteRange{Start: start, End: p.lastEnd()}
	return node
}

func (p *parser) parseSelectionSet() *Node {
	start := p.tok.Start
	node := &Node{Kind: NodeSelectionSet}
	if _, ok := p.expectPunct("{"); !ok {
		node.Range = diag.ByteRange{Start: start, End: p.tok.End}
		return node
	}
	for !p.at(TokPunct, "}") && p.tok.Kind != TokEOF {
		sel := p.parseSelection()
		if sel == nil {
			p.errorf("unexpected token %q in selection set", p.tok.Text)
			node.Children = append(node.Children, &Node{Kind: NodeError, Range: diag.ByteRange{Start: p.tok.Start, End: p.tok.End}, Text: p.tok.Text})
			p.advance()
			continue
		}
		node.Children = append(node.Children, sel)
	}
	end := p.tok.End
	p.expectPunct("}")
	node.Range = diag.ByteRange{Start: start, End: end}
	return node
}

func (p *parser) parseSelection() *Node {
	if p.at(TokPunct, "...") {
		return p.parseFragmentOrInlineSpread()
	}
	if p.tok.Kind == TokName {
		return p.parseField()
	}
	return nil
}

func (p *parser) parseField() *Node {
	start := p.tok.Start
	node := &Node{Kind: NodeField}
	first := p.parseName()
	if p.at(TokPunct, ":") {
		p.advance()
		node.Text = first.Text // alias
		node.Children = append(node.Children, first)
		node.Children = append(node.Children, p.parseName())
	} else {
		node.Children = append(node.Children, first)
	}
	if p.at(TokPunct, "(") {
		node.Children = append(node.Children, p.parseArguments())
	}
	node.Children = append(node.Children, p.parseDirectives()...)
	if p.at(TokPunct, "{") {
		node.Children = append(node.Children, p.parseSelectionSet())
	}
	node.Range = diag.ByteRange{Start: start, End: p.lastEnd()}
	return node
}

func (p *parser) parseFragmentOrInlineSpread() *Node {
	start := p.tok.Start
	p.advance() // "..."
	if p.atName("on") || p.at(TokPunct, "@") || p.at(TokPunct, "{") {
		node := &Node{Kind: NodeInlineFragment}
		if p.atName("on") {
			p.advance()
			node.Children = append(node.Children, p.parseNamedType())
		}
		node.Children = append(node.Children, p.parseDirectives()...)
		node.Children = append(node.Children, p.parseSelectionSet())
		node.Range = diag.ByteRange{Start: start, End: p.lastEnd()}
		return node
	}
	node := &Node{Kind: NodeFragmentSpread}
	node.Children = append(node.Children, p.parseName())
	node.Children = append(node.Children, p.parseDirectives()...)
	node.Range = diag.ByteRange{Start: start, End: p.lastEnd()}
	return node
}

func (p *parser) parseArguments() *Node {
	start := p.tok.Start
	node := &Node{Kind: NodeToken, Text: "arguments"}
	p.expectPunct("(")
	for !p.at(TokPunct, ")") && p.tok.Kind != TokEOF {
		argStart := p.tok.Start
		arg := &Node{Kind: NodeArgument}
		arg.Children = append(arg.Children, p.parseName())
		p.expectPunct(":")
		arg.Children = append(arg.Children, p.parseValue())
		arg.Range = diag.ByteRange{Start: argStart, End: p.lastEnd()}
		node.Children = append(node.Children, arg)
	}
	end := p.tok.End
	p.expectPunct(")")
	node.Range = diag.ByteRange{Start: start, End: end}
	return node
}

func (p *parser) parseValue() *Node {
	start := p.tok.Start
	switch {
	case p.at(TokPunct, "$"):
		p.advance()
		name := p.parseName()
		return &Node{Kind: NodeVariable, Text: name.Text, Range: diag.ByteRange{Start: start, End: p.lastEnd()}}
	case p.at(TokPunct, "["):
		p.advance()
		node := &Node{Kind: NodeValue, Text: "list"}
		for !p.at(TokPunct, "]") && p.tok.Kind != TokEOF {
			node.Children = append(node.Children, p.parseValue())
		}
		end := p.tok.End
		p.expectPunct("]")
		node.Range = diag.ByteRange{Start: start, End: end}
		return node
	case p.at(TokPunct, "{"):
		p.advance()
		node := &Node{Kind: NodeValue, Text: "object"}
		for !p.at(TokPunct, "}") && p.tok.Kind != TokEOF {
			fieldStart := p.tok.Start
			field := &Node{Kind: NodeArgument}
			field.Children = append(field.Children, p.parseName())
			p.expectPunct(":")
			field.Children = append(field.Children, p.parseValue())
			field.Range = diag.ByteRange{Start: fieldStart, End: p.lastEnd()}
			node.Children = append(node.Children, field)
		}
		end := p.tok.End
		p.expectPunct("}")
		node.Range = diag.ByteRange{Start: start, End: end}
		return node
	case p.tok.Kind == TokName:
		text := p.tok.Text
		n := &Node{Kind: NodeValue, Text: text, Range: diag.ByteRange{Start: p.tok.Start, End: p.tok.End}}
		p.advance()
		return n
	case p.tok.Kind == TokInt || p.tok.Kind == TokFloat || p.tok.Kind == TokString || p.tok.Kind == TokBlockString:
		text := p.tok.Text
		n := &Node{Kind: NodeValue, Text: text, Range: diag.ByteRange{Start: p.tok.Start, End: p.tok.End}}
		p.advance()
		return n
	default:
		p.errorf("expected value, found %q", p.tok.Text)
		n := &Node{Kind: NodeError, Range: diag.ByteRange{Start: p.tok.Start, End: p.tok.End}}
		if p.tok.Kind != TokEOF {
			p.advance()
		}
		return n
	}
}

func (p *parser) parseDirectives() []*Node {
	var out []*Node
	for p.at(TokPunct, "@") {
		start := p.tok.Start
		p.advance()
		node := &Node{Kind: NodeDirective}
		node.Children = append(node.Children, p.parseName())
		if p.at(TokPunct, "(") {
			node.Children = append(node.Children, p.parseArguments())
		}
		node.Range = diag.ByteRange{Start: start, End: p.lastEnd()}
		out = append(out, node)
	}
	return out
}

func (p *parser) parseVariableDefinitions() *Node {
	start := p.tok.Start
	node := &Node{Kind: NodeToken, Text: "variableDefinitions"}
	p.expectPunct("(")
	for p.at(TokPunct, "$") {
		vStart := p.tok.Start
		p.advance()
		v := &Node{Kind: NodeVariableDefinition}
		v.Children = append(v.Children, p.parseName())
		p.expectPunct(":")
		v.Children = append(v.Children, p.parseTypeRef())
		if p.at(TokPunct, "=") {
			p.advance()
			v.Children = append(v.Children, p.parseValue())
		}
		v.Children = append(v.Children, p.parseDirectives()...)
		v.Range = diag.ByteRange{Start: vStart, End: p.lastEnd()}
		node.Children = append(node.Children, v)
	}
	end := p.tok.End
	p.expectPunct(")")
	node.Range = diag.ByteRange{Start: start, End: end}
	return node
}

func (p *parser) parseNamedType() *Node {
	name := p.parseName()
	return &Node{Kind: NodeNamedType, Text: name.Text, Range: name.Range}
}

func (p *parser) parseTypeRef() *Node {
	start := p.tok.Start
	var node *Node
	switch {
	case p.at(TokPunct, "["):
		p.advance()
		inner := p.parseTypeRef()
		end := p.tok.End
		p.expectPunct("]")
		node = &Node{Kind: NodeListType, Children: []*Node{inner}, Range: diag.ByteRange{Start: start, End: end}}
	case p.tok.Kind == TokName:
		node = p.parseNamedType()
	default:
		p.errorf("expected type, found %q", p.tok.Text)
		node = &Node{Kind: NodeError, Range: diag.ByteRange{Start: p.tok.Start, End: p.tok.End}}
	}
	if p.at(TokPunct, "!") {
		bangEnd := p.tok.End
		p.advance()
		node = &Node{Kind: NodeNonNullType, Children: []*Node{node}, Range: diag.ByteRange{Start: start, End: bangEnd}}
	}
	return node
}

func (p *parser) lastEnd() int {
	// The cursor sits on the next unconsumed token; the previous node's
	// end is wherever we are now minus any ignored trivia, which for
	// range purposes we approximate with the start of the current token
	// scan position. Using p.lex.pos would include trailing trivia
	// already skipped by skipIgnored on the next Next() call, so we
	// track end via the last consumed token instead.
	return p.prevEnd
}
