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

import "github.com/kraklabs/graphqlcore/pkg/diag"

// This file holds the type-system-definition productions of the parser:
// schema/type/interface/union/enum/scalar/input/directive definitions
// and "extend" variants. Split out from parse.go (executable document
// productions) purely for file size.

func (p *parser) parseSchemaDefinition() *Node {
	start := p.tok.Start
	p.advance() // 'schema'
	node := &Node{Kind: NodeSchemaDefinition}
	node.Children = append(node.Children, p.parseDirectives()...)
	if _, ok := p.expectPunct("{"); ok {
		for !p.at(TokPunct, "}") && p.tok.Kind != TokEOF {
			opStart := p.tok.Start
			opType := p.parseName()
			p.expectPunct(":")
			target := p.parseNamedType()
			entry := &Node{
				Kind:     NodeFieldDefinition,
				Text:     opType.Text,
				Children: []*Node{target},
				Range:    diag.ByteRange{Start: opStart, End: p.lastEnd()},
			}
			node.Children = append(node.Children, entry)
		}
		p.expectPunct("}")
	}
	node.Range = diag.ByteRange{Start: start, End: p.lastEnd()}
	return node
}

func (p *parser) parseObjectTypeDefinition(isExtension bool) *Node {
	start := p.tok.Start
	p.advance() // 'type'
	kind := NodeObjectTypeDefinition
	if isExtension {
		kind = NodeObjectTypeExtension
	}
	node := &Node{Kind: kind}
	node.Children = append(node.Children, p.parseName())
	if p.atName("implements") {
		p.advance()
		for {
			if p.at(TokPunct, "&") {
				p.advance()
				continue
			}
			if p.tok.Kind != TokName {
				break
			}
			node.Children = append(node.Children, p.parseNamedType())
		}
	}
	node.Children = append(node.Children, p.parseDirectives()...)
	if p.at(TokPunct, "{") {
		node.Children = append(node.Children, p.parseFieldDefinitions()...)
	}
	node.Range = diag.ByteRange{Start: start, End: p.lastEnd()}
	return node
}

// parseFieldDefinitions parses a brace-delimited block of
// FieldDefinition productions, returning them as a flat slice so
// callers (object/interface types) can append them directly as
// children rather than nesting one more nodeless wrapper level.
func (p *parser) parseFieldDefinitions() []*Node {
	p.expectPunct("{")
	var fields []*Node
	for !p.at(TokPunct, "}") && p.tok.Kind != TokEOF {
		fields = append(fields, p.parseFieldDefinition())
	}
	p.expectPunct("}")
	return fields
}

func (p *parser) parseFieldDefinition() *Node {
	start := p.tok.Start
	var desc *Node
	if p.tok.Kind == TokString || p.tok.Kind == TokBlockString {
		desc = &Node{Kind: NodeDescription, Text: p.tok.Text, Range: diag.ByteRange{Start: p.tok.Start, End: p.tok.End}}
		p.advance()
	}
	node := &Node{Kind: NodeFieldDefinition}
	if desc != nil {
		node.Children = append(node.Children, desc)
	}
	node.Children = append(node.Children, p.parseName())
	if p.at(TokPunct, "(") {
		node.Children = append(node.Children, p.parseInputValueDefinitions())
	}
	p.expectPunct(":")
	node.Children = append(node.Children, p.parseTypeRef())
	node.Children = append(node.Children, p.parseDirectives()...)
	node.Range = diag.ByteRange{Start: start, End: p.lastEnd()}
	return node
}

func (p *parser) parseInputValueDefinitions() *Node {
	start := p.tok.Start
	node := &Node{Kind: NodeToken, Text: "args"}
	p.expectPunct("(")
	for !p.at(TokPunct, ")") && p.tok.Kind != TokEOF {
		node.Children = append(node.Children, p.parseInputValueDefinition())
	}
	end := p.tok.End
	p.expectPunct(")")
	node.Range = diag.ByteRange{Start: start, End: end}
	return node
}

func (p *parser) parseInputValueDefinition() *Node {
	start := p.tok.Start
	var desc *Node
	if p.tok.Kind == TokString || p.tok.Kind == TokBlockString {
		desc = &Node{Kind: NodeDescription, Text: p.tok.Text, Range: diag.ByteRange{Start: p.tok.Start, End: p.tok.End}}
		p.advance()
	}
	node := &Node{Kind: NodeInputValueDefinition}
	if desc != nil {
		node.Children = append(node.Children, desc)
	}
	node.Children = append(node.Children, p.parseName())
	p.expectPunct(":")
	node.Children = append(node.Children, p.parseTypeRef())
	if p.at(TokPunct, "=") {
		p.advance()
		node.Children = append(node.Children, p.parseValue())
	}
	node.Children = append(node.Children, p.parseDirectives()...)
	node.Range = diag.ByteRange{Start: start, End: p.lastEnd()}
	return node
}

func (p *parser) parseInterfaceTypeDefinition() *Node {
	start := p.tok.Start
	p.advance() // 'interface'
	node := &Node{Kind: NodeInterfaceTypeDefinition}
	node.Children = append(node.Children, p.parseName())
	if p.atName("implements") {
		p.advance()
		for {
			if p.at(TokPunct, "&") {
				p.advance()
				continue
			}
			if p.tok.Kind != TokName {
				break
			}
			node.Children = append(node.Children, p.parseNamedType())
		}
	}
	node.Children = append(node.Children, p.parseDirectives()...)
	if p.at(TokPunct, "{") {
		node.Children = append(node.Children, p.parseFieldDefinitions()...)
	}
	node.Range = diag.ByteRange{Start: start, End: p.lastEnd()}
	return node
}

func (p *parser) parseUnionTypeDefinition() *Node {
	start := p.tok.Start
	p.advance() // 'union'
	node := &Node{Kind: NodeUnionTypeDefinition}
	node.Children = append(node.Children, p.parseName())
	node.Children = append(node.Children, p.parseDirectives()...)
	if p.at(TokPunct, "=") {
		p.advance()
		if p.at(TokPunct, "|") { // leading pipe is optional per the grammar
			p.advance()
		}
		node.Children = append(node.Children, p.parseNamedType())
		for p.at(TokPunct, "|") {
			p.advance()
			node.Children = append(node.Children, p.parseNamedType())
		}
	}
	node.Range = diag.ByteRange{Start: start, End: p.lastEnd()}
	return node
}

func (p *parser) parseEnumTypeDefinition() *Node {
	start := p.tok.Start
	p.advance() // 'enum'
	node := &Node{Kind: NodeEnumTypeDefinition}
	node.Children = append(node.Children, p.parseName())
	node.Children = append(node.Children, p.parseDirectives()...)
	if p.at(TokPunct, "{") {
		p.advance()
		for !p.at(TokPunct, "}") && p.tok.Kind != TokEOF {
			vStart := p.tok.Start
			var desc *Node
			if p.tok.Kind == TokString || p.tok.Kind == TokBlockString {
				desc = &Node{Kind: NodeDescription, Text: p.tok.Text, Range: diag.ByteRange{Start: p.tok.Start, End: p.tok.End}}
				p.advance()
			}
			v := &Node{Kind: NodeEnumValueDefinition}
			if desc != nil {
				v.Children = append(v.Children, desc)
			}
			v.Children = append(v.Children, p.parseName())
			v.Children = append(v.Children, p.parseDirectives()...)
			v.Range = diag.ByteRange{Start: vStart, End: p.lastEnd()}
			node.Children = append(node.Children, v)
		}
		p.expectPunct("}")
	}
	node.Range = diag.ByteRange{Start: start, End: p.lastEnd()}
	return node
}

func (p *parser) parseScalarTypeDefinition() *Node {
	start := p.tok.Start
	p.advance() // 'scalar'
	node := &Node{Kind: NodeScalarTypeDefinition}
	node.Children = append(node.Children, p.parseName())
	node.Children = append(node.Children, p.parseDirectives()...)
	node.Range = diag.ByteRange{Start: start, End: p.lastEnd()}
	return node
}

func (p *parser) parseInputObjectTypeDefinition() *Node {
	start := p.tok.Start
	p.advance() // 'input'
	node := &Node{Kind: NodeInputObjectTypeDefinition}
	node.Children = append(node.Children, p.parseName())
	node.Children = append(node.Children, p.parseDirectives()...)
	if p.at(TokPunct, "{") {
		p.advance()
		for !p.at(TokPunct, "}") && p.tok.Kind != TokEOF {
			node.Children = append(node.Children, p.parseInputValueDefinition())
		}
		p.expectPunct("}")
	}
	node.Range = diag.ByteRange{Start: start, End: p.lastEnd()}
	return node
}

func (p *parser) parseDirectiveDefinition() *Node {
	start := p.tok.Start
	p.advance() // 'directive'
	node := &Node{Kind: NodeDirectiveDefinition}
	p.expectPunct("@")
	node.Children = append(node.Children, p.parseName())
	if p.at(TokPunct, "(") {
		node.Children = append(node.Children, p.parseInputValueDefinitions())
	}
	if p.atName("repeatable") {
		p.advance()
	}
	if p.atName("on") {
		p.advance()
		if p.at(TokPunct, "|") {
			p.advance()
		}
		node.Children = append(node.Children, p.parseName())
		for p.at(TokPunct, "|") {
			p.advance()
			node.Children = append(node.Children, p.parseName())
		}
	}
	node.Range = diag.ByteRange{Start: start, End: p.lastEnd()}
	return node
}

// parseExtension handles "extend <type-system-definition>". Only object
// type extensions get their own CST kind (the common case in practice,
// e.g. host-framework directive annotations layered onto a base
// schema); other extension kinds reuse their base definition's node
// kind, since HIR derivation treats "is this an extension" as a
// property of where the node came from, not a distinct shape.
func (p *parser) parseExtension() *Node {
	start := p.tok.Start
	p.advance() // 'extend'
	var node *Node
	switch {
	case p.atName("type"):
		node = p.parseObjectTypeDefinition(true)
	case p.atName("interface"):
		node = p.parseInterfaceTypeDefinition()
	case p.atName("union"):
		node = p.parseUnionTypeDefinition()
	case p.atName("enum"):
		node = p.parseEnumTypeDefinition()
	case p.atName("scalar"):
		node = p.parseScalarTypeDefinition()
	case p.atName("input"):
		node = p.parseInputObjectTypeDefinition()
	case p.atName("schema"):
		node = p.parseSchemaDefinition()
	default:
		p.errorf("expected type system definition after 'extend'")
		node = &Node{Kind: NodeError, Range: diag.ByteRange{Start: p.tok.Start, End: p.tok.End}}
	}
	node.Range.Start = start
	return node
}
