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

// Package hir derives the structural view of a GraphQL file — names,
// signatures, and ranges that stay stable under selection-set/argument
// edits — from the syntax layer's CST. Queries keyed on this structure
// (rather than the raw parse tree) avoid re-running whenever a user
// edits inside an operation body.
package hir

import "github.com/kraklabs/graphqlcore/pkg/diag"

// TypeRef is the unwrapped shape of a GraphQL type reference: a base
// name plus list/non-null wrapper flags. Per the unwrapping rule, a
// list-of-non-null (`[T!]`) is recorded as IsList=true, IsNonNull=false,
// ItemNonNull=true; a non-null-list (`[T]!`) as IsList=true,
// IsNonNull=true, ItemNonNull=false. Doubly-nested lists are not used by
// the IDE layer and are conservatively treated as a single list level
// around the innermost named type.
type TypeRef struct {
	Name        string
	IsList      bool
	IsNonNull   bool // the reference itself (or the outer list) is non-null
	ItemNonNull bool // only meaningful when IsList is true
}

// String renders the type reference back into GraphQL SDL syntax, e.g.
// "[User!]!", for hover text and signature display.
func (t TypeRef) String() string {
	inner := t.Name
	if t.IsList {
		if t.ItemNonNull {
			inner = "[" + inner + "!]"
		} else {
			inner = "[" + inner + "]"
		}
	}
	if t.IsNonNull {
		inner += "!"
	}
	return inner
}

// ArgDef is an argument or input-field signature (shared shape for
// field arguments and input object fields).
type ArgDef struct {
	Name         string
	Type         TypeRef
	HasDefault   bool
	DefaultText  string
	Range        diag.Range
	Deprecated   bool
	DeprecReason string
}

// FieldSig is a single field's signature within an object/interface
// type definition.
type FieldSig struct {
	Name         string
	Type         TypeRef
	Args         []ArgDef
	Range        diag.Range // the field definition's full range
	NameRange    diag.Range // just the field name, for goto-definition targets
	Deprecated   bool
	DeprecReason string
}

// EnumVal is a single value of an enum type definition.
type EnumVal struct {
	Name         string
	Range        diag.Range
	Deprecated   bool
	DeprecReason string
}

// TypeKind classifies a TypeDef.
type TypeKind int

const (
	KindObject TypeKind = iota
	KindInterface
	KindUnion
	KindEnum
	KindScalar
	KindInputObject
)

// TypeDef is a schema-wide type definition's structural signature:
// enough to answer "what fields does this type have", "what does this
// type implement", "is this field deprecated" without re-parsing.
type TypeDef struct {
	Name       string
	Kind       TypeKind
	File       string // URI of the defining file
	Range      diag.Range
	NameRange  diag.Range
	Fields     []FieldSig      // object/interface
	Implements []string        // object/interface
	UnionTypes []string        // union
	EnumValues []EnumVal       // enum
	InputFields []ArgDef       // input object
	IsExtension bool
}

// VarSig is an operation's variable definition signature.
type VarSig struct {
	Name       string
	Type       TypeRef
	HasDefault bool
	Range      diag.Range
}

// OperationStructure is one operation definition's structural view.
type OperationStructure struct {
	Name       string // empty for anonymous operations
	Kind       string // "query" | "mutation" | "subscription"
	Variables  []VarSig
	Range      diag.Range
	NameRange  diag.Range // zero-value Range when anonymous

	// BlockIndex identifies which extracted embedded block (or -1 for
	// the file's own top-level text) this operation came from.
	BlockIndex int

	// Index is a file-unique identifier: block-local position offset by
	// a per-block multiplier, so an operation in block 2 never collides
	// with one in block 0 or the file's own top-level text.
	Index int
}

// FragmentStructure is one fragment definition's structural view.
type FragmentStructure struct {
	Name       string
	TypeName   string // the "on TypeName" target
	Range      diag.Range
	NameRange  diag.Range
	BlockIndex int
	Index      int
	File       string // URI of the defining file, set by all_fragments
}

// FileStructureData is the full structural view of one file: every
// type-system definition, operation, and fragment derivable from its
// CST (including any embedded blocks), with ranges in host-file
// coordinates.
type FileStructureData struct {
	TypeDefs   []TypeDef
	Operations []OperationStructure
	Fragments  []FragmentStructure
}
