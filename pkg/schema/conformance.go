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

// Package schema merges a project's schema files into one type map and
// validates it, surfacing diagnostics mapped back to source ranges.
//
// The merge and structural validation (duplicate/undefined types,
// dangling interface/union targets, missing root types) are hand-rolled
// against the HIR layer's TypeDef map, since that is already derived
// from our own tolerant parse. graphql-go/graphql's SDL parser is used
// narrowly alongside it as a conformance check: it is a strict,
// panic-on-first-error parser with no error recovery, so it cannot
// drive the IDE's "always show something" requirement, but it does
// catch lexical/grammar mistakes our own tolerant parser's recovery
// mode might otherwise silently paper over.
package schema

import (
	"github.com/graphql-go/graphql/language/parser"
	"github.com/graphql-go/graphql/language/source"
	"github.com/graphql-go/graphql/gqlerrors"

	"github.com/kraklabs/graphqlcore/pkg/diag"
)

// ConformanceCheck runs src through graphql-go/graphql's SDL parser and
// converts any syntax error into a Diagnostic. Locations are 1-indexed
// (line, column) in the compiler library's convention; missing location
// information maps to a zero range at the origin, per the diagnostic
// mapping rule.
func ConformanceCheck(uri, src string) []diag.Diagnostic {
	_, err := parser.Parse(parser.ParseParams{
		Source: source.NewSource(&source.Source{Body: []byte(src), Name: uri}),
	})
	if err == nil {
		return nil
	}

	line, col := 0, 0
	if gerr, ok := err.(*gqlerrors.Error); ok && len(gerr.Locations) > 0 {
		line = gerr.Locations[0].Line - 1
		col = gerr.Locations[0].Column - 1
	}
	if line < 0 {
		line = 0
	}
	if col < 0 {
		col = 0
	}

	return []diag.Diagnostic{{
		Severity: diag.Error,
		Message:  err.Error(),
		Range:    diag.Range{Start: diag.Position{Line: line, Character: col}, End: diag.Position{Line: line, Character: col}},
		Source:   "graphql-go",
	}}
}
