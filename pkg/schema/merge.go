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

package schema

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kraklabs/graphqlcore/pkg/diag"
	"github.com/kraklabs/graphqlcore/pkg/hir"
)

var builtinScalars = map[string]bool{
	"Int": true, "Float": true, "String": true, "Boolean": true, "ID": true,
}

// FileInput is one schema file's text, used to drive both the
// structural merge (via its already-derived FileStructureData) and the
// conformance check (via its raw source).
type FileInput struct {
	URI     string
	Source  string
	Structs hir.FileStructureData
}

// FileDiagnostic is a schema-merge finding attributed to the file it
// came from. Project-wide findings with no single owning file (a
// missing root type) carry an empty URI.
type FileDiagnostic struct {
	URI        string
	Diagnostic diag.Diagnostic
}

// MergedSchemaResult is the outcome of merging and validating a
// project's schema files. Schema is always populated — even when
// Diagnostics contains errors — per the "partial schema on validation
// failure" design decision: document validation needs a best-effort
// schema, and rejecting outright would cascade false positives onto
// every open document.
type MergedSchemaResult struct {
	Types       map[string]hir.TypeDef
	Diagnostics []FileDiagnostic

	// QueryType/MutationType/SubscriptionType name the schema's root
	// operation types, always "Query"/"Mutation"/"Subscription"; a
	// `schema { ... }` definition does not change them.
	QueryType        string
	MutationType     string
	SubscriptionType string
}

// BuildMergedSchema merges files (in the order given — definition order
// for tie-breaking follows SchemaFileIds order, which callers establish
// by the order of this slice) and validates the result.
func BuildMergedSchema(files []FileInput) MergedSchemaResult {
	result := MergedSchemaResult{
		QueryType:        "Query",
		MutationType:     "Mutation",
		SubscriptionType: "Subscription",
	}

	for _, f := range files {
		for _, d := range ConformanceCheck(f.URI, f.Source) {
			result.Diagnostics = append(result.Diagnostics, FileDiagnostic{URI: f.URI, Diagnostic: d})
		}
	}

	perFile := make([]hir.FileStructureData, len(files))
	for i, f := range files {
		perFile[i] = f.Structs
	}
	result.Types = hir.SchemaTypes(perFile)

	result.Diagnostics = append(result.Diagnostics, validateDuplicates(files)...)
	result.Diagnostics = append(result.Diagnostics, validateReferences(result.Types)...)
	result.Diagnostics = append(result.Diagnostics, validateRootTypes(result.Types, result.QueryType)...)

	return result
}

// validateDuplicates reports a type defined (non-extension) more than
// once across the merged file set. The diagnostic is attributed to the
// file carrying the duplicate, not the original definition.
func validateDuplicates(files []FileInput) []FileDiagnostic {
	var diags []FileDiagnostic
	seen := map[string]hir.TypeDef{}
	for _, f := range files {
		for _, td := range f.Structs.TypeDefs {
			if td.IsExtension {
				continue
			}
			if prev, ok := seen[td.Name]; ok {
				diags = append(diags, FileDiagnostic{URI: f.URI, Diagnostic: diag.Diagnostic{
					Severity: diag.Error,
					Message:  fmt.Sprintf("type %q is defined more than once (previously at %s)", td.Name, prev.File),
					Range:    td.NameRange,
					Source:   "graphql-linter",
					Code:     "duplicate-type-definition",
				}})
				continue
			}
			seen[td.Name] = td
		}
	}
	return diags
}

// validateReferences walks every type's field/argument/implements/union
// references and reports any name that resolves to neither a builtin
// scalar nor a known merged type, attributed to the defining type's file.
func validateReferences(types map[string]hir.TypeDef) []FileDiagnostic {
	var diags []FileDiagnostic
	known := func(name string) bool { return builtinScalars[name] || types[name].Name != "" }

	// Deterministic iteration for stable diagnostic ordering.
	names := make([]string, 0, len(types))
	for n := range types {
		names = append(names, n)
	}
	sort.Strings(names)

	for _, name := range names {
		td := types[name]
		for _, f := range td.Fields {
			if !known(f.Type.Name) {
				diags = append(diags, undefinedTypeDiag(td.File, f.Type.Name, f.NameRange))
			}
			for _, a := range f.Args {
				if !known(a.Type.Name) {
					diags = append(diags, undefinedTypeDiag(td.File, a.Type.Name, a.Range))
				}
			}
		}
		for _, in := range td.InputFields {
			if !known(in.Type.Name) {
				diags = append(diags, undefinedTypeDiag(td.File, in.Type.Name, in.Range))
			}
		}
		for _, impl := range td.Implements {
			if !known(impl) {
				diags = append(diags, undefinedTypeDiag(td.File, impl, td.NameRange))
			}
		}
		for _, member := range td.UnionTypes {
			if !known(member) {
				diags = append(diags, undefinedTypeDiag(td.File, member, td.NameRange))
			}
		}
	}
	return diags
}

func undefinedTypeDiag(uri, name string, r diag.Range) FileDiagnostic {
	return FileDiagnostic{URI: uri, Diagnostic: diag.Diagnostic{
		Severity: diag.Error,
		Message:  fmt.Sprintf("unknown type %q", name),
		Range:    r,
		Source:   "graphql-linter",
		Code:     "undefined-type",
	}}
}

// CanonicalSDL renders a merged type map into a deterministic SDL-like
// string: sorted by type name, with each type's fields/args/values in
// their own declared order (which is already stable per file). It is
// not meant to be re-parsed — only hashed — so it skips descriptions
// and directives and just needs to change whenever a type's externally
// observable shape changes.
func CanonicalSDL(types map[string]hir.TypeDef) string {
	names := make([]string, 0, len(types))
	for n := range types {
		names = append(names, n)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		td := types[name]
		fmt.Fprintf(&b, "%d %s", td.Kind, td.Name)
		if len(td.Implements) > 0 {
			fmt.Fprintf(&b, " implements %s", strings.Join(td.Implements, "&"))
		}
		if len(td.UnionTypes) > 0 {
			fmt.Fprintf(&b, " = %s", strings.Join(td.UnionTypes, "|"))
		}
		b.WriteString(" {")
		for _, f := range td.Fields {
			fmt.Fprintf(&b, "%s:%s", f.Name, f.Type.String())
			for _, a := range f.Args {
				fmt.Fprintf(&b, "(%s:%s)", a.Name, a.Type.String())
			}
			if f.Deprecated {
				b.WriteString("@deprecated")
			}
			b.WriteString(";")
		}
		for _, in := range td.InputFields {
			fmt.Fprintf(&b, "%s:%s;", in.Name, in.Type.String())
		}
		for _, ev := range td.EnumValues {
			fmt.Fprintf(&b, "%s;", ev.Name)
		}
		b.WriteString("}\n")
	}
	return b.String()
}

// validateRootTypes reports a missing Query root type — every schema
// must define one, even a schema with no `schema { ... }` block (which
// defaults the root operation type names). No single file owns this
// diagnostic, so it carries an empty URI.
func validateRootTypes(types map[string]hir.TypeDef, queryTypeName string) []FileDiagnostic {
	if _, ok := types[queryTypeName]; !ok {
		return []FileDiagnostic{{Diagnostic: diag.Diagnostic{
			Severity: diag.Error,
			Message:  fmt.Sprintf("schema has no %q root type", queryTypeName),
			Source:   "graphql-linter",
			Code:     "missing-root-type",
		}}}
	}
	return nil
}
