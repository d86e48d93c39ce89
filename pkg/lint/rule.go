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

// Package lint runs a configurable set of rules over documents, a
// document plus its merged schema, or a whole project's files, and
// emits diagnostics with optional code fixes.
package lint

import (
	"github.com/kraklabs/graphqlcore/pkg/diag"
	"github.com/kraklabs/graphqlcore/pkg/hir"
	"github.com/kraklabs/graphqlcore/pkg/validate"
)

// Document is one executable document a rule can see: its own text,
// the host-file coordinates it lives at (URI + line offset for
// embedded blocks), and the structural data already derived for it.
type Document struct {
	URI        string
	Source     string
	LineOffset int
	Structs    hir.FileStructureData
}

// ProjectFiles is the whole set of documents and the merged schema
// view a ProjectRule inspects. AllFragments mirrors pkg/hir's
// project-wide fragment index so unique_names/unused_fragments don't
// need to recompute it.
type ProjectFiles struct {
	Documents    []Document
	Schema       validate.SchemaView
	AllFragments map[string]hir.FragmentStructure
}

// LintDiagnostic is a lint finding attributed to a specific file. Rule
// is always set to the originating rule's name so config severity
// overrides and IDE grouping can key on it.
type LintDiagnostic struct {
	URI        string
	Diagnostic diag.Diagnostic
}

// StandaloneDocumentRule needs only one document's own content: no
// schema, no project-wide state. Cheap enough to run on every
// keystroke.
type StandaloneDocumentRule interface {
	Name() string
	Description() string
	DefaultSeverity() diag.Severity
	CheckDocument(doc Document) []LintDiagnostic
}

// DocumentSchemaRule needs one document plus the merged schema (e.g.
// to resolve whether a selected field is deprecated).
type DocumentSchemaRule interface {
	Name() string
	Description() string
	DefaultSeverity() diag.Severity
	CheckDocumentSchema(doc Document, schema validate.SchemaView) []LintDiagnostic
}

// ProjectRule needs the whole project's files at once (cross-file
// uniqueness, usage counting).
type ProjectRule interface {
	Name() string
	Description() string
	DefaultSeverity() diag.Severity
	CheckProject(files ProjectFiles) map[string][]LintDiagnostic
}
