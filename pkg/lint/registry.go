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

package lint

import "github.com/kraklabs/graphqlcore/pkg/validate"

// Registry holds the active rule set in a fixed, stable order —
// registration order, not a sorted-by-name order — so diagnostic
// output stays reproducible run to run.
type Registry struct {
	standalone     []StandaloneDocumentRule
	documentSchema []DocumentSchemaRule
	project        []ProjectRule
}

// NewRegistry returns an empty registry; use NewDefaultRegistry for the
// required baseline rule set.
func NewRegistry() *Registry {
	return &Registry{}
}

// NewDefaultRegistry returns a registry holding the six required
// baseline rules in the order they're introduced.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.RegisterStandalone(NoAnonymousOperations{})
	r.RegisterDocumentSchema(NoDeprecated{})
	r.RegisterStandalone(UnusedVariables{})
	r.RegisterProject(UniqueNames{})
	r.RegisterProject(UnusedFragments{})
	r.RegisterProject(UnusedFields{})
	return r
}

func (r *Registry) RegisterStandalone(rule StandaloneDocumentRule) {
	r.standalone = append(r.standalone, rule)
}

func (r *Registry) RegisterDocumentSchema(rule DocumentSchemaRule) {
	r.documentSchema = append(r.documentSchema, rule)
}

func (r *Registry) RegisterProject(rule ProjectRule) {
	r.project = append(r.project, rule)
}

// RunDocument runs every registered standalone and document+schema rule
// against doc, honoring cfg's per-rule severity overrides (a rule
// configured "off" is never invoked).
func (r *Registry) RunDocument(doc Document, schema validate.SchemaView, cfg LintConfig) []LintDiagnostic {
	var out []LintDiagnostic
	for _, rule := range r.standalone {
		sev, enabled := cfg.resolve(rule.Name(), rule.DefaultSeverity())
		if !enabled {
			continue
		}
		for _, d := range rule.CheckDocument(doc) {
			d.Diagnostic.Severity = sev
			d.Diagnostic.Rule = rule.Name()
			out = append(out, d)
		}
	}
	for _, rule := range r.documentSchema {
		sev, enabled := cfg.resolve(rule.Name(), rule.DefaultSeverity())
		if !enabled {
			continue
		}
		for _, d := range rule.CheckDocumentSchema(doc, schema) {
			d.Diagnostic.Severity = sev
			d.Diagnostic.Rule = rule.Name()
			out = append(out, d)
		}
	}
	return out
}

// RunProject runs every registered project rule against files, merging
// per-file results across rules.
func (r *Registry) RunProject(files ProjectFiles, cfg LintConfig) map[string][]LintDiagnostic {
	out := map[string][]LintDiagnostic{}
	for _, rule := range r.project {
		sev, enabled := cfg.resolve(rule.Name(), rule.DefaultSeverity())
		if !enabled {
			continue
		}
		for uri, ds := range rule.CheckProject(files) {
			for _, d := range ds {
				d.Diagnostic.Severity = sev
				d.Diagnostic.Rule = rule.Name()
				out[uri] = append(out[uri], d)
			}
		}
	}
	return out
}
