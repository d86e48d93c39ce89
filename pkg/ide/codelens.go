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

package ide

import (
	"fmt"

	"github.com/kraklabs/graphqlcore/pkg/diag"
	"github.com/kraklabs/graphqlcore/pkg/syntax"
)

// CodeLensKind classifies a CodeLens.
type CodeLensKind int

const (
	LensFragmentReferences CodeLensKind = iota
	LensDeprecatedFieldUsages
	LensCopyAsCurl
	LensRunOperation
)

// CodeLens is one actionable annotation anchored to a range, optionally
// carrying the locations it summarizes (e.g. the N references it
// counts) so a client can jump straight to them.
type CodeLens struct {
	Kind    CodeLensKind
	Range   diag.Range
	Title   string
	Targets []Location
}

// CodeLenses computes fv's lenses: one per fragment definition showing
// its reference count, one per deprecated schema field defined in fv
// showing its usage count, and one "Copy as cURL" (plus "Run" when
// endpointConfigured) per operation.
func CodeLenses(fv FileView, proj Project, endpointConfigured bool) []CodeLens {
	var out []CodeLens
	for _, loc := range regionsOf(fv) {
		doc := syntax.NewDocument(loc.root)
		for _, frag := range doc.Fragments {
			name := frag.Child(syntax.NodeName)
			if name == nil {
				continue
			}
			refs := FindFragmentReferences(proj.Documents, name.Text)
			out = append(out, CodeLens{
				Kind:    LensFragmentReferences,
				Range:   loc.toHostRange(loc.li.ToRange(name.Range)),
				Title:   fmt.Sprintf("%d references", len(refs)),
				Targets: refs,
			})
		}
		for _, op := range doc.Operations {
			nameRange := op.Range
			if name := op.Child(syntax.NodeName); name != nil {
				nameRange = name.Range
			}
			hostRange := loc.toHostRange(loc.li.ToRange(nameRange))
			out = append(out, CodeLens{Kind: LensCopyAsCurl, Range: hostRange, Title: "Copy as cURL"})
			if endpointConfigured {
				out = append(out, CodeLens{Kind: LensRunOperation, Range: hostRange, Title: "Run"})
			}
		}
	}

	for typeName, td := range proj.Schema.Types {
		if td.File != fv.URI {
			continue
		}
		for _, f := range td.Fields {
			if !f.Deprecated {
				continue
			}
			refs := FindFieldReferences(proj.Documents, typeName, f.Name, proj.Schema)
			out = append(out, CodeLens{
				Kind:    LensDeprecatedFieldUsages,
				Range:   f.NameRange,
				Title:   fmt.Sprintf("%d usages", len(refs)),
				Targets: refs,
			})
		}
	}
	return out
}
