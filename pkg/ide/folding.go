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

import "github.com/kraklabs/graphqlcore/pkg/syntax"

// FoldingRange is a foldable line span in a host file.
type FoldingRange struct {
	StartLine int
	EndLine   int
}

var foldableKinds = map[syntax.NodeKind]bool{
	syntax.NodeSelectionSet:              true,
	syntax.NodeOperationDefinition:       true,
	syntax.NodeFragmentDefinition:        true,
	syntax.NodeObjectTypeDefinition:      true,
	syntax.NodeObjectTypeExtension:       true,
	syntax.NodeInterfaceTypeDefinition:   true,
	syntax.NodeInputObjectTypeDefinition: true,
	syntax.NodeEnumTypeDefinition:        true,
	syntax.NodeUnionTypeDefinition:       true,
	syntax.NodeDescription:               true,
}

// FoldingRanges returns a foldable span for every selection set,
// operation/fragment/type body, and multi-line block description in fv,
// skipping any whose start and end land on the same line.
func FoldingRanges(fv FileView) []FoldingRange {
	var out []FoldingRange
	for _, loc := range regionsOf(fv) {
		syntax.Walk(loc.root, func(n *syntax.Node) bool {
			if !foldableKinds[n.Kind] {
				return true
			}
			r := loc.toHostRange(loc.li.ToRange(n.Range))
			if r.Start.Line != r.End.Line {
				out = append(out, FoldingRange{StartLine: r.Start.Line, EndLine: r.End.Line})
			}
			return true
		})
	}
	return out
}
