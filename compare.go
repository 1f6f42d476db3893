// Copyright 2025 The Rivaas Authors
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

package uritemplate

import (
	"cmp"
	"slices"
	"strings"
)

// Compare orders templates by specificity, most specific first, so that a
// collection of templates that could match the same URI is disambiguated
// deterministically. The ordering key, in priority order:
//
//  1. more explicit constraints first
//  2. more literal characters first
//  3. fewer placeholders first
//  4. lexicographic comparison of the generated pattern source
//
// The final tie-break makes this a strict total order: Compare returns 0
// iff the templates are Equal (identical pattern sources), so it can order
// any collection without a separate equality check.
func Compare(a, b *Template) int {
	if c := cmp.Compare(b.explicit, a.explicit); c != 0 {
		return c
	}
	if c := cmp.Compare(b.literals, a.literals); c != 0 {
		return c
	}
	if c := cmp.Compare(len(a.variables), len(b.variables)); c != 0 {
		return c
	}

	return strings.Compare(a.pattern.source, b.pattern.source)
}

// SortBySpecificity sorts templates in place, most specific first,
// using Compare.
func SortBySpecificity(templates []*Template) {
	slices.SortStableFunc(templates, Compare)
}
