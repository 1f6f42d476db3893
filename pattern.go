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

import "regexp"

// Pattern is the compiled regular expression generated from a template,
// together with the ordered mapping from capturing group index to the
// placeholder name that group binds. Structural groups (capturing groups
// that appear inside an explicit constraint) carry no name.
//
// A Pattern is immutable after construction. Every match attempt is an
// independent computation; the compiled regexp is safe for concurrent use
// and no matcher state is shared between calls.
type Pattern struct {
	source     string
	groupNames []string
	re         *regexp.Regexp
}

// emptyPattern recognizes only the empty string and binds nothing. It backs
// the Empty template singleton.
var emptyPattern = &Pattern{re: regexp.MustCompile(`^(?:)$`)}

// newPattern compiles the generated source anchored to the full candidate
// string. The non-capturing wrapper keeps group indices aligned with
// groupNames.
func newPattern(template string, res *parseResult) (*Pattern, error) {
	re, err := regexp.Compile("^(?:" + res.source + ")$")
	if err != nil {
		return nil, &CompileError{Template: template, Source: res.source, Err: err}
	}

	return &Pattern{source: res.source, groupNames: res.groupNames, re: re}, nil
}

// Source returns the generated pattern source.
func (p *Pattern) Source() string { return p.source }

// String renders the generated pattern source.
func (p *Pattern) String() string { return p.source }

// Equal reports whether two patterns were generated from templates that
// compile to character-for-character identical sources. The group-name map
// is deliberately ignored: identical sources imply identical structure.
func (p *Pattern) Equal(other *Pattern) bool {
	return other != nil && p.source == other.source
}

// GroupCount returns the number of capturing groups in the pattern,
// including structural groups contributed by explicit constraints.
func (p *Pattern) GroupCount() int { return len(p.groupNames) }

// Match attempts to match the entire candidate string. On success the
// bindings map is populated with placeholder name to matched substring and
// the method returns true. The map is cleared before the attempt, so a
// failed match leaves it empty.
//
// When a name is bound by multiple capturing groups (a repeated
// placeholder), later groups overwrite earlier ones. That is only
// meaningful input if the candidate was produced by this template's own
// generator, which always substitutes one consistent value per name;
// adversarial input with inconsistent repeats simply yields the last
// group's value.
//
// Returns ErrNilBindings if bindings is nil.
func (p *Pattern) Match(candidate string, bindings map[string]string) (bool, error) {
	if bindings == nil {
		return false, ErrNilBindings
	}
	clear(bindings)

	m := p.re.FindStringSubmatch(candidate)
	if m == nil {
		return false, nil
	}
	for i, name := range p.groupNames {
		if name != "" {
			bindings[name] = m[i+1]
		}
	}

	return true, nil
}

// MatchGroups attempts to match the entire candidate string. On success
// each capturing group's matched substring is appended to groups in group
// index order, leaving name resolution to the caller. A failed match
// appends nothing.
//
// Returns ErrNilGroups if groups is nil.
func (p *Pattern) MatchGroups(candidate string, groups *[]string) (bool, error) {
	if groups == nil {
		return false, ErrNilGroups
	}

	m := p.re.FindStringSubmatch(candidate)
	if m == nil {
		return false, nil
	}
	*groups = append(*groups, m[1:]...)

	return true, nil
}
