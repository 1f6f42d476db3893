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
	"fmt"
	"slices"
	"strings"
)

// Template is a compiled URI template: literal text interleaved with
// {name} or {name:constraint} placeholders. It matches URIs produced from
// the template, extracting placeholder bindings, and reconstructs URIs by
// substituting values.
//
// A Template is immutable after construction and safe for unlimited
// concurrent use.
type Template struct {
	raw           string
	normalized    string
	variables     []string
	explicit      int
	literals      int
	endsWithSlash bool
	pattern       *Pattern
}

// Empty is the degenerate template: empty pattern source, no variables.
// It is used as a default or sentinel, for example for a level of a route
// hierarchy that contributes no path segment. The empty template string is
// reserved for it; New rejects "".
var Empty = &Template{pattern: emptyPattern}

// New parses and compiles a URI template.
//
// Returns ErrTemplateEmpty for an empty template, a parse error for
// malformed placeholders, or a *CompileError if the generated pattern
// source does not compile.
func New(template string) (*Template, error) {
	res, err := parse(template)
	if err != nil {
		return nil, err
	}
	p, err := newPattern(template, res)
	if err != nil {
		return nil, err
	}

	return &Template{
		raw:           res.raw,
		normalized:    res.normalized,
		variables:     res.variables,
		explicit:      res.explicit,
		literals:      res.literals,
		endsWithSlash: strings.HasSuffix(res.raw, "/"),
		pattern:       p,
	}, nil
}

// MustNew is like New but panics on error. Use it for templates known at
// compile time.
func MustNew(template string) *Template {
	t, err := New(template)
	if err != nil {
		panic(fmt.Sprintf("uritemplate: %v", err))
	}

	return t
}

// Raw returns the original template string.
func (t *Template) Raw() string { return t.raw }

// Pattern returns the compiled pattern generated from the template.
func (t *Template) Pattern() *Pattern { return t.pattern }

// PatternSource returns the generated regular expression source.
func (t *Template) PatternSource() string { return t.pattern.source }

// String renders the generated pattern source.
func (t *Template) String() string { return t.pattern.source }

// Variables returns the placeholder names in order of first occurrence,
// duplicates removed.
func (t *Template) Variables() []string { return slices.Clone(t.variables) }

// VariableCount returns the number of distinct placeholder names.
func (t *Template) VariableCount() int { return len(t.variables) }

// HasVariable reports whether name is a placeholder of this template.
func (t *Template) HasVariable(name string) bool {
	return slices.Contains(t.variables, name)
}

// ExplicitConstraints returns the number of placeholders that declared an
// explicit constraint.
func (t *Template) ExplicitConstraints() int { return t.explicit }

// LiteralCharacters returns the number of characters in the generated
// pattern source that did not originate from placeholder expansion.
func (t *Template) LiteralCharacters() int { return t.literals }

// EndsWithSlash reports whether the raw template ends in '/'.
func (t *Template) EndsWithSlash() bool { return t.endsWithSlash }

// Equal reports whether two templates generate character-for-character
// identical pattern sources. Cosmetic spelling differences in the raw
// template do not matter; semantically equivalent but differently spelled
// constraints do.
func (t *Template) Equal(other *Template) bool {
	return other != nil && t.pattern.Equal(other.pattern)
}

// Match attempts to match uri against the template, populating bindings
// with placeholder name to matched value. See Pattern.Match for the
// clearing and repeated-placeholder semantics.
func (t *Template) Match(uri string, bindings map[string]string) (bool, error) {
	return t.pattern.Match(uri, bindings)
}

// MatchGroups attempts to match uri against the template, appending raw
// capturing group values to groups in group index order.
func (t *Template) MatchGroups(uri string, groups *[]string) (bool, error) {
	return t.pattern.MatchGroups(uri, groups)
}

// Expand substitutes placeholder values into the template. A placeholder
// without a value in the map is substituted by the empty string; this
// lenient form never fails. Repeated placeholders expand at every
// occurrence.
func (t *Template) Expand(values map[string]string) string {
	var b strings.Builder
	last := 0
	for _, m := range templateNames.FindAllStringSubmatchIndex(t.normalized, -1) {
		b.WriteString(t.normalized[last:m[0]])
		b.WriteString(values[t.normalized[m[2]:m[3]]])
		last = m[1]
	}
	b.WriteString(t.normalized[last:])

	return b.String()
}

// ExpandValues substitutes values positionally: each first occurrence of a
// placeholder name consumes the next value, and later occurrences of the
// same name reuse the assigned value, so repeated placeholders always
// expand consistently. Once values are exhausted, remaining placeholders
// expand to the empty string.
func (t *Template) ExpandValues(values ...string) string {
	return t.ExpandValuesRange(values, 0, len(values))
}

// ExpandValuesRange is ExpandValues consuming only values[offset:offset+length].
// The range is clamped to the slice bounds.
func (t *Template) ExpandValuesRange(values []string, offset, length int) string {
	v := max(offset, 0)
	end := min(offset+length, len(values))

	assigned := make(map[string]string)
	var b strings.Builder
	last := 0
	for _, m := range templateNames.FindAllStringSubmatchIndex(t.normalized, -1) {
		b.WriteString(t.normalized[last:m[0]])
		name := t.normalized[m[2]:m[3]]
		if val, ok := assigned[name]; ok {
			b.WriteString(val)
		} else if v < end {
			val := values[v]
			v++
			assigned[name] = val
			b.WriteString(val)
		}
		last = m[1]
	}
	b.WriteString(t.normalized[last:])

	return b.String()
}
