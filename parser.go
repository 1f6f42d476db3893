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
	"regexp"
	"strings"
)

// defaultConstraint is the pattern generated for a placeholder that declares
// no explicit constraint: one or more characters excluding the path
// separator, so a single placeholder cannot swallow multiple path segments.
const defaultConstraint = "[^/]+"

// placeholderName validates the placeholder identifier grammar: a word
// character followed by zero or more word, hyphen, or dot characters.
var placeholderName = regexp.MustCompile(`^\w[\w.-]*$`)

// templateNames finds {name} occurrences in a normalized template,
// capturing the name.
var templateNames = regexp.MustCompile(`\{(\w[\w.-]*)\}`)

// parseResult carries everything the parser extracts from one template:
// the normalized form, the generated pattern source, per-group metadata,
// and the counts the specificity comparator orders by.
type parseResult struct {
	raw        string
	normalized string   // raw with explicit constraints stripped, {name} retained
	source     string   // generated regular expression source
	groupNames []string // groupNames[i] names capturing group i+1; "" for structural groups
	variables  []string // placeholder names in first-occurrence order
	explicit   int      // placeholders declaring an explicit constraint
	literals   int      // characters in source not originating from placeholders
}

// parse scans a template left to right, alternating literal runs and
// {name} or {name:constraint} placeholders. Literal text is escaped into
// the pattern source; each placeholder becomes a capturing group holding
// either its explicit constraint or defaultConstraint.
func parse(template string) (*parseResult, error) {
	if template == "" {
		return nil, ErrTemplateEmpty
	}

	res := &parseResult{raw: template}
	var source, normalized strings.Builder
	seen := make(map[string]bool)

	for i := 0; i < len(template); {
		switch template[i] {
		case '{':
			name, constraint, hasConstraint, next, err := parsePlaceholder(template, i)
			if err != nil {
				return nil, err
			}

			if hasConstraint {
				source.WriteString("(" + constraint + ")")
				res.explicit++
			} else {
				source.WriteString("(" + defaultConstraint + ")")
			}
			normalized.WriteString("{" + name + "}")

			// The placeholder's own group binds the name; any capturing
			// groups inside an explicit constraint are structural and
			// shift subsequent indices without binding a name.
			res.groupNames = append(res.groupNames, name)
			for range countCapturingGroups(constraint) {
				res.groupNames = append(res.groupNames, "")
			}

			if !seen[name] {
				seen[name] = true
				res.variables = append(res.variables, name)
			}
			i = next
		case '}':
			return nil, fmt.Errorf("template %q: %w", template, ErrUnbalancedBraces)
		default:
			j := i
			for j < len(template) && template[j] != '{' && template[j] != '}' {
				j++
			}
			escaped := regexp.QuoteMeta(template[i:j])
			source.WriteString(escaped)
			normalized.WriteString(template[i:j])
			res.literals += len(escaped)
			i = j
		}
	}

	res.source = source.String()
	res.normalized = normalized.String()

	return res, nil
}

// parsePlaceholder parses the placeholder starting at the '{' at
// template[start]. It returns the name, the explicit constraint if one was
// declared after a ':', and the index just past the closing '}'. Braces
// nested inside the constraint (e.g. {code:\d{3}}) are respected.
func parsePlaceholder(template string, start int) (name, constraint string, hasConstraint bool, end int, err error) {
	depth := 1
	colon := -1
	for i := start + 1; i < len(template); i++ {
		switch template[i] {
		case '{':
			depth++
		case ':':
			if depth == 1 && colon < 0 {
				colon = i
			}
		case '}':
			depth--
			if depth > 0 {
				continue
			}
			if colon < 0 {
				name = template[start+1 : i]
			} else {
				name = template[start+1 : colon]
				constraint = template[colon+1 : i]
				hasConstraint = true
			}
			if !placeholderName.MatchString(name) {
				return "", "", false, 0, fmt.Errorf("template %q: placeholder name %q: %w", template, name, ErrNameInvalid)
			}
			return name, constraint, hasConstraint, i + 1, nil
		}
	}

	return "", "", false, 0, fmt.Errorf("template %q: %w", template, ErrUnbalancedBraces)
}

// countCapturingGroups counts the capturing groups an explicit constraint
// contributes to the assembled pattern. The scan is textual (escape- and
// character-class-aware) rather than a standalone compile of the
// constraint, because a constraint can be valid in context yet invalid in
// isolation; the assembled source's compile remains the authoritative
// validity check.
//
// A '(' opens a capturing group unless followed by '?', with two
// exceptions: the named forms (?P<name>...) and (?<name>...) capture.
// Go's regexp has no lookaround, so every other '(?' is non-capturing.
func countCapturingGroups(constraint string) int {
	n := 0
	inClass := false
	for i := 0; i < len(constraint); i++ {
		switch constraint[i] {
		case '\\':
			i++
		case '[':
			inClass = true
		case ']':
			inClass = false
		case '(':
			if inClass {
				continue
			}
			if i+1 >= len(constraint) || constraint[i+1] != '?' {
				n++
				continue
			}
			rest := constraint[i+2:]
			if strings.HasPrefix(rest, "<") && !strings.HasPrefix(rest, "<=") && !strings.HasPrefix(rest, "<!") ||
				strings.HasPrefix(rest, "P<") {
				n++
			}
		}
	}

	return n
}
