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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIntrospection(t *testing.T) {
	t.Parallel()

	tpl, err := New("/users/{id:[0-9]+}/files/{name}/")
	require.NoError(t, err)

	assert.Equal(t, "/users/{id:[0-9]+}/files/{name}/", tpl.Raw())
	assert.Equal(t, []string{"id", "name"}, tpl.Variables())
	assert.Equal(t, 2, tpl.VariableCount())
	assert.True(t, tpl.HasVariable("id"))
	assert.False(t, tpl.HasVariable("nope"))
	assert.Equal(t, 1, tpl.ExplicitConstraints())
	assert.True(t, tpl.EndsWithSlash())
	assert.Equal(t, "/users/([0-9]+)/files/([^/]+)/", tpl.PatternSource())
	assert.Equal(t, tpl.PatternSource(), tpl.String(), "String renders the pattern source")
}

func TestNewErrors(t *testing.T) {
	t.Parallel()

	_, err := New("")
	assert.ErrorIs(t, err, ErrTemplateEmpty)

	_, err = New("/users/{id:[}")
	var compileErr *CompileError
	require.ErrorAs(t, err, &compileErr)
	assert.Equal(t, "/users/{id:[}", compileErr.Template)
	assert.Equal(t, "/users/([)", compileErr.Source)
}

func TestMustNewPanics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { MustNew("") })
	assert.NotPanics(t, func() { MustNew("/ok/{id}") })
}

func TestEmptySingleton(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", Empty.Raw())
	assert.Equal(t, "", Empty.PatternSource())
	assert.Zero(t, Empty.VariableCount())
	assert.Zero(t, Empty.ExplicitConstraints())
	assert.Zero(t, Empty.LiteralCharacters())
	assert.False(t, Empty.EndsWithSlash())
}

func TestTemplateEquality(t *testing.T) {
	t.Parallel()

	a := MustNew("/a/{x}")
	b := MustNew("/a/{y}")
	c := MustNew("/a/{x:[^/]+}")
	d := MustNew("/a/literal")

	// Equality is defined purely on the generated pattern source.
	assert.True(t, a.Equal(b), "different spelling, identical source")
	assert.True(t, a.Equal(c), "explicit constraint spelling the default compiles to the same source")
	assert.False(t, a.Equal(d))
	assert.False(t, a.Equal(nil))
}

func TestExpandLenient(t *testing.T) {
	t.Parallel()

	tpl := MustNew("/users/{id}/posts/{post}")

	assert.Equal(t, "/users/42/posts/hello",
		tpl.Expand(map[string]string{"id": "42", "post": "hello"}))

	// Missing values substitute the empty string; Expand never fails.
	assert.Equal(t, "/users/42/posts/", tpl.Expand(map[string]string{"id": "42"}))
	assert.Equal(t, "/users//posts/", tpl.Expand(nil))
}

func TestExpandStripsConstraints(t *testing.T) {
	t.Parallel()

	tpl := MustNew("/users/{id:[0-9]+}")
	assert.Equal(t, "/users/abc", tpl.Expand(map[string]string{"id": "abc"}),
		"expansion substitutes into the normalized template without validating constraints")
}

func TestExpandValuesPositional(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		template string
		values   []string
		want     string
	}{
		{
			name:     "distinct placeholders consume in order",
			template: "/{a}/{b}",
			values:   []string{"1", "2"},
			want:     "/1/2",
		},
		{
			name:     "repeated placeholder reuses first value",
			template: "/{x}/{x}",
			values:   []string{"p", "q"},
			want:     "/p/p",
		},
		{
			name:     "cursor advances only for unseen names",
			template: "/{x}/{x}/{y}",
			values:   []string{"p", "q"},
			want:     "/p/p/q",
		},
		{
			name:     "exhausted values resolve to empty",
			template: "/{a}/{b}",
			values:   []string{"1"},
			want:     "/1/",
		},
		{
			name:     "no values",
			template: "/users/{id}",
			values:   nil,
			want:     "/users/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tpl := MustNew(tt.template)
			assert.Equal(t, tt.want, tpl.ExpandValues(tt.values...))
		})
	}
}

func TestExpandValuesRange(t *testing.T) {
	t.Parallel()

	tpl := MustNew("/{a}/{b}")

	assert.Equal(t, "/2/3", tpl.ExpandValuesRange([]string{"1", "2", "3"}, 1, 2))
	assert.Equal(t, "/2/", tpl.ExpandValuesRange([]string{"1", "2", "3"}, 1, 1))
	assert.Equal(t, "/3/", tpl.ExpandValuesRange([]string{"1", "2", "3"}, 2, 5),
		"range is clamped to the slice bounds")
}

func TestMatchRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		template string
		values   map[string]string
	}{
		{
			name:     "simple segments",
			template: "/users/{id}/files/{name}",
			values:   map[string]string{"id": "42", "name": "report"},
		},
		{
			name:     "explicit constraint spanning separators",
			template: "/files/{path:.+}",
			values:   map[string]string{"path": "a/b/c"},
		},
		{
			name:     "repeated placeholder",
			template: "/{x}/between/{x}",
			values:   map[string]string{"x": "same"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tpl := MustNew(tt.template)
			uri := tpl.Expand(tt.values)

			bindings := map[string]string{}
			ok, err := tpl.Match(uri, bindings)
			require.NoError(t, err)
			assert.True(t, ok, "template must match its own expansion %q", uri)
			assert.Equal(t, tt.values, bindings)
		})
	}
}

func TestConstraintSpanningSeparators(t *testing.T) {
	t.Parallel()

	tpl := MustNew("/files/{path:.+}")

	bindings := map[string]string{}
	ok, err := tpl.Match("/files/a/b/c", bindings)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "a/b/c", bindings["path"])
}

func TestConcurrentMatching(t *testing.T) {
	t.Parallel()

	tpl := MustNew("/users/{id:[0-9]+}")

	done := make(chan struct{})
	for range 8 {
		go func() {
			defer func() { done <- struct{}{} }()
			for i := range 1000 {
				bindings := map[string]string{}
				ok, err := tpl.Match("/users/123", bindings)
				if err != nil || !ok || bindings["id"] != "123" {
					t.Errorf("concurrent match failed at iteration %d", i)
					return
				}
			}
		}()
	}
	for range 8 {
		<-done
	}
}
