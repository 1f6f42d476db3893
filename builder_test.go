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

func TestBuildURIAllComponents(t *testing.T) {
	t.Parallel()

	uri, err := BuildURI(Components{
		Scheme:   "https",
		UserInfo: "{user}",
		Host:     "{host}",
		Port:     "8080",
		Path:     "/files/{name}",
		Query:    "v={rev}",
		Fragment: "{section}",
	}, map[string]string{
		"user":    "alice",
		"host":    "example.com",
		"name":    "report",
		"rev":     "3",
		"section": "top",
	}, EncodeStrict)
	require.NoError(t, err)

	assert.Equal(t, "https://alice@example.com:8080/files/report?v=3#top", uri)
}

func TestBuildURIAuthorityFallback(t *testing.T) {
	t.Parallel()

	uri, err := BuildURI(Components{
		Scheme:    "http",
		Authority: "{auth}",
		Path:      "/x",
	}, map[string]string{"auth": "example.org"}, EncodeStrict)
	require.NoError(t, err)
	assert.Equal(t, "http://example.org/x", uri)

	// Host takes precedence over authority.
	uri, err = BuildURI(Components{
		Scheme:    "http",
		Authority: "{auth}",
		Host:      "other.org",
		Path:      "/x",
	}, map[string]string{"auth": "example.org"}, EncodeStrict)
	require.NoError(t, err)
	assert.Equal(t, "http://other.org/x", uri)
}

func TestBuildURIPathOnly(t *testing.T) {
	t.Parallel()

	uri, err := BuildURI(Components{Path: "/users/{id}"},
		map[string]string{"id": "42"}, EncodeStrict)
	require.NoError(t, err)
	assert.Equal(t, "/users/42", uri)
}

func TestBuildURIStrictEncoding(t *testing.T) {
	t.Parallel()

	uri, err := BuildURI(Components{Path: "/files/{name}"},
		map[string]string{"name": "annual report"}, EncodeStrict)
	require.NoError(t, err)
	assert.Equal(t, "/files/annual%20report", uri)

	// Strict mode re-encodes an already encoded value.
	uri, err = BuildURI(Components{Path: "/files/{name}"},
		map[string]string{"name": "annual%20report"}, EncodeStrict)
	require.NoError(t, err)
	assert.Equal(t, "/files/annual%2520report", uri)
}

func TestBuildURIContextualEncoding(t *testing.T) {
	t.Parallel()

	// Contextual mode leaves valid percent-escapes alone and encodes the
	// rest.
	uri, err := BuildURI(Components{Path: "/files/{name}"},
		map[string]string{"name": "annual%20report v2"}, EncodeContextual)
	require.NoError(t, err)
	assert.Equal(t, "/files/annual%20report%20v2", uri)
}

func TestBuildURIQueryParamEncoding(t *testing.T) {
	t.Parallel()

	uri, err := BuildURI(Components{Query: "q={term}"},
		map[string]string{"term": "a=b&c"}, EncodeStrict)
	require.NoError(t, err)
	assert.Equal(t, "?q=a%3Db%26c", uri)
}

func TestBuildURISchemeAndPortUnencoded(t *testing.T) {
	t.Parallel()

	// Scheme and port values are substituted without encoding.
	uri, err := BuildURI(Components{
		Scheme: "{s}",
		Host:   "h",
		Port:   "{p}",
	}, map[string]string{"s": "http", "p": "8080"}, EncodeStrict)
	require.NoError(t, err)
	assert.Equal(t, "http://h:8080", uri)
}

func TestBuildURISharedBindingAcrossComponents(t *testing.T) {
	t.Parallel()

	// One binding map is shared: the same name in two components binds to
	// one value, encoded per the component it lands in.
	uri, err := BuildURI(Components{
		Path:  "/tags/{tag}",
		Query: "tag={tag}",
	}, map[string]string{"tag": "a b"}, EncodeStrict)
	require.NoError(t, err)
	assert.Equal(t, "/tags/a%20b?tag=a%20b", uri)
}

func TestBuildURIMissingValue(t *testing.T) {
	t.Parallel()

	_, err := BuildURI(Components{Path: "/users/{id}"}, map[string]string{}, EncodeStrict)

	var missing *MissingValueError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "id", missing.Name)
}

func TestBuildURILenientVersusStrictTiers(t *testing.T) {
	t.Parallel()

	// The same template is lenient through Expand and strict through the
	// component-aware builder.
	tpl := MustNew("/users/{id}")
	assert.Equal(t, "/users/", tpl.Expand(map[string]string{}))

	_, err := BuildURI(Components{Path: "/users/{id}"}, map[string]string{}, EncodeStrict)
	var missing *MissingValueError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "id", missing.Name)
}

func TestBuildURIValuesPositional(t *testing.T) {
	t.Parallel()

	uri, err := BuildURIValues(Components{
		Host:  "{host}",
		Path:  "/users/{id}",
		Query: "ref={ref}",
	}, []string{"example.com", "42", "inbox"}, EncodeStrict)
	require.NoError(t, err)
	assert.Equal(t, "//example.com/users/42?ref=inbox", uri)
}

func TestBuildURIValuesSharedCursor(t *testing.T) {
	t.Parallel()

	// A name already assigned reuses its (encoded) value; the cursor only
	// advances for unseen names, across component boundaries.
	uri, err := BuildURIValues(Components{
		Path:  "/users/{id}/copy/{id}",
		Query: "id={id}&page={page}",
	}, []string{"4 2", "7"}, EncodeStrict)
	require.NoError(t, err)
	assert.Equal(t, "/users/4%202/copy/4%202?id=4%202&page=7", uri)
}

func TestBuildURIValuesExhausted(t *testing.T) {
	t.Parallel()

	_, err := BuildURIValues(Components{Path: "/{a}/{b}"}, []string{"only"}, EncodeStrict)

	var missing *MissingValueError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "b", missing.Name)
}

func TestBuildURIConstraintStrippedFromComponent(t *testing.T) {
	t.Parallel()

	// Component templates may carry explicit constraints; substitution uses
	// the normalized form.
	uri, err := BuildURI(Components{Path: "/users/{id:[0-9]+}"},
		map[string]string{"id": "42"}, EncodeStrict)
	require.NoError(t, err)
	assert.Equal(t, "/users/42", uri)
}

func TestBuildURIMalformedComponent(t *testing.T) {
	t.Parallel()

	_, err := BuildURI(Components{Path: "/users/{id"}, map[string]string{"id": "42"}, EncodeStrict)
	assert.ErrorIs(t, err, ErrUnbalancedBraces)
}
