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
	"strings"

	"rivaas.dev/uritemplate/encode"
)

// EncodeMode selects how values substituted during component-aware URI
// construction are percent-encoded.
type EncodeMode uint8

const (
	// EncodeStrict always percent-encodes characters illegal for the
	// component a value is substituted into.
	EncodeStrict EncodeMode = iota
	// EncodeContextual percent-encodes illegal characters only if they are
	// not already part of a valid percent-escape, preventing
	// double-encoding of pre-encoded values.
	EncodeContextual
)

// Components holds up to eight independently templated URI components.
// An empty string means the component is absent. Authority is used only
// when UserInfo, Host, and Port are all absent.
type Components struct {
	Scheme    string
	Authority string
	UserInfo  string
	Host      string
	Port      string
	Path      string
	Query     string
	Fragment  string
}

// resolveFunc resolves one placeholder occurrence to its substituted value.
// comp and encodeValues describe the component being rendered, so the
// resolver can encode appropriately.
type resolveFunc func(name string, comp encode.Component, encodeValues bool, mode EncodeMode) (string, error)

// BuildURI composes a URI from the component templates, substituting
// placeholder values from one binding map shared across all components, so
// a name used in two components binds to one value across both. Each
// occurrence is percent-encoded per the component it lands in, except
// scheme and port, which are substituted unencoded.
//
// Unlike the lenient Template.Expand, every placeholder must have a value:
// a missing one fails with a *MissingValueError naming the placeholder.
func BuildURI(c Components, values map[string]string, mode EncodeMode) (string, error) {
	resolve := func(name string, comp encode.Component, encodeValues bool, mode EncodeMode) (string, error) {
		val, ok := values[name]
		if !ok {
			return "", &MissingValueError{Name: name}
		}
		if encodeValues {
			val = encodeValue(val, comp, mode)
		}

		return val, nil
	}

	return buildURI(c, resolve, mode)
}

// BuildURIValues is BuildURI with positional values: across all components,
// in rendering order, each first occurrence of a placeholder name consumes
// the next value; later occurrences of the same name reuse the value
// assigned to the first, in its already-encoded form, so repeats render
// identically. Exhausting the values while an unseen placeholder remains
// fails with a *MissingValueError.
func BuildURIValues(c Components, values []string, mode EncodeMode) (string, error) {
	assigned := make(map[string]string)
	cursor := 0
	resolve := func(name string, comp encode.Component, encodeValues bool, mode EncodeMode) (string, error) {
		if val, ok := assigned[name]; ok {
			return val, nil
		}
		if cursor >= len(values) {
			return "", &MissingValueError{Name: name}
		}
		val := values[cursor]
		cursor++
		if encodeValues {
			val = encodeValue(val, comp, mode)
		}
		assigned[name] = val

		return val, nil
	}

	return buildURI(c, resolve, mode)
}

func encodeValue(val string, comp encode.Component, mode EncodeMode) string {
	if mode == EncodeStrict {
		return encode.Encode(val, comp)
	}

	return encode.Contextual(val, comp)
}

// buildURI assembles the components in URI syntax order: scheme, the
// authority forms, path, query, fragment.
func buildURI(c Components, resolve resolveFunc, mode EncodeMode) (string, error) {
	var b strings.Builder

	if c.Scheme != "" {
		if err := buildComponent(&b, c.Scheme, encode.Scheme, resolve, mode, false); err != nil {
			return "", err
		}
		b.WriteByte(':')
	}

	if c.UserInfo != "" || c.Host != "" || c.Port != "" {
		b.WriteString("//")
		if c.UserInfo != "" {
			if err := buildComponent(&b, c.UserInfo, encode.UserInfo, resolve, mode, true); err != nil {
				return "", err
			}
			b.WriteByte('@')
		}
		if c.Host != "" {
			if err := buildComponent(&b, c.Host, encode.Host, resolve, mode, true); err != nil {
				return "", err
			}
		}
		if c.Port != "" {
			b.WriteByte(':')
			if err := buildComponent(&b, c.Port, encode.Port, resolve, mode, false); err != nil {
				return "", err
			}
		}
	} else if c.Authority != "" {
		b.WriteString("//")
		if err := buildComponent(&b, c.Authority, encode.Authority, resolve, mode, true); err != nil {
			return "", err
		}
	}

	if c.Path != "" {
		if err := buildComponent(&b, c.Path, encode.Path, resolve, mode, true); err != nil {
			return "", err
		}
	}

	if c.Query != "" {
		b.WriteByte('?')
		if err := buildComponent(&b, c.Query, encode.QueryParam, resolve, mode, true); err != nil {
			return "", err
		}
	}

	if c.Fragment != "" {
		b.WriteByte('#')
		if err := buildComponent(&b, c.Fragment, encode.Fragment, resolve, mode, true); err != nil {
			return "", err
		}
	}

	return b.String(), nil
}

// buildComponent renders one component template into b. Component strings
// without placeholders are copied verbatim without parsing.
func buildComponent(b *strings.Builder, template string, comp encode.Component, resolve resolveFunc, mode EncodeMode, encodeValues bool) error {
	if !strings.ContainsRune(template, '{') {
		b.WriteString(template)
		return nil
	}

	res, err := parse(template)
	if err != nil {
		return err
	}

	normalized := res.normalized
	last := 0
	for _, m := range templateNames.FindAllStringSubmatchIndex(normalized, -1) {
		b.WriteString(normalized[last:m[0]])
		val, err := resolve(normalized[m[2]:m[3]], comp, encodeValues, mode)
		if err != nil {
			return err
		}
		b.WriteString(val)
		last = m[1]
	}
	b.WriteString(normalized[last:])

	return nil
}
