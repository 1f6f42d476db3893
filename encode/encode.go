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

package encode

import "strings"

// Component identifies the URI component a value is substituted into.
// The component determines which characters may appear unescaped.
type Component int

const (
	// Scheme allows alphanumerics and "+-.".
	Scheme Component = iota
	// Authority is the composite userinfo@host:port component.
	Authority
	// UserInfo is the user information subcomponent of the authority.
	UserInfo
	// Host is the registered-name host subcomponent.
	Host
	// Port allows only digits.
	Port
	// Path is a full path, slashes allowed.
	Path
	// PathSegment is a single path segment, slashes escaped.
	PathSegment
	// Query is a full query string.
	Query
	// QueryParam is a single query name or value; "=", "&", and "+" are
	// escaped in addition to the characters illegal in Query.
	QueryParam
	// Fragment is the fragment component.
	Fragment
)

const (
	alpha      = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digit      = "0123456789"
	unreserved = alpha + digit + "-._~"
	subDelims  = "!$&'()*+,;="
)

// legal[c] marks the ASCII characters that need no escaping in component c.
// Sets follow RFC 3986 productions; QueryParam additionally escapes the
// separators that would change query structure.
var legal [Fragment + 1][128]bool

func init() {
	mark := func(c Component, chars string) {
		for i := 0; i < len(chars); i++ {
			legal[c][chars[i]] = true
		}
	}

	mark(Scheme, alpha+digit+"+-.")
	mark(Authority, unreserved+subDelims+":@")
	mark(UserInfo, unreserved+subDelims+":")
	mark(Host, unreserved+subDelims)
	mark(Port, digit)
	mark(PathSegment, unreserved+subDelims+":@")
	mark(Path, unreserved+subDelims+":@/")
	mark(Query, unreserved+subDelims+":@/?")
	mark(QueryParam, unreserved+"!$'()*,;:@/?")
	mark(Fragment, unreserved+subDelims+":@/?")
}

const hexDigits = "0123456789ABCDEF"

// Encode percent-encodes every character of s that is illegal in
// component c.
func Encode(s string, c Component) string {
	return encode(s, c, false)
}

// Contextual percent-encodes the characters of s that are illegal in
// component c, except that a '%' opening a valid percent-escape sequence
// is copied verbatim. This prevents double-encoding of values that are
// already (partially) encoded.
func Contextual(s string, c Component) string {
	return encode(s, c, true)
}

func encode(s string, c Component, contextual bool) string {
	table := &legal[c]

	clean := true
	for i := 0; i < len(s); i++ {
		if ch := s[i]; ch >= 128 || !table[ch] {
			clean = false
			break
		}
	}
	if clean {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 8)
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case ch < 128 && table[ch]:
			b.WriteByte(ch)
		case contextual && ch == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]):
			b.WriteString(s[i : i+3])
			i += 2
		default:
			b.WriteByte('%')
			b.WriteByte(hexDigits[ch>>4])
			b.WriteByte(hexDigits[ch&0x0F])
		}
	}

	return b.String()
}

func isHex(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}
