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

// Package encode percent-encodes values per URI component kind.
//
// Each [Component] carries its RFC 3986 set of legal characters. [Encode]
// always escapes illegal characters; [Contextual] additionally leaves
// substrings that are already valid percent-escapes untouched, so a value
// that was encoded once is not encoded twice.
//
//	encode.Encode("a b", encode.Path)          // "a%20b"
//	encode.Contextual("a%20b", encode.Path)    // "a%20b"
//	encode.Encode("a%20b", encode.Path)        // "a%2520b"
//
// Multi-byte runes are escaped byte-wise with uppercase hex digits.
package encode
