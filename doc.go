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

// Package uritemplate compiles URI template strings into reusable
// matchers and generators.
//
// A template is literal text interleaved with {name} placeholders,
// optionally constrained by an explicit regular expression per
// placeholder ({id:[0-9]+}). From one template the package derives:
//
//   - a compiled pattern that recognizes URIs produced from the template
//     and extracts placeholder bindings ([Template.Match]),
//   - substitution back into concrete URIs, leniently
//     ([Template.Expand]) or component-aware with per-component
//     percent-encoding ([BuildURI]),
//   - a deterministic specificity order ([Compare]) so that when several
//     templates could match the same URI, the most specific wins.
//
// # Quick Start
//
//	t := uritemplate.MustNew("/users/{id:[0-9]+}/files/{name}")
//
//	bindings := map[string]string{}
//	if ok, _ := t.Match("/users/42/files/report", bindings); ok {
//	    // bindings["id"] == "42", bindings["name"] == "report"
//	}
//
//	uri := t.Expand(map[string]string{"id": "42", "name": "report"})
//	// "/users/42/files/report"
//
// # Route Disambiguation
//
// A [Set] keeps templates in specificity order and resolves lookups to
// the most specific matching template:
//
//	s := uritemplate.NewSet()
//	s.Add(uritemplate.MustNew("/users/me"), handleMe)
//	s.Add(uritemplate.MustNew("/users/{id}"), handleUser)
//
//	m, ok := s.Lookup("/users/me") // resolves to /users/me, not /users/{id}
//
// # Constructor Pattern
//
//	- New returns (*Template, error): template compilation can fail on
//	  malformed placeholders or constraints that do not compile.
//	- MustNew panics and is meant for templates known at compile time.
//	- NewSet returns *Set (no error): a set is a plain data structure.
//
// # Concurrency
//
// Template, Pattern, and the encode tables are immutable after
// construction; share them freely. Every match or expand call is an
// independent computation with no state retained between calls. The only
// mutable containers are the caller-supplied binding maps and group
// slices, owned by the caller for the duration of one call.
//
// # Observability
//
// A [Recorder] records registration and lookup measurements through
// OpenTelemetry, exported via Prometheus, OTLP, stdout, or a
// caller-supplied meter provider. Attach it to a Set with [WithMetrics].
package uritemplate
