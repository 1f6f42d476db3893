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
	"context"
	"slices"
	"sync"
	"time"
)

// Set is a collection of templates kept in specificity order, each carrying
// a caller-supplied payload (typically a handler descriptor). It is the
// explicit, statically declared registration surface: callers register
// template/payload pairs and Lookup disambiguates deterministically in
// favor of the most specific matching template.
//
// Registration and lookup may run concurrently; registration is expected
// during setup, lookups dominate afterwards.
type Set struct {
	mu       sync.RWMutex
	entries  []setEntry
	recorder *Recorder
}

type setEntry struct {
	template *Template
	payload  any
}

// Match is a successful Set lookup: the winning template, its payload, and
// the placeholder bindings extracted from the URI.
type Match struct {
	Template *Template
	Payload  any
	Bindings map[string]string
}

// Option configures a Set.
type Option func(*Set)

// WithMetrics attaches a metrics Recorder to the Set. Registrations and
// lookups are then recorded as OpenTelemetry measurements.
func WithMetrics(r *Recorder) Option {
	return func(s *Set) {
		s.recorder = r
	}
}

// NewSet creates an empty template set.
func NewSet(opts ...Option) *Set {
	s := &Set{}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Add registers a template with its payload, keeping the set in
// specificity order. A template Equal to an already registered one (same
// generated pattern source) replaces that entry's payload instead of
// adding a duplicate. Every registration, replacements included, counts
// toward the registration metric.
func (s *Set) Add(t *Template, payload any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	defer s.recorder.recordRegistered(context.Background())

	for i, e := range s.entries {
		if e.template.Equal(t) {
			s.entries[i] = setEntry{template: t, payload: payload}
			return
		}
	}

	s.entries = append(s.entries, setEntry{template: t, payload: payload})
	slices.SortStableFunc(s.entries, func(a, b setEntry) int {
		return Compare(a.template, b.template)
	})
}

// Len returns the number of registered templates.
func (s *Set) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entries)
}

// Templates returns the registered templates, most specific first.
func (s *Set) Templates() []*Template {
	s.mu.RLock()
	defer s.mu.RUnlock()

	templates := make([]*Template, len(s.entries))
	for i, e := range s.entries {
		templates[i] = e.template
	}

	return templates
}

// Lookup matches uri against the registered templates, most specific
// first, and returns the first match. The returned bindings map is owned
// by the caller.
func (s *Set) Lookup(uri string) (*Match, bool) {
	start := time.Now()

	s.mu.RLock()
	defer s.mu.RUnlock()

	bindings := make(map[string]string)
	for _, e := range s.entries {
		ok, err := e.template.Match(uri, bindings)
		if err != nil {
			continue
		}
		if ok {
			s.recorder.recordLookup(context.Background(), time.Since(start), e.template.PatternSource())
			return &Match{Template: e.template, Payload: e.payload, Bindings: bindings}, true
		}
	}

	s.recorder.recordMiss(context.Background(), time.Since(start))

	return nil, false
}
