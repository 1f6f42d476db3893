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
	"errors"
	"fmt"
)

var (
	// ErrTemplateEmpty indicates that an empty template string was passed to New.
	// The empty template is reserved for the Empty singleton.
	ErrTemplateEmpty = errors.New("template must not be empty")

	// ErrNilBindings indicates that a nil bindings map was passed to Match.
	ErrNilBindings = errors.New("bindings map must not be nil")

	// ErrNilGroups indicates that a nil group slice was passed to MatchGroups.
	ErrNilGroups = errors.New("group values slice must not be nil")

	// ErrUnbalancedBraces indicates that a template contains an unterminated
	// or stray brace outside a placeholder.
	ErrUnbalancedBraces = errors.New("unbalanced braces in template")

	// ErrNameInvalid indicates that a placeholder name does not match the
	// identifier grammar (a word character followed by word, hyphen, or dot
	// characters).
	ErrNameInvalid = errors.New("invalid placeholder name")
)

// CompileError is returned when the regular expression generated from a
// template does not compile, typically because of a malformed explicit
// placeholder constraint.
type CompileError struct {
	Template string // the raw template the source was generated from
	Source   string // the generated pattern source that failed to compile
	Err      error  // the underlying regexp error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("template %q: generated pattern %q does not compile: %v", e.Template, e.Source, e.Err)
}

func (e *CompileError) Unwrap() error { return e.Err }

// MissingValueError is returned by component-aware URI construction when a
// placeholder has no bound value. Plain Template.Expand deliberately does
// not share this behavior: it substitutes the empty string instead.
type MissingValueError struct {
	Name string // the placeholder that had no value
}

func (e *MissingValueError) Error() string {
	return fmt.Sprintf("template placeholder %q has no value", e.Name)
}
