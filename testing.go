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
	"testing"
	"time"
)

// TestingRecorder creates a Recorder suitable for unit tests: a stdout
// provider with a long export interval so nothing is printed during the
// test, shut down via t.Cleanup.
//
// Example:
//
//	func TestSomething(t *testing.T) {
//	    t.Parallel()
//	    recorder := uritemplate.TestingRecorder(t)
//	    s := uritemplate.NewSet(uritemplate.WithMetrics(recorder))
//	    // ...
//	}
func TestingRecorder(t testing.TB, opts ...RecorderOption) *Recorder {
	t.Helper()

	defaultOpts := []RecorderOption{
		WithServiceName("uritemplate-test"),
		WithStdout(),
		WithExportInterval(time.Hour),
	}
	allOpts := append(defaultOpts, opts...)

	r, err := NewRecorder(allOpts...)
	if err != nil {
		t.Fatalf("TestingRecorder: failed to create recorder: %v", err)
	}

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := r.Shutdown(ctx); err != nil {
			t.Logf("TestingRecorder: shutdown warning: %v", err)
		}
	})

	return r
}
