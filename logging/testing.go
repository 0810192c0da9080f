// Copyright 2026 The LogModule Authors
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

package logging

import (
	"bytes"
	"sync"
)

// EventRecorder captures operational events for test assertions.
// Safe for concurrent use.
type EventRecorder struct {
	mu     sync.Mutex
	events []Event
}

// Handler returns an EventHandler that records every event.
func (r *EventRecorder) Handler() EventHandler {
	return func(e Event) {
		r.mu.Lock()
		r.events = append(r.events, e)
		r.mu.Unlock()
	}
}

// Events returns a copy of the recorded events.
func (r *EventRecorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// OfType returns the recorded events of the given type.
func (r *EventRecorder) OfType(t EventType) []Event {
	var out []Event
	for _, e := range r.Events() {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// NewTestLogger creates a logger for testing: console output into an
// in-memory buffer, local files under dir, events captured by the
// returned recorder. Additional options are applied last and may
// override any of that.
func NewTestLogger(dir string, opts ...Option) (*Logger, *bytes.Buffer, *EventRecorder) {
	buf := &bytes.Buffer{}
	rec := &EventRecorder{}
	base := []Option{
		WithDirectory(dir),
		WithConsoleOutput(buf),
		WithEventHandler(rec.Handler()),
	}
	return MustNew(append(base, opts...)...), buf, rec
}
