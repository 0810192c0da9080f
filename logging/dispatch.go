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
	"context"
	"strings"
)

// Package-level cached context reused across dispatch calls.
//
// context.Background() is immutable and safe for concurrent access; the
// remote sink requires a context but the dispatcher has no cancellation
// to propagate.
var bgCtx = context.Background()

// writeRequest carries the per-call options of a single dispatch.
type writeRequest struct {
	severity   Severity
	foreground Color
	background Color
	hasFg      bool
	hasBg      bool
	noNewline  bool
	properties map[string]string
	source     string
}

// WriteOption configures a single Write, WriteConsole or WriteLocal call.
type WriteOption func(*writeRequest)

// WithSeverity sets the entry severity (default SeverityInformation).
func WithSeverity(s Severity) WriteOption {
	return func(r *writeRequest) { r.severity = s }
}

// WithForeground sets the console foreground color for this entry.
// Without it the terminal default is inherited.
func WithForeground(c Color) WriteOption {
	return func(r *writeRequest) {
		r.foreground = c
		r.hasFg = true
	}
}

// WithBackground sets the console background color for this entry.
// Without it the terminal default is inherited.
func WithBackground(c Color) WriteOption {
	return func(r *writeRequest) {
		r.background = c
		r.hasBg = true
	}
}

// WithNoNewline suppresses the trailing newline on the console and local
// file sinks.
func WithNoNewline() WriteOption {
	return func(r *writeRequest) { r.noNewline = true }
}

// WithProperties attaches extra string properties forwarded to the
// remote trace sink. Reserved enrichment keys (sdkVersion, sourceName,
// localTimestamp) are only backfilled when absent, so caller-supplied
// values win.
func WithProperties(props map[string]string) WriteOption {
	return func(r *writeRequest) { r.properties = props }
}

// WithSource overrides the source name for this entry only.
func WithSource(name string) WriteOption {
	return func(r *writeRequest) { r.source = name }
}

func newWriteRequest(opts []WriteOption) *writeRequest {
	r := &writeRequest{severity: SeverityInformation}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Write dispatches one entry to every enabled sink, in the fixed order
// console, local file, remote trace. Each branch is independent: a
// failure (or panic) in one sink is reported as an Event and does not
// prevent the remaining sinks from running. Write never panics and never
// fails from the caller's perspective.
func (l *Logger) Write(message string, opts ...WriteOption) {
	req := newWriteRequest(opts)

	if l.consoleEnabled.Load() {
		l.safely("console sink", func() error {
			return l.writeConsole(message, req)
		})
	}

	if l.localEnabled.Load() {
		l.safely("local sink", func() error {
			return l.writeLocal(message, req)
		})
	}

	if l.telemetryEnabled.Load() && l.traceSink != nil {
		l.safely("telemetry sink", func() error {
			props := l.enrichProperties(req)
			return l.traceSink.SendTrace(bgCtx, message, req.severity, props)
		})
	}
}

// Writev space-joins the message parts into the canonical message for
// all three sinks, then dispatches like Write.
func (l *Logger) Writev(parts []string, opts ...WriteOption) {
	l.Write(strings.Join(parts, " "), opts...)
}

// WriteConsole writes to the console sink only, still honoring its
// enable switch.
func (l *Logger) WriteConsole(message string, opts ...WriteOption) {
	if !l.consoleEnabled.Load() {
		return
	}
	req := newWriteRequest(opts)
	l.safely("console sink", func() error {
		return l.writeConsole(message, req)
	})
}

// WriteLocal writes to the local file sink only, still honoring its
// enable switch.
func (l *Logger) WriteLocal(message string, opts ...WriteOption) {
	if !l.localEnabled.Load() {
		return
	}
	req := newWriteRequest(opts)
	l.safely("local sink", func() error {
		return l.writeLocal(message, req)
	})
}

// safely runs one sink branch, converting errors and panics into warning
// events. The never-raises contract of the dispatcher hinges on this.
func (l *Logger) safely(sink string, fn func() error) {
	defer func() {
		if r := recover(); r != nil {
			l.emitError("sink panicked", "sink", sink, "panic", r)
		}
	}()
	if err := fn(); err != nil {
		l.emitWarning("sink write failed", "sink", sink, "error", err)
	}
}

// enrichProperties builds the property map handed to the remote sink:
// caller-supplied entries first, then sourceName and localTimestamp
// backfilled only when the key is absent. The trace sink adds sdkVersion
// the same way.
func (l *Logger) enrichProperties(req *writeRequest) map[string]string {
	props := make(map[string]string, len(req.properties)+2)
	for k, v := range req.properties {
		props[k] = v
	}
	if _, ok := props["sourceName"]; !ok {
		props["sourceName"] = l.resolveSource(req.source)
	}
	if _, ok := props["localTimestamp"]; !ok {
		props["localTimestamp"] = l.now().Format(lineTimeFormat)
	}
	return props
}
