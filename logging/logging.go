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
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"
)

const (
	// DefaultDirectory is where local log files are written when no
	// directory is configured.
	DefaultDirectory = "logs"

	// DefaultFileExtension is the local log file extension (without dot).
	DefaultFileExtension = "log"

	// DefaultMaxFileSize is the rotation threshold in bytes (10 MiB).
	DefaultMaxFileSize int64 = 10 * 1024 * 1024
)

// TraceSink receives entries fanned out to the remote telemetry sink.
//
// The telemetry client implements this interface; defining it here keeps
// the dispatcher free of a dependency on the telemetry package. A sink
// must be safe for concurrent use and should perform its own lazy
// initialization on the first send.
type TraceSink interface {
	// SendTrace submits one entry to the remote ingestion endpoint.
	// Implementations must not panic; errors are reported by the
	// dispatcher on its diagnostic channel and otherwise ignored.
	SendTrace(ctx context.Context, message string, severity Severity, properties map[string]string) error
}

// Logger dispatches each entry to up to three sinks: console, local
// rotating file, and a remote trace sink. Each sink is gated by its own
// enable switch, defaulting to enabled.
//
// Thread-safety: all public methods are safe for concurrent use.
//   - Enable switches use atomic.Bool (read-mostly)
//   - mu serializes directory changes and the rotate-then-append
//     sequence so two writers cannot both append after only one rotated
type Logger struct {
	// File sink configuration
	directory     string
	fileExtension string
	maxFileSize   int64

	// Entry tagging
	sourceName string

	// Sinks
	consoleOut io.Writer
	traceSink  TraceSink

	// Diagnostics
	events EventHandler

	// Clock hook, overridable in tests
	now func() time.Time

	// Enable switches
	consoleEnabled   atomic.Bool
	localEnabled     atomic.Bool
	telemetryEnabled atomic.Bool

	// Protects directory mutation and the rotation+append sequence.
	mu sync.Mutex
}

// Option is a functional option for configuring the logger.
type Option func(*Logger)

// ConfigSnapshot is a point-in-time copy of the logger configuration,
// returned by [Logger.Snapshot]. Mutating it has no effect on the logger.
type ConfigSnapshot struct {
	Directory        string
	FileExtension    string
	MaxFileSize      int64
	SourceName       string
	ConsoleEnabled   bool
	LocalEnabled     bool
	TelemetryEnabled bool
}

// New creates a logger with the given options.
//
// Defaults: all three sinks enabled, console output to os.Stdout, local
// files under DefaultDirectory with DefaultFileExtension, rotation at
// DefaultMaxFileSize, no remote sink, events discarded.
func New(opts ...Option) (*Logger, error) {
	l := &Logger{
		directory:     DefaultDirectory,
		fileExtension: DefaultFileExtension,
		maxFileSize:   DefaultMaxFileSize,
		consoleOut:    os.Stdout,
		events:        func(Event) {},
		now:           time.Now,
	}
	l.consoleEnabled.Store(true)
	l.localEnabled.Store(true)
	l.telemetryEnabled.Store(true)

	for _, opt := range opts {
		opt(l)
	}

	if err := l.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return l, nil
}

// MustNew creates a logger with the given options or panics on error.
func MustNew(opts ...Option) *Logger {
	l, err := New(opts...)
	if err != nil {
		panic("logging initialization failed: " + err.Error())
	}
	return l
}

func (l *Logger) validate() error {
	if l.maxFileSize <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidMaxFileSize, l.maxFileSize)
	}
	if l.consoleOut == nil {
		return ErrNilConsoleOutput
	}
	if l.directory == "" {
		l.directory = DefaultDirectory
	}
	return nil
}

// SetDirectory changes the local log directory.
//
// The path is resolved to an absolute path. When createIfMissing is true
// the directory (including parents) is created; otherwise the directory
// must already exist and ErrDirectoryNotFound is returned when it does
// not. On failure the previous directory stays in effect.
func (l *Logger) SetDirectory(path string, createIfMissing bool) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving log directory %q: %w", path, err)
	}

	if createIfMissing {
		if err := os.MkdirAll(abs, 0o755); err != nil {
			return fmt.Errorf("creating log directory %q: %w", abs, err)
		}
	} else {
		info, err := os.Stat(abs)
		if err != nil || !info.IsDir() {
			return fmt.Errorf("%w: %q", ErrDirectoryNotFound, abs)
		}
	}

	l.mu.Lock()
	l.directory = abs
	l.mu.Unlock()

	l.emitInfo("log directory changed", "directory", abs)
	return nil
}

// Snapshot returns a copy of the current configuration.
func (l *Logger) Snapshot() ConfigSnapshot {
	l.mu.Lock()
	dir := l.directory
	l.mu.Unlock()

	return ConfigSnapshot{
		Directory:        dir,
		FileExtension:    l.fileExtension,
		MaxFileSize:      l.maxFileSize,
		SourceName:       l.sourceName,
		ConsoleEnabled:   l.consoleEnabled.Load(),
		LocalEnabled:     l.localEnabled.Load(),
		TelemetryEnabled: l.telemetryEnabled.Load(),
	}
}

// EnableConsole enables the console sink.
func (l *Logger) EnableConsole() { l.consoleEnabled.Store(true) }

// DisableConsole disables the console sink.
func (l *Logger) DisableConsole() { l.consoleEnabled.Store(false) }

// EnableLocal enables the local file sink.
func (l *Logger) EnableLocal() { l.localEnabled.Store(true) }

// DisableLocal disables the local file sink.
func (l *Logger) DisableLocal() { l.localEnabled.Store(false) }

// EnableTelemetry enables the remote trace sink.
func (l *Logger) EnableTelemetry() { l.telemetryEnabled.Store(true) }

// DisableTelemetry disables the remote trace sink.
func (l *Logger) DisableTelemetry() { l.telemetryEnabled.Store(false) }

// Functional Options

// WithDirectory sets the local log directory.
func WithDirectory(dir string) Option {
	return func(l *Logger) {
		if dir != "" {
			l.directory = dir
		}
	}
}

// WithFileExtension sets the local log file extension (without dot).
func WithFileExtension(ext string) Option {
	return func(l *Logger) {
		if ext != "" {
			l.fileExtension = ext
		}
	}
}

// WithMaxFileSize sets the rotation threshold in bytes. A local log file
// strictly larger than this is archived before the next append.
func WithMaxFileSize(bytes int64) Option {
	return func(l *Logger) { l.maxFileSize = bytes }
}

// WithSourceName fixes the logical source name used to tag entries,
// bypassing caller-stack resolution. Recommended for services with a
// stable identity.
func WithSourceName(name string) Option {
	return func(l *Logger) { l.sourceName = name }
}

// WithConsoleOutput sets the console sink writer (default os.Stdout).
func WithConsoleOutput(w io.Writer) Option {
	return func(l *Logger) { l.consoleOut = w }
}

// WithTraceSink wires the remote trace sink. A nil sink leaves the
// telemetry branch inactive even when enabled.
func WithTraceSink(s TraceSink) Option {
	return func(l *Logger) { l.traceSink = s }
}

// WithEventHandler sets the handler for internal operational events.
func WithEventHandler(h EventHandler) Option {
	return func(l *Logger) {
		if h != nil {
			l.events = h
		}
	}
}

// WithClock overrides the time source. Intended for tests that need
// deterministic file names and line timestamps.
func WithClock(now func() time.Time) Option {
	return func(l *Logger) {
		if now != nil {
			l.now = now
		}
	}
}

// WithConsoleDisabled starts the logger with the console sink disabled.
func WithConsoleDisabled() Option {
	return func(l *Logger) { l.consoleEnabled.Store(false) }
}

// WithLocalDisabled starts the logger with the local file sink disabled.
func WithLocalDisabled() Option {
	return func(l *Logger) { l.localEnabled.Store(false) }
}

// WithTelemetryDisabled starts the logger with the remote sink disabled.
func WithTelemetryDisabled() Option {
	return func(l *Logger) { l.telemetryEnabled.Store(false) }
}
