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

import "log/slog"

// EventType represents the severity of an internal operational event.
type EventType int

const (
	// EventError indicates an error event (e.g., a sink failed unexpectedly).
	EventError EventType = iota
	// EventWarning indicates a warning event (e.g., a swallowed write failure).
	EventWarning
	// EventInfo indicates an informational event (e.g., directory changed).
	EventInfo
	// EventDebug indicates a debug event (e.g., a skipped rotation).
	EventDebug
)

// Event is an internal operational event from the logging package.
//
// Sinks never propagate their failures to the Write caller; instead each
// swallowed failure is reported as an Event on a best-effort diagnostic
// channel. Handlers can log events, count them, or feed a monitoring
// system.
type Event struct {
	Type    EventType
	Message string
	Args    []any // slog-style key-value pairs
}

// EventHandler processes internal operational events.
//
// Example custom handler:
//
//	logging.WithEventHandler(func(e logging.Event) {
//	    if e.Type == logging.EventError {
//	        metrics.IncrementLoggingErrors()
//	    }
//	})
type EventHandler func(Event)

// DefaultEventHandler returns an EventHandler that forwards events to the
// provided slog.Logger. If logger is nil it returns a no-op handler that
// discards all events.
func DefaultEventHandler(logger *slog.Logger) EventHandler {
	if logger == nil {
		return func(Event) {}
	}
	return func(e Event) {
		switch e.Type {
		case EventError:
			logger.Error(e.Message, e.Args...)
		case EventWarning:
			logger.Warn(e.Message, e.Args...)
		case EventInfo:
			logger.Info(e.Message, e.Args...)
		case EventDebug:
			logger.Debug(e.Message, e.Args...)
		}
	}
}

func (l *Logger) emit(t EventType, msg string, args ...any) {
	if l.events != nil {
		l.events(Event{Type: t, Message: msg, Args: args})
	}
}

func (l *Logger) emitError(msg string, args ...any)   { l.emit(EventError, msg, args...) }
func (l *Logger) emitWarning(msg string, args ...any) { l.emit(EventWarning, msg, args...) }
func (l *Logger) emitInfo(msg string, args ...any)    { l.emit(EventInfo, msg, args...) }
func (l *Logger) emitDebug(msg string, args ...any)   { l.emit(EventDebug, msg, args...) }
