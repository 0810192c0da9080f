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

// Package logmodule is the process-wide convenience surface over the
// logging dispatcher and the telemetry client: one lazily constructed
// default logger and client, package-level write and control functions,
// and a YAML/env configuration loader.
//
// The package-level functions mirror the scripting-style surface of the
// original tool and return booleans for success; applications that want
// error values or multiple independent loggers should use the logging
// and telemetry packages directly.
//
//	logmodule.WriteLog("service started")
//	logmodule.WriteLog("disk failing",
//	    logging.WithSeverity(logging.SeverityError),
//	    logging.WithForeground(logging.ColorRed),
//	)
package logmodule

import (
	"context"
	"sync"

	"github.com/JackXuCN/LogModule/logging"
	"github.com/JackXuCN/LogModule/telemetry"
)

var (
	defaultMu     sync.Mutex
	defaultLogger *logging.Logger
	defaultClient *telemetry.Client
)

// defaults returns the process-wide logger and client, constructing them
// from DefaultConfig on first use.
func defaults() (*logging.Logger, *telemetry.Client) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultLogger == nil {
		if err := configureLocked(DefaultConfig()); err != nil {
			// DefaultConfig is always valid; a failure here is a bug.
			panic("logmodule default configuration failed: " + err.Error())
		}
	}
	return defaultLogger, defaultClient
}

// Configure replaces the process-wide logger and client with ones built
// from cfg. An already initialized telemetry client is reset first.
func Configure(cfg Config) error {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	return configureLocked(cfg)
}

func configureLocked(cfg Config) error {
	if defaultClient != nil {
		_ = defaultClient.Reset(context.Background())
	}

	client, err := telemetry.New(cfg.telemetryOptions()...)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.loggingOptions(client)...)
	if err != nil {
		return err
	}

	defaultLogger = logger
	defaultClient = client
	return nil
}

// WriteLog dispatches one entry to every enabled sink. It never fails
// and never panics.
func WriteLog(message string, opts ...logging.WriteOption) {
	logger, _ := defaults()
	logger.Write(message, opts...)
}

// WriteLogParts space-joins the parts into the canonical message for all
// sinks, then dispatches like WriteLog.
func WriteLogParts(parts []string, opts ...logging.WriteOption) {
	logger, _ := defaults()
	logger.Writev(parts, opts...)
}

// WriteLocalLog writes to the local file sink only.
func WriteLocalLog(message string, opts ...logging.WriteOption) {
	logger, _ := defaults()
	logger.WriteLocal(message, opts...)
}

// InitTelemetry initializes the telemetry client. The explicit
// connection string (may be empty) takes priority over the
// APPINSIGHTS_CONNECTION_STRING environment variable. Returns true on
// success and on an already initialized client.
func InitTelemetry(connectionString string) bool {
	_, client := defaults()
	return client.Init(context.Background(), connectionString) == nil
}

// SendTelemetryTrace submits one trace record, initializing the client
// first if needed. Returns false when initialization or dispatch fails.
func SendTelemetryTrace(message string, severity logging.Severity, properties map[string]string) bool {
	_, client := defaults()
	return client.SendTrace(context.Background(), message, severity, properties) == nil
}

// GetTelemetryStatus returns a snapshot of the telemetry client state.
func GetTelemetryStatus() telemetry.StateSnapshot {
	_, client := defaults()
	return client.Status()
}

// SetLogDirectory changes the local log directory, creating it when
// createIfMissing is true. Returns false when the change was rejected;
// the previous directory stays in effect.
func SetLogDirectory(path string, createIfMissing bool) bool {
	logger, _ := defaults()
	return logger.SetDirectory(path, createIfMissing) == nil
}

// GetLogConfig returns a snapshot of the logger configuration.
func GetLogConfig() logging.ConfigSnapshot {
	logger, _ := defaults()
	return logger.Snapshot()
}

// EnableConsole enables the console sink.
func EnableConsole() { logger, _ := defaults(); logger.EnableConsole() }

// DisableConsole disables the console sink.
func DisableConsole() { logger, _ := defaults(); logger.DisableConsole() }

// EnableLocal enables the local file sink.
func EnableLocal() { logger, _ := defaults(); logger.EnableLocal() }

// DisableLocal disables the local file sink.
func DisableLocal() { logger, _ := defaults(); logger.DisableLocal() }

// EnableTelemetry enables the remote trace sink.
func EnableTelemetry() { logger, _ := defaults(); logger.EnableTelemetry() }

// DisableTelemetry disables the remote trace sink.
func DisableTelemetry() { logger, _ := defaults(); logger.DisableTelemetry() }

// Shutdown resets the telemetry client, flushing and releasing its
// exporter. The logger keeps working; only the remote sink goes back to
// uninitialized.
func Shutdown(ctx context.Context) error {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultClient == nil {
		return nil
	}
	return defaultClient.Reset(ctx)
}
