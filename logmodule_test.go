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

//go:build !integration

package logmodule

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JackXuCN/LogModule/logging"
)

// configureQuiet installs a process-wide configuration that writes files
// under a fresh temp dir and keeps the console and remote sinks off, so
// tests neither print nor hit the network. Tests sharing the package
// globals run serially.
func configureQuiet(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	off := false
	cfg := DefaultConfig()
	cfg.Directory = dir
	cfg.SourceName = "facadetest"
	cfg.ConsoleEnabled = &off
	cfg.TelemetryEnabled = &off
	require.NoError(t, Configure(cfg))
	return dir
}

func readOnlyLogFile(t *testing.T, dir string) string {
	t.Helper()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	return string(data)
}

func TestWriteLog_AppendsToLocalFile(t *testing.T) {
	dir := configureQuiet(t)

	WriteLog("facade hello", logging.WithSeverity(logging.SeverityWarning))

	content := readOnlyLogFile(t, dir)
	assert.Contains(t, content, "[Warning] facade hello\n")
}

func TestWriteLogParts_JoinsWithSpaces(t *testing.T) {
	dir := configureQuiet(t)

	WriteLogParts([]string{"disk", "usage", "91%"})

	content := readOnlyLogFile(t, dir)
	assert.Contains(t, content, "[Information] disk usage 91%\n")
}

func TestWriteLocalLog_IgnoresConsoleSwitch(t *testing.T) {
	dir := configureQuiet(t)

	WriteLocalLog("local only")

	content := readOnlyLogFile(t, dir)
	assert.Contains(t, content, "local only")
}

func TestSetLogDirectory(t *testing.T) {
	configureQuiet(t)
	base := t.TempDir()

	t.Run("creates when asked", func(t *testing.T) {
		target := filepath.Join(base, "fresh")
		require.True(t, SetLogDirectory(target, true))
		assert.DirExists(t, target)
		assert.Equal(t, target, GetLogConfig().Directory)
	})

	t.Run("rejects missing without create", func(t *testing.T) {
		before := GetLogConfig().Directory
		assert.False(t, SetLogDirectory(filepath.Join(base, "absent"), false))
		assert.Equal(t, before, GetLogConfig().Directory)
	})
}

func TestGetLogConfig_ReflectsConfiguration(t *testing.T) {
	dir := configureQuiet(t)

	snap := GetLogConfig()
	assert.Equal(t, dir, snap.Directory)
	assert.Equal(t, "facadetest", snap.SourceName)
	assert.False(t, snap.ConsoleEnabled)
	assert.True(t, snap.LocalEnabled)
	assert.False(t, snap.TelemetryEnabled)
}

func TestSinkSwitches(t *testing.T) {
	configureQuiet(t)

	EnableConsole()
	assert.True(t, GetLogConfig().ConsoleEnabled)
	DisableConsole()
	assert.False(t, GetLogConfig().ConsoleEnabled)

	DisableLocal()
	assert.False(t, GetLogConfig().LocalEnabled)
	EnableLocal()
	assert.True(t, GetLogConfig().LocalEnabled)

	EnableTelemetry()
	assert.True(t, GetLogConfig().TelemetryEnabled)
	DisableTelemetry()
	assert.False(t, GetLogConfig().TelemetryEnabled)
}

func TestDisabledLocal_WritesNothing(t *testing.T) {
	dir := configureQuiet(t)

	DisableLocal()
	WriteLog("dropped")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestInitTelemetry_NoConnectionString(t *testing.T) {
	configureQuiet(t)
	t.Setenv("APPINSIGHTS_CONNECTION_STRING", "")

	assert.False(t, InitTelemetry(""))

	status := GetTelemetryStatus()
	assert.False(t, status.Initialized)
	assert.False(t, status.SDKLoaded)
}

func TestSendTelemetryTrace_FailsCleanWithoutConnection(t *testing.T) {
	dir := configureQuiet(t)
	t.Setenv("APPINSIGHTS_CONNECTION_STRING", "")

	assert.False(t, SendTelemetryTrace("unreachable", logging.SeverityError, nil))

	// The other sinks are unaffected by the remote failure.
	WriteLog("still here")
	assert.Contains(t, readOnlyLogFile(t, dir), "still here")
}

func TestShutdown_Idempotent(t *testing.T) {
	configureQuiet(t)

	require.NoError(t, Shutdown(context.Background()))
	require.NoError(t, Shutdown(context.Background()))
	assert.False(t, GetTelemetryStatus().Initialized)
}
