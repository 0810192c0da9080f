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

package telemetry

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JackXuCN/LogModule/logging"
)

// TestDispatch_EndToEnd drives one entry through all three sinks: a
// styled console line, a severity-tagged local file line, and a remote
// trace record with the standard enrichment properties.
func TestDispatch_EndToEnd(t *testing.T) {
	client, exp := newSeededClient(t)
	require.NoError(t, client.Init(context.Background(), "collector:4317"))

	dir := t.TempDir()
	logger, console, _ := logging.NewTestLogger(dir,
		logging.WithSourceName("worker"),
		logging.WithClock(func() time.Time { return testClock }),
		logging.WithTraceSink(client),
	)

	logger.Write("start",
		logging.WithSeverity(logging.SeverityError),
		logging.WithForeground(logging.ColorRed),
	)

	// Console: red-styled raw line.
	assert.Equal(t, "\033[31mstart\033[0m\n", console.String())

	// Local file: severity-tagged line in the day's file for the source.
	got, err := os.ReadFile(filepath.Join(dir, "worker_20260314.log"))
	require.NoError(t, err)
	assert.Equal(t, "[2026-03-14 15:09:26.535] [Error] start\n", string(got))

	// Remote: one trace record, severity unchanged, enrichment present.
	spans := exp.GetSpans()
	require.Len(t, spans, 1)
	sev, _ := attrValue(spans[0], "log.severity")
	assert.Equal(t, "Error", sev)
	source, _ := attrValue(spans[0], "telemetry.property.sourceName")
	assert.Equal(t, "worker", source)
	sdkVersion, ok := attrValue(spans[0], "telemetry.property.sdkVersion")
	require.True(t, ok)
	assert.Equal(t, DefaultSDKVersion, sdkVersion)
	_, ok = attrValue(spans[0], "telemetry.property.localTimestamp")
	assert.True(t, ok)
}

// TestDispatch_DebugDivergence checks the severity mapping boundary:
// Debug stays Debug locally while the remote record carries Verbose.
func TestDispatch_DebugDivergence(t *testing.T) {
	client, exp := newSeededClient(t)
	require.NoError(t, client.Init(context.Background(), "collector:4317"))

	dir := t.TempDir()
	logger, _, _ := logging.NewTestLogger(dir,
		logging.WithSourceName("worker"),
		logging.WithClock(func() time.Time { return testClock }),
		logging.WithTraceSink(client),
	)

	logger.Write("heartbeat", logging.WithSeverity(logging.SeverityDebug))

	got, err := os.ReadFile(filepath.Join(dir, "worker_20260314.log"))
	require.NoError(t, err)
	assert.Contains(t, string(got), "[Debug] heartbeat")

	spans := exp.GetSpans()
	require.Len(t, spans, 1)
	sev, _ := attrValue(spans[0], "log.severity")
	assert.Equal(t, "Verbose", sev)
}

// TestDispatch_TelemetryInitFailureDoesNotBlockOtherSinks wires an
// uninitializable client into the dispatcher and checks the degraded
// behavior: console and file still written, no trace recorded, and the
// failure reported exactly once, by the dispatcher rather than the
// client.
func TestDispatch_TelemetryInitFailureDoesNotBlockOtherSinks(t *testing.T) {
	t.Setenv(EnvConnectionString, "")

	clientRec := &logging.EventRecorder{}
	client, exp := newSeededClient(t, WithEventHandler(clientRec.Handler()))

	dir := t.TempDir()
	logger, console, rec := logging.NewTestLogger(dir,
		logging.WithSourceName("worker"),
		logging.WithClock(func() time.Time { return testClock }),
		logging.WithTraceSink(client),
	)

	assert.NotPanics(t, func() { logger.Write("degraded") })

	assert.Contains(t, console.String(), "degraded")
	_, err := os.Stat(filepath.Join(dir, "worker_20260314.log"))
	require.NoError(t, err)
	assert.Empty(t, exp.GetSpans())

	// One report, owned by the dispatcher; the client stays silent.
	assert.Len(t, rec.OfType(logging.EventWarning), 1)
	assert.Empty(t, clientRec.OfType(logging.EventWarning))
}
