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

// Package telemetry manages the remote trace sink: a lazily initialized,
// process-singleton OpenTelemetry client bound to a resolved connection
// string, plus the versioned SDK support bundle it caches on disk.
//
// Initialization is explicit (Init) or implicit on the first SendTrace.
// It resolves the connection string (explicit argument over the
// APPINSIGHTS_CONNECTION_STRING environment variable), acquires the SDK
// bundle into a deterministic cache directory at most once, then
// constructs the exporter and tracer provider. A second Init is a no-op.
// Initialization failure is never fatal: the sink simply stays inactive
// and the failure is reported on the diagnostic event channel.
//
// Delivery is best-effort. Each SendTrace ends a span, forces a flush,
// and pauses for a short configured delay to reduce the chance the
// process exits before asynchronous export completes. The delay is a
// crude mitigation, not a delivery guarantee; a bounded queue with a
// background flusher would be the production-grade replacement.
//
//	client, _ := telemetry.New(telemetry.WithProvider(telemetry.OTLPHTTPProvider))
//	if err := client.Init(ctx, connectionString); err != nil {
//	    // telemetry stays off; nothing else is affected
//	}
//	_ = client.SendTrace(ctx, "started", logging.SeverityInformation, nil)
package telemetry
