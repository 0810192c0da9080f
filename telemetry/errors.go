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

package telemetry

import "errors"

// Sentinel errors checked with [errors.Is].
var (
	// ErrNoConnectionString indicates neither the explicit argument nor
	// the APPINSIGHTS_CONNECTION_STRING environment variable yielded a
	// non-blank connection string. Initialization fails without mutating
	// any state.
	ErrNoConnectionString = errors.New("no connection string provided")

	// ErrArtifactUnavailable indicates the SDK bundle is missing from the
	// cache after acquisition, or is present but unreadable.
	ErrArtifactUnavailable = errors.New("sdk artifact unavailable")

	// ErrUnsupportedProvider indicates an unknown exporter provider name.
	// Valid providers: otlp, otlp-http, stdout.
	ErrUnsupportedProvider = errors.New("unsupported telemetry provider")
)
