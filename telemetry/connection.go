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

import (
	"os"
	"strings"
)

// EnvConnectionString is the environment variable consulted when no
// explicit connection string is passed to Init or SendTrace.
const EnvConnectionString = "APPINSIGHTS_CONNECTION_STRING"

// resolveConnectionString picks the connection string: the explicit
// argument wins over the environment fallback. Blank both ways is
// ErrNoConnectionString.
func resolveConnectionString(explicit string) (string, error) {
	if s := strings.TrimSpace(explicit); s != "" {
		return s, nil
	}
	if s := strings.TrimSpace(os.Getenv(EnvConnectionString)); s != "" {
		return s, nil
	}
	return "", ErrNoConnectionString
}

// endpointFromConnection extracts the ingestion endpoint from a
// connection string.
//
// Two forms are accepted: a bare endpoint ("collector:4317" or
// "https://collector.example.com"), or an Application-Insights-style
// semicolon list ("InstrumentationKey=...;IngestionEndpoint=https://...")
// whose IngestionEndpoint field supplies the endpoint. The returned
// endpoint is host[:port] with any scheme and path stripped; insecure is
// true for plain http.
func endpointFromConnection(conn string) (endpoint string, insecure bool) {
	endpoint = conn
	if strings.Contains(conn, "=") {
		for _, part := range strings.Split(conn, ";") {
			key, value, ok := strings.Cut(part, "=")
			if !ok {
				continue
			}
			if strings.EqualFold(strings.TrimSpace(key), "IngestionEndpoint") {
				endpoint = strings.TrimSpace(value)
				break
			}
		}
	}

	if trimmed, ok := strings.CutPrefix(endpoint, "http://"); ok {
		endpoint = trimmed
		insecure = true
	} else if trimmedTLS, okTLS := strings.CutPrefix(endpoint, "https://"); okTLS {
		endpoint = trimmedTLS
	}
	if idx := strings.Index(endpoint, "/"); idx != -1 {
		endpoint = endpoint[:idx]
	}
	return endpoint, insecure
}
