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
	"net/http"
	"time"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/JackXuCN/LogModule/logging"
)

// Provider selects the trace exporter.
type Provider string

const (
	// OTLPProvider exports traces via OTLP gRPC (default).
	OTLPProvider Provider = "otlp"

	// OTLPHTTPProvider exports traces via OTLP HTTP.
	OTLPHTTPProvider Provider = "otlp-http"

	// StdoutProvider pretty-prints traces to stdout (development/testing).
	StdoutProvider Provider = "stdout"
)

const (
	// DefaultSDKPackageID is the fixed identifier of the SDK support
	// bundle fetched from the package registry.
	DefaultSDKPackageID = "Microsoft.ApplicationInsights"

	// DefaultSDKVersion pins the SDK bundle version.
	DefaultSDKVersion = "2.22.0"

	// DefaultCacheFolderName names the cache directory under the cache root.
	DefaultCacheFolderName = "logmodule-appinsights"

	// DefaultArtifactRelPath locates the SDK artifact inside the unpacked
	// bundle.
	DefaultArtifactRelPath = "lib/netstandard2.0/Microsoft.ApplicationInsights.dll"

	// DefaultRegistryBaseURL is the public package registry serving the
	// bundle as <base>/<id>/<version>.
	DefaultRegistryBaseURL = "https://www.nuget.org/api/v2/package"

	// DefaultFlushDelay is the post-send pause giving the asynchronous
	// exporter a head start before the process can exit.
	DefaultFlushDelay = 200 * time.Millisecond

	// DefaultDownloadTimeout bounds one bundle download. Initialization
	// holds the client lock, so a hung registry must not stall it forever.
	DefaultDownloadTimeout = 60 * time.Second

	// DefaultServiceName identifies this client in exported resources.
	DefaultServiceName = "logmodule"
)

// Option is a functional option for configuring the client.
type Option func(*Client)

// WithProvider selects the trace exporter (default OTLPProvider).
func WithProvider(p Provider) Option {
	return func(c *Client) { c.provider = p }
}

// WithTracerProvider injects a custom tracer provider, bypassing
// exporter construction entirely. The caller owns the provider's
// lifecycle; Reset will not shut it down. Intended for tests and for
// hosts that already manage an OpenTelemetry pipeline.
func WithTracerProvider(tp *sdktrace.TracerProvider) Option {
	return func(c *Client) {
		c.injected = tp
	}
}

// WithSDKVersion pins the SDK bundle version fetched into the cache.
func WithSDKVersion(version string) Option {
	return func(c *Client) {
		if version != "" {
			c.sdkVersion = version
		}
	}
}

// WithCacheFolderName sets the cache directory name under the cache root.
func WithCacheFolderName(name string) Option {
	return func(c *Client) {
		if name != "" {
			c.cacheFolderName = name
		}
	}
}

// WithCacheRoot overrides the cache root (default: the user cache
// directory).
func WithCacheRoot(root string) Option {
	return func(c *Client) {
		if root != "" {
			c.cacheRoot = root
		}
	}
}

// WithArtifactRelPath overrides the artifact's relative path inside the
// unpacked bundle.
func WithArtifactRelPath(rel string) Option {
	return func(c *Client) {
		if rel != "" {
			c.artifactRelPath = rel
		}
	}
}

// WithRegistryBaseURL overrides the package registry base URL.
func WithRegistryBaseURL(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.registryBaseURL = url
		}
	}
}

// WithHTTPClient overrides the HTTP client used for bundle downloads
// (default: a client with DefaultDownloadTimeout).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithFlushDelay sets the post-send pause. Zero disables it.
func WithFlushDelay(d time.Duration) Option {
	return func(c *Client) {
		if d >= 0 {
			c.flushDelay = d
		}
	}
}

// WithServiceName sets the service name recorded in exported resources.
func WithServiceName(name string) Option {
	return func(c *Client) {
		if name != "" {
			c.serviceName = name
		}
	}
}

// WithInsecure disables transport security on the OTLP exporters, for
// endpoints without TLS.
func WithInsecure() Option {
	return func(c *Client) { c.insecure = true }
}

// WithEventHandler sets the handler for internal operational events.
func WithEventHandler(h logging.EventHandler) Option {
	return func(c *Client) {
		if h != nil {
			c.events = h
		}
	}
}

// WithClock overrides the time source. Intended for tests that need
// deterministic trace timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}
