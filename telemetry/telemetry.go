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
	"context"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/JackXuCN/LogModule/logging"
)

// tracerName identifies this library in exported spans.
const tracerName = "github.com/JackXuCN/LogModule/telemetry"

// Client is the remote trace sink. It lazily initializes exactly one
// tracer provider per client, bound to a resolved connection string, and
// implements [logging.TraceSink].
//
// Thread-safety: all public methods are safe for concurrent use. mu
// resolves the single-initialization race: at most one provider is ever
// constructed while one is cached.
type Client struct {
	// Acquisition configuration
	sdkPackageID    string
	sdkVersion      string
	cacheFolderName string
	artifactRelPath string
	registryBaseURL string
	cacheRoot       string
	httpClient      *http.Client

	// Exporter configuration
	provider    Provider
	serviceName string
	insecure    bool
	flushDelay  time.Duration
	injected    *sdktrace.TracerProvider

	// Diagnostics
	events logging.EventHandler

	// Clock hook, overridable in tests
	now func() time.Time

	// Guarded state. initialized == true implies tracer is usable.
	mu               sync.Mutex
	initialized      bool
	sdkLoaded        bool
	connectionString string
	cachePath        string
	artifactPath     string
	tracerProvider   *sdktrace.TracerProvider
	tracer           trace.Tracer
	ownsProvider     bool
}

// StateSnapshot is a point-in-time copy of the client state, returned by
// [Client.Status]. Status queries never mutate state.
type StateSnapshot struct {
	Initialized      bool
	SDKLoaded        bool
	ConnectionString string
	CachePath        string
	ArtifactPath     string
	HasClient        bool
}

// New creates a telemetry client. No network access or state mutation
// happens until Init or the first SendTrace.
func New(opts ...Option) (*Client, error) {
	c := &Client{
		sdkPackageID:    DefaultSDKPackageID,
		sdkVersion:      DefaultSDKVersion,
		cacheFolderName: DefaultCacheFolderName,
		artifactRelPath: DefaultArtifactRelPath,
		registryBaseURL: DefaultRegistryBaseURL,
		httpClient:      &http.Client{Timeout: DefaultDownloadTimeout},
		provider:        OTLPProvider,
		serviceName:     DefaultServiceName,
		flushDelay:      DefaultFlushDelay,
		events:          func(logging.Event) {},
		now:             time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	switch c.provider {
	case OTLPProvider, OTLPHTTPProvider, StdoutProvider:
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedProvider, c.provider)
	}
	return c, nil
}

// MustNew creates a telemetry client or panics on error.
func MustNew(opts ...Option) *Client {
	c, err := New(opts...)
	if err != nil {
		panic("telemetry initialization failed: " + err.Error())
	}
	return c
}

// Init transitions the client to initialized.
//
// The explicit connectionString takes priority over the
// APPINSIGHTS_CONNECTION_STRING environment variable; when neither
// yields a non-blank value, Init fails with ErrNoConnectionString and no
// state is mutated. A second Init on an initialized client is a no-op
// returning nil immediately, without re-resolving or reconnecting.
//
// On any step failure every partially constructed piece is released and
// all state fields reset, so a failed Init leaves the client exactly as
// it was. Initialization failure is never fatal to callers: SendTrace
// reports it and stays inactive.
func (c *Client) Init(ctx context.Context, connectionString string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initLocked(ctx, connectionString)
}

func (c *Client) initLocked(ctx context.Context, connectionString string) error {
	if c.initialized {
		return nil
	}

	conn, err := resolveConnectionString(connectionString)
	if err != nil {
		return err
	}

	cacheDir, artifact, err := c.ensureArtifact(ctx)
	if err != nil {
		c.resetLocked(ctx)
		return fmt.Errorf("acquiring sdk artifact: %w", err)
	}
	c.cachePath = cacheDir
	c.artifactPath = artifact

	if err := c.loadSDK(artifact); err != nil {
		c.resetLocked(ctx)
		return err
	}

	tp, owns, err := c.buildProvider(ctx, conn)
	if err != nil {
		c.resetLocked(ctx)
		return fmt.Errorf("constructing telemetry client: %w", err)
	}

	c.tracerProvider = tp
	c.ownsProvider = owns
	c.tracer = tp.Tracer(tracerName)
	c.connectionString = conn
	c.initialized = true

	c.emitInfo("telemetry initialized", "provider", string(c.provider), "sdk_version", c.sdkVersion)
	return nil
}

// loadSDK binds the cached artifact: it verifies the file is present and
// readable and records it as loaded. Re-verification is skipped once
// bound.
func (c *Client) loadSDK(artifact string) error {
	if c.sdkLoaded {
		return nil
	}
	f, err := os.Open(artifact)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrArtifactUnavailable, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.Size() == 0 {
		return fmt.Errorf("%w: %q is empty or unreadable", ErrArtifactUnavailable, artifact)
	}
	c.sdkLoaded = true
	return nil
}

// buildProvider constructs the tracer provider for the resolved
// connection string. A provider injected via WithTracerProvider is used
// as-is and remains owned by the caller.
func (c *Client) buildProvider(ctx context.Context, conn string) (tp *sdktrace.TracerProvider, owns bool, err error) {
	if c.injected != nil {
		return c.injected, false, nil
	}

	endpoint, insecure := endpointFromConnection(conn)
	insecure = insecure || c.insecure

	var exporter sdktrace.SpanExporter
	switch c.provider {
	case OTLPProvider:
		opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(endpoint)}
		if insecure {
			opts = append(opts, otlptracegrpc.WithInsecure())
		}
		exporter, err = otlptracegrpc.New(ctx, opts...)
	case OTLPHTTPProvider:
		opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(endpoint)}
		if insecure {
			opts = append(opts, otlptracehttp.WithInsecure())
		}
		exporter, err = otlptracehttp.New(ctx, opts...)
	case StdoutProvider:
		exporter, err = stdouttrace.New(stdouttrace.WithPrettyPrint())
	default:
		return nil, false, fmt.Errorf("%w: %s", ErrUnsupportedProvider, c.provider)
	}
	if err != nil {
		return nil, false, fmt.Errorf("creating %s exporter: %w", c.provider, err)
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(c.serviceName),
		semconv.ServiceVersion(c.sdkVersion),
	)
	tp = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	return tp, true, nil
}

// Reset disposes the cached client and clears all state fields. The next
// Init or SendTrace starts from scratch. Calling Reset on an
// uninitialized client is a no-op.
func (c *Client) Reset(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.resetLocked(ctx)
}

func (c *Client) resetLocked(ctx context.Context) error {
	var err error
	if c.tracerProvider != nil && c.ownsProvider {
		if shutdownErr := c.tracerProvider.Shutdown(ctx); shutdownErr != nil {
			err = fmt.Errorf("shutting down tracer provider: %w", shutdownErr)
			c.emitWarning("tracer provider shutdown failed", "error", shutdownErr)
		}
	}
	c.initialized = false
	c.sdkLoaded = false
	c.connectionString = ""
	c.cachePath = ""
	c.artifactPath = ""
	c.tracerProvider = nil
	c.tracer = nil
	c.ownsProvider = false
	return err
}

// Status returns a copy of the current client state.
func (c *Client) Status() StateSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return StateSnapshot{
		Initialized:      c.initialized,
		SDKLoaded:        c.sdkLoaded,
		ConnectionString: c.connectionString,
		CachePath:        c.cachePath,
		ArtifactPath:     c.artifactPath,
		HasClient:        c.tracer != nil,
	}
}

// SendTrace submits one trace record to the remote endpoint,
// implementing [logging.TraceSink].
//
// An uninitialized client attempts implicit initialization first (with
// the environment connection string); if that fails the call is a no-op
// returning the error, leaving reporting to the caller so a dispatch
// failure surfaces exactly once. SeverityDebug is mapped to
// SeverityVerbose for the outgoing record only, since the remote schema
// has no Debug level. Properties are backfilled only-if-absent with
// sdkVersion, sourceName and localTimestamp. After dispatch the batch is
// force-flushed and the call pauses for the configured flush delay.
func (c *Client) SendTrace(ctx context.Context, message string, severity logging.Severity, properties map[string]string) error {
	c.mu.Lock()
	if err := c.initLocked(ctx, ""); err != nil {
		c.mu.Unlock()
		return err
	}
	tracer := c.tracer
	tp := c.tracerProvider
	sdkVersion := c.sdkVersion
	c.mu.Unlock()

	remote := severity
	if severity == logging.SeverityDebug {
		remote = logging.SeverityVerbose
	}

	props := make(map[string]string, len(properties)+3)
	for k, v := range properties {
		props[k] = v
	}
	if _, ok := props["sdkVersion"]; !ok {
		props["sdkVersion"] = sdkVersion
	}
	if _, ok := props["sourceName"]; !ok {
		props["sourceName"] = logging.CallerSource()
	}
	if _, ok := props["localTimestamp"]; !ok {
		props["localTimestamp"] = c.now().Format("2006-01-02 15:04:05.000")
	}

	attrs := make([]attribute.KeyValue, 0, len(props)+3)
	attrs = append(attrs,
		attribute.String("log.message", message),
		attribute.String("log.severity", remote.String()),
		attribute.String("operation.id", uuid.NewString()),
	)
	for k, v := range props {
		attrs = append(attrs, attribute.String("telemetry.property."+k, v))
	}

	_, span := tracer.Start(ctx, "trace", trace.WithTimestamp(c.now().UTC()))
	span.SetAttributes(attrs...)
	span.End()

	if err := tp.ForceFlush(ctx); err != nil {
		c.emitWarning("trace flush failed", "error", err)
		return fmt.Errorf("flushing trace: %w", err)
	}
	if c.flushDelay > 0 {
		time.Sleep(c.flushDelay)
	}
	return nil
}

func (c *Client) emit(t logging.EventType, msg string, args ...any) {
	if c.events != nil {
		c.events(logging.Event{Type: t, Message: msg, Args: args})
	}
}

func (c *Client) emitWarning(msg string, args ...any) { c.emit(logging.EventWarning, msg, args...) }
func (c *Client) emitInfo(msg string, args ...any)    { c.emit(logging.EventInfo, msg, args...) }
func (c *Client) emitDebug(msg string, args ...any)   { c.emit(logging.EventDebug, msg, args...) }
