// Copyright 2025 The Rivaas Authors
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

package uritemplate

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// DefaultLookupBuckets are histogram boundaries for lookup duration in
// seconds. Lookups are in-memory regex matches, so the boundaries cover
// the microsecond to low-millisecond range.
var DefaultLookupBuckets = []float64{
	0.000001, 0.000005, 0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005,
}

// EventType represents the severity of an internal operational event.
type EventType int

const (
	// EventError indicates an error event.
	EventError EventType = iota
	// EventWarning indicates a warning event.
	EventWarning
	// EventDebug indicates a debug event.
	EventDebug
)

// Event represents an internal operational event from the metrics layer,
// such as a provider initialization detail.
type Event struct {
	Type    EventType
	Message string
	Args    []any // slog-style key-value pairs
}

// EventHandler processes internal operational events. Implementations can
// log events or forward them to monitoring systems.
type EventHandler func(Event)

// DefaultEventHandler returns an EventHandler that logs events to the
// provided slog.Logger. A nil logger yields a no-op handler.
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
		case EventDebug:
			logger.Debug(e.Message, e.Args...)
		}
	}
}

// Provider represents the available metrics providers.
type Provider string

const (
	// PrometheusProvider exposes metrics through a Prometheus registry
	// and handler (default).
	PrometheusProvider Provider = "prometheus"
	// OTLPProvider pushes metrics to an OTLP HTTP collector.
	OTLPProvider Provider = "otlp"
	// StdoutProvider prints metrics to stdout (development/testing).
	StdoutProvider Provider = "stdout"
)

// Recorder records template registration and lookup measurements through
// OpenTelemetry. All methods are safe for concurrent use, and all
// recording methods are no-ops on a nil Recorder, so a Set without metrics
// pays only a nil check.
//
// By default the Recorder does NOT set the global OpenTelemetry meter
// provider; use WithGlobalMeterProvider for that. This lets multiple
// Recorder instances coexist in one process.
type Recorder struct {
	meter              metric.Meter
	meterProvider      metric.MeterProvider
	prometheusRegistry *promclient.Registry
	prometheusHandler  http.Handler
	eventHandler       EventHandler

	registeredCount metric.Int64Counter
	lookupCount     metric.Int64Counter
	lookupHits      metric.Int64Counter
	lookupDuration  metric.Float64Histogram

	serviceName    string
	serviceVersion string
	otlpEndpoint   string
	exportInterval time.Duration
	lookupBuckets  []float64

	serviceNameAttr    attribute.KeyValue
	serviceVersionAttr attribute.KeyValue

	provider            Provider
	providerSetCount    int
	customMeterProvider bool
	registerGlobal      bool
}

// NewRecorder creates a new Recorder with the given options. It returns an
// error if the configuration is invalid or the provider fails to
// initialize. For a version that panics on error, use MustNewRecorder.
func NewRecorder(opts ...RecorderOption) (*Recorder, error) {
	r := &Recorder{
		serviceName:    "uritemplate",
		serviceVersion: "1.0.0",
		provider:       PrometheusProvider,
		exportInterval: 30 * time.Second,
		lookupBuckets:  DefaultLookupBuckets,
		eventHandler:   func(Event) {},
	}

	for _, opt := range opts {
		opt(r)
	}

	if err := r.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	r.serviceNameAttr = attribute.String("service.name", r.serviceName)
	r.serviceVersionAttr = attribute.String("service.version", r.serviceVersion)

	if err := r.initializeProvider(); err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	return r, nil
}

// MustNewRecorder is like NewRecorder but panics on error.
func MustNewRecorder(opts ...RecorderOption) *Recorder {
	r, err := NewRecorder(opts...)
	if err != nil {
		panic(fmt.Sprintf("uritemplate: failed to initialize metrics: %v", err))
	}

	return r
}

func (r *Recorder) validate() error {
	if r.providerSetCount > 1 {
		return fmt.Errorf("conflicting provider options: only one of WithPrometheus, WithOTLP, WithStdout, or WithMeterProvider can be used")
	}
	if r.serviceName == "" {
		return fmt.Errorf("service name cannot be empty")
	}
	if r.serviceVersion == "" {
		return fmt.Errorf("service version cannot be empty")
	}
	if r.customMeterProvider && r.meterProvider == nil {
		return fmt.Errorf("custom meter provider is nil")
	}

	return nil
}

// initInstruments creates the built-in instruments on the configured meter.
func (r *Recorder) initInstruments() error {
	var err error

	r.registeredCount, err = r.meter.Int64Counter("uritemplate_registered_total",
		metric.WithDescription("Templates registered into sets"))
	if err != nil {
		return fmt.Errorf("create registered counter: %w", err)
	}

	r.lookupCount, err = r.meter.Int64Counter("uritemplate_lookup_total",
		metric.WithDescription("Set lookup attempts"))
	if err != nil {
		return fmt.Errorf("create lookup counter: %w", err)
	}

	r.lookupHits, err = r.meter.Int64Counter("uritemplate_lookup_hits_total",
		metric.WithDescription("Set lookups that matched a template"))
	if err != nil {
		return fmt.Errorf("create lookup hits counter: %w", err)
	}

	r.lookupDuration, err = r.meter.Float64Histogram("uritemplate_lookup_duration_seconds",
		metric.WithDescription("Set lookup duration in seconds"),
		metric.WithExplicitBucketBoundaries(r.lookupBuckets...))
	if err != nil {
		return fmt.Errorf("create lookup duration histogram: %w", err)
	}

	return nil
}

// Handler returns the Prometheus metrics http.Handler. The library does not
// own a server; mount the handler wherever the host application serves
// metrics. Only available with PrometheusProvider.
func (r *Recorder) Handler() (http.Handler, error) {
	if r.provider != PrometheusProvider || r.prometheusHandler == nil {
		return nil, fmt.Errorf("handler only available with Prometheus provider, current provider: %s", r.provider)
	}

	return r.prometheusHandler, nil
}

// Provider returns the configured metrics provider.
func (r *Recorder) Provider() Provider { return r.provider }

// Shutdown flushes and shuts down the meter provider. Caller-supplied
// providers are left alone; they are managed by the caller. Idempotent
// shutdown is delegated to the SDK.
func (r *Recorder) Shutdown(ctx context.Context) error {
	if r.customMeterProvider {
		r.emitDebug("skipping shutdown of custom meter provider (managed by caller)")
		return nil
	}

	mp, ok := r.meterProvider.(*sdkmetric.MeterProvider)
	if !ok {
		return nil
	}

	if err := mp.ForceFlush(ctx); err != nil {
		r.emitWarning("metrics flush warning", "error", err)
	}
	if err := mp.Shutdown(ctx); err != nil {
		return fmt.Errorf("meter provider shutdown: %w", err)
	}

	return nil
}

// recordRegistered counts one template registration. Nil-safe.
func (r *Recorder) recordRegistered(ctx context.Context) {
	if r == nil {
		return
	}
	r.registeredCount.Add(ctx, 1, metric.WithAttributes(r.serviceNameAttr, r.serviceVersionAttr))
}

// recordLookup counts a matched lookup and records its duration. The
// matched template's pattern source is the cardinality-bounded identity
// attribute (the registered template population bounds it, like a route
// pattern does for HTTP metrics). Nil-safe.
func (r *Recorder) recordLookup(ctx context.Context, d time.Duration, pattern string) {
	if r == nil {
		return
	}
	attrs := metric.WithAttributes(
		r.serviceNameAttr,
		r.serviceVersionAttr,
		attribute.String("uritemplate.pattern", pattern),
	)
	r.lookupCount.Add(ctx, 1, attrs)
	r.lookupHits.Add(ctx, 1, attrs)
	r.lookupDuration.Record(ctx, d.Seconds(), attrs)
}

// recordMiss counts an unmatched lookup and records its duration. Nil-safe.
func (r *Recorder) recordMiss(ctx context.Context, d time.Duration) {
	if r == nil {
		return
	}
	attrs := metric.WithAttributes(r.serviceNameAttr, r.serviceVersionAttr)
	r.lookupCount.Add(ctx, 1, attrs)
	r.lookupDuration.Record(ctx, d.Seconds(), attrs)
}

func (r *Recorder) emitWarning(msg string, args ...any) {
	if r.eventHandler != nil {
		r.eventHandler(Event{Type: EventWarning, Message: msg, Args: args})
	}
}

func (r *Recorder) emitDebug(msg string, args ...any) {
	if r.eventHandler != nil {
		r.eventHandler(Event{Type: EventDebug, Message: msg, Args: args})
	}
}
