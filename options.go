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
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/metric"
)

// RecorderOption configures a metrics Recorder.
type RecorderOption func(*Recorder)

// WithServiceName sets the service.name attribute recorded on all
// measurements.
func WithServiceName(name string) RecorderOption {
	return func(r *Recorder) {
		r.serviceName = name
	}
}

// WithServiceVersion sets the service.version attribute recorded on all
// measurements.
func WithServiceVersion(version string) RecorderOption {
	return func(r *Recorder) {
		r.serviceVersion = version
	}
}

// WithPrometheus selects the Prometheus provider. Metrics are collected in
// a private registry; serve them through Recorder.Handler.
func WithPrometheus() RecorderOption {
	return func(r *Recorder) {
		r.provider = PrometheusProvider
		r.providerSetCount++
	}
}

// WithOTLP selects the OTLP HTTP provider pushing to endpoint. An empty
// endpoint uses the exporter's default resolution (environment variables,
// then localhost).
func WithOTLP(endpoint string) RecorderOption {
	return func(r *Recorder) {
		r.provider = OTLPProvider
		r.otlpEndpoint = endpoint
		r.providerSetCount++
	}
}

// WithStdout selects the stdout provider, printing metrics on the export
// interval. Intended for development and tests.
func WithStdout() RecorderOption {
	return func(r *Recorder) {
		r.provider = StdoutProvider
		r.providerSetCount++
	}
}

// WithMeterProvider uses a caller-supplied meter provider instead of a
// built-in one. The caller owns the provider's lifecycle; Shutdown leaves
// it alone.
func WithMeterProvider(mp metric.MeterProvider) RecorderOption {
	return func(r *Recorder) {
		r.meterProvider = mp
		r.customMeterProvider = true
		r.providerSetCount++
	}
}

// WithGlobalMeterProvider registers the built-in meter provider as the
// OpenTelemetry global default.
func WithGlobalMeterProvider() RecorderOption {
	return func(r *Recorder) {
		r.registerGlobal = true
	}
}

// WithExportInterval sets the export interval for push-based providers
// (OTLP, stdout).
func WithExportInterval(interval time.Duration) RecorderOption {
	return func(r *Recorder) {
		r.exportInterval = interval
	}
}

// WithLookupBuckets overrides the histogram boundaries for the lookup
// duration instrument.
func WithLookupBuckets(buckets []float64) RecorderOption {
	return func(r *Recorder) {
		r.lookupBuckets = buckets
	}
}

// WithEventHandler sets the handler for internal operational events.
func WithEventHandler(handler EventHandler) RecorderOption {
	return func(r *Recorder) {
		r.eventHandler = handler
	}
}

// WithLogger routes internal operational events to logger via
// DefaultEventHandler.
func WithLogger(logger *slog.Logger) RecorderOption {
	return func(r *Recorder) {
		r.eventHandler = DefaultEventHandler(logger)
	}
}
