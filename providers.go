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

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// meterScope names the instrumentation scope for all instruments.
const meterScope = "rivaas.dev/uritemplate"

// initializeProvider sets up the meter provider per configuration and
// creates the instruments.
func (r *Recorder) initializeProvider() error {
	if r.customMeterProvider {
		r.emitDebug("using caller-provided meter provider")
		r.meter = r.meterProvider.Meter(meterScope)

		return r.initInstruments()
	}

	switch r.provider {
	case PrometheusProvider:
		return r.initPrometheusProvider()
	case OTLPProvider:
		return r.initOTLPProvider()
	case StdoutProvider:
		return r.initStdoutProvider()
	default:
		return fmt.Errorf("unsupported metrics provider: %s", r.provider)
	}
}

// initPrometheusProvider backs the meter with a Prometheus exporter on a
// private registry, avoiding collisions with the host application's global
// registry. The scrape handler is exposed through Recorder.Handler.
func (r *Recorder) initPrometheusProvider() error {
	r.prometheusRegistry = promclient.NewRegistry()

	exporter, err := prometheus.New(
		prometheus.WithRegisterer(r.prometheusRegistry),
	)
	if err != nil {
		return fmt.Errorf("failed to create Prometheus exporter: %w", err)
	}

	r.meterProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
	)
	r.prometheusHandler = promhttp.HandlerFor(
		r.prometheusRegistry,
		promhttp.HandlerOpts{},
	)

	return r.finishProviderSetup("prometheus")
}

// initOTLPProvider pushes metrics to an OTLP HTTP collector on a periodic
// reader. Creating the exporter performs no network I/O; the first export
// does.
func (r *Recorder) initOTLPProvider() error {
	opts := []otlpmetrichttp.Option{}
	if r.otlpEndpoint != "" {
		opts = append(opts, otlpmetrichttp.WithEndpointURL(r.otlpEndpoint))
	} else {
		r.emitWarning("OTLP endpoint not specified, using exporter default")
	}

	exporter, err := otlpmetrichttp.New(context.Background(), opts...)
	if err != nil {
		return fmt.Errorf("failed to create OTLP exporter: %w", err)
	}

	r.meterProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(
			exporter,
			sdkmetric.WithInterval(r.exportInterval),
		)),
	)

	return r.finishProviderSetup("otlp")
}

// initStdoutProvider prints metrics to stdout, for development and tests.
func (r *Recorder) initStdoutProvider() error {
	exporter, err := stdoutmetric.New()
	if err != nil {
		return fmt.Errorf("failed to create stdout exporter: %w", err)
	}

	r.meterProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(
			exporter,
			sdkmetric.WithInterval(r.exportInterval),
		)),
	)

	return r.finishProviderSetup("stdout")
}

func (r *Recorder) finishProviderSetup(name string) error {
	if r.registerGlobal {
		r.emitDebug("setting global OpenTelemetry meter provider", "provider", name)
		otel.SetMeterProvider(r.meterProvider)
	}
	r.meter = r.meterProvider.Meter(meterScope)

	return r.initInstruments()
}
