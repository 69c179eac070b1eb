// Package exporters provides factory functions for creating OpenTelemetry exporters.
package exporters

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutlog"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// resolveEndpoint picks the configured endpoint, falling back to the
// standard OTLP environment variable.
func resolveEndpoint(endpoint string) (string, error) {
	if endpoint != "" {
		return endpoint, nil
	}
	if env := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); env != "" {
		return env, nil
	}
	return "", fmt.Errorf("OTLP endpoint not configured: set it in the config or via OTEL_EXPORTER_OTLP_ENDPOINT")
}

// NewTraceExporter creates a span exporter based on the exporter name.
// Supported exporters: otlp, stdout, none.
func NewTraceExporter(ctx context.Context, name, endpoint string, insecure bool) (sdktrace.SpanExporter, error) {
	switch name {
	case "otlp":
		ep, err := resolveEndpoint(endpoint)
		if err != nil {
			return nil, err
		}
		opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpointURL(ep)}
		if insecure {
			opts = append(opts, otlptracegrpc.WithInsecure())
		}
		return otlptracegrpc.New(ctx, opts...)

	case "stdout":
		return stdouttrace.New(stdouttrace.WithWriter(os.Stdout))

	case "none", "":
		// A discarding exporter keeps the pipeline shape uniform.
		return stdouttrace.New(stdouttrace.WithWriter(io.Discard))

	default:
		return nil, fmt.Errorf("unknown trace exporter: %q", name)
	}
}

// NewLogExporter creates a log record exporter based on the exporter name.
// Supported exporters: otlp, stdout, none.
func NewLogExporter(ctx context.Context, name, endpoint string, insecure bool) (sdklog.Exporter, error) {
	switch name {
	case "otlp":
		ep, err := resolveEndpoint(endpoint)
		if err != nil {
			return nil, err
		}
		opts := []otlploggrpc.Option{otlploggrpc.WithEndpointURL(ep)}
		if insecure {
			opts = append(opts, otlploggrpc.WithInsecure())
		}
		return otlploggrpc.New(ctx, opts...)

	case "stdout":
		return stdoutlog.New(stdoutlog.WithWriter(os.Stdout))

	case "none", "":
		return stdoutlog.New(stdoutlog.WithWriter(io.Discard))

	default:
		return nil, fmt.Errorf("unknown log exporter: %q", name)
	}
}

// NewMetricReader creates a metrics reader based on the exporter name.
// Supported exporters: otlp, prometheus, stdout, none.
func NewMetricReader(ctx context.Context, name, endpoint string, insecure bool) (sdkmetric.Reader, error) {
	switch name {
	case "otlp":
		ep, err := resolveEndpoint(endpoint)
		if err != nil {
			return nil, err
		}
		opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithEndpointURL(ep)}
		if insecure {
			opts = append(opts, otlpmetricgrpc.WithInsecure())
		}
		exp, err := otlpmetricgrpc.New(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create OTLP metrics exporter: %w", err)
		}
		return sdkmetric.NewPeriodicReader(exp), nil

	case "prometheus":
		exp, err := prometheus.New()
		if err != nil {
			return nil, fmt.Errorf("failed to create Prometheus exporter: %w", err)
		}
		return exp, nil

	case "stdout":
		exp, err := stdoutmetric.New(stdoutmetric.WithWriter(os.Stdout))
		if err != nil {
			return nil, fmt.Errorf("failed to create stdout metrics exporter: %w", err)
		}
		return sdkmetric.NewPeriodicReader(exp), nil

	case "none", "":
		exp, err := stdoutmetric.New(stdoutmetric.WithWriter(io.Discard))
		if err != nil {
			return nil, err
		}
		return sdkmetric.NewPeriodicReader(exp), nil

	default:
		return nil, fmt.Errorf("unknown metrics exporter: %q", name)
	}
}
