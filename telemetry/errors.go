package telemetry

import "errors"

// Configuration errors.
var (
	// ErrMissingServiceName indicates Config.ServiceName is empty.
	ErrMissingServiceName = errors.New("telemetry: service name is required")

	// ErrInvalidExporter indicates an unknown exporter name.
	ErrInvalidExporter = errors.New("telemetry: invalid exporter")
)

// ValidTraceExporters lists valid trace exporter names.
var ValidTraceExporters = []string{"otlp", "stdout", "none", ""}

// ValidLogExporters lists valid log exporter names.
var ValidLogExporters = []string{"otlp", "stdout", "none", ""}

// ValidMetricExporters lists valid metric exporter names.
var ValidMetricExporters = []string{"otlp", "prometheus", "stdout", "none", ""}
