package telemetry

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	otellog "go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/metric"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/arclabs/tracewright/telemetry/exporters"
)

// scopeName identifies this instrumentation library in exported telemetry.
const scopeName = "github.com/arclabs/tracewright"

// Version is the instrumentation library version stamped on every scope.
const Version = "0.2.0"

// Config holds all configuration for a Pipeline.
type Config struct {
	ServiceName string
	Environment string

	// Endpoint and Insecure configure the OTLP gRPC exporters. An empty
	// endpoint falls back to OTEL_EXPORTER_OTLP_ENDPOINT.
	Endpoint string
	Insecure bool

	// Exporter names. Empty selects otlp; "none" discards.
	TraceExporter  string
	LogExporter    string
	MetricExporter string
}

var validTraceExporters = map[string]bool{"otlp": true, "stdout": true, "none": true, "": true}
var validLogExporters = map[string]bool{"otlp": true, "stdout": true, "none": true, "": true}
var validMetricExporters = map[string]bool{"otlp": true, "prometheus": true, "stdout": true, "none": true, "": true}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.ServiceName == "" {
		return ErrMissingServiceName
	}
	if !validTraceExporters[c.TraceExporter] {
		return fmt.Errorf("%w: trace exporter %q", ErrInvalidExporter, c.TraceExporter)
	}
	if !validLogExporters[c.LogExporter] {
		return fmt.Errorf("%w: log exporter %q", ErrInvalidExporter, c.LogExporter)
	}
	if !validMetricExporters[c.MetricExporter] {
		return fmt.Errorf("%w: metric exporter %q", ErrInvalidExporter, c.MetricExporter)
	}
	return nil
}

// Option customizes Pipeline construction.
type Option func(*options)

type options struct {
	spanProcessors []sdktrace.SpanProcessor
	logProcessors  []sdklog.Processor
}

// WithSpanProcessor registers an additional span processor, e.g. an
// in-memory recorder in tests.
func WithSpanProcessor(sp sdktrace.SpanProcessor) Option {
	return func(o *options) { o.spanProcessors = append(o.spanProcessors, sp) }
}

// WithLogProcessor registers an additional log record processor.
func WithLogProcessor(p sdklog.Processor) Option {
	return func(o *options) { o.logProcessors = append(o.logProcessors, p) }
}

// Pipeline bundles the tracer, logger and meter providers for one suite run.
//
// Contract:
// - Ownership: each Pipeline owns its providers; nothing is registered globally.
// - Context: ForceFlush and Shutdown honor cancellation/deadlines.
// - Errors: Shutdown is idempotent and returns all errors joined.
type Pipeline struct {
	tracerProvider *sdktrace.TracerProvider
	loggerProvider *sdklog.LoggerProvider
	meterProvider  *sdkmetric.MeterProvider
	tracer         trace.Tracer
	logger         otellog.Logger
	meter          metric.Meter
}

// New creates a Pipeline with the given configuration.
func New(ctx context.Context, cfg Config, opts ...Option) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	resAttrs := []attribute.KeyValue{
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(Version),
	}
	if cfg.Environment != "" {
		resAttrs = append(resAttrs, semconv.DeploymentEnvironment(cfg.Environment))
	}
	res, err := resource.New(ctx, resource.WithAttributes(resAttrs...))
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	traceName := cfg.TraceExporter
	if traceName == "" {
		traceName = "otlp"
	}
	spanExporter, err := exporters.NewTraceExporter(ctx, traceName, cfg.Endpoint, cfg.Insecure)
	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}
	tpOpts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(res),
		sdktrace.WithBatcher(spanExporter),
	}
	for _, sp := range o.spanProcessors {
		tpOpts = append(tpOpts, sdktrace.WithSpanProcessor(sp))
	}
	tp := sdktrace.NewTracerProvider(tpOpts...)

	logName := cfg.LogExporter
	if logName == "" {
		logName = "otlp"
	}
	logExporter, err := exporters.NewLogExporter(ctx, logName, cfg.Endpoint, cfg.Insecure)
	if err != nil {
		return nil, errors.Join(
			fmt.Errorf("failed to create log exporter: %w", err),
			tp.Shutdown(ctx),
		)
	}
	lpOpts := []sdklog.LoggerProviderOption{
		sdklog.WithResource(res),
		sdklog.WithProcessor(sdklog.NewBatchProcessor(logExporter)),
	}
	for _, p := range o.logProcessors {
		lpOpts = append(lpOpts, sdklog.WithProcessor(p))
	}
	lp := sdklog.NewLoggerProvider(lpOpts...)

	metricName := cfg.MetricExporter
	if metricName == "" {
		metricName = "none"
	}
	reader, err := exporters.NewMetricReader(ctx, metricName, cfg.Endpoint, cfg.Insecure)
	if err != nil {
		return nil, errors.Join(
			fmt.Errorf("failed to create metric reader: %w", err),
			tp.Shutdown(ctx),
			lp.Shutdown(ctx),
		)
	}
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(reader),
	)

	return &Pipeline{
		tracerProvider: tp,
		loggerProvider: lp,
		meterProvider:  mp,
		tracer:         tp.Tracer(scopeName, trace.WithInstrumentationVersion(Version)),
		logger:         lp.Logger(scopeName, otellog.WithInstrumentationVersion(Version)),
		meter:          mp.Meter(scopeName, metric.WithInstrumentationVersion(Version)),
	}, nil
}

// Tracer returns the pipeline's tracer.
func (p *Pipeline) Tracer() trace.Tracer { return p.tracer }

// Logger returns the pipeline's log emitter.
func (p *Pipeline) Logger() otellog.Logger { return p.logger }

// Meter returns the pipeline's meter.
func (p *Pipeline) Meter() metric.Meter { return p.meter }

// ForceFlush synchronously exports all pending spans, log records and
// metrics. Safe to call on every exit path.
func (p *Pipeline) ForceFlush(ctx context.Context) error {
	var errs []error
	if err := p.tracerProvider.ForceFlush(ctx); err != nil {
		errs = append(errs, fmt.Errorf("trace flush: %w", err))
	}
	if err := p.loggerProvider.ForceFlush(ctx); err != nil {
		errs = append(errs, fmt.Errorf("log flush: %w", err))
	}
	if err := p.meterProvider.ForceFlush(ctx); err != nil {
		errs = append(errs, fmt.Errorf("metric flush: %w", err))
	}
	return errors.Join(errs...)
}

// Shutdown flushes and stops all providers.
func (p *Pipeline) Shutdown(ctx context.Context) error {
	var errs []error
	if err := p.tracerProvider.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("tracer shutdown: %w", err))
	}
	if err := p.loggerProvider.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("logger shutdown: %w", err))
	}
	if err := p.meterProvider.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("meter shutdown: %w", err))
	}
	return errors.Join(errs...)
}
