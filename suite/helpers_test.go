package suite

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	otellog "go.opentelemetry.io/otel/log"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	"github.com/arclabs/tracewright/telemetry"
)

// recordedLog is a captured log record flattened for assertions.
type recordedLog struct {
	body     string
	severity otellog.Severity
	traceID  trace.TraceID
	spanID   trace.SpanID
	attrs    map[string]string
}

// capturingLogProcessor collects emitted log records in memory.
type capturingLogProcessor struct {
	records []recordedLog
}

func (p *capturingLogProcessor) OnEmit(ctx context.Context, r *sdklog.Record) error {
	rec := recordedLog{
		body:     r.Body().AsString(),
		severity: r.Severity(),
		traceID:  r.TraceID(),
		spanID:   r.SpanID(),
		attrs:    make(map[string]string),
	}
	r.WalkAttributes(func(kv otellog.KeyValue) bool {
		rec.attrs[kv.Key] = kv.Value.AsString()
		return true
	})
	p.records = append(p.records, rec)
	return nil
}

func (p *capturingLogProcessor) Enabled(ctx context.Context, param sdklog.EnabledParameters) bool {
	return true
}

func (p *capturingLogProcessor) Shutdown(ctx context.Context) error   { return nil }
func (p *capturingLogProcessor) ForceFlush(ctx context.Context) error { return nil }

// newTestPipeline builds an instance-scoped pipeline with discarding
// exporters plus in-memory recorders.
func newTestPipeline(t *testing.T) (*telemetry.Pipeline, *tracetest.SpanRecorder, *capturingLogProcessor) {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	logs := &capturingLogProcessor{}

	pipeline, err := telemetry.New(context.Background(), telemetry.Config{
		ServiceName:    "tracewright-test",
		TraceExporter:  "none",
		LogExporter:    "none",
		MetricExporter: "none",
	},
		telemetry.WithSpanProcessor(recorder),
		telemetry.WithLogProcessor(logs),
	)
	if err != nil {
		t.Fatalf("telemetry.New failed: %v", err)
	}
	t.Cleanup(func() {
		_ = pipeline.Shutdown(context.Background())
	})

	return pipeline, recorder, logs
}

// newTestSuite starts a suite against the fake driver with in-memory telemetry.
func newTestSuite(t *testing.T) (*Suite, *fakeDriver, *tracetest.SpanRecorder, *capturingLogProcessor) {
	t.Helper()

	pipeline, recorder, logs := newTestPipeline(t)
	drv := newFakeDriver()

	headless := true
	s, err := StartWithPipeline(context.Background(), Config{
		ServiceName: "tracewright-test",
		SuiteName:   "smoke",
		BaseURL:     "http://localhost:8080",
		Environment: "test",
		Trigger:     "manual",
		Browser:     "chromium",
		Headless:    &headless,
	}, drv, pipeline)
	if err != nil {
		t.Fatalf("StartWithPipeline failed: %v", err)
	}

	return s, drv, recorder, logs
}

// attrMap flattens a recorded span's attributes for lookups.
func attrMap(s sdktrace.ReadOnlySpan) map[string]attribute.Value {
	m := make(map[string]attribute.Value, len(s.Attributes()))
	for _, a := range s.Attributes() {
		m[string(a.Key)] = a.Value
	}
	return m
}

// findSpan returns the single ended span with the given name.
func findSpan(t *testing.T, recorder *tracetest.SpanRecorder, name string) sdktrace.ReadOnlySpan {
	t.Helper()

	var found sdktrace.ReadOnlySpan
	for _, s := range recorder.Ended() {
		if s.Name() == name {
			if found != nil {
				t.Fatalf("expected exactly one span named %q, found more", name)
			}
			found = s
		}
	}
	if found == nil {
		t.Fatalf("no span named %q among %d ended spans", name, len(recorder.Ended()))
	}
	return found
}
