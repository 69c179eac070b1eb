package suite

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// suiteMetrics records aggregate counters alongside the span tree. The
// counters mirror the suite-level span attributes so dashboards can alert
// without scanning traces.
type suiteMetrics struct {
	caseCount      metric.Int64Counter
	caseFailures   metric.Int64Counter
	actionDuration metric.Float64Histogram
}

func newSuiteMetrics(meter metric.Meter) (*suiteMetrics, error) {
	caseCount, err := meter.Int64Counter(
		"test.case.executions",
		metric.WithDescription("Total number of executed test cases"),
		metric.WithUnit("{case}"),
	)
	if err != nil {
		return nil, err
	}

	caseFailures, err := meter.Int64Counter(
		"test.case.failures",
		metric.WithDescription("Total number of failed test cases"),
		metric.WithUnit("{case}"),
	)
	if err != nil {
		return nil, err
	}

	actionDuration, err := meter.Float64Histogram(
		"test.action.duration_ms",
		metric.WithDescription("Instrumented browser action duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &suiteMetrics{
		caseCount:      caseCount,
		caseFailures:   caseFailures,
		actionDuration: actionDuration,
	}, nil
}

func (m *suiteMetrics) recordCase(ctx context.Context, suiteName string, passed bool) {
	result := "passed"
	if !passed {
		result = "failed"
	}
	opt := metric.WithAttributes(
		attribute.String("test.suite.name", suiteName),
		attribute.String("test.case.result", result),
	)
	m.caseCount.Add(ctx, 1, opt)
	if !passed {
		m.caseFailures.Add(ctx, 1, opt)
	}
}

func (m *suiteMetrics) recordAction(ctx context.Context, actionType string, duration time.Duration, err error) {
	m.actionDuration.Record(ctx, float64(duration)/float64(time.Millisecond),
		metric.WithAttributes(
			attribute.String("test.action.type", actionType),
			attribute.Bool("test.action.error", err != nil),
		),
	)
}
