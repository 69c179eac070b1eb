package suite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	otellog "go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/trace"

	"github.com/arclabs/tracewright/driver"
	"github.com/arclabs/tracewright/telemetry"
	"github.com/arclabs/tracewright/vcs"
)

// Suite is the scoped lifetime for one instrumented test-suite run. It owns
// the root span, one browser session, the pass/fail aggregation, and the
// telemetry flush on Close.
//
// Contract:
// - Concurrency: a Suite is single-owner; test cases run one at a time.
// - Ownership: Close releases the browser session and flushes telemetry
//   exactly once; a second Close returns ErrSuiteClosed.
type Suite struct {
	cfg          Config
	pipeline     *telemetry.Pipeline
	ownsPipeline bool
	tracer       trace.Tracer
	metrics      *suiteMetrics

	drv     driver.Driver
	session driver.Session
	page    driver.Page

	runID    string
	rootSpan trace.Span
	suiteCtx context.Context

	total  int
	passed int
	failed int
	closed bool
}

// Start opens a suite run: it builds a telemetry pipeline from the config,
// opens the root span, and launches one browser session. The returned Suite
// must be closed, on failure paths included, so telemetry is flushed.
func Start(ctx context.Context, cfg Config, drv driver.Driver) (*Suite, error) {
	cfg = cfg.withDefaults()

	pipeline, err := telemetry.New(ctx, telemetry.Config{
		ServiceName:    cfg.ServiceName,
		Environment:    cfg.Environment,
		Endpoint:       cfg.Endpoint,
		Insecure:       cfg.insecure(),
		TraceExporter:  cfg.TraceExporter,
		LogExporter:    cfg.LogExporter,
		MetricExporter: cfg.MetricExporter,
	})
	if err != nil {
		return nil, err
	}

	s, err := StartWithPipeline(ctx, cfg, drv, pipeline)
	if err != nil {
		return nil, errors.Join(err, pipeline.Shutdown(ctx))
	}
	s.ownsPipeline = true
	return s, nil
}

// StartWithPipeline is Start for callers that own their telemetry pipeline,
// e.g. when several suites share one process. The pipeline is still flushed
// on Close but not shut down.
func StartWithPipeline(ctx context.Context, cfg Config, drv driver.Driver, pipeline *telemetry.Pipeline) (*Suite, error) {
	if drv == nil {
		return nil, ErrNilDriver
	}
	cfg = cfg.withDefaults()

	metrics, err := newSuiteMetrics(pipeline.Meter())
	if err != nil {
		return nil, fmt.Errorf("suite: metrics: %w", err)
	}

	runID := uuid.NewString()
	attrs := []attribute.KeyValue{
		attribute.String("test.suite.name", cfg.SuiteName),
		attribute.String("test.suite.id", runID),
		attribute.String("test.run.trigger", cfg.Trigger),
		attribute.String("test.run.timestamp", time.Now().UTC().Format(time.RFC3339)),
		attribute.String("test.target.base_url", cfg.BaseURL),
		attribute.String("test.target.environment", cfg.Environment),
		attribute.String("test.browser.name", cfg.Browser),
		attribute.Bool("test.browser.headless", cfg.headless()),
		attribute.Int("test.viewport.width", cfg.ViewportWidth),
		attribute.Int("test.viewport.height", cfg.ViewportHeight),
	}
	attrs = append(attrs, vcsAttributes(ctx)...)

	suiteCtx, rootSpan := pipeline.Tracer().Start(ctx, fmt.Sprintf("suite(%s)", cfg.SuiteName),
		trace.WithAttributes(attrs...),
	)

	s := &Suite{
		cfg:      cfg,
		pipeline: pipeline,
		tracer:   pipeline.Tracer(),
		metrics:  metrics,
		drv:      drv,
		runID:    runID,
		rootSpan: rootSpan,
		suiteCtx: suiteCtx,
	}

	session, err := drv.Launch(ctx, cfg.Browser, cfg.headless(), driver.Viewport{
		Width:  cfg.ViewportWidth,
		Height: cfg.ViewportHeight,
	})
	if err != nil {
		return nil, s.abortStart(ctx, fmt.Errorf("suite: launch browser: %w", err))
	}
	s.session = session

	page, err := session.NewPage(ctx)
	if err != nil {
		return nil, s.abortStart(ctx, fmt.Errorf("suite: open page: %w", err))
	}
	s.page = page

	return s, nil
}

// abortStart tears down a half-started suite so the root span and any
// session do not leak when Start fails.
func (s *Suite) abortStart(ctx context.Context, err error) error {
	s.rootSpan.SetStatus(codes.Error, err.Error())
	s.rootSpan.RecordError(err)
	s.rootSpan.End()
	if s.session != nil {
		err = errors.Join(err, s.session.Close(ctx))
	}
	return errors.Join(err, s.pipeline.ForceFlush(ctx))
}

// vcsAttributes merges best-effort commit and branch identifiers. Absence of
// a git checkout degrades observability, never the run.
func vcsAttributes(ctx context.Context) []attribute.KeyValue {
	var attrs []attribute.KeyValue
	p := &vcs.Provider{}
	if sha, ok := p.CommitSHA(ctx); ok {
		attrs = append(attrs, attribute.String("vcs.commit.sha", sha))
	}
	if branch, ok := p.Branch(ctx); ok {
		attrs = append(attrs, attribute.String("vcs.branch", branch))
	}
	return attrs
}

// Run executes one test case. It opens the case span as a child of the
// suite, hands the body a TestCase bound to that span, classifies the
// outcome on exit, and reports it to the aggregator. The body's error (or
// panic) is never swallowed; the case span is ended exactly once on every
// exit path.
func (s *Suite) Run(ctx context.Context, opts CaseOptions, fn func(ctx context.Context, tc *TestCase) error) error {
	if s.closed {
		return ErrSuiteClosed
	}
	if opts.Name == "" {
		return ErrMissingCaseName
	}

	// The case counts toward the total as soon as it starts, even if the
	// body never resolves normally.
	s.total++

	attrs := []attribute.KeyValue{attribute.String("test.case.name", opts.Name)}
	if opts.ID != "" {
		attrs = append(attrs, attribute.String("test.case.id", opts.ID))
	}
	if opts.Tags != "" {
		attrs = append(attrs, attribute.String("test.case.tags", opts.Tags))
	}
	if opts.Description != "" {
		attrs = append(attrs, attribute.String("test.case.description", opts.Description))
	}

	caseCtx, caseSpan := s.tracer.Start(s.suiteCtx, fmt.Sprintf("test(%q)", opts.Name),
		trace.WithAttributes(attrs...),
	)

	tc := &TestCase{
		opts: opts,
		span: caseSpan,
		actions: &actionInstrumentor{
			page:    s.page,
			tracer:  s.tracer,
			metrics: s.metrics,
		},
	}

	var runErr error
	func() {
		defer func() {
			if r := recover(); r != nil {
				s.finishCase(caseCtx, tc, fmt.Errorf("panic: %v", r))
				panic(r)
			}
		}()
		runErr = fn(caseCtx, tc)
	}()

	s.finishCase(caseCtx, tc, runErr)
	return runErr
}

// finishCase classifies the outcome, stamps the case span, updates the
// aggregate counts, emits the correlated error log on failure, and ends the
// span. Safe against double invocation from the panic path.
func (s *Suite) finishCase(ctx context.Context, tc *TestCase, err error) {
	if tc.closed {
		return
	}
	tc.closed = true

	if err != nil {
		pageURL := s.page.URL(ctx)
		tc.span.SetAttributes(
			attribute.String("test.case.result", "failed"),
			attribute.String("test.case.failure_reason", err.Error()),
			attribute.String("test.case.failure_url", pageURL),
		)
		tc.span.SetStatus(codes.Error, err.Error())
		tc.span.RecordError(err)
		s.failed++
		s.metrics.recordCase(ctx, s.cfg.SuiteName, false)
		s.emitFailureLog(ctx, tc, err, pageURL)
	} else {
		tc.span.SetAttributes(attribute.String("test.case.result", "passed"))
		tc.span.SetStatus(codes.Ok, "")
		s.passed++
		s.metrics.recordCase(ctx, s.cfg.SuiteName, true)
	}

	tc.span.End()
}

// emitFailureLog writes one error-level log record carrying the case span's
// trace and span ids so the log can be joined to the trace in the backend.
func (s *Suite) emitFailureLog(ctx context.Context, tc *TestCase, err error, pageURL string) {
	sc := tc.span.SpanContext()
	traceID := sc.TraceID().String()
	spanID := sc.SpanID().String()

	var rec otellog.Record
	rec.SetTimestamp(time.Now())
	rec.SetSeverity(otellog.SeverityError)
	rec.SetSeverityText("ERROR")
	rec.SetBody(otellog.StringValue(fmt.Sprintf(
		"Test case FAILED: %s [%s]: %s (url=%s, trace_id=%s, span_id=%s)",
		tc.opts.label(), s.cfg.SuiteName, err, pageURL, traceID, spanID,
	)))
	rec.AddAttributes(
		otellog.String("test.suite.name", s.cfg.SuiteName),
		otellog.String("test.case.name", tc.opts.Name),
		otellog.String("test.case.failure_reason", err.Error()),
		otellog.String("test.case.failure_url", pageURL),
		otellog.String("trace_id", traceID),
		otellog.String("span_id", spanID),
	)

	s.pipeline.Logger().Emit(ctx, rec)
}

// Close finalizes the run: it stamps the aggregate counts and result
// classification on the root span, ends it, releases the browser session,
// and synchronously flushes all pending telemetry. Flushing happens even
// when test cases failed, so failure telemetry is not lost on process exit.
func (s *Suite) Close(ctx context.Context) error {
	if s.closed {
		return ErrSuiteClosed
	}
	s.closed = true

	s.rootSpan.SetAttributes(
		attribute.Int("test.suite.total_tests", s.total),
		attribute.Int("test.suite.passed", s.passed),
		attribute.Int("test.suite.failed", s.failed),
		attribute.String("test.suite.result", s.Result()),
	)
	s.rootSpan.End()

	var errs []error
	if s.session != nil {
		if err := s.session.Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("suite: close session: %w", err))
		}
	}
	if err := s.pipeline.ForceFlush(ctx); err != nil {
		errs = append(errs, err)
	}
	if s.ownsPipeline {
		if err := s.pipeline.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// RunID returns the generated unique identifier for this suite run.
func (s *Suite) RunID() string { return s.runID }

// Total returns the number of test cases started so far.
func (s *Suite) Total() int { return s.total }

// Passed returns the number of test cases that passed.
func (s *Suite) Passed() int { return s.passed }

// Failed returns the number of test cases that failed.
func (s *Suite) Failed() int { return s.failed }

// Result returns the suite classification: "passed" when nothing failed,
// "failed" when nothing passed and something failed, else "partial".
func (s *Suite) Result() string {
	switch {
	case s.failed == 0:
		return "passed"
	case s.passed == 0:
		return "failed"
	default:
		return "partial"
	}
}
