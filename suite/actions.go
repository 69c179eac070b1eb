package suite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/arclabs/tracewright/driver"
	"github.com/arclabs/tracewright/redact"
)

// visibleWaitTimeout bounds the wait in assert-style actions that poll for
// an element.
const visibleWaitTimeout = 5 * time.Second

// actionInstrumentor executes one browser action inside one action span.
// Browser manipulation is delegated to the driver; failures propagate
// unmodified after the span is closed.
type actionInstrumentor struct {
	page    driver.Page
	tracer  trace.Tracer
	metrics *suiteMetrics
}

// run wraps one action: it opens the action span as a child of ctx, records
// the current page location fresh, executes fn, records the duration metric,
// and ends the span on every exit path.
func (a *actionInstrumentor) run(ctx context.Context, actionType, selector string, extra []attribute.KeyValue, fn func(ctx context.Context, span trace.Span) error) error {
	actionCtx, span := startActionSpan(ctx, a.tracer, actionType, selector, extra...)
	defer span.End()

	span.SetAttributes(attribute.String("test.action.page_url", a.page.URL(actionCtx)))

	start := time.Now()
	err := fn(actionCtx, span)
	a.metrics.recordAction(actionCtx, actionType, time.Since(start), err)
	return err
}

// failSpan stamps a propagating failure onto the action span.
func failSpan(span trace.Span, err error) {
	span.SetStatus(codes.Error, err.Error())
	span.RecordError(err)
}

// Navigate loads a URL, recording the response status and, when obtainable,
// navigation performance timing. Timing collection never fails the action.
func (a *actionInstrumentor) Navigate(ctx context.Context, url string) error {
	extra := []attribute.KeyValue{attribute.String("test.action.target_url", url)}
	return a.run(ctx, "navigate", "", extra, func(ctx context.Context, span trace.Span) error {
		nav, err := a.page.Navigate(ctx, url)
		if err != nil {
			failSpan(span, err)
			return err
		}
		if nav != nil {
			span.SetAttributes(attribute.Int("test.navigation.response_status", nav.Status))
		}
		if timing, ok := a.page.Timing(ctx); ok {
			span.SetAttributes(
				attribute.Float64("test.navigation.dom_content_loaded_ms", timing.DOMContentLoadedMS),
				attribute.Float64("test.navigation.load_event_ms", timing.LoadEventMS),
				attribute.Float64("test.navigation.transfer_size_bytes", timing.TransferSizeBytes),
				attribute.Float64("test.navigation.dom_interactive_ms", timing.DOMInteractiveMS),
			)
		}
		span.SetStatus(codes.Ok, "")
		return nil
	})
}

// Click clicks the first element matching the selector.
func (a *actionInstrumentor) Click(ctx context.Context, selector string) error {
	return a.run(ctx, "click", selector, nil, func(ctx context.Context, span trace.Span) error {
		if err := a.page.Click(ctx, selector); err != nil {
			failSpan(span, err)
			return err
		}
		span.SetStatus(codes.Ok, "")
		return nil
	})
}

// Fill sets a form field value. The recorded copy of the value is redacted
// when the selector looks sensitive or the caller says so; the browser
// always receives the real value.
func (a *actionInstrumentor) Fill(ctx context.Context, selector, value string, sensitive bool) error {
	extra := []attribute.KeyValue{
		attribute.String("test.action.input_value", redact.Value(value, selector, sensitive)),
	}
	return a.run(ctx, "fill", selector, extra, func(ctx context.Context, span trace.Span) error {
		if err := a.page.Fill(ctx, selector, value); err != nil {
			failSpan(span, err)
			return err
		}
		span.SetStatus(codes.Ok, "")
		return nil
	})
}

// AssertVisible waits for the selector to become visible within the bounded
// wait. A timeout propagates as the driver's failure.
func (a *actionInstrumentor) AssertVisible(ctx context.Context, selector string) error {
	return a.run(ctx, "assert_visible", selector, nil, func(ctx context.Context, span trace.Span) error {
		if err := a.page.WaitVisible(ctx, selector, visibleWaitTimeout); err != nil {
			failSpan(span, err)
			return err
		}
		span.SetAttributes(attribute.String("test.action.result", "success"))
		span.SetStatus(codes.Ok, "")
		return nil
	})
}

// AssertText asserts the element's text contains the expected substring,
// case-insensitively.
func (a *actionInstrumentor) AssertText(ctx context.Context, selector, expected string) error {
	return a.run(ctx, "assert_text", selector, nil, func(ctx context.Context, span trace.Span) error {
		if err := a.page.WaitVisible(ctx, selector, visibleWaitTimeout); err != nil {
			failSpan(span, err)
			return err
		}
		actual, err := a.page.Text(ctx, selector)
		if err != nil {
			failSpan(span, err)
			return err
		}
		if strings.Contains(strings.ToLower(actual), strings.ToLower(expected)) {
			span.SetAttributes(attribute.String("test.action.result", "success"))
			span.SetStatus(codes.Ok, "")
			return nil
		}
		msg := fmt.Sprintf("Expected '%s' in '%s'", expected, actual)
		span.SetAttributes(attribute.String("test.action.result", "failed"))
		span.SetStatus(codes.Error, msg)
		failure := assertionFailed(msg)
		span.RecordError(failure)
		return failure
	})
}

// AssertCount asserts the number of elements matching the selector.
func (a *actionInstrumentor) AssertCount(ctx context.Context, selector string, expected int) error {
	return a.run(ctx, "assert_count", selector, nil, func(ctx context.Context, span trace.Span) error {
		actual, err := a.page.Count(ctx, selector)
		if err != nil {
			failSpan(span, err)
			return err
		}
		if actual == expected {
			span.SetAttributes(attribute.String("test.action.result", "success"))
			span.SetStatus(codes.Ok, "")
			return nil
		}
		span.SetAttributes(attribute.String("test.action.result", "failed"))
		span.SetStatus(codes.Error, fmt.Sprintf("Expected %d elements, got %d", expected, actual))
		failure := assertionFailed(fmt.Sprintf("Expected %d elements matching '%s', got %d", expected, selector, actual))
		span.RecordError(failure)
		return failure
	})
}

// AssertURL asserts the current page URL contains the pattern.
func (a *actionInstrumentor) AssertURL(ctx context.Context, pattern string) error {
	return a.run(ctx, "assert_url", "", nil, func(ctx context.Context, span trace.Span) error {
		current := a.page.URL(ctx)
		if strings.Contains(current, pattern) {
			span.SetAttributes(attribute.String("test.action.result", "success"))
			span.SetStatus(codes.Ok, "")
			return nil
		}
		span.SetAttributes(attribute.String("test.action.result", "failed"))
		span.SetStatus(codes.Error, fmt.Sprintf("Expected '%s' in URL '%s'", pattern, current))
		failure := assertionFailed(fmt.Sprintf("Expected '%s' in URL, got %s", pattern, current))
		span.RecordError(failure)
		return failure
	})
}
