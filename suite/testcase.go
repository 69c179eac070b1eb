package suite

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/arclabs/tracewright/driver"
)

// CaseOptions identify one logical test case. Name is required; the rest is
// omitted from telemetry when empty.
type CaseOptions struct {
	Name        string
	ID          string
	Tags        string // comma-separated
	Description string
}

// label is the identifier used in the correlated error log: the case id if
// present, else the name.
func (o CaseOptions) label() string {
	if o.ID != "" {
		return o.ID
	}
	return o.Name
}

// TestCase is the scoped handle for one test case, valid only inside the
// body passed to Suite.Run. It exposes the seven instrumented actions plus
// escape hatches for custom attributes and custom action spans.
type TestCase struct {
	opts    CaseOptions
	span    trace.Span
	actions *actionInstrumentor
	closed  bool
}

// Navigate loads a URL in the case's page.
func (tc *TestCase) Navigate(ctx context.Context, url string) error {
	return tc.actions.Navigate(ctx, url)
}

// Click clicks the first element matching the selector.
func (tc *TestCase) Click(ctx context.Context, selector string) error {
	return tc.actions.Click(ctx, selector)
}

// Fill sets a form field value, redacting the recorded copy when the field
// is sensitive.
func (tc *TestCase) Fill(ctx context.Context, selector, value string, sensitive bool) error {
	return tc.actions.Fill(ctx, selector, value, sensitive)
}

// AssertVisible waits for the selector to become visible.
func (tc *TestCase) AssertVisible(ctx context.Context, selector string) error {
	return tc.actions.AssertVisible(ctx, selector)
}

// AssertText asserts the element's text contains the expected substring,
// case-insensitively.
func (tc *TestCase) AssertText(ctx context.Context, selector, expected string) error {
	return tc.actions.AssertText(ctx, selector, expected)
}

// AssertCount asserts the number of elements matching the selector.
func (tc *TestCase) AssertCount(ctx context.Context, selector string, expected int) error {
	return tc.actions.AssertCount(ctx, selector, expected)
}

// AssertURL asserts the current page URL contains the pattern.
func (tc *TestCase) AssertURL(ctx context.Context, pattern string) error {
	return tc.actions.AssertURL(ctx, pattern)
}

// SetAttribute sets custom attributes on the test-case span, for domain
// facts the seven primitives do not cover.
func (tc *TestCase) SetAttribute(attrs ...attribute.KeyValue) {
	tc.span.SetAttributes(attrs...)
}

// StartAction opens a custom action span under the case for instrumentation
// outside the seven primitives. The caller must end the returned span.
func (tc *TestCase) StartAction(ctx context.Context, actionType, selector string, extra ...attribute.KeyValue) (context.Context, trace.Span) {
	return startActionSpan(ctx, tc.actions.tracer, actionType, selector, extra...)
}

// Page exposes the raw driver page for operations the instrumented API does
// not cover.
func (tc *TestCase) Page() driver.Page {
	return tc.actions.page
}
