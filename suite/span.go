package suite

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// startActionSpan opens a span for one instrumented action as a child of the
// span carried by ctx. The span name is the action type alone, or
// "type(selector)" when a selector is given. The caller must end the span on
// every exit path.
func startActionSpan(ctx context.Context, tracer trace.Tracer, actionType, selector string, extra ...attribute.KeyValue) (context.Context, trace.Span) {
	name := actionType
	attrs := []attribute.KeyValue{attribute.String("test.action.type", actionType)}
	if selector != "" {
		name = actionType + "(" + selector + ")"
		attrs = append(attrs, attribute.String("test.action.selector", selector))
	}
	attrs = append(attrs, extra...)

	return tracer.Start(ctx, name,
		trace.WithAttributes(attrs...),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}
