// Package telemetry owns the export pipeline for suite instrumentation:
// a tracer provider, a log provider, and an optional meter provider, all
// instance-scoped so concurrent suites in one process never share state.
//
// Nothing here registers itself globally; the pipeline is passed explicitly
// through the component graph and flushed synchronously when a suite closes.
package telemetry
