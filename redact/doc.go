// Package redact decides whether recorded form-field values must be masked
// before they are attached to telemetry as span attributes.
//
// It is pure policy: no I/O, no state. The real value always reaches the
// browser; only the recorded copy is masked.
package redact
