// Package driver defines the narrow boundary between suite instrumentation
// and the browser-automation engine that actually drives pages.
//
// The instrumentation core only ever talks to these interfaces; a concrete
// engine lives behind them (see driver/chromedriver). Best-effort data such
// as navigation timing is modeled as an explicit optional result so that
// collectors can report absence but can never fail a test.
package driver
