// Package scenario runs browser test suites described in YAML files.
//
// A scenario maps one-to-one onto the instrumented primitives in package
// suite; it adds no assertion semantics of its own. String values may
// reference environment variables as ${VAR}, which lets credentials stay out
// of checked-in scenario files.
package scenario
