// Package vcs looks up version-control metadata for a checkout so suite
// telemetry can be tied back to a commit.
//
// Lookups are best-effort: a missing git binary, a directory that is not a
// repository, or any other failure reports absence, never an error.
package vcs
