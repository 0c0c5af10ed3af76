// Package cli canonicalizes an invocation into explicit pipeline options and
// orchestrates the stages: extract, match, rank, build, filter, export.
//
// All configuration is carried in the Invocation value; nothing reads
// process-wide mutable defaults, so concurrent runs with different settings
// cannot interfere.
package cli
