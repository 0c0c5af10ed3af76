// Package match aligns the two independently indexed mode lists by frequency.
//
// Matching is a one-to-one nearest-neighbor assignment with a rejection
// threshold over a shrinking candidate pool: modes are processed in ascending
// decomposition frequency, each intensity record is consumed at most once, and
// every ambiguity resolution is recorded as a diagnostic. The assignment is a
// pure function of its inputs; no ordering depends on map iteration or timing.
package match
