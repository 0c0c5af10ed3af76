// Package mode defines the deterministic domain model for vibrational-mode
// reconciliation.
//
// It is intentionally split into:
//   - Source records (IntensityRecord, ModeDecomposition): immutable snapshots
//     of the two external programs' per-mode output
//   - Merged results (MergedMode, SummaryTable): the aligned, enriched view
//
// All ordering in this package is fully specified. Contribution rendering is a
// pure function of the contribution list and must stay byte-stable: exported
// tables are compared byte-for-byte downstream.
package mode
