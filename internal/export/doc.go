// Package export renders a summary table into its presentation formats.
//
// All formats render identical cell content from one shared cell model; only
// layout and encoding differ. Export is the last, purely presentational
// stage: it never filters or reorders, and exporting the same table twice in
// the same format is byte-identical.
package export
