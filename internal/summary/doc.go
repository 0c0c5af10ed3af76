// Package summary ranks contributions, assembles the final table, and filters
// it.
//
// Every function here is pure over its inputs: building a table copies the
// matched pairs, and filtering returns a fresh table preserving the original's
// relative row order.
package summary
