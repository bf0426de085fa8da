// Package analysis computes per-author aggregates and chart data from the
// books table.
//
// Inputs are the rows read back from the database across all runs. Charts are
// returned as plain data (quartiles, bin edges, counts) for the HTTP layer to
// serialize; nothing here renders images.
package analysis
