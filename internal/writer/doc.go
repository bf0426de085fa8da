// Package writer persists deduplicated books to the books table and reads
// them back for analysis.
//
// Writes are append-only: each run inserts its rows tagged with the run ID and
// never updates earlier runs. Rows are sent in chunks of BatchSize, one
// pgx.Batch per chunk, so a chunk commits as a whole or not at all.
package writer
