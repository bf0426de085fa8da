// Package model defines the book record types shared across the pipeline.
//
// Conventions:
//   - Titles are the dedup key and are stored separately from Record.
//   - Ratings are float64 averages on a 0-5 scale.
//   - Rating counts are int64.
//   - Run IDs are uuid.UUID, one per scrape run.
package model
