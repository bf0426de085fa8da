// Package metrics provides Prometheus metrics for monitoring.
//
// Key metrics:
//   - List page fetch outcomes and latency
//   - Scraped rows inserted, overwritten or skipped as incomplete
//   - Dedup store size and depth
//   - Rows written to the books table
package metrics
