// Package collector implements one scrape run.
//
// The Collector:
//   - Fetches every configured list page with bounded concurrency
//   - Parses rows and drops incomplete ones
//   - Inserts complete rows into the title store in URL order, then row order,
//     so a title seen twice keeps the value from its last occurrence
//   - Tolerates individual page failures; fails only when no page succeeds
package collector
