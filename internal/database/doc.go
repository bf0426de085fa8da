// Package database provides the PostgreSQL connection pool and schema for the
// books table.
//
// The books table is append-only: every run adds its deduplicated rows tagged
// with the run ID, and earlier runs are kept for analysis.
package database
