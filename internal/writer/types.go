package writer

import (
	"time"

	"github.com/google/uuid"
)

// WriterConfig holds batch writer settings.
type WriterConfig struct {
	// BatchSize is the number of rows sent per pgx.Batch.
	BatchSize int
}

// DefaultWriterConfig returns sensible defaults.
func DefaultWriterConfig() WriterConfig {
	return WriterConfig{
		BatchSize: 500,
	}
}

// bookRow represents a row to be inserted into the books table.
type bookRow struct {
	Title      string
	Author     string
	Rating     float64
	NumRatings int64
	RunID      uuid.UUID
	ScrapedAt  time.Time
}

// WriterMetrics tracks writer statistics.
type WriterMetrics struct {
	Inserts int64
	Errors  int64
	Flushes int64
}
