package writer

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/rickgao/booklist-data/internal/bst"
	"github.com/rickgao/booklist-data/internal/metrics"
	"github.com/rickgao/booklist-data/internal/model"
)

const insertBookSQL = `
	INSERT INTO books (title, author, rating, num_ratings, run_id, scraped_at)
	VALUES ($1, $2, $3, $4, $5, $6)
`

const selectBooksSQL = `
	SELECT title, author, rating, num_ratings, run_id, scraped_at
	FROM books
	ORDER BY id
`

// DB is the subset of *pgxpool.Pool the writer uses.
type DB interface {
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// BookWriter writes store entries to the books table.
type BookWriter struct {
	cfg     WriterConfig
	db      DB
	logger  *slog.Logger
	metrics *metrics.Metrics

	mu    sync.Mutex
	stats WriterMetrics
}

// NewBookWriter creates a new BookWriter.
func NewBookWriter(cfg WriterConfig, db DB, m *metrics.Metrics, logger *slog.Logger) *BookWriter {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultWriterConfig().BatchSize
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &BookWriter{
		cfg:     cfg,
		db:      db,
		logger:  logger,
		metrics: m,
	}
}

// Write inserts one row per entry, tagged with runID, and returns the number
// of rows committed. It stops at the first failed chunk; earlier chunks stay
// committed.
func (w *BookWriter) Write(ctx context.Context, runID uuid.UUID, entries []bst.Entry[string, model.Record]) (int, error) {
	scrapedAt := time.Now().UTC()
	rows := make([]bookRow, len(entries))
	for i, e := range entries {
		rows[i] = transform(runID, scrapedAt, e)
	}

	written := 0
	for start := 0; start < len(rows); start += w.cfg.BatchSize {
		end := min(start+w.cfg.BatchSize, len(rows))
		chunk := rows[start:end]

		if err := w.flush(ctx, chunk); err != nil {
			return written, fmt.Errorf("write books %d-%d: %w", start, end, err)
		}
		written += len(chunk)
	}

	w.logger.Info("books written",
		"run_id", runID,
		"count", written,
	)
	return written, nil
}

// Stats returns current metrics.
func (w *BookWriter) Stats() WriterMetrics {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stats
}

// LoadBooks reads every stored book in insertion order.
func (w *BookWriter) LoadBooks(ctx context.Context) ([]model.StoredBook, error) {
	rows, err := w.db.Query(ctx, selectBooksSQL)
	if err != nil {
		return nil, fmt.Errorf("query books: %w", err)
	}
	defer rows.Close()

	books := make([]model.StoredBook, 0)
	for rows.Next() {
		var b model.StoredBook
		if err := rows.Scan(&b.Title, &b.Author, &b.Rating, &b.NumRatings, &b.RunID, &b.ScrapedAt); err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read books: %w", err)
	}
	return books, nil
}

func transform(runID uuid.UUID, scrapedAt time.Time, e bst.Entry[string, model.Record]) bookRow {
	return bookRow{
		Title:      e.Key,
		Author:     e.Value.Author,
		Rating:     e.Value.Rating,
		NumRatings: e.Value.NumRatings,
		RunID:      runID,
		ScrapedAt:  scrapedAt,
	}
}

// flush sends one chunk and records the outcome.
func (w *BookWriter) flush(ctx context.Context, rows []bookRow) error {
	start := time.Now()

	if err := w.batchInsert(ctx, rows); err != nil {
		w.logger.Error("batch insert failed", "error", err, "count", len(rows))
		w.mu.Lock()
		w.stats.Errors++
		w.mu.Unlock()
		w.metrics.RecordWrite(false, len(rows))
		return err
	}

	w.mu.Lock()
	w.stats.Inserts += int64(len(rows))
	w.stats.Flushes++
	w.mu.Unlock()
	w.metrics.RecordWrite(true, len(rows))

	w.logger.Debug("flushed books",
		"count", len(rows),
		"duration", time.Since(start),
	)
	return nil
}

// batchInsert inserts rows using a single pgx.Batch.
func (w *BookWriter) batchInsert(ctx context.Context, rows []bookRow) error {
	batch := &pgx.Batch{}
	for _, r := range rows {
		batch.Queue(insertBookSQL, r.Title, r.Author, r.Rating, r.NumRatings, r.RunID, r.ScrapedAt)
	}

	results := w.db.SendBatch(ctx, batch)

	for range rows {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return err
		}
	}

	return results.Close()
}
