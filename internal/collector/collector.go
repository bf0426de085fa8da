package collector

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/rickgao/booklist-data/internal/bst"
	"github.com/rickgao/booklist-data/internal/metrics"
	"github.com/rickgao/booklist-data/internal/model"
	"github.com/rickgao/booklist-data/internal/scraper"
)

// ErrNoPages is returned when every page of a run failed.
var ErrNoPages = errors.New("no list pages fetched")

// Fetcher returns the raw body of a page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// FetcherFunc is a function adapter for Fetcher.
type FetcherFunc func(ctx context.Context, url string) ([]byte, error)

func (f FetcherFunc) Fetch(ctx context.Context, url string) ([]byte, error) {
	return f(ctx, url)
}

// Store is the title store a run inserts into.
type Store = bst.Synced[string, model.Record]

// Config holds collector configuration.
type Config struct {
	URLs        []string
	Concurrency int // Max concurrent page fetches (default: 4)
}

// Result summarizes a run.
type Result struct {
	RunID       uuid.UUID
	Pages       int
	FailedPages int
	Rows        int // Rows parsed from successful pages
	Skipped     int // Incomplete rows
	Inserted    int // New titles
	Overwritten int // Titles seen again, value replaced
	Entries     int // Distinct titles in the store after the run
	Height      int
	Duration    time.Duration
}

// Collector scrapes list pages into a Store.
type Collector struct {
	cfg     Config
	fetcher Fetcher
	store   *Store
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// New creates a new Collector.
func New(cfg Config, fetcher Fetcher, store *Store, m *metrics.Metrics, logger *slog.Logger) *Collector {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 4
	}
	return &Collector{
		cfg:     cfg,
		fetcher: fetcher,
		store:   store,
		metrics: m,
		logger:  logger,
	}
}

// pageResult holds the outcome of a single page.
type pageResult struct {
	rows []model.Row
	err  error
}

// Run performs one scrape run.
func (c *Collector) Run(ctx context.Context) (Result, error) {
	start := time.Now()
	res := Result{
		RunID: uuid.New(),
		Pages: len(c.cfg.URLs),
	}
	logger := c.logger.With("run_id", res.RunID)

	pages := make([]pageResult, len(c.cfg.URLs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.cfg.Concurrency)
	for i, url := range c.cfg.URLs {
		g.Go(func() error {
			rows, err := c.scrapePage(gctx, url)
			pages[i] = pageResult{rows: rows, err: err}
			// Page errors are kept per page; the group itself never fails.
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return res, err
	}

	var lastErr error
	for i, page := range pages {
		url := c.cfg.URLs[i]
		if page.err != nil {
			res.FailedPages++
			lastErr = page.err
			logger.Warn("failed to scrape page", "url", url, "error", page.err)
			continue
		}

		inserted, overwritten, skipped := c.insertRows(page.rows)
		res.Rows += len(page.rows)
		res.Inserted += inserted
		res.Overwritten += overwritten
		res.Skipped += skipped

		logger.Debug("page scraped",
			"url", url,
			"rows", len(page.rows),
			"inserted", inserted,
			"overwritten", overwritten,
			"skipped", skipped,
		)
	}

	res.Entries = c.store.Len()
	res.Height = c.store.Height()
	res.Duration = time.Since(start)

	c.metrics.RecordRows(metrics.RowInserted, res.Inserted)
	c.metrics.RecordRows(metrics.RowOverwritten, res.Overwritten)
	c.metrics.RecordRows(metrics.RowSkipped, res.Skipped)
	c.metrics.SetStore(res.Entries, res.Height)

	if res.Pages > 0 && res.FailedPages == res.Pages {
		return res, fmt.Errorf("%w: %d of %d failed: %w", ErrNoPages, res.FailedPages, res.Pages, lastErr)
	}

	logger.Info("scrape run complete",
		"pages", res.Pages,
		"failed_pages", res.FailedPages,
		"rows", res.Rows,
		"skipped", res.Skipped,
		"entries", res.Entries,
		"height", res.Height,
		"duration", res.Duration,
	)

	return res, nil
}

// scrapePage fetches and parses a single page.
func (c *Collector) scrapePage(ctx context.Context, url string) ([]model.Row, error) {
	start := time.Now()
	body, err := c.fetcher.Fetch(ctx, url)
	c.metrics.RecordFetch(err == nil, time.Since(start))
	if err != nil {
		return nil, err
	}

	rows, err := scraper.ParseList(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", url, err)
	}
	return rows, nil
}

// insertRows adds the complete rows of a page to the store.
func (c *Collector) insertRows(rows []model.Row) (inserted, overwritten, skipped int) {
	for _, row := range rows {
		title, rec, ok := row.Entry()
		if !ok {
			skipped++
			continue
		}
		if c.store.Upsert(title, rec) {
			overwritten++
		} else {
			inserted++
		}
	}
	return inserted, overwritten, skipped
}
