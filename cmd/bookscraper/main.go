package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rickgao/booklist-data/internal/analysis"
	"github.com/rickgao/booklist-data/internal/bst"
	"github.com/rickgao/booklist-data/internal/collector"
	"github.com/rickgao/booklist-data/internal/config"
	"github.com/rickgao/booklist-data/internal/database"
	"github.com/rickgao/booklist-data/internal/metrics"
	"github.com/rickgao/booklist-data/internal/model"
	"github.com/rickgao/booklist-data/internal/scraper"
	"github.com/rickgao/booklist-data/internal/server"
	"github.com/rickgao/booklist-data/internal/version"
	"github.com/rickgao/booklist-data/internal/writer"
)

func main() {
	configPath := flag.String("config", "configs/bookscraper.yaml", "path to config file")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err, "config", *configPath)
		os.Exit(1)
	}

	logger = newLogger(cfg.Log, os.Stdout).With("instance_id", cfg.Instance.ID)
	slog.SetDefault(logger)

	logger.Info("starting bookscraper",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
		"urls", len(cfg.Scraper.URLs),
	)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	reg := metrics.NewRegistry()
	m := metrics.New(reg)

	// Connect to database
	logger.Info("connecting to database",
		"host", cfg.Database.Postgres.Host,
		"port", cfg.Database.Postgres.Port,
		"database", cfg.Database.Postgres.Name,
	)

	pool, err := database.Connect(ctx, cfg.Database.Postgres)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := database.EnsureSchema(ctx, pool); err != nil {
		logger.Error("failed to ensure schema", "error", err)
		os.Exit(1)
	}
	logger.Info("database connected")

	store := bst.NewSynced[string, model.Record]()

	// Start the HTTP server early so health and metrics cover the scrape
	srv := server.New(server.Config{
		Port:        cfg.Server.Port,
		MetricsPath: cfg.Server.MetricsPath,
	}, store, pool, reg, logger)
	if err := srv.Start(); err != nil {
		logger.Error("failed to start http server", "error", err)
		os.Exit(1)
	}

	client := scraper.NewClient(
		scraper.WithLogger(logger),
		scraper.WithTimeout(cfg.Scraper.Timeout),
		scraper.WithRetries(*cfg.Scraper.MaxRetries, cfg.Scraper.RetryBackoff),
		scraper.WithUserAgent(cfg.Scraper.UserAgent),
	)

	coll := collector.New(collector.Config{
		URLs:        cfg.Scraper.URLs,
		Concurrency: cfg.Scraper.Concurrency,
	}, client, store, m, logger)

	res, err := coll.Run(ctx)
	if err != nil {
		logger.Error("scrape run failed", "error", err)
		os.Exit(1)
	}

	w := writer.NewBookWriter(writer.WriterConfig{BatchSize: cfg.Writer.BatchSize}, pool, m, logger)
	if _, err := w.Write(ctx, res.RunID, store.InOrder()); err != nil {
		logger.Error("failed to write books", "error", err, "run_id", res.RunID)
		os.Exit(1)
	}

	stored, err := w.LoadBooks(ctx)
	if err != nil {
		logger.Error("failed to load books", "error", err)
		os.Exit(1)
	}

	ds := analysis.NewDataset(model.Books(stored), cfg.Analysis.TopAuthors, cfg.Analysis.HistBins)
	srv.SetDataset(ds)

	logger.Info("bookscraper ready",
		"run_id", res.RunID,
		"entries", res.Entries,
		"stored_rows", len(stored),
		"authors", len(ds.Authors),
		"url", fmt.Sprintf("http://localhost:%d/", cfg.Server.Port),
	)

	// Wait for shutdown
	<-ctx.Done()

	logger.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http server shutdown", "error", err)
	}

	logger.Info("bookscraper stopped")
}
