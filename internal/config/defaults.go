package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultUserAgent    = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/114.0.0.0 Safari/537.36"
	DefaultTimeout      = 30 * time.Second
	DefaultMaxRetries   = 3
	DefaultRetryBackoff = 1 * time.Second
	DefaultConcurrency  = 4
	DefaultDBPort       = 5432
	DefaultDBSSLMode    = "prefer"
	DefaultMaxConns     = 4
	DefaultMinConns     = 1
	DefaultBatchSize    = 500
	DefaultTopAuthors   = 15
	DefaultHistBins     = 15
	DefaultServerPort   = 10000
	DefaultMetricsPath  = "/metrics"
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "text"
)

// DefaultURLs are the list pages scraped when none are configured.
var DefaultURLs = []string{
	"https://www.goodreads.com/list/show/153.Most_Exciting_Upcoming_YA_Books",
	"https://www.goodreads.com/list/show/153.Most_Exciting_Upcoming_YA_Books?page=2",
	"https://www.goodreads.com/list/show/43.Best_Young_Adult_Books?page=1",
	"https://www.goodreads.com/list/show/36335.Indie_Authors_to_Watch?page=1",
}

func (c *Config) applyDefaults() {
	// Scraper defaults
	if len(c.Scraper.URLs) == 0 {
		c.Scraper.URLs = append([]string(nil), DefaultURLs...)
	}
	if c.Scraper.UserAgent == "" {
		c.Scraper.UserAgent = DefaultUserAgent
	}
	if c.Scraper.Timeout == 0 {
		c.Scraper.Timeout = DefaultTimeout
	}
	if c.Scraper.MaxRetries == nil {
		retries := DefaultMaxRetries
		c.Scraper.MaxRetries = &retries
	}
	if c.Scraper.RetryBackoff == 0 {
		c.Scraper.RetryBackoff = DefaultRetryBackoff
	}
	if c.Scraper.Concurrency == 0 {
		c.Scraper.Concurrency = DefaultConcurrency
	}

	// Database defaults
	applyDBDefaults(&c.Database.Postgres)

	// Writer defaults
	if c.Writer.BatchSize == 0 {
		c.Writer.BatchSize = DefaultBatchSize
	}

	// Analysis defaults
	if c.Analysis.TopAuthors == 0 {
		c.Analysis.TopAuthors = DefaultTopAuthors
	}
	if c.Analysis.HistBins == 0 {
		c.Analysis.HistBins = DefaultHistBins
	}

	// Server defaults
	if c.Server.Port == 0 {
		c.Server.Port = DefaultServerPort
	}
	if c.Server.MetricsPath == "" {
		c.Server.MetricsPath = DefaultMetricsPath
	}

	// Log defaults
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}
}

func applyDBDefaults(db *DBConfig) {
	if db.Port == 0 {
		db.Port = DefaultDBPort
	}
	if db.SSLMode == "" {
		db.SSLMode = DefaultDBSSLMode
	}
	if db.MaxConns == 0 {
		db.MaxConns = DefaultMaxConns
	}
	if db.MinConns == 0 {
		db.MinConns = DefaultMinConns
	}
}
