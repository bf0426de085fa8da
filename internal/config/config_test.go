package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	yaml := `
instance:
  id: test-scraper
scraper:
  urls:
    - https://example.com/list/1
    - https://example.com/list/2
  timeout: 5s
  concurrency: 2
database:
  postgres:
    host: localhost
    port: 5432
    name: books
    user: books_owner
    password: testpass
log:
  level: debug
  format: json
`
	path := writeTempFile(t, yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Instance.ID != "test-scraper" {
		t.Errorf("Instance.ID = %q, want %q", cfg.Instance.ID, "test-scraper")
	}
	if len(cfg.Scraper.URLs) != 2 {
		t.Fatalf("len(Scraper.URLs) = %d, want 2", len(cfg.Scraper.URLs))
	}
	if cfg.Scraper.URLs[1] != "https://example.com/list/2" {
		t.Errorf("Scraper.URLs[1] = %q, want %q", cfg.Scraper.URLs[1], "https://example.com/list/2")
	}
	if cfg.Scraper.Timeout != 5*time.Second {
		t.Errorf("Scraper.Timeout = %v, want %v", cfg.Scraper.Timeout, 5*time.Second)
	}
	if cfg.Database.Postgres.User != "books_owner" {
		t.Errorf("Database.Postgres.User = %q, want %q", cfg.Database.Postgres.User, "books_owner")
	}
	if cfg.Log.Format != "json" {
		t.Errorf("Log.Format = %q, want %q", cfg.Log.Format, "json")
	}
}

func TestLoadWithEnvSubstitution(t *testing.T) {
	t.Setenv("TEST_DB_PASSWORD", "secret123")

	yaml := `
instance:
  id: test-scraper
database:
  postgres:
    host: localhost
    name: books
    user: books_owner
    password: ${TEST_DB_PASSWORD}
`
	path := writeTempFile(t, yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Database.Postgres.Password != "secret123" {
		t.Errorf("Database.Postgres.Password = %q, want %q", cfg.Database.Postgres.Password, "secret123")
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nope.yaml")
		_, err := Load(path)
		if err == nil {
			t.Fatal("Load() expected error for missing file")
		}
		if !strings.Contains(err.Error(), path) {
			t.Errorf("error = %q, want it to name %s", err.Error(), path)
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := writeTempFile(t, "instance: [unclosed")
		if _, err := Load(path); err == nil {
			t.Error("Load() expected error for invalid yaml")
		}
	})
}

func TestLoadWithDefaults(t *testing.T) {
	yaml := `
instance:
  id: test-scraper
database:
  postgres:
    host: localhost
    name: books
    user: books_owner
    password: testpass
`
	path := writeTempFile(t, yaml)

	cfg, err := LoadWithDefaults(path)
	if err != nil {
		t.Fatalf("LoadWithDefaults failed: %v", err)
	}

	if len(cfg.Scraper.URLs) != len(DefaultURLs) {
		t.Errorf("len(Scraper.URLs) = %d, want default %d", len(cfg.Scraper.URLs), len(DefaultURLs))
	}
	if cfg.Scraper.UserAgent != DefaultUserAgent {
		t.Errorf("Scraper.UserAgent = %q, want default", cfg.Scraper.UserAgent)
	}
	if cfg.Scraper.Timeout != DefaultTimeout {
		t.Errorf("Scraper.Timeout = %v, want default %v", cfg.Scraper.Timeout, DefaultTimeout)
	}
	if cfg.Scraper.MaxRetries == nil || *cfg.Scraper.MaxRetries != DefaultMaxRetries {
		t.Errorf("Scraper.MaxRetries = %v, want default %d", cfg.Scraper.MaxRetries, DefaultMaxRetries)
	}
	if cfg.Scraper.RetryBackoff != DefaultRetryBackoff {
		t.Errorf("Scraper.RetryBackoff = %v, want default %v", cfg.Scraper.RetryBackoff, DefaultRetryBackoff)
	}
	if cfg.Scraper.Concurrency != DefaultConcurrency {
		t.Errorf("Scraper.Concurrency = %d, want default %d", cfg.Scraper.Concurrency, DefaultConcurrency)
	}
	if cfg.Database.Postgres.Port != DefaultDBPort {
		t.Errorf("Database.Postgres.Port = %d, want default %d", cfg.Database.Postgres.Port, DefaultDBPort)
	}
	if cfg.Database.Postgres.SSLMode != DefaultDBSSLMode {
		t.Errorf("Database.Postgres.SSLMode = %q, want default %q", cfg.Database.Postgres.SSLMode, DefaultDBSSLMode)
	}
	if cfg.Writer.BatchSize != DefaultBatchSize {
		t.Errorf("Writer.BatchSize = %d, want default %d", cfg.Writer.BatchSize, DefaultBatchSize)
	}
	if cfg.Analysis.TopAuthors != DefaultTopAuthors {
		t.Errorf("Analysis.TopAuthors = %d, want default %d", cfg.Analysis.TopAuthors, DefaultTopAuthors)
	}
	if cfg.Server.Port != DefaultServerPort {
		t.Errorf("Server.Port = %d, want default %d", cfg.Server.Port, DefaultServerPort)
	}
	if cfg.Log.Level != DefaultLogLevel {
		t.Errorf("Log.Level = %q, want default %q", cfg.Log.Level, DefaultLogLevel)
	}

	// Defaults must not alias the package-level slice.
	cfg.Scraper.URLs[0] = "changed"
	if DefaultURLs[0] == "changed" {
		t.Error("applyDefaults aliased DefaultURLs")
	}
}

func TestLoadAndValidate(t *testing.T) {
	path := writeTempFile(t, `
database:
  postgres:
    host: localhost
`)
	_, err := LoadAndValidate(path)
	if err == nil {
		t.Fatal("LoadAndValidate() expected error for missing instance id")
	}
	if err.Error() != "validate config "+path+": instance.id is required" {
		t.Errorf("error = %q", err.Error())
	}
}

func TestLoadWithDefaults_ZeroRetriesKept(t *testing.T) {
	path := writeTempFile(t, `
instance:
  id: test-scraper
scraper:
  max_retries: 0
`)

	cfg, err := LoadWithDefaults(path)
	if err != nil {
		t.Fatalf("LoadWithDefaults failed: %v", err)
	}
	if cfg.Scraper.MaxRetries == nil || *cfg.Scraper.MaxRetries != 0 {
		t.Errorf("Scraper.MaxRetries = %v, want 0 (retries disabled)", cfg.Scraper.MaxRetries)
	}
}

func TestLoadAndValidate_NegativeDurations(t *testing.T) {
	tests := []struct {
		name    string
		scraper string
		wantErr string
	}{
		{"retry backoff", "retry_backoff: -1s", "scraper.retry_backoff must be >= 0, got -1s"},
		{"timeout", "timeout: -5s", "scraper.timeout must be >= 0, got -5s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTempFile(t, `
instance:
  id: test-scraper
scraper:
  `+tt.scraper+`
database:
  postgres:
    host: localhost
    name: books
    user: books_owner
    password: testpass
`)
			_, err := LoadAndValidate(path)
			if err == nil {
				t.Fatalf("LoadAndValidate() expected error for %s", tt.scraper)
			}
			if want := "validate config " + path + ": " + tt.wantErr; err.Error() != want {
				t.Errorf("error = %q, want %q", err.Error(), want)
			}
		})
	}
}

func validConfig() Config {
	cfg := Config{
		Instance: InstanceConfig{ID: "test"},
		Database: DatabaseConfig{
			Postgres: DBConfig{Host: "localhost", Name: "db", User: "user", Password: "pass"},
		},
	}
	cfg.applyDefaults()
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "missing instance id",
			mutate:  func(c *Config) { c.Instance.ID = "" },
			wantErr: "instance.id is required",
		},
		{
			name:    "no urls",
			mutate:  func(c *Config) { c.Scraper.URLs = nil },
			wantErr: "scraper.urls is required",
		},
		{
			name:    "bad url scheme",
			mutate:  func(c *Config) { c.Scraper.URLs = []string{"ftp://example.com/list"} },
			wantErr: `scraper.urls[0] is not an http(s) url: "ftp://example.com/list"`,
		},
		{
			name:    "negative timeout",
			mutate:  func(c *Config) { c.Scraper.Timeout = -time.Second },
			wantErr: "scraper.timeout must be >= 0, got -1s",
		},
		{
			name:    "negative max retries",
			mutate:  func(c *Config) { n := -1; c.Scraper.MaxRetries = &n },
			wantErr: "scraper.max_retries must be >= 0",
		},
		{
			name:    "negative retry backoff",
			mutate:  func(c *Config) { c.Scraper.RetryBackoff = -time.Second },
			wantErr: "scraper.retry_backoff must be >= 0, got -1s",
		},
		{
			name:    "zero retries allowed",
			mutate:  func(c *Config) { n := 0; c.Scraper.MaxRetries = &n },
			wantErr: "",
		},
		{
			name:    "zero concurrency",
			mutate:  func(c *Config) { c.Scraper.Concurrency = 0 },
			wantErr: "scraper.concurrency must be >= 1",
		},
		{
			name:    "missing postgres host",
			mutate:  func(c *Config) { c.Database.Postgres.Host = "" },
			wantErr: "database.postgres.host is required",
		},
		{
			name:    "missing postgres password",
			mutate:  func(c *Config) { c.Database.Postgres.Password = "" },
			wantErr: "database.postgres.password is required",
		},
		{
			name: "min_conns exceeds max_conns",
			mutate: func(c *Config) {
				c.Database.Postgres.MaxConns = 5
				c.Database.Postgres.MinConns = 10
			},
			wantErr: "database.postgres.min_conns (10) cannot exceed max_conns (5)",
		},
		{
			name:    "zero batch size",
			mutate:  func(c *Config) { c.Writer.BatchSize = 0 },
			wantErr: "writer.batch_size must be >= 1",
		},
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: "server.port must be between 1 and 65535, got 70000",
		},
		{
			name:    "metrics path without slash",
			mutate:  func(c *Config) { c.Server.MetricsPath = "metrics" },
			wantErr: `server.metrics_path must start with /, got "metrics"`,
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Log.Level = "verbose" },
			wantErr: `log.level must be one of debug, info, warn, error, got "verbose"`,
		},
		{
			name:    "bad log format",
			mutate:  func(c *Config) { c.Log.Format = "xml" },
			wantErr: `log.format must be text or json, got "xml"`,
		},
		{
			name:    "valid config",
			mutate:  func(c *Config) {},
			wantErr: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
			} else {
				if err == nil {
					t.Errorf("Validate() expected error containing %q, got nil", tt.wantErr)
				} else if err.Error() != tt.wantErr {
					t.Errorf("Validate() error = %q, want %q", err.Error(), tt.wantErr)
				}
			}
		})
	}
}

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}
