package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/rickgao/booklist-data/internal/analysis"
	"github.com/rickgao/booklist-data/internal/bst"
	"github.com/rickgao/booklist-data/internal/metrics"
	"github.com/rickgao/booklist-data/internal/model"
)

// WelcomeMessage is the body served at the root path.
const WelcomeMessage = "Welcome! Use /hist2d or /boxplot to view visualizations."

// Pinger reports database reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Store is the title store the book routes read from.
type Store = bst.Synced[string, model.Record]

// Config holds server settings.
type Config struct {
	Port        int
	MetricsPath string
}

// Server serves the store and the current dataset.
type Server struct {
	cfg      Config
	store    *Store
	db       Pinger
	gatherer prometheus.Gatherer
	logger   *slog.Logger

	dataset  atomic.Pointer[analysis.Dataset]
	upgrader websocket.Upgrader

	httpServer *http.Server
	addr       string
}

// New creates a server. db and gatherer may be nil, in which case the health
// check skips the database and no metrics route is registered.
func New(cfg Config, store *Store, db Pinger, gatherer prometheus.Gatherer, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.MetricsPath == "" {
		cfg.MetricsPath = "/metrics"
	}

	s := &Server{
		cfg:      cfg,
		store:    store,
		db:       db,
		gatherer: gatherer,
		logger:   logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the route multiplexer.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleHome)
	mux.HandleFunc("GET /books", s.handleBooks)
	mux.HandleFunc("GET /books/{title...}", s.handleBook)
	mux.HandleFunc("GET /ws/books", s.handleBookStream)
	mux.HandleFunc("GET /authors", s.handleAuthors)
	mux.HandleFunc("GET /boxplot", s.handleBoxplot)
	mux.HandleFunc("GET /hist2d", s.handleHist2D)
	mux.HandleFunc("GET /health", s.handleHealth)

	if s.gatherer != nil {
		mux.Handle("GET "+s.cfg.MetricsPath, metrics.Handler(s.gatherer))
	}

	return mux
}

// SetDataset publishes a new chart snapshot.
func (s *Server) SetDataset(ds *analysis.Dataset) {
	s.dataset.Store(ds)
}

// Dataset returns the current snapshot, or nil before the first SetDataset.
func (s *Server) Dataset() *analysis.Dataset {
	return s.dataset.Load()
}

// Start binds the listen port and serves in the background.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	s.addr = ln.Addr().String()

	go func() {
		s.logger.Info("http server started", "addr", s.addr)
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("http server error", "error", err)
		}
	}()
	return nil
}

// Addr returns the bound address once Start has returned.
func (s *Server) Addr() string {
	return s.addr
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("stopping http server")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return nil
}
