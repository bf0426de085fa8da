package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rickgao/booklist-data/internal/analysis"
	"github.com/rickgao/booklist-data/internal/model"
	"github.com/rickgao/booklist-data/internal/version"
)

const writeWait = 10 * time.Second

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(WelcomeMessage))
}

func (s *Server) handleBooks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.books())
}

func (s *Server) handleBook(w http.ResponseWriter, r *http.Request) {
	title := r.PathValue("title")
	rec, ok := s.store.Search(title)
	if !ok {
		writeError(w, http.StatusNotFound, "book not found")
		return
	}
	writeJSON(w, http.StatusOK, rec.Book(title))
}

// handleBookStream sends each book as one text message in title order, then
// closes the connection normally.
func (s *Server) handleBookStream(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	books := s.books()
	for _, b := range books {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(b); err != nil {
			s.logger.Debug("websocket write failed", "error", err, "remote", r.RemoteAddr)
			return
		}
	}

	conn.SetWriteDeadline(time.Now().Add(writeWait))
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	if err := conn.WriteMessage(websocket.CloseMessage, msg); err != nil {
		s.logger.Debug("websocket close failed", "error", err)
		return
	}
	s.logger.Debug("streamed books", "count", len(books), "remote", r.RemoteAddr)
}

func (s *Server) handleAuthors(w http.ResponseWriter, r *http.Request) {
	ds, ok := s.requireDataset(w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, ds.Authors)
}

func (s *Server) handleBoxplot(w http.ResponseWriter, r *http.Request) {
	ds, ok := s.requireDataset(w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, ds.Boxplot)
}

func (s *Server) handleHist2D(w http.ResponseWriter, r *http.Request) {
	ds, ok := s.requireDataset(w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Authors   []analysis.AuthorStats `json:"authors"`
		Scaled    []float64              `json:"scaled_num_ratings"`
		Histogram analysis.Histogram     `json:"histogram"`
	}{ds.Top, ds.Scaled, ds.Histogram})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	health := struct {
		Status     string         `json:"status"`
		Version    string         `json:"version"`
		Components map[string]any `json:"components"`
	}{
		Status:     "healthy",
		Version:    version.String(),
		Components: make(map[string]any),
	}

	entries := s.store.Len()
	health.Components["store"] = map[string]any{
		"entries": entries,
		"height":  s.store.Height(),
	}
	if entries == 0 {
		health.Status = "degraded"
	}

	if ds := s.dataset.Load(); ds != nil {
		health.Components["dataset"] = map[string]any{
			"books":      len(ds.Books),
			"created_at": ds.CreatedAt,
		}
	} else {
		health.Components["dataset"] = "pending"
	}

	// Checked last so unhealthy overrides degraded.
	if s.db != nil {
		if err := s.db.Ping(ctx); err != nil {
			health.Status = "unhealthy"
			health.Components["postgres"] = map[string]string{
				"status": "disconnected",
				"error":  err.Error(),
			}
		} else {
			health.Components["postgres"] = "connected"
		}
	}

	status := http.StatusOK
	if health.Status == "unhealthy" {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, health)
}

func (s *Server) books() []model.Book {
	entries := s.store.InOrder()
	books := make([]model.Book, len(entries))
	for i, e := range entries {
		books[i] = e.Value.Book(e.Key)
	}
	return books
}

func (s *Server) requireDataset(w http.ResponseWriter) (*analysis.Dataset, bool) {
	ds := s.dataset.Load()
	if ds == nil {
		writeError(w, http.StatusServiceUnavailable, "dataset not ready")
		return nil, false
	}
	return ds, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
