// Package api provides the REST read surface over the station state
// and observation archive.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"noakweather/internal/wx"
)

// StateStore is the read surface the API needs from storage.
type StateStore interface {
	Latest(ctx context.Context, station, sourceType string) (*wx.Envelope, error)
	Stats(ctx context.Context) (map[string]int64, error)
}

// HistoryStore serves archived observations. Optional; history routes
// 404 when absent.
type HistoryStore interface {
	History(ctx context.Context, station string, limit int) ([]wx.Envelope, error)
}

// Server provides read access to decoded reports.
type Server struct {
	state   StateStore
	history HistoryStore
	port    int
	log     zerolog.Logger
}

// NewServer creates an API server. history may be nil.
func NewServer(state StateStore, history HistoryStore, port int, log zerolog.Logger) *Server {
	return &Server{state: state, history: history, port: port, log: log}
}

// Run starts the HTTP server and blocks until it fails or the context
// is cancelled.
func (s *Server) Run(ctx context.Context) error {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/api/stations/{station}/latest", s.handleLatest)
	r.Get("/api/stations/{station}/history", s.handleHistory)
	r.Get("/api/stats", s.handleStats)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", s.port),
		Handler: r,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.log.Info().Int("port", s.port).Msg("api server started")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) handleLatest(w http.ResponseWriter, r *http.Request) {
	station := chi.URLParam(r, "station")
	source := r.URL.Query().Get("source")
	if source == "" {
		source = wx.SourceMetar
	}

	env, err := s.state.Latest(r.Context(), station, source)
	if err != nil {
		s.serverError(w, err)
		return
	}
	if env == nil {
		http.Error(w, "station not found", http.StatusNotFound)
		return
	}
	s.writeJSON(w, env)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		http.Error(w, "no archive configured", http.StatusNotFound)
		return
	}

	station := chi.URLParam(r, "station")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	envs, err := s.history.History(r.Context(), station, limit)
	if err != nil {
		s.serverError(w, err)
		return
	}
	s.writeJSON(w, envs)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.state.Stats(r.Context())
	if err != nil {
		s.serverError(w, err)
		return
	}
	s.writeJSON(w, stats)
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Warn().Err(err).Msg("encode response")
	}
}

func (s *Server) serverError(w http.ResponseWriter, err error) {
	s.log.Error().Err(err).Msg("api query failed")
	http.Error(w, "internal error", http.StatusInternalServerError)
}
