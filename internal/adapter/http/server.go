// Package http serves health, metrics and the search API over HTTP.
package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/couchcryptid/weather-search/internal/domain"
	"github.com/couchcryptid/weather-search/internal/recent"
	"github.com/couchcryptid/weather-search/internal/search"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const maxQueryBodyBytes = 4 << 10

// Searcher is the part of the search controller the server drives.
type Searcher interface {
	sharedobs.ReadinessChecker
	SubmitQuery(raw string)
	State() search.State
}

// CityLookup fetches weather for a known city id.
type CityLookup interface {
	FetchWeatherByCityID(ctx context.Context, cityID string) (domain.CityWeather, error)
}

// Server exposes health, readiness, metrics and search endpoints.
type Server struct {
	httpServer *http.Server
	searcher   Searcher
	recents    recent.Lister
	lookup     CityLookup
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics and the
// /search and /weather routes.
func NewServer(addr string, searcher Searcher, recents recent.Lister, lookup CityLookup, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		searcher: searcher,
		recents:  recents,
		lookup:   lookup,
		logger:   logger,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(searcher))
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("POST /search/query", s.handleSubmitQuery)
	mux.HandleFunc("GET /search/state", s.handleState)
	mux.HandleFunc("GET /search/recent", s.handleRecent)
	mux.HandleFunc("GET /weather/city/{id}", s.handleCity)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

type queryRequest struct {
	Query *string `json:"query"`
}

func (s *Server) handleSubmitQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxQueryBodyBytes))
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "body must be a JSON object")
		return
	}
	if req.Query == nil {
		writeError(w, http.StatusBadRequest, "invalid_request", `missing field "query"`)
		return
	}

	s.searcher.SubmitQuery(*req.Query)
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
}

func (s *Server) handleState(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.searcher.State())
}

func (s *Server) handleRecent(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid_request", "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	list, err := s.recents.List(r.Context(), limit)
	if err != nil {
		s.logger.Error("list recent searches failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal", "recent searches unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"searches": list})
}

func (s *Server) handleCity(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("id"))
	if _, err := strconv.ParseUint(id, 10, 64); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "city id must be numeric")
		return
	}

	cw, err := s.lookup.FetchWeatherByCityID(r.Context(), id)
	if err != nil {
		ne := domain.AsNetworkError(err)
		s.logger.Warn("city lookup failed", "city_id", id, "kind", ne.Kind.String(), "error", err)
		writeError(w, statusForKind(ne.Kind), ne.Kind.String(), ne.SafeMessage())
		return
	}
	writeJSON(w, http.StatusOK, cw)
}

// statusForKind maps an upstream failure onto the status this server returns.
func statusForKind(k domain.ErrorKind) int {
	switch k {
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindRateLimited:
		return http.StatusTooManyRequests
	case domain.KindServiceUnavailable:
		return http.StatusServiceUnavailable
	case domain.KindTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{"error": code, "message": message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "encode response: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
