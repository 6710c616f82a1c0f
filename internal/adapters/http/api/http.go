// Package api exposes the bot's operational HTTP surface: health,
// service statistics and Prometheus metrics.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/okian/rexbot/pkg/metrics"
)

// StatsProvider supplies service statistics for the /stats endpoint.
type StatsProvider interface {
	Stats() map[string]interface{}
}

// Server wires the ops HTTP routes.
type Server struct {
	stats StatsProvider
}

// NewServer creates an ops server reading stats from the given provider.
func NewServer(stats StatsProvider) *Server {
	return &Server{stats: stats}
}

// Register attaches the ops routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.handleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.handleStats, "stats"))
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry(), promhttp.HandlerOpts{}))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, s.stats.Stats())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
