package daemon

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/statickit/siteconf/internal/logfields"
	"github.com/statickit/siteconf/internal/version"
)

// HTTPServer serves the daemon's admin endpoints.
type HTTPServer struct {
	daemon *Daemon
	server *http.Server
}

// NewHTTPServer wires the admin endpoints for the given daemon.
func NewHTTPServer(d *Daemon) *HTTPServer {
	return &HTTPServer{daemon: d}
}

// Start brings up the admin listener. Endpoint paths for health and metrics
// come from the monitoring section when present.
func (s *HTTPServer) Start(_ context.Context) error {
	cfg := s.daemon.GetConfig()

	healthPath := "/healthz"
	metricsPath := "/metrics"
	metricsEnabled := true
	if cfg.Monitoring != nil {
		if cfg.Monitoring.Health.Path != "" {
			healthPath = cfg.Monitoring.Health.Path
		}
		if cfg.Monitoring.Metrics.Path != "" {
			metricsPath = cfg.Monitoring.Metrics.Path
		}
		metricsEnabled = cfg.Monitoring.Metrics.Enabled
	}

	mux := http.NewServeMux()
	mux.HandleFunc(healthPath, s.handleHealth)
	if healthPath != "/healthz" {
		mux.HandleFunc("/healthz", s.handleHealth) // Kubernetes-style alias
	}
	mux.HandleFunc("/config", s.handleConfig)
	mux.HandleFunc("/config/warnings", s.handleWarnings)
	mux.HandleFunc("/revisions", s.handleRevisions)
	mux.HandleFunc("/status", s.handleStatus)

	if metricsEnabled {
		mux.Handle(metricsPath, promhttp.HandlerFor(s.daemon.metrics.Registry(), promhttp.HandlerOpts{}))
	}

	addr := fmt.Sprintf(":%d", cfg.Daemon.HTTP.AdminPort)
	s.server = &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("Admin server listening", slog.String("addr", addr))
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Admin server error", logfields.Error(err))
		}
	}()

	return nil
}

// Stop shuts down the admin listener gracefully.
func (s *HTTPServer) Stop(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *HTTPServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"uptime": s.daemon.Uptime().String(),
	})
}

// handleConfig returns the active configuration, normalized and with
// defaults applied. Secrets never live in this config, so no redaction.
func (s *HTTPServer) handleConfig(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, s.daemon.GetConfig())
}

func (s *HTTPServer) handleWarnings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	warnings := s.daemon.GetWarnings()
	if warnings == nil {
		warnings = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"warnings": warnings})
}

// handleRevisions returns recent journal entries, newest first.
// ?n= bounds the result; it defaults to 20.
func (s *HTTPServer) handleRevisions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	n := 20
	if raw := r.URL.Query().Get("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			http.Error(w, "invalid n parameter", http.StatusBadRequest)
			return
		}
		n = parsed
	}

	revs, err := s.daemon.Revisions(r.Context(), n)
	if err != nil {
		slog.Error("Failed to read revision journal", logfields.Error(err))
		http.Error(w, "journal unavailable", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"revisions": revs, "count": len(revs)})
}

func (s *HTTPServer) handleStatus(w http.ResponseWriter, _ *http.Request) {
	cfg := s.daemon.GetConfig()

	status := map[string]any{
		"version":     version.Version,
		"uptime":      s.daemon.Uptime().String(),
		"config_path": s.daemon.configPath,
		"site_name":   cfg.Site.Name,
		"warnings":    len(s.daemon.GetWarnings()),
		"link_check":  cfg.LinkCheck != nil && cfg.LinkCheck.Enabled,
	}

	writeJSON(w, http.StatusOK, status)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", logfields.Error(err))
	}
}
