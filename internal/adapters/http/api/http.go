// Package api declares HTTP contracts and route registration helpers for
// the pipeline trigger.
package api

import (
	"context"
	"io"
	"net/http"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to the pipeline service.
type Dependencies interface {
	// RunExtraction runs the morning pipeline, writing its console
	// report to w.
	RunExtraction(ctx context.Context, w io.Writer) error

	// RunEvaluation runs the evening pipeline, writing its console
	// report to w.
	RunEvaluation(ctx context.Context, w io.Writer) error
}

// Server wires HTTP routes for the trigger API.
type Server struct {
	healthHandler *HealthHandler
	runHandler    *RunHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies) *Server {
	return &Server{
		healthHandler: NewHealthHandler(),
		runHandler:    NewRunHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/run-morning", MetricsMiddleware(s.runHandler.HandleRunMorning, "run-morning"))
	mux.HandleFunc("/run-evening", MetricsMiddleware(s.runHandler.HandleRunEvening, "run-evening"))
	mux.HandleFunc("/", s.handleRoot)
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "tipsheet trigger is running\n")
}
