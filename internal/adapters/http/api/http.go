// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/okian/evstatus/internal/domain/model"
	"github.com/okian/evstatus/internal/domain/status"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	StatusDependencies
	EventDependencies
}

// StatusDependencies resolves the status of a group's last event.
type StatusDependencies interface {
	CheckStatus(ctx context.Context, groupID string) (status.Result, error)
}

// EventDependencies records a new last event for a group.
type EventDependencies interface {
	RecordEvent(ctx context.Context, groupID string, endDate time.Time, reviewHours *float64) (model.LastEvent, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler *HealthHandler
	statsHandler  *StatsHandler
	statusHandler *StatusHandler
	eventsHandler *EventsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler: NewHealthHandler(),
		statsHandler:  NewStatsHandler(statsProvider),
		statusHandler: NewStatusHandler(deps),
		eventsHandler: NewEventsHandler(deps),
	}
}

// Register attaches all HTTP routes to r.
func (s *Server) Register(_ context.Context, r chi.Router) {
	r.Get("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	r.Get("/metrics", s.healthHandler.HandleMetrics)
	r.Get("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	r.Route("/groups/{groupID}", func(r chi.Router) {
		r.Get("/status", MetricsMiddleware(s.statusHandler.HandleGetStatus, "status"))
		r.Post("/events", MetricsMiddleware(s.eventsHandler.HandlePostEvent, "events"))
	})
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
