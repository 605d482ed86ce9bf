package api

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/okian/evstatus/internal/adapters/repository"
	"github.com/okian/evstatus/internal/domain/model"
)

// eventRequest mirrors the OpenAPI schema for POST /groups/{groupID}/events.
type eventRequest struct {
	EndDate               string   `json:"end_date"`
	ReviewDurationInHours *float64 `json:"review_duration_in_hours,omitempty"`
}

func (e eventRequest) validate() (time.Time, error) {
	if strings.TrimSpace(e.EndDate) == "" {
		return time.Time{}, errors.New("missing end_date")
	}
	end, err := time.Parse(time.RFC3339, e.EndDate)
	if err != nil {
		return time.Time{}, errors.New("invalid end_date; must be RFC3339")
	}
	if h := e.ReviewDurationInHours; h != nil && (*h < 0 || math.IsInf(*h, 0)) {
		return time.Time{}, errors.New("review_duration_in_hours must be a non-negative number")
	}
	return end, nil
}

// eventResponse is the JSON shape of a stored event.
type eventResponse struct {
	ID                    string    `json:"id"`
	GroupID               string    `json:"group_id"`
	EndDate               time.Time `json:"end_date"`
	ReviewDurationInHours float64   `json:"review_duration_in_hours"`
	ReviewEnd             time.Time `json:"review_end"`
	CreatedAt             time.Time `json:"created_at"`
}

func newEventResponse(ev model.LastEvent) eventResponse {
	return eventResponse{
		ID:                    ev.ID,
		GroupID:               ev.GroupID,
		EndDate:               ev.EndDate,
		ReviewDurationInHours: ev.ReviewDurationInHours,
		ReviewEnd:             ev.ReviewEnd(),
		CreatedAt:             ev.CreatedAt,
	}
}

// EventsHandler handles event requests.
type EventsHandler struct {
	deps EventDependencies
}

// NewEventsHandler creates a new events handler.
func NewEventsHandler(deps EventDependencies) *EventsHandler {
	return &EventsHandler{deps: deps}
}

// HandlePostEvent handles POST /groups/{groupID}/events requests.
func (h *EventsHandler) HandlePostEvent(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_event"
	groupID := chi.URLParam(r, "groupID")

	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	end, err := req.validate()
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	saved, err := h.deps.RecordEvent(r.Context(), groupID, end, req.ReviewDurationInHours)
	if err != nil {
		if errors.Is(err, repository.ErrEmptyGroupID) || errors.Is(err, repository.ErrInvalidReviewDuration) {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		if errors.Is(err, context.Canceled) {
			writeError(w, StatusClientClosedRequest, "canceled", WrapKind(op, ErrCanceled, err))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", WrapKind(op, ErrInternal, err))
		return
	}
	writeJSON(w, http.StatusCreated, newEventResponse(saved))
}
