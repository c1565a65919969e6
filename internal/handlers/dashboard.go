package handlers

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

type DashboardHandler struct {
	service DashboardService
	logger  zerolog.Logger
}

func NewDashboardHandler(service DashboardService, logger zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		logger:  logger.With().Str("handler", "dashboard").Logger(),
	}
}

func (h *DashboardHandler) Timeblocks(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	from, to, ok := window(w, r)
	if !ok {
		return
	}
	blocks, err := h.service.Timeblocks(r.Context(), userID, from, to)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to list timeblocks")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"timeblocks": blocks})
}

func (h *DashboardHandler) Hours(w http.ResponseWriter, r *http.Request) {
	from, to, ok := window(w, r)
	if !ok {
		return
	}
	rows, err := h.service.HoursByType(r.Context(), from, to)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to aggregate hours")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"hours": rows})
}

func (h *DashboardHandler) HoursSummary(w http.ResponseWriter, r *http.Request) {
	from, to, ok := window(w, r)
	if !ok {
		return
	}
	summary, err := h.service.HoursSummary(r.Context(), from, to)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to summarize hours")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"tutors": summary})
}

func window(w http.ResponseWriter, r *http.Request) (*time.Time, *time.Time, bool) {
	from, err := parseDateParam(r, "from")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, nil, false
	}
	to, err := parseDateParam(r, "to")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, nil, false
	}
	return from, to, true
}
