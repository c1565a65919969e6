package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/stanstork/tutoring-api/internal/models"
)

type ScheduleHandler struct {
	service ScheduleService
	logger  zerolog.Logger
}

func NewScheduleHandler(service ScheduleService, logger zerolog.Logger) *ScheduleHandler {
	return &ScheduleHandler{
		service: service,
		logger:  logger.With().Str("handler", "schedule").Logger(),
	}
}

type saveScheduleRequest struct {
	Schedule models.WeeklySchedule `json:"schedule"`
}

func (h *ScheduleHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	schedule, err := h.service.GetSchedule(r.Context(), userID)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to load schedule")
		return
	}
	writeJSON(w, http.StatusOK, schedule)
}

// Save replaces the caller's schedule and reports the invitation dispatch outcome.
func (h *ScheduleHandler) Save(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req saveScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	schedule, report, err := h.service.SaveSchedule(r.Context(), userID, req.Schedule)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to save schedule")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"schedule": schedule,
		"dispatch": report,
	})
}
