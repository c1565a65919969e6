package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog"
)

type TutorHandler struct {
	service TutorService
	logger  zerolog.Logger
}

func NewTutorHandler(service TutorService, logger zerolog.Logger) *TutorHandler {
	return &TutorHandler{
		service: service,
		logger:  logger.With().Str("handler", "tutor").Logger(),
	}
}

func (h *TutorHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	tutor, err := h.service.TutorProfile(r.Context(), userID)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to load tutor profile")
		return
	}
	writeJSON(w, http.StatusOK, tutor)
}

// Activate creates the caller's tutor profile. The body is optional.
func (h *TutorHandler) Activate(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req struct {
		Color string `json:"color"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	tutor, err := h.service.ActivateTutor(r.Context(), userID, req.Color)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to activate tutor profile")
		return
	}
	writeJSON(w, http.StatusOK, tutor)
}
