package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/stanstork/tutoring-api/internal/models"
)

type RegularsHandler struct {
	service RegularsService
	logger  zerolog.Logger
}

func NewRegularsHandler(service RegularsService, logger zerolog.Logger) *RegularsHandler {
	return &RegularsHandler{
		service: service,
		logger:  logger.With().Str("handler", "regulars").Logger(),
	}
}

func (h *RegularsHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	status := models.InvitationStatus(r.URL.Query().Get("status"))
	invitations, err := h.service.ListInvitations(r.Context(), userID, status)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to list invitations")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"invitations": invitations})
}

func (h *RegularsHandler) Accepted(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	invitations, err := h.service.AcceptedRegulars(r.Context(), userID)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to list accepted regulars")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"invitations": invitations})
}

func (h *RegularsHandler) Cancelled(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	dates, err := h.service.CancelledDates(r.Context(), userID)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to list cancelled sessions")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"cancelled": dates})
}

func (h *RegularsHandler) Occurrences(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	from, err := parseDateParam(r, "from")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	days := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("days")); raw != "" {
		days, err = strconv.Atoi(raw)
		if err != nil || days < 1 {
			http.Error(w, "days must be a positive integer", http.StatusBadRequest)
			return
		}
	}

	start := time.Time{}
	if from != nil {
		start = *from
	}
	occurrences, err := h.service.UpcomingOccurrences(r.Context(), userID, start, days)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to list occurrences")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"occurrences": occurrences})
}

type cancelOccurrenceRequest struct {
	Date   string  `json:"date"`
	Reason *string `json:"reason"`
}

func (h *RegularsHandler) CancelOccurrence(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	invitationID, ok := pathID(w, r, "invitationID")
	if !ok {
		return
	}

	var req cancelOccurrenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	date, err := time.Parse(models.DateLayout, strings.TrimSpace(req.Date))
	if err != nil {
		http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	entry, err := h.service.CancelOccurrence(r.Context(), userID, invitationID, date, req.Reason)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to cancel session")
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (h *RegularsHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	invitationID, ok := pathID(w, r, "invitationID")
	if !ok {
		return
	}
	inv, err := h.service.RemoveSchedule(r.Context(), userID, invitationID)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to remove regular session")
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

func (h *RegularsHandler) Resend(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	invitationID, ok := pathID(w, r, "invitationID")
	if !ok {
		return
	}
	inv, err := h.service.ResendInvitation(r.Context(), userID, invitationID)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to resend invitation")
		return
	}
	writeJSON(w, http.StatusOK, inv)
}
