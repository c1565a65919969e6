package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/stanstork/tutoring-api/internal/authz"
	"github.com/stanstork/tutoring-api/internal/models"
	"github.com/stanstork/tutoring-api/internal/scheduling"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// writeServiceError maps service errors to status codes. Unexpected errors are
// logged and answered with msg only.
func writeServiceError(w http.ResponseWriter, logger zerolog.Logger, err error, msg string) {
	switch {
	case errors.Is(err, scheduling.ErrUnauthorized):
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
	case errors.Is(err, scheduling.ErrNotFound):
		http.Error(w, "Not found", http.StatusNotFound)
	case errors.Is(err, scheduling.ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, models.ErrIllegalTransition):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, scheduling.ErrDeliveryFailed):
		logger.Warn().Err(err).Msg(msg)
		http.Error(w, "Failed to deliver email", http.StatusBadGateway)
	default:
		logger.Error().Err(err).Msg(msg)
		http.Error(w, msg, http.StatusInternalServerError)
	}
}

func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := authz.UserIDFromRequest(r)
	if !ok {
		http.Error(w, "Missing user context", http.StatusUnauthorized)
		return "", false
	}
	return userID, true
}

// pathID returns a uuid path variable. Malformed ids are answered with 404.
func pathID(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	raw := strings.TrimSpace(mux.Vars(r)[name])
	id, err := uuid.Parse(raw)
	if err != nil {
		http.Error(w, "Not found", http.StatusNotFound)
		return "", false
	}
	return id.String(), true
}

// parseDateParam accepts YYYY-MM-DD or RFC 3339. An empty value yields nil.
func parseDateParam(r *http.Request, name string) (*time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(models.DateLayout, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, errors.New(name + " must be YYYY-MM-DD or RFC 3339")
	}
	return &t, nil
}
