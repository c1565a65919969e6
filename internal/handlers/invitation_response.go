package handlers

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/stanstork/tutoring-api/internal/models"
	"github.com/stanstork/tutoring-api/internal/scheduling"
)

var responsePage = template.Must(template.New("response").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.Title}} - {{.Brand}}</title>
  <style>
    body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Arial, sans-serif; background: #f4f6fb; display: flex; align-items: center; justify-content: center; min-height: 100vh; margin: 0; }
    .card { background: #fff; border-radius: 12px; box-shadow: 0 4px 6px -1px rgba(0,0,0,.1); padding: 40px; max-width: 480px; text-align: center; }
    h1 { color: #1f2937; font-size: 24px; margin: 0 0 12px; }
    p { color: #4b5563; line-height: 1.5; margin: 0; }
  </style>
</head>
<body>
  <div class="card">
    <h1>{{.Title}}</h1>
    <p>{{.Message}}</p>
  </div>
</body>
</html>
`))

type responseView struct {
	Brand   string
	Title   string
	Message string
}

// InvitationResponseHandler serves the public accept/decline link from invitation emails.
// The token in the path is the only credential.
type InvitationResponseHandler struct {
	responder InvitationResponder
	brand     string
	logger    zerolog.Logger
}

func NewInvitationResponseHandler(responder InvitationResponder, brand string, logger zerolog.Logger) *InvitationResponseHandler {
	if brand == "" {
		brand = "Tutoring"
	}
	return &InvitationResponseHandler{
		responder: responder,
		brand:     brand,
		logger:    logger.With().Str("handler", "invitation_response").Logger(),
	}
}

func (h *InvitationResponseHandler) Respond(w http.ResponseWriter, r *http.Request) {
	action, err := scheduling.ParseAction(r.URL.Query().Get("action"))
	if err != nil {
		h.render(w, http.StatusBadRequest, "Invalid Request",
			"The link you followed is invalid. Please check the email and try again.")
		return
	}

	result, err := h.responder.RespondToInvitation(r.Context(), mux.Vars(r)["token"], action)
	switch {
	case errors.Is(err, scheduling.ErrNotFound):
		h.render(w, http.StatusNotFound, "Invitation Not Found",
			"This invitation link is invalid or has expired.")
		return
	case err != nil:
		h.logger.Error().Err(err).Str("action", string(action)).Msg("failed to process invitation response")
		h.render(w, http.StatusInternalServerError, "Something Went Wrong",
			"An error occurred while processing your response. Please try again later.")
		return
	}

	if result.AlreadyResponded {
		h.render(w, http.StatusOK, "Already Responded",
			fmt.Sprintf("This invitation has already been %s. No further action is needed.", result.Invitation.Status))
		return
	}

	if result.Invitation.Status == models.InvitationAccepted {
		h.render(w, http.StatusOK, "Invitation Accepted",
			"You have accepted the recurring session invitation. Your tutor has been notified and the sessions will appear on your schedule.")
		return
	}
	h.render(w, http.StatusOK, "Invitation Declined",
		"You have declined the session invitation. Your tutor has been notified.")
}

func (h *InvitationResponseHandler) render(w http.ResponseWriter, status int, title, message string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if err := responsePage.Execute(w, responseView{Brand: h.brand, Title: title, Message: message}); err != nil {
		h.logger.Error().Err(err).Msg("failed to render response page")
	}
}
