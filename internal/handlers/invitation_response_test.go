package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/stanstork/tutoring-api/internal/models"
	"github.com/stanstork/tutoring-api/internal/scheduling"
)

func TestInvitationResponseHandler(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		svc       *fakeService
		wantCode  int
		wantBody  string
		wantCalls int
	}{
		{
			name:     "missing action",
			query:    "",
			svc:      &fakeService{},
			wantCode: http.StatusBadRequest,
			wantBody: "Invalid Request",
		},
		{
			name:     "unsupported action",
			query:    "?action=remove",
			svc:      &fakeService{},
			wantCode: http.StatusBadRequest,
			wantBody: "Invalid Request",
		},
		{
			name:      "unknown token",
			query:     "?action=accept",
			svc:       &fakeService{err: scheduling.ErrNotFound},
			wantCode:  http.StatusNotFound,
			wantBody:  "Invitation Not Found",
			wantCalls: 1,
		},
		{
			name:  "already responded",
			query: "?action=decline",
			svc: &fakeService{respond: scheduling.ResponseResult{
				Invitation:       models.RegularInvitation{Status: models.InvitationAccepted},
				AlreadyResponded: true,
			}},
			wantCode:  http.StatusOK,
			wantBody:  "This invitation has already been accepted. No further action is needed.",
			wantCalls: 1,
		},
		{
			name:      "accepted",
			query:     "?action=accept",
			svc:       &fakeService{respond: scheduling.ResponseResult{Invitation: models.RegularInvitation{Status: models.InvitationAccepted}}},
			wantCode:  http.StatusOK,
			wantBody:  "Invitation Accepted",
			wantCalls: 1,
		},
		{
			name:      "declined",
			query:     "?action=decline",
			svc:       &fakeService{respond: scheduling.ResponseResult{Invitation: models.RegularInvitation{Status: models.InvitationDeclined}}},
			wantCode:  http.StatusOK,
			wantBody:  "Invitation Declined",
			wantCalls: 1,
		},
		{
			name:      "storage failure",
			query:     "?action=accept",
			svc:       &fakeService{err: fmt.Errorf("connection reset by peer")},
			wantCode:  http.StatusInternalServerError,
			wantBody:  "Something Went Wrong",
			wantCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewInvitationResponseHandler(tt.svc, "Tutoring", zerolog.Nop())
			req := httptest.NewRequest(http.MethodGet, "/invitations/tok"+tt.query, nil)
			req = mux.SetURLVars(req, map[string]string{"token": "tok"})
			rec := httptest.NewRecorder()

			h.Respond(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
			assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
			assert.NotContains(t, rec.Body.String(), "connection reset")
			assert.Equal(t, tt.wantCalls, tt.svc.calls)
		})
	}
}
