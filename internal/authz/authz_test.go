package authz

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stanstork/tutoring-api/internal/models"
)

func TestRequireRole(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	tests := []struct {
		name     string
		roles    []models.UserRole
		identity bool
		required models.UserRole
		want     int
	}{
		{name: "tutor reaches tutor", roles: []models.UserRole{models.RoleTutor}, identity: true, required: models.RoleTutor, want: http.StatusNoContent},
		{name: "admin reaches tutor", roles: []models.UserRole{models.RoleAdmin}, identity: true, required: models.RoleTutor, want: http.StatusNoContent},
		{name: "student blocked from tutor", roles: []models.UserRole{models.RoleStudent}, identity: true, required: models.RoleTutor, want: http.StatusForbidden},
		{name: "tutor blocked from admin", roles: []models.UserRole{models.RoleTutor}, identity: true, required: models.RoleAdmin, want: http.StatusForbidden},
		{name: "no identity", required: models.RoleStudent, want: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.identity {
				req = req.WithContext(WithIdentity(req.Context(), "user-1", tt.roles))
			}
			rec := httptest.NewRecorder()
			RequireRole(tt.required)(ok).ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestWithIdentityAddsStudentTier(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithIdentity(req.Context(), "user-1", []models.UserRole{models.RoleTutor}))

	roles, ok := RolesFromRequest(req)
	assert.True(t, ok)
	assert.Equal(t, []models.UserRole{models.RoleStudent, models.RoleTutor}, roles)

	uid, ok := UserIDFromRequest(req)
	assert.True(t, ok)
	assert.Equal(t, "user-1", uid)
}
