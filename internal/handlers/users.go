package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/stanstork/tutoring-api/internal/models"
	"github.com/stanstork/tutoring-api/internal/repository"
)

// UserHandler exposes the student directory to tutors and role management to admins.
type UserHandler struct {
	users  repository.UserRepository
	logger zerolog.Logger
}

func NewUserHandler(users repository.UserRepository, logger zerolog.Logger) *UserHandler {
	return &UserHandler{
		users:  users,
		logger: logger.With().Str("handler", "users").Logger(),
	}
}

func toStudent(user models.User) models.Student {
	return models.Student{ID: user.ID, Email: user.Email, Name: user.FullName()}
}

func (h *UserHandler) ListStudents(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListUsersByRole(r.Context(), models.RoleStudent)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list students")
		http.Error(w, "Failed to list students", http.StatusInternalServerError)
		return
	}
	students := make([]models.Student, 0, len(users))
	for _, user := range users {
		students = append(students, toStudent(user))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"students": students})
}

func (h *UserHandler) GetStudent(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userID")
	if !ok {
		return
	}
	user, err := h.users.GetUserByID(r.Context(), userID)
	if err != nil {
		if repository.IsNotFound(err) {
			http.Error(w, "Student not found", http.StatusNotFound)
			return
		}
		h.logger.Error().Err(err).Str("user_id", userID).Msg("failed to load student")
		http.Error(w, "Failed to load student", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, toStudent(user))
}

func (h *UserHandler) UpdateRoles(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userID")
	if !ok {
		return
	}
	var req struct {
		Roles []models.UserRole `json:"roles"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	roles := models.NormalizeRoles(req.Roles)
	if !models.IsValidRoleList(roles) {
		http.Error(w, "roles must be a non-empty list of student, tutor or admin", http.StatusBadRequest)
		return
	}

	user, err := h.users.UpdateUserRoles(r.Context(), userID, roles)
	if err != nil {
		if repository.IsNotFound(err) {
			http.Error(w, "User not found", http.StatusNotFound)
			return
		}
		h.logger.Error().Err(err).Str("user_id", userID).Msg("failed to update roles")
		http.Error(w, "Failed to update roles", http.StatusInternalServerError)
		return
	}
	h.logger.Info().Str("user_id", user.ID).Interface("roles", user.Roles).Msg("user roles updated")
	writeJSON(w, http.StatusOK, user)
}
