package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/stanstork/tutoring-api/internal/authz"
	"github.com/stanstork/tutoring-api/internal/handlers"
	"github.com/stanstork/tutoring-api/internal/models"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Health        http.HandlerFunc
	Auth          *handlers.AuthHandler
	Invitations   *handlers.InvitationResponseHandler
	Tutor         *handlers.TutorHandler
	Schedule      *handlers.ScheduleHandler
	Regulars      *handlers.RegularsHandler
	Dashboard     *handlers.DashboardHandler
	Users         *handlers.UserHandler
	Notifications *handlers.NotificationHandler
}

// NewRouter sets up the API routes
func NewRouter(h Handlers) *mux.Router {
	router := mux.NewRouter()

	// Health check route
	router.HandleFunc("/health", h.Health).Methods(http.MethodGet)

	// Public auth endpoints
	router.HandleFunc("/api/signup", h.Auth.SignUp).Methods(http.MethodPost)
	router.HandleFunc("/api/login", h.Auth.Login).Methods(http.MethodPost)

	// Links from invitation emails; the token is the credential.
	router.HandleFunc("/invitations/{token}", h.Invitations.Respond).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	api.Use(h.Auth.JWTMiddleware)

	api.HandleFunc("/notifications", h.Notifications.List).Methods(http.MethodGet)
	api.HandleFunc("/notifications/{notificationID}/read", h.Notifications.MarkRead).Methods(http.MethodPost)

	tutor := api.NewRoute().Subrouter()
	tutor.Use(authz.RequireRole(models.RoleTutor))

	tutor.HandleFunc("/tutor/activation", h.Tutor.Get).Methods(http.MethodGet)
	tutor.HandleFunc("/tutor/activation", h.Tutor.Activate).Methods(http.MethodPost)

	tutor.HandleFunc("/schedule", h.Schedule.Get).Methods(http.MethodGet)
	tutor.HandleFunc("/schedule", h.Schedule.Save).Methods(http.MethodPut)

	tutor.HandleFunc("/regulars", h.Regulars.List).Methods(http.MethodGet)
	tutor.HandleFunc("/regulars/accepted", h.Regulars.Accepted).Methods(http.MethodGet)
	tutor.HandleFunc("/regulars/cancelled", h.Regulars.Cancelled).Methods(http.MethodGet)
	tutor.HandleFunc("/regulars/occurrences", h.Regulars.Occurrences).Methods(http.MethodGet)
	tutor.HandleFunc("/regulars/{invitationID}/cancellations", h.Regulars.CancelOccurrence).Methods(http.MethodPost)
	tutor.HandleFunc("/regulars/{invitationID}/resend", h.Regulars.Resend).Methods(http.MethodPost)
	tutor.HandleFunc("/regulars/{invitationID}", h.Regulars.Remove).Methods(http.MethodDelete)

	tutor.HandleFunc("/timeblocks", h.Dashboard.Timeblocks).Methods(http.MethodGet)

	tutor.HandleFunc("/students", h.Users.ListStudents).Methods(http.MethodGet)
	tutor.HandleFunc("/students/{userID}", h.Users.GetStudent).Methods(http.MethodGet)

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(authz.RequireRole(models.RoleAdmin))

	admin.HandleFunc("/hours", h.Dashboard.Hours).Methods(http.MethodGet)
	admin.HandleFunc("/hours/summary", h.Dashboard.HoursSummary).Methods(http.MethodGet)
	admin.HandleFunc("/users/{userID}/roles", h.Users.UpdateRoles).Methods(http.MethodPut)

	return router
}
