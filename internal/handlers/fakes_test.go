package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/stanstork/tutoring-api/internal/models"
	"github.com/stanstork/tutoring-api/internal/repository"
	"github.com/stanstork/tutoring-api/internal/scheduling"
)

type fakeService struct {
	calls int

	schedule models.Schedule
	report   scheduling.DispatchReport
	respond  scheduling.ResponseResult
	cancel   models.CancelledRegularSession
	inv      models.RegularInvitation
	err      error

	lastOwner  string
	lastDate   time.Time
	lastReason *string
	lastDays   int
}

func (f *fakeService) SaveSchedule(_ context.Context, ownerID string, days models.WeeklySchedule) (models.Schedule, scheduling.DispatchReport, error) {
	f.calls++
	f.lastOwner = ownerID
	return f.schedule, f.report, f.err
}

func (f *fakeService) GetSchedule(_ context.Context, ownerID string) (models.Schedule, error) {
	f.calls++
	f.lastOwner = ownerID
	return f.schedule, f.err
}

func (f *fakeService) ListInvitations(context.Context, string, models.InvitationStatus) ([]models.RegularInvitation, error) {
	f.calls++
	return []models.RegularInvitation{}, f.err
}

func (f *fakeService) AcceptedRegulars(context.Context, string) ([]models.RegularInvitation, error) {
	f.calls++
	return []models.RegularInvitation{}, f.err
}

func (f *fakeService) CancelledDates(context.Context, string) ([]models.CancelledDate, error) {
	f.calls++
	return []models.CancelledDate{}, f.err
}

func (f *fakeService) UpcomingOccurrences(_ context.Context, _ string, from time.Time, days int) ([]models.Occurrence, error) {
	f.calls++
	f.lastDate = from
	f.lastDays = days
	return []models.Occurrence{}, f.err
}

func (f *fakeService) CancelOccurrence(_ context.Context, ownerID, _ string, date time.Time, reason *string) (models.CancelledRegularSession, error) {
	f.calls++
	f.lastOwner = ownerID
	f.lastDate = date
	f.lastReason = reason
	return f.cancel, f.err
}

func (f *fakeService) RemoveSchedule(context.Context, string, string) (models.RegularInvitation, error) {
	f.calls++
	return f.inv, f.err
}

func (f *fakeService) ResendInvitation(context.Context, string, string) (models.RegularInvitation, error) {
	f.calls++
	return f.inv, f.err
}

func (f *fakeService) RespondToInvitation(context.Context, string, scheduling.ResponseAction) (scheduling.ResponseResult, error) {
	f.calls++
	return f.respond, f.err
}

func (f *fakeService) Timeblocks(context.Context, string, *time.Time, *time.Time) ([]models.Timeblock, error) {
	f.calls++
	return []models.Timeblock{}, f.err
}

func (f *fakeService) HoursByType(context.Context, *time.Time, *time.Time) ([]models.TutorHoursByType, error) {
	f.calls++
	return []models.TutorHoursByType{}, f.err
}

func (f *fakeService) HoursSummary(context.Context, *time.Time, *time.Time) ([]models.TutorHoursSummary, error) {
	f.calls++
	return []models.TutorHoursSummary{}, f.err
}

type fakeUserRepo struct {
	users     map[string]models.User
	passwords map[string]string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]models.User{}, passwords: map[string]string{}}
}

func (f *fakeUserRepo) CreateUser(_ context.Context, email, password, firstName, lastName string, roles []models.UserRole) (models.User, error) {
	if _, ok := f.users[email]; ok {
		return models.User{}, repository.ErrDuplicate
	}
	user := models.User{ID: "9b2f3c1e-0d4a-4e5b-8f6a-1c2d3e4f5a6b", Email: email, FirstName: firstName, LastName: lastName, IsActive: true, Roles: roles}
	f.users[email] = user
	f.passwords[email] = password
	return user, nil
}

func (f *fakeUserRepo) AuthenticateUser(_ context.Context, email, password string) (models.User, error) {
	user, ok := f.users[email]
	if !ok || f.passwords[email] != password {
		return models.User{}, repository.ErrInvalidCredentials
	}
	return user, nil
}

func (f *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (models.User, error) {
	user, ok := f.users[email]
	if !ok {
		return models.User{}, sql.ErrNoRows
	}
	return user, nil
}

func (f *fakeUserRepo) GetUserByID(_ context.Context, userID string) (models.User, error) {
	for _, user := range f.users {
		if user.ID == userID {
			return user, nil
		}
	}
	return models.User{}, sql.ErrNoRows
}

func (f *fakeUserRepo) UpdateUserRoles(_ context.Context, userID string, roles []models.UserRole) (models.User, error) {
	for email, user := range f.users {
		if user.ID == userID {
			user.Roles = models.EnsureDefaultRole(roles)
			f.users[email] = user
			return user, nil
		}
	}
	return models.User{}, sql.ErrNoRows
}

func (f *fakeUserRepo) ListUsersByRole(context.Context, models.UserRole) ([]models.User, error) {
	users := make([]models.User, 0, len(f.users))
	for _, user := range f.users {
		users = append(users, user)
	}
	return users, nil
}

func muxVars(req *http.Request, key, value string) *http.Request {
	return mux.SetURLVars(req, map[string]string{key: value})
}
