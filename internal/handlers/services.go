package handlers

import (
	"context"
	"time"

	"github.com/stanstork/tutoring-api/internal/models"
	"github.com/stanstork/tutoring-api/internal/scheduling"
)

type ScheduleService interface {
	SaveSchedule(ctx context.Context, ownerID string, days models.WeeklySchedule) (models.Schedule, scheduling.DispatchReport, error)
	GetSchedule(ctx context.Context, ownerID string) (models.Schedule, error)
}

type RegularsService interface {
	ListInvitations(ctx context.Context, ownerID string, status models.InvitationStatus) ([]models.RegularInvitation, error)
	AcceptedRegulars(ctx context.Context, ownerID string) ([]models.RegularInvitation, error)
	CancelledDates(ctx context.Context, ownerID string) ([]models.CancelledDate, error)
	UpcomingOccurrences(ctx context.Context, ownerID string, from time.Time, days int) ([]models.Occurrence, error)
	CancelOccurrence(ctx context.Context, ownerID, invitationID string, date time.Time, reason *string) (models.CancelledRegularSession, error)
	RemoveSchedule(ctx context.Context, ownerID, invitationID string) (models.RegularInvitation, error)
	ResendInvitation(ctx context.Context, ownerID, invitationID string) (models.RegularInvitation, error)
}

type InvitationResponder interface {
	RespondToInvitation(ctx context.Context, token string, action scheduling.ResponseAction) (scheduling.ResponseResult, error)
}

type TutorService interface {
	TutorProfile(ctx context.Context, userID string) (models.Tutor, error)
	ActivateTutor(ctx context.Context, userID, color string) (models.Tutor, error)
}

type DashboardService interface {
	Timeblocks(ctx context.Context, ownerID string, from, to *time.Time) ([]models.Timeblock, error)
	HoursByType(ctx context.Context, from, to *time.Time) ([]models.TutorHoursByType, error)
	HoursSummary(ctx context.Context, from, to *time.Time) ([]models.TutorHoursSummary, error)
}

var (
	_ ScheduleService     = (*scheduling.Service)(nil)
	_ RegularsService     = (*scheduling.Service)(nil)
	_ InvitationResponder = (*scheduling.Service)(nil)
	_ TutorService        = (*scheduling.Service)(nil)
	_ DashboardService    = (*scheduling.Service)(nil)
)
