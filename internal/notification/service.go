package notification

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/stanstork/tutoring-api/internal/models"
	"github.com/stanstork/tutoring-api/internal/repository"
)

type Event struct {
	UserID   string
	Event    models.NotificationEvent
	Severity models.NotificationSeverity
	Title    string
	Message  string
	Metadata map[string]interface{}
}

// Service stores in-app notifications for users.
type Service interface {
	Publish(ctx context.Context, evt Event) (models.Notification, error)
	NotifyInvitationResponded(ctx context.Context, tutorUserID string, inv models.RegularInvitation) error
	ListRecent(ctx context.Context, userID string, limit int) ([]models.Notification, error)
	MarkRead(ctx context.Context, userID, notificationID string) (models.Notification, error)
}

type service struct {
	repo   repository.NotificationRepository
	logger zerolog.Logger
}

func NewService(repo repository.NotificationRepository, logger zerolog.Logger) Service {
	return &service{
		repo:   repo,
		logger: logger.With().Str("component", "notification_service").Logger(),
	}
}

func (s *service) Publish(ctx context.Context, evt Event) (models.Notification, error) {
	if evt.Event == "" {
		return models.Notification{}, fmt.Errorf("event type is required")
	}
	userID := strings.TrimSpace(evt.UserID)
	if userID == "" {
		return models.Notification{}, fmt.Errorf("user id is required")
	}
	if evt.Severity == "" {
		evt.Severity = models.NotificationSeverityInfo
	}
	title := strings.TrimSpace(evt.Title)
	if title == "" {
		title = string(evt.Event)
	}

	notif, err := s.repo.Create(ctx, repository.CreateNotificationParams{
		UserID:   userID,
		Event:    evt.Event,
		Severity: evt.Severity,
		Title:    title,
		Message:  strings.TrimSpace(evt.Message),
		Metadata: evt.Metadata,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("event_type", string(evt.Event)).Msg("failed to persist notification")
		return models.Notification{}, err
	}
	return notif, nil
}

// NotifyInvitationResponded tells the tutor that a student accepted or declined.
func (s *service) NotifyInvitationResponded(ctx context.Context, tutorUserID string, inv models.RegularInvitation) error {
	var (
		event    models.NotificationEvent
		severity = models.NotificationSeverityInfo
		verb     string
	)
	switch inv.Status {
	case models.InvitationAccepted:
		event, verb = models.NotificationEventInvitationAccepted, "accepted"
	case models.InvitationDeclined:
		event, verb = models.NotificationEventInvitationDeclined, "declined"
		severity = models.NotificationSeverityWarning
	default:
		return fmt.Errorf("invitation %s has not been responded to", inv.ID)
	}

	slot := fmt.Sprintf("%s %s", models.WeekdayName(inv.DayOfWeek), inv.StartTime)
	_, err := s.Publish(ctx, Event{
		UserID:   tutorUserID,
		Event:    event,
		Severity: severity,
		Title:    fmt.Sprintf("Invitation %s: %s", verb, slot),
		Message:  fmt.Sprintf("%s %s the recurring session on %s.", inv.StudentEmail, verb, slot),
		Metadata: map[string]interface{}{
			"invitation_id": inv.ID,
			"student_email": inv.StudentEmail,
			"day_of_week":   inv.DayOfWeek,
			"start_time":    inv.StartTime,
		},
	})
	return err
}

func (s *service) ListRecent(ctx context.Context, userID string, limit int) ([]models.Notification, error) {
	return s.repo.ListRecent(ctx, userID, limit)
}

func (s *service) MarkRead(ctx context.Context, userID, notificationID string) (models.Notification, error) {
	return s.repo.MarkRead(ctx, userID, notificationID)
}
