package scheduling

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"

	"github.com/pkg/errors"

	"github.com/stanstork/tutoring-api/internal/models"
	"github.com/stanstork/tutoring-api/internal/notification"
	"github.com/stanstork/tutoring-api/internal/repository"
)

const tokenBytes = 32

// DispatchReport summarises one reconciliation of a schedule against the registry.
type DispatchReport struct {
	Created       int `json:"created"`
	Skipped       int `json:"skipped"`
	EmailFailures int `json:"email_failures"`
	Failures      int `json:"failures"`
}

// DispatchInvitations creates and emails a pending invitation for every
// regulars slot whose natural key is not yet in the registry. Slots are
// handled in schedule order and a failing slot does not stop the rest.
// When the tutor profile cannot be loaded every offer is counted as a failure.
func (s *Service) DispatchInvitations(ctx context.Context, ownerID string, days models.WeeklySchedule) (DispatchReport, error) {
	var report DispatchReport

	offers := 0
	for _, day := range days {
		for _, slot := range day.TimeSlots {
			if slot.IsRegularOffer() {
				offers++
			}
		}
	}
	if offers == 0 {
		return report, nil
	}

	tutor, err := s.tutors.GetByUserID(ctx, ownerID)
	if err != nil {
		if repository.IsNotFound(err) {
			s.logger.Debug().Str("owner_id", ownerID).Msg("no tutor profile, skipping invitation dispatch")
			return report, nil
		}
		report.Failures = offers
		return report, errors.Wrap(err, "load tutor profile")
	}

	for _, day := range days {
		for _, slot := range day.TimeSlots {
			if !slot.IsRegularOffer() {
				continue
			}
			s.dispatchSlot(ctx, tutor, day.Day, slot, &report)
		}
	}

	s.logger.Info().
		Str("owner_id", ownerID).
		Int("created", report.Created).
		Int("skipped", report.Skipped).
		Int("email_failures", report.EmailFailures).
		Int("failures", report.Failures).
		Msg("invitation dispatch finished")
	return report, nil
}

func (s *Service) dispatchSlot(ctx context.Context, tutor models.Tutor, day int, slot models.TimeSlot, report *DispatchReport) {
	log := s.logger.With().
		Str("tutor_id", tutor.ID).
		Str("student_email", slot.Email).
		Int("day_of_week", day).
		Str("start_time", slot.StartTime).
		Logger()

	minutes, err := models.ParseClock(slot.StartTime)
	if err != nil {
		report.Failures++
		log.Error().Err(err).Msg("invalid start time")
		return
	}

	token, err := s.newToken()
	if err != nil {
		report.Failures++
		log.Error().Err(err).Msg("failed to generate invitation token")
		return
	}

	studentID := strings.TrimSpace(slot.StudentID)
	inv, created, err := s.invitations.InsertIfAbsent(ctx, models.RegularInvitation{
		TokenHash:    hashToken(token),
		TutorID:      tutor.ID,
		StudentEmail: slot.Email,
		StudentID:    &studentID,
		DayOfWeek:    day,
		StartTime:    models.FormatClock(minutes),
		Duration:     slot.Duration,
		Location:     slot.Location,
		Description:  optional(slot.Description),
		Color:        optional(slot.Color),
		Status:       models.InvitationPending,
	})
	if err != nil {
		report.Failures++
		log.Error().Err(err).Msg("failed to store invitation")
		return
	}
	if !created {
		report.Skipped++
		log.Debug().Str("invitation_id", inv.ID).Str("status", string(inv.Status)).Msg("invitation already exists")
		return
	}

	report.Created++
	if !s.sendInvitation(ctx, tutor.Name, inv, token) {
		report.EmailFailures++
	}
}

func (s *Service) sendInvitation(ctx context.Context, tutorName string, inv models.RegularInvitation, token string) bool {
	acceptURL, declineURL := s.responseLinks(token)
	email := notification.InvitationEmail(inv.StudentEmail, notification.SessionFromInvitation(tutorName, inv), acceptURL, declineURL)
	return s.send(ctx, email)
}

func (s *Service) responseLinks(token string) (string, string) {
	base := fmt.Sprintf("%s/invitations/%s", s.baseURL, url.PathEscape(token))
	return base + "?action=accept", base + "?action=decline"
}

// generateToken returns an unguessable URL-safe bearer token.
func generateToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// hashToken is the only form of the token that is persisted.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func optional(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}
