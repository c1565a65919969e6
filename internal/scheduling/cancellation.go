package scheduling

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/stanstork/tutoring-api/internal/models"
	"github.com/stanstork/tutoring-api/internal/notification"
	"github.com/stanstork/tutoring-api/internal/repository"
)

// loadOwned returns ErrNotFound both for unknown ids and for invitations of another tutor.
func (s *Service) loadOwned(ctx context.Context, ownerID, invitationID string) (models.OwnedInvitation, error) {
	ownerID, err := requireOwner(ownerID)
	if err != nil {
		return models.OwnedInvitation{}, err
	}
	invitationID = strings.TrimSpace(invitationID)
	if invitationID == "" {
		return models.OwnedInvitation{}, ErrNotFound
	}
	owned, err := s.invitations.GetOwned(ctx, invitationID, ownerID)
	if err != nil {
		if repository.IsNotFound(err) {
			return models.OwnedInvitation{}, ErrNotFound
		}
		return models.OwnedInvitation{}, errors.Wrap(err, "load invitation")
	}
	return owned, nil
}

// CancelOccurrence suppresses one dated occurrence of a recurring session and
// notifies the student. The invitation status is left as it is.
func (s *Service) CancelOccurrence(ctx context.Context, ownerID, invitationID string, date time.Time, reason *string) (models.CancelledRegularSession, error) {
	owned, err := s.loadOwned(ctx, ownerID, invitationID)
	if err != nil {
		return models.CancelledRegularSession{}, err
	}
	if date.IsZero() {
		return models.CancelledRegularSession{}, errors.Wrap(ErrInvalidInput, "date is required")
	}
	if owned.Status == models.InvitationRemoved {
		return models.CancelledRegularSession{}, errors.Wrapf(models.ErrIllegalTransition, "invitation %s is removed", owned.ID)
	}

	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	entry, err := s.cancellations.Append(ctx, owned.ID, day, optionalPtr(reason))
	if err != nil {
		return models.CancelledRegularSession{}, errors.Wrap(err, "record cancellation")
	}

	s.logger.Info().
		Str("invitation_id", owned.ID).
		Str("cancelled_date", day.Format(models.DateLayout)).
		Msg("regular session occurrence cancelled")

	session := notification.SessionFromInvitation(owned.TutorName, owned.RegularInvitation)
	s.send(ctx, notification.SessionCancelledEmail(owned.StudentEmail, session, day, entry.Reason))
	return entry, nil
}

// RemoveSchedule discontinues a recurring session. Removed is terminal.
func (s *Service) RemoveSchedule(ctx context.Context, ownerID, invitationID string) (models.RegularInvitation, error) {
	owned, err := s.loadOwned(ctx, ownerID, invitationID)
	if err != nil {
		return models.RegularInvitation{}, err
	}

	var removed models.RegularInvitation
	for attempt := 0; ; attempt++ {
		target, err := owned.Status.Transition(models.InvitationRemoved)
		if err != nil {
			return models.RegularInvitation{}, err
		}
		removed, err = s.invitations.TransitionStatus(ctx, owned.ID, owned.Status, target, nil)
		if err == nil {
			break
		}
		if !repository.IsNotFound(err) || attempt > 0 {
			return models.RegularInvitation{}, errors.Wrap(err, "remove invitation")
		}
		// The student answered in between; retry from the new status.
		if owned, err = s.loadOwned(ctx, ownerID, invitationID); err != nil {
			return models.RegularInvitation{}, err
		}
	}

	s.logger.Info().Str("invitation_id", removed.ID).Msg("regular session removed")

	session := notification.SessionFromInvitation(owned.TutorName, removed)
	s.send(ctx, notification.ScheduleRemovedEmail(removed.StudentEmail, session))
	return removed, nil
}

// ResendInvitation issues a fresh token for a pending invitation and emails it again.
// Unlike the other operations a delivery failure is returned to the caller.
func (s *Service) ResendInvitation(ctx context.Context, ownerID, invitationID string) (models.RegularInvitation, error) {
	owned, err := s.loadOwned(ctx, ownerID, invitationID)
	if err != nil {
		return models.RegularInvitation{}, err
	}
	if owned.Status != models.InvitationPending {
		return models.RegularInvitation{}, errors.Wrapf(models.ErrIllegalTransition, "invitation %s is %s", owned.ID, owned.Status)
	}

	token, err := s.newToken()
	if err != nil {
		return models.RegularInvitation{}, errors.Wrap(err, "generate token")
	}
	rotated, err := s.invitations.RotateToken(ctx, owned.ID, hashToken(token))
	if err != nil {
		if repository.IsNotFound(err) {
			return models.RegularInvitation{}, errors.Wrapf(models.ErrIllegalTransition, "invitation %s is no longer pending", owned.ID)
		}
		return models.RegularInvitation{}, errors.Wrap(err, "rotate token")
	}

	acceptURL, declineURL := s.responseLinks(token)
	email := notification.InvitationEmail(rotated.StudentEmail, notification.SessionFromInvitation(owned.TutorName, rotated), acceptURL, declineURL)
	if err := s.notifier.Notify(ctx, email); err != nil {
		notification.LogDeliveryFailure(s.logger, err, s.notifier, email)
		return rotated, errors.Wrap(ErrDeliveryFailed, err.Error())
	}
	return rotated, nil
}

func optionalPtr(value *string) *string {
	if value == nil {
		return nil
	}
	return optional(*value)
}
