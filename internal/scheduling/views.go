package scheduling

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/stanstork/tutoring-api/internal/models"
)

// ListInvitations returns the owner's invitations. An empty status lists all of them.
func (s *Service) ListInvitations(ctx context.Context, ownerID string, status models.InvitationStatus) ([]models.RegularInvitation, error) {
	ownerID, err := requireOwner(ownerID)
	if err != nil {
		return nil, err
	}
	status = models.InvitationStatus(strings.ToLower(strings.TrimSpace(string(status))))
	if status != "" && !status.IsValid() {
		return nil, errors.Wrapf(ErrInvalidInput, "unknown status %q", status)
	}
	invitations, err := s.invitations.ListByOwner(ctx, ownerID, status)
	if err != nil {
		return nil, errors.Wrap(err, "list invitations")
	}
	return nonNil(invitations), nil
}

func (s *Service) AcceptedRegulars(ctx context.Context, ownerID string) ([]models.RegularInvitation, error) {
	return s.ListInvitations(ctx, ownerID, models.InvitationAccepted)
}

func (s *Service) CancelledDates(ctx context.Context, ownerID string) ([]models.CancelledDate, error) {
	ownerID, err := requireOwner(ownerID)
	if err != nil {
		return nil, err
	}
	dates, err := s.cancellations.ListDatesByOwner(ctx, ownerID)
	if err != nil {
		return nil, errors.Wrap(err, "list cancelled dates")
	}
	if dates == nil {
		dates = []models.CancelledDate{}
	}
	return dates, nil
}

// Timeblocks lists the owner's one-off sessions in [from, to).
func (s *Service) Timeblocks(ctx context.Context, ownerID string, from, to *time.Time) ([]models.Timeblock, error) {
	ownerID, err := requireOwner(ownerID)
	if err != nil {
		return nil, err
	}
	if err := checkWindow(from, to); err != nil {
		return nil, err
	}
	blocks, err := s.timeblocks.ListByOwner(ctx, ownerID, from, to)
	if err != nil {
		return nil, errors.Wrap(err, "list timeblocks")
	}
	if blocks == nil {
		blocks = []models.Timeblock{}
	}
	return blocks, nil
}

func (s *Service) HoursByType(ctx context.Context, from, to *time.Time) ([]models.TutorHoursByType, error) {
	if err := checkWindow(from, to); err != nil {
		return nil, err
	}
	rows, err := s.timeblocks.HoursByType(ctx, from, to)
	if err != nil {
		return nil, errors.Wrap(err, "aggregate hours")
	}
	if rows == nil {
		rows = []models.TutorHoursByType{}
	}
	return rows, nil
}

func (s *Service) HoursSummary(ctx context.Context, from, to *time.Time) ([]models.TutorHoursSummary, error) {
	rows, err := s.HoursByType(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return models.SummarizeHours(rows), nil
}

func checkWindow(from, to *time.Time) error {
	if from != nil && to != nil && !to.After(*from) {
		return errors.Wrap(ErrInvalidInput, "to must be after from")
	}
	return nil
}

func nonNil(invitations []models.RegularInvitation) []models.RegularInvitation {
	if invitations == nil {
		return []models.RegularInvitation{}
	}
	return invitations
}
