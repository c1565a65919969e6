package scheduling

import (
	"context"

	"github.com/pkg/errors"

	"github.com/stanstork/tutoring-api/internal/models"
	"github.com/stanstork/tutoring-api/internal/repository"
)

// SaveSchedule replaces the owner's weekly schedule and dispatches invitations
// for any new regulars slots. Dispatch problems are logged and reported but do
// not fail the save.
func (s *Service) SaveSchedule(ctx context.Context, ownerID string, days models.WeeklySchedule) (models.Schedule, DispatchReport, error) {
	ownerID, err := requireOwner(ownerID)
	if err != nil {
		return models.Schedule{}, DispatchReport{}, err
	}
	if days == nil {
		return models.Schedule{}, DispatchReport{}, errors.Wrap(ErrInvalidInput, "schedule is required")
	}
	days, err = days.Normalize()
	if err != nil {
		return models.Schedule{}, DispatchReport{}, errors.Wrap(ErrInvalidInput, err.Error())
	}

	saved, err := s.schedules.Upsert(ctx, ownerID, days)
	if err != nil {
		return models.Schedule{}, DispatchReport{}, errors.Wrap(err, "save schedule")
	}

	report, err := s.DispatchInvitations(ctx, ownerID, saved.Days)
	if err != nil {
		s.logger.Error().Err(err).Str("owner_id", ownerID).Msg("invitation dispatch failed after schedule save")
	}
	return saved, report, nil
}

func (s *Service) GetSchedule(ctx context.Context, ownerID string) (models.Schedule, error) {
	ownerID, err := requireOwner(ownerID)
	if err != nil {
		return models.Schedule{}, err
	}
	schedule, err := s.schedules.GetByOwner(ctx, ownerID)
	if err != nil {
		if repository.IsNotFound(err) {
			return models.Schedule{}, ErrNotFound
		}
		return models.Schedule{}, errors.Wrap(err, "load schedule")
	}
	return schedule, nil
}
