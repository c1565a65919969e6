package scheduling

import (
	"context"

	"github.com/pkg/errors"

	"github.com/stanstork/tutoring-api/internal/models"
	"github.com/stanstork/tutoring-api/internal/repository"
)

func (s *Service) TutorProfile(ctx context.Context, userID string) (models.Tutor, error) {
	userID, err := requireOwner(userID)
	if err != nil {
		return models.Tutor{}, err
	}
	tutor, err := s.tutors.GetByUserID(ctx, userID)
	if err != nil {
		if repository.IsNotFound(err) {
			return models.Tutor{}, ErrNotFound
		}
		return models.Tutor{}, errors.Wrap(err, "load tutor profile")
	}
	return tutor, nil
}

// ActivateTutor creates the caller's tutor profile. Repeated calls return the existing profile.
func (s *Service) ActivateTutor(ctx context.Context, userID, color string) (models.Tutor, error) {
	userID, err := requireOwner(userID)
	if err != nil {
		return models.Tutor{}, err
	}
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if repository.IsNotFound(err) {
			return models.Tutor{}, ErrUnauthorized
		}
		return models.Tutor{}, errors.Wrap(err, "load user")
	}

	tutor, err := s.tutors.Activate(ctx, user.ID, user.FullName(), user.Email, color)
	if err != nil {
		return models.Tutor{}, errors.Wrap(err, "activate tutor")
	}
	s.logger.Info().Str("user_id", user.ID).Str("tutor_id", tutor.ID).Msg("tutor profile activated")
	return tutor, nil
}
