package scheduling

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/stanstork/tutoring-api/internal/models"
	"github.com/stanstork/tutoring-api/internal/repository"
)

type ResponseAction string

const (
	ActionAccept  ResponseAction = "accept"
	ActionDecline ResponseAction = "decline"
)

// ParseAction accepts only "accept" and "decline".
func ParseAction(raw string) (ResponseAction, error) {
	switch action := ResponseAction(strings.TrimSpace(raw)); action {
	case ActionAccept, ActionDecline:
		return action, nil
	}
	return "", errors.Wrapf(ErrInvalidInput, "action %q", raw)
}

func (a ResponseAction) target() models.InvitationStatus {
	if a == ActionAccept {
		return models.InvitationAccepted
	}
	return models.InvitationDeclined
}

// ResponseResult is the invitation after a response attempt.
// AlreadyResponded is set when nothing was changed because the invitation had left pending.
type ResponseResult struct {
	Invitation       models.RegularInvitation
	AlreadyResponded bool
}

// RespondToInvitation applies a student's answer to the invitation owning token.
// Only a pending invitation is changed; every later call reports the current status.
func (s *Service) RespondToInvitation(ctx context.Context, token string, action ResponseAction) (ResponseResult, error) {
	if action != ActionAccept && action != ActionDecline {
		return ResponseResult{}, errors.Wrapf(ErrInvalidInput, "action %q", action)
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return ResponseResult{}, ErrNotFound
	}

	hash := hashToken(token)
	inv, err := s.invitations.GetByTokenHash(ctx, hash)
	if err != nil {
		if repository.IsNotFound(err) {
			return ResponseResult{}, ErrNotFound
		}
		return ResponseResult{}, errors.Wrap(err, "load invitation")
	}
	if inv.Status != models.InvitationPending {
		return ResponseResult{Invitation: inv, AlreadyResponded: true}, nil
	}

	target, err := inv.Status.Transition(action.target())
	if err != nil {
		return ResponseResult{}, err
	}

	var studentID *string
	if action == ActionAccept {
		studentID = s.resolveStudent(ctx, inv.StudentEmail)
	}

	updated, err := s.invitations.TransitionStatus(ctx, inv.ID, models.InvitationPending, target, studentID)
	if err != nil {
		if !repository.IsNotFound(err) {
			return ResponseResult{}, errors.Wrap(err, "update invitation status")
		}
		// Another request answered first.
		current, err := s.invitations.GetByTokenHash(ctx, hash)
		if err != nil {
			return ResponseResult{}, errors.Wrap(err, "reload invitation")
		}
		return ResponseResult{Invitation: current, AlreadyResponded: true}, nil
	}

	s.logger.Info().
		Str("invitation_id", updated.ID).
		Str("status", string(updated.Status)).
		Msg("invitation responded")
	s.notifyTutor(ctx, updated)
	return ResponseResult{Invitation: updated}, nil
}

// resolveStudent looks up the student's user id by email. Misses and errors yield nil.
func (s *Service) resolveStudent(ctx context.Context, email string) *string {
	if s.users == nil {
		return nil
	}
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if !repository.IsNotFound(err) {
			s.logger.Warn().Err(err).Str("student_email", email).Msg("student lookup failed")
		}
		return nil
	}
	id := user.ID
	return &id
}

func (s *Service) notifyTutor(ctx context.Context, inv models.RegularInvitation) {
	if s.inbox == nil {
		return
	}
	tutor, err := s.tutors.GetByID(ctx, inv.TutorID)
	if err != nil {
		s.logger.Warn().Err(err).Str("tutor_id", inv.TutorID).Msg("failed to load tutor for in-app notification")
		return
	}
	if err := s.inbox.NotifyInvitationResponded(ctx, tutor.UserID, inv); err != nil {
		s.logger.Warn().Err(err).Str("invitation_id", inv.ID).Msg("failed to publish in-app notification")
	}
}
