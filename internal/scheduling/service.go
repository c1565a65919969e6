// Package scheduling implements weekly schedules and the regular-session
// invitation lifecycle on top of the repositories.
package scheduling

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/stanstork/tutoring-api/internal/models"
	"github.com/stanstork/tutoring-api/internal/notification"
	"github.com/stanstork/tutoring-api/internal/repository"
)

// UserDirectory resolves users by email or id.
type UserDirectory interface {
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	GetUserByID(ctx context.Context, userID string) (models.User, error)
}

type Options struct {
	Schedules     repository.ScheduleRepository
	Invitations   repository.InvitationRepository
	Cancellations repository.CancellationRepository
	Tutors        repository.TutorRepository
	Timeblocks    repository.TimeblockRepository
	Users         UserDirectory
	// Notifier sends student emails.
	Notifier notification.Notifier
	// Inbox receives in-app notices for tutors. Optional.
	Inbox    notification.Service
	BaseURL  string
	Location *time.Location
	Logger   zerolog.Logger
	Now      func() time.Time
}

type Service struct {
	schedules     repository.ScheduleRepository
	invitations   repository.InvitationRepository
	cancellations repository.CancellationRepository
	tutors        repository.TutorRepository
	timeblocks    repository.TimeblockRepository
	users         UserDirectory
	notifier      notification.Notifier
	inbox         notification.Service
	baseURL       string
	location      *time.Location
	logger        zerolog.Logger
	now           func() time.Time
	newToken      func() (string, error)
}

func NewService(opts Options) *Service {
	s := &Service{
		schedules:     opts.Schedules,
		invitations:   opts.Invitations,
		cancellations: opts.Cancellations,
		tutors:        opts.Tutors,
		timeblocks:    opts.Timeblocks,
		users:         opts.Users,
		notifier:      opts.Notifier,
		inbox:         opts.Inbox,
		baseURL:       strings.TrimRight(opts.BaseURL, "/"),
		location:      opts.Location,
		logger:        opts.Logger.With().Str("component", "scheduling").Logger(),
		now:           opts.Now,
		newToken:      generateToken,
	}
	if s.notifier == nil {
		s.notifier = notification.NewLogNotifier(opts.Logger)
	}
	if s.location == nil {
		s.location = time.UTC
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// send delivers email and logs a failure instead of returning it.
func (s *Service) send(ctx context.Context, email notification.Email) bool {
	if err := s.notifier.Notify(ctx, email); err != nil {
		notification.LogDeliveryFailure(s.logger, err, s.notifier, email)
		return false
	}
	return true
}

func requireOwner(ownerID string) (string, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return "", ErrUnauthorized
	}
	return ownerID, nil
}
