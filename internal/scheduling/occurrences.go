package scheduling

import (
	"context"
	"sort"
	"time"

	"github.com/pkg/errors"

	"github.com/stanstork/tutoring-api/internal/models"
)

const (
	DefaultOccurrenceDays = 14
	MaxOccurrenceDays     = 62
)

// UpcomingOccurrences expands the owner's accepted regulars into dated
// occurrences over [from, from+days). Dates in the cancellation ledger are
// marked cancelled; duplicate ledger rows collapse into one flag.
func (s *Service) UpcomingOccurrences(ctx context.Context, ownerID string, from time.Time, days int) ([]models.Occurrence, error) {
	if days == 0 {
		days = DefaultOccurrenceDays
	}
	if days < 1 || days > MaxOccurrenceDays {
		return nil, errors.Wrapf(ErrInvalidInput, "days must be between 1 and %d", MaxOccurrenceDays)
	}
	if from.IsZero() {
		from = s.now()
	}

	accepted, err := s.AcceptedRegulars(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	cancelled, err := s.CancelledDates(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	type dateKey struct {
		invitationID string
		date         string
	}
	skipped := make(map[dateKey]struct{}, len(cancelled))
	for _, c := range cancelled {
		skipped[dateKey{c.InvitationID, c.CancelledDate.Format(models.DateLayout)}] = struct{}{}
	}

	from = from.In(s.location)
	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, s.location)

	occurrences := make([]models.Occurrence, 0)
	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i)
		for _, inv := range accepted {
			if inv.DayOfWeek != int(day.Weekday()) {
				continue
			}
			minutes, err := models.ParseClock(inv.StartTime)
			if err != nil {
				s.logger.Warn().Err(err).Str("invitation_id", inv.ID).Msg("skipping invitation with invalid start time")
				continue
			}
			_, cancelledOn := skipped[dateKey{inv.ID, day.Format(models.DateLayout)}]
			occurrences = append(occurrences, models.Occurrence{
				InvitationID: inv.ID,
				StudentEmail: inv.StudentEmail,
				StudentID:    inv.StudentID,
				Date:         day,
				StartsAt:     time.Date(day.Year(), day.Month(), day.Day(), minutes/60, minutes%60, 0, 0, s.location),
				Duration:     inv.Duration,
				Location:     inv.Location,
				Color:        inv.Color,
				Cancelled:    cancelledOn,
			})
		}
	}

	sort.SliceStable(occurrences, func(a, b int) bool {
		if !occurrences[a].StartsAt.Equal(occurrences[b].StartsAt) {
			return occurrences[a].StartsAt.Before(occurrences[b].StartsAt)
		}
		return occurrences[a].StudentEmail < occurrences[b].StudentEmail
	})
	return occurrences, nil
}
