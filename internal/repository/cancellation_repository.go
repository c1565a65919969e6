package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/stanstork/tutoring-api/internal/models"
)

type CancellationRepository interface {
	Append(ctx context.Context, invitationID string, date time.Time, reason *string) (models.CancelledRegularSession, error)
	ListDatesByOwner(ctx context.Context, ownerUserID string) ([]models.CancelledDate, error)
}

type cancellationRepository struct {
	db *sql.DB
}

func NewCancellationRepository(db *sql.DB) CancellationRepository {
	return &cancellationRepository{db: db}
}

// Append records one cancelled date. Repeated dates are stored again.
func (r *cancellationRepository) Append(ctx context.Context, invitationID string, date time.Time, reason *string) (models.CancelledRegularSession, error) {
	const query = `
		INSERT INTO tutoring.cancelled_regular_sessions (invitation_id, cancelled_date, reason)
		VALUES ($1, $2, $3)
		RETURNING id, invitation_id, cancelled_date, reason, created_at`

	var (
		session models.CancelledRegularSession
		stored  sql.NullString
	)
	err := r.db.QueryRowContext(ctx, query, invitationID, date.Format(models.DateLayout), nullableString(reason)).Scan(
		&session.ID,
		&session.InvitationID,
		&session.CancelledDate,
		&stored,
		&session.CreatedAt,
	)
	if err != nil {
		return models.CancelledRegularSession{}, err
	}
	session.Reason = stringPtr(stored)
	return session, nil
}

func (r *cancellationRepository) ListDatesByOwner(ctx context.Context, ownerUserID string) ([]models.CancelledDate, error) {
	const query = `
		SELECT c.invitation_id, c.cancelled_date
		FROM tutoring.cancelled_regular_sessions c
		JOIN tutoring.regular_invitations i ON i.id = c.invitation_id
		JOIN tutoring.tutors t ON t.id = i.tutor_id
		WHERE t.user_id = $1
		ORDER BY c.cancelled_date`

	rows, err := r.db.QueryContext(ctx, query, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dates := make([]models.CancelledDate, 0)
	for rows.Next() {
		var d models.CancelledDate
		if err := rows.Scan(&d.InvitationID, &d.CancelledDate); err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return dates, nil
}
