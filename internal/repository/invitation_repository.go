package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/stanstork/tutoring-api/internal/models"
)

type InvitationRepository interface {
	// InsertIfAbsent stores inv as pending unless its natural key is already taken.
	// It returns the stored row and whether it was created by this call.
	InsertIfAbsent(ctx context.Context, inv models.RegularInvitation) (models.RegularInvitation, bool, error)
	GetByTokenHash(ctx context.Context, tokenHash string) (models.RegularInvitation, error)
	GetOwned(ctx context.Context, invitationID, ownerUserID string) (models.OwnedInvitation, error)
	// TransitionStatus moves the invitation from one status to another.
	// sql.ErrNoRows is returned when the row is no longer in status from.
	TransitionStatus(ctx context.Context, invitationID string, from, to models.InvitationStatus, studentID *string) (models.RegularInvitation, error)
	RotateToken(ctx context.Context, invitationID, tokenHash string) (models.RegularInvitation, error)
	ListByOwner(ctx context.Context, ownerUserID string, status models.InvitationStatus) ([]models.RegularInvitation, error)
}

type invitationRepository struct {
	db *sql.DB
}

func NewInvitationRepository(db *sql.DB) InvitationRepository {
	return &invitationRepository{db: db}
}

const invitationColumns = `id, token_hash, tutor_id, student_email, student_id, day_of_week, start_time,
	duration, location, description, color, status, created_at, updated_at`

func (r *invitationRepository) InsertIfAbsent(ctx context.Context, inv models.RegularInvitation) (models.RegularInvitation, bool, error) {
	const insert = `
		INSERT INTO tutoring.regular_invitations
			(token_hash, tutor_id, student_email, student_id, day_of_week, start_time, duration, location, description, color, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 'pending')
		ON CONFLICT (tutor_id, student_email, day_of_week, start_time) DO NOTHING
		RETURNING ` + invitationColumns

	email := normalizeEmail(inv.StudentEmail)
	row := r.db.QueryRowContext(ctx, insert,
		inv.TokenHash,
		inv.TutorID,
		email,
		nullableString(inv.StudentID),
		inv.DayOfWeek,
		inv.StartTime,
		inv.Duration,
		inv.Location,
		nullableString(inv.Description),
		nullableString(inv.Color),
	)
	created, err := scanInvitation(row)
	if err == nil {
		return created, true, nil
	}
	if !IsNotFound(err) {
		return models.RegularInvitation{}, false, err
	}

	const existing = `
		SELECT ` + invitationColumns + `
		FROM tutoring.regular_invitations
		WHERE tutor_id = $1 AND student_email = $2 AND day_of_week = $3 AND start_time = $4`
	found, err := scanInvitation(r.db.QueryRowContext(ctx, existing, inv.TutorID, email, inv.DayOfWeek, inv.StartTime))
	if err != nil {
		return models.RegularInvitation{}, false, err
	}
	return found, false, nil
}

func (r *invitationRepository) GetByTokenHash(ctx context.Context, tokenHash string) (models.RegularInvitation, error) {
	const query = `
		SELECT ` + invitationColumns + `
		FROM tutoring.regular_invitations
		WHERE token_hash = $1`
	return scanInvitation(r.db.QueryRowContext(ctx, query, tokenHash))
}

// GetOwned returns the invitation only when its tutor belongs to ownerUserID.
func (r *invitationRepository) GetOwned(ctx context.Context, invitationID, ownerUserID string) (models.OwnedInvitation, error) {
	const query = `
		SELECT i.id, i.token_hash, i.tutor_id, i.student_email, i.student_id, i.day_of_week, i.start_time,
			i.duration, i.location, i.description, i.color, i.status, i.created_at, i.updated_at,
			t.name, t.user_id
		FROM tutoring.regular_invitations i
		JOIN tutoring.tutors t ON t.id = i.tutor_id
		WHERE i.id = $1 AND t.user_id = $2`

	var owned models.OwnedInvitation
	inv, err := scanInvitationWith(r.db.QueryRowContext(ctx, query, strings.TrimSpace(invitationID), ownerUserID), &owned.TutorName, &owned.TutorUserID)
	if err != nil {
		return models.OwnedInvitation{}, err
	}
	owned.RegularInvitation = inv
	return owned, nil
}

func (r *invitationRepository) TransitionStatus(ctx context.Context, invitationID string, from, to models.InvitationStatus, studentID *string) (models.RegularInvitation, error) {
	const query = `
		UPDATE tutoring.regular_invitations
		SET status = $3,
		    student_id = COALESCE($4, student_id),
		    updated_at = now()
		WHERE id = $1 AND status = $2
		RETURNING ` + invitationColumns
	return scanInvitation(r.db.QueryRowContext(ctx, query, invitationID, from, to, nullableString(studentID)))
}

// RotateToken replaces the token hash of a pending invitation.
func (r *invitationRepository) RotateToken(ctx context.Context, invitationID, tokenHash string) (models.RegularInvitation, error) {
	const query = `
		UPDATE tutoring.regular_invitations
		SET token_hash = $2, updated_at = now()
		WHERE id = $1 AND status = 'pending'
		RETURNING ` + invitationColumns
	return scanInvitation(r.db.QueryRowContext(ctx, query, invitationID, tokenHash))
}

// ListByOwner returns the owner's invitations ordered by weekday and start time.
// An empty status returns every status.
func (r *invitationRepository) ListByOwner(ctx context.Context, ownerUserID string, status models.InvitationStatus) ([]models.RegularInvitation, error) {
	const query = `
		SELECT i.id, i.token_hash, i.tutor_id, i.student_email, i.student_id, i.day_of_week, i.start_time,
			i.duration, i.location, i.description, i.color, i.status, i.created_at, i.updated_at
		FROM tutoring.regular_invitations i
		JOIN tutoring.tutors t ON t.id = i.tutor_id
		WHERE t.user_id = $1 AND ($2 = '' OR i.status = $2)
		ORDER BY i.day_of_week, i.start_time, i.student_email`

	rows, err := r.db.QueryContext(ctx, query, ownerUserID, string(status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	invitations := make([]models.RegularInvitation, 0)
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			return nil, err
		}
		invitations = append(invitations, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return invitations, nil
}

func scanInvitation(row scanner) (models.RegularInvitation, error) {
	return scanInvitationWith(row)
}

func scanInvitationWith(row scanner, extra ...interface{}) (models.RegularInvitation, error) {
	var (
		inv         models.RegularInvitation
		studentID   sql.NullString
		description sql.NullString
		color       sql.NullString
	)
	dest := []interface{}{
		&inv.ID,
		&inv.TokenHash,
		&inv.TutorID,
		&inv.StudentEmail,
		&studentID,
		&inv.DayOfWeek,
		&inv.StartTime,
		&inv.Duration,
		&inv.Location,
		&description,
		&color,
		&inv.Status,
		&inv.CreatedAt,
		&inv.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return models.RegularInvitation{}, err
	}
	inv.StudentID = stringPtr(studentID)
	inv.Description = stringPtr(description)
	inv.Color = stringPtr(color)
	return inv, nil
}
