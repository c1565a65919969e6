package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/stanstork/tutoring-api/internal/models"
)

type TutorRepository interface {
	GetByID(ctx context.Context, tutorID string) (models.Tutor, error)
	GetByUserID(ctx context.Context, userID string) (models.Tutor, error)
	Activate(ctx context.Context, userID, name, email, color string) (models.Tutor, error)
}

type tutorRepository struct {
	db *sql.DB
}

func NewTutorRepository(db *sql.DB) TutorRepository {
	return &tutorRepository{db: db}
}

const tutorColumns = `id, user_id, name, email, color, activated_at, created_at, updated_at`

func (r *tutorRepository) GetByID(ctx context.Context, tutorID string) (models.Tutor, error) {
	const query = `
		SELECT ` + tutorColumns + `
		FROM tutoring.tutors
		WHERE id = $1`
	return scanTutor(r.db.QueryRowContext(ctx, query, tutorID))
}

func (r *tutorRepository) GetByUserID(ctx context.Context, userID string) (models.Tutor, error) {
	const query = `
		SELECT ` + tutorColumns + `
		FROM tutoring.tutors
		WHERE user_id = $1`
	return scanTutor(r.db.QueryRowContext(ctx, query, userID))
}

// Activate creates the tutor profile for userID or stamps activation on an existing one.
// An already activated profile keeps its original activation time.
func (r *tutorRepository) Activate(ctx context.Context, userID, name, email, color string) (models.Tutor, error) {
	const query = `
		INSERT INTO tutoring.tutors (user_id, name, email, color, activated_at)
		VALUES ($1, $2, $3, COALESCE(NULLIF($4, ''), '#6089CB'), now())
		ON CONFLICT (user_id) DO UPDATE
		SET activated_at = COALESCE(tutoring.tutors.activated_at, now()),
		    updated_at = now()
		RETURNING ` + tutorColumns
	return scanTutor(r.db.QueryRowContext(ctx, query, userID, strings.TrimSpace(name), normalizeEmail(email), strings.TrimSpace(color)))
}

func scanTutor(row scanner) (models.Tutor, error) {
	var (
		tutor       models.Tutor
		activatedAt sql.NullTime
	)
	if err := row.Scan(
		&tutor.ID,
		&tutor.UserID,
		&tutor.Name,
		&tutor.Email,
		&tutor.Color,
		&activatedAt,
		&tutor.CreatedAt,
		&tutor.UpdatedAt,
	); err != nil {
		return models.Tutor{}, err
	}
	if activatedAt.Valid {
		t := activatedAt.Time
		tutor.ActivatedAt = &t
	}
	return tutor, nil
}
