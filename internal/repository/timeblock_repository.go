package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/stanstork/tutoring-api/internal/models"
)

type TimeblockRepository interface {
	ListByOwner(ctx context.Context, ownerUserID string, from, to *time.Time) ([]models.Timeblock, error)
	HoursByType(ctx context.Context, from, to *time.Time) ([]models.TutorHoursByType, error)
}

type timeblockRepository struct {
	db *sql.DB
}

func NewTimeblockRepository(db *sql.DB) TimeblockRepository {
	return &timeblockRepository{db: db}
}

func (r *timeblockRepository) ListByOwner(ctx context.Context, ownerUserID string, from, to *time.Time) ([]models.Timeblock, error) {
	const query = `
		SELECT b.id, b.tutor_id, b.start_time, b.duration, b.status, b.session_type, b.location, b.student_id
		FROM tutoring.timeblocks b
		JOIN tutoring.tutors t ON t.id = b.tutor_id
		WHERE t.user_id = $1
		  AND ($2::timestamptz IS NULL OR b.start_time >= $2)
		  AND ($3::timestamptz IS NULL OR b.start_time < $3)
		ORDER BY b.start_time`

	rows, err := r.db.QueryContext(ctx, query, ownerUserID, nullableTime(from), nullableTime(to))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	blocks := make([]models.Timeblock, 0)
	for rows.Next() {
		var (
			block     models.Timeblock
			studentID sql.NullString
		)
		if err := rows.Scan(
			&block.ID,
			&block.TutorID,
			&block.StartTime,
			&block.Duration,
			&block.Status,
			&block.SessionType,
			&block.Location,
			&studentID,
		); err != nil {
			return nil, err
		}
		block.StudentID = stringPtr(studentID)
		blocks = append(blocks, block)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return blocks, nil
}

// HoursByType sums durations per tutor and session type.
// Cancelled and still-available blocks are not counted.
func (r *timeblockRepository) HoursByType(ctx context.Context, from, to *time.Time) ([]models.TutorHoursByType, error) {
	const query = `
		SELECT t.id, t.name, t.email, t.color, b.session_type,
			COALESCE(SUM(b.duration), 0) AS total_minutes,
			COUNT(b.id) AS session_count
		FROM tutoring.timeblocks b
		JOIN tutoring.tutors t ON t.id = b.tutor_id
		WHERE b.status NOT IN ('cancelled', 'available')
		  AND ($1::timestamptz IS NULL OR b.start_time >= $1)
		  AND ($2::timestamptz IS NULL OR b.start_time < $2)
		GROUP BY t.id, t.name, t.email, t.color, b.session_type
		ORDER BY t.name, b.session_type`

	rows, err := r.db.QueryContext(ctx, query, nullableTime(from), nullableTime(to))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]models.TutorHoursByType, 0)
	for rows.Next() {
		var row models.TutorHoursByType
		if err := rows.Scan(
			&row.TutorID,
			&row.TutorName,
			&row.TutorEmail,
			&row.TutorColor,
			&row.SessionType,
			&row.TotalMinutes,
			&row.SessionCount,
		); err != nil {
			return nil, err
		}
		row.TotalHours = models.HoursFromMinutes(row.TotalMinutes)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func nullableTime(t *time.Time) interface{} {
	if t == nil || t.IsZero() {
		return nil
	}
	return t.UTC()
}
