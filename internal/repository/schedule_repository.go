package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/stanstork/tutoring-api/internal/models"
)

type ScheduleRepository interface {
	Upsert(ctx context.Context, ownerID string, days models.WeeklySchedule) (models.Schedule, error)
	GetByOwner(ctx context.Context, ownerID string) (models.Schedule, error)
}

type scheduleRepository struct {
	db *sql.DB
}

func NewScheduleRepository(db *sql.DB) ScheduleRepository {
	return &scheduleRepository{db: db}
}

// Upsert replaces the owner's document, keeping one row per owner.
func (r *scheduleRepository) Upsert(ctx context.Context, ownerID string, days models.WeeklySchedule) (models.Schedule, error) {
	payload, err := json.Marshal(days)
	if err != nil {
		return models.Schedule{}, fmt.Errorf("marshal schedule: %w", err)
	}

	const query = `
		INSERT INTO tutoring.schedules (owner_id, schedule)
		VALUES ($1, $2)
		ON CONFLICT (owner_id) DO UPDATE
		SET schedule = EXCLUDED.schedule, updated_at = now()
		RETURNING id, owner_id, schedule, created_at, updated_at`
	return scanSchedule(r.db.QueryRowContext(ctx, query, ownerID, payload))
}

func (r *scheduleRepository) GetByOwner(ctx context.Context, ownerID string) (models.Schedule, error) {
	const query = `
		SELECT id, owner_id, schedule, created_at, updated_at
		FROM tutoring.schedules
		WHERE owner_id = $1
		ORDER BY updated_at DESC
		LIMIT 1`
	return scanSchedule(r.db.QueryRowContext(ctx, query, ownerID))
}

func scanSchedule(row scanner) (models.Schedule, error) {
	var (
		schedule models.Schedule
		raw      []byte
	)
	if err := row.Scan(&schedule.ID, &schedule.OwnerID, &raw, &schedule.CreatedAt, &schedule.UpdatedAt); err != nil {
		return models.Schedule{}, err
	}
	if err := json.Unmarshal(raw, &schedule.Days); err != nil {
		return models.Schedule{}, fmt.Errorf("decode schedule %s: %w", schedule.ID, err)
	}
	if schedule.Days == nil {
		schedule.Days = models.WeeklySchedule{}
	}
	return schedule, nil
}
