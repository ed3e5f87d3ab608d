package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shaiso/Kadr/internal/domain"
)

// ScheduleRepo — репозиторий для работы с schedules.
type ScheduleRepo struct {
	pool *pgxpool.Pool
}

// NewScheduleRepo создаёт новый ScheduleRepo.
func NewScheduleRepo(pool *pgxpool.Pool) *ScheduleRepo {
	return &ScheduleRepo{pool: pool}
}

// Create создаёт новый schedule.
func (r *ScheduleRepo) Create(ctx context.Context, s *domain.Schedule) error {
	query := `
		INSERT INTO schedules (id, pipeline_id, name, cron_expr, enabled, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.pool.Exec(ctx, query,
		s.ID,
		s.PipelineID,
		nullString(s.Name),
		s.CronExpr,
		s.Enabled,
		s.CreatedAt,
		s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert schedule: %w", err)
	}
	return nil
}

// GetByID возвращает schedule по ID.
func (r *ScheduleRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Schedule, error) {
	query := `
		SELECT id, pipeline_id, name, cron_expr, enabled, last_run_at, last_run_id,
		       created_at, updated_at
		FROM schedules
		WHERE id = $1
	`
	return r.scanSchedule(r.pool.QueryRow(ctx, query, id))
}

// List возвращает список schedules.
func (r *ScheduleRepo) List(ctx context.Context) ([]domain.Schedule, error) {
	query := `
		SELECT id, pipeline_id, name, cron_expr, enabled, last_run_at, last_run_id,
		       created_at, updated_at
		FROM schedules
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	defer rows.Close()

	var schedules []domain.Schedule
	for rows.Next() {
		s, err := r.scanScheduleFromRows(rows)
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, *s)
	}
	return schedules, rows.Err()
}

// ListEnabled возвращает включённые schedules.
func (r *ScheduleRepo) ListEnabled(ctx context.Context) ([]domain.Schedule, error) {
	query := `
		SELECT id, pipeline_id, name, cron_expr, enabled, last_run_at, last_run_id,
		       created_at, updated_at
		FROM schedules
		WHERE enabled = true
		ORDER BY created_at ASC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list enabled schedules: %w", err)
	}
	defer rows.Close()

	var schedules []domain.Schedule
	for rows.Next() {
		s, err := r.scanScheduleFromRows(rows)
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, *s)
	}
	return schedules, rows.Err()
}

// MarkTriggered записывает факт запуска по расписанию.
func (r *ScheduleRepo) MarkTriggered(ctx context.Context, id, runID uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `
		UPDATE schedules
		SET last_run_at = NOW(), last_run_id = $2, updated_at = NOW()
		WHERE id = $1
	`, id, runID)
	if err != nil {
		return fmt.Errorf("mark schedule triggered: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetEnabled включает/выключает schedule.
func (r *ScheduleRepo) SetEnabled(ctx context.Context, id uuid.UUID, enabled bool) error {
	result, err := r.pool.Exec(ctx, `
		UPDATE schedules SET enabled = $2, updated_at = NOW() WHERE id = $1
	`, id, enabled)
	if err != nil {
		return fmt.Errorf("set enabled: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete удаляет schedule.
func (r *ScheduleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM schedules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete schedule: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Helpers ---

func (r *ScheduleRepo) scanSchedule(row pgx.Row) (*domain.Schedule, error) {
	var s domain.Schedule
	var name *string

	err := row.Scan(
		&s.ID,
		&s.PipelineID,
		&name,
		&s.CronExpr,
		&s.Enabled,
		&s.LastRunAt,
		&s.LastRunID,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan schedule: %w", err)
	}

	if name != nil {
		s.Name = *name
	}
	return &s, nil
}

func (r *ScheduleRepo) scanScheduleFromRows(rows pgx.Rows) (*domain.Schedule, error) {
	var s domain.Schedule
	var name *string

	err := rows.Scan(
		&s.ID,
		&s.PipelineID,
		&name,
		&s.CronExpr,
		&s.Enabled,
		&s.LastRunAt,
		&s.LastRunID,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scan schedule: %w", err)
	}

	if name != nil {
		s.Name = *name
	}
	return &s, nil
}
