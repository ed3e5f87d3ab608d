package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shaiso/Kadr/internal/domain"
)

// RunRepo — репозиторий для работы с runs.
type RunRepo struct {
	pool *pgxpool.Pool
}

// NewRunRepo создаёт новый RunRepo.
func NewRunRepo(pool *pgxpool.Pool) *RunRepo {
	return &RunRepo{pool: pool}
}

// Create создаёт новый run.
func (r *RunRepo) Create(ctx context.Context, run *domain.Run) error {
	query := `
		INSERT INTO runs (id, pipeline_id, status, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.pool.Exec(ctx, query,
		run.ID,
		nullUUID(&run.PipelineID),
		run.Status,
		run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// GetByID возвращает run по ID.
func (r *RunRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Run, error) {
	query := `
		SELECT id, pipeline_id, status, result, error, started_at, finished_at, created_at
		FROM runs
		WHERE id = $1
	`
	return r.scanRun(r.pool.QueryRow(ctx, query, id))
}

// List возвращает список runs с фильтрацией.
func (r *RunRepo) List(ctx context.Context, filter RunFilter) ([]domain.Run, error) {
	query := `
		SELECT id, pipeline_id, status, result, error, started_at, finished_at, created_at
		FROM runs
		WHERE ($1::uuid IS NULL OR pipeline_id = $1)
		  AND ($2::text IS NULL OR status = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`
	rows, err := r.pool.Query(ctx, query,
		nullUUID(filter.PipelineID),
		nullString(string(filter.Status)),
		filter.Limit,
		filter.Offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.Run
	for rows.Next() {
		run, err := r.scanRunFromRows(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

// Update обновляет статус и результат run.
func (r *RunRepo) Update(ctx context.Context, run *domain.Run) error {
	var resultJSON []byte
	if run.Result != nil {
		var err error
		resultJSON, err = json.Marshal(run.Result)
		if err != nil {
			return fmt.Errorf("marshal result: %w", err)
		}
	}

	query := `
		UPDATE runs
		SET status = $2, result = $3, error = $4, started_at = $5, finished_at = $6
		WHERE id = $1
	`
	result, err := r.pool.Exec(ctx, query,
		run.ID,
		run.Status,
		resultJSON,
		nullString(run.Error),
		run.StartedAt,
		run.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("update run: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListPending возвращает runs в статусе PENDING (poll-фоллбек воркера).
func (r *RunRepo) ListPending(ctx context.Context, limit int) ([]domain.Run, error) {
	query := `
		SELECT id, pipeline_id, status, result, error, started_at, finished_at, created_at
		FROM runs
		WHERE status = 'PENDING'
		ORDER BY created_at ASC
		LIMIT $1
	`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list pending runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.Run
	for rows.Next() {
		run, err := r.scanRunFromRows(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

// --- Helpers ---

// RunFilter — параметры фильтрации runs.
type RunFilter struct {
	PipelineID *uuid.UUID
	Status     domain.RunStatus
	Limit      int
	Offset     int
}

// scanRun сканирует одну строку в Run.
func (r *RunRepo) scanRun(row pgx.Row) (*domain.Run, error) {
	var run domain.Run
	var pipelineID *uuid.UUID
	var resultJSON []byte
	var runError *string

	err := row.Scan(
		&run.ID,
		&pipelineID,
		&run.Status,
		&resultJSON,
		&runError,
		&run.StartedAt,
		&run.FinishedAt,
		&run.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan run: %w", err)
	}

	if pipelineID != nil {
		run.PipelineID = *pipelineID
	}
	if resultJSON != nil {
		if err := json.Unmarshal(resultJSON, &run.Result); err != nil {
			return nil, fmt.Errorf("unmarshal result: %w", err)
		}
	}
	if runError != nil {
		run.Error = *runError
	}

	return &run, nil
}

// scanRunFromRows сканирует строку из rows в Run.
func (r *RunRepo) scanRunFromRows(rows pgx.Rows) (*domain.Run, error) {
	var run domain.Run
	var pipelineID *uuid.UUID
	var resultJSON []byte
	var runError *string

	err := rows.Scan(
		&run.ID,
		&pipelineID,
		&run.Status,
		&resultJSON,
		&runError,
		&run.StartedAt,
		&run.FinishedAt,
		&run.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scan run: %w", err)
	}

	if pipelineID != nil {
		run.PipelineID = *pipelineID
	}
	if resultJSON != nil {
		if err := json.Unmarshal(resultJSON, &run.Result); err != nil {
			return nil, fmt.Errorf("unmarshal result: %w", err)
		}
	}
	if runError != nil {
		run.Error = *runError
	}

	return &run, nil
}

// nullString возвращает nil для пустой строки (для NULL в БД).
func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// nullUUID возвращает nil для пустого UUID.
func nullUUID(id *uuid.UUID) *uuid.UUID {
	if id == nil || *id == uuid.Nil {
		return nil
	}
	return id
}
