package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shaiso/Kadr/internal/domain"
)

// PipelineRepo — репозиторий для работы с pipelines.
//
// Граф хранится целиком в колонке JSONB: редактор работает
// с графом как с единым документом, построчная нормализация
// узлов и рёбер не нужна.
type PipelineRepo struct {
	pool *pgxpool.Pool
}

// NewPipelineRepo создаёт новый PipelineRepo.
func NewPipelineRepo(pool *pgxpool.Pool) *PipelineRepo {
	return &PipelineRepo{pool: pool}
}

// Create создаёт новый pipeline.
func (r *PipelineRepo) Create(ctx context.Context, p *domain.PipelineRecord) error {
	graphJSON, err := json.Marshal(p.Graph)
	if err != nil {
		return fmt.Errorf("marshal graph: %w", err)
	}

	query := `
		INSERT INTO pipelines (id, name, graph, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err = r.pool.Exec(ctx, query,
		p.ID,
		p.Name,
		graphJSON,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return ErrAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("insert pipeline: %w", err)
	}
	return nil
}

// GetByID возвращает pipeline по ID.
func (r *PipelineRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.PipelineRecord, error) {
	query := `
		SELECT id, name, graph, created_at, updated_at
		FROM pipelines
		WHERE id = $1
	`
	return r.scanPipeline(r.pool.QueryRow(ctx, query, id))
}

// GetByName возвращает pipeline по имени.
func (r *PipelineRepo) GetByName(ctx context.Context, name string) (*domain.PipelineRecord, error) {
	query := `
		SELECT id, name, graph, created_at, updated_at
		FROM pipelines
		WHERE name = $1
	`
	return r.scanPipeline(r.pool.QueryRow(ctx, query, name))
}

// List возвращает список всех pipelines.
func (r *PipelineRepo) List(ctx context.Context) ([]domain.PipelineRecord, error) {
	query := `
		SELECT id, name, graph, created_at, updated_at
		FROM pipelines
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list pipelines: %w", err)
	}
	defer rows.Close()

	var pipelines []domain.PipelineRecord
	for rows.Next() {
		var p domain.PipelineRecord
		var graphJSON []byte
		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&graphJSON,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan pipeline: %w", err)
		}

		if err := json.Unmarshal(graphJSON, &p.Graph); err != nil {
			return nil, fmt.Errorf("unmarshal graph: %w", err)
		}

		pipelines = append(pipelines, p)
	}
	return pipelines, rows.Err()
}

// UpdateGraph сохраняет новое состояние графа.
func (r *PipelineRepo) UpdateGraph(ctx context.Context, id uuid.UUID, graph domain.Pipeline) error {
	graphJSON, err := json.Marshal(graph)
	if err != nil {
		return fmt.Errorf("marshal graph: %w", err)
	}

	query := `
		UPDATE pipelines
		SET graph = $2, updated_at = NOW()
		WHERE id = $1
	`
	result, err := r.pool.Exec(ctx, query, id, graphJSON)
	if err != nil {
		return fmt.Errorf("update pipeline graph: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Rename переименовывает pipeline.
func (r *PipelineRepo) Rename(ctx context.Context, id uuid.UUID, name string) error {
	result, err := r.pool.Exec(ctx, `
		UPDATE pipelines SET name = $2, updated_at = NOW() WHERE id = $1
	`, id, name)
	if isUniqueViolation(err) {
		return ErrAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("rename pipeline: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete удаляет pipeline (каскадно удалит runs и schedules).
func (r *PipelineRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM pipelines WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete pipeline: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Helpers ---

func (r *PipelineRepo) scanPipeline(row pgx.Row) (*domain.PipelineRecord, error) {
	var p domain.PipelineRecord
	var graphJSON []byte

	err := row.Scan(
		&p.ID,
		&p.Name,
		&graphJSON,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan pipeline: %w", err)
	}

	if err := json.Unmarshal(graphJSON, &p.Graph); err != nil {
		return nil, fmt.Errorf("unmarshal graph: %w", err)
	}

	return &p, nil
}

// isUniqueViolation проверяет нарушение уникальности (код 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
