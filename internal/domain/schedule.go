package domain

import (
	"time"

	"github.com/google/uuid"
)

// Schedule — расписание автоматического запуска сохранённого пайплайна.
//
// Scheduler периодически создаёт run для каждого включённого
// расписания согласно cron-выражению.
type Schedule struct {
	// ID — уникальный идентификатор расписания.
	ID uuid.UUID `json:"id"`

	// PipelineID — пайплайн, который запускается по расписанию.
	PipelineID uuid.UUID `json:"pipeline_id"`

	// Name — человекочитаемое имя (опционально).
	Name string `json:"name,omitempty"`

	// CronExpr — cron-выражение (стандартный 5-польный формат).
	CronExpr string `json:"cron_expr"`

	// Enabled — включено ли расписание.
	Enabled bool `json:"enabled"`

	// LastRunAt — время последнего запуска.
	LastRunAt *time.Time `json:"last_run_at,omitempty"`

	// LastRunID — ID последнего созданного run.
	LastRunID *uuid.UUID `json:"last_run_id,omitempty"`

	// CreatedAt — время создания.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt — время последнего изменения.
	UpdatedAt time.Time `json:"updated_at"`
}
