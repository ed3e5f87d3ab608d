package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/shaiso/Kadr/internal/domain"
)

// Pipeline DTOs

// CreatePipelineRequest — запрос на создание pipeline.
type CreatePipelineRequest struct {
	Name  string           `json:"name"`
	Graph *domain.Pipeline `json:"graph,omitempty"`
}

// UpdatePipelineRequest — запрос на обновление pipeline.
type UpdatePipelineRequest struct {
	Name  *string          `json:"name,omitempty"`
	Graph *domain.Pipeline `json:"graph,omitempty"`
}

// PipelineResponse — ответ с pipeline.
type PipelineResponse struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Graph     domain.Pipeline `json:"graph"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// PipelineFromDomain конвертирует domain.PipelineRecord в PipelineResponse.
func PipelineFromDomain(p domain.PipelineRecord) PipelineResponse {
	return PipelineResponse{
		ID:        p.ID,
		Name:      p.Name,
		Graph:     p.Graph,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// Graph editing DTOs

// AddNodeRequest — запрос на добавление узла.
type AddNodeRequest struct {
	ID   string          `json:"id"`
	Kind domain.NodeKind `json:"kind"`
	Data domain.NodeData `json:"data,omitempty"`
}

// SetNodeDataRequest — запрос на замену данных узла.
type SetNodeDataRequest struct {
	Data domain.NodeData `json:"data"`
}

// ConnectRequest — кандидат соединения.
type ConnectRequest struct {
	ID           string        `json:"id,omitempty"`
	Source       string        `json:"source"`
	SourceHandle domain.Handle `json:"sourceHandle,omitempty"`
	Target       string        `json:"target"`
	TargetHandle domain.Handle `json:"targetHandle,omitempty"`
}

// Edge конвертирует запрос в domain.Edge.
func (r ConnectRequest) Edge() domain.Edge {
	return domain.Edge{
		ID:           r.ID,
		Source:       r.Source,
		SourceHandle: r.SourceHandle,
		Target:       r.Target,
		TargetHandle: r.TargetHandle,
	}
}

// Execution DTOs

// ExecuteGraphRequest — запрос на выполнение ad-hoc графа.
type ExecuteGraphRequest struct {
	Graph domain.Pipeline `json:"graph"`
}

// ExecuteResponse — результат синхронного выполнения.
// Graph — граф после слияния артефактов движка.
type ExecuteResponse struct {
	Result *domain.ExecutionResult `json:"result"`
	Graph  domain.Pipeline         `json:"graph"`
}

// Run DTOs

// RunResponse — ответ с run.
type RunResponse struct {
	ID         uuid.UUID               `json:"id"`
	PipelineID uuid.UUID               `json:"pipeline_id,omitempty"`
	Status     string                  `json:"status"`
	Result     *domain.ExecutionResult `json:"result,omitempty"`
	Error      string                  `json:"error,omitempty"`
	StartedAt  *time.Time              `json:"started_at,omitempty"`
	FinishedAt *time.Time              `json:"finished_at,omitempty"`
	CreatedAt  time.Time               `json:"created_at"`
}

// RunFromDomain конвертирует domain.Run в RunResponse.
func RunFromDomain(r domain.Run) RunResponse {
	return RunResponse{
		ID:         r.ID,
		PipelineID: r.PipelineID,
		Status:     string(r.Status),
		Result:     r.Result,
		Error:      r.Error,
		StartedAt:  r.StartedAt,
		FinishedAt: r.FinishedAt,
		CreatedAt:  r.CreatedAt,
	}
}

// Schedule DTOs

// CreateScheduleRequest — запрос на создание schedule.
type CreateScheduleRequest struct {
	Name     string `json:"name,omitempty"`
	CronExpr string `json:"cron_expr"`
	Enabled  bool   `json:"enabled"`
}

// SetEnabledRequest — запрос на включение/выключение.
type SetEnabledRequest struct {
	Enabled bool `json:"enabled"`
}

// ScheduleResponse — ответ с schedule.
type ScheduleResponse struct {
	ID         uuid.UUID  `json:"id"`
	PipelineID uuid.UUID  `json:"pipeline_id"`
	Name       string     `json:"name,omitempty"`
	CronExpr   string     `json:"cron_expr"`
	Enabled    bool       `json:"enabled"`
	LastRunAt  *time.Time `json:"last_run_at,omitempty"`
	LastRunID  *uuid.UUID `json:"last_run_id,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// ScheduleFromDomain конвертирует domain.Schedule в ScheduleResponse.
func ScheduleFromDomain(s domain.Schedule) ScheduleResponse {
	return ScheduleResponse{
		ID:         s.ID,
		PipelineID: s.PipelineID,
		Name:       s.Name,
		CronExpr:   s.CronExpr,
		Enabled:    s.Enabled,
		LastRunAt:  s.LastRunAt,
		LastRunID:  s.LastRunID,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

// Validation DTO

// ValidationResponse — результат проверки готовности пайплайна.
type ValidationResponse struct {
	IsValid bool   `json:"is_valid"`
	Message string `json:"message,omitempty"`
}
