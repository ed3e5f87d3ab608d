package domain

import (
	"time"

	"github.com/google/uuid"
)

// PipelineRecord — сохранённый пайплайн.
//
// Пайплайн сохраняется целиком (единственная текущая ревизия):
// граф редактируется вживую, история изменений не ведётся.
type PipelineRecord struct {
	// ID — уникальный идентификатор пайплайна.
	ID uuid.UUID `json:"id"`

	// Name — уникальное имя (например, "nightly-transcode").
	Name string `json:"name"`

	// Graph — граф {nodes, edges}.
	Graph Pipeline `json:"graph"`

	// CreatedAt — время создания.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt — время последнего сохранения графа.
	UpdatedAt time.Time `json:"updated_at"`
}

// Run — экземпляр выполнения пайплайна.
//
// Run создаётся когда:
//   - пользователь запускает пайплайн (API/CLI, синхронно или через очередь)
//   - scheduler запускает сохранённый пайплайн по расписанию
type Run struct {
	// ID — уникальный идентификатор run.
	ID uuid.UUID `json:"id"`

	// PipelineID — ссылка на сохранённый пайплайн.
	// uuid.Nil для ad-hoc запусков (граф передан в запросе, не сохранён).
	PipelineID uuid.UUID `json:"pipeline_id"`

	// Status — текущий статус выполнения.
	Status RunStatus `json:"status"`

	// Result — результат движка (после завершения).
	Result *ExecutionResult `json:"result,omitempty"`

	// Error — текст ошибки при статусе FAILED.
	Error string `json:"error,omitempty"`

	// StartedAt — время передачи движку.
	StartedAt *time.Time `json:"started_at,omitempty"`

	// FinishedAt — время завершения.
	FinishedAt *time.Time `json:"finished_at,omitempty"`

	// CreatedAt — время создания run.
	CreatedAt time.Time `json:"created_at"`
}

// Duration возвращает продолжительность выполнения.
// Возвращает 0, если run ещё не завершён.
func (r *Run) Duration() time.Duration {
	if r.StartedAt == nil || r.FinishedAt == nil {
		return 0
	}
	return r.FinishedAt.Sub(*r.StartedAt)
}

// MarkRunning переводит run в статус RUNNING.
func (r *Run) MarkRunning() {
	now := time.Now()
	r.Status = RunStatusRunning
	r.StartedAt = &now
}

// MarkSucceeded переводит run в статус SUCCEEDED с результатом.
func (r *Run) MarkSucceeded(result *ExecutionResult) {
	now := time.Now()
	r.Status = RunStatusSucceeded
	r.FinishedAt = &now
	r.Result = result
}

// MarkFailed переводит run в статус FAILED с ошибкой.
func (r *Run) MarkFailed(errMsg string) {
	now := time.Now()
	r.Status = RunStatusFailed
	r.FinishedAt = &now
	r.Error = errMsg
}
