package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/shaiso/Kadr/internal/domain"
)

// cronParser проверяет cron-выражения в стандартном 5-польном формате.
var cronParser = cron.NewParser(
	cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow,
)

// ListSchedules возвращает список всех schedules.
// GET /api/v1/schedules
func (h *Handler) ListSchedules(w http.ResponseWriter, r *http.Request) {
	schedules, err := h.scheduleRepo.List(r.Context())
	if HandleRepoError(w, h.logger, err, "") {
		return
	}

	result := make([]ScheduleResponse, len(schedules))
	for i, s := range schedules {
		result[i] = ScheduleFromDomain(s)
	}

	List(w, result, len(result))
}

// CreateSchedule создаёт schedule для pipeline.
// POST /api/v1/pipelines/{id}/schedules
func (h *Handler) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		BadRequest(w, "invalid pipeline id")
		return
	}

	var req CreateScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid request body")
		return
	}

	if req.CronExpr == "" {
		BadRequest(w, "cron_expr is required")
		return
	}
	if _, err := cronParser.Parse(req.CronExpr); err != nil {
		BadRequest(w, "invalid cron_expr: "+err.Error())
		return
	}

	// Проверяем, что pipeline существует
	_, err = h.pipelineRepo.GetByID(r.Context(), id)
	if HandleRepoError(w, h.logger, err, "pipeline not found") {
		return
	}

	now := time.Now()
	schedule := &domain.Schedule{
		ID:         uuid.New(),
		PipelineID: id,
		Name:       req.Name,
		CronExpr:   req.CronExpr,
		Enabled:    req.Enabled,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := h.scheduleRepo.Create(r.Context(), schedule); err != nil {
		InternalError(w, h.logger, err)
		return
	}

	Created(w, ScheduleFromDomain(*schedule))
}

// GetSchedule возвращает schedule по ID.
// GET /api/v1/schedules/{id}
func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		BadRequest(w, "invalid schedule id")
		return
	}

	schedule, err := h.scheduleRepo.GetByID(r.Context(), id)
	if HandleRepoError(w, h.logger, err, "schedule not found") {
		return
	}

	Success(w, ScheduleFromDomain(*schedule))
}

// SetScheduleEnabled включает/выключает schedule.
// PUT /api/v1/schedules/{id}/enabled
func (h *Handler) SetScheduleEnabled(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		BadRequest(w, "invalid schedule id")
		return
	}

	var req SetEnabledRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid request body")
		return
	}

	if err := h.scheduleRepo.SetEnabled(r.Context(), id, req.Enabled); err != nil {
		HandleRepoError(w, h.logger, err, "schedule not found")
		return
	}

	schedule, err := h.scheduleRepo.GetByID(r.Context(), id)
	if HandleRepoError(w, h.logger, err, "schedule not found") {
		return
	}

	Success(w, ScheduleFromDomain(*schedule))
}

// DeleteSchedule удаляет schedule.
// DELETE /api/v1/schedules/{id}
func (h *Handler) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		BadRequest(w, "invalid schedule id")
		return
	}

	if err := h.scheduleRepo.Delete(r.Context(), id); err != nil {
		HandleRepoError(w, h.logger, err, "schedule not found")
		return
	}

	NoContent(w)
}
