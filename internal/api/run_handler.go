package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shaiso/Kadr/internal/domain"
	"github.com/shaiso/Kadr/internal/repo"
)

// CreateRun создаёт отложенный run сохранённого pipeline.
// POST /api/v1/pipelines/{id}/runs
//
// Run создаётся в статусе PENDING и публикуется в runs.pending;
// выполнение — на стороне воркера. Polling fallback воркера
// подхватит run, даже если публикация не удалась.
func (h *Handler) CreateRun(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		BadRequest(w, "invalid pipeline id")
		return
	}

	// Проверяем, что pipeline существует
	_, err = h.pipelineRepo.GetByID(r.Context(), id)
	if HandleRepoError(w, h.logger, err, "pipeline not found") {
		return
	}

	run := &domain.Run{
		ID:         uuid.New(),
		PipelineID: id,
		Status:     domain.RunStatusPending,
		CreatedAt:  time.Now(),
	}

	if err := h.runRepo.Create(r.Context(), run); err != nil {
		InternalError(w, h.logger, err)
		return
	}

	if h.publisher != nil {
		if err := h.publisher.PublishRunPending(r.Context(), run.ID); err != nil {
			h.logger.Error("failed to publish run.pending", "run_id", run.ID, "error", err)
		}
	}

	Created(w, RunFromDomain(*run))
}

// GetRun возвращает run по ID.
// GET /api/v1/runs/{id}
func (h *Handler) GetRun(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		BadRequest(w, "invalid run id")
		return
	}

	run, err := h.runRepo.GetByID(r.Context(), id)
	if HandleRepoError(w, h.logger, err, "run not found") {
		return
	}

	Success(w, RunFromDomain(*run))
}

// ListRuns возвращает список runs с фильтрацией.
// GET /api/v1/runs?pipeline_id=&status=&limit=&offset=
func (h *Handler) ListRuns(w http.ResponseWriter, r *http.Request) {
	filter, ok := parseRunFilter(w, r)
	if !ok {
		return
	}

	runs, err := h.runRepo.List(r.Context(), filter)
	if HandleRepoError(w, h.logger, err, "") {
		return
	}

	result := make([]RunResponse, len(runs))
	for i, run := range runs {
		result[i] = RunFromDomain(run)
	}

	List(w, result, len(result))
}

// parseRunFilter парсит query-параметры фильтрации runs.
func parseRunFilter(w http.ResponseWriter, r *http.Request) (filter repo.RunFilter, ok bool) {
	q := r.URL.Query()

	if v := q.Get("pipeline_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			BadRequest(w, "invalid pipeline_id")
			return filter, false
		}
		filter.PipelineID = &id
	}

	if v := q.Get("status"); v != "" {
		filter.Status = domain.RunStatus(v)
	}

	filter.Limit = 50
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			BadRequest(w, "invalid limit")
			return filter, false
		}
		filter.Limit = n
	}

	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			BadRequest(w, "invalid offset")
			return filter, false
		}
		filter.Offset = n
	}

	return filter, true
}
