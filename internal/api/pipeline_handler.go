package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shaiso/Kadr/internal/domain"
	"github.com/shaiso/Kadr/internal/graph"
	"github.com/shaiso/Kadr/internal/orchestrator"
)

// ListPipelines возвращает список всех pipelines.
// GET /api/v1/pipelines
func (h *Handler) ListPipelines(w http.ResponseWriter, r *http.Request) {
	pipelines, err := h.pipelineRepo.List(r.Context())
	if HandleRepoError(w, h.logger, err, "") {
		return
	}

	result := make([]PipelineResponse, len(pipelines))
	for i, p := range pipelines {
		result[i] = PipelineFromDomain(p)
	}

	List(w, result, len(result))
}

// CreatePipeline создаёт новый pipeline.
// POST /api/v1/pipelines
func (h *Handler) CreatePipeline(w http.ResponseWriter, r *http.Request) {
	var req CreatePipelineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid request body")
		return
	}

	if req.Name == "" {
		BadRequest(w, "name is required")
		return
	}

	var g domain.Pipeline
	if req.Graph != nil {
		g = *req.Graph
	}

	// Начальный пересчёт: переданный граф мог прийти без
	// распространённых значений
	store := graph.NewStore(g, h.logger)

	now := time.Now()
	rec := &domain.PipelineRecord{
		ID:        uuid.New(),
		Name:      req.Name,
		Graph:     store.Snapshot(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.pipelineRepo.Create(r.Context(), rec); err != nil {
		HandleRepoError(w, h.logger, err, "")
		return
	}

	Created(w, PipelineFromDomain(*rec))
}

// GetPipeline возвращает pipeline по ID.
// GET /api/v1/pipelines/{id}
func (h *Handler) GetPipeline(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		BadRequest(w, "invalid pipeline id")
		return
	}

	rec, err := h.pipelineRepo.GetByID(r.Context(), id)
	if HandleRepoError(w, h.logger, err, "pipeline not found") {
		return
	}

	Success(w, PipelineFromDomain(*rec))
}

// UpdatePipeline обновляет имя и/или граф pipeline.
// PUT /api/v1/pipelines/{id}
func (h *Handler) UpdatePipeline(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		BadRequest(w, "invalid pipeline id")
		return
	}

	var req UpdatePipelineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid request body")
		return
	}

	rec, err := h.pipelineRepo.GetByID(r.Context(), id)
	if HandleRepoError(w, h.logger, err, "pipeline not found") {
		return
	}

	if req.Name != nil {
		if err := h.pipelineRepo.Rename(r.Context(), id, *req.Name); err != nil {
			HandleRepoError(w, h.logger, err, "pipeline not found")
			return
		}
		rec.Name = *req.Name
	}

	if req.Graph != nil {
		store := graph.NewStore(*req.Graph, h.logger)
		rec.Graph = store.Snapshot()
		if err := h.pipelineRepo.UpdateGraph(r.Context(), id, rec.Graph); err != nil {
			HandleRepoError(w, h.logger, err, "pipeline not found")
			return
		}
	}

	Success(w, PipelineFromDomain(*rec))
}

// DeletePipeline удаляет pipeline.
// DELETE /api/v1/pipelines/{id}
func (h *Handler) DeletePipeline(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		BadRequest(w, "invalid pipeline id")
		return
	}

	if err := h.pipelineRepo.Delete(r.Context(), id); err != nil {
		HandleRepoError(w, h.logger, err, "pipeline not found")
		return
	}

	NoContent(w)
}

// --- Graph editing ---

// AddNode добавляет узел в граф pipeline.
// POST /api/v1/pipelines/{id}/nodes
func (h *Handler) AddNode(w http.ResponseWriter, r *http.Request) {
	var req AddNodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid request body")
		return
	}

	if req.ID == "" {
		BadRequest(w, "node id is required")
		return
	}

	h.mutateGraph(w, r, func(store *graph.Store) error {
		return store.AddNode(domain.Node{
			ID:   req.ID,
			Kind: req.Kind,
			Data: req.Data,
		})
	})
}

// SetNodeData заменяет данные узла.
// PUT /api/v1/pipelines/{id}/nodes/{nodeId}
func (h *Handler) SetNodeData(w http.ResponseWriter, r *http.Request) {
	var req SetNodeDataRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid request body")
		return
	}

	nodeID := r.PathValue("nodeId")
	h.mutateGraph(w, r, func(store *graph.Store) error {
		return store.SetNodeData(nodeID, req.Data)
	})
}

// RemoveNode удаляет узел и все касающиеся его соединения.
// DELETE /api/v1/pipelines/{id}/nodes/{nodeId}
func (h *Handler) RemoveNode(w http.ResponseWriter, r *http.Request) {
	nodeID := r.PathValue("nodeId")
	h.mutateGraph(w, r, func(store *graph.Store) error {
		return store.RemoveNode(nodeID)
	})
}

// Connect добавляет соединение-кандидат в граф pipeline.
// POST /api/v1/pipelines/{id}/connections
func (h *Handler) Connect(w http.ResponseWriter, r *http.Request) {
	var req ConnectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid request body")
		return
	}

	h.mutateGraph(w, r, func(store *graph.Store) error {
		_, err := store.Connect(req.Edge())
		return err
	})
}

// RemoveConnection удаляет соединение по ID.
// DELETE /api/v1/pipelines/{id}/connections/{edgeId}
func (h *Handler) RemoveConnection(w http.ResponseWriter, r *http.Request) {
	edgeID := r.PathValue("edgeId")
	h.mutateGraph(w, r, func(store *graph.Store) error {
		return store.RemoveEdge(edgeID)
	})
}

// mutateGraph загружает граф, применяет мутацию и сохраняет результат.
// Отвечает обновлённым pipeline.
func (h *Handler) mutateGraph(w http.ResponseWriter, r *http.Request, mutate func(*graph.Store) error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		BadRequest(w, "invalid pipeline id")
		return
	}

	rec, err := h.pipelineRepo.GetByID(r.Context(), id)
	if HandleRepoError(w, h.logger, err, "pipeline not found") {
		return
	}

	store := graph.NewStore(rec.Graph, h.logger)
	if err := mutate(store); err != nil {
		h.handleGraphError(w, err)
		return
	}

	rec.Graph = store.Snapshot()
	if err := h.pipelineRepo.UpdateGraph(r.Context(), id, rec.Graph); err != nil {
		HandleRepoError(w, h.logger, err, "pipeline not found")
		return
	}

	Success(w, PipelineFromDomain(*rec))
}

// handleGraphError преобразует ошибку графа в HTTP ответ.
func (h *Handler) handleGraphError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, graph.ErrInvalidConnection):
		InvalidState(w, err.Error())
	case errors.Is(err, graph.ErrNodeNotFound), errors.Is(err, graph.ErrEdgeNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, graph.ErrDuplicateNode):
		Conflict(w, err.Error())
	case errors.Is(err, graph.ErrUnknownKind):
		BadRequest(w, err.Error())
	default:
		InternalError(w, h.logger, err)
	}
}

// --- Execution ---

// ValidatePipeline проверяет готовность pipeline к выполнению.
// POST /api/v1/pipelines/{id}/validate
func (h *Handler) ValidatePipeline(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		BadRequest(w, "invalid pipeline id")
		return
	}

	rec, err := h.pipelineRepo.GetByID(r.Context(), id)
	if HandleRepoError(w, h.logger, err, "pipeline not found") {
		return
	}

	status := h.orch.Validate(rec.Graph.Nodes)
	Success(w, ValidationResponse{
		IsValid: status.IsValid,
		Message: status.Message,
	})
}

// ExecutePipeline синхронно выполняет сохранённый pipeline.
// POST /api/v1/pipelines/{id}/execute
//
// Слитый граф сохраняется обратно: артефакты движка становятся
// частью сохранённого пайплайна.
func (h *Handler) ExecutePipeline(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		BadRequest(w, "invalid pipeline id")
		return
	}

	rec, err := h.pipelineRepo.GetByID(r.Context(), id)
	if HandleRepoError(w, h.logger, err, "pipeline not found") {
		return
	}

	store := graph.NewStore(rec.Graph, h.logger)
	snapshot := store.Snapshot()

	result, merged, err := h.orch.Execute(r.Context(), snapshot)
	if errors.Is(err, orchestrator.ErrExecutionInProgress) {
		Conflict(w, err.Error())
		return
	}
	if err != nil {
		InternalError(w, h.logger, err)
		return
	}

	if result.Success {
		store.ApplyNodes(merged)
		rec.Graph = store.Snapshot()
		if err := h.pipelineRepo.UpdateGraph(r.Context(), id, rec.Graph); err != nil {
			h.logger.Error("failed to persist merged graph", "pipeline_id", id, "error", err)
		}
	}

	Success(w, ExecuteResponse{
		Result: result,
		Graph:  rec.Graph,
	})
}

// ExecuteGraph синхронно выполняет ad-hoc граф из тела запроса.
// POST /api/v1/execute
func (h *Handler) ExecuteGraph(w http.ResponseWriter, r *http.Request) {
	var req ExecuteGraphRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid request body")
		return
	}

	store := graph.NewStore(req.Graph, h.logger)
	snapshot := store.Snapshot()

	result, merged, err := h.orch.Execute(r.Context(), snapshot)
	if errors.Is(err, orchestrator.ErrExecutionInProgress) {
		Conflict(w, err.Error())
		return
	}
	if err != nil {
		InternalError(w, h.logger, err)
		return
	}

	g := snapshot
	if result.Success {
		store.ApplyNodes(merged)
		g = store.Snapshot()
	}

	Success(w, ExecuteResponse{
		Result: result,
		Graph:  g,
	})
}
