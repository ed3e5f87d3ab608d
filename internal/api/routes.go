package api

import (
	"net/http"
)

// RegisterRoutes регистрирует все маршруты API.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Middleware chain
	chain := Chain(
		Recovery(h.logger),
		Logging(h.logger),
	)

	// Pipelines
	mux.Handle("GET /api/v1/pipelines", chain(http.HandlerFunc(h.ListPipelines)))
	mux.Handle("POST /api/v1/pipelines", chain(http.HandlerFunc(h.CreatePipeline)))
	mux.Handle("GET /api/v1/pipelines/{id}", chain(http.HandlerFunc(h.GetPipeline)))
	mux.Handle("PUT /api/v1/pipelines/{id}", chain(http.HandlerFunc(h.UpdatePipeline)))
	mux.Handle("DELETE /api/v1/pipelines/{id}", chain(http.HandlerFunc(h.DeletePipeline)))

	// Graph editing
	mux.Handle("POST /api/v1/pipelines/{id}/nodes", chain(http.HandlerFunc(h.AddNode)))
	mux.Handle("PUT /api/v1/pipelines/{id}/nodes/{nodeId}", chain(http.HandlerFunc(h.SetNodeData)))
	mux.Handle("DELETE /api/v1/pipelines/{id}/nodes/{nodeId}", chain(http.HandlerFunc(h.RemoveNode)))
	mux.Handle("POST /api/v1/pipelines/{id}/connections", chain(http.HandlerFunc(h.Connect)))
	mux.Handle("DELETE /api/v1/pipelines/{id}/connections/{edgeId}", chain(http.HandlerFunc(h.RemoveConnection)))

	// Execution
	mux.Handle("POST /api/v1/pipelines/{id}/validate", chain(http.HandlerFunc(h.ValidatePipeline)))
	mux.Handle("POST /api/v1/pipelines/{id}/execute", chain(http.HandlerFunc(h.ExecutePipeline)))
	mux.Handle("POST /api/v1/execute", chain(http.HandlerFunc(h.ExecuteGraph)))

	// Runs
	mux.Handle("GET /api/v1/runs", chain(http.HandlerFunc(h.ListRuns)))
	mux.Handle("POST /api/v1/pipelines/{id}/runs", chain(http.HandlerFunc(h.CreateRun)))
	mux.Handle("GET /api/v1/runs/{id}", chain(http.HandlerFunc(h.GetRun)))

	// Schedules
	mux.Handle("GET /api/v1/schedules", chain(http.HandlerFunc(h.ListSchedules)))
	mux.Handle("POST /api/v1/pipelines/{id}/schedules", chain(http.HandlerFunc(h.CreateSchedule)))
	mux.Handle("GET /api/v1/schedules/{id}", chain(http.HandlerFunc(h.GetSchedule)))
	mux.Handle("PUT /api/v1/schedules/{id}/enabled", chain(http.HandlerFunc(h.SetScheduleEnabled)))
	mux.Handle("DELETE /api/v1/schedules/{id}", chain(http.HandlerFunc(h.DeleteSchedule)))
}
