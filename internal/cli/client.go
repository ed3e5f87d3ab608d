package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// --- Response types (дублируются из api/dto.go, CLI не импортирует internal/api) ---

// PipelineResponse — pipeline из API.
type PipelineResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Graph     json.RawMessage `json:"graph"`
	CreatedAt string          `json:"created_at"`
	UpdatedAt string          `json:"updated_at"`
}

// RunResponse — run из API.
type RunResponse struct {
	ID         string          `json:"id"`
	PipelineID string          `json:"pipeline_id,omitempty"`
	Status     string          `json:"status"`
	Result     json.RawMessage `json:"result,omitempty"`
	Error      string          `json:"error,omitempty"`
	StartedAt  string          `json:"started_at,omitempty"`
	FinishedAt string          `json:"finished_at,omitempty"`
	CreatedAt  string          `json:"created_at"`
}

// ScheduleResponse — schedule из API.
type ScheduleResponse struct {
	ID         string `json:"id"`
	PipelineID string `json:"pipeline_id"`
	Name       string `json:"name,omitempty"`
	CronExpr   string `json:"cron_expr"`
	Enabled    bool   `json:"enabled"`
	LastRunAt  string `json:"last_run_at,omitempty"`
	LastRunID  string `json:"last_run_id,omitempty"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

// ValidationResponse — результат валидации pipeline.
type ValidationResponse struct {
	IsValid bool   `json:"is_valid"`
	Message string `json:"message,omitempty"`
}

// ExecuteResponse — результат синхронного выполнения.
type ExecuteResponse struct {
	Result struct {
		Success bool   `json:"success"`
		Message string `json:"message,omitempty"`
	} `json:"result"`
	Graph json.RawMessage `json:"graph"`
}

// --- Request types ---

// CreatePipelineRequest — создание pipeline.
type CreatePipelineRequest struct {
	Name  string          `json:"name"`
	Graph json.RawMessage `json:"graph,omitempty"`
}

// UpdatePipelineRequest — обновление pipeline.
type UpdatePipelineRequest struct {
	Name  *string         `json:"name,omitempty"`
	Graph json.RawMessage `json:"graph,omitempty"`
}

// CreateScheduleRequest — создание schedule.
type CreateScheduleRequest struct {
	Name     string `json:"name,omitempty"`
	CronExpr string `json:"cron_expr"`
	Enabled  bool   `json:"enabled"`
}

// ListRunsOpts — параметры фильтрации runs.
type ListRunsOpts struct {
	PipelineID string
	Status     string
	Limit      int
}

// --- API response wrappers ---

type dataResponse struct {
	Data json.RawMessage `json:"data"`
}

type listResponse struct {
	Data  json.RawMessage `json:"data"`
	Total int             `json:"total"`
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// --- Client ---

// Client — HTTP-клиент для Kadr API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient создаёт клиент для API.
// Таймаут большой: синхронное выполнение пайплайна может занимать минуты.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Minute,
		},
	}
}

// --- Pipelines ---

// ListPipelines возвращает все pipelines.
func (c *Client) ListPipelines() ([]PipelineResponse, error) {
	var pipelines []PipelineResponse
	err := c.list("/api/v1/pipelines", nil, &pipelines)
	return pipelines, err
}

// CreatePipeline создаёт новый pipeline.
func (c *Client) CreatePipeline(req CreatePipelineRequest) (*PipelineResponse, error) {
	var p PipelineResponse
	err := c.post("/api/v1/pipelines", req, &p)
	return &p, err
}

// GetPipeline возвращает pipeline по ID.
func (c *Client) GetPipeline(id string) (*PipelineResponse, error) {
	var p PipelineResponse
	err := c.get("/api/v1/pipelines/"+id, &p)
	return &p, err
}

// UpdatePipeline обновляет pipeline.
func (c *Client) UpdatePipeline(id string, req UpdatePipelineRequest) (*PipelineResponse, error) {
	var p PipelineResponse
	err := c.put("/api/v1/pipelines/"+id, req, &p)
	return &p, err
}

// DeletePipeline удаляет pipeline.
func (c *Client) DeletePipeline(id string) error {
	return c.delete("/api/v1/pipelines/" + id)
}

// ValidatePipeline проверяет готовность pipeline к выполнению.
func (c *Client) ValidatePipeline(id string) (*ValidationResponse, error) {
	var v ValidationResponse
	err := c.post("/api/v1/pipelines/"+id+"/validate", nil, &v)
	return &v, err
}

// ExecutePipeline синхронно выполняет pipeline.
func (c *Client) ExecutePipeline(id string) (*ExecuteResponse, error) {
	var res ExecuteResponse
	err := c.post("/api/v1/pipelines/"+id+"/execute", nil, &res)
	return &res, err
}

// --- Runs ---

// ListRuns возвращает список runs с фильтрацией.
func (c *Client) ListRuns(opts ListRunsOpts) ([]RunResponse, error) {
	params := url.Values{}
	if opts.PipelineID != "" {
		params.Set("pipeline_id", opts.PipelineID)
	}
	if opts.Status != "" {
		params.Set("status", opts.Status)
	}
	if opts.Limit > 0 {
		params.Set("limit", fmt.Sprintf("%d", opts.Limit))
	}

	var runs []RunResponse
	err := c.list("/api/v1/runs", params, &runs)
	return runs, err
}

// CreateRun создаёт отложенный run для pipeline.
func (c *Client) CreateRun(pipelineID string) (*RunResponse, error) {
	var run RunResponse
	err := c.post("/api/v1/pipelines/"+pipelineID+"/runs", nil, &run)
	return &run, err
}

// GetRun возвращает run по ID.
func (c *Client) GetRun(id string) (*RunResponse, error) {
	var run RunResponse
	err := c.get("/api/v1/runs/"+id, &run)
	return &run, err
}

// --- Schedules ---

// ListSchedules возвращает все schedules.
func (c *Client) ListSchedules() ([]ScheduleResponse, error) {
	var schedules []ScheduleResponse
	err := c.list("/api/v1/schedules", nil, &schedules)
	return schedules, err
}

// CreateSchedule создаёт schedule для pipeline.
func (c *Client) CreateSchedule(pipelineID string, req CreateScheduleRequest) (*ScheduleResponse, error) {
	var schedule ScheduleResponse
	err := c.post("/api/v1/pipelines/"+pipelineID+"/schedules", req, &schedule)
	return &schedule, err
}

// GetSchedule возвращает schedule по ID.
func (c *Client) GetSchedule(id string) (*ScheduleResponse, error) {
	var schedule ScheduleResponse
	err := c.get("/api/v1/schedules/"+id, &schedule)
	return &schedule, err
}

// DeleteSchedule удаляет schedule.
func (c *Client) DeleteSchedule(id string) error {
	return c.delete("/api/v1/schedules/" + id)
}

// EnableSchedule включает schedule.
func (c *Client) EnableSchedule(id string) (*ScheduleResponse, error) {
	var schedule ScheduleResponse
	body := map[string]bool{"enabled": true}
	err := c.put("/api/v1/schedules/"+id+"/enabled", body, &schedule)
	return &schedule, err
}

// DisableSchedule выключает schedule.
func (c *Client) DisableSchedule(id string) (*ScheduleResponse, error) {
	var schedule ScheduleResponse
	body := map[string]bool{"enabled": false}
	err := c.put("/api/v1/schedules/"+id+"/enabled", body, &schedule)
	return &schedule, err
}

// --- HTTP helpers ---

func (c *Client) get(path string, result any) error {
	return c.doData(http.MethodGet, path, nil, result)
}

func (c *Client) post(path string, body any, result any) error {
	return c.doData(http.MethodPost, path, body, result)
}

func (c *Client) put(path string, body any, result any) error {
	return c.doData(http.MethodPut, path, body, result)
}

func (c *Client) delete(path string) error {
	resp, err := c.do(http.MethodDelete, path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return c.checkError(resp)
}

func (c *Client) list(path string, params url.Values, result any) error {
	if len(params) > 0 {
		path = path + "?" + params.Encode()
	}

	resp, err := c.do(http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := c.checkError(resp); err != nil {
		return err
	}

	var lr listResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return json.Unmarshal(lr.Data, result)
}

func (c *Client) doData(method, path string, body any, result any) error {
	resp, err := c.do(method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := c.checkError(resp); err != nil {
		return err
	}

	// 204 No Content
	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	var dr dataResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if result != nil {
		return json.Unmarshal(dr.Data, result)
	}
	return nil
}

func (c *Client) do(method, path string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.httpClient.Do(req)
}

func (c *Client) checkError(resp *http.Response) error {
	if resp.StatusCode < 400 {
		return nil
	}

	var er errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&er); err != nil {
		return fmt.Errorf("API error: HTTP %d", resp.StatusCode)
	}

	return fmt.Errorf("%s: %s", er.Error.Code, er.Error.Message)
}
