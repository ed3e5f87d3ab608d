package engineclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shaiso/Kadr/internal/domain"
)

func TestBuildRequest(t *testing.T) {
	pipeline := domain.Pipeline{
		Nodes: []domain.Node{
			{ID: "src", Kind: domain.KindInputVideo, Data: domain.NodeData{
				domain.FieldFilePath: "/media/a.mp4",
			}},
			{ID: "view", Kind: domain.KindViewVideo},
		},
		Edges: []domain.Edge{
			{ID: "e1", Source: "src", SourceHandle: domain.HandleVideoOutput,
				Target: "view", TargetHandle: domain.HandleVideoInput},
		},
	}

	req := BuildRequest(pipeline)

	if len(req.Nodes) != 2 || len(req.Connections) != 1 {
		t.Fatalf("request shape: %d nodes, %d connections", len(req.Nodes), len(req.Connections))
	}
	if req.Nodes[0].ID != "src" || req.Nodes[0].Kind != domain.KindInputVideo {
		t.Errorf("node ref = %+v", req.Nodes[0])
	}

	c := req.Connections[0]
	if c.From != "src" || c.To != "view" {
		t.Errorf("connection endpoints = %s -> %s", c.From, c.To)
	}
	if c.FromHandle != "video-output" || c.ToHandle != "video-input" {
		t.Errorf("connection handles = %s -> %s", c.FromHandle, c.ToHandle)
	}
}

// Движок требует handle и ID на каждом ребре: отсутствующие
// заполняются умолчаниями при сериализации.
func TestBuildRequest_Defaults(t *testing.T) {
	pipeline := domain.Pipeline{
		Edges: []domain.Edge{
			{Source: "a", Target: "b"},
		},
	}

	req := BuildRequest(pipeline)

	c := req.Connections[0]
	if c.FromHandle != "video-output" {
		t.Errorf("default fromHandle = %q, want video-output", c.FromHandle)
	}
	if c.ToHandle != "video-input" {
		t.Errorf("default toHandle = %q, want video-input", c.ToHandle)
	}
	if c.ID == "" {
		t.Error("missing edge ID should be generated")
	}
}

func TestExecutePipeline_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/execute" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q", ct)
		}

		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if len(req.Nodes) != 1 {
			t.Errorf("expected 1 node in request, got %d", len(req.Nodes))
		}

		json.NewEncoder(w).Encode(domain.ExecutionResult{
			Success: true,
			Outputs: map[string]domain.VideoArtifact{
				"conv": {Path: "/artifacts/out.mp4", Format: "mp4", Duration: 12.5},
			},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	req := BuildRequest(domain.Pipeline{
		Nodes: []domain.Node{{ID: "src", Kind: domain.KindInputVideo}},
	})

	result, err := client.ExecutePipeline(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success {
		t.Error("expected success")
	}
	if result.Outputs["conv"].Path != "/artifacts/out.mp4" {
		t.Errorf("outputs = %+v", result.Outputs)
	}
}

// Логический провал выполнения — не ошибка транспорта.
func TestExecutePipeline_EngineReportedFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(domain.ExecutionResult{
			Success: false,
			Message: "no executable nodes",
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	result, err := client.ExecutePipeline(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Success {
		t.Error("expected failure result")
	}
	if result.Message != "no executable nodes" {
		t.Errorf("message = %q", result.Message)
	}
}

func TestExecutePipeline_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.ExecutePipeline(context.Background(), Request{})
	if !errors.Is(err, ErrEngineResponse) {
		t.Errorf("expected ErrEngineResponse, got %v", err)
	}
}

func TestExecutePipeline_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("{not json"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.ExecutePipeline(context.Background(), Request{})
	if !errors.Is(err, ErrEngineResponse) {
		t.Errorf("expected ErrEngineResponse, got %v", err)
	}
}

func TestExecutePipeline_Unavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // закрываем сразу: соединение откажет

	client := NewClient(srv.URL)
	_, err := client.ExecutePipeline(context.Background(), Request{})
	if !errors.Is(err, ErrEngineUnavailable) {
		t.Errorf("expected ErrEngineUnavailable, got %v", err)
	}
}
