package orchestrator

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shaiso/Kadr/internal/domain"
	"github.com/shaiso/Kadr/internal/engineclient"
)

// stubEngine — подменный движок выполнения.
type stubEngine struct {
	mu      sync.Mutex
	result  *domain.ExecutionResult
	err     error
	calls   int
	lastReq engineclient.Request
	block   chan struct{} // если не nil, вызов ждёт закрытия канала
}

func (s *stubEngine) ExecutePipeline(_ context.Context, req engineclient.Request) (*domain.ExecutionResult, error) {
	s.mu.Lock()
	s.calls++
	s.lastReq = req
	block := s.block
	s.mu.Unlock()

	if block != nil {
		<-block
	}
	return s.result, s.err
}

func (s *stubEngine) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func validPipeline() domain.Pipeline {
	return domain.Pipeline{
		Nodes: []domain.Node{
			{ID: "src", Kind: domain.KindInputVideo, Data: domain.NodeData{
				domain.FieldFilePath: "/media/a.mp4",
			}},
			{ID: "conv", Kind: domain.KindConvertVideo, Data: domain.NodeData{}},
			{ID: "view", Kind: domain.KindViewVideo, Data: domain.NodeData{}},
		},
		Edges: []domain.Edge{
			{ID: "e1", Source: "src", SourceHandle: domain.HandleVideoOutput,
				Target: "conv", TargetHandle: domain.HandleVideoInput},
			{ID: "e2", Source: "conv", SourceHandle: domain.HandleVideoOutput,
				Target: "view", TargetHandle: domain.HandleVideoInput},
		},
	}
}

func TestValidate(t *testing.T) {
	o := New(Config{Engine: &stubEngine{}})

	tests := []struct {
		name  string
		nodes []domain.Node
		want  bool
	}{
		{
			"input with file",
			[]domain.Node{{ID: "a", Kind: domain.KindInputVideo, Data: domain.NodeData{
				domain.FieldFilePath: "/media/a.mp4",
			}}},
			true,
		},
		{
			"trim with file",
			[]domain.Node{{ID: "a", Kind: domain.KindTrimAudio, Data: domain.NodeData{
				domain.FieldFilePath: "/media/a.wav",
			}}},
			true,
		},
		{
			"input without file",
			[]domain.Node{{ID: "a", Kind: domain.KindInputVideo, Data: domain.NodeData{}}},
			false,
		},
		{
			"input with sentinel",
			[]domain.Node{{ID: "a", Kind: domain.KindInputVideo, Data: domain.NodeData{
				domain.FieldFilePath: domain.NullPlaceholder,
			}}},
			false,
		},
		{
			"terminal nodes only",
			[]domain.Node{{ID: "a", Kind: domain.KindViewVideo, Data: domain.NodeData{
				domain.FieldFilePath: "/media/a.mp4",
			}}},
			false,
		},
		{
			"empty pipeline",
			nil,
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := o.Validate(tt.nodes)
			if status.IsValid != tt.want {
				t.Errorf("Validate() = %v, want %v (%s)", status.IsValid, tt.want, status.Message)
			}
			if !status.IsValid && status.Message == "" {
				t.Error("invalid status should carry a user-facing message")
			}
		})
	}
}

func TestExecute_Success(t *testing.T) {
	engine := &stubEngine{
		result: &domain.ExecutionResult{
			Success: true,
			Outputs: map[string]domain.VideoArtifact{
				"conv": {Path: "/artifacts/conv.mp4", Format: "mp4"},
			},
		},
	}
	o := New(Config{Engine: engine})

	pipeline := validPipeline()
	result, merged, err := o.Execute(context.Background(), pipeline)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success, got %q", result.Message)
	}
	if engine.callCount() != 1 {
		t.Errorf("engine called %d times", engine.callCount())
	}

	// convertVideo получил артефакт
	conv := mergedNode(t, merged, "conv")
	if got := conv.Data.String(domain.FieldConvertedPath); got != "/artifacts/conv.mp4" {
		t.Errorf("conv convertedPath = %q", got)
	}

	// display-узел получил артефакт источника своего входящего ребра
	view := mergedNode(t, merged, "view")
	if got := view.Data.String(domain.FieldVideoPath); got != "/artifacts/conv.mp4" {
		t.Errorf("view videoPath = %q", got)
	}

	// Исходный пайплайн не тронут
	orig, _ := pipeline.FindNode("conv")
	if orig.Data.String(domain.FieldConvertedPath) != "" {
		t.Error("merge must not mutate the input pipeline")
	}
}

func TestExecute_InvalidPipeline(t *testing.T) {
	engine := &stubEngine{}
	o := New(Config{Engine: engine})

	pipeline := domain.Pipeline{
		Nodes: []domain.Node{{ID: "view", Kind: domain.KindViewVideo, Data: domain.NodeData{}}},
	}

	result, nodes, err := o.Execute(context.Background(), pipeline)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Success {
		t.Error("invalid pipeline should produce failure result")
	}
	if engine.callCount() != 0 {
		t.Error("engine must not be called for invalid pipeline")
	}
	if len(nodes) != 1 || nodes[0].ID != "view" {
		t.Error("nodes should come back unchanged")
	}
}

func TestExecute_EngineError(t *testing.T) {
	engine := &stubEngine{err: errors.New("connection refused")}
	o := New(Config{Engine: engine})

	result, nodes, err := o.Execute(context.Background(), validPipeline())
	if err != nil {
		t.Fatalf("transport error should become failure result, got error %v", err)
	}
	if result.Success {
		t.Error("expected failure result")
	}
	if result.Message == "" {
		t.Error("failure result should carry a message")
	}

	// Частичное слияние не происходит никогда
	for _, n := range nodes {
		if n.Data.String(domain.FieldConvertedPath) != "" || n.Data.String(domain.FieldVideoPath) != "" {
			t.Errorf("node %s must stay untouched on failure", n.ID)
		}
	}
}

func TestExecute_EngineFailure(t *testing.T) {
	engine := &stubEngine{
		result: &domain.ExecutionResult{
			Success: false,
			Message: "ffmpeg exited with code 1",
			Outputs: map[string]domain.VideoArtifact{
				"conv": {Path: "/artifacts/partial.mp4"},
			},
		},
	}
	o := New(Config{Engine: engine})

	result, nodes, err := o.Execute(context.Background(), validPipeline())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Success {
		t.Error("expected failure result")
	}

	// Даже при частичных Outputs слияние не выполняется
	conv := mergedNode(t, nodes, "conv")
	if conv.Data.String(domain.FieldConvertedPath) != "" {
		t.Error("partial outputs must not be merged on failure")
	}
}

func TestExecute_RejectsConcurrent(t *testing.T) {
	block := make(chan struct{})
	engine := &stubEngine{
		result: &domain.ExecutionResult{Success: true},
		block:  block,
	}
	o := New(Config{Engine: engine})

	started := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		close(started)
		_, _, _ = o.Execute(context.Background(), validPipeline())
	}()

	<-started
	// Ждём, пока первый вызов займёт автомат состояния
	for !o.IsExecuting() {
		time.Sleep(time.Millisecond)
	}

	_, _, err := o.Execute(context.Background(), validPipeline())
	if !errors.Is(err, ErrExecutionInProgress) {
		t.Errorf("expected ErrExecutionInProgress, got %v", err)
	}

	close(block)
	<-done

	// После завершения автомат снова idle
	if o.IsExecuting() {
		t.Error("orchestrator should return to idle")
	}
	if _, _, err := o.Execute(context.Background(), validPipeline()); err != nil {
		t.Errorf("execute after completion should be accepted, got %v", err)
	}
}

func TestMergeResults_VmafAndAudio(t *testing.T) {
	pipeline := domain.Pipeline{
		Nodes: []domain.Node{
			{ID: "vmaf", Kind: domain.KindVmafAnalysis, Data: domain.NodeData{
				domain.FieldIsAnalyzing:   true,
				domain.FieldAnalysisError: "previous failure",
			}},
			{ID: "conv-a", Kind: domain.KindConvertAudio, Data: domain.NodeData{}},
			{ID: "untouched", Kind: domain.KindVmafAnalysis, Data: domain.NodeData{}},
		},
	}
	result := &domain.ExecutionResult{
		Success: true,
		VmafResults: map[string]domain.VmafScore{
			"vmaf": {Mean: 93.4, Min: 80.1, Max: 99.9, FrameCount: 250, Model: "vmaf_v0.6.1"},
		},
		AudioOutputs: map[string]domain.AudioArtifact{
			"conv-a": {Path: "/artifacts/out.aac", Format: "aac"},
		},
	}

	merged := mergeResults(pipeline, result)

	vmaf := mergedNode(t, merged, "vmaf")
	score, ok := vmaf.Data[domain.FieldVmafResult].(map[string]any)
	if !ok {
		t.Fatal("vmaf node should receive its score")
	}
	if score["mean"] != 93.4 || score["frame_count"] != 250 {
		t.Errorf("vmaf score = %v", score)
	}
	if vmaf.Data.Bool(domain.FieldIsAnalyzing) {
		t.Error("isAnalyzing flag should be reset")
	}
	if vmaf.Data.String(domain.FieldAnalysisError) != "" {
		t.Error("analysisError should be cleared")
	}

	// Аудио-артефакт пишется в основное поле и алиас
	convA := mergedNode(t, merged, "conv-a")
	if convA.Data.String(domain.FieldAudioPath) != "/artifacts/out.aac" {
		t.Errorf("convertAudio audioPath = %q", convA.Data.String(domain.FieldAudioPath))
	}
	if convA.Data.String(domain.FieldAudioFile) != "/artifacts/out.aac" {
		t.Errorf("convertAudio audioFile alias = %q", convA.Data.String(domain.FieldAudioFile))
	}

	// Узел без результата в картах остаётся как есть
	untouched := mergedNode(t, merged, "untouched")
	if _, ok := untouched.Data[domain.FieldVmafResult]; ok {
		t.Error("node without result must stay untouched")
	}
}

func TestMergeResults_DisplayFallbackToSourceFile(t *testing.T) {
	pipeline := domain.Pipeline{
		Nodes: []domain.Node{
			{ID: "src", Kind: domain.KindInputVideo, Data: domain.NodeData{
				domain.FieldFilePath: "/media/a.mp4",
			}},
			{ID: "view", Kind: domain.KindViewVideo, Data: domain.NodeData{}},
			{ID: "lonely", Kind: domain.KindGridView, Data: domain.NodeData{}},
		},
		Edges: []domain.Edge{
			{ID: "e1", Source: "src", SourceHandle: domain.HandleVideoOutput,
				Target: "view", TargetHandle: domain.HandleVideoInput},
		},
	}
	result := &domain.ExecutionResult{Success: true}

	merged := mergeResults(pipeline, result)

	// Источник без артефакта: откат на выбранный файл
	view := mergedNode(t, merged, "view")
	if got := view.Data.String(domain.FieldVideoPath); got != "/media/a.mp4" {
		t.Errorf("view videoPath = %q, want fallback to source file", got)
	}

	// Display без входящего ребра не трогается
	lonely := mergedNode(t, merged, "lonely")
	if _, ok := lonely.Data[domain.FieldVideoPath]; ok {
		t.Error("display without inbound edge must stay untouched")
	}
}

func mergedNode(t *testing.T, nodes []domain.Node, id string) domain.Node {
	t.Helper()
	for _, n := range nodes {
		if n.ID == id {
			return n
		}
	}
	t.Fatalf("node %s not found in merged set", id)
	return domain.Node{}
}
