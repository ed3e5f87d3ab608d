package graph

import (
	"errors"
	"testing"

	"github.com/shaiso/Kadr/internal/domain"
)

func TestStore_AddNode(t *testing.T) {
	s := NewStore(domain.Pipeline{}, nil)

	if err := s.AddNode(domain.Node{ID: "a", Kind: domain.KindInputVideo}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.NodeCount() != 1 {
		t.Errorf("expected 1 node, got %d", s.NodeCount())
	}

	// Дубликат ID
	err := s.AddNode(domain.Node{ID: "a", Kind: domain.KindViewVideo})
	if !errors.Is(err, ErrDuplicateNode) {
		t.Errorf("expected ErrDuplicateNode, got %v", err)
	}

	// Неизвестный тип
	err = s.AddNode(domain.Node{ID: "b", Kind: domain.NodeKind("mystery")})
	if !errors.Is(err, ErrUnknownKind) {
		t.Errorf("expected ErrUnknownKind, got %v", err)
	}
}

func TestStore_SetNodeData(t *testing.T) {
	s := NewStore(domain.Pipeline{
		Nodes: []domain.Node{
			{ID: "src", Kind: domain.KindInputVideo},
			{ID: "view", Kind: domain.KindViewVideo},
		},
		Edges: []domain.Edge{
			edge("src", domain.HandleVideoOutput, "view", domain.HandleVideoInput),
		},
	}, nil)

	// Правка данных источника дотягивается до потребителя
	err := s.SetNodeData("src", domain.NodeData{domain.FieldFilePath: "/media/a.mp4"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	snap := s.Snapshot()
	view, _ := snap.FindNode("view")
	if got := view.Data.String(domain.FieldVideoPath); got != "/media/a.mp4" {
		t.Errorf("view videoPath = %q after SetNodeData", got)
	}

	if err := s.SetNodeData("ghost", domain.NodeData{}); !errors.Is(err, ErrNodeNotFound) {
		t.Errorf("expected ErrNodeNotFound, got %v", err)
	}
}

func TestStore_Connect(t *testing.T) {
	s := NewStore(domain.Pipeline{
		Nodes: []domain.Node{
			{ID: "src", Kind: domain.KindInputVideo, Data: domain.NodeData{
				domain.FieldFilePath: "/media/a.mp4",
			}},
			{ID: "audio", Kind: domain.KindInputAudio},
			{ID: "view", Kind: domain.KindViewVideo},
		},
	}, nil)

	inserted, err := s.Connect(edge("src", domain.HandleVideoOutput, "view", domain.HandleVideoInput))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inserted.ID == "" {
		t.Error("inserted edge should get an ID")
	}

	// Соединение сразу распространяет значение
	snap := s.Snapshot()
	view, _ := snap.FindNode("view")
	if got := view.Data.String(domain.FieldVideoPath); got != "/media/a.mp4" {
		t.Errorf("view videoPath = %q after Connect", got)
	}

	// Недопустимое соединение отклоняется
	_, err = s.Connect(edge("audio", domain.HandleVideoOutput, "view", domain.HandleVideoInput))
	if !errors.Is(err, ErrInvalidConnection) {
		t.Errorf("expected ErrInvalidConnection, got %v", err)
	}
	if s.EdgeCount() != 1 {
		t.Errorf("rejected connection must not change edges, got %d", s.EdgeCount())
	}
}

func TestStore_ConnectReplacesOccupiedPort(t *testing.T) {
	s := NewStore(domain.Pipeline{
		Nodes: []domain.Node{
			{ID: "a", Kind: domain.KindInputVideo, Data: domain.NodeData{
				domain.FieldFilePath: "/media/a.mp4",
			}},
			{ID: "b", Kind: domain.KindInputVideo, Data: domain.NodeData{
				domain.FieldFilePath: "/media/b.mp4",
			}},
			{ID: "view", Kind: domain.KindViewVideo},
		},
	}, nil)

	if _, err := s.Connect(edge("a", domain.HandleVideoOutput, "view", domain.HandleVideoInput)); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Connect(edge("b", domain.HandleVideoOutput, "view", domain.HandleVideoInput)); err != nil {
		t.Fatal(err)
	}

	if s.EdgeCount() != 1 {
		t.Fatalf("occupied port must hold one edge, got %d", s.EdgeCount())
	}

	snap := s.Snapshot()
	if snap.Edges[0].Source != "b" {
		t.Errorf("surviving edge source = %s, want b", snap.Edges[0].Source)
	}
	view, _ := snap.FindNode("view")
	if got := view.Data.String(domain.FieldVideoPath); got != "/media/b.mp4" {
		t.Errorf("view videoPath = %q, want value of the new source", got)
	}
}

func TestStore_RemoveNode(t *testing.T) {
	s := NewStore(domain.Pipeline{
		Nodes: []domain.Node{
			{ID: "src", Kind: domain.KindInputVideo, Data: domain.NodeData{
				domain.FieldFilePath: "/media/a.mp4",
			}},
			{ID: "trim", Kind: domain.KindTrimVideo},
			{ID: "view", Kind: domain.KindViewVideo},
		},
		Edges: []domain.Edge{
			{ID: "e1", Source: "src", SourceHandle: domain.HandleVideoOutput,
				Target: "trim", TargetHandle: domain.HandleVideoInput},
			{ID: "e2", Source: "trim", SourceHandle: domain.HandleVideoOutput,
				Target: "view", TargetHandle: domain.HandleVideoInput},
		},
	}, nil)

	if err := s.RemoveNode("trim"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s.NodeCount() != 2 {
		t.Errorf("expected 2 nodes, got %d", s.NodeCount())
	}
	if s.EdgeCount() != 0 {
		t.Errorf("edges touching removed node must go, got %d", s.EdgeCount())
	}

	if err := s.RemoveNode("ghost"); !errors.Is(err, ErrNodeNotFound) {
		t.Errorf("expected ErrNodeNotFound, got %v", err)
	}
}

func TestStore_RemoveEdge(t *testing.T) {
	s := NewStore(domain.Pipeline{
		Nodes: []domain.Node{
			{ID: "src", Kind: domain.KindInputAudio, Data: domain.NodeData{
				domain.FieldFilePath: "/media/a.wav",
			}},
			{ID: "spectrum", Kind: domain.KindSpectrumAnalyzer},
		},
		Edges: []domain.Edge{
			{ID: "e1", Source: "src", SourceHandle: domain.HandleAudioOutput,
				Target: "spectrum", TargetHandle: domain.HandleAudioInput},
		},
	}, nil)

	// До удаления значение распространено
	snap := s.Snapshot()
	spectrum, _ := snap.FindNode("spectrum")
	if spectrum.Data.String(domain.FieldAudioPath) != "/media/a.wav" {
		t.Fatal("precondition: audio should be propagated")
	}

	if err := s.RemoveEdge("e1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Cleanup-патч сбросил кэшированные ссылки
	snap = s.Snapshot()
	spectrum, _ = snap.FindNode("spectrum")
	if spectrum.Data.String(domain.FieldAudioPath) != "" {
		t.Error("spectrum audioPath should be reset after edge removal")
	}

	if err := s.RemoveEdge("ghost"); !errors.Is(err, ErrEdgeNotFound) {
		t.Errorf("expected ErrEdgeNotFound, got %v", err)
	}
}

func TestStore_SnapshotIsolation(t *testing.T) {
	s := NewStore(domain.Pipeline{
		Nodes: []domain.Node{
			{ID: "src", Kind: domain.KindInputVideo, Data: domain.NodeData{
				domain.FieldFilePath: "/media/a.mp4",
			}},
		},
	}, nil)

	snap := s.Snapshot()
	snap.Nodes[0].Data[domain.FieldFilePath] = "/media/hacked.mp4"
	snap.Nodes[0].ID = "mutated"

	fresh := s.Snapshot()
	if fresh.Nodes[0].ID != "src" {
		t.Error("snapshot mutation leaked into store")
	}
	if fresh.Nodes[0].Data.String(domain.FieldFilePath) != "/media/a.mp4" {
		t.Error("snapshot payload mutation leaked into store")
	}
}

// Загрузка сохранённого графа сразу пересчитывает распространение:
// граф мог быть сохранён до последних правок данных.
func TestNewStore_PropagatesOnLoad(t *testing.T) {
	s := NewStore(domain.Pipeline{
		Nodes: []domain.Node{
			{ID: "src", Kind: domain.KindInputVideo, Data: domain.NodeData{
				domain.FieldFilePath: "/media/new.mp4",
			}},
			{ID: "view", Kind: domain.KindViewVideo, Data: domain.NodeData{
				domain.FieldVideoPath: "/media/stale.mp4",
			}},
		},
		Edges: []domain.Edge{
			{ID: "e1", Source: "src", SourceHandle: domain.HandleVideoOutput,
				Target: "view", TargetHandle: domain.HandleVideoInput},
		},
	}, nil)

	snap := s.Snapshot()
	view, _ := snap.FindNode("view")
	if got := view.Data.String(domain.FieldVideoPath); got != "/media/new.mp4" {
		t.Errorf("loaded graph should be recomputed, view videoPath = %q", got)
	}
}
