package graph

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/shaiso/Kadr/internal/domain"
)

// Store — хранилище графа, единственный источник истины.
//
// Все мутации проходят через один мьютекс: никакой компонент не
// наблюдает частично применённый набор рёбер. Распространение
// пересчитывается реактивно после каждой мутации, уже после того,
// как мутация полностью применена.
//
// Выполнение пайплайна хранилище не блокирует: оркестратор работает
// по снимку (Snapshot), редактирование остаётся доступным.
type Store struct {
	mu        sync.RWMutex
	nodes     []domain.Node
	edges     []domain.Edge
	validator *Validator
	logger    *slog.Logger
}

// NewStore создаёт хранилище из существующего графа.
// Распространение пересчитывается сразу — загруженный граф мог
// быть сохранён до последних изменений данных узлов.
func NewStore(pipeline domain.Pipeline, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Store{
		nodes:     append([]domain.Node(nil), pipeline.Nodes...),
		edges:     append([]domain.Edge(nil), pipeline.Edges...),
		validator: NewValidator(logger),
		logger:    logger,
	}
	s.nodes = Propagate(s.nodes, s.edges)
	return s
}

// AddNode добавляет узел в граф.
func (s *Store) AddNode(node domain.Node) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !node.Kind.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownKind, node.Kind)
	}
	for _, n := range s.nodes {
		if n.ID == node.ID {
			return fmt.Errorf("%w: %s", ErrDuplicateNode, node.ID)
		}
	}

	s.nodes = append(s.nodes, node.Clone())
	s.recompute()
	return nil
}

// SetNodeData заменяет payload узла (правка настроек в редакторе).
func (s *Store) SetNodeData(nodeID string, data domain.NodeData) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.nodes {
		if n.ID == nodeID {
			s.nodes[i].Data = data.Clone()
			s.recompute()
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrNodeNotFound, nodeID)
}

// RemoveNode удаляет узел и все касающиеся его рёбра.
// Рёбра удаляются через lifecycle, чтобы сработали cleanup-патчи.
func (s *Store) RemoveNode(nodeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, n := range s.nodes {
		if n.ID == nodeID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrNodeNotFound, nodeID)
	}

	for _, e := range append([]domain.Edge(nil), s.edges...) {
		if e.Source == nodeID || e.Target == nodeID {
			s.nodes, s.edges, _ = applyRemove(s.nodes, s.edges, e.ID)
		}
	}

	s.nodes = append(s.nodes[:idx:idx], s.nodes[idx+1:]...)
	s.recompute()
	return nil
}

// Connect проверяет кандидата и подключает его.
//
// Валидатор решает, предлагается ли соединение вообще; замену
// занятого порта выполняет lifecycle без участия валидатора.
// Возвращает вставленное ребро (с присвоенным ID).
func (s *Store) Connect(candidate domain.Edge) (domain.Edge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.validator.IsValidConnection(candidate, s.nodes) {
		return domain.Edge{}, fmt.Errorf("%w: %s -> %s", ErrInvalidConnection,
			candidate.Source, candidate.Target)
	}

	s.edges = applyConnect(s.edges, candidate)
	inserted := s.edges[len(s.edges)-1]
	s.recompute()
	return inserted, nil
}

// RemoveEdge удаляет ребро по ID, применяя cleanup приёмника.
func (s *Store) RemoveEdge(edgeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	nodes, edges, found := applyRemove(s.nodes, s.edges, edgeID)
	if !found {
		return fmt.Errorf("%w: %s", ErrEdgeNotFound, edgeID)
	}

	s.nodes = nodes
	s.edges = edges
	s.recompute()
	return nil
}

// ApplyNodes заменяет узлы результатом слияния оркестратора.
// Следующий перерасчёт видит артефакты движка как обычные
// upstream-значения.
func (s *Store) ApplyNodes(nodes []domain.Node) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nodes = append([]domain.Node(nil), nodes...)
	s.recompute()
}

// Snapshot возвращает копию графа для чтения и выполнения.
func (s *Store) Snapshot() domain.Pipeline {
	s.mu.RLock()
	defer s.mu.RUnlock()

	nodes := make([]domain.Node, len(s.nodes))
	for i, n := range s.nodes {
		nodes[i] = n.Clone()
	}
	edges := make([]domain.Edge, len(s.edges))
	copy(edges, s.edges)

	return domain.Pipeline{Nodes: nodes, Edges: edges}
}

// NodeCount возвращает количество узлов.
func (s *Store) NodeCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.nodes)
}

// EdgeCount возвращает количество рёбер.
func (s *Store) EdgeCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.edges)
}

// recompute перезапускает распространение. Вызывается под мьютексом
// после полного применения мутации.
func (s *Store) recompute() {
	s.nodes = Propagate(s.nodes, s.edges)
}
