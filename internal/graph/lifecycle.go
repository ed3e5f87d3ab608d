package graph

import "github.com/shaiso/Kadr/internal/domain"

// removalCleanup — реактивные патчи данных при удалении ребра,
// по типу узла-приёмника. Не общее правило, а точечная таблица:
// анализатор спектра кэширует ссылки на аудио/видео и без сброса
// продолжал бы показывать устаревший результат.
var removalCleanup = map[domain.NodeKind]domain.NodeData{
	domain.KindSpectrumAnalyzer: {
		domain.FieldAudioPath: "",
		domain.FieldVideoPath: "",
		domain.FieldAudioFile: "",
	},
}

// applyConnect вставляет ребро-кандидата в набор рёбер.
//
// Существующее ребро с той же парой (target, targetHandle) молча
// удаляется — так "втыкание в занятый порт" заменяет старое соединение.
// Инвариант после вызова: не более одного входящего ребра на порт.
func applyConnect(edges []domain.Edge, candidate domain.Edge) []domain.Edge {
	if candidate.ID == "" {
		candidate.ID = domain.NewEdgeID()
	}
	candidate.Media = edgeMedia(candidate)

	result := make([]domain.Edge, 0, len(edges)+1)
	for _, e := range edges {
		if e.OccupiesSamePort(candidate) {
			continue
		}
		result = append(result, e)
	}
	return append(result, candidate)
}

// applyRemove удаляет ребро и применяет cleanup-патч к приёмнику.
// Возвращает обновлённые наборы и признак того, что ребро нашлось.
func applyRemove(nodes []domain.Node, edges []domain.Edge, edgeID string) ([]domain.Node, []domain.Edge, bool) {
	idx := -1
	for i, e := range edges {
		if e.ID == edgeID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nodes, edges, false
	}

	removed := edges[idx]
	edges = append(edges[:idx:idx], edges[idx+1:]...)

	target, ok := findNode(nodes, removed.Target)
	if !ok {
		return nodes, edges, true
	}

	patch, ok := removalCleanup[target.Kind]
	if !ok {
		return nodes, edges, true
	}

	result := make([]domain.Node, len(nodes))
	copy(result, nodes)
	for i, n := range result {
		if n.ID != target.ID {
			continue
		}
		data := n.Data.Clone()
		for key, value := range patch {
			data[key] = value
		}
		result[i].Data = data
	}
	return result, edges, true
}

// edgeMedia вычисляет косметическую подсказку ребра из тега порта.
// Для data-портов подсказка не ставится.
func edgeMedia(e domain.Edge) domain.Media {
	switch e.SourceHandle.Media() {
	case domain.MediaVideo:
		return domain.MediaVideo
	case domain.MediaAudio:
		return domain.MediaAudio
	default:
		return ""
	}
}
