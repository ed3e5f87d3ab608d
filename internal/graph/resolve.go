package graph

import "github.com/shaiso/Kadr/internal/domain"

// Рекурсивное разрешение значений через цепочки узлов.
//
// Резолверы чистые и детерминированные: работают по снимку графа,
// ничего не мутируют. Невозможность разрешить значение — не ошибка,
// а "нет значения" (второй результат false).

// resolver держит индексы одного прохода разрешения.
type resolver struct {
	byID  map[string]domain.Node
	edges []domain.Edge
}

func newResolver(nodes []domain.Node, edges []domain.Edge) *resolver {
	byID := make(map[string]domain.Node, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = n
	}
	return &resolver{byID: byID, edges: edges}
}

// resolveVideo возвращает эффективное видео узла.
//
//   - видео-источник: выбранный файл, если он не сентинел
//   - pass-through (trim): рекурсия в источник его video-input ребра
//   - transform (convert): артефакт движка, если выполнение уже было;
//     иначе preview — рекурсия в источник (как pass-through)
//   - всё остальное: "нет значения"
//
// Граф предполагается ацикличным, но защита есть: повторный визит
// узла прерывает разрешение (см. DESIGN.md).
func (r *resolver) resolveVideo(nodeID string) (string, bool) {
	return r.resolveVideoGuarded(nodeID, make(map[string]bool))
}

func (r *resolver) resolveVideoGuarded(nodeID string, visited map[string]bool) (string, bool) {
	if visited[nodeID] {
		return "", false
	}
	visited[nodeID] = true

	node, ok := r.byID[nodeID]
	if !ok {
		return "", false
	}

	switch node.Kind {
	case domain.KindInputVideo:
		return node.Data.StringSet(domain.FieldFilePath)

	case domain.KindTrimVideo:
		source, ok := r.inboundSource(nodeID, domain.HandleVideoInput)
		if !ok {
			return "", false
		}
		return r.resolveVideoGuarded(source, visited)

	case domain.KindConvertVideo:
		if artifact, ok := node.Data.StringSet(domain.FieldConvertedPath); ok {
			return artifact, true
		}
		source, ok := r.inboundSource(nodeID, domain.HandleVideoInput)
		if !ok {
			return "", false
		}
		return r.resolveVideoGuarded(source, visited)

	default:
		return "", false
	}
}

// resolveAudio возвращает эффективное аудио узла.
// Та же форма, что resolveVideo, над аудио-цепочками.
func (r *resolver) resolveAudio(nodeID string) (string, bool) {
	return r.resolveAudioGuarded(nodeID, make(map[string]bool))
}

func (r *resolver) resolveAudioGuarded(nodeID string, visited map[string]bool) (string, bool) {
	if visited[nodeID] {
		return "", false
	}
	visited[nodeID] = true

	node, ok := r.byID[nodeID]
	if !ok {
		return "", false
	}

	switch node.Kind {
	case domain.KindInputAudio:
		return node.Data.StringSet(domain.FieldFilePath)

	case domain.KindTrimAudio:
		source, ok := r.inboundSource(nodeID, domain.HandleAudioInput)
		if !ok {
			return "", false
		}
		return r.resolveAudioGuarded(source, visited)

	case domain.KindConvertAudio:
		if artifact, ok := node.Data.StringSet(domain.FieldAudioPath); ok {
			return artifact, true
		}
		source, ok := r.inboundSource(nodeID, domain.HandleAudioInput)
		if !ok {
			return "", false
		}
		return r.resolveAudioGuarded(source, visited)

	default:
		return "", false
	}
}

// resolveTrimParams извлекает параметры обрезки из trim-узла.
// Для остальных типов — "нет значения".
func (r *resolver) resolveTrimParams(nodeID string) (map[string]any, bool) {
	node, ok := r.byID[nodeID]
	if !ok {
		return nil, false
	}

	switch node.Kind {
	case domain.KindTrimVideo, domain.KindTrimAudio:
		start := node.Data.Float(domain.FieldStartTime, 0)
		end := node.Data.Float(domain.FieldEndTime, 0)
		if end <= start {
			return nil, false
		}
		return map[string]any{
			"start":    start,
			"end":      end,
			"duration": end - start,
		}, true

	default:
		return nil, false
	}
}

// inboundSource возвращает источник единственного входящего ребра
// узла на указанном порту.
func (r *resolver) inboundSource(nodeID string, handle domain.Handle) (string, bool) {
	for _, e := range r.edges {
		if e.Target == nodeID && e.TargetHandle == handle {
			return e.Source, true
		}
	}
	return "", false
}
