package graph

import (
	"log/slog"

	"github.com/shaiso/Kadr/internal/domain"
)

// Validator решает, допустимо ли соединение-кандидат.
//
// Чистый предикат без побочных эффектов: каждое решение логируется
// для отладки, но ничего не бросает и граф не меняет. Validator
// только фильтрует предлагаемые соединения — замену занятого порта
// выполняет lifecycle без его участия.
type Validator struct {
	logger *slog.Logger
}

// NewValidator создаёт Validator с инжектируемым логгером.
func NewValidator(logger *slog.Logger) *Validator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Validator{logger: logger}
}

// IsValidConnection проверяет кандидата по таблице совместимости.
//
// Правила (в порядке проверки):
//  1. Оба узла должны существовать и иметь известный тип — иначе отказ.
//  2. Отсутствующий тег порта — разрешаем (историческая лояльность
//     редактора, фиксируется warning'ом).
//  3. audio-output → audio-input: источник производит аудио, приёмник потребляет.
//  4. video-output → video-input: источник производит видео, приёмник потребляет.
//  5. data-output → data-input: всегда разрешено (параметрические рёбра
//     не ограничены типами).
//  6. video-output → reference-input/test-input: источник производит видео,
//     приёмник — узел сравнения.
//  7. Легаси: video-output → audio-input разрешено только когда источник —
//     именно аудио-источник (исторически отдавал аудио через видео-порт).
//  8. Всё остальное — отказ.
func (v *Validator) IsValidConnection(candidate domain.Edge, nodes []domain.Node) bool {
	source, sourceOK := findNode(nodes, candidate.Source)
	target, targetOK := findNode(nodes, candidate.Target)

	if !sourceOK || !targetOK {
		v.logger.Debug("connection rejected: node not found",
			"source", candidate.Source,
			"target", candidate.Target,
		)
		return false
	}

	if !source.Kind.Valid() || !target.Kind.Valid() {
		v.logger.Debug("connection rejected: unknown node kind",
			"source_kind", source.Kind,
			"target_kind", target.Kind,
		)
		return false
	}

	// Лояльность к отсутствующим тегам портов: редактор иногда не
	// присылает handle, такие соединения исторически разрешены.
	if candidate.SourceHandle == "" || candidate.TargetHandle == "" {
		v.logger.Warn("connection accepted without handle tags",
			"source", candidate.Source,
			"target", candidate.Target,
		)
		return true
	}

	allowed := v.checkCompatibility(candidate, source.Kind, target.Kind)

	if allowed {
		v.logger.Debug("connection accepted",
			"source", candidate.Source,
			"source_handle", candidate.SourceHandle,
			"target", candidate.Target,
			"target_handle", candidate.TargetHandle,
		)
	} else {
		v.logger.Debug("connection rejected by compatibility table",
			"source", candidate.Source,
			"source_handle", candidate.SourceHandle,
			"source_kind", source.Kind,
			"target", candidate.Target,
			"target_handle", candidate.TargetHandle,
			"target_kind", target.Kind,
		)
	}

	return allowed
}

// checkCompatibility — сама таблица совместимости.
func (v *Validator) checkCompatibility(candidate domain.Edge, source, target domain.NodeKind) bool {
	sh := candidate.SourceHandle
	th := candidate.TargetHandle

	switch {
	case sh == domain.HandleAudioOutput && th == domain.HandleAudioInput:
		return source.ProducesAudio() && target.ConsumesAudio()

	case sh == domain.HandleVideoOutput && th == domain.HandleVideoInput:
		return source.ProducesVideo() && target.ConsumesVideo()

	case sh == domain.HandleDataOutput && th == domain.HandleDataInput:
		return true

	case sh == domain.HandleVideoOutput &&
		(th == domain.HandleReferenceInput || th == domain.HandleTestInput):
		return source.ProducesVideo() && target.IsComparison()

	case sh == domain.HandleVideoOutput && th == domain.HandleAudioInput:
		// Легаси: аудио-источник отдаёт аудио через видео-порт.
		return source == domain.KindInputAudio && target.ConsumesAudio()

	default:
		return false
	}
}

// findNode возвращает узел по ID.
func findNode(nodes []domain.Node, id string) (domain.Node, bool) {
	for _, n := range nodes {
		if n.ID == id {
			return n, true
		}
	}
	return domain.Node{}, false
}
