package graph

import "github.com/shaiso/Kadr/internal/domain"

// Propagate пересчитывает эффективные входные значения всех
// узлов-потребителей по текущему графу.
//
// Детерминированная и идемпотентная функция: исходные узлы не
// мутируются, возвращается новый срез. Вызывается целиком после
// каждой мутации графа — полный перерасчёт вместо инкрементального
// (размен производительности на корректность, см. DESIGN.md).
//
// Политика записи: поле приёмника перезаписывается только если
// новое значение определено, не сентинел и отличается от текущего —
// иначе ссылочная стабильность данных ломала бы потребителей,
// сравнивающих по идентичности, и плодила бы лишние перерасчёты.
func Propagate(nodes []domain.Node, edges []domain.Edge) []domain.Node {
	p := &propagation{
		res:    newResolver(nodes, edges),
		result: make([]domain.Node, len(nodes)),
		index:  make(map[string]int, len(nodes)),
		cloned: make(map[string]bool),
	}
	copy(p.result, nodes)
	for i, n := range nodes {
		p.index[n.ID] = i
	}

	for _, edge := range edges {
		p.propagateEdge(edge)
	}

	return p.result
}

// propagation — состояние одного прохода перерасчёта.
type propagation struct {
	res    *resolver
	result []domain.Node
	index  map[string]int
	cloned map[string]bool
}

// propagateEdge обрабатывает одно ребро: диспетчеризация по типу
// приёмника и тегу исходного порта.
func (p *propagation) propagateEdge(edge domain.Edge) {
	target, ok := p.res.byID[edge.Target]
	if !ok {
		return
	}
	source, ok := p.res.byID[edge.Source]
	if !ok {
		return
	}

	// Узел сравнения: каждый из двух входов разрешается и
	// записывается независимо, поле выбирается тегом порта.
	if target.Kind.IsComparison() {
		field := ""
		switch edge.TargetHandle {
		case domain.HandleReferenceInput:
			field = domain.FieldReferenceVideo
		case domain.HandleTestInput:
			field = domain.FieldTestVideo
		}
		if field != "" {
			if video, ok := p.res.resolveVideo(edge.Source); ok {
				p.write(edge.Target, field, video)
			}
		}
		return
	}

	// Легаси: аудио-источник отдавал аудио через видео-порт.
	// Независимо от номинального тега разрешаем аудио и пишем
	// в основное поле и в исторический алиас.
	if source.Kind == domain.KindInputAudio && target.Kind.ConsumesAudio() {
		if audio, ok := p.res.resolveAudio(edge.Source); ok {
			p.writeAudio(edge.Target, target.Kind, audio)
		}
		return
	}

	switch {
	case edge.SourceHandle == domain.HandleVideoOutput && edge.TargetHandle == domain.HandleVideoInput:
		if video, ok := p.res.resolveVideo(edge.Source); ok {
			p.writeVideo(edge.Target, target.Kind, video)
		}

	case edge.SourceHandle == domain.HandleAudioOutput && edge.TargetHandle == domain.HandleAudioInput:
		if audio, ok := p.res.resolveAudio(edge.Source); ok {
			p.writeAudio(edge.Target, target.Kind, audio)
		}

	case edge.SourceHandle == domain.HandleDataOutput && edge.TargetHandle == domain.HandleDataInput:
		if params, ok := p.res.resolveTrimParams(edge.Source); ok && acceptsTrimParams(target.Kind) {
			p.write(edge.Target, domain.FieldTrimParams, params)
		}
	}
}

// writeVideo пишет разрешённое видео в терминального потребителя.
// Промежуточные узлы (trim/convert) значение не хранят — оно
// выводится резолвером на каждом разрешении.
func (p *propagation) writeVideo(nodeID string, kind domain.NodeKind, video string) {
	if !kind.IsTerminal() {
		return
	}
	p.write(nodeID, domain.FieldVideoPath, video)
}

// writeAudio пишет разрешённое аудио в терминального потребителя —
// в основное поле и исторический алиас.
func (p *propagation) writeAudio(nodeID string, kind domain.NodeKind, audio string) {
	if !kind.IsTerminal() {
		return
	}
	p.write(nodeID, domain.FieldAudioPath, audio)
	p.write(nodeID, domain.FieldAudioFile, audio)
}

// write применяет политику записи к одному полю приёмника.
func (p *propagation) write(nodeID, key string, value any) {
	idx, ok := p.index[nodeID]
	if !ok {
		return
	}

	if s, isString := value.(string); isString && domain.IsUnset(s) {
		return
	}
	if p.result[idx].Data.ValueEqual(key, value) {
		return
	}

	if !p.cloned[nodeID] {
		p.result[idx].Data = p.result[idx].Data.Clone()
		p.cloned[nodeID] = true
	}
	p.result[idx].Data[key] = value
}

// acceptsTrimParams — потребители параметров обрезки.
func acceptsTrimParams(kind domain.NodeKind) bool {
	switch kind {
	case domain.KindConvertVideo, domain.KindConvertAudio, domain.KindSequenceExtract:
		return true
	default:
		return false
	}
}
