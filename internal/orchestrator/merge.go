package orchestrator

import "github.com/shaiso/Kadr/internal/domain"

// mergeResults сливает артефакты движка в данные узлов.
//
// Работает по копии: исходные узлы не трогаются, вызывается только
// для успешного результата. Обновляются лишь узлы с разрешимой
// привязкой — остальные возвращаются как есть.
//
// Правила по типам узлов:
//   - узел сравнения: результат по своему ключу + сброс флагов анализа
//   - convertAudio: путь аудио-артефакта в основное поле и алиас
//   - convertVideo: путь артефакта в FieldConvertedPath — после этого
//     резолвер видео отдаёт артефакт вместо preview входа
//   - display/inspector: артефакт источника своего единственного
//     входящего ребра, с откатом на выбранный файл узла-источника
func mergeResults(pipeline domain.Pipeline, result *domain.ExecutionResult) []domain.Node {
	merged := make([]domain.Node, len(pipeline.Nodes))
	copy(merged, pipeline.Nodes)

	for i, node := range merged {
		switch {
		case node.Kind.IsComparison():
			score, ok := result.VmafResults[node.ID]
			if !ok {
				continue
			}
			data := node.Data.Clone()
			data[domain.FieldVmafResult] = map[string]any{
				"mean":           score.Mean,
				"min":            score.Min,
				"max":            score.Max,
				"harmonic_mean":  score.HarmonicMean,
				"frame_count":    score.FrameCount,
				"model":          score.Model,
				"reference_path": score.ReferencePath,
				"distorted_path": score.DistortedPath,
			}
			data[domain.FieldIsAnalyzing] = false
			data[domain.FieldAnalysisError] = ""
			merged[i].Data = data

		case node.Kind == domain.KindConvertAudio:
			artifact, ok := result.AudioOutputs[node.ID]
			if !ok {
				continue
			}
			data := node.Data.Clone()
			data[domain.FieldAudioPath] = artifact.Path
			data[domain.FieldAudioFile] = artifact.Path
			merged[i].Data = data

		case node.Kind == domain.KindConvertVideo:
			artifact, ok := result.Outputs[node.ID]
			if !ok {
				continue
			}
			data := node.Data.Clone()
			data[domain.FieldConvertedPath] = artifact.Path
			merged[i].Data = data

		case node.Kind.IsDisplay():
			path, ok := displayBinding(node.ID, pipeline, result)
			if !ok {
				continue
			}
			data := node.Data.Clone()
			data[domain.FieldVideoPath] = path
			merged[i].Data = data
		}
	}

	return merged
}

// displayBinding разрешает привязку display-узла: артефакт источника
// его единственного входящего ребра, иначе — выбранный файл источника,
// если тот является узлом-источником.
func displayBinding(nodeID string, pipeline domain.Pipeline, result *domain.ExecutionResult) (string, bool) {
	var inbound *domain.Edge
	for i, e := range pipeline.Edges {
		if e.Target == nodeID {
			inbound = &pipeline.Edges[i]
			break
		}
	}
	if inbound == nil {
		return "", false
	}

	if artifact, ok := result.Outputs[inbound.Source]; ok {
		return artifact.Path, true
	}

	source, ok := pipeline.FindNode(inbound.Source)
	if !ok || !source.Kind.IsLeafProducer() {
		return "", false
	}
	return source.Data.StringSet(domain.FieldFilePath)
}
