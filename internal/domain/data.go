package domain

import (
	"maps"
	"reflect"
	"strconv"
	"strings"
)

// NullPlaceholder — литеральный маркер "значение не задано".
// Приходит от редактора вместо пустого поля.
const NullPlaceholder = "$ null"

// Ключи полей NodeData. Словарь общий для редактора, движка
// распространения и оркестратора — менять только синхронно с фронтендом.
const (
	// FieldFilePath — файл, выбранный пользователем (узлы-источники).
	FieldFilePath = "filePath"

	// FieldVideoPath — разрешённое видео на входе потребителя.
	FieldVideoPath = "videoPath"

	// FieldAudioPath — разрешённое аудио на входе потребителя.
	FieldAudioPath = "audioPath"

	// FieldAudioFile — исторический алиас FieldAudioPath.
	// Старые потребители читали это имя; пишем в оба.
	FieldAudioFile = "audioFile"

	// FieldReferenceVideo — эталонное видео узла сравнения.
	FieldReferenceVideo = "referenceVideo"

	// FieldTestVideo — проверяемое видео узла сравнения.
	FieldTestVideo = "testVideo"

	// FieldTrimParams — параметры обрезки {start, end, duration}.
	FieldTrimParams = "trimParams"

	// FieldConvertedPath — артефакт движка для transform-узла.
	// Заполняется только после успешного выполнения.
	FieldConvertedPath = "convertedPath"

	// FieldVmafResult — результат сравнения качества.
	FieldVmafResult = "vmafResult"

	// FieldIsAnalyzing — флаг "анализ выполняется" узла сравнения.
	FieldIsAnalyzing = "isAnalyzing"

	// FieldAnalysisError — текст ошибки анализа узла сравнения.
	FieldAnalysisError = "analysisError"

	// FieldStartTime — начало обрезки, секунды (trim-узлы).
	FieldStartTime = "startTime"

	// FieldEndTime — конец обрезки, секунды (trim-узлы).
	FieldEndTime = "endTime"
)

// IsUnset возвращает true, если строка — сентинел "нет значения":
// пустая строка, строка из пробелов или литерал "$ null".
// Сентинел никогда не должен трактоваться как настоящее значение.
func IsUnset(s string) bool {
	return strings.TrimSpace(s) == "" || s == NullPlaceholder
}

// NodeData — payload узла, специфичный для его типа.
//
// Хранится как JSON-объект: значения пишет и редактор (настройки узла),
// и движок распространения (разрешённые входы), и оркестратор (артефакты).
type NodeData map[string]any

// String возвращает строковое значение ключа.
// Отсутствующий ключ или нестроковое значение — пустая строка.
func (d NodeData) String(key string) string {
	if d == nil {
		return ""
	}
	s, _ := d[key].(string)
	return s
}

// StringSet возвращает строковое значение ключа и признак того,
// что значение задано (не сентинел).
func (d NodeData) StringSet(key string) (string, bool) {
	s := d.String(key)
	if IsUnset(s) {
		return "", false
	}
	return s, true
}

// Float возвращает числовое значение ключа.
// Поддерживает float64, int и числовые строки (редактор присылает и так, и так).
func (d NodeData) Float(key string, def float64) float64 {
	if d == nil {
		return def
	}
	switch v := d[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

// Bool возвращает булево значение ключа.
func (d NodeData) Bool(key string) bool {
	if d == nil {
		return false
	}
	b, _ := d[key].(bool)
	return b
}

// Clone возвращает неглубокую копию payload.
// Достаточно для copy-on-write в распространении: вложенные значения
// (trimParams, vmafResult) заменяются целиком, а не мутируются.
func (d NodeData) Clone() NodeData {
	if d == nil {
		return NodeData{}
	}
	return maps.Clone(d)
}

// ValueEqual сравнивает значение ключа с кандидатом.
// Используется политикой записи распространения: пишем только
// изменившиеся значения, чтобы не плодить лишние перерасчёты.
func (d NodeData) ValueEqual(key string, value any) bool {
	if d == nil {
		return false
	}
	cur, ok := d[key]
	if !ok {
		return false
	}
	return reflect.DeepEqual(cur, value)
}
