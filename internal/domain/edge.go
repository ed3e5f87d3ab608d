package domain

import "github.com/google/uuid"

// Edge — направленное ребро между портами узлов.
//
// Инвариант: для любой пары (Target, TargetHandle) в графе
// существует не более одного ребра. Инвариант поддерживает
// internal/graph при подключении (замена занятого порта).
type Edge struct {
	// ID — идентификатор ребра. Если редактор не прислал — генерируется.
	ID string `json:"id"`

	// Source — ID узла-источника.
	Source string `json:"source"`

	// SourceHandle — выходной порт источника.
	SourceHandle Handle `json:"sourceHandle"`

	// Target — ID узла-приёмника.
	Target string `json:"target"`

	// TargetHandle — входной порт приёмника.
	TargetHandle Handle `json:"targetHandle"`

	// Media — косметическая подсказка для редактора (вид данных ребра).
	// Чисто наблюдательная: на логику не влияет, для data-портов пустая.
	Media Media `json:"media,omitempty"`
}

// NewEdgeID генерирует идентификатор ребра.
func NewEdgeID() string {
	return uuid.NewString()
}

// OccupiesSamePort возвращает true, если ребро занимает тот же
// входной порт, что и other.
func (e Edge) OccupiesSamePort(other Edge) bool {
	return e.Target == other.Target && e.TargetHandle == other.TargetHandle
}
