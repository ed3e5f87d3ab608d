package graph

import "errors"

// Ошибки работы с графом.
var (
	// ErrInvalidConnection — соединение не прошло таблицу совместимости.
	ErrInvalidConnection = errors.New("invalid connection")

	// ErrNodeNotFound — узел не найден в графе.
	ErrNodeNotFound = errors.New("node not found")

	// ErrEdgeNotFound — ребро не найдено в графе.
	ErrEdgeNotFound = errors.New("edge not found")

	// ErrDuplicateNode — узел с таким ID уже есть в графе.
	ErrDuplicateNode = errors.New("duplicate node ID")

	// ErrUnknownKind — тип узла не входит в закрытое перечисление.
	ErrUnknownKind = errors.New("unknown node kind")
)
