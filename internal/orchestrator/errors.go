package orchestrator

import "errors"

// Ошибки оркестратора.
var (
	// ErrExecutionInProgress — выполнение уже идёт; второй вызов
	// Execute отклоняется, а не ставится в очередь.
	ErrExecutionInProgress = errors.New("execution already in progress")
)
