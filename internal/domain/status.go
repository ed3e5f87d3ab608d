package domain

// RunStatus — статус выполнения run.
//
// Жизненный цикл:
//
//	PENDING → RUNNING → SUCCEEDED
//	                  ↘ FAILED
type RunStatus string

const (
	// RunStatusPending — run создан, но ещё не начал выполняться.
	RunStatusPending RunStatus = "PENDING"

	// RunStatusRunning — пайплайн передан движку выполнения.
	RunStatusRunning RunStatus = "RUNNING"

	// RunStatusSucceeded — движок вернул success, результаты слиты в граф.
	RunStatusSucceeded RunStatus = "SUCCEEDED"

	// RunStatusFailed — движок вернул ошибку; граф не изменён.
	RunStatusFailed RunStatus = "FAILED"
)

// IsTerminal возвращает true, если статус финальный.
func (s RunStatus) IsTerminal() bool {
	switch s {
	case RunStatusSucceeded, RunStatusFailed:
		return true
	default:
		return false
	}
}
