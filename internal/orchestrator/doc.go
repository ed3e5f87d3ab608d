// Package orchestrator — оркестратор выполнения пайплайна.
//
// Оркестратор:
//   - проверяет готовность пайплайна (Validate)
//   - сериализует граф и передаёт его внешнему движку выполнения
//   - сливает вернувшиеся артефакты обратно в данные узлов
//   - гарантирует отсутствие частичного слияния при любой ошибке
//
// Одновременно выполняется не более одного пайплайна: второй вызов
// Execute при незавершённом первом отклоняется (ErrExecutionInProgress).
// Явный автомат idle → executing → idle вместо гонки двух слияний.
package orchestrator
