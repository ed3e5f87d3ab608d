// Package worker реализует выполнение отложенных runs.
//
// Структура:
//   - worker.go — жизненный цикл: consumer runs.pending + polling fallback
//   - handlers.go — обработка одного run: загрузка, пересчёт, выполнение,
//     сохранение результата и публикация runs.completed
//
// Воркер держит prefetch = 1 и выполняет runs последовательно:
// внешний движок обрабатывает один пайплайн за раз.
package worker
