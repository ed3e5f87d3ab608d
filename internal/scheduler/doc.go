// Package scheduler реализует автозапуск пайплайнов по расписанию.
//
// Структура:
//   - scheduler.go — cron-реестр с периодической сверкой с БД
//   - cron.go      — парсер и валидация cron-выражений
//
// Scheduler не выполняет пайплайны сам: по срабатыванию расписания
// создаётся run в статусе PENDING и публикуется run.pending —
// выполнение на стороне воркера.
package scheduler
