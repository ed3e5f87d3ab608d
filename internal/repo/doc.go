// Package repo реализует доступ к PostgreSQL через pgx.
//
// Структура:
//   - db.go — создание пула соединений (DB_URL)
//   - errors.go — общие ошибки репозиториев
//   - pipeline_repo.go — сохранённые пайплайны (граф в JSONB)
//   - run_repo.go — запуски пайплайнов
//   - schedule_repo.go — расписания автозапуска
//
// Все репозитории возвращают ErrNotFound для отсутствующих записей,
// остальные ошибки оборачиваются с контекстом операции.
package repo
