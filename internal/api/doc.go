// Package api реализует HTTP API сервиса.
//
// Структура:
//   - handler.go — Handler с зависимостями
//   - routes.go — маршруты /api/v1
//   - response.go — единый формат ответов {data} / {error}
//   - middleware.go — logging и recovery
//   - dto.go — типы запросов и ответов
//   - pipeline_handler.go — CRUD пайплайнов, редактирование графа,
//     валидация и синхронное выполнение
//   - run_handler.go — отложенные запуски через очередь
//   - schedule_handler.go — расписания автозапуска
package api
