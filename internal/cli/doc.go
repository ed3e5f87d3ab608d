// Package cli реализует инструмент командной строки Kadr.
//
// # Обзор
//
// CLI — клиентская утилита для взаимодействия с Kadr API.
// Работает через HTTP, не импортирует внутренние пакеты системы.
// CLI используется для управления pipelines, runs и schedules.
//
// # Ключевые компоненты
//
// ## Client
//
// HTTP-клиент для Kadr API. Инкапсулирует все HTTP-запросы,
// парсинг ответов (DataResponse, ListResponse, ErrorResponse)
// и обработку ошибок.
//
//	client := cli.NewClient("http://localhost:8080")
//	pipelines, err := client.ListPipelines()
//
// ## Output
//
// Форматирование вывода. Поддерживает два режима:
//   - Таблицы (text/tabwriter) — по умолчанию
//   - JSON — с флагом --json
//
// Данные выводятся в stdout, сообщения (Success/Error) — в stderr.
// Это позволяет использовать pipe: kadr pipeline list --json | jq .
//
// ## Commands
//
// Cobra-команды организованы по ресурсам:
//   - pipeline: list, create, show, update, delete, validate, execute
//   - run: list, start, show
//   - schedule: list, create, show, enable, disable, delete
//
// Каждая группа создаётся через фабричную функцию (NewPipelineCmd и т.д.),
// принимающую clientFn и outputFn — замыкания для ленивого создания
// Client и Output после парсинга PersistentFlags.
package cli
