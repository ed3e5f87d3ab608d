// Package engineclient — клиент внешнего движка выполнения.
//
// Движок (ffmpeg-сервис) — внешний коллаборатор: он выполняет
// транскодирование, анализ и сравнение, а Kadr передаёт ему
// сериализованный граф и получает артефакты. Транспорт — HTTP.
//
// Контракт запроса/ответа:
//
//	POST {ENGINE_URL}/execute
//	Request:  { nodes: [{id, kind, data}], connections: [{id, from, to, fromHandle, toHandle}] }
//	Response: { success, message, outputs, vmaf_results?, audio_outputs? }
package engineclient
