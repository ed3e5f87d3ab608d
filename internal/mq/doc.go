// Package mq реализует обмен сообщениями через RabbitMQ.
//
// Структура:
//   - connection.go — соединение с автоматическим reconnect
//   - topology.go — обменники, очереди и привязки
//   - publisher.go — публикация событий run.pending / run.completed
//   - consumer.go — потребление с ручным ack/nack и DLQ
//
// Очередь runs.pending потребляется воркером; runs.completed несёт
// события завершения для подписчиков статуса.
package mq
