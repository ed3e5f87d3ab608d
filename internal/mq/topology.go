package mq

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Exchange — тип для имени обменника.
type Exchange string

// Queue — тип для имени очереди.
type Queue string

// RoutingKey — тип для ключа маршрутизации.
type RoutingKey string

// Exchanges — имена обменников.
const (
	ExchangeRuns Exchange = "kadr.runs"
	ExchangeDLQ  Exchange = "kadr.dlq"
)

// Queues — имена очередей.
const (
	QueueRunsPending   Queue = "runs.pending"
	QueueRunsCompleted Queue = "runs.completed"
	QueueDLQRuns       Queue = "dlq.runs"
)

// Routing keys.
const (
	RoutingKeyPending   RoutingKey = "pending"
	RoutingKeyCompleted RoutingKey = "completed"
	RoutingKeyDLQRuns   RoutingKey = "runs"
)

func SetupTopology(ctx context.Context, conn *Connection) error {
	return conn.WithChannel(ctx, func(ch *amqp.Channel) error {
		if err := declareExchanges(ch); err != nil {
			return err
		}
		if err := declareQueues(ch); err != nil {
			return err
		}
		return bindQueues(ch)
	})
}

// declareExchanges создаёт обменники.
func declareExchanges(ch *amqp.Channel) error {
	exchanges := []struct {
		name Exchange
		kind string
	}{
		{ExchangeRuns, "direct"},
		{ExchangeDLQ, "direct"},
	}

	for _, ex := range exchanges {
		err := ch.ExchangeDeclare(
			string(ex.name), // name
			ex.kind,         // type
			true,            // durable
			false,           // auto-deleted
			false,           // internal
			false,           // no-wait
			nil,             // arguments
		)
		if err != nil {
			return fmt.Errorf("declare exchange %s: %w", ex.name, err)
		}
	}

	return nil
}

// declareQueues создаёт очереди.
func declareQueues(ch *amqp.Channel) error {
	// Необработанные runs уходят в DLQ для ручного разбора
	dlqArgs := amqp.Table{
		"x-dead-letter-exchange":    string(ExchangeDLQ),
		"x-dead-letter-routing-key": string(RoutingKeyDLQRuns),
	}

	queues := []struct {
		name Queue
		args amqp.Table
	}{
		{QueueRunsPending, dlqArgs},

		// runs.completed — без DLQ (события завершения)
		{QueueRunsCompleted, nil},

		// dlq.runs — сама DLQ очередь
		{QueueDLQRuns, nil},
	}

	for _, q := range queues {
		_, err := ch.QueueDeclare(
			string(q.name), // name
			true,           // durable
			false,          // delete when unused
			false,          // exclusive
			false,          // no-wait
			q.args,         // arguments
		)
		if err != nil {
			return fmt.Errorf("declare queue %s: %w", q.name, err)
		}
	}

	return nil
}

// bindQueues привязывает очереди к обменникам.
func bindQueues(ch *amqp.Channel) error {
	bindings := []struct {
		queue      Queue
		routingKey RoutingKey
		exchange   Exchange
	}{
		{QueueRunsPending, RoutingKeyPending, ExchangeRuns},
		{QueueRunsCompleted, RoutingKeyCompleted, ExchangeRuns},
		{QueueDLQRuns, RoutingKeyDLQRuns, ExchangeDLQ},
	}

	for _, b := range bindings {
		err := ch.QueueBind(
			string(b.queue),      // queue name
			string(b.routingKey), // routing key
			string(b.exchange),   // exchange
			false,                // no-wait
			nil,                  // arguments
		)
		if err != nil {
			return fmt.Errorf("bind queue %s to %s: %w", b.queue, b.exchange, err)
		}
	}

	return nil
}

// TopologyInfo возвращает описание топологии для логирования.
func TopologyInfo() string {
	return `
  Kadr RabbitMQ Topology:

    kadr.runs (direct)
    ├── runs.pending [routing: pending]
    │       Consumer: Worker
    │       DLQ: dlq.runs
    └── runs.completed [routing: completed]
            Consumer: API (status cache)

    kadr.dlq (direct)
    └── dlq.runs [routing: runs]
            Manual processing
  `
}
