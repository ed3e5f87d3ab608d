// Kadr Worker — выполняет отложенные runs.
//
// Worker:
//   - Получает runs из RabbitMQ (runs.pending)
//   - Подхватывает pending runs из БД через polling fallback
//   - Передаёт пайплайн внешнему движку через оркестратор
//   - Сохраняет результат и публикует runs.completed
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shaiso/Kadr/internal/engineclient"
	"github.com/shaiso/Kadr/internal/mq"
	"github.com/shaiso/Kadr/internal/orchestrator"
	"github.com/shaiso/Kadr/internal/repo"
	"github.com/shaiso/Kadr/internal/telemetry"
	"github.com/shaiso/Kadr/internal/worker"
)

func main() {
	// Инициализируем structured logging
	logger := telemetry.SetupLogger()
	logger.Info("starting kadr-worker")

	// graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// DB pool
	pool, err := repo.NewPool(ctx)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("database connected")

	// Создаём репозитории
	runRepo := repo.NewRunRepo(pool)
	pipelineRepo := repo.NewPipelineRepo(pool)

	// RabbitMQ
	var publisher *mq.Publisher
	var mqConn *mq.Connection
	mqURL := os.Getenv("RABBITMQ_URL")
	if mqURL == "" {
		mqURL = mq.DefaultURL()
	}

	mqConn, err = mq.NewConnection(mqURL, logger)
	if err != nil {
		logger.Warn("RabbitMQ not available, running in polling-only mode", "error", err)
	} else {
		defer mqConn.Close()
		logger.Info("RabbitMQ connected")

		// Создаём топологию
		if err := mq.SetupTopology(ctx, mqConn); err != nil {
			logger.Warn("failed to setup topology", "error", err)
		}

		publisher = mq.NewPublisher(mqConn, logger)
	}

	// Оркестратор с клиентом внешнего движка
	engine := engineclient.NewClient(engineclient.DefaultURL())
	orch := orchestrator.New(orchestrator.Config{
		Engine: engine,
		Logger: logger,
	})

	// Создаём worker
	w := worker.New(worker.Config{
		RunRepo:      runRepo,
		PipelineRepo: pipelineRepo,
		Publisher:    publisher,
		Conn:         mqConn,
		Orchestrator: orch,
		Logger:       logger,
	})

	// Запускаем worker
	if err := w.Start(ctx); err != nil {
		logger.Error("failed to start worker", "error", err)
		os.Exit(1)
	}

	// HTTP mux: /healthz + /metrics
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", promhttp.Handler())

	port := ":8082"
	if v := os.Getenv("WORKER_PORT"); v != "" {
		port = ":" + v
	}

	go func() {
		logger.Info("listening", "addr", port)
		if err := http.ListenAndServe(port, mux); err != nil {
			logger.Error("http server error", "error", err)
			cancel()
		}
	}()

	// Ожидаем сигнал завершения
	<-ctx.Done()

	// Останавливаем worker
	w.Stop()
	logger.Info("kadr-worker stopped")
}
