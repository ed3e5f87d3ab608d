package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shaiso/Kadr/internal/mq"
	"github.com/shaiso/Kadr/internal/repo"
	"github.com/shaiso/Kadr/internal/scheduler"
	"github.com/shaiso/Kadr/internal/telemetry"
)

// schedLockKey — ключ advisory lock для leader election.
const schedLockKey int64 = 727272

func main() {
	// Инициализируем structured logging
	logger := telemetry.SetupLogger()
	logger.Info("starting kadr-scheduler")

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

	pipelineRepo := repo.NewPipelineRepo(pool)
	runRepo := repo.NewRunRepo(pool)
	scheduleRepo := repo.NewScheduleRepo(pool)

	// RabbitMQ (опционально: без него runs подхватит polling воркера)
	var publisher *mq.Publisher
	mqURL := os.Getenv("RABBITMQ_URL")
	if mqURL == "" {
		mqURL = mq.DefaultURL()
	}

	mqConn, err := mq.NewConnection(mqURL, logger)
	if err != nil {
		logger.Warn("RabbitMQ not available, runs rely on worker polling", "error", err)
	} else {
		defer mqConn.Close()
		logger.Info("RabbitMQ connected")

		if err := mq.SetupTopology(ctx, mqConn); err != nil {
			logger.Warn("failed to setup topology", "error", err)
		}

		publisher = mq.NewPublisher(mqConn, logger)
	}

	sched := scheduler.New(scheduler.Config{
		ScheduleRepo: scheduleRepo,
		RunRepo:      runRepo,
		PipelineRepo: pipelineRepo,
		Publisher:    publisher,
		Logger:       logger,
	})

	// HTTP mux: /healthz + /metrics
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", promhttp.Handler())

	// Leader election через pg advisory lock: cron-реестр держит
	// только один экземпляр, иначе каждое расписание создаст
	// по run на каждый экземпляр.
	go func() {
		defer func() {
			_, _ = pool.Exec(context.Background(), "select pg_advisory_unlock($1)", schedLockKey)
		}()

		for {
			var ok bool
			if err := pool.QueryRow(ctx, "select pg_try_advisory_lock($1)", schedLockKey).Scan(&ok); err != nil {
				logger.Error("advisory lock failed", "error", err)
			} else if ok {
				logger.Info("became scheduler leader")
				if err := sched.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
					logger.Error("scheduler stopped", "error", err)
				}
				return
			}

			select {
			case <-ctx.Done():
				return
			case <-time.After(5 * time.Second):
			}
		}
	}()

	port := ":8081"
	if v := os.Getenv("SCHED_PORT"); v != "" {
		port = ":" + v
	}

	go func() {
		logger.Info("listening", "addr", port)
		if err := http.ListenAndServe(port, mux); err != nil {
			logger.Error("http server error", "error", err)
			cancel()
		}
	}()

	<-ctx.Done()
	logger.Info("kadr-scheduler stopped")
}
