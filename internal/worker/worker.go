package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/shaiso/Kadr/internal/mq"
	"github.com/shaiso/Kadr/internal/orchestrator"
	"github.com/shaiso/Kadr/internal/repo"
)

// Default configuration values.
const (
	defaultPollInterval = 10 * time.Second
	defaultBatchSize    = 20
	defaultPrefetch     = 1
)

// Worker выполняет отложенные runs.
//
// Worker — stateless компонент системы, который:
//   - Получает runs из очереди RabbitMQ (event-driven)
//   - Периодически проверяет pending runs в БД (polling fallback)
//   - Загружает сохранённый пайплайн, пересчитывает граф и передаёт
//     его оркестратору
//   - Сохраняет результат и слитый граф обратно в БД
//   - Публикует событие завершения в runs.completed
//
// Prefetch = 1: движок обрабатывает один пайплайн за раз, поэтому
// воркер не берёт следующий run до завершения текущего.
type Worker struct {
	// Repositories
	runRepo      *repo.RunRepo
	pipelineRepo *repo.PipelineRepo

	// MQ
	publisher *mq.Publisher
	conn      *mq.Connection

	// Orchestrator
	orch *orchestrator.Orchestrator

	// Consumer
	consumer *mq.Consumer

	// Configuration
	pollInterval time.Duration
	batchSize    int

	// Lifecycle
	logger     *slog.Logger
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
	stopped    bool
	stoppedMu  sync.RWMutex
}

// Config — конфигурация Worker.
type Config struct {
	// Repositories
	RunRepo      *repo.RunRepo
	PipelineRepo *repo.PipelineRepo

	// MQ
	Publisher *mq.Publisher
	Conn      *mq.Connection

	// Orchestrator — обязательный.
	Orchestrator *orchestrator.Orchestrator

	// Polling configuration
	PollInterval time.Duration // интервал polling (default: 10s)
	BatchSize    int           // количество runs за один poll (default: 20)

	// Logger
	Logger *slog.Logger
}

// New создаёт новый Worker.
func New(cfg Config) *Worker {
	pollInterval := cfg.PollInterval
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}

	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Worker{
		runRepo:      cfg.RunRepo,
		pipelineRepo: cfg.PipelineRepo,
		publisher:    cfg.Publisher,
		conn:         cfg.Conn,
		orch:         cfg.Orchestrator,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		logger:       logger,
	}
}

// Start запускает Worker.
//
// Запускает:
//   - Consumer для runs.pending
//   - Polling горутину для fallback
func (w *Worker) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	w.cancelFunc = cancel

	w.logger.Info("starting worker",
		"poll_interval", w.pollInterval,
		"batch_size", w.batchSize,
	)

	// Без RabbitMQ работаем только через polling
	if w.conn != nil {
		w.consumer = mq.NewConsumer(w.conn, w.logger, mq.ConsumerConfig{
			Queue:    string(mq.QueueRunsPending),
			Handler:  w.handleRunPending,
			Prefetch: defaultPrefetch,
		})

		w.wg.Add(1)
		go func() {
			defer w.wg.Done()
			if err := w.consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				w.logger.Error("run consumer error", "error", err)
			}
		}()
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.pollLoop(ctx)
	}()

	w.logger.Info("worker started")
	return nil
}

// Stop останавливает Worker.
func (w *Worker) Stop() {
	w.stoppedMu.Lock()
	w.stopped = true
	w.stoppedMu.Unlock()

	w.logger.Info("stopping worker...")

	if w.cancelFunc != nil {
		w.cancelFunc()
	}

	if w.consumer != nil {
		w.consumer.Stop()
	}

	w.wg.Wait()

	w.logger.Info("worker stopped")
}

// IsStopped проверяет, остановлен ли Worker.
func (w *Worker) IsStopped() bool {
	w.stoppedMu.RLock()
	defer w.stoppedMu.RUnlock()
	return w.stopped
}

// pollLoop — цикл polling для fallback.
func (w *Worker) pollLoop(ctx context.Context) {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	// Первый poll сразу при старте (подхватываем runs, созданные пока были выключены)
	w.poll(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.poll(ctx)
		}
	}
}

// poll выполняет один цикл polling.
func (w *Worker) poll(ctx context.Context) {
	runs, err := w.runRepo.ListPending(ctx, w.batchSize)
	if err != nil {
		w.logger.Error("failed to list pending runs", "error", err)
		return
	}

	if len(runs) == 0 {
		return
	}

	w.logger.Debug("poll found pending runs", "count", len(runs))

	for i := range runs {
		run := &runs[i]

		if err := w.processRun(ctx, run.ID); err != nil {
			w.logger.Error("failed to process run from poll",
				"run_id", run.ID,
				"error", err,
			)
		}
	}
}
