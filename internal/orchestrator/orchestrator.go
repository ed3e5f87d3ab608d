package orchestrator

import (
	"context"
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shaiso/Kadr/internal/domain"
	"github.com/shaiso/Kadr/internal/engineclient"
)

// Метрики выполнения.
var (
	executionsStarted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kadr_executions_started_total",
		Help: "Total pipeline executions handed to the engine",
	})
	executionsSucceeded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kadr_executions_succeeded_total",
		Help: "Total pipeline executions merged successfully",
	})
	executionsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kadr_executions_failed_total",
		Help: "Total pipeline executions that returned a failure",
	})
	executionsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kadr_executions_rejected_total",
		Help: "Total Execute calls rejected while another execution was in progress",
	})
)

// EngineClient — контракт внешнего движка выполнения.
type EngineClient interface {
	ExecutePipeline(ctx context.Context, req engineclient.Request) (*domain.ExecutionResult, error)
}

// execState — состояние автомата выполнения.
type execState int

const (
	stateIdle execState = iota
	stateExecuting
)

// Orchestrator управляет выполнением пайплайнов.
type Orchestrator struct {
	engine EngineClient
	logger *slog.Logger

	mu    sync.Mutex
	state execState
}

// Config — конфигурация Orchestrator.
type Config struct {
	// Engine — клиент движка выполнения (обязательно).
	Engine EngineClient

	// Logger — логгер. Nil — slog.Default().
	Logger *slog.Logger
}

// New создаёт новый Orchestrator.
func New(cfg Config) *Orchestrator {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		engine: cfg.Engine,
		logger: logger,
	}
}

// Validate проверяет готовность пайплайна к выполнению.
//
// Единственное предусловие: хотя бы один узел-источник или trim-узел
// с реально выбранным файлом. Пайплайн без рёбер, но с валидным
// источником — валиден (выполнение просто не даст наблюдаемого
// артефакта). Невалидность — значение, не ошибка: сообщение
// показывается пользователю.
func (o *Orchestrator) Validate(nodes []domain.Node) domain.ValidationStatus {
	for _, n := range nodes {
		switch n.Kind {
		case domain.KindInputVideo, domain.KindInputAudio,
			domain.KindTrimVideo, domain.KindTrimAudio:
			if _, ok := n.Data.StringSet(domain.FieldFilePath); ok {
				return domain.ValidationStatus{IsValid: true}
			}
		}
	}

	return domain.ValidationStatus{
		IsValid: false,
		Message: "pipeline has no input node with a selected file",
	}
}

// Execute передаёт пайплайн движку и сливает результаты.
//
// Возвращает результат движка и узлы после слияния. При любом провале
// (невалидный пайплайн, транспортная ошибка, success=false) возвращается
// структурированный failure-результат, а узлы — ровно в исходном виде:
// частичное слияние не происходит никогда.
//
// Ошибка возвращается только при отклонении вызова автоматом состояния
// (ErrExecutionInProgress) — политика reject, не queue.
func (o *Orchestrator) Execute(ctx context.Context, pipeline domain.Pipeline) (*domain.ExecutionResult, []domain.Node, error) {
	o.mu.Lock()
	if o.state == stateExecuting {
		o.mu.Unlock()
		executionsRejected.Inc()
		o.logger.Warn("execute rejected: another execution in progress")
		return nil, nil, ErrExecutionInProgress
	}
	o.state = stateExecuting
	o.mu.Unlock()

	defer func() {
		o.mu.Lock()
		o.state = stateIdle
		o.mu.Unlock()
	}()

	if status := o.Validate(pipeline.Nodes); !status.IsValid {
		executionsFailed.Inc()
		return &domain.ExecutionResult{
			Success: false,
			Message: status.Message,
		}, pipeline.Nodes, nil
	}

	executionsStarted.Inc()
	o.logger.Info("executing pipeline",
		"nodes", len(pipeline.Nodes),
		"edges", len(pipeline.Edges),
	)

	req := engineclient.BuildRequest(pipeline)

	result, err := o.engine.ExecutePipeline(ctx, req)
	if err != nil {
		executionsFailed.Inc()
		o.logger.Error("engine call failed", "error", err)
		return &domain.ExecutionResult{
			Success: false,
			Message: err.Error(),
		}, pipeline.Nodes, nil
	}

	if !result.Success {
		executionsFailed.Inc()
		o.logger.Warn("engine reported failure", "message", result.Message)
		return result, pipeline.Nodes, nil
	}

	merged := mergeResults(pipeline, result)
	executionsSucceeded.Inc()
	o.logger.Info("execution merged",
		"outputs", len(result.Outputs),
		"vmaf_results", len(result.VmafResults),
		"audio_outputs", len(result.AudioOutputs),
	)

	return result, merged, nil
}

// IsExecuting возвращает true, пока выполнение не завершено.
func (o *Orchestrator) IsExecuting() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state == stateExecuting
}
