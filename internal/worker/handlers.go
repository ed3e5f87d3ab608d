package worker

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shaiso/Kadr/internal/domain"
	"github.com/shaiso/Kadr/internal/graph"
	"github.com/shaiso/Kadr/internal/mq"
	"github.com/shaiso/Kadr/internal/orchestrator"
	"github.com/shaiso/Kadr/internal/repo"
	"github.com/shaiso/Kadr/internal/telemetry"
)

// handleRunPending обрабатывает событие run.pending из очереди.
func (w *Worker) handleRunPending(ctx context.Context, delivery *mq.Delivery) error {
	payload, err := mq.ParsePayload[mq.RunPendingPayload](&delivery.Message)
	if err != nil {
		w.logger.Error("failed to parse run.pending payload", "error", err)
		return err
	}

	w.logger.Debug("received run.pending event", "run_id", payload.RunID)

	if err := w.processRun(ctx, payload.RunID); err != nil {
		w.logger.Error("failed to process run", "run_id", payload.RunID, "error", err)
		return err
	}

	return nil
}

// processRun выполняет один run от загрузки до публикации результата.
//
// Идемпотентность по статусу: run не в PENDING пропускается молча —
// сообщение могло быть доставлено повторно, а run уже обработан
// poll-циклом или другим воркером.
func (w *Worker) processRun(ctx context.Context, runID uuid.UUID) error {
	logger := telemetry.WithRunID(w.logger, runID.String())

	run, err := w.runRepo.GetByID(ctx, runID)
	if errors.Is(err, repo.ErrNotFound) {
		logger.Warn("run not found, skipping")
		return nil
	}
	if err != nil {
		return fmt.Errorf("get run: %w", err)
	}

	if run.Status != domain.RunStatusPending {
		logger.Debug("run already processed", "status", run.Status)
		return nil
	}

	if run.PipelineID == uuid.Nil {
		return w.failRun(ctx, run, "run has no stored pipeline")
	}

	rec, err := w.pipelineRepo.GetByID(ctx, run.PipelineID)
	if errors.Is(err, repo.ErrNotFound) {
		return w.failRun(ctx, run, "pipeline not found")
	}
	if err != nil {
		return fmt.Errorf("get pipeline: %w", err)
	}

	run.MarkRunning()
	if err := w.runRepo.Update(ctx, run); err != nil {
		return fmt.Errorf("mark run running: %w", err)
	}

	logger.Info("executing run", "pipeline_id", rec.ID, "pipeline", rec.Name)

	// Пересчёт перед выполнением: сохранённый граф мог быть записан
	// до последних правок данных узлов.
	store := graph.NewStore(rec.Graph, logger)
	snapshot := store.Snapshot()

	result, merged, err := w.orch.Execute(ctx, snapshot)
	if errors.Is(err, orchestrator.ErrExecutionInProgress) {
		// Движок занят — возвращаем run в PENDING и отдаём сообщение
		// обратно в очередь
		run.Status = domain.RunStatusPending
		run.StartedAt = nil
		if uerr := w.runRepo.Update(ctx, run); uerr != nil {
			logger.Error("failed to reset run to pending", "error", uerr)
		}
		return err
	}
	if err != nil {
		return fmt.Errorf("execute run: %w", err)
	}

	if !result.Success {
		run.MarkFailed(result.Message)
		run.Result = result
		if err := w.runRepo.Update(ctx, run); err != nil {
			return fmt.Errorf("mark run failed: %w", err)
		}
		w.publishCompleted(ctx, run)
		logger.Warn("run failed", "message", result.Message)
		return nil
	}

	// Сохраняем слитый граф: артефакты движка становятся частью
	// сохранённого пайплайна.
	store.ApplyNodes(merged)
	updated := store.Snapshot()
	if err := w.pipelineRepo.UpdateGraph(ctx, rec.ID, updated); err != nil {
		logger.Error("failed to persist merged graph", "error", err)
	}

	run.MarkSucceeded(result)
	if err := w.runRepo.Update(ctx, run); err != nil {
		return fmt.Errorf("mark run succeeded: %w", err)
	}

	w.publishCompleted(ctx, run)
	logger.Info("run succeeded",
		"outputs", len(result.Outputs),
		"duration", run.Duration(),
	)
	return nil
}

// failRun помечает run как FAILED с сообщением и публикует завершение.
func (w *Worker) failRun(ctx context.Context, run *domain.Run, msg string) error {
	run.MarkFailed(msg)
	if err := w.runRepo.Update(ctx, run); err != nil {
		return fmt.Errorf("mark run failed: %w", err)
	}
	w.publishCompleted(ctx, run)
	w.logger.Warn("run failed", "run_id", run.ID, "reason", msg)
	return nil
}

// publishCompleted публикует событие завершения run.
// Ошибка публикации не фатальна: статус уже сохранён в БД.
func (w *Worker) publishCompleted(ctx context.Context, run *domain.Run) {
	if w.publisher == nil {
		return
	}
	err := w.publisher.PublishRunCompleted(ctx, mq.RunCompletedPayload{
		RunID:  run.ID,
		Status: run.Status,
		Error:  run.Error,
	})
	if err != nil {
		w.logger.Error("failed to publish run.completed", "run_id", run.ID, "error", err)
	}
}
