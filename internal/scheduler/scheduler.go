package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/shaiso/Kadr/internal/domain"
	"github.com/shaiso/Kadr/internal/mq"
	"github.com/shaiso/Kadr/internal/repo"
)

const defaultReloadInterval = 30 * time.Second

// Scheduler запускает сохранённые пайплайны по расписанию.
//
// Включённые schedules регистрируются как cron-задания; реестр
// периодически сверяется с БД, подхватывая созданные, изменённые
// и удалённые расписания без рестарта сервиса.
type Scheduler struct {
	scheduleRepo *repo.ScheduleRepo
	runRepo      *repo.RunRepo
	pipelineRepo *repo.PipelineRepo
	publisher    *mq.Publisher
	logger       *slog.Logger

	reloadInterval time.Duration

	cron *cron.Cron

	mu      sync.Mutex
	entries map[uuid.UUID]entry
}

// entry — зарегистрированное cron-задание.
type entry struct {
	id   cron.EntryID
	spec string
}

// Config — конфигурация Scheduler.
type Config struct {
	ScheduleRepo *repo.ScheduleRepo
	RunRepo      *repo.RunRepo
	PipelineRepo *repo.PipelineRepo
	Publisher    *mq.Publisher
	Logger       *slog.Logger

	// ReloadInterval — период сверки реестра с БД (default: 30s).
	ReloadInterval time.Duration
}

// New создаёт новый Scheduler.
func New(cfg Config) *Scheduler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	reloadInterval := cfg.ReloadInterval
	if reloadInterval <= 0 {
		reloadInterval = defaultReloadInterval
	}

	return &Scheduler{
		scheduleRepo:   cfg.ScheduleRepo,
		runRepo:        cfg.RunRepo,
		pipelineRepo:   cfg.PipelineRepo,
		publisher:      cfg.Publisher,
		logger:         logger,
		reloadInterval: reloadInterval,
		cron:           cron.New(cron.WithParser(cronParser)),
		entries:        make(map[uuid.UUID]entry),
	}
}

// Run запускает планировщик и блокируется до отмены контекста.
func (s *Scheduler) Run(ctx context.Context) error {
	s.cron.Start()
	defer func() {
		stopCtx := s.cron.Stop()
		<-stopCtx.Done()
	}()

	s.logger.Info("scheduler started", "reload_interval", s.reloadInterval)

	if err := s.Reload(ctx); err != nil {
		s.logger.Error("initial reload failed", "error", err)
	}

	ticker := time.NewTicker(s.reloadInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopping")
			return ctx.Err()
		case <-ticker.C:
			if err := s.Reload(ctx); err != nil {
				s.logger.Error("reload failed", "error", err)
			}
		}
	}
}

// Reload сверяет cron-реестр с включёнными schedules из БД.
func (s *Scheduler) Reload(ctx context.Context) error {
	schedules, err := s.scheduleRepo.ListEnabled(ctx)
	if err != nil {
		return fmt.Errorf("list enabled schedules: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[uuid.UUID]bool, len(schedules))

	for _, sched := range schedules {
		seen[sched.ID] = true

		existing, ok := s.entries[sched.ID]
		if ok && existing.spec == sched.CronExpr {
			continue
		}
		if ok {
			// Выражение изменилось — перерегистрируем
			s.cron.Remove(existing.id)
		}

		if err := s.register(sched); err != nil {
			s.logger.Error("failed to register schedule",
				"schedule_id", sched.ID,
				"cron_expr", sched.CronExpr,
				"error", err,
			)
		}
	}

	// Удаляем задания для выключенных и удалённых schedules
	for id, e := range s.entries {
		if !seen[id] {
			s.cron.Remove(e.id)
			delete(s.entries, id)
			s.logger.Info("schedule unregistered", "schedule_id", id)
		}
	}

	return nil
}

// register добавляет cron-задание для schedule.
// Вызывается под s.mu.
func (s *Scheduler) register(sched domain.Schedule) error {
	scheduleID := sched.ID
	pipelineID := sched.PipelineID

	id, err := s.cron.AddFunc(sched.CronExpr, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := s.trigger(ctx, scheduleID, pipelineID); err != nil {
			s.logger.Error("schedule trigger failed",
				"schedule_id", scheduleID,
				"error", err,
			)
		}
	})
	if err != nil {
		return fmt.Errorf("add cron func: %w", err)
	}

	s.entries[sched.ID] = entry{id: id, spec: sched.CronExpr}
	s.logger.Info("schedule registered",
		"schedule_id", sched.ID,
		"pipeline_id", sched.PipelineID,
		"cron_expr", sched.CronExpr,
	)
	return nil
}

// trigger создаёт run для сработавшего расписания.
//
// Выполняет run воркер: scheduler только ставит run в очередь.
// Пропавший pipeline не считается ошибкой регистрации — расписание
// уйдёт из реестра при следующей сверке после каскадного удаления.
func (s *Scheduler) trigger(ctx context.Context, scheduleID, pipelineID uuid.UUID) error {
	if _, err := s.pipelineRepo.GetByID(ctx, pipelineID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			s.logger.Warn("pipeline not found for schedule, skipping",
				"schedule_id", scheduleID,
				"pipeline_id", pipelineID,
			)
			return nil
		}
		return fmt.Errorf("get pipeline: %w", err)
	}

	run := &domain.Run{
		ID:         uuid.New(),
		PipelineID: pipelineID,
		Status:     domain.RunStatusPending,
		CreatedAt:  time.Now(),
	}

	if err := s.runRepo.Create(ctx, run); err != nil {
		return fmt.Errorf("create run: %w", err)
	}

	s.logger.Info("created run from schedule",
		"run_id", run.ID,
		"schedule_id", scheduleID,
		"pipeline_id", pipelineID,
	)

	if err := s.scheduleRepo.MarkTriggered(ctx, scheduleID, run.ID); err != nil {
		s.logger.Warn("failed to mark schedule triggered",
			"schedule_id", scheduleID,
			"error", err,
		)
	}

	if s.publisher != nil {
		if err := s.publisher.PublishRunPending(ctx, run.ID); err != nil {
			// Не фатальная ошибка — run уже создан в БД,
			// воркер заберёт его через polling
			s.logger.Warn("failed to publish run.pending",
				"run_id", run.ID,
				"error", err,
			)
		}
	}

	return nil
}
