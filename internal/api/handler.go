package api

import (
	"log/slog"

	"github.com/shaiso/Kadr/internal/mq"
	"github.com/shaiso/Kadr/internal/orchestrator"
	"github.com/shaiso/Kadr/internal/repo"
)

// Handler — главный обработчик API с зависимостями.
type Handler struct {
	pipelineRepo *repo.PipelineRepo
	runRepo      *repo.RunRepo
	scheduleRepo *repo.ScheduleRepo
	publisher    *mq.Publisher
	orch         *orchestrator.Orchestrator
	logger       *slog.Logger
}

// Config — конфигурация для создания Handler.
type Config struct {
	PipelineRepo *repo.PipelineRepo
	RunRepo      *repo.RunRepo
	ScheduleRepo *repo.ScheduleRepo
	Publisher    *mq.Publisher
	Orchestrator *orchestrator.Orchestrator
	Logger       *slog.Logger
}

// NewHandler создаёт новый Handler.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		pipelineRepo: cfg.PipelineRepo,
		runRepo:      cfg.RunRepo,
		scheduleRepo: cfg.ScheduleRepo,
		publisher:    cfg.Publisher,
		orch:         cfg.Orchestrator,
		logger:       cfg.Logger,
	}
}
