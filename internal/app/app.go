package app

import (
	"context"

	"github.com/spacekeep/capture-service/internal/coordinator"
	"github.com/spacekeep/capture-service/internal/dao"
	"github.com/spacekeep/capture-service/internal/domain"
	"github.com/spacekeep/capture-service/internal/events"
	"github.com/spacekeep/capture-service/internal/metrics"
	"github.com/spacekeep/capture-service/internal/service"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Name is the service name.
const Name = "Capture Service"

// App is the application container. It wires dao, services and
// coordinators and owns the deletion coordinator so pending deletion
// commits survive the teardown of any individual edit session.
type App struct {
	config *AppConfig
	logger *zap.Logger
	db     *gorm.DB
	dao    *dao.Dao

	ItemRepo  domain.ItemRepository
	SpaceRepo domain.SpaceRepository

	ItemService  service.ItemService
	SpaceService service.SpaceService

	Deletions *coordinator.DeletionCoordinator
	Sessions  *coordinator.SessionManager

	Metrics *metrics.Metrics
	Events  *events.Hub
}

// NewApp builds the container from its injected dependencies.
func NewApp(cfg *AppConfig, logger *zap.Logger, db *gorm.DB) (*App, error) {
	if cfg == nil {
		return nil, errors.New("configuration is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	if db == nil {
		return nil, errors.New("database is required")
	}

	a := &App{
		config: cfg,
		logger: logger,
		db:     db,
	}

	a.dao = dao.New(db, logger)
	a.ItemRepo = dao.NewItemRepository(a.dao)
	a.SpaceRepo = dao.NewSpaceRepository(a.dao)

	a.SpaceService = service.NewSpaceService(a.SpaceRepo, logger)
	a.ItemService = service.NewItemService(a.ItemRepo, a.SpaceService, logger)

	a.Metrics = metrics.New()
	a.Events = events.NewHub(logger)

	signals := coordinator.MultiSignals{
		coordinator.LogSignals{Logger: logger},
		a.Metrics,
		a.Events,
	}

	a.Deletions = coordinator.NewDeletionCoordinator(
		a.ItemService,
		a.SpaceService,
		signals,
		coordinator.DeletionConfig{
			Grace:         cfg.Capture.GetDeletionGrace(),
			CommitTimeout: cfg.Capture.GetStoreWriteTimeout(),
		},
		logger,
	)

	a.Sessions = coordinator.NewSessionManager(
		coordinator.SessionConfig{
			StructuredDelay: cfg.Capture.GetStructuredDebounce(),
			LongformDelay:   cfg.Capture.GetLongformDebounce(),
			WriteTimeout:    cfg.Capture.GetStoreWriteTimeout(),
		},
		a.ItemService,
		coordinator.TitlePolicy{},
		signals,
		logger,
	)

	return a, nil
}

// Shutdown drains the coordinators: every session is closed with its
// final flush, then the pending deletion commits are waited out. A
// pending deletion is a commitment; teardown must not drop it.
func (a *App) Shutdown(ctx context.Context) error {
	a.Sessions.CloseAll()
	if err := a.Deletions.WaitPending(ctx); err != nil {
		return errors.Wrap(err, "wait pending deletions")
	}
	return nil
}

func (a *App) Config() *AppConfig {
	return a.config
}

func (a *App) Logger() *zap.Logger {
	return a.logger
}

func (a *App) DB() *gorm.DB {
	return a.db
}
