// Package app wires the application together. Dependencies is the single
// composition point: everything else receives its collaborators explicitly.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/linkyboard/linkyboard-api/config"
	"github.com/linkyboard/linkyboard-api/handlers"
	"github.com/linkyboard/linkyboard-api/internal/observability"
	"github.com/linkyboard/linkyboard-api/repositories"
	"github.com/linkyboard/linkyboard-api/repositories/postgres"
	"github.com/linkyboard/linkyboard-api/repositories/stub"
	"github.com/linkyboard/linkyboard-api/services/clipper"
	"github.com/linkyboard/linkyboard-api/services/summarize"
	"github.com/linkyboard/linkyboard-api/services/users"
)

// Dependencies holds all application dependencies.
type Dependencies struct {
	// Infrastructure
	Config  *config.Config
	Logger  *zap.Logger
	Metrics *observability.Registry
	Tracker *observability.Tracker
	DB      *postgres.DB // nil when running on the stub layer

	// Repositories
	Contents     repositories.ContentRepository
	SummaryCache repositories.SummaryCacheRepository
	Users        repositories.UserRepository

	// Services
	ClipperService   *clipper.Service
	SummarizeService *summarize.Service
	UserService      *users.Service

	// Handlers
	HealthHandler  *handlers.HealthHandler
	ClipperHandler *handlers.ClipperHandler
	UserHandler    *handlers.UserHandler
}

// NewDependencies creates and wires up all application dependencies.
func NewDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config:  cfg,
		Logger:  logger,
		Metrics: observability.NewRegistry(),
	}
	deps.Tracker = observability.NewTracker(deps.Metrics, logger)

	if err := deps.initRepositories(cfg); err != nil {
		return nil, fmt.Errorf("failed to initialize repositories: %w", err)
	}
	deps.initServices(cfg)
	deps.initHandlers(cfg)

	logger.Info("all dependencies initialized")
	return deps, nil
}

// initRepositories selects the data-access layer: postgres when a database
// is configured, the always-succeeding stubs otherwise.
func (d *Dependencies) initRepositories(cfg *config.Config) error {
	if !cfg.Database.Configured() {
		d.Logger.Warn("no database configured, using stub data-access layer")
		d.Contents = stub.NewClipperRepository(d.Logger)
		d.SummaryCache = stub.NewSummaryCacheRepository(d.Logger)
		d.Users = stub.NewUserRepository(d.Logger)
		return nil
	}

	db, err := postgres.NewDB(cfg.Database, d.Logger)
	if err != nil {
		return err
	}

	d.DB = db
	d.Contents = postgres.NewContentRepository(db, d.Logger)
	d.SummaryCache = postgres.NewSummaryCacheRepository(db, d.Logger)
	d.Users = postgres.NewUserRepository(db, d.Logger)
	return nil
}

func (d *Dependencies) initServices(cfg *config.Config) {
	summarizer := summarize.NewExtractiveSummarizer(cfg.AI.MaxSummaryLength, cfg.AI.MaxKeywords)

	d.SummarizeService = summarize.NewService(
		d.SummaryCache, summarizer, d.Tracker, d.Metrics, d.Logger, cfg.AI.SummaryModel)
	d.ClipperService = clipper.NewService(d.Contents, d.SummarizeService, d.Tracker, d.Logger)
	d.UserService = users.NewService(d.Users, d.Tracker, d.Logger)
}

func (d *Dependencies) initHandlers(cfg *config.Config) {
	var checker handlers.HealthChecker
	if d.DB != nil {
		checker = d.DB
	}

	d.HealthHandler = handlers.NewHealthHandler(cfg.AppName, cfg.Environment, checker, d.Logger)
	d.ClipperHandler = handlers.NewClipperHandler(d.ClipperService, d.Logger)
	d.UserHandler = handlers.NewUserHandler(d.UserService, d.Logger)
}

// Close gracefully shuts down all dependencies.
func (d *Dependencies) Close(ctx context.Context) error {
	d.Logger.Info("shutting down dependencies")

	var errs []error
	if d.DB != nil {
		if err := d.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	if d.Logger != nil {
		_ = d.Logger.Sync()
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors during shutdown: %v", errs)
	}
	return nil
}
