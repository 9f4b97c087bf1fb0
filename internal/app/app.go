package app

import (
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/duyenle1312/rila-ai-agent/internal/common"
	"github.com/duyenle1312/rila-ai-agent/internal/handlers"
	"github.com/duyenle1312/rila-ai-agent/internal/interfaces"
	"github.com/duyenle1312/rila-ai-agent/internal/jobs"
	"github.com/duyenle1312/rila-ai-agent/internal/services/convert"
	"github.com/duyenle1312/rila-ai-agent/internal/services/mailer"
	"github.com/duyenle1312/rila-ai-agent/internal/services/publish"
	"github.com/duyenle1312/rila-ai-agent/internal/services/summarize"
	"github.com/duyenle1312/rila-ai-agent/internal/storage/badger"
)

// App holds all application components and dependencies
type App struct {
	Config *common.Config
	Logger arbor.ILogger

	// Storage
	DB          *badger.BadgerDB
	PageStorage interfaces.PageStorage

	// Pipeline services
	ConvertService *convert.Service
	Summarizer     interfaces.Summarizer
	Publisher      interfaces.Publisher
	Notifier       interfaces.Notifier

	// Pipeline orchestration
	JobStore        *jobs.Store
	ProgressManager *handlers.ProgressManager
	StageRunner     *jobs.StageRunner
	Controller      *jobs.PipelineController

	// HTTP handlers
	DocumentHandler *handlers.DocumentHandler
	ProgressHandler *handlers.ProgressHandler
	PageHandler     *handlers.PageHandler
}

// New wires the application from configuration. Construction order: storage,
// pipeline collaborators, orchestration, handlers.
func New(config *common.Config, logger arbor.ILogger) (*App, error) {
	a := &App{
		Config: config,
		Logger: logger,
	}

	db, err := badger.NewBadgerDB(logger, &config.Storage.Badger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	a.DB = db
	a.PageStorage = badger.NewPageStorage(db, logger)

	a.ConvertService = convert.NewService(logger)

	generator, err := summarize.NewTextGenerator(&config.LLM, logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize LLM provider: %w", err)
	}
	a.Summarizer = summarize.NewService(generator, logger)

	publisher, err := publish.NewNotionPublisher(&config.Notion, logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize publisher: %w", err)
	}
	a.Publisher = publisher

	a.Notifier = mailer.NewService(&config.Mail, logger)

	store, err := jobs.NewStore(&config.Jobs, logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize job store: %w", err)
	}
	a.JobStore = store

	a.ProgressManager = handlers.NewProgressManager(logger)
	a.StageRunner = jobs.NewStageRunner(a.Summarizer, a.Publisher, a.Notifier, logger)
	a.Controller = jobs.NewPipelineController(a.JobStore, a.ProgressManager, a.StageRunner, a.PageStorage, logger)

	a.DocumentHandler = handlers.NewDocumentHandler(a.ConvertService, a.JobStore, logger)
	a.ProgressHandler = handlers.NewProgressHandler(a.ProgressManager, a.Controller, logger)
	a.PageHandler = handlers.NewPageHandler(a.PageStorage, logger)

	logger.Info().
		Str("llm_provider", generator.Provider()).
		Strs("upload_formats", a.ConvertService.SupportedExtensions()).
		Msg("Application initialized")

	return a, nil
}

// Close releases application resources.
func (a *App) Close() error {
	if a.JobStore != nil {
		a.JobStore.Stop()
	}
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			return fmt.Errorf("failed to close storage: %w", err)
		}
	}
	return nil
}
