package di

import (
	"context"
	"fmt"

	"glossary-backend/application/services"
	"glossary-backend/domain/glossary"
	"glossary-backend/domain/glossary/seed"
	"glossary-backend/infrastructure/config"
	"glossary-backend/infrastructure/observability"
	"glossary-backend/infrastructure/persistence/jsonfile"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config     *config.Config
	Logger     *zap.Logger
	InstanceID string
	Metrics    *observability.Collector
	Store      *glossary.Store
	Service    *services.GlossaryService

	limitsWatcher *config.LimitsWatcher
}

// InitializeContainer wires all dependencies. A malformed seed aborts
// initialization: the process must not start serving an invalid collection.
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	logger, err := ProvideLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	instanceID := uuid.New().String()
	metrics := observability.NewCollector("glossary")
	store := glossary.NewStore()

	// Persistence collaborator, enabled by DATA_FILE.
	var repo *jsonfile.Repository
	if cfg.DataFile != "" {
		repo = jsonfile.NewRepository(cfg.DataFile)
	}

	terms, source, err := provideInitialTerms(cfg, repo)
	if err != nil {
		return nil, err
	}
	if err := store.Load(terms); err != nil {
		return nil, err
	}
	logger.Info("Glossary collection loaded",
		zap.String("source", source),
		zap.Int("terms", store.Len()),
	)

	limits, watcher, err := provideLimits(cfg, logger)
	if err != nil {
		return nil, err
	}

	var snapshotter services.Snapshotter
	if repo != nil {
		snapshotter = repo
	}

	service := services.NewGlossaryService(store, limits, snapshotter, metrics, logger)

	return &Container{
		Config:        cfg,
		Logger:        logger,
		InstanceID:    instanceID,
		Metrics:       metrics,
		Store:         store,
		Service:       service,
		limitsWatcher: watcher,
	}, nil
}

// Start launches background collaborators (the limits watcher).
func (c *Container) Start() {
	if c.limitsWatcher != nil {
		c.limitsWatcher.Start()
	}
}

// Shutdown releases background collaborators.
func (c *Container) Shutdown() {
	if c.limitsWatcher != nil {
		c.limitsWatcher.Stop()
	}
}

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// provideInitialTerms picks the startup collection: a previously persisted
// data file when present, else the configured or embedded seed.
func provideInitialTerms(cfg *config.Config, repo *jsonfile.Repository) ([]glossary.Term, string, error) {
	if repo != nil && repo.Exists() {
		terms, err := repo.Load()
		if err != nil {
			return nil, "", err
		}
		return terms, cfg.DataFile, nil
	}

	if cfg.SeedFile != "" {
		terms, err := seed.FromFile(cfg.SeedFile)
		if err != nil {
			return nil, "", err
		}
		return terms, cfg.SeedFile, nil
	}

	terms, err := seed.Embedded()
	if err != nil {
		return nil, "", err
	}
	return terms, "embedded seed", nil
}

// provideLimits returns either a static limits provider or a file watcher
// when LIMITS_FILE is configured.
func provideLimits(cfg *config.Config, logger *zap.Logger) (services.LimitsProvider, *config.LimitsWatcher, error) {
	if cfg.LimitsFile == "" {
		return config.StaticLimits{Default: cfg.DefaultPageSize, Max: cfg.MaxPageSize}, nil, nil
	}

	watcher, err := config.NewLimitsWatcher(cfg.LimitsFile, logger)
	if err != nil {
		return nil, nil, err
	}
	return watcher, watcher, nil
}
