// Package app wires configuration, logging, and handlers together.
package app

import (
	"strings"

	"github.com/asesorlab/asesor-mcp/internal/common"
	"github.com/asesorlab/asesor-mcp/internal/config"
	"github.com/asesorlab/asesor-mcp/internal/engine"
	"github.com/asesorlab/asesor-mcp/internal/handlers"
	"github.com/asesorlab/asesor-mcp/internal/mcp"
)

// App holds all application components and dependencies.
type App struct {
	Config *config.Config
	Logger *common.Logger

	Engine *engine.Client

	HealthHandler  *handlers.HealthHandler
	VersionHandler *handlers.VersionHandler
	MCPHandler     *mcp.Handler
}

// New initializes the application with all dependencies.
func New(cfg *config.Config, logger *common.Logger) (*App, error) {
	a := &App{
		Config: cfg,
		Logger: logger,
	}

	env := strings.ToLower(strings.TrimSpace(cfg.Environment))
	if cfg.IsDevMode() {
		logger.Warn().Msg("RUNNING IN DEV MODE — do not use in production")
	} else if env != "prod" && env != "" {
		logger.Warn().
			Str("environment", cfg.Environment).
			Msg("unrecognized environment value, defaulting to prod behavior")
	}

	a.Engine = engine.NewClient(cfg.Engine.URL,
		engine.WithAPIKey(cfg.Engine.APIKey),
		engine.WithTimeout(cfg.Engine.GetTimeout()),
		engine.WithRateLimit(cfg.Engine.RateLimit),
		engine.WithLogger(logger),
	)

	a.HealthHandler = handlers.NewHealthHandler(logger)
	a.VersionHandler = handlers.NewVersionHandler(logger)
	a.MCPHandler = mcp.NewHandler(mcp.NewDispatcher(a.Engine, logger), logger)

	logger.Info().
		Str("engine_url", cfg.Engine.URL).
		Msg("application initialization complete")

	return a, nil
}

// Close releases application resources.
func (a *App) Close() error {
	return nil
}
