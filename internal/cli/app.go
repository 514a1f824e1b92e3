package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"todo-list/internal/api"
	"todo-list/internal/config"
	"todo-list/internal/decompose"
	"todo-list/internal/logging"
	"todo-list/internal/services"
	"todo-list/internal/validation"
)

// App holds what every command handler needs
type App struct {
	businessAPI api.BusinessAPI
	config      *config.Config
	logger      *slog.Logger
	out         io.Writer
}

// AppBuilder wires an App for a loaded configuration. The returned func
// releases its resources.
type AppBuilder func(ctx context.Context, cfg *config.Config) (*App, func(), error)

// NewApp creates a new CLI application instance with dependency injection
func NewApp(businessAPI api.BusinessAPI, cfg *config.Config, logger *slog.Logger) *App {
	return &App{
		businessAPI: businessAPI,
		config:      cfg,
		logger:      logger,
		out:         os.Stdout,
	}
}

// BuildApp opens the configured store and wires the production stack
func BuildApp(ctx context.Context, cfg *config.Config) (*App, func(), error) {
	logger := logging.New(cfg.Application.Verbose)

	repo, err := config.CreateRepository(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open store: %w", err)
	}

	client := decompose.NewClient(decompose.Options{
		Endpoint: cfg.Decompose.Endpoint,
		APIKey:   cfg.Decompose.APIKey,
		Timeout:  cfg.Decompose.Timeout,
	})

	board, err := services.NewBoardManager(ctx, repo, client,
		services.WithLogger(logger),
		services.WithValidators(
			validation.NewTaskValidatorWithConfig(cfg),
			validation.NewProjectValidatorWithConfig(cfg),
		),
	)
	if err != nil {
		repo.Close()
		return nil, nil, fmt.Errorf("failed to load board: %w", err)
	}

	app := NewApp(api.NewBusinessAPIWithConfig(board, cfg), cfg, logger)
	return app, func() { repo.Close() }, nil
}

// printf writes command output
func (a *App) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.out, format, args...)
}

// shortID abbreviates an id for display; any unique prefix is accepted back
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}
