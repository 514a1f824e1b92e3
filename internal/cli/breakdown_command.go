package cli

import (
	"context"
	"strings"

	"todo-list/internal/api"
	"todo-list/internal/errors"
)

// BreakdownCommand asks the breakdown endpoint to split a big task
type BreakdownCommand struct {
	app          *App
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler
}

// NewBreakdownCommand creates a new breakdown command handler
func NewBreakdownCommand(app *App) *BreakdownCommand {
	return &BreakdownCommand{
		app:          app,
		businessAPI:  app.businessAPI,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the breakdown command
func (c *BreakdownCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.NewInvalidInputError("command", "breakdown", "usage: todo breakdown \"big task\"")
	}

	result, err := c.businessAPI.Decompose(ctx, strings.Join(args, " "))
	if err != nil {
		return c.errorHandler.Handle("break down task", err)
	}

	if result.Failed {
		c.app.logger.Warn("task breakdown failed, added placeholder task")
	}
	for _, t := range result.Added {
		c.app.printf("Added task: %s (%s)\n", t.Text, shortID(t.ID))
	}
	if result.Clarification != "" {
		c.app.printf("\n%s\n", result.Clarification)
	}
	if len(result.Added) == 0 && result.Clarification == "" {
		c.app.printf("No steps returned\n")
	}
	return nil
}
