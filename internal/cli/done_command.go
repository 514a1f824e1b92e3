package cli

import (
	"context"

	"todo-list/internal/api"
	"todo-list/internal/errors"
)

// DoneCommand toggles the done state of a task
type DoneCommand struct {
	app          *App
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler
}

// NewDoneCommand creates a new done command handler
func NewDoneCommand(app *App) *DoneCommand {
	return &DoneCommand{
		app:          app,
		businessAPI:  app.businessAPI,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the done command
func (c *DoneCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "done", "usage: todo done <task id>")
	}

	id, err := c.businessAPI.ResolveTaskID(ctx, args[0])
	if err != nil {
		return c.errorHandler.Handle("find task", err)
	}

	result, err := c.businessAPI.ToggleTask(ctx, id)
	if err != nil {
		return c.errorHandler.Handle("toggle task", err)
	}

	if result.Task.Done {
		c.app.printf("Completed: %s\n", result.Task.Text)
	} else {
		c.app.printf("Reopened: %s\n", result.Task.Text)
	}
	if result.MovedTo != nil {
		c.app.printf("Moved to project %q\n", result.MovedTo.Name)
	}
	return nil
}
