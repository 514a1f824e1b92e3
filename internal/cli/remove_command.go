package cli

import (
	"context"

	"todo-list/internal/api"
	"todo-list/internal/errors"
)

// RemoveCommand deletes a task from whichever container holds it
type RemoveCommand struct {
	app          *App
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler
}

// NewRemoveCommand creates a new rm command handler
func NewRemoveCommand(app *App) *RemoveCommand {
	return &RemoveCommand{
		app:          app,
		businessAPI:  app.businessAPI,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the rm command
func (c *RemoveCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "rm", "usage: todo rm <task id>")
	}

	id, err := c.businessAPI.ResolveTaskID(ctx, args[0])
	if err != nil {
		return c.errorHandler.Handle("find task", err)
	}

	view, err := c.businessAPI.GetBoard(ctx)
	if err != nil {
		return c.errorHandler.Handle("remove task", err)
	}
	loc, ok := view.Board.FindTask(id)
	if !ok {
		return c.errorHandler.Handle("remove task", errors.NewNotFoundError("task", id))
	}

	if loc.InMainList() {
		err = c.businessAPI.RemoveTask(ctx, id)
	} else {
		err = c.businessAPI.DeleteProjectTask(ctx, loc.ProjectID, id)
	}
	if err != nil {
		return c.errorHandler.Handle("remove task", err)
	}

	c.app.printf("Removed task: %s\n", loc.Task.Text)
	return nil
}
