package cli

import (
	"context"
	"strings"

	"todo-list/internal/api"
	"todo-list/internal/errors"
)

// AddCommand handles the add command
type AddCommand struct {
	app          *App
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler
}

// NewAddCommand creates a new add command handler
func NewAddCommand(app *App) *AddCommand {
	return &AddCommand{
		app:          app,
		businessAPI:  app.businessAPI,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the add command
func (c *AddCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.NewInvalidInputError("command", "add", "usage: todo add \"your task here\"")
	}

	task, err := c.businessAPI.AddTask(ctx, strings.Join(args, " "))
	if err != nil {
		return c.errorHandler.Handle("add task", err)
	}

	c.app.printf("Added task: %s (%s)\n", task.Text, shortID(task.ID))
	return nil
}
