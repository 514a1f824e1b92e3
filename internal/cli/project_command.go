package cli

import (
	"context"
	"strings"

	"todo-list/internal/api"
	"todo-list/internal/errors"
)

// ProjectCommand handles the project subcommands
type ProjectCommand struct {
	app          *App
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler
}

// NewProjectCommand creates a new project command handler
func NewProjectCommand(app *App) *ProjectCommand {
	return &ProjectCommand{
		app:          app,
		businessAPI:  app.businessAPI,
		errorHandler: NewErrorHandler(),
	}
}

const projectUsage = "usage: todo project create|rename|delete|toggle|rm-task ..."

// Execute dispatches on the first argument
func (c *ProjectCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.NewInvalidInputError("command", "project", projectUsage)
	}

	rest := args[1:]
	switch args[0] {
	case "create":
		return c.Create(ctx, rest)
	case "rename":
		return c.Rename(ctx, rest)
	case "delete":
		return c.Delete(ctx, rest)
	case "toggle":
		return c.Toggle(ctx, rest)
	case "rm-task":
		return c.RemoveTask(ctx, rest)
	default:
		return errors.NewInvalidInputError("command", args[0], projectUsage)
	}
}

// Create adds a new collapsed project
func (c *ProjectCommand) Create(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.NewInvalidInputError("command", "project create", "usage: todo project create <name>")
	}

	project, err := c.businessAPI.CreateProject(ctx, strings.Join(args, " "))
	if err != nil {
		return c.errorHandler.Handle("create project", err)
	}
	c.app.printf("Created project: %s (%s)\n", project.Name, shortID(project.ID))
	return nil
}

// Rename changes a project's name
func (c *ProjectCommand) Rename(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.NewInvalidInputError("command", "project rename", "usage: todo project rename <project> <new name>")
	}

	id, err := c.businessAPI.ResolveProjectID(ctx, args[0])
	if err != nil {
		return c.errorHandler.Handle("find project", err)
	}
	project, err := c.businessAPI.RenameProject(ctx, id, strings.Join(args[1:], " "))
	if err != nil {
		return c.errorHandler.Handle("rename project", err)
	}
	c.app.printf("Renamed project to: %s\n", project.Name)
	return nil
}

// Delete removes a project together with all of its tasks
func (c *ProjectCommand) Delete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "project delete", "usage: todo project delete <project>")
	}

	id, err := c.businessAPI.ResolveProjectID(ctx, args[0])
	if err != nil {
		return c.errorHandler.Handle("find project", err)
	}
	result, err := c.businessAPI.DeleteProject(ctx, id)
	if err != nil {
		return c.errorHandler.Handle("delete project", err)
	}
	c.app.printf("Deleted project: %s (%d tasks discarded)\n", result.Project.Name, result.Discarded)
	return nil
}

// Toggle expands or collapses a project
func (c *ProjectCommand) Toggle(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "project toggle", "usage: todo project toggle <project>")
	}

	id, err := c.businessAPI.ResolveProjectID(ctx, args[0])
	if err != nil {
		return c.errorHandler.Handle("find project", err)
	}
	project, err := c.businessAPI.ToggleProject(ctx, id)
	if err != nil {
		return c.errorHandler.Handle("toggle project", err)
	}

	state := "collapsed"
	if project.Expanded {
		state = "expanded"
	}
	c.app.printf("Project %s is now %s\n", project.Name, state)
	return nil
}

// RemoveTask deletes one task from a project
func (c *ProjectCommand) RemoveTask(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.NewInvalidInputError("command", "project rm-task", "usage: todo project rm-task <project> <task id>")
	}

	projectID, err := c.businessAPI.ResolveProjectID(ctx, args[0])
	if err != nil {
		return c.errorHandler.Handle("find project", err)
	}
	taskID, err := c.businessAPI.ResolveTaskID(ctx, args[1])
	if err != nil {
		return c.errorHandler.Handle("find task", err)
	}
	if err := c.businessAPI.DeleteProjectTask(ctx, projectID, taskID); err != nil {
		return c.errorHandler.Handle("remove project task", err)
	}
	c.app.printf("Removed task %s\n", shortID(taskID))
	return nil
}
