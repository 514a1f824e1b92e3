package cli

import (
	"context"
	"strings"

	"todo-list/internal/api"
	"todo-list/internal/errors"
	"todo-list/internal/transfer"
)

// MoveCommand applies a drag and drop move from the command line
type MoveCommand struct {
	app          *App
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler

	To      string
	Project string
	Index   int
	DryRun  bool
}

// NewMoveCommand creates a new move command handler
func NewMoveCommand(app *App) *MoveCommand {
	return &MoveCommand{
		app:          app,
		businessAPI:  app.businessAPI,
		errorHandler: NewErrorHandler(),
		To:           string(transfer.TargetMainList),
	}
}

// Execute runs the move command. The argument is either a raw transfer
// payload or a task/project reference from which one is built.
func (c *MoveCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "move", "usage: todo move <payload|id> --to main|project|project-list|project-item")
	}

	kind, err := transfer.ParseTargetKind(c.To)
	if err != nil {
		return c.errorHandler.Handle("move", err)
	}
	target := transfer.Target{Kind: kind, Index: c.Index}
	if c.Project != "" {
		if target.ProjectID, err = c.businessAPI.ResolveProjectID(ctx, c.Project); err != nil {
			return c.errorHandler.Handle("find project", err)
		}
	}

	payload, err := c.payloadFor(ctx, args[0])
	if err != nil {
		return c.errorHandler.Handle("move", err)
	}

	result, err := c.businessAPI.Drop(ctx, api.DropRequest{Payload: payload, Target: target, DryRun: c.DryRun})
	if err != nil {
		return c.errorHandler.Handle("move", err)
	}

	switch {
	case result.Ignored:
		c.app.printf("Nothing moved: payload not recognised\n")
		return nil
	case !result.Outcome.Changed:
		c.app.printf("Nothing moved: %s\n", result.Outcome.Reason)
		return nil
	}

	if c.DryRun {
		c.app.printf("Would apply %s:\n", result.Outcome.Effect)
		list := NewListCommand(c.app)
		list.printBoard(&api.BoardView{Board: result.Board, Stats: api.StatsFor(result.Board)})
		return nil
	}
	c.app.printf("Applied %s\n", result.Outcome.Effect)
	return nil
}

// payloadFor returns raw JSON untouched and encodes a descriptor for a reference
func (c *MoveCommand) payloadFor(ctx context.Context, arg string) (string, error) {
	if strings.HasPrefix(strings.TrimSpace(arg), "{") {
		return arg, nil
	}

	view, err := c.businessAPI.GetBoard(ctx)
	if err != nil {
		return "", err
	}

	taskID, err := c.businessAPI.ResolveTaskID(ctx, arg)
	if err != nil && !errors.IsErrorType(err, errors.ErrorTypeNotFound) {
		return "", err
	}
	projectID, perr := c.businessAPI.ResolveProjectID(ctx, arg)
	if perr != nil && !errors.IsErrorType(perr, errors.ErrorTypeNotFound) {
		return "", perr
	}

	switch {
	case taskID != "" && projectID != "":
		return "", errors.NewInvalidInputError("item", arg, "matches both a task and a project")
	case taskID != "":
		loc, _ := view.Board.FindTask(taskID)
		if loc.InMainList() {
			return transfer.Encode(transfer.MainTask(loc.Task, loc.Index))
		}
		pi := view.Board.ProjectIndex(loc.ProjectID)
		return transfer.Encode(transfer.ProjectTask(view.Board.Projects[pi], pi, loc.Task, loc.Index))
	case projectID != "":
		pi := view.Board.ProjectIndex(projectID)
		return transfer.Encode(transfer.ProjectHeader(view.Board.Projects[pi], pi))
	}
	return "", perr
}
