package cli

import (
	"context"
	"encoding/json"
	"strings"

	"todo-list/internal/api"
)

// ListCommand handles the list command
type ListCommand struct {
	app          *App
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler
	JSON         bool
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App) *ListCommand {
	return &ListCommand{
		app:          app,
		businessAPI:  app.businessAPI,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the list command
func (c *ListCommand) Execute(ctx context.Context, args []string) error {
	view, err := c.businessAPI.GetBoard(ctx)
	if err != nil {
		return c.errorHandler.Handle("list board", err)
	}

	if c.JSON {
		enc := json.NewEncoder(c.app.out)
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	}

	c.printBoard(view)
	return nil
}

// printBoard prints the main list, then each project with its items when expanded
//
//	Tasks
//	  1. [ ] Buy milk  (1a2b3c4d)
//	Projects
//	  ▾ Default (1)  (9f8e7d6c)
//	      1. [x] Walk dog  (5e6f7a8b)
func (c *ListCommand) printBoard(view *api.BoardView) {
	board := view.Board

	c.app.printf("Tasks\n")
	if len(board.Items) == 0 {
		c.app.printf("  (none)\n")
	}
	for i, t := range board.Items {
		c.app.printf("  %d. %s %s  (%s)\n", i+1, checkbox(t.Done), t.Text, shortID(t.ID))
	}

	c.app.printf("Projects\n")
	if len(board.Projects) == 0 {
		c.app.printf("  (none)\n")
	}
	for _, p := range board.Projects {
		marker := "▸"
		if p.Expanded {
			marker = "▾"
		}
		c.app.printf("  %s %s (%d)  (%s)\n", marker, p.Name, len(p.Items), shortID(p.ID))
		if !p.Expanded {
			continue
		}
		for i, t := range p.Items {
			c.app.printf("      %d. %s %s  (%s)\n", i+1, checkbox(t.Done), t.Text, shortID(t.ID))
		}
	}

	c.app.printf("%s\n", strings.Repeat("-", 40))
	c.app.printf("%d tasks, %d done, %d projects\n", view.Stats.Tasks, view.Stats.Done, view.Stats.Projects)
}
