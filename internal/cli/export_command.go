package cli

import (
	"bytes"
	"context"
	"os"

	"todo-list/internal/api"
)

// ExportCommand writes the main list or one project as a PDF
type ExportCommand struct {
	app          *App
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler

	Project string
	Input   string
	Output  string
}

// NewExportCommand creates a new export command handler
func NewExportCommand(app *App) *ExportCommand {
	return &ExportCommand{
		app:          app,
		businessAPI:  app.businessAPI,
		errorHandler: NewErrorHandler(),
		Output:       app.config.Export.Filename,
	}
}

// Execute runs the export command. Output "-" writes to stdout.
func (c *ExportCommand) Execute(ctx context.Context, args []string) error {
	req := api.ExportRequest{BigTask: c.Input}
	if c.Project != "" {
		id, err := c.businessAPI.ResolveProjectID(ctx, c.Project)
		if err != nil {
			return c.errorHandler.Handle("find project", err)
		}
		req.ProjectID = id
	}

	var buf bytes.Buffer
	doc, err := c.businessAPI.ExportPDF(ctx, req, &buf)
	if err != nil {
		return c.errorHandler.Handle("export", err)
	}

	if c.Output == "-" {
		_, err := c.app.out.Write(buf.Bytes())
		return err
	}
	if err := os.WriteFile(c.Output, buf.Bytes(), 0644); err != nil {
		return c.errorHandler.Handle("write export", err)
	}
	c.app.printf("Exported %q (%d tasks) to %s\n", doc.Title, len(doc.Rows), c.Output)
	return nil
}
