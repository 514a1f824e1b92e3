package cli

import (
	"context"

	"todo-list/internal/web"
)

// ServeCommand runs the web interface until the context is cancelled
type ServeCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewServeCommand creates a new serve command handler
func NewServeCommand(app *App) *ServeCommand {
	return &ServeCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the serve command
func (c *ServeCommand) Execute(ctx context.Context, args []string) error {
	server, err := web.NewServer(c.app.businessAPI, c.app.config, c.app.logger)
	if err != nil {
		return c.errorHandler.Handle("start server", err)
	}

	c.app.printf("Serving on http://%s\n", c.app.config.Server.Addr)
	return server.Run(ctx, c.app.config.Server.Addr)
}
