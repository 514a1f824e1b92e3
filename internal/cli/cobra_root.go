package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"todo-list/internal/config"
)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd     *cobra.Command
	loader  *config.Loader
	build   AppBuilder
	app     *App
	cleanup func()
	out     io.Writer
}

// NewRootCommand creates the root cobra command with global flags. The App
// is built once configuration, including flag overrides, is known.
func NewRootCommand(loader *config.Loader, build AppBuilder) *RootCommand {
	root := &RootCommand{
		loader: loader,
		build:  build,
		out:    os.Stdout,
	}

	root.cmd = &cobra.Command{
		Use:   "todo",
		Short: "A to-do list with projects, drag and drop, and PDF export",
		Long: `todo keeps a list of standalone tasks and a list of projects, each with its
own tasks. The same board is available on the command line and in the browser.

EXAMPLES:
  todo add "Buy milk"                      # Add a standalone task
  todo done 1a2b                           # Toggle a task (id prefixes work)
  todo project create Garden               # Create a project
  todo move 1a2b --to project --project Garden
  todo breakdown "Plan the weekend"        # Split a big task into steps
  todo export -o list.pdf                  # Export the main list as PDF
  todo serve                               # Open the board in a browser

CONFIGURATION:
  Configuration follows this priority order:
  command-line flags > environment variables > config file > defaults

  Config file: ~/.todo/config.yaml (override with TODO_CONFIG or --config)

  Database Configuration:
    TODO_ENV                               production|development|testing (default: production)
    TODO_DB_DIR                            Database directory (default: ~/.todo)
    TODO_DB_FILENAME                       Database filename (default: todo.db)
    TODO_DB_QUERY_TIMEOUT                  Query timeout (default: 10s)
    TODO_DB_WRITE_TIMEOUT                  Write timeout (default: 5s)
    TODO_DB_DIR_PERMISSIONS                Octal mode for a created directory (default: 755)

  Server Configuration:
    TODO_SERVER_ADDR                       Listen address (default: localhost:8080)
    TODO_SERVER_MODE                       debug|release|test (default: release)

  Task Breakdown Configuration:
    TODO_DECOMPOSE_ENDPOINT                Endpoint URL
    TODO_DECOMPOSE_API_KEY                 Bearer key sent to the endpoint
    TODO_DECOMPOSE_TIMEOUT                 Request timeout (default: 60s)

  Export Configuration:
    TODO_EXPORT_FILENAME                   Default output file (default: todo.pdf)
    TODO_EXPORT_FONT_SIZE                  Body font size (default: 12)

  Validation Configuration:
    TODO_VALIDATION_TASK_TEXT_MAX          Max task text length (default: 500)
    TODO_VALIDATION_PROJECT_NAME_MAX       Max project name length (default: 100)

  Application Configuration:
    TODO_APP_TIMEOUT                       Command timeout (default: 60s)
    TODO_APP_VERBOSE                       Enable verbose logging (default: false)
    TODO_DEBUG                             Enable debug output`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if skipsSetup(cmd) {
				return nil
			}
			return root.setup(cmd)
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// SetArgs sets the arguments, mainly for tests
func (r *RootCommand) SetArgs(args []string) {
	r.cmd.SetArgs(args)
}

// SetOutput redirects command output
func (r *RootCommand) SetOutput(w io.Writer) {
	r.out = w
	r.cmd.SetOut(w)
	r.cmd.SetErr(w)
}

// Execute runs the root command and releases the App afterwards
func (r *RootCommand) Execute(ctx context.Context) error {
	defer r.close()
	return r.cmd.ExecuteContext(ctx)
}

func (r *RootCommand) close() {
	if r.cleanup != nil {
		r.cleanup()
		r.cleanup = nil
	}
}

// skipsSetup reports whether cmd runs without a board
func skipsSetup(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
			return true
		}
	}
	return false
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.String("config", "", "Config file (overrides TODO_CONFIG)")

	// Database configuration
	flags.String("db-dir", "", "Database directory (overrides TODO_DB_DIR)")
	flags.String("db-filename", "", "Database filename (overrides TODO_DB_FILENAME)")
	flags.Duration("db-query-timeout", 0, "Database query timeout (overrides TODO_DB_QUERY_TIMEOUT)")
	flags.Duration("db-write-timeout", 0, "Database write timeout (overrides TODO_DB_WRITE_TIMEOUT)")

	// Server configuration
	flags.String("addr", "", "Listen address (overrides TODO_SERVER_ADDR)")
	flags.String("mode", "", "Server mode debug|release|test (overrides TODO_SERVER_MODE)")

	// Task breakdown configuration
	flags.String("decompose-endpoint", "", "Task breakdown endpoint (overrides TODO_DECOMPOSE_ENDPOINT)")
	flags.Duration("decompose-timeout", 0, "Task breakdown timeout (overrides TODO_DECOMPOSE_TIMEOUT)")

	// Application configuration
	flags.Duration("app-timeout", 0, "Command timeout (overrides TODO_APP_TIMEOUT)")
	flags.BoolP("verbose", "v", false, "Enable verbose output (overrides TODO_APP_VERBOSE)")
}

// getOverridesFromFlags collects the flags the user actually set
func (r *RootCommand) getOverridesFromFlags(cmd *cobra.Command) *config.ConfigOverrides {
	flags := cmd.Flags()
	overrides := &config.ConfigOverrides{}

	stringFlag := func(name string) *string {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetString(name)
		return &v
	}
	durationFlag := func(name string) *time.Duration {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetDuration(name)
		return &v
	}

	overrides.DBDir = stringFlag("db-dir")
	overrides.DBFilename = stringFlag("db-filename")
	overrides.DBQueryTimeout = durationFlag("db-query-timeout")
	overrides.DBWriteTimeout = durationFlag("db-write-timeout")
	overrides.ServerAddr = stringFlag("addr")
	overrides.ServerMode = stringFlag("mode")
	overrides.DecomposeEndpoint = stringFlag("decompose-endpoint")
	overrides.DecomposeTimeout = durationFlag("decompose-timeout")
	overrides.Timeout = durationFlag("app-timeout")
	if flags.Changed("verbose") {
		v, _ := flags.GetBool("verbose")
		overrides.Verbose = &v
	}
	return overrides
}

// setup loads configuration and builds the App once per invocation
func (r *RootCommand) setup(cmd *cobra.Command) error {
	if r.app != nil {
		return nil
	}

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		r.loader.WithFile(path)
	}
	cfg, err := r.loader.LoadWithOverrides(r.getOverridesFromFlags(cmd))
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	app, cleanup, err := r.build(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	app.out = r.out
	r.app = app
	r.cleanup = cleanup
	return nil
}

// commandContext bounds a command by the configured timeout
func (r *RootCommand) commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	timeout := 60 * time.Second
	if r.app != nil && r.app.config != nil {
		timeout = r.app.config.Application.Timeout
	}
	return context.WithTimeout(cmd.Context(), timeout)
}

// runHandler runs a handler under the command timeout
func (r *RootCommand) runHandler(newHandler func(*App) Command) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx, cancel := r.commandContext(cmd)
		defer cancel()
		return newHandler(r.app).Execute(ctx, args)
	}
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	// List command
	var listJSON bool
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Show the board",
		Long:  "Show standalone tasks and projects. Collapsed projects only show their task count.",
		Args:  cobra.NoArgs,
		RunE: r.runHandler(func(app *App) Command {
			handler := NewListCommand(app)
			handler.JSON = listJSON
			return handler
		}),
	}
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Print the board as JSON")

	// Add command
	addCmd := &cobra.Command{
		Use:   "add [task text]",
		Short: "Add a standalone task",
		Args:  cobra.MinimumNArgs(1),
		RunE:  r.runHandler(func(app *App) Command { return NewAddCommand(app) }),
	}

	// Done command
	doneCmd := &cobra.Command{
		Use:   "done [task id]",
		Short: "Toggle whether a task is done",
		Long: `Toggle whether a task is done.

A standalone task that is completed moves into the "Default" project,
which is created when it does not exist yet.`,
		Args: cobra.ExactArgs(1),
		RunE: r.runHandler(func(app *App) Command { return NewDoneCommand(app) }),
	}

	// Remove command
	rmCmd := &cobra.Command{
		Use:   "rm [task id]",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE:  r.runHandler(func(app *App) Command { return NewRemoveCommand(app) }),
	}

	// Project commands
	projectCmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}
	projectSub := func(use, short string, args cobra.PositionalArgs, run func(*ProjectCommand, context.Context, []string) error) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			Args:  args,
			RunE: func(cmd *cobra.Command, a []string) error {
				ctx, cancel := r.commandContext(cmd)
				defer cancel()
				return run(NewProjectCommand(r.app), ctx, a)
			},
		}
	}
	projectCmd.AddCommand(
		projectSub("create [name]", "Create a project", cobra.MinimumNArgs(1), (*ProjectCommand).Create),
		projectSub("rename [project] [name]", "Rename a project", cobra.MinimumNArgs(2), (*ProjectCommand).Rename),
		projectSub("delete [project]", "Delete a project and all of its tasks", cobra.ExactArgs(1), (*ProjectCommand).Delete),
		projectSub("toggle [project]", "Expand or collapse a project", cobra.ExactArgs(1), (*ProjectCommand).Toggle),
		projectSub("rm-task [project] [task id]", "Delete a task from a project", cobra.ExactArgs(2), (*ProjectCommand).RemoveTask),
	)

	// Move command
	var moveTo, moveProject string
	var moveIndex int
	var moveDryRun bool
	moveCmd := &cobra.Command{
		Use:   "move [payload or id]",
		Short: "Move a task or project",
		Long: `Move a task or project, exactly like dropping it in the browser.

The argument is a task id, a project id or name, or a raw transfer payload
such as '{"source":"main","index":2}'.

Targets:
  main           position --index in the main list
  project        the project given by --project (appends)
  project-list   position --index in the project list
  project-item   position --index inside the project given by --project

Moves that make no sense (for example a project onto the main list) do nothing.`,
		Args: cobra.ExactArgs(1),
		RunE: r.runHandler(func(app *App) Command {
			handler := NewMoveCommand(app)
			handler.To = moveTo
			handler.Project = moveProject
			handler.Index = moveIndex
			handler.DryRun = moveDryRun
			return handler
		}),
	}
	moveCmd.Flags().StringVar(&moveTo, "to", "main", "Target kind: main|project|project-list|project-item")
	moveCmd.Flags().StringVar(&moveProject, "project", "", "Target project id or name")
	moveCmd.Flags().IntVar(&moveIndex, "index", 0, "Target position")
	moveCmd.Flags().BoolVar(&moveDryRun, "dry-run", false, "Show the resulting board without saving")

	// Breakdown command
	breakdownCmd := &cobra.Command{
		Use:   "breakdown [big task]",
		Short: "Split a big task into smaller tasks",
		Long: `Send a big task to the configured breakdown endpoint. Every numbered step
in the reply becomes a standalone task; any other text is printed.`,
		Args: cobra.MinimumNArgs(1),
		RunE: r.runHandler(func(app *App) Command { return NewBreakdownCommand(app) }),
	}

	// Export command
	var exportProject, exportInput, exportOutput string
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export the main list or a project as PDF",
		Args:  cobra.NoArgs,
		RunE: r.runHandler(func(app *App) Command {
			handler := NewExportCommand(app)
			handler.Project = exportProject
			handler.Input = exportInput
			if exportOutput != "" {
				handler.Output = exportOutput
			}
			return handler
		}),
	}
	exportCmd.Flags().StringVar(&exportProject, "project", "", "Project id or name to export")
	exportCmd.Flags().StringVar(&exportInput, "input", "", "Big task text printed under the list")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file, - for stdout (overrides TODO_EXPORT_FILENAME)")

	// Serve command
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the board in the browser",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return NewServeCommand(r.app).Execute(ctx, args)
		},
	}

	r.cmd.AddCommand(
		listCmd,
		addCmd,
		doneCmd,
		rmCmd,
		projectCmd,
		moveCmd,
		breakdownCmd,
		exportCmd,
		serveCmd,
	)
}
