package api

import (
	"context"
	"io"

	"todo-list/internal/domain"
	"todo-list/internal/export"
	"todo-list/internal/services"
	"todo-list/internal/transfer"
)

// BoardStats summarises a board for list footers
type BoardStats struct {
	Tasks      int `json:"tasks"`
	Done       int `json:"done"`
	Standalone int `json:"standalone"`
	Projects   int `json:"projects"`
}

// BoardView is a board snapshot together with its statistics
type BoardView struct {
	Board *domain.Board `json:"board"`
	Stats BoardStats    `json:"stats"`
}

// DropRequest is a drag payload dropped on a target
type DropRequest struct {
	Payload string          `json:"payload"`
	Target  transfer.Target `json:"target"`
	DryRun  bool            `json:"dryRun"`
}

// ExportRequest selects what goes into a PDF export
type ExportRequest struct {
	ProjectID string `json:"project,omitempty"`
	BigTask   string `json:"input,omitempty"`
}

// BusinessAPI is the facade used by the command line and the web server
type BusinessAPI interface {
	// ========== Queries ==========

	// GetBoard returns the current board
	GetBoard(ctx context.Context) (*BoardView, error)

	// ResolveTaskID expands a full id or unique prefix to a task id
	ResolveTaskID(ctx context.Context, ref string) (string, error)

	// ResolveProjectID expands a full id, unique prefix or exact name to a project id
	ResolveProjectID(ctx context.Context, ref string) (string, error)

	// ========== Tasks ==========

	AddTask(ctx context.Context, text string) (*domain.Task, error)
	RemoveTask(ctx context.Context, id string) error
	ToggleTask(ctx context.Context, id string) (*services.ToggleResult, error)

	// ========== Projects ==========

	CreateProject(ctx context.Context, name string) (*domain.Project, error)
	RenameProject(ctx context.Context, id string, name string) (*domain.Project, error)
	ToggleProject(ctx context.Context, id string) (*domain.Project, error)

	// DeleteProject removes the project and discards all of its tasks
	DeleteProject(ctx context.Context, id string) (*services.DeleteProjectResult, error)
	DeleteProjectTask(ctx context.Context, projectID string, taskID string) error

	// ========== Drag and drop ==========

	// Drop applies (or with DryRun, previews) one move
	Drop(ctx context.Context, req DropRequest) (*services.DropResult, error)

	// ========== Collaborators ==========

	// Decompose splits a big task into standalone tasks
	Decompose(ctx context.Context, bigTask string) (*services.DecomposeResult, error)

	// ExportPDF writes the selected list as a PDF document
	ExportPDF(ctx context.Context, req ExportRequest, w io.Writer) (*export.Document, error)
}
