package services

import (
	"context"

	"todo-list/internal/decompose"
	"todo-list/internal/domain"
	"todo-list/internal/transfer"
)

// FailureTaskText is added to the main list when a breakdown request fails
const FailureTaskText = "Sorry there is something wrong with the server, please try again later!"

// Storage keys for the two serialized containers
const (
	ItemsKey    = "items"
	ProjectsKey = "projects"
)

// Decomposer splits a big task into steps
type Decomposer interface {
	Decompose(ctx context.Context, task string) (*decompose.Result, error)
}

// ToggleResult reports a done-state change
type ToggleResult struct {
	Task *domain.Task `json:"task"`
	// MovedTo is the project a completed standalone task was filed into.
	MovedTo *domain.Project `json:"movedTo,omitempty"`
}

// DeleteProjectResult reports a cascade delete
type DeleteProjectResult struct {
	Project   *domain.Project `json:"project"`
	Discarded int             `json:"discarded"`
}

// DropResult reports a drop, with the board as it is (or would be) afterwards
type DropResult struct {
	Outcome transfer.Outcome `json:"outcome"`
	Board   *domain.Board    `json:"board"`
	// Ignored is set when the payload could not be decoded.
	Ignored bool `json:"ignored,omitempty"`
}

// DecomposeResult reports the tasks a breakdown added
type DecomposeResult struct {
	Added         []*domain.Task `json:"added"`
	Clarification string         `json:"clarification,omitempty"`
	Failed        bool           `json:"failed,omitempty"`
}

// BoardService owns the board and serialises every mutation.
// Each successful mutation persists both containers before returning.
type BoardService interface {
	// Board returns a snapshot that callers may freely modify
	Board() *domain.Board

	// Main list tasks
	AddTask(ctx context.Context, text string) (*domain.Task, error)
	RemoveTask(ctx context.Context, id string) error
	ToggleTask(ctx context.Context, id string) (*ToggleResult, error)

	// Projects
	CreateProject(ctx context.Context, name string) (*domain.Project, error)
	RenameProject(ctx context.Context, id string, name string) (*domain.Project, error)
	ToggleProjectExpanded(ctx context.Context, id string) (*domain.Project, error)
	DeleteProject(ctx context.Context, id string) (*DeleteProjectResult, error)
	DeleteProjectTask(ctx context.Context, projectID string, taskID string) error

	// Drag and drop
	Drop(ctx context.Context, payload string, target transfer.Target) (*DropResult, error)
	PreviewDrop(payload string, target transfer.Target) *DropResult

	// Breakdown
	Decompose(ctx context.Context, bigTask string) (*DecomposeResult, error)
}
