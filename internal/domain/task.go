package domain

import "github.com/google/uuid"

// Task represents a single to-do entry.
// ProjectID is only a historical marker left by the auto-migration of
// completed tasks; it is never used to locate a task.
type Task struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Done      bool   `json:"done"`
	ProjectID string `json:"projectId,omitempty"`
}

// NewTask creates a not-done Task with a fresh id.
func NewTask(text string) *Task {
	return &Task{
		ID:   NewID(),
		Text: text,
	}
}

// NewID returns a stable opaque identifier for tasks and projects.
func NewID() string {
	return uuid.NewString()
}

// Clone returns an independent copy of the task.
func (t *Task) Clone() *Task {
	c := *t
	return &c
}
