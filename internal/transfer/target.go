package transfer

import (
	"fmt"

	"todo-list/internal/errors"
)

// TargetKind is the kind of drop zone.
type TargetKind string

const (
	// TargetMainList is a position in the main list.
	TargetMainList TargetKind = "main-list"
	// TargetProject is a project header or its nested area.
	TargetProject TargetKind = "project"
	// TargetProjectList is a position in the project list.
	TargetProjectList TargetKind = "project-list"
	// TargetProjectItem is a position inside a project's items.
	TargetProjectItem TargetKind = "project-item"
)

// Target is where a dragged entity was dropped.
type Target struct {
	Kind      TargetKind `json:"kind"`
	ProjectID string     `json:"projectId,omitempty"`
	Index     int        `json:"index"`
}

// ParseTargetKind converts a user supplied name to a TargetKind.
// The short forms "main" and "projects" are accepted.
func ParseTargetKind(s string) (TargetKind, error) {
	switch s {
	case "main", string(TargetMainList):
		return TargetMainList, nil
	case string(TargetProject):
		return TargetProject, nil
	case "projects", string(TargetProjectList):
		return TargetProjectList, nil
	case string(TargetProjectItem):
		return TargetProjectItem, nil
	default:
		return "", errors.NewInvalidInputError("target", s, "unknown drop target")
	}
}

// NeedsProject reports whether the target kind refers to a specific project.
func (k TargetKind) NeedsProject() bool {
	return k == TargetProject || k == TargetProjectItem
}

// Validate checks the shape of the target without consulting a board.
func (t Target) Validate() error {
	if _, err := ParseTargetKind(string(t.Kind)); err != nil {
		return err
	}
	if t.Kind.NeedsProject() && t.ProjectID == "" {
		return errors.NewInvalidInputError("target", t.Kind, fmt.Sprintf("%s target requires a project id", t.Kind))
	}
	if t.Index < 0 {
		return errors.NewInvalidInputError("index", t.Index, "index must not be negative")
	}
	return nil
}
