// Package transfer encodes drag payloads and resolves drops into moves on a board.
package transfer

import (
	"bytes"
	"encoding/json"
	"strings"

	"todo-list/internal/domain"
	"todo-list/internal/errors"
)

// Source is the kind of entity being dragged.
type Source string

const (
	SourceMain         Source = "main"
	SourceProjectTitle Source = "project-title"
	SourceProject      Source = "project"
)

// Descriptor identifies the dragged entity for the length of one gesture.
// Ids are authoritative; Index and ProjectIndex are informational and only
// used when a payload carries no ids. Absent positions are -1.
type Descriptor struct {
	Source       Source
	TaskID       string
	ProjectID    string
	Index        int
	ProjectIndex int
}

// MainTask describes a standalone task at index.
func MainTask(task *domain.Task, index int) Descriptor {
	return Descriptor{Source: SourceMain, TaskID: task.ID, Index: index, ProjectIndex: -1}
}

// ProjectHeader describes a project header at index.
func ProjectHeader(project *domain.Project, index int) Descriptor {
	return Descriptor{Source: SourceProjectTitle, ProjectID: project.ID, Index: -1, ProjectIndex: index}
}

// ProjectTask describes a task nested in a project.
func ProjectTask(project *domain.Project, projectIndex int, task *domain.Task, index int) Descriptor {
	return Descriptor{
		Source:       SourceProject,
		TaskID:       task.ID,
		ProjectID:    project.ID,
		Index:        index,
		ProjectIndex: projectIndex,
	}
}

type payload struct {
	Source       json.RawMessage `json:"source"`
	TaskID       string          `json:"taskId,omitempty"`
	ProjectID    string          `json:"projectId,omitempty"`
	Index        *int            `json:"index,omitempty"`
	ProjectIndex *int            `json:"projectIndex,omitempty"`
	ItemIndex    *int            `json:"itemIndex,omitempty"`
}

// Encode renders the descriptor as the text payload carried by a drag operation.
func Encode(d Descriptor) (string, error) {
	if !d.valid() {
		return "", errors.NewInvalidInputError("descriptor", d.Source, "descriptor does not identify an entity")
	}

	source, _ := json.Marshal(string(d.Source))
	p := payload{
		Source:    source,
		TaskID:    d.TaskID,
		ProjectID: d.ProjectID,
	}
	if d.Index >= 0 {
		p.Index = intPtr(d.Index)
	}
	if d.ProjectIndex >= 0 {
		p.ProjectIndex = intPtr(d.ProjectIndex)
	}

	data, err := json.Marshal(p)
	if err != nil {
		return "", errors.WrapError(err, errors.ErrorTypeInvalidInput, "failed to encode transfer descriptor")
	}
	return string(data), nil
}

// Decode parses a drag payload. Malformed, empty or unidentifiable payloads
// return ok=false and must be treated as a no-op by the caller.
//
// Positional payloads without ids are accepted, including the shape where
// source is the numeric index of the project holding a nested task.
func Decode(text string) (Descriptor, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Descriptor{}, false
	}

	var p payload
	dec := json.NewDecoder(strings.NewReader(text))
	if err := dec.Decode(&p); err != nil || dec.More() {
		return Descriptor{}, false
	}

	d := Descriptor{
		TaskID:       strings.TrimSpace(p.TaskID),
		ProjectID:    strings.TrimSpace(p.ProjectID),
		Index:        position(p.Index),
		ProjectIndex: position(p.ProjectIndex),
	}
	if p.ItemIndex != nil && p.Index == nil {
		d.Index = position(p.ItemIndex)
	}
	if hasNegative(p.Index, p.ProjectIndex, p.ItemIndex) {
		return Descriptor{}, false
	}

	raw := bytes.TrimSpace(p.Source)
	var name string
	var projectIndex int
	switch {
	case json.Unmarshal(raw, &name) == nil:
		d.Source = Source(name)
	case json.Unmarshal(raw, &projectIndex) == nil && projectIndex >= 0:
		d.Source = SourceProject
		d.ProjectIndex = projectIndex
	default:
		return Descriptor{}, false
	}

	if !d.valid() {
		return Descriptor{}, false
	}
	return d, true
}

func (d Descriptor) valid() bool {
	switch d.Source {
	case SourceMain:
		return d.TaskID != "" || d.Index >= 0
	case SourceProjectTitle:
		return d.ProjectID != "" || d.ProjectIndex >= 0
	case SourceProject:
		if d.TaskID != "" {
			return true
		}
		return d.Index >= 0 && (d.ProjectID != "" || d.ProjectIndex >= 0)
	default:
		return false
	}
}

func position(p *int) int {
	if p == nil {
		return -1
	}
	return *p
}

func hasNegative(values ...*int) bool {
	for _, v := range values {
		if v != nil && *v < 0 {
			return true
		}
	}
	return false
}

func intPtr(i int) *int {
	return &i
}
