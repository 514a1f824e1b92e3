package domain

import (
	"encoding/json"
	"strconv"
)

// TaskRecord is the persisted shape of a task inside the "items" blob
// or a project's "items" array. Older blobs may omit id and done, and
// may carry a numeric projectId.
type TaskRecord struct {
	ID        string `json:"id,omitempty"`
	Text      string `json:"text"`
	Done      bool   `json:"done"`
	ProjectID any    `json:"projectId,omitempty"`
}

// ProjectRecord is the persisted shape of a project inside the "projects" blob.
type ProjectRecord struct {
	ID       string        `json:"id,omitempty"`
	Name     string        `json:"name"`
	Items    []*TaskRecord `json:"items"`
	Expanded bool          `json:"expanded"`
}

// TaskMapper handles conversion between domain tasks and persisted records.
type TaskMapper struct{}

// NewTaskMapper creates a new TaskMapper instance.
func NewTaskMapper() *TaskMapper {
	return &TaskMapper{}
}

// ToRecord converts a domain Task to a persisted record.
func (m *TaskMapper) ToRecord(task *Task) *TaskRecord {
	record := &TaskRecord{
		ID:   task.ID,
		Text: task.Text,
		Done: task.Done,
	}
	if task.ProjectID != "" {
		record.ProjectID = task.ProjectID
	}
	return record
}

// FromRecord converts a persisted record to a domain Task, assigning an id when missing.
func (m *TaskMapper) FromRecord(record *TaskRecord) *Task {
	task := &Task{
		ID:        record.ID,
		Text:      record.Text,
		Done:      record.Done,
		ProjectID: markerString(record.ProjectID),
	}
	if task.ID == "" {
		task.ID = NewID()
	}
	return task
}

// ToRecordSlice converts domain tasks to records.
func (m *TaskMapper) ToRecordSlice(tasks []*Task) []*TaskRecord {
	records := make([]*TaskRecord, len(tasks))
	for i, t := range tasks {
		records[i] = m.ToRecord(t)
	}
	return records
}

// FromRecordSlice converts records to domain tasks, skipping null entries.
func (m *TaskMapper) FromRecordSlice(records []*TaskRecord) []*Task {
	tasks := make([]*Task, 0, len(records))
	for _, r := range records {
		if r == nil {
			continue
		}
		tasks = append(tasks, m.FromRecord(r))
	}
	return tasks
}

// ProjectMapper handles conversion between domain projects and persisted records.
type ProjectMapper struct {
	tasks *TaskMapper
}

// NewProjectMapper creates a new ProjectMapper instance.
func NewProjectMapper() *ProjectMapper {
	return &ProjectMapper{tasks: NewTaskMapper()}
}

// ToRecord converts a domain Project to a persisted record.
func (m *ProjectMapper) ToRecord(project *Project) *ProjectRecord {
	return &ProjectRecord{
		ID:       project.ID,
		Name:     project.Name,
		Items:    m.tasks.ToRecordSlice(project.Items),
		Expanded: project.Expanded,
	}
}

// FromRecord converts a persisted record to a domain Project.
func (m *ProjectMapper) FromRecord(record *ProjectRecord) *Project {
	project := &Project{
		ID:       record.ID,
		Name:     record.Name,
		Items:    m.tasks.FromRecordSlice(record.Items),
		Expanded: record.Expanded,
	}
	if project.ID == "" {
		project.ID = NewID()
	}
	return project
}

// Mapper provides access to all domain mappers and the blob codec.
type Mapper struct {
	Task    *TaskMapper
	Project *ProjectMapper
}

// NewMapper creates a new Mapper instance with all sub-mappers.
func NewMapper() *Mapper {
	return &Mapper{
		Task:    NewTaskMapper(),
		Project: NewProjectMapper(),
	}
}

// EncodeItems serialises the main list for the "items" key.
func (m *Mapper) EncodeItems(tasks []*Task) ([]byte, error) {
	return json.Marshal(m.Task.ToRecordSlice(tasks))
}

// DecodeItems parses an "items" blob.
func (m *Mapper) DecodeItems(data []byte) ([]*Task, error) {
	var records []*TaskRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return m.Task.FromRecordSlice(records), nil
}

// EncodeProjects serialises the project list for the "projects" key.
func (m *Mapper) EncodeProjects(projects []*Project) ([]byte, error) {
	records := make([]*ProjectRecord, len(projects))
	for i, p := range projects {
		records[i] = m.Project.ToRecord(p)
	}
	return json.Marshal(records)
}

// DecodeProjects parses a "projects" blob, skipping null entries.
func (m *Mapper) DecodeProjects(data []byte) ([]*Project, error) {
	var records []*ProjectRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	projects := make([]*Project, 0, len(records))
	for _, r := range records {
		if r == nil {
			continue
		}
		projects = append(projects, m.Project.FromRecord(r))
	}
	return projects, nil
}

func markerString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}
