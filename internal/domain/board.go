package domain

import "sort"

// DefaultProjectName is the project that receives completed standalone tasks.
const DefaultProjectName = "Default"

// Board owns the two containers: the main list of standalone tasks and
// the ordered project list. Every task lives in exactly one of them.
type Board struct {
	Items    []*Task    `json:"items"`
	Projects []*Project `json:"projects"`
}

// TaskLocation describes where a task currently lives.
// ProjectID is empty for tasks in the main list.
type TaskLocation struct {
	Task      *Task
	ProjectID string
	Index     int
}

// InMainList reports whether the located task is a standalone task.
func (l TaskLocation) InMainList() bool {
	return l.ProjectID == ""
}

// NewBoard returns an empty board.
func NewBoard() *Board {
	return &Board{
		Items:    []*Task{},
		Projects: []*Project{},
	}
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	c := &Board{
		Items:    cloneTasks(b.Items),
		Projects: make([]*Project, len(b.Projects)),
	}
	for i, p := range b.Projects {
		c.Projects[i] = p.Clone()
	}
	return c
}

// MainIndex returns the main-list position of the task, or -1.
func (b *Board) MainIndex(id string) int {
	return indexOfTask(b.Items, id)
}

// FindTask locates a task by id in either container.
func (b *Board) FindTask(id string) (TaskLocation, bool) {
	if i := b.MainIndex(id); i >= 0 {
		return TaskLocation{Task: b.Items[i], Index: i}, true
	}
	for _, p := range b.Projects {
		if i := p.TaskIndex(id); i >= 0 {
			return TaskLocation{Task: p.Items[i], ProjectID: p.ID, Index: i}, true
		}
	}
	return TaskLocation{}, false
}

// ProjectIndex returns the position of the project, or -1.
func (b *Board) ProjectIndex(id string) int {
	for i, p := range b.Projects {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// FindProject returns the project with the given id.
func (b *Board) FindProject(id string) (*Project, bool) {
	if i := b.ProjectIndex(id); i >= 0 {
		return b.Projects[i], true
	}
	return nil, false
}

// ProjectByName returns the first project with the given name.
func (b *Board) ProjectByName(name string) (*Project, bool) {
	for _, p := range b.Projects {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// TaskCount returns the number of tasks across all containers.
func (b *Board) TaskCount() int {
	n := len(b.Items)
	for _, p := range b.Projects {
		n += len(p.Items)
	}
	return n
}

// TaskIDs returns the sorted ids of every task on the board.
func (b *Board) TaskIDs() []string {
	ids := make([]string, 0, b.TaskCount())
	for _, t := range b.Items {
		ids = append(ids, t.ID)
	}
	for _, p := range b.Projects {
		for _, t := range p.Items {
			ids = append(ids, t.ID)
		}
	}
	sort.Strings(ids)
	return ids
}
