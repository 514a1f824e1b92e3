package domain

// Project is a named, ordered bucket of tasks.
type Project struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Items    []*Task `json:"items"`
	Expanded bool    `json:"expanded"`
}

// NewProject creates an empty, collapsed project with a fresh id.
func NewProject(name string) *Project {
	return &Project{
		ID:    NewID(),
		Name:  name,
		Items: []*Task{},
	}
}

// TaskIndex returns the position of the task with the given id, or -1.
func (p *Project) TaskIndex(id string) int {
	return indexOfTask(p.Items, id)
}

// Clone returns a deep copy of the project and its items.
func (p *Project) Clone() *Project {
	c := *p
	c.Items = cloneTasks(p.Items)
	return &c
}

func indexOfTask(tasks []*Task, id string) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func cloneTasks(tasks []*Task) []*Task {
	out := make([]*Task, len(tasks))
	for i, t := range tasks {
		out[i] = t.Clone()
	}
	return out
}
