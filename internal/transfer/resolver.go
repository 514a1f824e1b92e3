package transfer

import (
	"slices"

	"todo-list/internal/domain"
)

// Effect names the move a drop produced.
type Effect string

const (
	EffectNone             Effect = "none"
	EffectReorderMain      Effect = "reorder-main"
	EffectMainToProject    Effect = "main-to-project"
	EffectReorderProjects  Effect = "reorder-projects"
	EffectProjectToProject Effect = "project-to-project"
	EffectReorderProject   Effect = "reorder-project"
)

// Outcome reports what a drop did. A drop that could not be resolved,
// or whose move is an identity, has Changed == false.
type Outcome struct {
	Changed bool   `json:"changed"`
	Effect  Effect `json:"effect"`
	Reason  string `json:"reason,omitempty"`
}

func noop(reason string) Outcome {
	return Outcome{Effect: EffectNone, Reason: reason}
}

// Resolver applies one drop to a board.
type Resolver struct{}

// NewResolver creates a new Resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Preview applies the drop to a copy of the board and returns the projected
// board. The original board is never modified.
func (r *Resolver) Preview(board *domain.Board, d Descriptor, t Target) (*domain.Board, Outcome) {
	projected := board.Clone()
	return projected, r.Apply(projected, d, t)
}

// Apply performs exactly one atomic move. Stale ids, out-of-range positions
// and unsupported source/target pairs leave the board untouched.
func (r *Resolver) Apply(board *domain.Board, d Descriptor, t Target) Outcome {
	switch d.Source {
	case SourceMain:
		return r.moveMainTask(board, d, t)
	case SourceProjectTitle:
		return r.moveProject(board, d, t)
	case SourceProject:
		return r.moveProjectTask(board, d, t)
	default:
		return noop("unknown source")
	}
}

func (r *Resolver) moveMainTask(board *domain.Board, d Descriptor, t Target) Outcome {
	from, ok := resolveMainTask(board, d)
	if !ok {
		return noop("dragged task no longer exists")
	}

	switch t.Kind {
	case TargetMainList:
		if !reorder(&board.Items, from, t.Index) {
			return noop("task dropped on its own position")
		}
		return Outcome{Changed: true, Effect: EffectReorderMain}

	case TargetProject, TargetProjectItem:
		dest, ok := board.FindProject(t.ProjectID)
		if !ok {
			return noop("target project no longer exists")
		}
		task := board.Items[from]
		board.Items = slices.Delete(board.Items, from, from+1)
		task.ProjectID = ""
		dest.Items = append(dest.Items, task)
		return Outcome{Changed: true, Effect: EffectMainToProject}
	}

	return noop("standalone tasks cannot be dropped there")
}

func (r *Resolver) moveProject(board *domain.Board, d Descriptor, t Target) Outcome {
	from, ok := resolveProject(board, d.ProjectID, d.ProjectIndex)
	if !ok {
		return noop("dragged project no longer exists")
	}

	var to int
	switch t.Kind {
	case TargetProjectList:
		to = t.Index
	case TargetProject:
		if to = board.ProjectIndex(t.ProjectID); to < 0 {
			return noop("target project no longer exists")
		}
	default:
		return noop("projects can only be dropped on the project list")
	}

	if !reorder(&board.Projects, from, to) {
		return noop("project dropped on its own position")
	}
	return Outcome{Changed: true, Effect: EffectReorderProjects}
}

func (r *Resolver) moveProjectTask(board *domain.Board, d Descriptor, t Target) Outcome {
	src, from, ok := resolveProjectTask(board, d)
	if !ok {
		return noop("dragged task no longer exists")
	}
	if !t.Kind.NeedsProject() {
		return noop("project tasks can only be dropped on a project")
	}

	dest, ok := board.FindProject(t.ProjectID)
	if !ok {
		return noop("target project no longer exists")
	}

	if dest == src {
		if t.Kind != TargetProjectItem {
			return noop("task dropped on its own project")
		}
		if !reorder(&src.Items, from, t.Index) {
			return noop("task dropped on its own position")
		}
		return Outcome{Changed: true, Effect: EffectReorderProject}
	}

	task := src.Items[from]
	src.Items = slices.Delete(src.Items, from, from+1)
	dest.Items = append(dest.Items, task)
	return Outcome{Changed: true, Effect: EffectProjectToProject}
}

// reorder removes the element at from and reinserts it at to, clamping to
// the shortened sequence. It reports whether the order changed.
func reorder[T any](seq *[]T, from, to int) bool {
	s := *seq
	item := s[from]
	s = slices.Delete(s, from, from+1)
	to = max(0, min(to, len(s)))
	*seq = slices.Insert(s, to, item)
	return to != from
}

func resolveMainTask(board *domain.Board, d Descriptor) (int, bool) {
	if d.TaskID != "" {
		i := board.MainIndex(d.TaskID)
		return i, i >= 0
	}
	return d.Index, inRange(d.Index, len(board.Items))
}

func resolveProject(board *domain.Board, id string, index int) (int, bool) {
	if id != "" {
		i := board.ProjectIndex(id)
		return i, i >= 0
	}
	return index, inRange(index, len(board.Projects))
}

func resolveProjectTask(board *domain.Board, d Descriptor) (*domain.Project, int, bool) {
	if d.TaskID != "" {
		loc, ok := board.FindTask(d.TaskID)
		if !ok || loc.InMainList() {
			return nil, 0, false
		}
		p, _ := board.FindProject(loc.ProjectID)
		return p, loc.Index, true
	}

	pi, ok := resolveProject(board, d.ProjectID, d.ProjectIndex)
	if !ok {
		return nil, 0, false
	}
	p := board.Projects[pi]
	if !inRange(d.Index, len(p.Items)) {
		return nil, 0, false
	}
	return p, d.Index, true
}

func inRange(i, n int) bool {
	return i >= 0 && i < n
}
