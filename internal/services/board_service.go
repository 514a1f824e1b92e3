package services

import (
	"bytes"
	"context"
	"log/slog"
	"sync"

	"todo-list/internal/domain"
	"todo-list/internal/errors"
	"todo-list/internal/logging"
	"todo-list/internal/repository/sqlite"
	"todo-list/internal/transfer"
	"todo-list/internal/validation"
)

// BoardManager implements BoardService on top of the key-value repository
type BoardManager struct {
	mu               sync.Mutex
	board            *domain.Board
	repo             sqlite.Repository
	decomposer       Decomposer
	mapper           *domain.Mapper
	resolver         *transfer.Resolver
	taskValidator    *validation.TaskValidator
	projectValidator *validation.ProjectValidator
	logger           *slog.Logger
}

// Option customises a BoardManager
type Option func(*BoardManager)

// WithLogger sets the structured logger
func WithLogger(logger *slog.Logger) Option {
	return func(m *BoardManager) { m.logger = logger }
}

// WithValidators sets the text validators, usually built from configuration
func WithValidators(tasks *validation.TaskValidator, projects *validation.ProjectValidator) Option {
	return func(m *BoardManager) {
		m.taskValidator = tasks
		m.projectValidator = projects
	}
}

// NewBoardManager loads the board from repo. Missing or unreadable blobs
// start as empty containers.
func NewBoardManager(ctx context.Context, repo sqlite.Repository, decomposer Decomposer, opts ...Option) (*BoardManager, error) {
	m := &BoardManager{
		repo:             repo,
		decomposer:       decomposer,
		mapper:           domain.NewMapper(),
		resolver:         transfer.NewResolver(),
		taskValidator:    validation.NewTaskValidator(),
		projectValidator: validation.NewProjectValidator(),
		logger:           logging.New(false),
	}
	for _, opt := range opts {
		opt(m)
	}

	if err := m.load(ctx); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *BoardManager) load(ctx context.Context) error {
	itemsRaw, err := m.read(ctx, ItemsKey)
	if err != nil {
		return err
	}
	projectsRaw, err := m.read(ctx, ProjectsKey)
	if err != nil {
		return err
	}

	board := domain.NewBoard()
	var fix []sqlite.Entry
	if itemsRaw != nil {
		if items, err := m.mapper.DecodeItems(itemsRaw); err != nil {
			m.logger.Warn("ignoring unreadable blob", "key", ItemsKey, "error", err)
		} else {
			board.Items = items
			if enc, err := m.mapper.EncodeItems(items); err == nil && !bytes.Equal(enc, itemsRaw) {
				fix = append(fix, sqlite.Entry{Key: ItemsKey, Value: enc})
			}
		}
	}
	if projectsRaw != nil {
		if projects, err := m.mapper.DecodeProjects(projectsRaw); err != nil {
			m.logger.Warn("ignoring unreadable blob", "key", ProjectsKey, "error", err)
		} else {
			board.Projects = projects
			if enc, err := m.mapper.EncodeProjects(projects); err == nil && !bytes.Equal(enc, projectsRaw) {
				fix = append(fix, sqlite.Entry{Key: ProjectsKey, Value: enc})
			}
		}
	}
	m.board = board

	// Older blobs get ids assigned on decode; store them so they stay stable.
	// An unreadable blob is left as it is until the board is next changed.
	if len(fix) == 0 {
		return nil
	}
	logging.Debugf("normalising stored board (%d tasks, %d projects)\n", board.TaskCount(), len(board.Projects))
	return m.repo.PutMany(ctx, fix)
}

func (m *BoardManager) read(ctx context.Context, key string) ([]byte, error) {
	entry, err := m.repo.Get(ctx, key)
	if err != nil {
		if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return entry.Value, nil
}

func (m *BoardManager) encode(board *domain.Board) ([]byte, []byte, error) {
	items, err := m.mapper.EncodeItems(board.Items)
	if err != nil {
		return nil, nil, errors.WrapError(err, errors.ErrorTypeDatabase, "failed to encode items")
	}
	projects, err := m.mapper.EncodeProjects(board.Projects)
	if err != nil {
		return nil, nil, errors.WrapError(err, errors.ErrorTypeDatabase, "failed to encode projects")
	}
	return items, projects, nil
}

func (m *BoardManager) write(ctx context.Context, items, projects []byte) error {
	return m.repo.PutMany(ctx, []sqlite.Entry{
		{Key: ItemsKey, Value: items},
		{Key: ProjectsKey, Value: projects},
	})
}

// mutate runs fn on a copy of the board and, when fn reports a change,
// persists the copy and makes it current. On any error the board is unchanged.
func (m *BoardManager) mutate(ctx context.Context, op string, fn func(b *domain.Board) (bool, error)) error {
	next := m.board.Clone()
	changed, err := fn(next)
	if err != nil || !changed {
		return err
	}

	items, projects, err := m.encode(next)
	if err != nil {
		return err
	}
	if err := m.write(ctx, items, projects); err != nil {
		m.logger.Error("failed to persist board", "op", op, "error", err)
		return err
	}

	m.board = next
	m.logger.Debug("board updated", "op", op, "tasks", next.TaskCount(), "projects", len(next.Projects))
	return nil
}

// Board returns a snapshot of the current board
func (m *BoardManager) Board() *domain.Board {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.board.Clone()
}

// AddTask appends a standalone task to the main list
func (m *BoardManager) AddTask(ctx context.Context, text string) (*domain.Task, error) {
	text, err := m.taskValidator.GetValidTaskText(text)
	if err != nil {
		return nil, errors.NewValidationError("invalid task text", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	task := domain.NewTask(text)
	err = m.mutate(ctx, "add task", func(b *domain.Board) (bool, error) {
		b.Items = append(b.Items, task)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return task.Clone(), nil
}

// RemoveTask deletes a standalone task
func (m *BoardManager) RemoveTask(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.mutate(ctx, "remove task", func(b *domain.Board) (bool, error) {
		i := b.MainIndex(id)
		if i < 0 {
			return false, errors.NewNotFoundError("task", id)
		}
		b.Items = append(b.Items[:i], b.Items[i+1:]...)
		return true, nil
	})
}

// ToggleTask flips the done state of a task in any container. A standalone
// task without a project marker that becomes done is filed into the
// "Default" project, which is created when missing.
func (m *BoardManager) ToggleTask(ctx context.Context, id string) (*ToggleResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := &ToggleResult{}
	err := m.mutate(ctx, "toggle task", func(b *domain.Board) (bool, error) {
		loc, ok := b.FindTask(id)
		if !ok {
			return false, errors.NewNotFoundError("task", id)
		}
		task := loc.Task
		task.Done = !task.Done
		result.Task = task

		if !loc.InMainList() || !task.Done || task.ProjectID != "" {
			return true, nil
		}

		dest, ok := b.ProjectByName(domain.DefaultProjectName)
		if !ok {
			dest = domain.NewProject(domain.DefaultProjectName)
			b.Projects = append(b.Projects, dest)
		}
		b.Items = append(b.Items[:loc.Index], b.Items[loc.Index+1:]...)
		task.ProjectID = dest.ID
		dest.Items = append(dest.Items, task)
		result.MovedTo = dest
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	result.Task = result.Task.Clone()
	if result.MovedTo != nil {
		result.MovedTo = result.MovedTo.Clone()
	}
	return result, nil
}

// CreateProject appends an empty, collapsed project
func (m *BoardManager) CreateProject(ctx context.Context, name string) (*domain.Project, error) {
	name, err := m.projectValidator.GetValidProjectName(name)
	if err != nil {
		return nil, errors.NewValidationError("invalid project name", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	project := domain.NewProject(name)
	err = m.mutate(ctx, "create project", func(b *domain.Board) (bool, error) {
		b.Projects = append(b.Projects, project)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return project.Clone(), nil
}

// RenameProject changes a project's name
func (m *BoardManager) RenameProject(ctx context.Context, id string, name string) (*domain.Project, error) {
	name, err := m.projectValidator.GetValidProjectName(name)
	if err != nil {
		return nil, errors.NewValidationError("invalid project name", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var renamed *domain.Project
	err = m.mutate(ctx, "rename project", func(b *domain.Board) (bool, error) {
		p, ok := b.FindProject(id)
		if !ok {
			return false, errors.NewNotFoundError("project", id)
		}
		p.Name = name
		renamed = p
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return renamed.Clone(), nil
}

// ToggleProjectExpanded flips whether a project's items are shown
func (m *BoardManager) ToggleProjectExpanded(ctx context.Context, id string) (*domain.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var toggled *domain.Project
	err := m.mutate(ctx, "toggle project", func(b *domain.Board) (bool, error) {
		p, ok := b.FindProject(id)
		if !ok {
			return false, errors.NewNotFoundError("project", id)
		}
		p.Expanded = !p.Expanded
		toggled = p
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return toggled.Clone(), nil
}

// DeleteProject removes a project and permanently discards its tasks
func (m *BoardManager) DeleteProject(ctx context.Context, id string) (*DeleteProjectResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := &DeleteProjectResult{}
	err := m.mutate(ctx, "delete project", func(b *domain.Board) (bool, error) {
		i := b.ProjectIndex(id)
		if i < 0 {
			return false, errors.NewNotFoundError("project", id)
		}
		result.Project = b.Projects[i]
		result.Discarded = len(b.Projects[i].Items)
		b.Projects = append(b.Projects[:i], b.Projects[i+1:]...)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	m.logger.Info("project deleted", "project", result.Project.Name, "discarded", result.Discarded)
	return result, nil
}

// DeleteProjectTask removes one task from a project
func (m *BoardManager) DeleteProjectTask(ctx context.Context, projectID string, taskID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.mutate(ctx, "delete project task", func(b *domain.Board) (bool, error) {
		p, ok := b.FindProject(projectID)
		if !ok {
			return false, errors.NewNotFoundError("project", projectID)
		}
		i := p.TaskIndex(taskID)
		if i < 0 {
			return false, errors.NewNotFoundError("task", taskID)
		}
		p.Items = append(p.Items[:i], p.Items[i+1:]...)
		return true, nil
	})
}

// Drop applies a drag payload to a target. Undecodable payloads and
// unresolvable moves are silent no-ops that write nothing.
func (m *BoardManager) Drop(ctx context.Context, payload string, target transfer.Target) (*DropResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := transfer.Decode(payload)
	if !ok {
		logging.Debugf("ignoring undecodable drop payload %q\n", payload)
		return &DropResult{Outcome: transfer.Outcome{Effect: transfer.EffectNone, Reason: "payload not recognised"}, Board: m.board.Clone(), Ignored: true}, nil
	}

	var outcome transfer.Outcome
	err := m.mutate(ctx, "drop", func(b *domain.Board) (bool, error) {
		outcome = m.resolver.Apply(b, d, target)
		return outcome.Changed, nil
	})
	if err != nil {
		return nil, err
	}
	if !outcome.Changed {
		logging.Debugf("drop ignored: %s\n", outcome.Reason)
	}
	return &DropResult{Outcome: outcome, Board: m.board.Clone()}, nil
}

// PreviewDrop computes the board a drop would produce without changing anything
func (m *BoardManager) PreviewDrop(payload string, target transfer.Target) *DropResult {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := transfer.Decode(payload)
	if !ok {
		return &DropResult{Outcome: transfer.Outcome{Effect: transfer.EffectNone, Reason: "payload not recognised"}, Board: m.board.Clone(), Ignored: true}
	}
	projected, outcome := m.resolver.Preview(m.board, d, target)
	return &DropResult{Outcome: outcome, Board: projected}
}

// Decompose asks the breakdown endpoint for steps and appends each as a
// standalone task. Any endpoint failure adds a single apology task instead.
func (m *BoardManager) Decompose(ctx context.Context, bigTask string) (*DecomposeResult, error) {
	bigTask, err := m.taskValidator.GetValidTaskText(bigTask)
	if err != nil {
		return nil, errors.NewValidationError("invalid task text", err)
	}

	result := &DecomposeResult{Added: []*domain.Task{}}
	var texts []string

	reply, err := m.decomposer.Decompose(ctx, bigTask)
	if err != nil {
		m.logger.Warn("task breakdown failed", "error", err)
		result.Failed = true
		texts = []string{FailureTaskText}
	} else {
		result.Clarification = reply.Clarification
		for _, step := range reply.Steps {
			if text := m.taskValidator.Clean(step); text != "" {
				texts = append(texts, text)
			}
		}
	}

	if len(texts) == 0 {
		return result, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, text := range texts {
		result.Added = append(result.Added, domain.NewTask(text))
	}
	err = m.mutate(ctx, "decompose", func(b *domain.Board) (bool, error) {
		for _, t := range result.Added {
			b.Items = append(b.Items, t.Clone())
		}
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
