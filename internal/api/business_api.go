package api

import (
	"context"
	"fmt"
	"io"
	"strings"

	"todo-list/internal/config"
	"todo-list/internal/domain"
	"todo-list/internal/errors"
	"todo-list/internal/export"
	"todo-list/internal/services"
	"todo-list/internal/validation"
)

// businessAPIImpl implements BusinessAPI on top of a BoardService
type businessAPIImpl struct {
	board            services.BoardService
	taskValidator    *validation.TaskValidator
	projectValidator *validation.ProjectValidator
	pdf              *export.Writer
}

// NewBusinessAPI creates a BusinessAPI with default limits
func NewBusinessAPI(board services.BoardService) BusinessAPI {
	return &businessAPIImpl{
		board:            board,
		taskValidator:    validation.NewTaskValidator(),
		projectValidator: validation.NewProjectValidator(),
		pdf:              export.NewWriter(12),
	}
}

// NewBusinessAPIWithConfig creates a BusinessAPI using configured limits and export settings
func NewBusinessAPIWithConfig(board services.BoardService, cfg *config.Config) BusinessAPI {
	return &businessAPIImpl{
		board:            board,
		taskValidator:    validation.NewTaskValidatorWithConfig(cfg),
		projectValidator: validation.NewProjectValidatorWithConfig(cfg),
		pdf:              export.NewWriter(cfg.Export.FontSize),
	}
}

// ========== Queries ==========

func (b *businessAPIImpl) GetBoard(ctx context.Context) (*BoardView, error) {
	board := b.board.Board()
	return &BoardView{Board: board, Stats: StatsFor(board)}, nil
}

// StatsFor summarises a board
func StatsFor(board *domain.Board) BoardStats {
	stats := BoardStats{Standalone: len(board.Items), Projects: len(board.Projects)}
	count := func(t *domain.Task) {
		stats.Tasks++
		if t.Done {
			stats.Done++
		}
	}
	for _, t := range board.Items {
		count(t)
	}
	for _, p := range board.Projects {
		for _, t := range p.Items {
			count(t)
		}
	}
	return stats
}

func (b *businessAPIImpl) ResolveTaskID(ctx context.Context, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", errors.NewValidationError("task id is required", nil)
	}
	return resolveRef("task", ref, b.board.Board().TaskIDs())
}

func (b *businessAPIImpl) ResolveProjectID(ctx context.Context, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", errors.NewValidationError("project id is required", nil)
	}

	board := b.board.Board()
	ids := make([]string, len(board.Projects))
	for i, p := range board.Projects {
		ids[i] = p.ID
	}
	id, err := resolveRef("project", ref, ids)
	if err == nil || !errors.IsErrorType(err, errors.ErrorTypeNotFound) {
		return id, err
	}

	if p, ok := board.ProjectByName(ref); ok {
		return p.ID, nil
	}
	return "", err
}

// resolveRef matches ref against ids exactly, then as a unique prefix
func resolveRef(resource, ref string, ids []string) (string, error) {
	var matches []string
	for _, id := range ids {
		if id == ref {
			return id, nil
		}
		if strings.HasPrefix(id, ref) {
			matches = append(matches, id)
		}
	}

	switch len(matches) {
	case 0:
		return "", errors.NewNotFoundError(resource, ref)
	case 1:
		return matches[0], nil
	default:
		return "", errors.NewInvalidInputError(resource+" id", ref,
			fmt.Sprintf("prefix matches %d %ss", len(matches), resource))
	}
}

// ========== Tasks ==========

func (b *businessAPIImpl) AddTask(ctx context.Context, text string) (*domain.Task, error) {
	cleaned, err := b.taskValidator.GetValidTaskText(text)
	if err != nil {
		return nil, errors.NewValidationError("invalid task text", err)
	}
	return b.board.AddTask(ctx, cleaned)
}

func (b *businessAPIImpl) RemoveTask(ctx context.Context, id string) error {
	if err := b.taskValidator.ValidateTaskID(id); err != nil {
		return errors.NewValidationError("invalid task id", err)
	}
	return b.board.RemoveTask(ctx, id)
}

func (b *businessAPIImpl) ToggleTask(ctx context.Context, id string) (*services.ToggleResult, error) {
	if err := b.taskValidator.ValidateTaskID(id); err != nil {
		return nil, errors.NewValidationError("invalid task id", err)
	}
	return b.board.ToggleTask(ctx, id)
}

// ========== Projects ==========

func (b *businessAPIImpl) CreateProject(ctx context.Context, name string) (*domain.Project, error) {
	cleaned, err := b.projectValidator.GetValidProjectName(name)
	if err != nil {
		return nil, errors.NewValidationError("invalid project name", err)
	}
	return b.board.CreateProject(ctx, cleaned)
}

func (b *businessAPIImpl) RenameProject(ctx context.Context, id string, name string) (*domain.Project, error) {
	validationErr := validation.NewValidationError()
	validationErr.Merge(b.projectValidator.ValidateProjectID(id))
	validationErr.Merge(b.projectValidator.ValidateProjectName(name))
	if validationErr.HasErrors() {
		return nil, errors.NewValidationError("invalid project rename", validationErr)
	}

	cleaned, _ := b.projectValidator.GetValidProjectName(name)
	return b.board.RenameProject(ctx, id, cleaned)
}

func (b *businessAPIImpl) ToggleProject(ctx context.Context, id string) (*domain.Project, error) {
	if err := b.projectValidator.ValidateProjectID(id); err != nil {
		return nil, errors.NewValidationError("invalid project id", err)
	}
	return b.board.ToggleProjectExpanded(ctx, id)
}

func (b *businessAPIImpl) DeleteProject(ctx context.Context, id string) (*services.DeleteProjectResult, error) {
	if err := b.projectValidator.ValidateProjectID(id); err != nil {
		return nil, errors.NewValidationError("invalid project id", err)
	}
	return b.board.DeleteProject(ctx, id)
}

func (b *businessAPIImpl) DeleteProjectTask(ctx context.Context, projectID string, taskID string) error {
	validationErr := validation.NewValidationError()
	validationErr.Merge(b.projectValidator.ValidateProjectID(projectID))
	validationErr.Merge(b.taskValidator.ValidateTaskID(taskID))
	if validationErr.HasErrors() {
		return errors.NewValidationError("invalid project task", validationErr)
	}
	return b.board.DeleteProjectTask(ctx, projectID, taskID)
}

// ========== Drag and drop ==========

func (b *businessAPIImpl) Drop(ctx context.Context, req DropRequest) (*services.DropResult, error) {
	if err := req.Target.Validate(); err != nil {
		return nil, err
	}
	if req.DryRun {
		return b.board.PreviewDrop(req.Payload, req.Target), nil
	}
	return b.board.Drop(ctx, req.Payload, req.Target)
}

// ========== Collaborators ==========

func (b *businessAPIImpl) Decompose(ctx context.Context, bigTask string) (*services.DecomposeResult, error) {
	cleaned, err := b.taskValidator.GetValidTaskText(bigTask)
	if err != nil {
		return nil, errors.NewValidationError("invalid task text", err)
	}
	return b.board.Decompose(ctx, cleaned)
}

func (b *businessAPIImpl) ExportPDF(ctx context.Context, req ExportRequest, w io.Writer) (*export.Document, error) {
	projectID := strings.TrimSpace(req.ProjectID)
	if projectID != "" {
		if err := b.projectValidator.ValidateProjectID(projectID); err != nil {
			return nil, errors.NewValidationError("invalid project id", err)
		}
	}

	doc, err := export.Rows(b.board.Board(), projectID)
	if err != nil {
		return nil, err
	}
	doc.BigTask = strings.TrimSpace(req.BigTask)

	if err := b.pdf.Write(w, doc); err != nil {
		return nil, err
	}
	return &doc, nil
}
