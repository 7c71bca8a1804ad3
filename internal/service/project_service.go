package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"taskpad/internal/model"
	"taskpad/internal/repository"
)

// ProjectInput carries the caller-editable project fields.
type ProjectInput struct {
	Name        string
	Description string
	DueDate     string // YYYY-MM-DD, empty for none
	Status      string // free text; empty defaults to active on create
}

// ProjectService wraps project-related business logic.
type ProjectService struct {
	projects *repository.ProjectRepository
}

func NewProjectService(projects *repository.ProjectRepository) *ProjectService {
	return &ProjectService{projects: projects}
}

func (s *ProjectService) CreateProject(ctx context.Context, input ProjectInput) (*model.Project, error) {
	project, err := buildProject(input)
	if err != nil {
		return nil, err
	}
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) ListProjects(ctx context.Context) ([]model.ProjectWithProgress, error) {
	return s.projects.List(ctx)
}

// FindByName resolves a project by its (non-unique) name; the oldest match
// wins. Returns ErrProjectNotFound when nothing matches.
func (s *ProjectService) FindByName(ctx context.Context, name string) (*model.Project, error) {
	project, err := s.projects.FindByName(ctx, name)
	switch {
	case err == nil:
		return project, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, ErrProjectNotFound
	default:
		return nil, fmt.Errorf("find project: %w", err)
	}
}

// UpdateProject replaces the editable fields of an existing project.
func (s *ProjectService) UpdateProject(ctx context.Context, id uint, input ProjectInput) (*model.Project, error) {
	project, err := s.findProject(ctx, id)
	if err != nil {
		return nil, err
	}

	edited, err := buildProject(input)
	if err != nil {
		return nil, err
	}

	project.Name = edited.Name
	project.Description = edited.Description
	project.Status = edited.Status
	project.DueDate = edited.DueDate

	if err := s.projects.Save(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// DeleteProject removes the project row only. Its tasks are kept and read
// back as unassigned from then on.
func (s *ProjectService) DeleteProject(ctx context.Context, id uint) error {
	removed, err := s.projects.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return ErrProjectNotFound
	}
	return nil
}

func (s *ProjectService) findProject(ctx context.Context, id uint) (*model.Project, error) {
	project, err := s.projects.FindByID(ctx, id)
	switch {
	case err == nil:
		return project, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, ErrProjectNotFound
	default:
		return nil, fmt.Errorf("find project: %w", err)
	}
}

func buildProject(input ProjectInput) (*model.Project, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrProjectInvalid)
	}

	status := strings.TrimSpace(input.Status)
	if status == "" {
		status = model.ProjectStatusActive
	}

	dueDate, err := parseDueDate(input.DueDate, ErrProjectInvalid)
	if err != nil {
		return nil, err
	}

	return &model.Project{
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		Status:      status,
		DueDate:     dueDate,
	}, nil
}
