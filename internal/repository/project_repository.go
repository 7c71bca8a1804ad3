package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"taskpad/internal/model"
)

// ProjectRepository manages projects and their derived progress counts.
type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(ctx context.Context, project *model.Project) error {
	if err := r.db.WithContext(ctx).Create(project).Error; err != nil {
		return fmt.Errorf("create project: %w", err)
	}
	return nil
}

// List returns projects newest-first, each annotated with total and completed
// task counts computed at read time.
func (r *ProjectRepository) List(ctx context.Context) ([]model.ProjectWithProgress, error) {
	var projects []model.ProjectWithProgress
	err := r.db.WithContext(ctx).Model(&model.Project{}).
		Select("projects.*, COUNT(tasks.id) AS total_tasks, COUNT(CASE WHEN tasks.status = ? THEN 1 END) AS completed_tasks",
			model.StatusCompleted).
		Joins("LEFT JOIN tasks ON tasks.project_id = projects.id").
		Group("projects.id").
		Order("projects.created_at DESC, projects.id DESC").
		Scan(&projects).Error
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

func (r *ProjectRepository) FindByID(ctx context.Context, id uint) (*model.Project, error) {
	var project model.Project
	if err := r.db.WithContext(ctx).First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// FindByName returns the oldest project with the given name. Names are not
// unique; the oldest wins so that re-imports attach to the original.
func (r *ProjectRepository) FindByName(ctx context.Context, name string) (*model.Project, error) {
	var project model.Project
	err := r.db.WithContext(ctx).Where("name = ?", name).Order("id ASC").First(&project).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *ProjectRepository) Save(ctx context.Context, project *model.Project) error {
	if err := r.db.WithContext(ctx).Save(project).Error; err != nil {
		return fmt.Errorf("save project: %w", err)
	}
	return nil
}

// Delete removes only the project row. Tasks keep their project_id; readers
// treat the dangling reference as unassigned.
func (r *ProjectRepository) Delete(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&model.Project{}, id)
	if res.Error != nil {
		return false, fmt.Errorf("delete project: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}
