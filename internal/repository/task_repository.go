package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"taskpad/internal/model"
)

// TaskFilter narrows List results. Zero values mean "no constraint"; both
// constraints combine with logical AND.
type TaskFilter struct {
	Status    string
	ProjectID *uint
}

// TaskRepository handles CRUD for tasks.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

// List returns tasks newest-first, each annotated with its resolved project
// name. A dangling or absent project reference yields an empty name.
func (r *TaskRepository) List(ctx context.Context, filter TaskFilter) ([]model.TaskWithProject, error) {
	q := r.db.WithContext(ctx).Model(&model.Task{}).
		Select("tasks.*, projects.name AS project_name").
		Joins("LEFT JOIN projects ON projects.id = tasks.project_id")
	if filter.Status != "" {
		q = q.Where("tasks.status = ?", filter.Status)
	}
	if filter.ProjectID != nil {
		q = q.Where("tasks.project_id = ?", *filter.ProjectID)
	}

	var tasks []model.TaskWithProject
	if err := q.Order("tasks.created_at DESC, tasks.id DESC").Scan(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id uint) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepository) Save(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Save(task).Error; err != nil {
		return fmt.Errorf("save task: %w", err)
	}
	return nil
}

// Delete reports whether a row was actually removed.
func (r *TaskRepository) Delete(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&model.Task{}, id)
	if res.Error != nil {
		return false, fmt.Errorf("delete task: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *TaskRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	return r.groupCount(ctx, "status", false)
}

// CountByCategory skips tasks without a category.
func (r *TaskRepository) CountByCategory(ctx context.Context) (map[string]int64, error) {
	return r.groupCount(ctx, "category", true)
}

func (r *TaskRepository) CountByPriority(ctx context.Context) (map[string]int64, error) {
	return r.groupCount(ctx, "priority", false)
}

type groupCount struct {
	Key string
	N   int64
}

// groupCount aggregates the full task table by one column. The column name is
// an internal constant, never caller input.
func (r *TaskRepository) groupCount(ctx context.Context, column string, skipEmpty bool) (map[string]int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Task{}).
		Select(fmt.Sprintf("%s AS key, COUNT(*) AS n", column)).
		Group(column)
	if skipEmpty {
		q = q.Where(fmt.Sprintf("%s <> ''", column))
	}

	var rows []groupCount
	if err := q.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("count tasks by %s: %w", column, err)
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Key] = row.N
	}
	return counts, nil
}
