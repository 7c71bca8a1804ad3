package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"taskpad/internal/model"
	"taskpad/internal/repository"
)

// TaskInput carries the caller-editable task fields.
type TaskInput struct {
	Title       string
	Description string
	Category    string
	ProjectID   *uint
	DueDate     string // YYYY-MM-DD, empty for none
	Priority    string // empty defaults to medium
}

// TaskService wraps task-related business logic.
type TaskService struct {
	tasks *repository.TaskRepository
}

func NewTaskService(tasks *repository.TaskRepository) *TaskService {
	return &TaskService{tasks: tasks}
}

// CreateTask validates input and persists a new task. New tasks start in todo
// with completed_at unset. The project reference is stored as given: there is
// no existence check, readers tolerate a dangling reference.
func (s *TaskService) CreateTask(ctx context.Context, input TaskInput) (*model.Task, error) {
	task, err := buildTask(input)
	if err != nil {
		return nil, err
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// ListTasks returns tasks matching the optional filters, newest first.
func (s *TaskService) ListTasks(ctx context.Context, filter repository.TaskFilter) ([]model.TaskWithProject, error) {
	if filter.Status != "" && !model.ValidStatus(filter.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrTaskInvalid, filter.Status)
	}
	return s.tasks.List(ctx, filter)
}

// UpdateStatus moves a task to the given status. completed_at is set to now
// when the task enters completed and cleared on any other transition. A
// nonexistent id is rejected with ErrTaskNotFound, not ignored.
func (s *TaskService) UpdateStatus(ctx context.Context, id uint, status string, now time.Time) (*model.Task, error) {
	if !model.ValidStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrTaskInvalid, status)
	}

	task, err := s.findTask(ctx, id)
	if err != nil {
		return nil, err
	}

	task.Status = status
	if status == model.StatusCompleted {
		task.CompletedAt = &now
	} else {
		task.CompletedAt = nil
	}

	if err := s.tasks.Save(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// UpdateTask replaces the editable fields of an existing task. Status is not
// part of the edit surface; use UpdateStatus for transitions.
func (s *TaskService) UpdateTask(ctx context.Context, id uint, input TaskInput) (*model.Task, error) {
	task, err := s.findTask(ctx, id)
	if err != nil {
		return nil, err
	}

	edited, err := buildTask(input)
	if err != nil {
		return nil, err
	}

	task.Title = edited.Title
	task.Description = edited.Description
	task.Category = edited.Category
	task.ProjectID = edited.ProjectID
	task.Priority = edited.Priority
	task.DueDate = edited.DueDate

	if err := s.tasks.Save(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// DeleteTask removes a task. Project aggregates are derived at read time, so
// no further bookkeeping happens here.
func (s *TaskService) DeleteTask(ctx context.Context, id uint) error {
	removed, err := s.tasks.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return ErrTaskNotFound
	}
	return nil
}

// Statistics holds per-dimension task counts, recomputed on every call.
// Category excludes tasks without a category.
type Statistics struct {
	Status   map[string]int64
	Category map[string]int64
	Priority map[string]int64
}

func (s *TaskService) Statistics(ctx context.Context) (*Statistics, error) {
	byStatus, err := s.tasks.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	byCategory, err := s.tasks.CountByCategory(ctx)
	if err != nil {
		return nil, err
	}
	byPriority, err := s.tasks.CountByPriority(ctx)
	if err != nil {
		return nil, err
	}
	return &Statistics{Status: byStatus, Category: byCategory, Priority: byPriority}, nil
}

func (s *TaskService) findTask(ctx context.Context, id uint) (*model.Task, error) {
	task, err := s.tasks.FindByID(ctx, id)
	switch {
	case err == nil:
		return task, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, ErrTaskNotFound
	default:
		return nil, fmt.Errorf("find task: %w", err)
	}
}

func buildTask(input TaskInput) (*model.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrTaskInvalid)
	}

	priority := input.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	if !model.ValidPriority(priority) {
		return nil, fmt.Errorf("%w: unknown priority %q", ErrTaskInvalid, priority)
	}

	dueDate, err := parseDueDate(input.DueDate, ErrTaskInvalid)
	if err != nil {
		return nil, err
	}

	return &model.Task{
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Category:    strings.TrimSpace(input.Category),
		ProjectID:   input.ProjectID,
		Status:      model.StatusTodo,
		Priority:    priority,
		DueDate:     dueDate,
	}, nil
}

func parseDueDate(raw string, invalid error) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	due, err := time.Parse(model.DueDateLayout, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: due date %q is not YYYY-MM-DD", invalid, raw)
	}
	return &due, nil
}
