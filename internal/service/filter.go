package service

import (
	"context"
	"strings"

	"taskpad/internal/model"
	"taskpad/internal/repository"
)

// StatusAll selects every status in VisibleTasks.
const StatusAll = "all"

// VisibleTasks computes the task set shown for a status selector and a
// free-text search term. The store narrows by status first; the
// case-insensitive substring match then runs over that candidate set,
// against title, description and category. An empty term keeps every
// candidate.
func (s *TaskService) VisibleTasks(ctx context.Context, statusSelector, searchTerm string) ([]model.TaskWithProject, error) {
	var filter repository.TaskFilter
	if statusSelector != "" && statusSelector != StatusAll {
		filter.Status = statusSelector
	}

	candidates, err := s.ListTasks(ctx, filter)
	if err != nil {
		return nil, err
	}

	term := strings.ToLower(searchTerm)
	if term == "" {
		return candidates, nil
	}

	var visible []model.TaskWithProject
	for _, task := range candidates {
		if matchesTerm(task, term) {
			visible = append(visible, task)
		}
	}
	return visible, nil
}

func matchesTerm(task model.TaskWithProject, term string) bool {
	return strings.Contains(strings.ToLower(task.Title), term) ||
		strings.Contains(strings.ToLower(task.Description), term) ||
		strings.Contains(strings.ToLower(task.Category), term)
}
