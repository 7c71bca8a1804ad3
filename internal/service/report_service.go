package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"taskpad/internal/model"
	"taskpad/internal/repository"
)

// ReportService builds human-readable summaries of the current workload.
type ReportService struct {
	tasks    *repository.TaskRepository
	projects *repository.ProjectRepository
}

func NewReportService(tasks *repository.TaskRepository, projects *repository.ProjectRepository) *ReportService {
	return &ReportService{tasks: tasks, projects: projects}
}

// Overview renders open tasks (due-date first, then newest created) with
// overdue and due-soon markers, followed by per-project progress.
func (s *ReportService) Overview(ctx context.Context, now time.Time) (string, error) {
	tasks, err := s.tasks.List(ctx, repository.TaskFilter{})
	if err != nil {
		return "", err
	}

	var open []model.TaskWithProject
	for _, task := range tasks {
		if task.Status != model.StatusCompleted {
			open = append(open, task)
		}
	}

	sort.SliceStable(open, func(i, j int) bool {
		switch {
		case open[i].DueDate == nil && open[j].DueDate == nil:
			return open[i].CreatedAt.After(open[j].CreatedAt)
		case open[i].DueDate == nil:
			return false
		case open[j].DueDate == nil:
			return true
		default:
			return open[i].DueDate.Before(*open[j].DueDate)
		}
	})

	var builder strings.Builder
	builder.WriteString("Workload overview\n")
	builder.WriteString(fmt.Sprintf("Date: %s\n\n", now.Format(model.DueDateLayout)))

	builder.WriteString("Open tasks\n")
	if len(open) == 0 {
		builder.WriteString("- none\n")
	} else {
		for _, task := range open {
			builder.WriteString(formatTaskLine(task, now))
		}
	}

	projects, err := s.projects.List(ctx)
	if err != nil {
		return "", err
	}
	builder.WriteString("\nProject progress\n")
	if len(projects) == 0 {
		builder.WriteString("- none\n")
	} else {
		for _, project := range projects {
			builder.WriteString(fmt.Sprintf("- %s: %d/%d\n",
				project.Name, project.CompletedTasks, project.TotalTasks))
		}
	}

	return strings.TrimSpace(builder.String()), nil
}

func formatTaskLine(task model.TaskWithProject, now time.Time) string {
	var sb strings.Builder

	marker := "-"
	if task.DueDate != nil {
		switch {
		case now.After(*task.DueDate):
			marker = "!"
		case task.DueDate.Sub(now) <= 48*time.Hour:
			marker = "~"
		}
	}

	sb.WriteString(fmt.Sprintf("%s %s [%s/%s]", marker, task.Title, task.Status, task.Priority))
	if task.ProjectName != "" {
		sb.WriteString(fmt.Sprintf(" (%s)", task.ProjectName))
	}
	if task.DueDate != nil {
		sb.WriteString(fmt.Sprintf(" due %s", task.DueDate.Format(model.DueDateLayout)))
	}
	sb.WriteByte('\n')
	return sb.String()
}
