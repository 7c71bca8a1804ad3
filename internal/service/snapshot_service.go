package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"taskpad/internal/model"
	"taskpad/internal/repository"
)

// Snapshot is the on-disk export document. Unknown fields in an imported
// document are ignored; only tasks and projects are consumed on import.
type Snapshot struct {
	Tasks      []model.TaskWithProject     `json:"tasks"`
	Projects   []model.ProjectWithProgress `json:"projects"`
	ExportedAt time.Time                   `json:"exported_at"`
}

// ImportResult reports how many records an import added.
type ImportResult struct {
	Projects int
	Tasks    int
}

// SnapshotService exports and imports the full store as indented JSON.
type SnapshotService struct {
	tasks    *TaskService
	projects *ProjectService
}

func NewSnapshotService(tasks *TaskService, projects *ProjectService) *SnapshotService {
	return &SnapshotService{tasks: tasks, projects: projects}
}

// Export writes the full task and project lists plus an export timestamp to
// path. Task records carry the resolved project name so a later import can
// re-link by name; project records carry their derived counts.
func (s *SnapshotService) Export(ctx context.Context, path string, now time.Time) error {
	tasks, err := s.tasks.ListTasks(ctx, repository.TaskFilter{})
	if err != nil {
		return err
	}
	projects, err := s.projects.ListProjects(ctx)
	if err != nil {
		return err
	}

	doc := Snapshot{Tasks: tasks, Projects: projects, ExportedAt: now}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// Import re-inserts every project and task found in the document. The merge
// is additive: records get fresh identifiers, imported tasks start in todo,
// and project linkage is resolved by name — first against projects created by
// this import, then against the existing store. An unresolved name leaves the
// task unassigned. Rows inserted before a failure are kept; there is no
// rollback.
func (s *SnapshotService) Import(ctx context.Context, path string) (ImportResult, error) {
	var result ImportResult

	data, err := os.ReadFile(path)
	if err != nil {
		return result, fmt.Errorf("read snapshot: %w", err)
	}
	var doc Snapshot
	if err := json.Unmarshal(data, &doc); err != nil {
		return result, fmt.Errorf("decode snapshot: %w", err)
	}

	byName := make(map[string]uint, len(doc.Projects))
	for _, rec := range doc.Projects {
		project, err := s.projects.CreateProject(ctx, ProjectInput{
			Name:        rec.Name,
			Description: rec.Description,
			DueDate:     formatDueDate(rec.DueDate),
			Status:      rec.Status,
		})
		if err != nil {
			return result, fmt.Errorf("import project %q: %w", rec.Name, err)
		}
		if _, seen := byName[project.Name]; !seen {
			byName[project.Name] = project.ID
		}
		result.Projects++
	}

	for _, rec := range doc.Tasks {
		projectID, err := s.resolveProject(ctx, byName, rec.ProjectName)
		if err != nil {
			return result, err
		}
		_, err = s.tasks.CreateTask(ctx, TaskInput{
			Title:       rec.Title,
			Description: rec.Description,
			Category:    rec.Category,
			ProjectID:   projectID,
			DueDate:     formatDueDate(rec.DueDate),
			Priority:    rec.Priority,
		})
		if err != nil {
			return result, fmt.Errorf("import task %q: %w", rec.Title, err)
		}
		result.Tasks++
	}

	return result, nil
}

func (s *SnapshotService) resolveProject(ctx context.Context, byName map[string]uint, name string) (*uint, error) {
	if name == "" {
		return nil, nil
	}
	if id, ok := byName[name]; ok {
		return &id, nil
	}
	project, err := s.projects.FindByName(ctx, name)
	switch {
	case err == nil:
		return &project.ID, nil
	case errors.Is(err, ErrProjectNotFound):
		return nil, nil
	default:
		return nil, err
	}
}

func formatDueDate(due *time.Time) string {
	if due == nil {
		return ""
	}
	return due.Format(model.DueDateLayout)
}
