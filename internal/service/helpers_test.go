package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"taskpad/internal/model"
	"taskpad/internal/repository"
)

func nowFixture() time.Time {
	return time.Date(2026, 8, 27, 10, 0, 0, 0, time.UTC)
}

// newTestStore opens a throwaway SQLite store and wires the full service
// stack on top of it.
func newTestStore(t *testing.T) (*TaskService, *ProjectService, *SnapshotService, *ReportService) {
	t.Helper()

	db, err := repository.NewDB(filepath.Join(t.TempDir(), "taskpad.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	taskRepo := repository.NewTaskRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	tasks := NewTaskService(taskRepo)
	projects := NewProjectService(projectRepo)
	return tasks, projects, NewSnapshotService(tasks, projects), NewReportService(taskRepo, projectRepo)
}

func mustCreateTask(t *testing.T, svc *TaskService, input TaskInput) *model.Task {
	t.Helper()

	task, err := svc.CreateTask(context.Background(), input)
	if err != nil {
		t.Fatalf("create task %q: %v", input.Title, err)
	}
	return task
}

func mustCreateProject(t *testing.T, svc *ProjectService, input ProjectInput) *model.Project {
	t.Helper()

	project, err := svc.CreateProject(context.Background(), input)
	if err != nil {
		t.Fatalf("create project %q: %v", input.Name, err)
	}
	return project
}

func taskIDs(tasks []model.TaskWithProject) []uint {
	ids := make([]uint, 0, len(tasks))
	for _, task := range tasks {
		ids = append(ids, task.ID)
	}
	return ids
}
