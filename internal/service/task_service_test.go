package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"taskpad/internal/model"
	"taskpad/internal/repository"
)

func TestCreateTaskDefaults(t *testing.T) {
	t.Parallel()

	tasks, _, _, _ := newTestStore(t)
	ctx := context.Background()

	created := mustCreateTask(t, tasks, TaskInput{
		Title:       "  write report  ",
		Description: "quarterly numbers",
		Category:    "work",
	})
	if created.ID == 0 {
		t.Fatal("expected an assigned id")
	}

	listed, err := tasks.ListTasks(ctx, repository.TaskFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("expected exactly 1 task, got %d", len(listed))
	}

	got := listed[0]
	if got.Title != "write report" {
		t.Errorf("title = %q, want %q", got.Title, "write report")
	}
	if got.Description != "quarterly numbers" || got.Category != "work" {
		t.Errorf("unexpected description/category: %q / %q", got.Description, got.Category)
	}
	if got.Status != model.StatusTodo {
		t.Errorf("status = %q, want %q", got.Status, model.StatusTodo)
	}
	if got.Priority != model.PriorityMedium {
		t.Errorf("priority = %q, want %q", got.Priority, model.PriorityMedium)
	}
	if got.CompletedAt != nil {
		t.Error("completed_at must be unset on creation")
	}
	if got.CreatedAt.IsZero() {
		t.Error("created_at must be set on creation")
	}
}

func TestCreateTaskValidation(t *testing.T) {
	t.Parallel()

	tasks, _, _, _ := newTestStore(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		input TaskInput
	}{
		{"empty title", TaskInput{Title: "   "}},
		{"impossible due date", TaskInput{Title: "x", DueDate: "2026-13-99"}},
		{"wrong due format", TaskInput{Title: "x", DueDate: "27.08.2026"}},
		{"unknown priority", TaskInput{Title: "x", Priority: "urgent"}},
	}
	for _, tc := range cases {
		if _, err := tasks.CreateTask(ctx, tc.input); !errors.Is(err, ErrTaskInvalid) {
			t.Errorf("%s: expected ErrTaskInvalid, got %v", tc.name, err)
		}
	}

	listed, err := tasks.ListTasks(ctx, repository.TaskFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 0 {
		t.Fatalf("rejected input must not persist, found %d tasks", len(listed))
	}
}

func TestUpdateStatusCompletedToggle(t *testing.T) {
	t.Parallel()

	tasks, _, _, _ := newTestStore(t)
	ctx := context.Background()

	created := mustCreateTask(t, tasks, TaskInput{Title: "ship release"})
	now := time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)

	done, err := tasks.UpdateStatus(ctx, created.ID, model.StatusCompleted, now)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if done.CompletedAt == nil || !done.CompletedAt.Equal(now) {
		t.Fatalf("completed_at = %v, want %v", done.CompletedAt, now)
	}

	listed, err := tasks.ListTasks(ctx, repository.TaskFilter{Status: model.StatusCompleted})
	if err != nil {
		t.Fatalf("list completed: %v", err)
	}
	if len(listed) != 1 || listed[0].CompletedAt == nil {
		t.Fatal("completed task must persist with completed_at set")
	}

	reopened, err := tasks.UpdateStatus(ctx, created.ID, model.StatusTodo, now.Add(time.Hour))
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if reopened.CompletedAt != nil {
		t.Fatal("moving away from completed must clear completed_at")
	}

	listed, err = tasks.ListTasks(ctx, repository.TaskFilter{Status: model.StatusTodo})
	if err != nil {
		t.Fatalf("list todo: %v", err)
	}
	if len(listed) != 1 || listed[0].CompletedAt != nil {
		t.Fatal("reopened task must persist with completed_at cleared")
	}
}

func TestUpdateStatusRejections(t *testing.T) {
	t.Parallel()

	tasks, _, _, _ := newTestStore(t)
	ctx := context.Background()
	now := time.Now()

	if _, err := tasks.UpdateStatus(ctx, 42, model.StatusCompleted, now); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("nonexistent id: expected ErrTaskNotFound, got %v", err)
	}

	created := mustCreateTask(t, tasks, TaskInput{Title: "x"})
	if _, err := tasks.UpdateStatus(ctx, created.ID, "paused", now); !errors.Is(err, ErrTaskInvalid) {
		t.Errorf("unknown status: expected ErrTaskInvalid, got %v", err)
	}
}

func TestListTasksStatusFilterAndOrder(t *testing.T) {
	t.Parallel()

	tasks, _, _, _ := newTestStore(t)
	ctx := context.Background()
	now := time.Now()

	first := mustCreateTask(t, tasks, TaskInput{Title: "first"})
	time.Sleep(5 * time.Millisecond)
	second := mustCreateTask(t, tasks, TaskInput{Title: "second"})
	time.Sleep(5 * time.Millisecond)
	third := mustCreateTask(t, tasks, TaskInput{Title: "third"})

	if _, err := tasks.UpdateStatus(ctx, second.ID, model.StatusInProgress, now); err != nil {
		t.Fatalf("move second: %v", err)
	}
	if _, err := tasks.UpdateStatus(ctx, third.ID, model.StatusCompleted, now); err != nil {
		t.Fatalf("move third: %v", err)
	}

	for status, wantID := range map[string]uint{
		model.StatusTodo:       first.ID,
		model.StatusInProgress: second.ID,
		model.StatusCompleted:  third.ID,
	} {
		listed, err := tasks.ListTasks(ctx, repository.TaskFilter{Status: status})
		if err != nil {
			t.Fatalf("list %s: %v", status, err)
		}
		if len(listed) != 1 || listed[0].ID != wantID {
			t.Errorf("list %s = %v, want only task %d", status, taskIDs(listed), wantID)
		}
	}

	all, err := tasks.ListTasks(ctx, repository.TaskFilter{})
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	got := taskIDs(all)
	want := []uint{third.ID, second.ID, first.ID}
	if len(got) != len(want) {
		t.Fatalf("list all = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("list all = %v, want newest first %v", got, want)
		}
	}

	if _, err := tasks.ListTasks(ctx, repository.TaskFilter{Status: "bogus"}); !errors.Is(err, ErrTaskInvalid) {
		t.Errorf("bogus status filter: expected ErrTaskInvalid, got %v", err)
	}
}

func TestListTasksProjectAnnotation(t *testing.T) {
	t.Parallel()

	tasks, projects, _, _ := newTestStore(t)
	ctx := context.Background()

	website := mustCreateProject(t, projects, ProjectInput{Name: "Website"})
	mustCreateTask(t, tasks, TaskInput{Title: "design landing page", ProjectID: &website.ID})

	dangling := uint(999)
	mustCreateTask(t, tasks, TaskInput{Title: "orphaned", ProjectID: &dangling})
	mustCreateTask(t, tasks, TaskInput{Title: "unassigned"})

	all, err := tasks.ListTasks(ctx, repository.TaskFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	names := make(map[string]string, len(all))
	for _, task := range all {
		names[task.Title] = task.ProjectName
	}
	if names["design landing page"] != "Website" {
		t.Errorf("linked task resolved to %q, want Website", names["design landing page"])
	}
	if names["orphaned"] != "" {
		t.Errorf("dangling reference must read as unassigned, got %q", names["orphaned"])
	}
	if names["unassigned"] != "" {
		t.Errorf("unassigned task resolved to %q", names["unassigned"])
	}

	scoped, err := tasks.ListTasks(ctx, repository.TaskFilter{ProjectID: &website.ID})
	if err != nil {
		t.Fatalf("list by project: %v", err)
	}
	if len(scoped) != 1 || scoped[0].Title != "design landing page" {
		t.Errorf("project filter = %v, want only the linked task", taskIDs(scoped))
	}
}

func TestUpdateTaskEdit(t *testing.T) {
	t.Parallel()

	tasks, _, _, _ := newTestStore(t)
	ctx := context.Background()

	created := mustCreateTask(t, tasks, TaskInput{Title: "draft", Category: "writing"})

	edited, err := tasks.UpdateTask(ctx, created.ID, TaskInput{
		Title:    "final draft",
		Priority: model.PriorityHigh,
		DueDate:  "2026-09-01",
	})
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if edited.Title != "final draft" || edited.Priority != model.PriorityHigh {
		t.Errorf("edit not applied: %+v", edited)
	}
	if edited.Category != "" {
		t.Errorf("edit must replace all editable fields, category = %q", edited.Category)
	}
	if edited.DueDate == nil || edited.DueDate.Format(model.DueDateLayout) != "2026-09-01" {
		t.Errorf("due date = %v, want 2026-09-01", edited.DueDate)
	}
	if edited.Status != model.StatusTodo {
		t.Errorf("edit must not touch status, got %q", edited.Status)
	}
	if !edited.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("created_at changed on edit: %v -> %v", created.CreatedAt, edited.CreatedAt)
	}

	if _, err := tasks.UpdateTask(ctx, 42, TaskInput{Title: "x"}); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("edit of nonexistent id: expected ErrTaskNotFound, got %v", err)
	}
	if _, err := tasks.UpdateTask(ctx, created.ID, TaskInput{Title: " "}); !errors.Is(err, ErrTaskInvalid) {
		t.Errorf("edit with empty title: expected ErrTaskInvalid, got %v", err)
	}
}

func TestDeleteTask(t *testing.T) {
	t.Parallel()

	tasks, _, _, _ := newTestStore(t)
	ctx := context.Background()

	created := mustCreateTask(t, tasks, TaskInput{Title: "to be removed"})
	if err := tasks.DeleteTask(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	listed, err := tasks.ListTasks(ctx, repository.TaskFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 0 {
		t.Fatalf("deleted task still listed: %v", taskIDs(listed))
	}

	if err := tasks.DeleteTask(ctx, created.ID); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("second delete: expected ErrTaskNotFound, got %v", err)
	}
}

func TestStatisticsDimensions(t *testing.T) {
	t.Parallel()

	tasks, _, _, _ := newTestStore(t)
	ctx := context.Background()
	now := time.Now()

	mustCreateTask(t, tasks, TaskInput{Title: "a", Category: "work"})
	mustCreateTask(t, tasks, TaskInput{Title: "b", Category: "work", Priority: model.PriorityHigh})
	mustCreateTask(t, tasks, TaskInput{Title: "c", Category: "home"})
	uncategorized := mustCreateTask(t, tasks, TaskInput{Title: "d"})

	if _, err := tasks.UpdateStatus(ctx, uncategorized.ID, model.StatusCompleted, now); err != nil {
		t.Fatalf("complete: %v", err)
	}

	stats, err := tasks.Statistics(ctx)
	if err != nil {
		t.Fatalf("statistics: %v", err)
	}

	if stats.Status[model.StatusTodo] != 3 || stats.Status[model.StatusCompleted] != 1 {
		t.Errorf("status counts = %v", stats.Status)
	}
	if stats.Priority[model.PriorityMedium] != 3 || stats.Priority[model.PriorityHigh] != 1 {
		t.Errorf("priority counts = %v", stats.Priority)
	}

	if _, ok := stats.Category[""]; ok {
		t.Error("category counts must exclude the empty category")
	}
	if stats.Category["work"] != 2 || stats.Category["home"] != 1 {
		t.Errorf("category counts = %v", stats.Category)
	}
	var sum int64
	for _, n := range stats.Category {
		sum += n
	}
	if sum != 3 {
		t.Errorf("category counts sum to %d, want the 3 categorized tasks", sum)
	}
}
