package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"taskpad/internal/model"
	"taskpad/internal/repository"
	"taskpad/internal/service"
)

func taskFlags(fs *flag.FlagSet, input *service.TaskInput, projectID *uint64) {
	fs.StringVar(&input.Title, "title", "", "task title (required)")
	fs.StringVar(&input.Description, "desc", "", "description")
	fs.StringVar(&input.Category, "category", "", "free-text category")
	fs.Uint64Var(projectID, "project", 0, "project id, 0 for unassigned")
	fs.StringVar(&input.DueDate, "due", "", "due date, YYYY-MM-DD")
	fs.StringVar(&input.Priority, "priority", "", "low | medium | high")
}

func (a *App) addTask(ctx context.Context, args []string) error {
	fs := newFlagSet("add")
	var input service.TaskInput
	var projectID uint64
	taskFlags(fs, &input, &projectID)
	if err := fs.Parse(args); err != nil {
		return usagef("%v", err)
	}
	if projectID > 0 {
		id := uint(projectID)
		input.ProjectID = &id
	}

	task, err := a.Tasks.CreateTask(ctx, input)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.Out, "created task %d\n", task.ID)
	return nil
}

func (a *App) listTasks(ctx context.Context, args []string) error {
	fs := newFlagSet("list")
	status := fs.String("status", service.StatusAll, "todo | in_progress | completed | all")
	search := fs.String("search", "", "case-insensitive text filter")
	project := fs.Uint64("project", 0, "restrict to one project id")
	if err := fs.Parse(args); err != nil {
		return usagef("%v", err)
	}

	var tasks []model.TaskWithProject
	var err error
	if *project > 0 {
		// The project view mirrors the tracker's "view tasks of a project"
		// action, which resets the search box.
		if *search != "" {
			return usagef("-search cannot be combined with -project")
		}
		id := uint(*project)
		filter := repository.TaskFilter{ProjectID: &id}
		if *status != "" && *status != service.StatusAll {
			filter.Status = *status
		}
		tasks, err = a.Tasks.ListTasks(ctx, filter)
	} else {
		tasks, err = a.Tasks.VisibleTasks(ctx, *status, *search)
	}
	if err != nil {
		return err
	}
	return printTasks(a.Out, tasks)
}

func (a *App) editTask(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usagef("edit needs a task id")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	fs := newFlagSet("edit")
	var input service.TaskInput
	var projectID uint64
	taskFlags(fs, &input, &projectID)
	if err := fs.Parse(args[1:]); err != nil {
		return usagef("%v", err)
	}
	if projectID > 0 {
		pid := uint(projectID)
		input.ProjectID = &pid
	}

	if _, err := a.Tasks.UpdateTask(ctx, id, input); err != nil {
		return err
	}
	fmt.Fprintf(a.Out, "updated task %d\n", id)
	return nil
}

func (a *App) moveTask(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usagef("status needs a task id and a status")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if _, err := a.Tasks.UpdateStatus(ctx, id, args[1], time.Now()); err != nil {
		return err
	}
	fmt.Fprintf(a.Out, "task %d is now %s\n", id, args[1])
	return nil
}

func (a *App) completeTask(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usagef("done needs a task id")
	}
	return a.moveTask(ctx, []string{args[0], model.StatusCompleted})
}

func (a *App) removeTask(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usagef("rm needs a task id")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if err := a.Tasks.DeleteTask(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.Out, "deleted task %d\n", id)
	return nil
}

func printTasks(out io.Writer, tasks []model.TaskWithProject) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tCATEGORY\tPROJECT\tPRIORITY\tSTATUS\tDUE\tCREATED")
	for _, t := range tasks {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			t.ID, t.Title, t.Category, t.ProjectName, t.Priority, t.Status,
			formatDate(t.DueDate), t.CreatedAt.Format(model.DueDateLayout))
	}
	return w.Flush()
}

func formatDate(d *time.Time) string {
	if d == nil {
		return ""
	}
	return d.Format(model.DueDateLayout)
}
