package cli

import (
	"context"
	"flag"
	"fmt"
	"text/tabwriter"

	"taskpad/internal/model"
	"taskpad/internal/service"
)

func (a *App) runProject(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usagef("project needs a subcommand: add, list, edit, rm")
	}
	switch sub, rest := args[0], args[1:]; sub {
	case "add":
		return a.addProject(ctx, rest)
	case "list":
		return a.listProjects(ctx, rest)
	case "edit":
		return a.editProject(ctx, rest)
	case "rm":
		return a.removeProject(ctx, rest)
	default:
		return usagef("unknown project subcommand %q", sub)
	}
}

func projectFlags(fs *flag.FlagSet, input *service.ProjectInput) {
	fs.StringVar(&input.Name, "name", "", "project name (required)")
	fs.StringVar(&input.Description, "desc", "", "description")
	fs.StringVar(&input.DueDate, "due", "", "due date, YYYY-MM-DD")
	fs.StringVar(&input.Status, "status", "", "free-text status, defaults to active")
}

func (a *App) addProject(ctx context.Context, args []string) error {
	fs := newFlagSet("project add")
	var input service.ProjectInput
	projectFlags(fs, &input)
	if err := fs.Parse(args); err != nil {
		return usagef("%v", err)
	}

	project, err := a.Projects.CreateProject(ctx, input)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.Out, "created project %d\n", project.ID)
	return nil
}

func (a *App) listProjects(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return usagef("project list takes no arguments")
	}
	projects, err := a.Projects.ListProjects(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(a.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSTATUS\tPROGRESS\tDUE\tCREATED")
	for _, p := range projects {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d/%d\t%s\t%s\n",
			p.ID, p.Name, p.Status, p.CompletedTasks, p.TotalTasks,
			formatDate(p.DueDate), p.CreatedAt.Format(model.DueDateLayout))
	}
	return w.Flush()
}

func (a *App) editProject(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usagef("project edit needs a project id")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	fs := newFlagSet("project edit")
	var input service.ProjectInput
	projectFlags(fs, &input)
	if err := fs.Parse(args[1:]); err != nil {
		return usagef("%v", err)
	}

	if _, err := a.Projects.UpdateProject(ctx, id, input); err != nil {
		return err
	}
	fmt.Fprintf(a.Out, "updated project %d\n", id)
	return nil
}

func (a *App) removeProject(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usagef("project rm needs a project id")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if err := a.Projects.DeleteProject(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.Out, "deleted project %d (its tasks are now unassigned)\n", id)
	return nil
}
