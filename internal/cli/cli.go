package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"

	"go.uber.org/zap"

	"taskpad/internal/config"
	"taskpad/internal/service"
)

const (
	ExitSuccess           = 0
	ExitFailure           = 1
	ExitInvalidInvocation = 2
)

const usage = `taskpad - local task and project tracker

Tasks:
  add         -title T [-desc D] [-category C] [-project ID] [-due YYYY-MM-DD] [-priority P]
  list        [-status S|all] [-search TERM] [-project ID]
  edit ID     same flags as add
  status ID S move a task to todo | in_progress | completed
  done ID     shorthand for "status ID completed"
  rm ID

Projects:
  project add  -name N [-desc D] [-due YYYY-MM-DD]
  project list
  project edit ID -name N [-desc D] [-due YYYY-MM-DD] [-status S]
  project rm ID

Data:
  stats        task counts by status, category and priority
  overview     open-task and project-progress report
  export PATH  write a JSON snapshot
  import PATH  additively merge a JSON snapshot
  autosave     run periodic snapshot exports until interrupted
`

// App wires the terminal commands to the services. All rules live in the
// service layer; the CLI is parsing and printing only.
type App struct {
	Tasks     *service.TaskService
	Projects  *service.ProjectService
	Snapshots *service.SnapshotService
	Reports   *service.ReportService
	Scheduler *service.SchedulerService
	Config    config.Config
	Log       *zap.Logger
	Out       io.Writer
}

// Run dispatches a single invocation and maps errors to exit codes.
func (a *App) Run(ctx context.Context, args []string) int {
	if len(args) == 0 {
		fmt.Fprint(a.Out, usage)
		return ExitInvalidInvocation
	}

	var err error
	switch cmd, rest := args[0], args[1:]; cmd {
	case "add":
		err = a.addTask(ctx, rest)
	case "list":
		err = a.listTasks(ctx, rest)
	case "edit":
		err = a.editTask(ctx, rest)
	case "status":
		err = a.moveTask(ctx, rest)
	case "done":
		err = a.completeTask(ctx, rest)
	case "rm":
		err = a.removeTask(ctx, rest)
	case "project":
		err = a.runProject(ctx, rest)
	case "stats":
		err = a.showStats(ctx, rest)
	case "overview":
		err = a.showOverview(ctx, rest)
	case "export":
		err = a.exportSnapshot(ctx, rest)
	case "import":
		err = a.importSnapshot(ctx, rest)
	case "autosave":
		err = a.runAutosave(ctx, rest)
	case "help", "-h", "--help":
		fmt.Fprint(a.Out, usage)
		return ExitSuccess
	default:
		fmt.Fprintf(a.Out, "unknown command %q\n\n%s", cmd, usage)
		return ExitInvalidInvocation
	}

	if err == nil {
		return ExitSuccess
	}
	fmt.Fprintf(a.Out, "error: %v\n", err)
	if errors.Is(err, errUsage) ||
		errors.Is(err, service.ErrTaskInvalid) ||
		errors.Is(err, service.ErrProjectInvalid) {
		return ExitInvalidInvocation
	}
	return ExitFailure
}

var errUsage = errors.New("invalid invocation")

func usagef(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{errUsage}, args...)...)
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard) // parse errors are returned, not printed
	return fs
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, usagef("bad id %q", raw)
	}
	return uint(id), nil
}
