package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"text/tabwriter"
	"time"

	"go.uber.org/zap"
)

func (a *App) showStats(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return usagef("stats takes no arguments")
	}
	stats, err := a.Tasks.Statistics(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(a.Out, 0, 4, 2, ' ', 0)
	printCounts(w, "STATUS", stats.Status)
	printCounts(w, "CATEGORY", stats.Category)
	printCounts(w, "PRIORITY", stats.Priority)
	return w.Flush()
}

func printCounts(w io.Writer, header string, counts map[string]int64) {
	fmt.Fprintf(w, "%s\tCOUNT\n", header)
	keys := make([]string, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Fprintf(w, "%s\t%d\n", key, counts[key])
	}
	fmt.Fprintln(w)
}

func (a *App) showOverview(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return usagef("overview takes no arguments")
	}
	report, err := a.Reports.Overview(ctx, time.Now())
	if err != nil {
		return err
	}
	fmt.Fprintln(a.Out, report)
	return nil
}

func (a *App) exportSnapshot(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usagef("export needs a file path")
	}
	path := args[0]
	if err := a.Snapshots.Export(ctx, path, time.Now()); err != nil {
		return err
	}
	fmt.Fprintf(a.Out, "exported snapshot to %s\n", path)
	return nil
}

func (a *App) importSnapshot(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usagef("import needs a file path")
	}
	result, err := a.Snapshots.Import(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(a.Out, "imported %d projects and %d tasks\n", result.Projects, result.Tasks)
	return nil
}

// runAutosave blocks until the context is cancelled, exporting timestamped
// snapshots on the configured schedule.
func (a *App) runAutosave(ctx context.Context, args []string) error {
	fs := newFlagSet("autosave")
	dir := fs.String("dir", a.Config.Snapshot.Dir, "snapshot directory")
	every := fs.Duration("every", a.Config.SnapshotInterval(), "export interval, 0 disables")
	at := fs.String("at", a.Config.Snapshot.DailyAt, "daily export time, HH:MM")
	if err := fs.Parse(args); err != nil {
		return usagef("%v", err)
	}
	if *every <= 0 && *at == "" {
		return usagef("autosave needs -every or -at")
	}
	if err := os.MkdirAll(*dir, 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}

	job := func() {
		jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		now := time.Now()
		path := filepath.Join(*dir, fmt.Sprintf("taskpad-%s.json", now.Format("20060102-150405")))
		if err := a.Snapshots.Export(jobCtx, path, now); err != nil {
			a.Log.Error("snapshot export failed", zap.Error(err))
			return
		}
		a.Log.Info("snapshot written", zap.String("path", path))
	}

	if *every > 0 {
		if _, err := a.Scheduler.ScheduleInterval(*every, job); err != nil {
			return err
		}
	}
	if *at != "" {
		if _, err := a.Scheduler.ScheduleDaily(*at, job); err != nil {
			return err
		}
	}

	a.Scheduler.Start()
	defer a.Scheduler.Stop()
	a.Log.Info("autosave running", zap.String("dir", *dir), zap.Duration("every", *every))

	<-ctx.Done()
	return nil
}
