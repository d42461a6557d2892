package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lumipallolabs/nodesweep/internal/cleaner"
	"github.com/lumipallolabs/nodesweep/internal/core"
	"github.com/lumipallolabs/nodesweep/internal/model"
	"github.com/lumipallolabs/nodesweep/internal/ui"
	"github.com/spf13/cobra"
)

// plainProgressEvery throttles progress lines when stderr is not a terminal
const plainProgressEvery = 2 * time.Second

// scanFlags are shared by scan and clean
type scanFlags struct {
	all         bool
	drives      []string
	sizes       bool
	workers     int
	sizeWorkers int
	maxDepth    int
	interval    time.Duration
	sortBy      string
}

func (f *scanFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.all, "all", false, "Scan every mounted drive")
	cmd.Flags().StringSliceVar(&f.drives, "drive", nil, "Scan a drive or mount point (repeatable)")
	cmd.Flags().BoolVar(&f.sizes, "sizes", false, "Compute the size of every node_modules")
	cmd.Flags().IntVar(&f.workers, "workers", 0, "Directory listing workers (0 = auto)")
	cmd.Flags().IntVar(&f.sizeWorkers, "size-workers", 0, "Concurrent size calculations (0 = auto)")
	cmd.Flags().IntVar(&f.maxDepth, "max-depth", 0, "Maximum folder depth below each root (0 = unlimited)")
	cmd.Flags().DurationVar(&f.interval, "interval", 0, "Progress update interval")
	cmd.Flags().StringVar(&f.sortBy, "sort", "path", "Sort results by path or size")
}

// apply overrides config values with the flags the user set
func (f *scanFlags) apply(cmd *cobra.Command) error {
	if cmd.Flags().Changed("workers") {
		cfg.Workers = f.workers
	}
	if cmd.Flags().Changed("size-workers") {
		cfg.SizeWorkers = f.sizeWorkers
	}
	if cmd.Flags().Changed("max-depth") {
		cfg.MaxDepth = f.maxDepth
	}
	if cmd.Flags().Changed("interval") {
		if f.interval <= 0 {
			return fmt.Errorf("--interval must be positive")
		}
		cfg.SetInterval(f.interval)
	}
	if f.workers < 0 || f.sizeWorkers < 0 || f.maxDepth < 0 {
		return fmt.Errorf("worker counts and --max-depth must not be negative")
	}
	switch f.sortBy {
	case "path", "size":
	default:
		return fmt.Errorf("--sort must be path or size, got %q", f.sortBy)
	}
	return nil
}

// roots resolves the scan roots from arguments and flags. With nothing
// given the current directory is scanned.
func (f *scanFlags) roots(args []string) ([]string, error) {
	roots := append([]string(nil), args...)
	roots = append(roots, f.drives...)
	if f.all {
		all, err := model.AllRoots()
		if err != nil {
			return nil, fmt.Errorf("list drives: %w", err)
		}
		roots = append(roots, all...)
	}
	if len(roots) == 0 {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		roots = []string{cwd}
	}
	return roots, nil
}

func (f *scanFlags) sort(matches []model.Match) {
	if f.sortBy == "size" {
		model.SortBySize(matches)
		return
	}
	model.SortByPath(matches)
}

func newController(strict bool) *core.Controller {
	return core.NewController(core.Options{
		Scan: cfg.ScanOptions(false),
		Delete: cleaner.Options{
			Strict: strict || cfg.StrictDelete,
		},
	})
}

// interruptContext cancels on Ctrl+C when no live view owns the terminal
func interruptContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(cmd.Context(), os.Interrupt)
}

// runScan starts a scan and shows its progress: a live view on a terminal,
// throttled lines on stderr otherwise, nothing in JSON mode
func runScan(ctx context.Context, ctrl *core.Controller, roots []string, sizes bool) (core.ScanCompletedEvent, error) {
	events, err := ctrl.StartScan(ctx, roots, sizes)
	if err != nil {
		return core.ScanCompletedEvent{}, err
	}

	var completed core.ScanCompletedEvent
	switch {
	case jsonOutput:
		completed = drainScan(events, nil)
	case IsTTY(os.Stderr):
		completed, err = liveScan(ctrl, roots, events)
		if err != nil {
			return completed, err
		}
	default:
		completed = drainScan(events, plainProgress())
	}

	if completed.Err != nil {
		return completed, completed.Err
	}
	return completed, nil
}

// drainScan consumes events, passing each to onEvent
func drainScan(events <-chan core.Event, onEvent func(core.Event)) core.ScanCompletedEvent {
	var completed core.ScanCompletedEvent
	for event := range events {
		if onEvent != nil {
			onEvent(event)
		}
		switch e := event.(type) {
		case core.RootErrorEvent:
			PrintWarning(e.Err.Error())
		case core.ScanCompletedEvent:
			completed = e
		}
	}
	return completed
}

func plainProgress() func(core.Event) {
	var last time.Time
	return func(event core.Event) {
		e, ok := event.(core.ScanProgressEvent)
		if !ok || e.Progress.IsComplete || time.Since(last) < plainProgressEvery {
			return
		}
		last = time.Now()
		p := e.Progress
		fmt.Fprintf(os.Stderr, "scanned %s folders, found %s node_modules, skipped %s\n",
			ui.FormatCount(p.FoldersScanned), ui.FormatCount(p.NodeModulesFound), ui.FormatCount(p.DirectoriesSkipped))
	}
}

// liveScan runs the Bubbletea progress view until the scan ends. The view's
// abort key cancels the scan; partial results are still returned.
func liveScan(ctrl *core.Controller, roots []string, events <-chan core.Event) (core.ScanCompletedEvent, error) {
	program := tea.NewProgram(ui.NewScanView(roots, ctrl.Abort), tea.WithOutput(os.Stderr))

	done := make(chan core.ScanCompletedEvent, 1)
	go func() {
		var completed core.ScanCompletedEvent
		for event := range events {
			switch e := event.(type) {
			case core.ScanProgressEvent:
				program.Send(ui.ProgressMsg{Progress: e.Progress})
			case core.RootErrorEvent:
				program.Send(ui.RootErrorMsg{Err: e.Err})
			case core.ScanCompletedEvent:
				completed = e
			}
		}
		program.Send(ui.DoneMsg{Aborted: completed.Aborted})
		done <- completed
	}()

	if _, err := program.Run(); err != nil {
		ctrl.Abort()
		<-done
		return core.ScanCompletedEvent{}, fmt.Errorf("progress view: %w", err)
	}
	return <-done, nil
}
