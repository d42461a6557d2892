package core

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/lumipallolabs/nodesweep/internal/cleaner"
	"github.com/lumipallolabs/nodesweep/internal/model"
	"github.com/lumipallolabs/nodesweep/internal/scanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// blockingScanner runs until its context is cancelled
type blockingScanner struct {
	progress chan model.ScanProgress
	started  chan struct{}
}

func newBlockingScanner() *blockingScanner {
	return &blockingScanner{
		progress: make(chan model.ScanProgress, 1),
		started:  make(chan struct{}),
	}
}

func (s *blockingScanner) Scan(ctx context.Context, _ []string) (*scanner.Result, error) {
	close(s.started)
	<-ctx.Done()
	final := model.ScanProgress{IsComplete: true}
	s.progress <- final
	close(s.progress)
	return &scanner.Result{Progress: final, Aborted: true}, nil
}

func (s *blockingScanner) Progress() <-chan model.ScanProgress {
	return s.progress
}

// removeTrash deletes permanently so tests never touch the real trash
var removeTrash = cleaner.TrashFunc(os.RemoveAll)

// newTestController uses first for the first scan and real walkers after
func newTestController(first scanner.Scanner) *Controller {
	opts := Options{
		Delete: cleaner.Options{Trasher: removeTrash},
		Opener: func(string) error { return nil },
	}
	if first != nil {
		used := false
		opts.NewScanner = func(o scanner.Options) scanner.Scanner {
			if used {
				return scanner.NewWalker(o)
			}
			used = true
			return first
		}
	}
	return NewController(opts)
}

func writeFile(t *testing.T, path string, n int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, make([]byte, n), 0o644))
}

func collect(events <-chan Event) []Event {
	var all []Event
	for e := range events {
		all = append(all, e)
	}
	return all
}

func TestControllerScanEvents(t *testing.T) {
	tmp := t.TempDir()
	writeFile(t, filepath.Join(tmp, "app", "node_modules", "dep", "index.js"), 120)
	missing := filepath.Join(tmp, "missing")

	c := newTestController(nil)
	events, err := c.StartScan(context.Background(), []string{tmp, missing}, true)
	require.NoError(t, err)
	all := collect(events)

	require.NotEmpty(t, all)
	assert.IsType(t, ScanStartedEvent{}, all[0])
	completed, ok := all[len(all)-1].(ScanCompletedEvent)
	require.True(t, ok, "last event should be ScanCompletedEvent")

	var rootErrs []RootErrorEvent
	var lastProgress model.ScanProgress
	for _, e := range all {
		switch e := e.(type) {
		case RootErrorEvent:
			rootErrs = append(rootErrs, e)
		case ScanProgressEvent:
			lastProgress = e.Progress
		}
	}
	require.Len(t, rootErrs, 1)
	assert.Equal(t, missing, rootErrs[0].Err.Root)
	assert.ErrorIs(t, rootErrs[0].Err, scanner.ErrRootUnavailable)
	assert.True(t, lastProgress.IsComplete)

	require.NoError(t, completed.Err)
	assert.False(t, completed.Aborted)
	require.Len(t, completed.Matches, 1)
	assert.Equal(t, uint64(120), completed.Matches[0].SizeBytes())

	state := c.State()
	assert.Equal(t, PhaseComplete, state.Scan.Phase)
	assert.Len(t, state.Matches, 1)
	assert.Len(t, state.RootErrors, 1)
	assert.True(t, state.Scan.Progress.IsComplete)
}

func TestControllerScanWithProgress(t *testing.T) {
	tmp := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(tmp, "a", "node_modules"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(tmp, "b", "node_modules"), 0o755))

	c := newTestController(nil)
	var snapshots []model.ScanProgress
	matches, err := c.ScanWithProgress(context.Background(), []string{tmp}, false, func(p model.ScanProgress) {
		snapshots = append(snapshots, p)
	})
	require.NoError(t, err)

	assert.Len(t, matches, 2)
	require.NotEmpty(t, snapshots)
	assert.True(t, snapshots[len(snapshots)-1].IsComplete)
}

func TestControllerRejectsEmptyInput(t *testing.T) {
	c := newTestController(nil)

	_, err := c.StartScan(context.Background(), nil, false)
	assert.ErrorIs(t, err, scanner.ErrNoRoots)

	_, err = c.Delete(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoPaths)
}

func TestControllerOneScanAtATime(t *testing.T) {
	s := newBlockingScanner()
	c := newTestController(s)

	events, err := c.StartScan(context.Background(), []string{"/r"}, false)
	require.NoError(t, err)
	<-s.started

	_, err = c.StartScan(context.Background(), []string{"/r"}, false)
	assert.ErrorIs(t, err, ErrScanInProgress)

	_, err = c.Delete(context.Background(), []string{"/r/node_modules"})
	assert.ErrorIs(t, err, ErrScanInProgress)
	assert.True(t, c.State().Scan.IsScanning())

	c.Abort()
	all := collect(events)
	completed, ok := all[len(all)-1].(ScanCompletedEvent)
	require.True(t, ok)
	assert.True(t, completed.Aborted)
	assert.True(t, completed.Progress.IsComplete)
	assert.Equal(t, PhaseAborted, c.State().Scan.Phase)

	// a new scan may start once the previous one ended
	events, err = c.StartScan(context.Background(), []string{t.TempDir()}, false)
	require.NoError(t, err)
	collect(events)
}

func TestControllerScanCancelledByParentContext(t *testing.T) {
	s := newBlockingScanner()
	c := newTestController(s)
	ctx, cancel := context.WithCancel(context.Background())

	events, err := c.StartScan(ctx, []string{"/r"}, false)
	require.NoError(t, err)
	<-s.started
	cancel()

	done := make(chan struct{})
	go func() {
		collect(events)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("scan did not stop after cancellation")
	}
	assert.Equal(t, PhaseAborted, c.State().Scan.Phase)
}

func TestControllerDeleteTracksFreed(t *testing.T) {
	tmp := t.TempDir()
	writeFile(t, filepath.Join(tmp, "a", "node_modules", "x.js"), 300)
	writeFile(t, filepath.Join(tmp, "b", "node_modules", "y.js"), 700)

	c := newTestController(nil)
	matches, err := c.ScanWithProgress(context.Background(), []string{tmp}, true, nil)
	require.NoError(t, err)
	require.Len(t, matches, 2)

	target := matches[0].NodeModulesPath
	results, err := c.Delete(context.Background(), []string{target, filepath.Join(tmp, "a")})
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.True(t, results[0].Success)
	assert.False(t, results[1].Success)
	assert.NoDirExists(t, target)

	state := c.State()
	assert.Equal(t, FreedState{Session: 300, Deleted: 1}, state.Freed)
	assert.Len(t, state.Matches, 1)
	assert.False(t, state.Deleting)
}

func TestControllerOpenInFileManager(t *testing.T) {
	var mu sync.Mutex
	var opened []string
	c := NewController(Options{Opener: func(path string) error {
		mu.Lock()
		defer mu.Unlock()
		opened = append(opened, path)
		return nil
	}})

	require.NoError(t, c.OpenInFileManager("/some/project"))
	assert.Equal(t, []string{"/some/project"}, opened)
}

func TestScanStateElapsed(t *testing.T) {
	assert.Zero(t, ScanState{}.Elapsed())

	start := time.Now().Add(-2 * time.Second)
	s := ScanState{StartTime: start, EndTime: start.Add(1500 * time.Millisecond)}
	assert.Equal(t, 1500*time.Millisecond, s.Elapsed())
}

func TestScanPhaseString(t *testing.T) {
	assert.Equal(t, "", PhaseIdle.String())
	assert.Equal(t, "Scanning", PhaseScanning.String())
	assert.Equal(t, "Complete", PhaseComplete.String())
	assert.Equal(t, "Aborted", PhaseAborted.String())
}
