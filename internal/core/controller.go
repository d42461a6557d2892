package core

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/lumipallolabs/nodesweep/internal/cleaner"
	"github.com/lumipallolabs/nodesweep/internal/logging"
	"github.com/lumipallolabs/nodesweep/internal/model"
	"github.com/lumipallolabs/nodesweep/internal/scanner"
	"github.com/lumipallolabs/nodesweep/internal/ui"
)

// eventBuffer is the capacity of a scan's event channel
const eventBuffer = 16

// Options configures a Controller
type Options struct {
	Scan   scanner.Options
	Delete cleaner.Options

	// NewScanner builds the scanner for each session; nil uses a Walker
	NewScanner func(scanner.Options) scanner.Scanner

	// Opener reveals a folder in the desktop file manager; nil uses
	// ui.OpenInFileManager
	Opener func(path string) error
}

// Controller owns the scan session and deletion state. It allows one scan at
// a time and never runs a scan and a deletion together.
type Controller struct {
	mu sync.RWMutex

	// State
	scan       ScanState
	freed      FreedState
	deleting   bool
	matches    map[string]model.Match
	rootErrors []model.RootError
	cancel     context.CancelFunc

	// Internal services
	scanOpts   scanner.Options
	newScanner func(scanner.Options) scanner.Scanner
	executor   *cleaner.Executor
	opener     func(string) error
}

// NewController creates a new application controller
func NewController(opts Options) *Controller {
	newScanner := opts.NewScanner
	if newScanner == nil {
		newScanner = func(o scanner.Options) scanner.Scanner {
			return scanner.NewWalker(o)
		}
	}
	opener := opts.Opener
	if opener == nil {
		opener = ui.OpenInFileManager
	}

	return &Controller{
		matches:    make(map[string]model.Match),
		scanOpts:   opts.Scan,
		newScanner: newScanner,
		executor:   cleaner.NewExecutor(opts.Delete),
		opener:     opener,
	}
}

// State returns a read-only snapshot of the current state
func (c *Controller) State() AppState {
	c.mu.RLock()
	defer c.mu.RUnlock()

	matches := make([]model.Match, 0, len(c.matches))
	for _, m := range c.matches {
		matches = append(matches, m)
	}
	model.SortByPath(matches)

	return AppState{
		Scan:       c.scan,
		Freed:      c.freed,
		Deleting:   c.deleting,
		Matches:    matches,
		RootErrors: append([]model.RootError(nil), c.rootErrors...),
	}
}

// ListDrives returns the mounted drives that can be scanned
func (c *Controller) ListDrives() ([]model.DriveInfo, error) {
	return model.GetDrives()
}

// StartScan begins scanning roots. Events are delivered on the returned
// channel, which is closed after the ScanCompletedEvent; the caller must
// drain it.
func (c *Controller) StartScan(ctx context.Context, roots []string, includeSizes bool) (<-chan Event, error) {
	if !hasRoot(roots) {
		return nil, scanner.ErrNoRoots
	}

	c.mu.Lock()
	if c.scan.IsScanning() {
		c.mu.Unlock()
		return nil, ErrScanInProgress
	}
	if c.deleting {
		c.mu.Unlock()
		return nil, ErrDeleteInProgress
	}

	scanCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.scan = ScanState{
		Phase:     PhaseScanning,
		Roots:     append([]string(nil), roots...),
		StartTime: time.Now(),
	}
	c.mu.Unlock()

	eventCh := make(chan Event, eventBuffer)

	opts := c.scanOpts
	opts.IncludeSizes = includeSizes
	opts.OnRootError = func(err model.RootError) {
		eventCh <- RootErrorEvent{Err: err}
	}

	go c.runScan(scanCtx, cancel, c.newScanner(opts), roots, eventCh)

	return eventCh, nil
}

// runScan executes the scan in a goroutine
func (c *Controller) runScan(ctx context.Context, cancel context.CancelFunc, s scanner.Scanner, roots []string, eventCh chan Event) {
	defer close(eventCh)
	defer cancel()

	logging.Debug.Printf("[Controller] Starting scan of %s", strings.Join(roots, ", "))
	eventCh <- ScanStartedEvent{Roots: roots}

	// Forward progress until the scanner closes its channel
	forwarded := make(chan struct{})
	go func() {
		defer close(forwarded)
		for progress := range s.Progress() {
			c.mu.Lock()
			c.scan.Progress = progress
			c.mu.Unlock()

			eventCh <- ScanProgressEvent{Progress: progress}
		}
	}()

	result, err := s.Scan(ctx, roots)
	<-forwarded

	c.mu.Lock()
	c.cancel = nil
	c.scan.EndTime = time.Now()
	if err != nil {
		c.scan.Phase = PhaseIdle
		c.mu.Unlock()

		logging.Debug.Printf("[Controller] Scan failed: %v", err)
		eventCh <- ScanCompletedEvent{Err: err}
		return
	}

	c.scan.Progress = result.Progress
	c.scan.Phase = PhaseComplete
	if result.Aborted {
		c.scan.Phase = PhaseAborted
	}
	c.matches = make(map[string]model.Match, len(result.Matches))
	for _, m := range result.Matches {
		c.matches[m.NodeModulesPath] = m
	}
	c.rootErrors = result.RootErrors
	phase, elapsed := c.scan.Phase, c.scan.Elapsed()
	c.mu.Unlock()

	logging.Debug.Printf("[Controller] Scan %s in %v: %d matches",
		strings.ToLower(phase.String()), elapsed, len(result.Matches))

	eventCh <- ScanCompletedEvent{
		Matches:    result.Matches,
		RootErrors: result.RootErrors,
		Progress:   result.Progress,
		Aborted:    result.Aborted,
	}
}

// ScanWithProgress runs a scan to completion, calling onProgress with every
// snapshot, and returns the matches. An aborted scan returns the partial
// matches and no error.
func (c *Controller) ScanWithProgress(ctx context.Context, roots []string, includeSizes bool, onProgress func(model.ScanProgress)) ([]model.Match, error) {
	events, err := c.StartScan(ctx, roots, includeSizes)
	if err != nil {
		return nil, err
	}

	var (
		matches []model.Match
		scanErr error
	)
	for event := range events {
		switch e := event.(type) {
		case ScanProgressEvent:
			if onProgress != nil {
				onProgress(e.Progress)
			}
		case ScanCompletedEvent:
			matches, scanErr = e.Matches, e.Err
		}
	}
	return matches, scanErr
}

// Abort cancels the running scan, if any
func (c *Controller) Abort() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		logging.Debug.Printf("[Controller] Abort requested")
		c.cancel()
	}
}

// Delete moves the given node_modules directories to the trash. Every path
// gets its own result; only an empty list or a busy controller is an error.
func (c *Controller) Delete(ctx context.Context, paths []string) ([]model.DeleteResult, error) {
	if len(paths) == 0 {
		return nil, ErrNoPaths
	}

	c.mu.Lock()
	if c.scan.IsScanning() {
		c.mu.Unlock()
		return nil, ErrScanInProgress
	}
	if c.deleting {
		c.mu.Unlock()
		return nil, ErrDeleteInProgress
	}
	c.deleting = true
	c.mu.Unlock()

	results := c.executor.Delete(ctx, paths)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.deleting = false
	for _, r := range results {
		if !r.Success {
			continue
		}
		c.freed.Deleted++
		if m, ok := c.matches[r.Path]; ok {
			c.freed.Session += m.SizeBytes()
			delete(c.matches, r.Path)
		}
	}
	logging.Debug.Printf("[Controller] Deleted %d of %d paths, %d bytes freed this session",
		countSucceeded(results), len(results), c.freed.Session)

	return results, nil
}

// OpenInFileManager reveals path in the system file manager
func (c *Controller) OpenInFileManager(path string) error {
	return c.opener(path)
}

func hasRoot(roots []string) bool {
	for _, root := range roots {
		if strings.TrimSpace(root) != "" {
			return true
		}
	}
	return false
}

func countSucceeded(results []model.DeleteResult) int {
	n := 0
	for _, r := range results {
		if r.Success {
			n++
		}
	}
	return n
}
