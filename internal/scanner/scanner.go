// Package scanner finds node_modules directories under one or more roots.
//
// A Walker schedules directory listings across a bounded worker pool with one
// queue per root, applies the SkipPolicy before entering any directory and
// records every child named node_modules as a match without descending into
// it. Sizes are computed by a SizeCalculator on a separate bounded pool, and
// progress snapshots are published on a throttled channel.
package scanner

import (
	"context"
	"errors"
	"runtime"
	"time"

	"github.com/lumipallolabs/nodesweep/internal/model"
)

var (
	// ErrNoRoots is returned when a scan is requested without any root
	ErrNoRoots = errors.New("no scan roots given")

	// ErrRootUnavailable wraps the cause for a root that cannot be traversed
	ErrRootUnavailable = errors.New("root unavailable")

	// ErrWalkerReused is returned when Scan is called twice on one Walker
	ErrWalkerReused = errors.New("walker already used")
)

// DefaultProgressInterval is the snapshot cadence when none is configured
const DefaultProgressInterval = 100 * time.Millisecond

// Options configures a scan
type Options struct {
	Workers          int           // directory listing workers (0 = auto)
	SizeWorkers      int           // concurrent size calculations (0 = auto)
	IncludeSizes     bool          // compute the size of every match
	ProgressInterval time.Duration // snapshot cadence
	MaxDepth         int           // maximum depth below a root (0 = unlimited)
	SkipNames        []string      // extra directory names never entered
	SkipPaths        []string      // extra absolute paths never entered

	// OnRootError, when set, is called as soon as a root proves unusable
	OnRootError func(model.RootError)
}

func (o Options) withDefaults() Options {
	if o.Workers < 1 {
		o.Workers = min(runtime.NumCPU()*2, 32)
	}
	if o.SizeWorkers < 1 {
		o.SizeWorkers = max(runtime.NumCPU()/2, 2)
	}
	if o.ProgressInterval <= 0 {
		o.ProgressInterval = DefaultProgressInterval
	}
	return o
}

// Result is the outcome of one scan session
type Result struct {
	Matches    []model.Match      // sorted by node_modules path
	RootErrors []model.RootError  // roots that could not be traversed
	Progress   model.ScanProgress // terminal snapshot
	Aborted    bool               // cancelled before the queues drained
}

// Scanner defines the interface for node_modules scanning
type Scanner interface {
	// Scan walks the given roots and returns every match found
	Scan(ctx context.Context, roots []string) (*Result, error)

	// Progress returns a channel that receives progress snapshots; it is
	// closed after the terminal snapshot
	Progress() <-chan model.ScanProgress
}
