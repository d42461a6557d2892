package scanner

import (
	"sync/atomic"
	"time"

	"github.com/lumipallolabs/nodesweep/internal/model"
)

// maxBranching caps the children-per-directory rate used by the estimate
const maxBranching = 8

// counters are the live scan statistics shared by all workers
type counters struct {
	scanned    atomic.Uint64
	discovered atomic.Uint64
	found      atomic.Uint64
	skipped    atomic.Uint64
	estimate   atomic.Uint64
	roots      atomic.Uint64
	current    atomic.Pointer[string]
}

func (c *counters) setCurrent(path string) {
	c.current.Store(&path)
}

// estimateTotal refreshes the folder estimate from the observed branching
// rate and returns it. The stored value only grows.
func (c *counters) estimateTotal(pending int) uint64 {
	scanned := c.scanned.Load()
	discovered := c.discovered.Load()

	candidate := max(discovered, scanned)
	if scanned > 0 {
		children := discovered - min(c.roots.Load(), discovered)
		rate := min(float64(children)/float64(scanned), maxBranching)
		candidate = max(candidate, discovered+uint64(float64(pending)*rate))
	}

	for {
		prev := c.estimate.Load()
		if candidate <= prev {
			return prev
		}
		if c.estimate.CompareAndSwap(prev, candidate) {
			return candidate
		}
	}
}

func (c *counters) snapshot(pending int, complete bool) model.ScanProgress {
	p := model.ScanProgress{
		FoldersScanned:        c.scanned.Load(),
		TotalFoldersEstimated: c.estimateTotal(pending),
		NodeModulesFound:      c.found.Load(),
		DirectoriesSkipped:    c.skipped.Load(),
		IsComplete:            complete,
	}
	if cur := c.current.Load(); cur != nil {
		p.CurrentFolder = *cur
	}
	if complete && p.TotalFoldersEstimated < p.FoldersScanned {
		p.TotalFoldersEstimated = p.FoldersScanned
	}
	return p
}

// reporter publishes snapshots on a channel holding at most one unread value
type reporter struct {
	ch       chan model.ScanProgress
	interval time.Duration
	stop     chan struct{}
	stopped  chan struct{}
}

func newReporter(interval time.Duration) *reporter {
	return &reporter{
		ch:       make(chan model.ScanProgress, 1),
		interval: interval,
		stop:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
}

// publish replaces any unread snapshot with p
func (r *reporter) publish(p model.ScanProgress) {
	for {
		select {
		case r.ch <- p:
			return
		default:
		}
		select {
		case <-r.ch:
		default:
		}
	}
}

// run ticks until finish is called
func (r *reporter) run(sample func() model.ScanProgress) {
	defer close(r.stopped)
	r.publish(sample())

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-r.stop:
			return
		case <-ticker.C:
			r.publish(sample())
		}
	}
}

// finish stops the ticker, delivers the terminal snapshot and closes the
// channel. The terminal value is the last one a reader can receive.
func (r *reporter) finish(final model.ScanProgress) {
	close(r.stop)
	<-r.stopped
	r.publish(final)
	close(r.ch)
}
