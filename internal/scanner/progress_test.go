package scanner

import (
	"testing"
	"time"

	"github.com/lumipallolabs/nodesweep/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestCountersEstimateNeverDecreases(t *testing.T) {
	var c counters
	c.roots.Store(1)
	c.discovered.Store(1)

	assert.Equal(t, uint64(1), c.estimateTotal(1))

	// root listed with 4 children: rate 4, pending 4
	c.scanned.Store(1)
	c.discovered.Store(5)
	first := c.estimateTotal(4)
	assert.Equal(t, uint64(5+4*4), first)

	// a leaf-heavy stretch lowers the rate but not the estimate
	c.scanned.Store(5)
	second := c.estimateTotal(0)
	assert.Equal(t, first, second)

	c.scanned.Store(100)
	c.discovered.Store(100)
	assert.Equal(t, uint64(100), c.estimateTotal(0))
}

func TestCountersEstimateCapsBranching(t *testing.T) {
	var c counters
	c.roots.Store(1)
	c.scanned.Store(1)
	c.discovered.Store(1001)

	assert.Equal(t, uint64(1001+10*maxBranching), c.estimateTotal(10))
}

func TestCountersSnapshot(t *testing.T) {
	var c counters
	c.scanned.Store(3)
	c.discovered.Store(3)
	c.found.Store(2)
	c.skipped.Store(1)
	c.setCurrent("/r/a")

	p := c.snapshot(0, false)
	assert.Equal(t, model.ScanProgress{
		CurrentFolder:         "/r/a",
		FoldersScanned:        3,
		TotalFoldersEstimated: 3,
		NodeModulesFound:      2,
		DirectoriesSkipped:    1,
	}, p)

	final := c.snapshot(0, true)
	assert.True(t, final.IsComplete)
	assert.Equal(t, 100.0, final.Percent())
}

func TestReporterLatestWins(t *testing.T) {
	r := newReporter(time.Hour)
	r.publish(model.ScanProgress{FoldersScanned: 1})
	r.publish(model.ScanProgress{FoldersScanned: 2})

	assert.Equal(t, uint64(2), (<-r.ch).FoldersScanned)
}

func TestReporterFinishDeliversTerminal(t *testing.T) {
	r := newReporter(time.Millisecond)
	var n uint64
	go r.run(func() model.ScanProgress {
		n++
		return model.ScanProgress{FoldersScanned: n}
	})
	time.Sleep(10 * time.Millisecond)

	r.finish(model.ScanProgress{FoldersScanned: 999, IsComplete: true})

	var got []model.ScanProgress
	for p := range r.ch {
		got = append(got, p)
	}
	assert.Equal(t, []model.ScanProgress{{FoldersScanned: 999, IsComplete: true}}, got)
}
