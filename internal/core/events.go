package core

import "github.com/lumipallolabs/nodesweep/internal/model"

// Event represents a state change from the controller
type Event interface {
	isEvent()
}

// ScanStartedEvent is emitted when a scan begins
type ScanStartedEvent struct {
	Roots []string
}

func (ScanStartedEvent) isEvent() {}

// ScanProgressEvent carries a throttled progress snapshot. The last one of a
// scan has IsComplete set.
type ScanProgressEvent struct {
	Progress model.ScanProgress
}

func (ScanProgressEvent) isEvent() {}

// RootErrorEvent is emitted when a root cannot be traversed; the other roots
// continue
type RootErrorEvent struct {
	Err model.RootError
}

func (RootErrorEvent) isEvent() {}

// ScanCompletedEvent is emitted once when a scan finishes or is aborted
type ScanCompletedEvent struct {
	Matches    []model.Match
	RootErrors []model.RootError
	Progress   model.ScanProgress
	Aborted    bool
	Err        error
}

func (ScanCompletedEvent) isEvent() {}
