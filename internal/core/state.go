package core

import (
	"time"

	"github.com/lumipallolabs/nodesweep/internal/model"
)

// ScanPhase represents the current phase of scanning
type ScanPhase int

const (
	PhaseIdle ScanPhase = iota
	PhaseScanning
	PhaseComplete
	PhaseAborted
)

// String returns a human-readable phase name
func (p ScanPhase) String() string {
	switch p {
	case PhaseIdle:
		return ""
	case PhaseScanning:
		return "Scanning"
	case PhaseComplete:
		return "Complete"
	case PhaseAborted:
		return "Aborted"
	default:
		return ""
	}
}

// ScanState holds the current scan state
type ScanState struct {
	Phase     ScanPhase
	Roots     []string
	StartTime time.Time
	EndTime   time.Time
	Progress  model.ScanProgress
}

// IsScanning returns true while a scan session is running
func (s ScanState) IsScanning() bool {
	return s.Phase == PhaseScanning
}

// Elapsed returns the scan duration so far, or its total once finished
func (s ScanState) Elapsed() time.Duration {
	if s.StartTime.IsZero() {
		return 0
	}
	end := s.EndTime
	if end.IsZero() {
		end = time.Now()
	}
	return end.Sub(s.StartTime).Truncate(time.Millisecond)
}

// FreedState tracks space recovered from deletions
type FreedState struct {
	Session uint64 // bytes freed this session, counting only sized matches
	Deleted int    // directories moved to trash this session
}

// AppState holds the complete application state (read-only view)
type AppState struct {
	Scan       ScanState
	Freed      FreedState
	Deleting   bool
	Matches    []model.Match // from the last scan, minus deleted ones
	RootErrors []model.RootError
}
