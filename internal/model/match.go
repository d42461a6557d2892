package model

import "path/filepath"

// NodeModulesDir is the directory name the scanner looks for
const NodeModulesDir = "node_modules"

// Match represents a discovered node_modules directory
type Match struct {
	ProjectPath     string  `json:"project_path"`
	NodeModulesPath string  `json:"node_modules_path"`
	Size            *uint64 `json:"size"` // nil unless sizing was requested and finished
}

// NewMatch builds a match for the given node_modules path
func NewMatch(nodeModulesPath string) Match {
	return Match{
		ProjectPath:     filepath.Dir(nodeModulesPath),
		NodeModulesPath: nodeModulesPath,
	}
}

// HasSize reports whether a size was computed for this match
func (m Match) HasSize() bool {
	return m.Size != nil
}

// SizeBytes returns the computed size, or 0 when unknown
func (m Match) SizeBytes() uint64 {
	if m.Size == nil {
		return 0
	}
	return *m.Size
}

// WithSize returns a copy of the match carrying the given size
func (m Match) WithSize(size uint64) Match {
	m.Size = &size
	return m
}

// TotalSize sums the known sizes of the given matches
func TotalSize(matches []Match) uint64 {
	var total uint64
	for _, m := range matches {
		total += m.SizeBytes()
	}
	return total
}
