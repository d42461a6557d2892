package model

// ScanProgress is a point-in-time snapshot of a running scan
type ScanProgress struct {
	CurrentFolder         string `json:"current_folder"`
	FoldersScanned        uint64 `json:"folders_scanned"`
	TotalFoldersEstimated uint64 `json:"total_folders_estimated"`
	NodeModulesFound      uint64 `json:"node_modules_found"`
	DirectoriesSkipped    uint64 `json:"directories_skipped"`
	IsComplete            bool   `json:"is_complete"`
}

// Percent returns scanned/estimated as a percentage in [0, 100]
func (p ScanProgress) Percent() float64 {
	if p.IsComplete {
		return 100
	}
	if p.TotalFoldersEstimated == 0 {
		return 0
	}
	pct := float64(p.FoldersScanned) / float64(p.TotalFoldersEstimated) * 100
	if pct > 100 {
		return 100
	}
	return pct
}
