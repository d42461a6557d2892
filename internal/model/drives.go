package model

import (
	"os"
	"path/filepath"
)

// DriveInfo represents a mounted drive/volume that can be scanned
type DriveInfo struct {
	Path       string `json:"path"`
	Name       string `json:"name"`
	TotalBytes uint64 `json:"total_bytes,omitempty"`
	FreeBytes  uint64 `json:"free_bytes,omitempty"`
}

// UsedBytes returns bytes used on this drive
func (d DriveInfo) UsedBytes() uint64 {
	if d.FreeBytes > d.TotalBytes {
		return 0
	}
	return d.TotalBytes - d.FreeBytes
}

// UsedPercent returns percentage of drive used
func (d DriveInfo) UsedPercent() float64 {
	if d.TotalBytes == 0 {
		return 0
	}
	return float64(d.UsedBytes()) / float64(d.TotalBytes) * 100
}

// GetDrives returns all available drives on the system
func GetDrives() ([]DriveInfo, error) {
	return getPlatformDrives()
}

// AllRoots returns the scan roots covering every available drive
func AllRoots() ([]string, error) {
	drives, err := GetDrives()
	if err != nil {
		return nil, err
	}
	roots := make([]string, 0, len(drives))
	for _, d := range drives {
		roots = append(roots, d.Path)
	}
	return roots, nil
}

// mountDirs lists the real (non-symlink) directories directly inside dir
func mountDirs(dir, namePrefix string) []DriveInfo {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var drives []DriveInfo
	for _, entry := range entries {
		// Symlinked volumes (e.g. the boot volume in /Volumes) point back into
		// an existing root.
		if !entry.IsDir() {
			continue
		}
		drives = append(drives, DriveInfo{
			Path: filepath.Join(dir, entry.Name()),
			Name: namePrefix + " " + entry.Name(),
		})
	}
	return drives
}
