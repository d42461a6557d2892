//go:build linux

package model

import (
	"os/user"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// GetDiskSpace returns disk space information for a given path using statfs
func GetDiskSpace(path string) (total, free uint64) {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return 0, 0
	}
	bsize := uint64(stat.Bsize)
	return stat.Blocks * bsize, stat.Bavail * bsize
}

func getPlatformDrives() ([]DriveInfo, error) {
	drives := []DriveInfo{{Path: "/", Name: "Root Directory"}}

	candidates := []string{"/media", "/mnt"}
	seen := map[string]bool{"/": true}

	// Desktop automounters put removable media under /media/<user> or
	// /run/media/<user>; the per-user directory itself is only a container.
	if u, err := user.Current(); err == nil && u.Username != "" {
		for _, base := range []string{"/media", "/run/media"} {
			userMedia := filepath.Join(base, u.Username)
			candidates = append(candidates, userMedia)
			seen[userMedia] = true
		}
	}

	for _, dir := range candidates {
		for _, d := range mountDirs(dir, "Mount") {
			if seen[d.Path] {
				continue
			}
			seen[d.Path] = true
			drives = append(drives, d)
		}
	}

	for i := range drives {
		drives[i].TotalBytes, drives[i].FreeBytes = GetDiskSpace(drives[i].Path)
	}
	return drives, nil
}
