//go:build darwin

package model

import "syscall"

// GetDiskSpace returns disk space information for a given path using statfs
func GetDiskSpace(path string) (total, free uint64) {
	var stat syscall.Statfs_t
	if err := syscall.Statfs(path, &stat); err != nil {
		return 0, 0
	}

	total = stat.Blocks * uint64(stat.Bsize)
	free = stat.Bavail * uint64(stat.Bsize)
	return total, free
}

func getPlatformDrives() ([]DriveInfo, error) {
	rootDrive := DriveInfo{Path: "/", Name: "Root Directory"}
	rootDrive.TotalBytes, rootDrive.FreeBytes = GetDiskSpace("/")
	drives := []DriveInfo{rootDrive}

	// Scan /Volumes for mounted drives; the boot volume is a symlink to /
	// and is dropped by mountDirs.
	for _, drive := range mountDirs("/Volumes", "Volume") {
		var stat syscall.Statfs_t
		if err := syscall.Statfs(drive.Path, &stat); err != nil {
			// Skip volumes we can't access
			continue
		}

		if isFilteredFilesystem(int8ArrayToString(stat.Fstypename[:])) {
			continue
		}

		drive.TotalBytes, drive.FreeBytes = GetDiskSpace(drive.Path)
		drives = append(drives, drive)
	}

	return drives, nil
}

// int8ArrayToString converts an int8 array to a string
func int8ArrayToString(arr []int8) string {
	b := make([]byte, 0, len(arr))
	for _, v := range arr {
		if v == 0 {
			break
		}
		b = append(b, byte(v))
	}
	return string(b)
}

// isFilteredFilesystem returns true for network and pseudo filesystems,
// which never hold local projects worth sweeping
func isFilteredFilesystem(fsType string) bool {
	switch fsType {
	case "smbfs", "nfs", "afpfs", "webdav", "cifs":
		return true
	case "devfs", "autofs", "mtmfs", "nullfs":
		return true
	}
	return false
}
