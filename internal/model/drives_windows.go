//go:build windows

package model

import (
	"fmt"
	"os"

	"golang.org/x/sys/windows"
)

func getPlatformDrives() ([]DriveInfo, error) {
	mask, err := windows.GetLogicalDrives()
	if err != nil {
		return nil, fmt.Errorf("get logical drives: %w", err)
	}

	var drives []DriveInfo
	for i := 0; i < 26; i++ {
		if mask&(1<<uint(i)) == 0 {
			continue
		}
		letter := rune('A' + i)
		path := fmt.Sprintf("%c:\\", letter)

		// Card readers and optical drives without media fail here
		info, err := os.Stat(path)
		if err != nil || !info.IsDir() {
			continue
		}

		name := fmt.Sprintf("Drive %c", letter)
		if label := volumeLabel(path); label != "" {
			name = fmt.Sprintf("Drive %c (%s)", letter, label)
		}

		drive := DriveInfo{Path: path, Name: name}
		drive.TotalBytes, drive.FreeBytes = GetDiskSpace(path)
		drives = append(drives, drive)
	}

	return drives, nil
}

// GetDiskSpace returns total and caller-available bytes for a drive
func GetDiskSpace(path string) (total, free uint64) {
	pathPtr, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return 0, 0
	}

	var freeAvailable, totalBytes, totalFree uint64
	if err := windows.GetDiskFreeSpaceEx(pathPtr, &freeAvailable, &totalBytes, &totalFree); err != nil {
		return 0, 0
	}
	return totalBytes, freeAvailable
}

func volumeLabel(path string) string {
	pathPtr, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return ""
	}

	buf := make([]uint16, windows.MAX_PATH+1)
	if err := windows.GetVolumeInformation(pathPtr, &buf[0], uint32(len(buf)), nil, nil, nil, nil, 0); err != nil {
		return ""
	}
	return windows.UTF16ToString(buf)
}
