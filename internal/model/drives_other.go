//go:build !windows && !darwin && !linux

package model

func getPlatformDrives() ([]DriveInfo, error) {
	drives := []DriveInfo{{Path: "/", Name: "Root Directory"}}
	drives = append(drives, mountDirs("/media", "Mount")...)
	drives = append(drives, mountDirs("/mnt", "Mount")...)
	return drives, nil
}
