//go:build !windows

package scanner

import (
	"io/fs"
	"syscall"
)

// fileID is a stable filesystem identity (device + inode)
type fileID struct {
	dev uint64
	ino uint64
}

// dirIdentity returns the identity of a directory from its stat info
func dirIdentity(_ string, info fs.FileInfo) (fileID, bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return fileID{}, false
	}
	return fileID{dev: uint64(stat.Dev), ino: uint64(stat.Ino)}, true
}

// deviceOf returns the device a file lives on
func deviceOf(info fs.FileInfo) uint64 {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return 0
	}
	return uint64(stat.Dev)
}

// hardLinkID returns the identity of a file with more than one link, so the
// size walk counts its bytes once
func hardLinkID(info fs.FileInfo) (fileID, bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok || stat.Nlink <= 1 {
		return fileID{}, false
	}
	return fileID{dev: uint64(stat.Dev), ino: uint64(stat.Ino)}, true
}
