//go:build darwin

package scanner

import (
	"io/fs"
	"syscall"
)

var platformRootSkipNames []string

func platformSkipPaths() []string {
	return []string{
		"/System",
		"/dev",
		"/cores",
		"/Network",
		"/private/var/vm",
		"/private/var/db",
	}
}

func isVirtualFS(path string) bool {
	var stat syscall.Statfs_t
	if err := syscall.Statfs(path, &stat); err != nil {
		return false
	}
	switch fsTypeName(stat.Fstypename[:]) {
	case "devfs", "autofs", "nullfs", "mtmfs":
		return true
	}
	return false
}

func fsTypeName(arr []int8) string {
	b := make([]byte, 0, len(arr))
	for _, v := range arr {
		if v == 0 {
			break
		}
		b = append(b, byte(v))
	}
	return string(b)
}

func isHiddenSystem(fs.FileInfo) bool {
	return false
}
