//go:build !linux && !darwin && !windows

package scanner

import "io/fs"

var platformRootSkipNames []string

func platformSkipPaths() []string {
	return []string{"/proc", "/dev"}
}

func isVirtualFS(string) bool {
	return false
}

func isHiddenSystem(fs.FileInfo) bool {
	return false
}
