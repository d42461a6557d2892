//go:build windows

package scanner

import (
	"io/fs"
	"syscall"

	"golang.org/x/sys/windows"
)

// platformRootSkipNames are system folders found at the top of a drive
var platformRootSkipNames = []string{
	"Windows",
	"Program Files",
	"Program Files (x86)",
	"ProgramData",
	"System Volume Information",
	"Recovery",
	"$WinREAgent",
}

func platformSkipPaths() []string {
	return nil
}

func isVirtualFS(string) bool {
	return false
}

// isHiddenSystem reports directories flagged both hidden and system, which
// Explorer treats as protected OS folders
func isHiddenSystem(info fs.FileInfo) bool {
	if info == nil {
		return false
	}
	attrs, ok := info.Sys().(*syscall.Win32FileAttributeData)
	if !ok {
		return false
	}
	const mask = windows.FILE_ATTRIBUTE_HIDDEN | windows.FILE_ATTRIBUTE_SYSTEM
	return attrs.FileAttributes&mask == mask
}
