//go:build windows

package scanner

import (
	"io/fs"

	"golang.org/x/sys/windows"
)

// fileID is a stable filesystem identity (volume serial + file index)
type fileID struct {
	dev uint64
	ino uint64
}

// dirIdentity opens the directory, following junctions and symlinks, and
// reads its volume serial and file index
func dirIdentity(path string, _ fs.FileInfo) (fileID, bool) {
	pathPtr, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return fileID{}, false
	}

	handle, err := windows.CreateFile(
		pathPtr,
		0,
		windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE|windows.FILE_SHARE_DELETE,
		nil,
		windows.OPEN_EXISTING,
		windows.FILE_FLAG_BACKUP_SEMANTICS,
		0,
	)
	if err != nil {
		return fileID{}, false
	}
	defer windows.CloseHandle(handle)

	var data windows.ByHandleFileInformation
	if err := windows.GetFileInformationByHandle(handle, &data); err != nil {
		return fileID{}, false
	}

	return fileID{
		dev: uint64(data.VolumeSerialNumber),
		ino: uint64(data.FileIndexHigh)<<32 | uint64(data.FileIndexLow),
	}, true
}

// deviceOf is always 0 on Windows: drives are separate roots and there are
// no pseudo filesystems to detect at mount boundaries
func deviceOf(fs.FileInfo) uint64 {
	return 0
}

// hardLinkID is not tracked on Windows; the size walk counts every file
func hardLinkID(fs.FileInfo) (fileID, bool) {
	return fileID{}, false
}
