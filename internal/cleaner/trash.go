package cleaner

import (
	"github.com/Bios-Marcel/wastebasket/v2"
)

// Trasher moves a path to a reversible trash location
type Trasher interface {
	Trash(path string) error
}

// TrashFunc adapts a function to the Trasher interface
type TrashFunc func(path string) error

// Trash calls f(path)
func (f TrashFunc) Trash(path string) error {
	return f(path)
}

// SystemTrash uses the desktop trash: the Recycle Bin on Windows, the Finder
// trash on macOS and the freedesktop.org trash elsewhere
type SystemTrash struct{}

// Trash moves path to the system trash
func (SystemTrash) Trash(path string) error {
	return wastebasket.Trash(path)
}
