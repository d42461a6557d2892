package ui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNoFileManager is returned when no known file manager is installed
var ErrNoFileManager = errors.New("no file manager found")

// OpenInFileManager opens the folder at path in the platform file manager.
// The file manager is started in the background and not waited for.
func OpenInFileManager(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s: not a directory", abs)
	}
	return openInFileManager(abs)
}
