//go:build !windows && !darwin

package ui

import "os/exec"

// fileManagers are tried in order; xdg-open defers to the desktop default
var fileManagers = []string{"xdg-open", "nautilus", "dolphin", "thunar", "pcmanfm"}

// openInFileManager opens the given path with the first available file
// manager
func openInFileManager(path string) error {
	for _, name := range fileManagers {
		bin, err := exec.LookPath(name)
		if err != nil {
			continue
		}
		cmd := exec.Command(bin, path)
		if err := cmd.Start(); err != nil {
			continue
		}
		// Reap the child without blocking the caller
		go cmd.Wait()
		return nil
	}
	return ErrNoFileManager
}
