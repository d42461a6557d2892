//go:build darwin

package ui

import (
	"fmt"
	"os/exec"
)

// finderArgs asks open(1) for Finder explicitly so a folder with a bundle
// extension is browsed rather than launched
func finderArgs(path string) []string {
	return []string{"-a", "Finder", path}
}

// openInFileManager reveals the folder in Finder
func openInFileManager(path string) error {
	bin, err := exec.LookPath("open")
	if err != nil {
		return ErrNoFileManager
	}
	cmd := exec.Command(bin, finderArgs(path)...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start Finder: %w", err)
	}
	go cmd.Wait()
	return nil
}
