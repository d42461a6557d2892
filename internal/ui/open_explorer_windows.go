//go:build windows

package ui

import (
	"os/exec"
	"strings"
)

// openInFileManager opens the given path in Windows Explorer
func openInFileManager(path string) error {
	// explorer needs "C:\" rather than "C:" for a drive root
	if len(path) == 2 && path[1] == ':' {
		path += `\`
	}
	cmd := exec.Command("explorer.exe", strings.ReplaceAll(path, "/", `\`))
	return cmd.Start()
}
