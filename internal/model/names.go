package model

import (
	"runtime"
	"strings"
)

// CaseInsensitiveNames is true on platforms whose default filesystems
// compare names case-insensitively
var CaseInsensitiveNames = runtime.GOOS == "windows" || runtime.GOOS == "darwin"

// IsNodeModulesName reports whether a directory name is node_modules using
// the platform's default name comparison
func IsNodeModulesName(name string) bool {
	if CaseInsensitiveNames {
		return strings.EqualFold(name, NodeModulesDir)
	}
	return name == NodeModulesDir
}
