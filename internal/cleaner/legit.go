package cleaner

import (
	"io"
	"os"
	"path/filepath"
	"strings"
)

// inspectLimit bounds how many entries the installed-tree check reads
const inspectLimit = 100

// installMarkers are files or directories package managers leave at the top
// of a node_modules they installed
var installMarkers = map[string]struct{}{
	".bin":               {},
	".package-lock.json": {},
	".modules.yaml":      {},
	".yarn-integrity":    {},
	".yarn-state.yml":    {},
	".pnpm":              {},
	"package.json":       {},
	"package-lock.json":  {},
}

// looksInstalled reports whether dir resembles a dependency tree: a known
// marker, a scoped @org directory or a package directory with a package.json
// among its first entries
func looksInstalled(dir string) (bool, error) {
	f, err := os.Open(dir)
	if err != nil {
		return false, err
	}
	defer f.Close()

	entries, err := f.ReadDir(inspectLimit)
	if err != nil && err != io.EOF {
		return false, err
	}

	for _, entry := range entries {
		name := entry.Name()
		if _, ok := installMarkers[name]; ok {
			return true, nil
		}
		if !entry.IsDir() {
			continue
		}
		if strings.HasPrefix(name, "@") {
			return true, nil
		}
		if _, err := os.Stat(filepath.Join(dir, name, "package.json")); err == nil {
			return true, nil
		}
	}
	return false, nil
}
