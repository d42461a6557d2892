package scanner

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// mkdirs creates each slash-separated directory path below root
func mkdirs(t *testing.T, root string, dirs ...string) {
	t.Helper()
	for _, dir := range dirs {
		require.NoError(t, os.MkdirAll(filepath.Join(root, filepath.FromSlash(dir)), 0o755))
	}
}

// writeFile creates a file of n bytes below root
func writeFile(t *testing.T, root, name string, n int) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, make([]byte, n), 0o644))
}

// scan runs a fresh walker over roots
func scan(t *testing.T, opts Options, roots ...string) *Result {
	t.Helper()
	result, err := NewWalker(opts).Scan(context.Background(), roots)
	require.NoError(t, err)
	return result
}

func matchPaths(result *Result) []string {
	paths := make([]string, 0, len(result.Matches))
	for _, m := range result.Matches {
		paths = append(paths, m.NodeModulesPath)
	}
	return paths
}
