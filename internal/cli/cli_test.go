package cli

import (
	"strings"
	"testing"

	"github.com/lumipallolabs/nodesweep/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePathList(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
		wantErr bool
	}{
		{
			name:    "scan json output",
			content: `[{"project_path":"/p/a","node_modules_path":"/p/a/node_modules","size":null}]`,
			want:    []string{"/p/a/node_modules"},
		},
		{
			name:    "json string array",
			content: `["/p/a/node_modules", "/p/b/node_modules"]`,
			want:    []string{"/p/a/node_modules", "/p/b/node_modules"},
		},
		{
			name:    "plain lines with comments",
			content: "# saved\n/p/a/node_modules\n\n  /p/b/node_modules  \n",
			want:    []string{"/p/a/node_modules", "/p/b/node_modules"},
		},
		{
			name:    "broken json",
			content: `[{"node_modules_path":`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parsePathList([]byte(tt.content))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfirm(t *testing.T) {
	for answer, want := range map[string]bool{
		"y\n":   true,
		"YES\n": true,
		"n\n":   false,
		"\n":    false,
		"":      false,
	} {
		got, err := confirm(strings.NewReader(answer), "")
		require.NoError(t, err)
		assert.Equal(t, want, got, "answer %q", answer)
	}
}

func TestPromptText(t *testing.T) {
	size := uint64(2048)
	matches := []model.Match{{NodeModulesPath: "/a/node_modules", Size: &size}}
	assert.Equal(t, "Move 1 node_modules (2.0KB) to the trash? [y/N] ", promptText(matches, true))
	assert.Equal(t, "Move 1 node_modules to the trash? [y/N] ", promptText(matches, false))
}

func TestScanFlagsRoots(t *testing.T) {
	f := scanFlags{drives: []string{"/mnt/data"}}
	roots, err := f.roots([]string{"/home/u/projects"})
	require.NoError(t, err)
	assert.Equal(t, []string{"/home/u/projects", "/mnt/data"}, roots)

	roots, err = (&scanFlags{}).roots(nil)
	require.NoError(t, err)
	require.Len(t, roots, 1, "defaults to the working directory")
}

func TestDriveRow(t *testing.T) {
	row := driveRow(model.DriveInfo{Path: "/", Name: "Root Directory", TotalBytes: 4096, FreeBytes: 1024})
	assert.Equal(t, []string{"Root Directory", "/", "4.0KB", "1.0KB", "75%"}, row)

	row = driveRow(model.DriveInfo{Path: "/mnt/x", Name: "Mount x"})
	assert.Equal(t, []string{"Mount x", "/mnt/x", "-", "-", "-"}, row)
}

func TestPlural(t *testing.T) {
	assert.Equal(t, "1 project", plural(1, "project"))
	assert.Equal(t, "3 projects", plural(3, "project"))
}
