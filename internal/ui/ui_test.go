package ui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lumipallolabs/nodesweep/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatSize(t *testing.T) {
	tests := []struct {
		bytes uint64
		want  string
	}{
		{0, "0B"},
		{1023, "1023B"},
		{1024, "1.0KB"},
		{1536, "1.5KB"},
		{5 * 1024 * 1024, "5.0MB"},
		{3 * 1024 * 1024 * 1024, "3.0GB"},
		{2 * 1024 * 1024 * 1024 * 1024, "2.0TB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatSize(tt.bytes))
	}
}

func TestFormatCount(t *testing.T) {
	assert.Equal(t, "0", FormatCount(0))
	assert.Equal(t, "999", FormatCount(999))
	assert.Equal(t, "1,000", FormatCount(1000))
	assert.Equal(t, "123,456", FormatCount(123456))
	assert.Equal(t, "1,234,567", FormatCount(1234567))
}

func TestTruncatePath(t *testing.T) {
	assert.Equal(t, "/short", truncatePath("/short", 20))
	got := truncatePath("/a/very/long/path/to/project", 10)
	assert.Equal(t, 10, len([]rune(got)))
	assert.True(t, strings.HasPrefix(got, "…"))
	assert.True(t, strings.HasSuffix(got, "project"))
}

func TestScanViewAbortKey(t *testing.T) {
	aborts := 0
	v := NewScanView([]string{"/r"}, func() { aborts++ })

	m, _ := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.Equal(t, 1, aborts, "abort is requested once")
	assert.Contains(t, m.View(), "Aborting")

	m, cmd := m.Update(DoneMsg{Aborted: true})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.True(t, m.(ScanView).Aborted())
	assert.Contains(t, m.View(), "Scan aborted")
}

func TestScanViewRendersProgress(t *testing.T) {
	v := NewScanView([]string{"/r"}, nil)
	m, _ := v.Update(ProgressMsg{Progress: model.ScanProgress{
		CurrentFolder:         "/r/projects/app",
		FoldersScanned:        1500,
		TotalFoldersEstimated: 3000,
		NodeModulesFound:      4,
		DirectoriesSkipped:    2,
	}})
	m, _ = m.Update(RootErrorMsg{Err: model.RootError{Root: "/gone", Err: assert.AnError}})

	view := m.View()
	assert.Contains(t, view, "1,500 / ~3,000 (50%)")
	assert.Contains(t, view, "4 node_modules")
	assert.Contains(t, view, "/r/projects/app")
	assert.Contains(t, view, "/gone")
	assert.Contains(t, view, "abort scan")

	m, _ = m.Update(DoneMsg{})
	view = m.View()
	assert.Contains(t, view, "Scan complete")
	assert.NotContains(t, view, "/r/projects/app")
}

func TestOpenInFileManagerRejectsFiles(t *testing.T) {
	err := OpenInFileManager(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
