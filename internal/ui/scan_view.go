package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lumipallolabs/nodesweep/internal/model"
)

// ProgressMsg delivers a progress snapshot to the scan view
type ProgressMsg struct {
	Progress model.ScanProgress
}

// RootErrorMsg reports a root that could not be scanned
type RootErrorMsg struct {
	Err model.RootError
}

// DoneMsg ends the scan view
type DoneMsg struct {
	Aborted bool
}

// Spinner frames
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerTickInterval = 80 * time.Millisecond

// minPathWidth keeps the current folder readable on narrow terminals
const minPathWidth = 20

// ScanView is the live progress display shown while a scan runs. It never
// touches the scan itself; abort is invoked when the user presses the abort
// key.
type ScanView struct {
	keys    KeyMap
	spinner spinner.Model
	abort   func()

	roots      []string
	progress   model.ScanProgress
	rootErrors []model.RootError
	started    time.Time
	aborting   bool
	done       bool
	aborted    bool

	width int
}

// NewScanView creates the view for a scan over roots
func NewScanView(roots []string, abort func()) ScanView {
	s := spinner.New()
	s.Spinner = spinner.Spinner{Frames: spinnerFrames, FPS: spinnerTickInterval}
	s.Style = lipgloss.NewStyle().Foreground(ColorCyan).Bold(true)

	return ScanView{
		keys:    DefaultKeyMap(),
		spinner: s,
		abort:   abort,
		roots:   roots,
		started: time.Now(),
		width:   80,
	}
}

// Init starts the spinner
func (v ScanView) Init() tea.Cmd {
	return v.spinner.Tick
}

// Update handles messages
func (v ScanView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		return v, nil

	case tea.KeyMsg:
		if key.Matches(msg, v.keys.Abort) && !v.aborting {
			v.aborting = true
			if v.abort != nil {
				v.abort()
			}
		}
		return v, nil

	case ProgressMsg:
		v.progress = msg.Progress
		return v, nil

	case RootErrorMsg:
		v.rootErrors = append(v.rootErrors, msg.Err)
		return v, nil

	case DoneMsg:
		v.done = true
		v.aborted = msg.Aborted
		return v, tea.Quit

	case spinner.TickMsg:
		if v.done {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd
	}
	return v, nil
}

// Aborted reports whether the scan ended by abort
func (v ScanView) Aborted() bool {
	return v.aborted
}

// View renders the progress panel
func (v ScanView) View() string {
	var b strings.Builder

	title := fmt.Sprintf("Scanning %s", describeRoots(v.roots))
	switch {
	case v.done && v.aborted:
		b.WriteString(WarnStyle.Render("■ Scan aborted"))
	case v.done:
		b.WriteString(FoundStyle.Render("✓ Scan complete"))
	case v.aborting:
		b.WriteString(v.spinner.View() + " " + WarnStyle.Render("Aborting"))
	default:
		b.WriteString(v.spinner.View() + " " + TitleStyle.Render(title))
	}
	b.WriteString(PathStyle.Render(fmt.Sprintf("  %s", time.Since(v.started).Truncate(100*time.Millisecond))))
	b.WriteString("\n\n")

	p := v.progress
	folders := FormatCount(p.FoldersScanned)
	if !v.done && p.TotalFoldersEstimated > 0 {
		folders += fmt.Sprintf(" / ~%s (%.0f%%)", FormatCount(p.TotalFoldersEstimated), p.Percent())
	}
	b.WriteString(row("Folders", ValueStyle.Render(folders)))
	b.WriteString(row("Found", FoundStyle.Render(FormatCount(p.NodeModulesFound)+" node_modules")))
	b.WriteString(row("Skipped", ValueStyle.Render(FormatCount(p.DirectoriesSkipped))))
	if !v.done && p.CurrentFolder != "" {
		b.WriteString(row("Current", PathStyle.Render(truncatePath(p.CurrentFolder, v.pathWidth()))))
	}
	for _, rootErr := range v.rootErrors {
		b.WriteString(ErrorStyle.Render("✗ "+rootErr.Error()) + "\n")
	}

	if !v.done {
		b.WriteString("\n")
		for _, binding := range v.keys.ShortHelp() {
			help := binding.Help()
			b.WriteString(HelpStyle.Render(HelpKey.Render(help.Key) + " " + help.Desc))
		}
	}

	return PanelStyle.Render(b.String()) + "\n"
}

func (v ScanView) pathWidth() int {
	// border, padding and label column
	return max(v.width-4-LabelStyle.GetWidth(), minPathWidth)
}

func row(label, value string) string {
	return LabelStyle.Render(label) + value + "\n"
}

func describeRoots(roots []string) string {
	switch len(roots) {
	case 0:
		return ""
	case 1:
		return roots[0]
	default:
		return fmt.Sprintf("%d roots", len(roots))
	}
}

// truncatePath shortens path to width runes, keeping its tail
func truncatePath(path string, width int) string {
	runes := []rune(path)
	if len(runes) <= width {
		return path
	}
	return "…" + string(runes[len(runes)-width+1:])
}
