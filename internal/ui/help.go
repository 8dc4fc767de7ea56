package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"
)

// helpPagerMsg contains the result of a help pager command
type helpPagerMsg struct {
	err error
}

type helpEntry struct {
	keys string
	desc string
}

type helpSection struct {
	title   string
	entries []helpEntry
}

// HelpRenderer handles help content rendering
type HelpRenderer struct {
	single bool
}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer(single bool) *HelpRenderer {
	return &HelpRenderer{single: single}
}

func (r *HelpRenderer) sections() []helpSection {
	selection := helpSection{
		title: "Selection",
		entries: []helpEntry{
			{"Space, x", "Toggle the product under the cursor"},
			{"a", "Select every visible product"},
			{"A", "Deselect everything"},
			{"Esc", "Clear the filter, then the selection"},
		},
	}
	if r.single {
		selection.entries = []helpEntry{
			{"Space, x", "Pick the product under the cursor"},
			{"A", "Clear the pick"},
			{"Esc", "Clear the filter, then the pick"},
		}
	}

	return []helpSection{
		{
			title: "Navigation",
			entries: []helpEntry{
				{"↑/↓, j/k", "Move up/down"},
				{"PgUp/PgDn", "Page up/down"},
				{"gg/G", "Go to top/bottom"},
			},
		},
		selection,
		{
			title: "Filter",
			entries: []helpEntry{
				{"/, F", "Filter products by name"},
				{"Enter", "Keep the filter"},
				{"Esc", "Cancel editing"},
			},
		},
		{
			title: "Other",
			entries: []helpEntry{
				{"Enter", "Confirm and print the selection"},
				{"?", "Toggle this help"},
				{"H", "Open this help in a pager"},
				{"q", "Quit without printing"},
			},
		},
	}
}

// RenderHelpContent renders the help information
func (r *HelpRenderer) RenderHelpContent() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220")).
		Width(12)

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	var help strings.Builder
	help.WriteString(titleStyle.Render("prodpick Help"))
	help.WriteString("\n")

	for i, section := range r.sections() {
		if i > 0 {
			help.WriteString("\n")
		}
		help.WriteString(sectionStyle.Render(section.title))
		help.WriteString("\n")
		for _, e := range section.entries {
			help.WriteString(fmt.Sprintf("  %s %s\n", keyStyle.Render(e.keys), descStyle.Render(e.desc)))
		}
	}

	help.WriteString("\n")
	help.WriteString(lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241")).
		Render("  Filtering matches product names only; case is ignored."))

	return help.String()
}

// HelpOps handles help operations
type HelpOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewHelpOps creates a new help operations instance
func NewHelpOps(program *tea.Program) *HelpOps {
	return &HelpOps{
		program: program,
	}
}

// ShowHelpInPager shows help content using ov pager
func (h *HelpOps) ShowHelpInPager(helpContent string) error {
	if h.program == nil {
		return fmt.Errorf("program not set")
	}

	// Release terminal control to run ov
	if err := h.program.ReleaseTerminal(); err != nil {
		return err
	}

	defer func() {
		// Let ov exit fully before taking the terminal back
		time.Sleep(100 * time.Millisecond)
		_ = h.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(helpContent))
	if err != nil {
		return err
	}

	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}
