package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title       lipgloss.Style
	Dim         lipgloss.Style
	Status      lipgloss.Style
	Filter      lipgloss.Style
	Help        lipgloss.Style
	Main        lipgloss.Style
	Scroll      lipgloss.Style
	Highlight   lipgloss.Style
	Cursor      lipgloss.Style
	Checked     lipgloss.Style
	Badge       lipgloss.Style
	Variation   lipgloss.Style
	SKU         lipgloss.Style
	Price       lipgloss.Style
	StatusError lipgloss.Style
	HelpBox     lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		Dim: lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1),
		Filter:      lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Help:        lipgloss.NewStyle().Faint(true),
		Main:        lipgloss.NewStyle().Padding(1, 2),
		Scroll:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Highlight:   lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		Cursor:      lipgloss.NewStyle().Background(lipgloss.Color("238")),
		Checked:     lipgloss.NewStyle().Foreground(lipgloss.Color("78")), // green
		Badge:       lipgloss.NewStyle().Foreground(lipgloss.Color("51")),  // cyan
		Variation:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		SKU:         lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Price:       lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		StatusError: lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		HelpBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(1, 2),
	}
}
