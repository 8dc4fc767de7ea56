package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width          int
	Height         int
	Rows           []ProductRow
	Highlight      Highlighter
	CatalogSize    int
	SelectedCount  int
	SingleSelect   bool
	FilterQuery    string
	InFilterMode   bool
	FilterPrompt   string
	TextInput      string // rendered text input while filtering
	ViewportOffset int
	ViewportHeight int
	StatusMessage  string
	StatusIsError  bool
	ShowHelp       bool
	HelpContent    string
	HelpModel      help.Model
	KeyBindings    help.KeyMap
}

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	productRend *ProductRenderer
}

// NewRenderer creates a new renderer
func NewRenderer(showSKU, showPrice, single bool) *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:      styles,
		productRend: NewProductRenderer(styles, showSKU, showPrice, single),
	}
}

// Styles exposes the renderer's styles
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	if state.ShowHelp {
		return r.styles.Main.Render(r.styles.HelpBox.Render(state.HelpContent))
	}

	content := &strings.Builder{}

	content.WriteString(r.renderTitle(state))
	content.WriteString("\n")

	if len(state.Rows) == 0 {
		if state.CatalogSize == 0 {
			content.WriteString(r.styles.Dim.Render("The catalog is empty."))
		} else {
			content.WriteString(r.styles.Dim.Render("No products match the filter."))
		}
		content.WriteString("\n")
	} else {
		content.WriteString(r.renderRows(state))
	}

	content.WriteString(r.renderStatus(state))

	if state.InFilterMode {
		content.WriteString("\n")
		content.WriteString(r.styles.Filter.Render(state.FilterPrompt))
		content.WriteString(state.TextInput)
	} else if state.KeyBindings != nil {
		content.WriteString("\n")
		content.WriteString(state.HelpModel.View(state.KeyBindings))
	}

	return r.styles.Main.Render(content.String())
}

func (r *Renderer) renderTitle(state ViewState) string {
	logo := r.styles.Title.Render("prodpick")
	if state.FilterQuery == "" || state.InFilterMode {
		return logo
	}

	filterText := r.styles.Filter.Render(fmt.Sprintf("[Filter: %s]", state.FilterQuery))
	// Main adds 2 columns of padding on each side
	gap := state.Width - 4 - lipgloss.Width(logo) - lipgloss.Width(filterText)
	if gap < 1 {
		gap = 1
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, logo, strings.Repeat(" ", gap), filterText)
}

func (r *Renderer) renderRows(state ViewState) string {
	var b strings.Builder

	start := state.ViewportOffset
	if start < 0 {
		start = 0
	}
	end := len(state.Rows)
	if state.ViewportHeight > 0 && start+state.ViewportHeight < end {
		end = start + state.ViewportHeight
	}
	if start > end {
		start = end
	}

	if start > 0 {
		b.WriteString(r.styles.Scroll.Render(fmt.Sprintf("↑ %d more", start)))
		b.WriteString("\n")
	}
	for _, row := range state.Rows[start:end] {
		b.WriteString(r.productRend.RenderProduct(row, state.Highlight))
		b.WriteString("\n")
	}
	if end < len(state.Rows) {
		b.WriteString(r.styles.Scroll.Render(fmt.Sprintf("↓ %d more", len(state.Rows)-end)))
		b.WriteString("\n")
	}

	return b.String()
}

func (r *Renderer) renderStatus(state ViewState) string {
	if state.StatusMessage != "" {
		if state.StatusIsError {
			return r.styles.StatusError.Render(state.StatusMessage)
		}
		return r.styles.Status.Render(state.StatusMessage)
	}

	shown := fmt.Sprintf("%d of %d products", len(state.Rows), state.CatalogSize)
	var picked string
	switch {
	case state.SingleSelect && state.SelectedCount > 0:
		picked = "1 selected"
	case state.SingleSelect:
		picked = "nothing selected"
	default:
		picked = fmt.Sprintf("%d selected", state.SelectedCount)
	}
	return r.styles.Status.Render(shown + " · " + picked)
}

// KeyMap lists the bindings shown in the short help bar
type KeyMap struct {
	Up, Down, Toggle, All, Filter, Confirm, Help, Quit key.Binding
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.All, k.Filter, k.Confirm, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Toggle, k.All},
		{k.Filter, k.Confirm, k.Help, k.Quit},
	}
}

// DefaultKeyMap returns the bindings of normal mode. In single mode the
// select-all binding is disabled.
func DefaultKeyMap(single bool) KeyMap {
	km := KeyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:  key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "toggle")),
		All:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "select all")),
		Filter:  key.NewBinding(key.WithKeys("/", "F"), key.WithHelp("/", "filter")),
		Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
	if single {
		km.All.SetEnabled(false)
	}
	return km
}
