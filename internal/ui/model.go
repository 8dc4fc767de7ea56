package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"prodpick/internal/catalog"
	"prodpick/internal/config"
	"prodpick/internal/domain"
	"prodpick/internal/eventbus"
	"prodpick/internal/ui/input"
	inputtypes "prodpick/internal/ui/input/types"
	"prodpick/internal/ui/services/filter"
	"prodpick/internal/ui/services/selection"
	"prodpick/internal/ui/views"
	itemset "prodpick/internal/selection"
)

// Lines used by everything except the product list: padding, title,
// status line and help bar
const chromeHeight = 8

// EventMsg carries a bus event into the Bubble Tea loop
type EventMsg struct {
	Event eventbus.DomainEvent
}

// Model represents the UI state
type Model struct {
	bus    eventbus.EventBus
	config *config.Config
	logger *zap.Logger

	store     catalog.ProductStore
	filter    *filter.Service
	selection *selection.Service

	inputHandler *input.Handler
	renderer     *views.Renderer
	helpRenderer *HelpRenderer
	help         help.Model
	keys         views.KeyMap

	width          int
	height         int
	cursor         int
	viewportOffset int
	viewportHeight int
	showHelp       bool
	statusMessage  string
	statusIsError  bool
	confirmed      bool

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model over the products in store, starting
// from initial
func NewModel(cfg *config.Config, store catalog.ProductStore, matcher *catalog.Matcher,
	bus eventbus.EventBus, initial itemset.Selection[domain.ProductID], logger *zap.Logger) *Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	single := cfg.IsSingleSelect()

	return &Model{
		bus:            bus,
		config:         cfg,
		logger:         logger.Named("ui"),
		store:          store,
		filter:         filter.NewService(store, matcher, bus, logger),
		selection:      selection.NewService(bus, single, initial, logger),
		inputHandler:   input.New(),
		renderer:       views.NewRenderer(cfg.UISettings.ShowSKU, cfg.UISettings.ShowPrice, single),
		helpRenderer:   NewHelpRenderer(single),
		help:           help.New(),
		keys:           views.DefaultKeyMap(single),
		viewportHeight: 20, // Updated on first WindowSizeMsg
	}
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
}

// Result returns the selection and whether the user confirmed it
func (m *Model) Result() (itemset.Selection[domain.ProductID], bool) {
	return m.selection.Selection(), m.confirmed
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.updateViewportHeight()
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			switch msg.String() {
			case "esc", "?", "q":
				m.showHelp = false
			case "ctrl+c":
				return m, tea.Quit
			}
			return m, nil
		}

		// Any key dismisses the last status message
		m.statusMessage = ""
		m.statusIsError = false

		ctx := &input.ModelContext{
			Cursor:    m.cursor,
			Filter:    m.filter,
			Selection: m.selection,
		}
		actions, cmd := m.inputHandler.HandleKey(msg, ctx)

		cmds := []tea.Cmd{}
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		for _, action := range actions {
			if actionCmd := m.processAction(action); actionCmd != nil {
				cmds = append(cmds, actionCmd)
			}
		}
		return m, tea.Batch(cmds...)

	case EventMsg:
		m.handleEvent(msg.Event)
		return m, nil

	case helpPagerMsg:
		if msg.err != nil {
			m.logger.Warn("help pager failed", zap.Error(msg.err))
			m.setError(fmt.Sprintf("Help pager failed: %v", msg.err))
		}
		return m, nil

	default:
		return m, m.inputHandler.Update(msg)
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	state := views.ViewState{
		Width:          m.width,
		Height:         m.height,
		Rows:           m.rows(),
		CatalogSize:    m.store.Len(),
		SelectedCount:  m.selection.GetCount(),
		SingleSelect:   m.selection.IsSingle(),
		FilterQuery:    m.filter.Query(),
		ViewportOffset: m.viewportOffset,
		ViewportHeight: m.viewportHeight,
		StatusMessage:  m.statusMessage,
		StatusIsError:  m.statusIsError,
		ShowHelp:       m.showHelp,
		HelpModel:      m.help,
		KeyBindings:    m.keys,
	}
	if m.filter.IsActive() {
		state.Highlight = m.filter.Highlight
	}
	if m.showHelp {
		state.HelpContent = m.helpRenderer.RenderHelpContent()
	}
	if ti := m.inputHandler.TextInput(); ti != nil {
		state.InFilterMode = true
		state.FilterPrompt = "Filter: "
		state.TextInput = ti.View()
	}

	return m.renderer.Render(state)
}

func (m *Model) rows() []views.ProductRow {
	matches := m.filter.Matches()
	rows := make([]views.ProductRow, 0, len(matches))
	for i, p := range matches {
		rows = append(rows, views.ProductRow{
			Product:  p,
			Checked:  m.selection.IsSelected(p.ID),
			OnCursor: i == m.cursor,
		})
	}
	return rows
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.NavigateAction:
		m.navigate(a.Direction)

	case inputtypes.ToggleSelectAction:
		m.selection.Toggle(a.ID)

	case inputtypes.SelectAllAction:
		ids := m.filter.VisibleIDs()
		m.selection.SelectAll(ids)
		m.setStatus(fmt.Sprintf("Selected %d visible products", len(ids)))

	case inputtypes.DeselectAllAction:
		m.selection.DeselectAll()

	case inputtypes.UpdateTextAction:
		m.applyQuery(a.Text)

	case inputtypes.SubmitTextAction:
		m.applyQuery(a.Text)

	case inputtypes.CancelTextAction:
		m.applyQuery(a.Restore)

	case inputtypes.ClearFilterAction:
		m.applyQuery("")

	case inputtypes.ToggleHelpAction:
		m.showHelp = !m.showHelp

	case inputtypes.OpenHelpPagerAction:
		if m.program == nil {
			return nil
		}
		return m.fetchHelpPager(m.helpRenderer.RenderHelpContent())

	case inputtypes.ConfirmAction:
		m.confirmed = true
		m.logger.Info("selection confirmed", zap.Stringer("selection", m.selection.Selection()))
		return tea.Quit

	case inputtypes.QuitAction:
		return tea.Quit
	}
	return nil
}

// fetchHelpPager returns a command that shows help using ov pager
func (m *Model) fetchHelpPager(helpContent string) tea.Cmd {
	ops := NewHelpOps(m.program)
	return func() tea.Msg {
		return helpPagerMsg{err: ops.ShowHelpInPager(helpContent)}
	}
}

// handleEvent processes domain events forwarded from the bus
func (m *Model) handleEvent(event eventbus.DomainEvent) {
	switch e := event.(type) {
	case eventbus.CatalogReloadedEvent:
		var missing []domain.ProductID
		for _, id := range m.selection.GetSelected() {
			if !m.store.Has(id) {
				missing = append(missing, id)
			}
		}
		if len(missing) > 0 {
			m.selection.RemoveFromSelection(missing)
		}
		m.filter.Refresh()
		m.clampCursor()
		m.setStatus(fmt.Sprintf("Catalog reloaded: %d products", len(e.Products)))

	case eventbus.ErrorEvent:
		msg := e.Message
		if e.Err != nil {
			msg = fmt.Sprintf("%s: %v", e.Message, e.Err)
		}
		m.setError(msg)
	}
}

func (m *Model) applyQuery(query string) {
	m.filter.SetQuery(query)
	m.cursor = 0
	m.viewportOffset = 0
}

func (m *Model) navigate(direction string) {
	last := m.filter.MatchCount() - 1
	switch direction {
	case "up":
		m.cursor--
	case "down":
		m.cursor++
	case "pageup":
		m.cursor -= m.viewportHeight
	case "pagedown":
		m.cursor += m.viewportHeight
	case "home":
		m.cursor = 0
	case "end":
		m.cursor = last
	}
	m.clampCursor()
}

func (m *Model) clampCursor() {
	last := m.filter.MatchCount() - 1
	if m.cursor > last {
		m.cursor = last
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.ensureSelectedVisible()
}

func (m *Model) ensureSelectedVisible() {
	if m.cursor < m.viewportOffset {
		m.viewportOffset = m.cursor
	}
	if m.viewportHeight > 0 && m.cursor >= m.viewportOffset+m.viewportHeight {
		m.viewportOffset = m.cursor - m.viewportHeight + 1
	}
}

func (m *Model) updateViewportHeight() {
	m.viewportHeight = m.height - chromeHeight
	if m.viewportHeight < 3 {
		m.viewportHeight = 3
	}
	m.ensureSelectedVisible()
}

func (m *Model) setStatus(msg string) {
	m.statusMessage = msg
	m.statusIsError = false
}

func (m *Model) setError(msg string) {
	m.statusMessage = msg
	m.statusIsError = true
}
