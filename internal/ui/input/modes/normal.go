package modes

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"prodpick/internal/ui/input/types"
)

// gg must be typed within this window
const doubleGWindow = 500 * time.Millisecond

type NormalMode struct {
	lastKeyWasG bool
	lastGTime   time.Time
	now         func() time.Time
}

func NewNormalMode() *NormalMode {
	return &NormalMode{now: time.Now}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	wasG := m.lastKeyWasG && m.now().Sub(m.lastGTime) < doubleGWindow
	m.lastKeyWasG = false

	switch msg.Type {
	case tea.KeyCtrlC:
		return []types.Action{types.QuitAction{Force: true}}, true

	case tea.KeyEsc:
		// Esc clears an active filter first, then the selection
		if ctx.IsFiltered() {
			return []types.Action{types.ClearFilterAction{}}, true
		}
		if ctx.HasSelection() {
			return []types.Action{types.DeselectAllAction{}}, true
		}
		return nil, false

	case tea.KeyUp:
		return []types.Action{types.NavigateAction{Direction: "up"}}, true

	case tea.KeyDown:
		return []types.Action{types.NavigateAction{Direction: "down"}}, true

	case tea.KeyPgUp:
		return []types.Action{types.NavigateAction{Direction: "pageup"}}, true

	case tea.KeyPgDown:
		return []types.Action{types.NavigateAction{Direction: "pagedown"}}, true

	case tea.KeyHome:
		return []types.Action{types.NavigateAction{Direction: "home"}}, true

	case tea.KeyEnd:
		return []types.Action{types.NavigateAction{Direction: "end"}}, true

	case tea.KeyEnter:
		return []types.Action{types.ConfirmAction{}}, true

	case tea.KeySpace:
		return m.toggleCurrent(ctx)
	}

	switch msg.String() {
	case "j":
		return []types.Action{types.NavigateAction{Direction: "down"}}, true

	case "k":
		return []types.Action{types.NavigateAction{Direction: "up"}}, true

	case "g":
		if wasG {
			return []types.Action{types.NavigateAction{Direction: "home"}}, true
		}
		m.lastKeyWasG = true
		m.lastGTime = m.now()
		return nil, true

	case "G":
		return []types.Action{types.NavigateAction{Direction: "end"}}, true

	case "x":
		return m.toggleCurrent(ctx)

	case "a":
		if ctx.IsSingleSelect() || ctx.TotalItems() == 0 {
			return nil, false
		}
		return []types.Action{types.SelectAllAction{}}, true

	case "A":
		return []types.Action{types.DeselectAllAction{}}, true

	case "/", "F":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeFilter}}, true

	case "?":
		return []types.Action{types.ToggleHelpAction{}}, true

	case "H":
		return []types.Action{types.OpenHelpPagerAction{}}, true

	case "q":
		return []types.Action{types.QuitAction{}}, true
	}

	return nil, false
}

func (m *NormalMode) toggleCurrent(ctx types.Context) ([]types.Action, bool) {
	id, ok := ctx.CurrentProductID()
	if !ok {
		return nil, false
	}
	return []types.Action{types.ToggleSelectAction{ID: id}}, true
}
