package modes

import (
	"github.com/charmbracelet/bubbles/textinput"

	"prodpick/internal/ui/input/types"
)

// FilterMode narrows the product list while the user types
type FilterMode struct {
	TextInputMode
}

func NewFilterMode(ti *textinput.Model) *FilterMode {
	return &FilterMode{
		TextInputMode: NewTextInputMode(types.ModeFilter, "filter", "Filter: ", ti),
	}
}

// Enter starts from the active query so it can be refined
func (m *FilterMode) Enter(ctx types.Context) []types.Action {
	m.initial = ctx.FilterQuery()
	actions := m.TextInputMode.Enter(ctx)
	if m.textInput != nil {
		m.textInput.SetValue(m.initial)
		m.textInput.CursorEnd()
	}
	return actions
}
