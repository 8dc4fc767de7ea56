package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prodpick/internal/domain"
	"prodpick/internal/ui/input/types"
)

type fakeContext struct {
	index    int
	items    []domain.ProductID
	selected int
	query    string
	single   bool
}

func (c *fakeContext) CurrentIndex() int   { return c.index }
func (c *fakeContext) TotalItems() int     { return len(c.items) }
func (c *fakeContext) HasSelection() bool  { return c.selected > 0 }
func (c *fakeContext) SelectedCount() int  { return c.selected }
func (c *fakeContext) IsFiltered() bool    { return c.query != "" }
func (c *fakeContext) FilterQuery() string { return c.query }
func (c *fakeContext) IsSingleSelect() bool {
	return c.single
}

func (c *fakeContext) CurrentProductID() (domain.ProductID, bool) {
	if c.index < 0 || c.index >= len(c.items) {
		return 0, false
	}
	return c.items[c.index], true
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestSpaceTogglesCurrentProduct(t *testing.T) {
	h := New()
	ctx := &fakeContext{index: 1, items: []domain.ProductID{10, 20}}

	actions, _ := h.HandleKey(tea.KeyMsg{Type: tea.KeySpace}, ctx)

	require.Len(t, actions, 1)
	assert.Equal(t, types.ToggleSelectAction{ID: 20}, actions[0])
}

func TestSpaceOnEmptyListDoesNothing(t *testing.T) {
	h := New()
	actions, _ := h.HandleKey(tea.KeyMsg{Type: tea.KeySpace}, &fakeContext{})
	assert.Empty(t, actions)
}

func TestSelectAllDisabledInSingleMode(t *testing.T) {
	h := New()

	actions, _ := h.HandleKey(runes("a"), &fakeContext{items: []domain.ProductID{1}})
	assert.Equal(t, []types.Action{types.SelectAllAction{}}, actions)

	actions, _ = h.HandleKey(runes("a"), &fakeContext{items: []domain.ProductID{1}, single: true})
	assert.Empty(t, actions)
}

func TestFilterModeTypingAndSubmit(t *testing.T) {
	h := New()
	ctx := &fakeContext{items: []domain.ProductID{1}}

	_, cmd := h.HandleKey(runes("/"), ctx)
	assert.NotNil(t, cmd)
	require.Equal(t, types.ModeFilter, h.CurrentMode())
	require.NotNil(t, h.TextInput())

	var last []types.Action
	for _, r := range "red" {
		last, _ = h.HandleKey(runes(string(r)), ctx)
	}
	require.NotEmpty(t, last)
	assert.Equal(t, types.UpdateTextAction{Text: "red"}, last[len(last)-1])

	actions, _ := h.HandleKey(tea.KeyMsg{Type: tea.KeyEnter}, ctx)
	assert.Contains(t, actions, types.Action(types.SubmitTextAction{Text: "red", Mode: types.ModeFilter}))
	assert.Equal(t, types.ModeNormal, h.CurrentMode())
	assert.Nil(t, h.TextInput())
}

func TestFilterModeEscRestoresPreviousQuery(t *testing.T) {
	h := New()
	ctx := &fakeContext{query: "mug"}

	h.HandleKey(runes("F"), ctx)
	assert.Equal(t, "mug", h.TextInput().Value(), "filter starts from the active query")

	actions, _ := h.HandleKey(tea.KeyMsg{Type: tea.KeyEsc}, ctx)
	assert.Contains(t, actions, types.Action(types.CancelTextAction{Restore: "mug"}))
	assert.Equal(t, types.ModeNormal, h.CurrentMode())
}

func TestEscInNormalMode(t *testing.T) {
	h := New()
	esc := tea.KeyMsg{Type: tea.KeyEsc}

	actions, _ := h.HandleKey(esc, &fakeContext{query: "x", selected: 2})
	assert.Equal(t, []types.Action{types.ClearFilterAction{}}, actions)

	actions, _ = h.HandleKey(esc, &fakeContext{selected: 2})
	assert.Equal(t, []types.Action{types.DeselectAllAction{}}, actions)

	actions, _ = h.HandleKey(esc, &fakeContext{})
	assert.Empty(t, actions)
}

func TestDoubleGJumpsHome(t *testing.T) {
	h := New()
	ctx := &fakeContext{}

	actions, _ := h.HandleKey(runes("g"), ctx)
	assert.Empty(t, actions)

	actions, _ = h.HandleKey(runes("g"), ctx)
	assert.Equal(t, []types.Action{types.NavigateAction{Direction: "home"}}, actions)
}
