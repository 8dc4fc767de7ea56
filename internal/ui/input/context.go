package input

import (
	"prodpick/internal/domain"
	"prodpick/internal/ui/services/filter"
	"prodpick/internal/ui/services/selection"
)

// ModelContext implements the Context interface for the input handler
type ModelContext struct {
	Cursor    int
	Filter    *filter.Service
	Selection *selection.Service
}

// CurrentIndex returns the cursor position
func (c *ModelContext) CurrentIndex() int {
	return c.Cursor
}

// TotalItems returns the number of visible products
func (c *ModelContext) TotalItems() int {
	return c.Filter.MatchCount()
}

// HasSelection returns true if any products are selected
func (c *ModelContext) HasSelection() bool {
	return c.Selection.HasSelection()
}

// SelectedCount returns the number of selected products
func (c *ModelContext) SelectedCount() int {
	return c.Selection.GetCount()
}

// CurrentProductID returns the product under the cursor
func (c *ModelContext) CurrentProductID() (domain.ProductID, bool) {
	p, ok := c.Filter.At(c.Cursor)
	return p.ID, ok
}

func (c *ModelContext) IsFiltered() bool {
	return c.Filter.IsActive()
}

func (c *ModelContext) FilterQuery() string {
	return c.Filter.Query()
}

func (c *ModelContext) IsSingleSelect() bool {
	return c.Selection.IsSingle()
}
