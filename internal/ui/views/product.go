package views

import (
	"strings"

	"prodpick/internal/catalog"
	"prodpick/internal/domain"
)

// Highlighter splits a name around the part matching the active query
type Highlighter func(name string) (before, match, after string, ok bool)

// ProductRow is everything needed to draw one product line
type ProductRow struct {
	Product  domain.Product
	Checked  bool
	OnCursor bool
}

// ProductRenderer handles rendering of product rows
type ProductRenderer struct {
	styles    *Styles
	showSKU   bool
	showPrice bool
	single    bool
}

// NewProductRenderer creates a new product renderer
func NewProductRenderer(styles *Styles, showSKU, showPrice, single bool) *ProductRenderer {
	return &ProductRenderer{
		styles:    styles,
		showSKU:   showSKU,
		showPrice: showPrice,
		single:    single,
	}
}

// RenderProduct renders a single product line
func (r *ProductRenderer) RenderProduct(row ProductRow, highlight Highlighter) string {
	p := row.Product
	var parts []string

	if p.IsVariation {
		parts = append(parts, "  ")
	}

	parts = append(parts, r.checkbox(row.Checked))

	name := r.renderName(p, highlight)
	if p.IsVariation {
		name = r.styles.Variation.Render("↳ ") + name
	}
	parts = append(parts, name)

	if catalog.IsVariableVariant(p) {
		parts = append(parts, r.styles.Badge.Render("[variable]"))
	}
	if r.showSKU && p.SKU != "" {
		parts = append(parts, r.styles.SKU.Render(p.SKU))
	}
	if r.showPrice && p.Price != "" {
		parts = append(parts, r.styles.Price.Render(p.Price))
	}

	line := strings.Join(parts, " ")
	if row.OnCursor {
		return r.styles.Cursor.Render(line)
	}
	return line
}

func (r *ProductRenderer) checkbox(checked bool) string {
	left, right := "[", "]"
	if r.single {
		left, right = "(", ")"
	}
	if checked {
		return r.styles.Checked.Render(left + "x" + right)
	}
	return left + " " + right
}

func (r *ProductRenderer) renderName(p domain.Product, highlight Highlighter) string {
	if highlight == nil {
		return p.Name
	}
	before, match, after, ok := highlight(p.Name)
	if !ok {
		return p.Name
	}
	return before + r.styles.Highlight.Render(match) + after
}
