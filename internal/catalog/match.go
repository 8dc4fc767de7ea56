// Package catalog loads products and answers the questions the picker asks
// about them: does a product match the typed query, and what kind of
// product is it.
package catalog

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"prodpick/internal/domain"
)

// Matcher compares product names against a typed query using the case
// rules of one locale. It holds no mutable state and is safe for
// concurrent use.
type Matcher struct {
	tag language.Tag
}

// NewMatcher returns a matcher folding case with the rules of tag
func NewMatcher(tag language.Tag) *Matcher {
	return &Matcher{tag: tag}
}

// NewMatcherForLocale parses a BCP 47 tag such as "en" or "tr-TR"
func NewMatcherForLocale(locale string) (*Matcher, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	return NewMatcher(tag), nil
}

// Locale returns the tag the matcher folds with
func (m *Matcher) Locale() language.Tag {
	return m.tag
}

// Fold lowercases s for the matcher's locale.
func (m *Matcher) Fold(s string) string {
	// A Caser keeps per-call state, so one is built for every call.
	return cases.Lower(m.tag).String(s)
}

// MatchesQuery reports whether the trimmed, folded query occurs in the
// folded product name. An empty or blank query matches every product.
func (m *Matcher) MatchesQuery(p domain.Product, query string) bool {
	return m.contains(p, m.Fold(strings.TrimSpace(query)))
}

// Filter returns the products matching query in their original order
func (m *Matcher) Filter(products []domain.Product, query string) []domain.Product {
	folded := m.Fold(strings.TrimSpace(query))
	matches := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if m.contains(p, folded) {
			matches = append(matches, p)
		}
	}
	return matches
}

func (m *Matcher) contains(p domain.Product, foldedQuery string) bool {
	return strings.Contains(m.Fold(p.Name), foldedQuery)
}

// IsVariableVariant reports whether p is the parent record of a variable
// product. Variation records of that product are not.
func IsVariableVariant(p domain.Product) bool {
	return p.Type == domain.ProductVariable && !p.IsVariation
}
