package filter

import "prodpick/internal/domain"

// State holds filter state
type State struct {
	Query   string
	Matches []domain.Product // catalog order
}
