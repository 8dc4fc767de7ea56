package selection

import (
	"prodpick/internal/domain"
	itemset "prodpick/internal/selection"
)

// State holds selection state
type State struct {
	Value itemset.Selection[domain.ProductID]
}
