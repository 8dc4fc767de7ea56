package catalog

import "prodpick/internal/domain"

// GroupVariations reorders matches so every variable parent is directly
// followed by its matching variations, in the order the store lists them.
// Everything else keeps its relative order. A variation whose parent is
// not among the matches stays where it is.
func GroupVariations(store ProductStore, matches []domain.Product) []domain.Product {
	matched := make(map[domain.ProductID]domain.Product, len(matches))
	parents := make(map[domain.ProductID]struct{})
	for _, p := range matches {
		matched[p.ID] = p
		if IsVariableVariant(p) {
			parents[p.ID] = struct{}{}
		}
	}
	if len(parents) == 0 {
		return matches
	}

	grouped := make([]domain.Product, 0, len(matches))
	placed := make(map[domain.ProductID]struct{}, len(matches))
	for _, p := range matches {
		if _, ok := placed[p.ID]; ok {
			continue
		}
		if _, ok := parents[p.ParentID]; ok && p.IsVariation {
			continue
		}
		grouped = append(grouped, p)
		placed[p.ID] = struct{}{}

		if !IsVariableVariant(p) {
			continue
		}
		for _, v := range store.Variations(p.ID) {
			if _, ok := placed[v.ID]; ok {
				continue
			}
			if m, ok := matched[v.ID]; ok && m.IsVariation && m.ParentID == p.ID {
				grouped = append(grouped, m)
				placed[v.ID] = struct{}{}
			}
		}
	}

	// The store may have changed since matches were computed
	for _, p := range matches {
		if _, ok := placed[p.ID]; !ok {
			grouped = append(grouped, p)
		}
	}
	return grouped
}
