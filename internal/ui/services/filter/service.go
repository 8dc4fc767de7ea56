package filter

import (
	"strings"

	"go.uber.org/zap"

	"prodpick/internal/catalog"
	"prodpick/internal/domain"
	"prodpick/internal/eventbus"
)

// Service keeps the current query and the products matching it
type Service struct {
	state   *State
	bus     eventbus.EventBus
	matcher *catalog.Matcher
	store   catalog.ProductStore
	logger  *zap.Logger
}

// NewService creates a filter service showing the whole catalog
func NewService(store catalog.ProductStore, matcher *catalog.Matcher, bus eventbus.EventBus, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		state:   &State{},
		bus:     bus,
		matcher: matcher,
		store:   store,
		logger:  logger.Named("filter"),
	}
	s.state.Matches = catalog.GroupVariations(store, store.All())
	return s
}

// SetQuery applies a new query. Setting the same query again is a no-op.
func (s *Service) SetQuery(query string) {
	if query == s.state.Query {
		return
	}
	s.state.Query = query
	s.apply()
}

// Refresh recomputes matches, e.g. after the catalog changed
func (s *Service) Refresh() {
	s.apply()
}

// Clear resets the query
func (s *Service) Clear() {
	s.SetQuery("")
}

// Query returns the raw query as typed
func (s *Service) Query() string {
	return s.state.Query
}

// IsActive reports whether the query narrows the list. Blank queries match
// everything and do not count.
func (s *Service) IsActive() bool {
	return strings.TrimSpace(s.state.Query) != ""
}

// Matches returns the matching products in catalog order, with each
// variable product followed by its matching variations
func (s *Service) Matches() []domain.Product {
	return s.state.Matches
}

// MatchCount returns the number of matches
func (s *Service) MatchCount() int {
	return len(s.state.Matches)
}

// At returns the match at index
func (s *Service) At(index int) (domain.Product, bool) {
	if index < 0 || index >= len(s.state.Matches) {
		return domain.Product{}, false
	}
	return s.state.Matches[index], true
}

// VisibleIDs returns the ids of all matches in order
func (s *Service) VisibleIDs() []domain.ProductID {
	ids := make([]domain.ProductID, 0, len(s.state.Matches))
	for _, p := range s.state.Matches {
		ids = append(ids, p.ID)
	}
	return ids
}

// Highlight splits name around the first occurrence of the query so the
// view can emphasise it. ok is false when nothing should be highlighted.
func (s *Service) Highlight(name string) (before, match, after string, ok bool) {
	q := strings.TrimSpace(s.state.Query)
	if q == "" {
		return name, "", "", false
	}
	foldedName := s.matcher.Fold(name)
	idx := strings.Index(foldedName, s.matcher.Fold(q))
	// Folding can change byte lengths; only highlight when offsets line up
	if idx < 0 || len(foldedName) != len(name) {
		return name, "", "", false
	}
	end := idx + len(s.matcher.Fold(q))
	return name[:idx], name[idx:end], name[end:], true
}

func (s *Service) apply() {
	matches := s.matcher.Filter(s.store.All(), s.state.Query)
	s.state.Matches = catalog.GroupVariations(s.store, matches)

	s.logger.Debug("filter applied",
		zap.String("query", s.state.Query),
		zap.Int("matches", len(s.state.Matches)))

	if s.bus != nil {
		s.bus.Publish(eventbus.FilterChangedEvent{
			Query:      s.state.Query,
			MatchCount: len(s.state.Matches),
		})
	}
}
