package selection

import (
	"sync"

	"go.uber.org/zap"

	"prodpick/internal/domain"
	"prodpick/internal/eventbus"
	itemset "prodpick/internal/selection"
)

// Service owns the picker's selection. Every change replaces the stored
// value with a new one derived by the itemset operations and publishes the
// difference on the bus.
type Service struct {
	mu     sync.RWMutex
	state  *State
	single bool
	bus    eventbus.EventBus
	logger *zap.Logger
}

// NewService creates a selection service seeded with initial. In single
// mode at most one product is kept, stored in the bare-identifier form.
func NewService(bus eventbus.EventBus, single bool, initial itemset.Selection[domain.ProductID], logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if single && initial.Len() > 1 {
		initial = itemset.Single(initial.IDs()[0])
	}
	return &Service{
		state:  &State{Value: initial},
		single: single,
		bus:    bus,
		logger: logger.Named("selection"),
	}
}

// Toggle selects id if it is not selected and deselects it otherwise
func (s *Service) Toggle(id domain.ProductID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if itemset.IsSelected(s.state.Value, id) {
		s.removeLocked([]domain.ProductID{id})
		return
	}
	s.addLocked([]domain.ProductID{id})
}

// Select adds id to the selection. In single mode it replaces the current
// product.
func (s *Service) Select(id domain.ProductID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addLocked([]domain.ProductID{id})
}

// Deselect removes id from the selection
func (s *Service) Deselect(id domain.ProductID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked([]domain.ProductID{id})
}

// SelectAll adds every id in order. Ignored in single mode.
func (s *Service) SelectAll(ids []domain.ProductID) {
	if s.single {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addLocked(ids)
}

// DeselectAll clears the selection
func (s *Service) DeselectAll() {
	s.mu.Lock()
	s.state.Value = itemset.Empty[domain.ProductID]()
	s.mu.Unlock()

	s.publish(eventbus.SelectionClearedEvent{})
}

// RemoveFromSelection drops ids that no longer exist, e.g. after a catalog
// reload
func (s *Service) RemoveFromSelection(ids []domain.ProductID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(ids)
}

// IsSelected checks if a product is selected
func (s *Service) IsSelected(id domain.ProductID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return itemset.IsSelected(s.state.Value, id)
}

// Selection returns the current value
func (s *Service) Selection() itemset.Selection[domain.ProductID] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Value
}

// GetSelected returns the selected ids in selection order
func (s *Service) GetSelected() []domain.ProductID {
	return s.Selection().IDs()
}

// GetCount returns the number of selected products
func (s *Service) GetCount() int {
	return s.Selection().Len()
}

// HasSelection returns true if anything is selected
func (s *Service) HasSelection() bool {
	return !s.Selection().IsEmpty()
}

// IsSingle reports whether the service keeps at most one product
func (s *Service) IsSingle() bool {
	return s.single
}

func (s *Service) addLocked(ids []domain.ProductID) {
	old := s.state.Value

	var next itemset.Selection[domain.ProductID]
	if s.single {
		if len(ids) == 0 {
			return
		}
		next = itemset.Single(ids[len(ids)-1])
	} else {
		next = itemset.Add(old, ids...)
	}

	s.commitLocked(old, next)
}

func (s *Service) removeLocked(ids []domain.ProductID) {
	old := s.state.Value
	next := itemset.Remove(old, ids...)
	if next.IsEmpty() {
		next = itemset.Empty[domain.ProductID]()
	}
	s.commitLocked(old, next)
}

// commitLocked stores next and publishes what changed, if anything
func (s *Service) commitLocked(old, next itemset.Selection[domain.ProductID]) {
	added := diff(next, old)
	removed := diff(old, next)
	s.state.Value = next

	if len(added) == 0 && len(removed) == 0 {
		return
	}

	s.logger.Debug("selection changed",
		zap.Stringer("selection", next),
		zap.Int("added", len(added)),
		zap.Int("removed", len(removed)))

	s.publish(eventbus.SelectionChangedEvent{
		Added:   added,
		Removed: removed,
		Total:   next.Len(),
	})
}

func (s *Service) publish(event eventbus.DomainEvent) {
	if s.bus != nil {
		s.bus.Publish(event)
	}
}

// diff returns the ids of a that are not in b, in a's order
func diff(a, b itemset.Selection[domain.ProductID]) []domain.ProductID {
	out := itemset.Remove(a, b.IDs()...)
	if out.IsEmpty() {
		return nil
	}
	return out.IDs()
}
