package catalog

import (
	"errors"
	"sync"

	"prodpick/internal/domain"
)

// ErrProductNotFound is returned when an id is not in the catalog
var ErrProductNotFound = errors.New("product not found")

// ProductStore provides access to catalog data
type ProductStore interface {
	Get(id domain.ProductID) (domain.Product, error)
	All() []domain.Product
	Has(id domain.ProductID) bool
	Variations(parent domain.ProductID) []domain.Product
	Replace(products []domain.Product) (removed []domain.ProductID)
	Len() int
}

// MemoryProductStore is an in-memory implementation of ProductStore that
// keeps catalog order
type MemoryProductStore struct {
	mu       sync.RWMutex
	order    []domain.ProductID
	products map[domain.ProductID]domain.Product
}

// NewMemoryProductStore creates a store seeded with products
func NewMemoryProductStore(products []domain.Product) *MemoryProductStore {
	s := &MemoryProductStore{
		products: make(map[domain.ProductID]domain.Product),
	}
	s.Replace(products)
	return s
}

func (s *MemoryProductStore) Get(id domain.ProductID) (domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[id]
	if !ok {
		return domain.Product{}, ErrProductNotFound
	}
	return p, nil
}

func (s *MemoryProductStore) Has(id domain.ProductID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.products[id]
	return ok
}

// All returns a copy of every product in catalog order
func (s *MemoryProductStore) All() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Product, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.products[id])
	}
	return result
}

// Variations returns the variation records of a variable product
func (s *MemoryProductStore) Variations(parent domain.ProductID) []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []domain.Product
	for _, id := range s.order {
		if p := s.products[id]; p.IsVariation && p.ParentID == parent {
			result = append(result, p)
		}
	}
	return result
}

// Replace swaps the catalog contents and returns the ids that disappeared.
// Later duplicates of an id overwrite earlier ones but keep the first
// position.
func (s *MemoryProductStore) Replace(products []domain.Product) []domain.ProductID {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make(map[domain.ProductID]domain.Product, len(products))
	order := make([]domain.ProductID, 0, len(products))
	for _, p := range products {
		if _, seen := next[p.ID]; !seen {
			order = append(order, p.ID)
		}
		next[p.ID] = p
	}

	var removed []domain.ProductID
	for _, id := range s.order {
		if _, ok := next[id]; !ok {
			removed = append(removed, id)
		}
	}

	s.products = next
	s.order = order
	return removed
}

func (s *MemoryProductStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}
