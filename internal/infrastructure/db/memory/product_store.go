// Package memory holds the process-lifetime product store. It is created
// empty at startup and never evicts.
package memory

import (
	"context"
	"sync"

	"github.com/midas/product-tracker/internal/api/metrics"
	"github.com/midas/product-tracker/internal/core/domain"
	"github.com/midas/product-tracker/internal/core/ports"
)

var _ ports.ProductRepository = (*ProductStore)(nil)

// ProductStore is an append-only, mutex-guarded sequence of products.
// Every read and write holds the same lock, and nothing inside the lock
// blocks on I/O.
type ProductStore struct {
	mu       sync.Mutex
	products []domain.Product
}

func NewProductStore() *ProductStore {
	return &ProductStore{}
}

// Append stores p. The context is accepted for interface parity only.
func (s *ProductStore) Append(_ context.Context, p domain.Product) error {
	s.mu.Lock()
	s.products = append(s.products, p)
	n := len(s.products)
	s.mu.Unlock()

	metrics.ProductsStored.Set(float64(n))
	return nil
}

// List returns a copy of the matching products in insertion order.
func (s *ProductStore) List(_ context.Context, filter ports.ListProductsFilter) ([]domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		if filter.AddedBy != "" && p.AddedBy != filter.AddedBy {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// Len reports how many products are stored.
func (s *ProductStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.products)
}
