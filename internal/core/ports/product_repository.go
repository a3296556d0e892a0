package ports

import (
	"context"

	"github.com/midas/product-tracker/internal/core/domain"
)

// ListProductsFilter narrows a product listing.
// AddedBy is set by the service layer for non-admin actors.
type ListProductsFilter struct {
	AddedBy string // empty = every product (admin)
}

// ProductRepository defines the append-only storage of tracked products.
type ProductRepository interface {
	// Append stores a fully built product. Implementations must never expose
	// a partially written product to List.
	Append(ctx context.Context, p domain.Product) error
	// List returns matching products in insertion order.
	List(ctx context.Context, filter ListProductsFilter) ([]domain.Product, error)
}
