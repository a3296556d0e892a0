package ports

import (
	"context"

	"github.com/midas/product-tracker/internal/core/domain"
)

// AddProductInput carries the raw, unvalidated fields of a tracking request.
type AddProductInput struct {
	URL             string
	Name            string
	Retailer        string
	TargetPriceText string
	// IdempotencyKey is optional; repeated submissions with the same key by
	// the same actor are stored once.
	IdempotencyKey string
}

// ProductService defines the tracked-product use cases.
type ProductService interface {
	AddProduct(ctx context.Context, input AddProductInput, actor domain.Actor) error
	ListVisibleProducts(ctx context.Context, actor domain.Actor) ([]domain.Product, error)
}
