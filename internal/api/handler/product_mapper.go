package handler

import (
	"github.com/midas/product-tracker/internal/core/domain"
	"github.com/midas/product-tracker/internal/core/ports"
)

// --- Request → Service input ---

func toAddInput(req addProductRequest, idempotencyKey string) ports.AddProductInput {
	return ports.AddProductInput{
		URL:             req.URL,
		Name:            req.Name,
		Retailer:        req.Retailer,
		TargetPriceText: req.TargetPrice,
		IdempotencyKey:  idempotencyKey,
	}
}

// --- Service result → HTTP response ---

func toProductResponse(p domain.Product) productResponse {
	resp := productResponse{
		ID:        p.ID.String(),
		URL:       p.URL,
		Name:      p.Name,
		Retailer:  string(p.Retailer),
		AddedBy:   p.AddedBy,
		CreatedAt: p.CreatedAt.UTC(),
	}
	if p.TargetPrice.Valid {
		price := p.TargetPrice.Decimal.StringFixed(2)
		resp.TargetPrice = &price
	}
	return resp
}

// newestFirst maps products to responses in reverse insertion order, keeping
// at most limit entries. A limit <= 0 keeps everything.
func newestFirst(products []domain.Product, limit int) []productResponse {
	n := len(products)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]productResponse, 0, n)
	for i := len(products) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, toProductResponse(products[i]))
	}
	return out
}

func scopeFor(actor domain.Actor) string {
	if actor.IsAdmin() {
		return "all"
	}
	return "own"
}
