package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/midas/product-tracker/internal/api/metrics"
	"github.com/midas/product-tracker/internal/core/domain"
	"github.com/midas/product-tracker/internal/core/ports"
)

// SubmissionGuard abstracts the idempotency store (Redis).
type SubmissionGuard interface {
	// Claim records key for username and reports whether this call was the first.
	Claim(ctx context.Context, username, key string) (bool, error)
	Release(ctx context.Context, username, key string) error
}

type ProductService struct {
	repo  ports.ProductRepository
	guard SubmissionGuard
	log   zerolog.Logger
	now   func() time.Time
}

// NewProductService returns a ProductService. guard may be nil, in which case
// idempotency keys are ignored.
func NewProductService(repo ports.ProductRepository, guard SubmissionGuard, log zerolog.Logger) *ProductService {
	return &ProductService{
		repo:  repo,
		guard: guard,
		log:   log,
		now:   time.Now,
	}
}

// AddProduct validates input and stores it as a product owned by actor.
// Validation stops at the first failure: retailer, then URL. An empty or
// unparsable target price is stored as absent.
func (s *ProductService) AddProduct(ctx context.Context, input ports.AddProductInput, actor domain.Actor) error {
	retailer, err := domain.ParseRetailer(input.Retailer)
	if err != nil {
		metrics.ProductRejectionsTotal.WithLabelValues("invalid_retailer").Inc()
		return err
	}
	if !retailer.OwnsURL(input.URL) {
		metrics.ProductRejectionsTotal.WithLabelValues("invalid_url").Inc()
		return domain.ErrInvalidURL
	}

	product := domain.Product{
		ID:          uuid.New(),
		URL:         input.URL,
		Name:        input.Name,
		Retailer:    retailer,
		TargetPrice: domain.ParseTargetPrice(input.TargetPriceText),
		AddedBy:     actor.Username,
		CreatedAt:   s.now().UTC(),
	}

	claimed := false
	if s.guard != nil && input.IdempotencyKey != "" {
		first, err := s.guard.Claim(ctx, actor.Username, input.IdempotencyKey)
		switch {
		case err != nil:
			s.log.Warn().Err(err).Str("username", actor.Username).Msg("idempotency claim failed, adding anyway")
		case !first:
			metrics.SubmissionReplaysTotal.Inc()
			s.log.Debug().Str("username", actor.Username).Str("idempotency_key", input.IdempotencyKey).Msg("idempotent replay")
			return nil
		default:
			claimed = true
		}
	}

	if err := s.repo.Append(ctx, product); err != nil {
		if claimed {
			if relErr := s.guard.Release(ctx, actor.Username, input.IdempotencyKey); relErr != nil {
				err = errors.Join(err, relErr)
			}
		}
		return fmt.Errorf("add product: %w", err)
	}

	metrics.ProductsAddedTotal.WithLabelValues(string(retailer)).Inc()
	s.log.Info().
		Str("product_id", product.ID.String()).
		Str("username", actor.Username).
		Str("retailer", string(retailer)).
		Msg("product added")

	return nil
}

// ListVisibleProducts returns every product for admins and only the actor's
// own products otherwise, in insertion order.
func (s *ProductService) ListVisibleProducts(ctx context.Context, actor domain.Actor) ([]domain.Product, error) {
	filter := ports.ListProductsFilter{}
	if !actor.IsAdmin() {
		filter.AddedBy = actor.Username
	}

	products, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}
