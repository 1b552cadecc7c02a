package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/graniteware/storefront/internal/domain"
	"github.com/graniteware/storefront/internal/repository"
	"github.com/graniteware/storefront/internal/session"
	"github.com/graniteware/storefront/pkg/errors"
)

// CartResolver joins a session's cart against the live catalog
type CartResolver interface {
	Resolve(ctx context.Context, token string) ([]domain.ResolvedCartLine, error)
}

type CartService struct {
	store    session.Store
	products repository.ProductRepository
	logger   *zap.Logger
}

// NewCartService creates a new cart service
func NewCartService(store session.Store, products repository.ProductRepository, logger *zap.Logger) *CartService {
	return &CartService{
		store:    store,
		products: products,
		logger:   logger,
	}
}

// AddOrUpdate upserts a cart entry and persists the cart. Re-adding a
// carted product replaces its quantity; a zero quantity defaults to one.
func (s *CartService) AddOrUpdate(ctx context.Context, token string, productID int64, quantity int) (domain.Cart, error) {
	if productID <= 0 {
		return domain.Cart{}, &errors.ErrInvalidArgument{
			Field:  "product_id",
			Reason: "must be a positive integer",
		}
	}
	if quantity < 0 {
		return domain.Cart{}, &errors.ErrInvalidArgument{
			Field:  "quantity",
			Reason: "must not be negative",
		}
	}
	if quantity == 0 {
		quantity = 1
	}

	cart, err := s.store.LoadCart(ctx, token)
	if err != nil {
		return domain.Cart{}, err
	}

	cart.AddOrUpdate(productID, quantity)
	cart.State = domain.CartStateActive

	if err := s.store.SaveCart(ctx, token, cart); err != nil {
		return domain.Cart{}, err
	}

	s.logger.Debug("Cart entry upserted",
		zap.Int64("product_id", productID),
		zap.Int("quantity", quantity),
		zap.Int("cart_size", len(cart.Entries)),
	)

	return cart, nil
}

// Remove drops the entry for productID. Removing an absent product is a
// no-op, not an error.
func (s *CartService) Remove(ctx context.Context, token string, productID int64) (domain.Cart, error) {
	cart, err := s.store.LoadCart(ctx, token)
	if err != nil {
		return domain.Cart{}, err
	}

	cart.Remove(productID)
	if cart.IsEmpty() {
		// An emptied cart must not be submittable.
		cart.State = domain.CartStateEmpty
	} else {
		// Mutation after a submit reactivates the cart.
		cart.State = domain.CartStateActive
	}

	if err := s.store.SaveCart(ctx, token, cart); err != nil {
		return domain.Cart{}, err
	}

	return cart, nil
}

// Load returns the session's current cart
func (s *CartService) Load(ctx context.Context, token string) (domain.Cart, error) {
	return s.store.LoadCart(ctx, token)
}

// Resolve joins the cart against the catalog with one batched lookup.
// Entries whose product no longer exists are dropped silently; the result
// preserves the cart's insertion order.
func (s *CartService) Resolve(ctx context.Context, token string) ([]domain.ResolvedCartLine, error) {
	cart, err := s.store.LoadCart(ctx, token)
	if err != nil {
		return nil, err
	}

	if cart.IsEmpty() {
		return []domain.ResolvedCartLine{}, nil
	}

	products, err := s.products.GetByIDs(ctx, cart.ProductIDs())
	if err != nil {
		return nil, err
	}

	lines := make([]domain.ResolvedCartLine, 0, len(cart.Entries))
	for _, entry := range cart.Entries {
		product, ok := products[entry.ProductID]
		if !ok {
			// Product deleted after being carted. Routine catalog
			// drift, not a caller mistake.
			s.logger.Debug("Dropping dangling cart entry",
				zap.Int64("product_id", entry.ProductID),
			)
			continue
		}
		lines = append(lines, domain.ResolvedCartLine{
			Product: product,
			Entry:   entry,
		})
	}

	return lines, nil
}
