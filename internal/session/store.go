package session

import (
	"context"

	"github.com/google/uuid"

	"github.com/graniteware/storefront/internal/domain"
)

// Store holds per-session state keyed by an opaque token. Carts live for
// the configured idle lifetime; every successful access to a live session
// slides its expiry forward. Expiry is silent, an expired session simply
// loads as empty. Store operations on a valid session never fail with a
// domain error, only with infrastructure faults.
type Store interface {
	// LoadCart returns the session's cart, or an empty cart if none
	// exists. It never returns a nil sentinel.
	LoadCart(ctx context.Context, token string) (domain.Cart, error)

	// SaveCart replaces the session's cart snapshot and refreshes the
	// idle expiry.
	SaveCart(ctx context.Context, token string, cart domain.Cart) error

	// SetUserID binds the authenticated principal to the session.
	SetUserID(ctx context.Context, token string, userID uuid.UUID) error

	// UserID returns the bound principal, if any.
	UserID(ctx context.Context, token string) (uuid.UUID, bool, error)

	// Clear discards the cart and every other value scoped to the session.
	Clear(ctx context.Context, token string) error
}
