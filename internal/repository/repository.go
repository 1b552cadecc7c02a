package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/graniteware/storefront/internal/domain"
)

// ProductRepository is the catalog read/write contract. Cart resolution
// depends on GetByIDs being a single batched lookup; missing ids are
// simply absent from the result map.
type ProductRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	GetByIDs(ctx context.Context, ids []int64) (map[int64]domain.Product, error)
	List(ctx context.Context, categoryID *int64, limit, offset int) ([]*domain.Product, error)
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id int64) error
}

// CategoryRepository manages browsing categories
type CategoryRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Category, error)
	List(ctx context.Context) ([]*domain.Category, error)
	Create(ctx context.Context, category *domain.Category) error
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, id int64) error
}

// UserRepository resolves principals to user records
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
}

// Repositories bundles all repositories for dependency injection
type Repositories struct {
	Product  ProductRepository
	Category CategoryRepository
	User     UserRepository
}
