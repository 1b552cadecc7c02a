package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/graniteware/storefront/internal/domain"
	"github.com/graniteware/storefront/internal/session"
	"github.com/graniteware/storefront/pkg/errors"
)

type fakeProductRepo struct {
	products map[int64]domain.Product
	lookups  int
}

func (f *fakeProductRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	if p, ok := f.products[id]; ok {
		return &p, nil
	}
	return nil, &errors.ErrNotFound{Resource: "product", ID: "x"}
}

func (f *fakeProductRepo) GetByIDs(ctx context.Context, ids []int64) (map[int64]domain.Product, error) {
	f.lookups++
	out := make(map[int64]domain.Product)
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (f *fakeProductRepo) List(ctx context.Context, categoryID *int64, limit, offset int) ([]*domain.Product, error) {
	return nil, nil
}
func (f *fakeProductRepo) Create(ctx context.Context, p *domain.Product) error { return nil }
func (f *fakeProductRepo) Update(ctx context.Context, p *domain.Product) error { return nil }
func (f *fakeProductRepo) Delete(ctx context.Context, id int64) error          { return nil }

func newCartFixture(products ...domain.Product) (*CartService, *fakeProductRepo) {
	repo := &fakeProductRepo{products: make(map[int64]domain.Product)}
	for _, p := range products {
		repo.products[p.ID] = p
	}
	store := session.NewMemoryStore(10 * time.Minute)
	return NewCartService(store, repo, zap.NewNop()), repo
}

func TestAddOrUpdateValidation(t *testing.T) {
	svc, _ := newCartFixture()
	ctx := context.Background()

	t.Run("zero product id", func(t *testing.T) {
		_, err := svc.AddOrUpdate(ctx, "s1", 0, 1)
		var invalid *errors.ErrInvalidArgument
		require.ErrorAs(t, err, &invalid)
	})

	t.Run("negative product id", func(t *testing.T) {
		_, err := svc.AddOrUpdate(ctx, "s1", -4, 1)
		var invalid *errors.ErrInvalidArgument
		require.ErrorAs(t, err, &invalid)
	})

	t.Run("negative quantity", func(t *testing.T) {
		_, err := svc.AddOrUpdate(ctx, "s1", 7, -1)
		var invalid *errors.ErrInvalidArgument
		require.ErrorAs(t, err, &invalid)
	})

	t.Run("nothing persisted on rejection", func(t *testing.T) {
		cart, err := svc.Load(ctx, "s1")
		require.NoError(t, err)
		assert.True(t, cart.IsEmpty())
	})

	t.Run("zero quantity defaults to one", func(t *testing.T) {
		cart, err := svc.AddOrUpdate(ctx, "s1", 7, 0)
		require.NoError(t, err)
		assert.Equal(t, []domain.CartEntry{{ProductID: 7, Quantity: 1}}, cart.Entries)
	})
}

func TestAddOrUpdateReplaceSemantics(t *testing.T) {
	svc, _ := newCartFixture()
	ctx := context.Background()

	_, err := svc.AddOrUpdate(ctx, "s1", 7, 1)
	require.NoError(t, err)
	_, err = svc.AddOrUpdate(ctx, "s1", 3, 2)
	require.NoError(t, err)
	cart, err := svc.AddOrUpdate(ctx, "s1", 7, 5)
	require.NoError(t, err)

	assert.Equal(t, []domain.CartEntry{
		{ProductID: 7, Quantity: 5},
		{ProductID: 3, Quantity: 2},
	}, cart.Entries)
	assert.Equal(t, domain.CartStateActive, cart.State)

	// The mutation survived the round-trip through the store.
	loaded, err := svc.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, cart.Entries, loaded.Entries)
}

func TestRemoveIsIdempotent(t *testing.T) {
	svc, _ := newCartFixture()
	ctx := context.Background()

	_, err := svc.AddOrUpdate(ctx, "s1", 7, 1)
	require.NoError(t, err)
	_, err = svc.AddOrUpdate(ctx, "s1", 3, 1)
	require.NoError(t, err)

	first, err := svc.Remove(ctx, "s1", 7)
	require.NoError(t, err)
	second, err := svc.Remove(ctx, "s1", 7)
	require.NoError(t, err)

	assert.Equal(t, first.Entries, second.Entries)
	assert.Equal(t, []domain.CartEntry{{ProductID: 3, Quantity: 1}}, second.Entries)
}

func TestRemoveLastEntryEmptiesCart(t *testing.T) {
	svc, _ := newCartFixture()
	ctx := context.Background()

	_, err := svc.AddOrUpdate(ctx, "s1", 7, 1)
	require.NoError(t, err)

	cart, err := svc.Remove(ctx, "s1", 7)
	require.NoError(t, err)

	assert.True(t, cart.IsEmpty())
	assert.Equal(t, domain.CartStateEmpty, cart.State)

	loaded, err := svc.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, domain.CartStateEmpty, loaded.State)
}

func TestResolve(t *testing.T) {
	ctx := context.Background()

	t.Run("preserves insertion order", func(t *testing.T) {
		svc, repo := newCartFixture(
			domain.Product{ID: 9, Name: "Granite Mortar"},
			domain.Product{ID: 2, Name: "Slate Tray"},
			domain.Product{ID: 5, Name: "Marble Board"},
		)

		for _, id := range []int64{9, 2, 5} {
			_, err := svc.AddOrUpdate(ctx, "s1", id, 1)
			require.NoError(t, err)
		}

		lines, err := svc.Resolve(ctx, "s1")
		require.NoError(t, err)

		var got []int64
		for _, line := range lines {
			got = append(got, line.Product.ID)
		}
		assert.Equal(t, []int64{9, 2, 5}, got)
		assert.Equal(t, 1, repo.lookups, "resolve must issue one batched lookup")
	})

	t.Run("drops entries missing from the catalog", func(t *testing.T) {
		svc, _ := newCartFixture(domain.Product{ID: 3, Name: "Slate Tray"})

		_, err := svc.AddOrUpdate(ctx, "s1", 7, 1)
		require.NoError(t, err)
		_, err = svc.AddOrUpdate(ctx, "s1", 3, 1)
		require.NoError(t, err)

		lines, err := svc.Resolve(ctx, "s1")
		require.NoError(t, err)

		require.Len(t, lines, 1)
		assert.Equal(t, int64(3), lines[0].Product.ID)
		assert.Equal(t, 1, lines[0].Entry.Quantity)
	})

	t.Run("empty cart resolves to empty without a lookup", func(t *testing.T) {
		svc, repo := newCartFixture()

		lines, err := svc.Resolve(ctx, "s1")
		require.NoError(t, err)
		assert.Empty(t, lines)
		assert.Equal(t, 0, repo.lookups)
	})
}
