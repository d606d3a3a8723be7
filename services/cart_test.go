package services

import (
	"Storefront/apperr"
	"Storefront/logging"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReconciler(carts *fakeCarts, catalog *fakeCatalog) *CartReconciler {
	return NewCartReconciler(carts, catalog, logging.Discard())
}

func TestCartReconciler_Create(t *testing.T) {
	ctx := context.Background()
	carts := newFakeCarts()
	reconciler := newTestReconciler(carts, newFakeCatalog())

	cart, err := reconciler.Create(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, uint(1), cart.UserID)
	assert.Empty(t, cart.Products)

	_, err = reconciler.Create(ctx, 1)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestCartReconciler_Get(t *testing.T) {
	ctx := context.Background()
	reconciler := newTestReconciler(newFakeCarts(), newFakeCatalog())

	_, err := reconciler.Get(ctx, 1)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	_, err = reconciler.Create(ctx, 1)
	require.NoError(t, err)
	cart, err := reconciler.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, uint(1), cart.UserID)
}

func TestCartReconciler_DropsUnknownProducts(t *testing.T) {
	ctx := context.Background()
	carts := newFakeCarts()
	catalog := newFakeCatalog(product(1, "Runner", 120))
	reconciler := newTestReconciler(carts, catalog)

	cart, err := reconciler.Create(ctx, 1)
	require.NoError(t, err)

	_, lines, err := reconciler.Reconcile(ctx, 1, cart.ID, []byte(`[{"id":1,"quantity":3},{"id":404,"quantity":1}]`))
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, uint(1), lines[0].ProductID)
	assert.Equal(t, uint(3), lines[0].Quantity)
	assert.Equal(t, uint(120), lines[0].Price)
	assert.Equal(t, "Runner", lines[0].Name)

	require.Len(t, catalog.calls, 1)
	assert.Equal(t, []uint{1, 404}, catalog.calls[0])

	stored, err := carts.FindByOwner(ctx, 1)
	require.NoError(t, err)
	storedLines, err := stored.Lines()
	require.NoError(t, err)
	assert.Equal(t, lines, storedLines)
}

func TestCartReconciler_CatalogPricesWin(t *testing.T) {
	ctx := context.Background()
	catalog := newFakeCatalog(product(1, "Runner", 120), product(2, "Trail", 90))
	reconciler := newTestReconciler(newFakeCarts(), catalog)

	cart, err := reconciler.Create(ctx, 1)
	require.NoError(t, err)

	_, lines, err := reconciler.Reconcile(ctx, 1, cart.ID, []byte(`[{"id":2,"quantity":1,"price":1,"name":"cheap"},{"id":1}]`))
	require.NoError(t, err)
	require.Len(t, lines, 2)

	byID := map[uint]uint{}
	for _, line := range lines {
		byID[line.ProductID] = line.Quantity
		if line.ProductID == 2 {
			assert.Equal(t, uint(90), line.Price)
			assert.Equal(t, "Trail", line.Name)
		}
	}
	assert.Equal(t, map[uint]uint{1: 0, 2: 1}, byID)
}

func TestCartReconciler_EmptyList(t *testing.T) {
	ctx := context.Background()
	carts := newFakeCarts()
	reconciler := newTestReconciler(carts, newFakeCatalog(product(1, "Runner", 120)))

	cart, err := reconciler.Create(ctx, 1)
	require.NoError(t, err)

	_, lines, err := reconciler.Reconcile(ctx, 1, cart.ID, []byte(`[]`))
	require.NoError(t, err)
	assert.Empty(t, lines)

	stored, err := carts.FindByOwner(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "[]", stored.Products)
}

func TestCartReconciler_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("no cart", func(t *testing.T) {
		reconciler := newTestReconciler(newFakeCarts(), newFakeCatalog())
		_, _, err := reconciler.Reconcile(ctx, 1, 0, []byte(`[]`))
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})

	t.Run("someone else's cart id", func(t *testing.T) {
		reconciler := newTestReconciler(newFakeCarts(), newFakeCatalog())
		_, err := reconciler.Create(ctx, 1)
		require.NoError(t, err)
		other, err := reconciler.Create(ctx, 2)
		require.NoError(t, err)

		_, _, err = reconciler.Reconcile(ctx, 1, other.ID, []byte(`[]`))
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})

	t.Run("malformed payload skips catalog", func(t *testing.T) {
		catalog := newFakeCatalog()
		reconciler := newTestReconciler(newFakeCarts(), catalog)
		_, err := reconciler.Create(ctx, 1)
		require.NoError(t, err)

		_, _, err = reconciler.Reconcile(ctx, 1, 0, []byte(`{"id":1}`))
		assert.Equal(t, apperr.KindInvalidPayload, apperr.KindOf(err))
		assert.Empty(t, catalog.calls)
	})

	t.Run("catalog failure keeps prior snapshot", func(t *testing.T) {
		carts := newFakeCarts()
		catalog := newFakeCatalog(product(1, "Runner", 120))
		reconciler := newTestReconciler(carts, catalog)
		cart, err := reconciler.Create(ctx, 1)
		require.NoError(t, err)
		_, _, err = reconciler.Reconcile(ctx, 1, cart.ID, []byte(`[{"id":1,"quantity":2}]`))
		require.NoError(t, err)
		before, err := carts.FindByOwner(ctx, 1)
		require.NoError(t, err)

		catalog.err = errBoom
		_, _, err = reconciler.Reconcile(ctx, 1, cart.ID, []byte(`[{"id":1,"quantity":5}]`))
		assert.Equal(t, apperr.KindUpstreamFailure, apperr.KindOf(err))

		after, err := carts.FindByOwner(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, before.Products, after.Products)
		assert.Equal(t, 1, carts.replaced)
	})
}
