package memory_test

import (
	"context"
	"errors"
	"testing"

	apporder "github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/application/order"
	"github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/domain/catalog"
	"github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/domain/order"
	"github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/infrastructure/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func put(t *testing.T, s *memory.Store, p *catalog.Product) {
	t.Helper()
	require.NoError(t, s.Put(context.Background(), p))
}

func TestCatalogQueries(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	put(t, s, &catalog.Product{Name: "Bamboo Brush", Description: "biodegradable", Category: "personal-care", Price: decimal.New(999, -2), Stock: 30})
	put(t, s, &catalog.Product{Name: "Water Bottle", Description: "insulated steel", Category: "kitchen", Price: decimal.New(2450, -2), Stock: 10})
	put(t, s, &catalog.Product{Name: "Compost Bin", Description: "odour sealed", Category: "kitchen", Price: decimal.New(3200, -2), Stock: 5})

	all, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	kitchen, err := s.ListByCategory(ctx, "Kitchen")
	require.NoError(t, err)
	assert.Len(t, kitchen, 2)

	found, err := s.Search(ctx, "STEEL")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Water Bottle", found[0].Name)

	categories, err := s.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"kitchen", "personal-care"}, categories)

	low, err := s.CountLowStock(ctx, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 2, low)

	_, err = s.FindByID(ctx, 404)
	assert.ErrorIs(t, err, catalog.ErrProductNotFound)
}

func TestFindByIDReturnsClone(t *testing.T) {
	s := memory.NewStore()
	put(t, s, &catalog.Product{ID: 1, Name: "Tote", Price: decimal.New(1400, -2), Stock: 10})

	p, err := s.FindByID(context.Background(), 1)
	require.NoError(t, err)
	p.Stock = 0

	again, err := s.FindByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 10, again.Stock)
}

func TestAtomicallyAppliesOnSuccess(t *testing.T) {
	s := memory.NewStore()
	put(t, s, &catalog.Product{ID: 1, Name: "Tote", Price: decimal.New(500, -2), Stock: 10})
	ctx := context.Background()

	err := s.Atomically(ctx, func(tx apporder.Tx) error {
		p, err := tx.FindProduct(ctx, 1)
		if err != nil {
			return err
		}
		if err := tx.DecrementStock(ctx, 1, 4); err != nil {
			return err
		}

		// A read after a staged decrement sees the staged value.
		staged, err := tx.FindProduct(ctx, 1)
		if err != nil {
			return err
		}
		assert.Equal(t, 6, staged.Stock)

		o, err := order.New("n-1", 7, "Ana", "ana@example.com", "card",
			[]order.Line{{ProductID: 1, ProductName: p.Name, Quantity: 4, PriceAtPurchase: p.Price}}, nil)
		if err != nil {
			return err
		}
		return tx.CreateOrder(ctx, o)
	})
	require.NoError(t, err)

	p, err := s.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 6, p.Stock)

	o, err := s.FindByNumber(ctx, "n-1")
	require.NoError(t, err)
	assert.NotZero(t, o.ID)
	require.Len(t, o.Lines, 1)
	assert.NotZero(t, o.Lines[0].ID)
	assert.Equal(t, o.ID, o.Lines[0].OrderID)
}

func TestAtomicallyDiscardsOnError(t *testing.T) {
	s := memory.NewStore()
	put(t, s, &catalog.Product{ID: 1, Name: "Tote", Price: decimal.New(500, -2), Stock: 10})
	ctx := context.Background()

	boom := errors.New("boom")
	err := s.Atomically(ctx, func(tx apporder.Tx) error {
		if err := tx.DecrementStock(ctx, 1, 4); err != nil {
			return err
		}
		o, _ := order.New("n-x", 7, "a", "a@b", "card",
			[]order.Line{{ProductID: 1, Quantity: 4, PriceAtPurchase: decimal.New(500, -2)}}, nil)
		if err := tx.CreateOrder(ctx, o); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	p, err := s.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 10, p.Stock)

	_, err = s.FindByNumber(ctx, "n-x")
	assert.ErrorIs(t, err, order.ErrNotFound)

	n, err := s.CountOrders(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestDecrementStockBounds(t *testing.T) {
	s := memory.NewStore()
	put(t, s, &catalog.Product{ID: 1, Name: "Tote", Price: decimal.New(500, -2), Stock: 3})
	ctx := context.Background()

	err := s.Atomically(ctx, func(tx apporder.Tx) error {
		assert.ErrorIs(t, tx.DecrementStock(ctx, 1, 0), catalog.ErrInvalidQuantity)
		assert.ErrorIs(t, tx.DecrementStock(ctx, 1, 4), catalog.ErrInsufficientStock)
		assert.ErrorIs(t, tx.DecrementStock(ctx, 404, 1), catalog.ErrProductNotFound)

		// Staged decrements accumulate: 2 then 2 overshoots stock 3.
		require.NoError(t, tx.DecrementStock(ctx, 1, 2))
		assert.ErrorIs(t, tx.DecrementStock(ctx, 1, 2), catalog.ErrInsufficientStock)
		return errors.New("discard")
	})
	require.Error(t, err)

	p, err := s.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, p.Stock)
}

func TestAtomicallyHonorsCancelledContext(t *testing.T) {
	s := memory.NewStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := s.Atomically(ctx, func(tx apporder.Tx) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}
