package memory

import (
	"context"
	"time"

	apporder "github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/application/order"
	"github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/domain/catalog"
	"github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/domain/order"
)

// Atomically runs fn while holding the store's write lock, staging every
// mutation. Nothing is applied until fn returns nil, so a failed placement is
// never observable, and same-product placements are fully serialized.
func (s *Store) Atomically(ctx context.Context, fn func(tx apporder.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memTx{store: s, stock: make(map[uint]int)}
	if err := fn(tx); err != nil {
		return err
	}
	tx.apply()
	return nil
}

// memTx stages stock decrements and the order insert against the locked
// store. Reads see the staged state.
type memTx struct {
	store  *Store
	stock  map[uint]int // staged stock, keyed by product id
	queued []*order.Order
}

func (t *memTx) FindProduct(ctx context.Context, id uint) (*catalog.Product, error) {
	_ = ctx

	p, ok := t.store.products[id]
	if !ok {
		return nil, catalog.ErrProductNotFound
	}
	clone := cloneProduct(p)
	if staged, ok := t.stock[id]; ok {
		clone.Stock = staged
	}
	return clone, nil
}

func (t *memTx) DecrementStock(ctx context.Context, productID uint, quantity int) error {
	_ = ctx

	p, ok := t.store.products[productID]
	if !ok {
		return catalog.ErrProductNotFound
	}
	current := p.Stock
	if staged, ok := t.stock[productID]; ok {
		current = staged
	}
	if quantity <= 0 {
		return catalog.ErrInvalidQuantity
	}
	if quantity > current {
		return catalog.ErrInsufficientStock
	}
	t.stock[productID] = current - quantity
	return nil
}

func (t *memTx) CreateOrder(ctx context.Context, o *order.Order) error {
	_ = ctx

	t.queued = append(t.queued, o)
	return nil
}

func (t *memTx) apply() {
	for id, stock := range t.stock {
		t.store.products[id].Stock = stock
	}
	for _, o := range t.queued {
		t.store.nextOrderID++
		o.ID = t.store.nextOrderID
		for i := range o.Lines {
			t.store.nextLineID++
			o.Lines[i].ID = t.store.nextLineID
			o.Lines[i].OrderID = o.ID
		}
		if o.ShippingAddress != nil {
			o.ShippingAddress.OrderID = o.ID
		}
		t.store.orders[o.ID] = o.Clone()
		t.store.orderByNumber[o.Number] = o.ID
	}
}

// OrderView adapts the store to the order repository contract; the catalog
// contract is satisfied by the store directly.
type OrderView struct {
	s *Store
}

func (s *Store) OrderRepository() OrderView { return OrderView{s: s} }

func (v OrderView) FindByID(ctx context.Context, id uint) (*order.Order, error) {
	return v.s.FindOrderByID(ctx, id)
}

func (v OrderView) FindByNumber(ctx context.Context, number string) (*order.Order, error) {
	return v.s.FindByNumber(ctx, number)
}

func (v OrderView) ListByUser(ctx context.Context, userID uint) ([]*order.Order, error) {
	return v.s.ListByUser(ctx, userID)
}

func (v OrderView) ListAll(ctx context.Context) ([]*order.Order, error) {
	return v.s.ListAll(ctx)
}

func (v OrderView) ListCreatedSince(ctx context.Context, since time.Time) ([]*order.Order, error) {
	return v.s.ListCreatedSince(ctx, since)
}

func (v OrderView) Count(ctx context.Context) (int64, error) {
	return v.s.CountOrders(ctx)
}
