package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/domain/cart"
)

type cartKey struct {
	userID    uint
	productID uint
}

type CartRepository struct {
	mu     sync.RWMutex
	items  map[cartKey]*cart.Item
	nextID uint
}

func NewCartRepository() *CartRepository {
	return &CartRepository{items: make(map[cartKey]*cart.Item)}
}

func (r *CartRepository) ListByUser(ctx context.Context, userID uint) ([]*cart.Item, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*cart.Item, 0)
	for key, item := range r.items {
		if key.userID == userID {
			out = append(out, cloneItem(item))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *CartRepository) FindByUserAndProduct(ctx context.Context, userID, productID uint) (*cart.Item, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[cartKey{userID, productID}]
	if !ok {
		return nil, cart.ErrItemNotFound
	}
	return cloneItem(item), nil
}

func (r *CartRepository) Save(ctx context.Context, item *cart.Item) error {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	if item.ID == 0 {
		r.nextID++
		item.ID = r.nextID
	}
	r.items[cartKey{item.UserID, item.ProductID}] = cloneItem(item)
	return nil
}

func (r *CartRepository) Delete(ctx context.Context, userID, productID uint) error {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, cartKey{userID, productID})
	return nil
}

func (r *CartRepository) DeleteByUser(ctx context.Context, userID uint) error {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	for key := range r.items {
		if key.userID == userID {
			delete(r.items, key)
		}
	}
	return nil
}

func cloneItem(item *cart.Item) *cart.Item {
	if item == nil {
		return nil
	}
	clone := *item
	return &clone
}
