package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/domain/catalog"
	"github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/domain/order"
)

// Store keeps products and orders behind one mutex so an order placement can
// observe and mutate both as a single atomic step. It backs the demo
// deployment and the test suite.
type Store struct {
	mu            sync.RWMutex
	products      map[uint]*catalog.Product
	orders        map[uint]*order.Order
	orderByNumber map[string]uint
	nextProductID uint
	nextOrderID   uint
	nextLineID    uint
}

func NewStore() *Store {
	return &Store{
		products:      make(map[uint]*catalog.Product),
		orders:        make(map[uint]*order.Order),
		orderByNumber: make(map[string]uint),
	}
}

// Put inserts or replaces a product, assigning an id when absent. It exists
// for seeding; the order core itself never creates products.
func (s *Store) Put(ctx context.Context, p *catalog.Product) error {
	_ = ctx

	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == 0 {
		s.nextProductID++
		p.ID = s.nextProductID
	} else if p.ID > s.nextProductID {
		s.nextProductID = p.ID
	}
	s.products[p.ID] = cloneProduct(p)
	return nil
}

// --- catalog.Repository ---

func (s *Store) FindByID(ctx context.Context, id uint) (*catalog.Product, error) {
	_ = ctx

	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, catalog.ErrProductNotFound
	}
	return cloneProduct(p), nil
}

func (s *Store) List(ctx context.Context) ([]*catalog.Product, error) {
	_ = ctx

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.collectProducts(func(*catalog.Product) bool { return true }), nil
}

func (s *Store) ListByCategory(ctx context.Context, category string) ([]*catalog.Product, error) {
	_ = ctx

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.collectProducts(func(p *catalog.Product) bool {
		return strings.EqualFold(p.Category, category)
	}), nil
}

func (s *Store) Search(ctx context.Context, query string) ([]*catalog.Product, error) {
	_ = ctx

	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(query)
	return s.collectProducts(func(p *catalog.Product) bool {
		return strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Description), needle)
	}), nil
}

func (s *Store) Categories(ctx context.Context) ([]string, error) {
	_ = ctx

	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	var categories []string
	for _, p := range s.products {
		if _, ok := seen[p.Category]; !ok {
			seen[p.Category] = struct{}{}
			categories = append(categories, p.Category)
		}
	}
	sort.Strings(categories)
	return categories, nil
}

func (s *Store) Count(ctx context.Context) (int64, error) {
	_ = ctx

	s.mu.RLock()
	defer s.mu.RUnlock()

	return int64(len(s.products)), nil
}

func (s *Store) CountLowStock(ctx context.Context, threshold int) (int64, error) {
	_ = ctx

	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	for _, p := range s.products {
		if p.Stock < threshold {
			n++
		}
	}
	return n, nil
}

func (s *Store) collectProducts(keep func(*catalog.Product) bool) []*catalog.Product {
	out := make([]*catalog.Product, 0, len(s.products))
	for _, p := range s.products {
		if keep(p) {
			out = append(out, cloneProduct(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// --- order.Repository ---

func (s *Store) FindByNumber(ctx context.Context, number string) (*order.Order, error) {
	_ = ctx

	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.orderByNumber[number]
	if !ok {
		return nil, order.ErrNotFound
	}
	return s.orders[id].Clone(), nil
}

func (s *Store) FindOrderByID(ctx context.Context, id uint) (*order.Order, error) {
	_ = ctx

	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, order.ErrNotFound
	}
	return o.Clone(), nil
}

func (s *Store) ListByUser(ctx context.Context, userID uint) ([]*order.Order, error) {
	_ = ctx

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.collectOrders(func(o *order.Order) bool { return o.UserID == userID }), nil
}

func (s *Store) ListAll(ctx context.Context) ([]*order.Order, error) {
	_ = ctx

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.collectOrders(func(*order.Order) bool { return true }), nil
}

func (s *Store) ListCreatedSince(ctx context.Context, since time.Time) ([]*order.Order, error) {
	_ = ctx

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.collectOrders(func(o *order.Order) bool { return !o.CreatedAt.Before(since) }), nil
}

func (s *Store) CountOrders(ctx context.Context) (int64, error) {
	_ = ctx

	s.mu.RLock()
	defer s.mu.RUnlock()

	return int64(len(s.orders)), nil
}

func (s *Store) collectOrders(keep func(*order.Order) bool) []*order.Order {
	out := make([]*order.Order, 0, len(s.orders))
	for _, o := range s.orders {
		if keep(o) {
			out = append(out, o.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func cloneProduct(p *catalog.Product) *catalog.Product {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}
