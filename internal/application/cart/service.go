package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/domain/cart"
	"github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/domain/catalog"
)

// Service mutates a user's cart lines. Carts hold requested quantities only;
// nothing here touches stock or prices.
type Service struct {
	items    cart.Repository
	products catalog.Repository
}

func NewService(items cart.Repository, products catalog.Repository) *Service {
	return &Service{items: items, products: products}
}

// Entry pairs a cart line with its current product record for display.
type Entry struct {
	Product  *catalog.Product `json:"product"`
	Quantity int              `json:"quantity"`
}

func (s *Service) Get(ctx context.Context, userID uint) ([]Entry, error) {
	items, err := s.items.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(items))
	for _, item := range items {
		product, err := s.products.FindByID(ctx, item.ProductID)
		if errors.Is(err, catalog.ErrProductNotFound) {
			// Product removed from the catalog since it was carted; drop the line.
			_ = s.items.Delete(ctx, userID, item.ProductID)
			continue
		}
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{Product: product, Quantity: item.Quantity})
	}
	return entries, nil
}

// Add merges with an existing line for the same product.
func (s *Service) Add(ctx context.Context, userID, productID uint, quantity int) (*Entry, error) {
	if quantity <= 0 {
		return nil, cart.ErrInvalidQuantity
	}
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	item, err := s.items.FindByUserAndProduct(ctx, userID, productID)
	switch {
	case err == nil:
		item.Quantity += quantity
	case errors.Is(err, cart.ErrItemNotFound):
		item, err = cart.NewItem(userID, productID, quantity)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("cart: lookup: %w", err)
	}

	if err := s.items.Save(ctx, item); err != nil {
		return nil, fmt.Errorf("cart: save: %w", err)
	}
	return &Entry{Product: product, Quantity: item.Quantity}, nil
}

func (s *Service) Update(ctx context.Context, userID, productID uint, quantity int) (*Entry, error) {
	if quantity <= 0 {
		return nil, cart.ErrInvalidQuantity
	}
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	item, err := s.items.FindByUserAndProduct(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	item.Quantity = quantity
	if err := s.items.Save(ctx, item); err != nil {
		return nil, fmt.Errorf("cart: save: %w", err)
	}
	return &Entry{Product: product, Quantity: item.Quantity}, nil
}

func (s *Service) Remove(ctx context.Context, userID, productID uint) error {
	if _, err := s.items.FindByUserAndProduct(ctx, userID, productID); err != nil {
		return err
	}
	return s.items.Delete(ctx, userID, productID)
}

func (s *Service) Clear(ctx context.Context, userID uint) error {
	return s.items.DeleteByUser(ctx, userID)
}
