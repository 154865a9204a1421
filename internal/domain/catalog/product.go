package catalog

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrProductNotFound   = errors.New("catalog: product not found")
	ErrInvalidQuantity   = errors.New("catalog: quantity must be greater than zero")
	ErrInsufficientStock = errors.New("catalog: insufficient stock")
)

// Product is a catalog entry. Stock is the on-hand quantity; only the order
// processor mutates it, and only under a transactional guard.
type Product struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"not null" json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Category    string          `gorm:"index;not null" json:"category"`
	Image       string          `json:"image"`
	Stock       int             `gorm:"not null" json:"stock"`
}

// Deduct lowers stock by quantity, refusing to go negative.
func (p *Product) Deduct(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if quantity > p.Stock {
		return ErrInsufficientStock
	}
	p.Stock -= quantity
	return nil
}

// Repository is the read surface of the catalog. Writes happen through the
// order processor's transactional store or the seeder.
type Repository interface {
	FindByID(ctx context.Context, id uint) (*Product, error)
	List(ctx context.Context) ([]*Product, error)
	ListByCategory(ctx context.Context, category string) ([]*Product, error)
	Search(ctx context.Context, query string) ([]*Product, error)
	Categories(ctx context.Context) ([]string, error)
	Count(ctx context.Context) (int64, error)
	CountLowStock(ctx context.Context, threshold int) (int64, error)
}
