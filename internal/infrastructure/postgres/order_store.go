package postgres

import (
	"context"
	"errors"
	"fmt"

	apporder "github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/application/order"
	"github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/domain/catalog"
	"github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/domain/order"
	"gorm.io/gorm"
)

// OrderStore implements the transactional order-placement boundary on top of
// a single database transaction.
type OrderStore struct {
	db *gorm.DB
}

func NewOrderStore(db *gorm.DB) *OrderStore {
	return &OrderStore{db: db}
}

func (s *OrderStore) Atomically(ctx context.Context, fn func(tx apporder.Tx) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTx{db: tx})
	})
}

type gormTx struct {
	db *gorm.DB
}

func (t *gormTx) FindProduct(ctx context.Context, id uint) (*catalog.Product, error) {
	var p catalog.Product
	err := t.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, catalog.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: find product: %w", err)
	}
	return &p, nil
}

// DecrementStock issues a conditional update: the row lock taken by UPDATE
// serializes concurrent orders on the same product, and the stock >= quantity
// predicate makes the check-and-decrement a single atomic step. Stock can
// never be driven negative.
func (t *gormTx) DecrementStock(ctx context.Context, productID uint, quantity int) error {
	if quantity <= 0 {
		return catalog.ErrInvalidQuantity
	}
	res := t.db.WithContext(ctx).Model(&catalog.Product{}).
		Where("id = ? AND stock >= ?", productID, quantity).
		UpdateColumn("stock", gorm.Expr("stock - ?", quantity))
	if res.Error != nil {
		return fmt.Errorf("postgres: decrement stock: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := t.db.WithContext(ctx).Model(&catalog.Product{}).
			Where("id = ?", productID).Count(&count).Error; err != nil {
			return fmt.Errorf("postgres: decrement stock: %w", err)
		}
		if count == 0 {
			return catalog.ErrProductNotFound
		}
		return catalog.ErrInsufficientStock
	}
	return nil
}

func (t *gormTx) CreateOrder(ctx context.Context, o *order.Order) error {
	// Lines and the shipping address are created through the association,
	// inside the same transaction.
	if err := t.db.WithContext(ctx).Create(o).Error; err != nil {
		return fmt.Errorf("postgres: create order: %w", err)
	}
	return nil
}
