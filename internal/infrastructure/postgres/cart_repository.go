package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/domain/cart"
	"gorm.io/gorm"
)

type CartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{db: db}
}

func (r *CartRepository) ListByUser(ctx context.Context, userID uint) ([]*cart.Item, error) {
	var items []*cart.Item
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("postgres: list cart: %w", err)
	}
	return items, nil
}

func (r *CartRepository) FindByUserAndProduct(ctx context.Context, userID, productID uint) (*cart.Item, error) {
	var item cart.Item
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, cart.ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: find cart item: %w", err)
	}
	return &item, nil
}

func (r *CartRepository) Save(ctx context.Context, item *cart.Item) error {
	if err := r.db.WithContext(ctx).Save(item).Error; err != nil {
		return fmt.Errorf("postgres: save cart item: %w", err)
	}
	return nil
}

func (r *CartRepository) Delete(ctx context.Context, userID, productID uint) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&cart.Item{}).Error; err != nil {
		return fmt.Errorf("postgres: delete cart item: %w", err)
	}
	return nil
}

func (r *CartRepository) DeleteByUser(ctx context.Context, userID uint) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&cart.Item{}).Error; err != nil {
		return fmt.Errorf("postgres: clear cart: %w", err)
	}
	return nil
}
