package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/domain/order"
	"gorm.io/gorm"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) aggregate(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Lines").
		Preload("ShippingAddress")
}

func (r *OrderRepository) FindByID(ctx context.Context, id uint) (*order.Order, error) {
	var o order.Order
	err := r.aggregate(ctx).First(&o, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, order.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: find order: %w", err)
	}
	return &o, nil
}

func (r *OrderRepository) FindByNumber(ctx context.Context, number string) (*order.Order, error) {
	var o order.Order
	err := r.aggregate(ctx).Where("number = ?", number).First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, order.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: find order by number: %w", err)
	}
	return &o, nil
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID uint) ([]*order.Order, error) {
	var orders []*order.Order
	if err := r.aggregate(ctx).
		Where("user_id = ?", userID).
		Order("id").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("postgres: list orders by user: %w", err)
	}
	return orders, nil
}

func (r *OrderRepository) ListAll(ctx context.Context) ([]*order.Order, error) {
	var orders []*order.Order
	if err := r.aggregate(ctx).Order("id").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("postgres: list orders: %w", err)
	}
	return orders, nil
}

func (r *OrderRepository) ListCreatedSince(ctx context.Context, since time.Time) ([]*order.Order, error) {
	var orders []*order.Order
	if err := r.aggregate(ctx).
		Where("created_at >= ?", since).
		Order("id").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("postgres: list orders since: %w", err)
	}
	return orders, nil
}

func (r *OrderRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&order.Order{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("postgres: count orders: %w", err)
	}
	return n, nil
}
