package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/domain/catalog"
	"gorm.io/gorm"
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// Put upserts a product record. Only seeding uses it; the order core never
// creates products.
func (r *ProductRepository) Put(ctx context.Context, p *catalog.Product) error {
	if err := r.db.WithContext(ctx).Save(p).Error; err != nil {
		return fmt.Errorf("postgres: save product: %w", err)
	}
	return nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id uint) (*catalog.Product, error) {
	var p catalog.Product
	err := r.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, catalog.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: find product: %w", err)
	}
	return &p, nil
}

func (r *ProductRepository) List(ctx context.Context) ([]*catalog.Product, error) {
	var products []*catalog.Product
	if err := r.db.WithContext(ctx).Order("id").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("postgres: list products: %w", err)
	}
	return products, nil
}

func (r *ProductRepository) ListByCategory(ctx context.Context, category string) ([]*catalog.Product, error) {
	var products []*catalog.Product
	if err := r.db.WithContext(ctx).
		Where("LOWER(category) = LOWER(?)", category).
		Order("id").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("postgres: list by category: %w", err)
	}
	return products, nil
}

func (r *ProductRepository) Search(ctx context.Context, query string) ([]*catalog.Product, error) {
	var products []*catalog.Product
	pattern := "%" + query + "%"
	if err := r.db.WithContext(ctx).
		Where("name ILIKE ? OR description ILIKE ?", pattern, pattern).
		Order("id").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("postgres: search products: %w", err)
	}
	return products, nil
}

func (r *ProductRepository) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := r.db.WithContext(ctx).Model(&catalog.Product{}).
		Distinct("category").Order("category").
		Pluck("category", &categories).Error; err != nil {
		return nil, fmt.Errorf("postgres: list categories: %w", err)
	}
	return categories, nil
}

func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&catalog.Product{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("postgres: count products: %w", err)
	}
	return n, nil
}

func (r *ProductRepository) CountLowStock(ctx context.Context, threshold int) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&catalog.Product{}).
		Where("stock < ?", threshold).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("postgres: count low stock: %w", err)
	}
	return n, nil
}
