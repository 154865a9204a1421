package postgres

import (
	"context"
	"fmt"

	"github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/domain/interest"
	"gorm.io/gorm"
)

type InterestRepository struct {
	db *gorm.DB
}

func NewInterestRepository(db *gorm.DB) *InterestRepository {
	return &InterestRepository{db: db}
}

func (r *InterestRepository) Bump(ctx context.Context, userID, productID uint, delta int) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&interest.Interest{}).
			Where("user_id = ? AND product_id = ?", userID, productID).
			UpdateColumn("score", gorm.Expr("score + ?", delta))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return tx.Create(&interest.Interest{UserID: userID, ProductID: productID, Score: delta}).Error
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("postgres: bump interest: %w", err)
	}
	return nil
}

func (r *InterestRepository) ListByUser(ctx context.Context, userID uint) ([]*interest.Interest, error) {
	var interests []*interest.Interest
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("score DESC, id").Find(&interests).Error; err != nil {
		return nil, fmt.Errorf("postgres: list interests: %w", err)
	}
	return interests, nil
}
