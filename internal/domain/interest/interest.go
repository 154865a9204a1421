package interest

import (
	"context"
	"time"
)

// Interest is the accumulated attention score of one user for one product.
// Clicks and purchases both feed it; it only ever grows.
type Interest struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index:idx_interest_user_product,unique;not null" json:"userId"`
	ProductID uint      `gorm:"index:idx_interest_user_product,unique;not null" json:"productId"`
	Score     int       `gorm:"not null" json:"score"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Repository interface {
	// Bump raises the (user, product) score by delta, creating the row on
	// first contact.
	Bump(ctx context.Context, userID, productID uint, delta int) error
	// ListByUser returns a user's interests ordered by score, highest first.
	ListByUser(ctx context.Context, userID uint) ([]*Interest, error)
}
