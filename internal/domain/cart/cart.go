package cart

import (
	"context"
	"errors"
)

var (
	ErrItemNotFound    = errors.New("cart: item not found")
	ErrInvalidQuantity = errors.New("cart: quantity must be greater than zero")
)

// Item is one (user, product) entry in the shopping cart. Adding the same
// product twice merges quantities instead of creating a second row.
type Item struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	UserID    uint `gorm:"index:idx_cart_user_product,unique;not null" json:"userId"`
	ProductID uint `gorm:"index:idx_cart_user_product,unique;not null" json:"productId"`
	Quantity  int  `gorm:"not null" json:"quantity"`
}

func NewItem(userID, productID uint, quantity int) (*Item, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	return &Item{UserID: userID, ProductID: productID, Quantity: quantity}, nil
}

type Repository interface {
	ListByUser(ctx context.Context, userID uint) ([]*Item, error)
	FindByUserAndProduct(ctx context.Context, userID, productID uint) (*Item, error)
	Save(ctx context.Context, item *Item) error
	Delete(ctx context.Context, userID, productID uint) error
	DeleteByUser(ctx context.Context, userID uint) error
}
