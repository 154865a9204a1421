package order

import (
	"context"

	"github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/domain/catalog"
	"github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/domain/order"
)

type IDGenerator interface {
	NewID() string
}

// Store is the all-or-nothing boundary around order placement. Atomically
// runs fn inside a single transaction spanning every touched product's stock,
// the order row, its lines, and its optional shipping address; when fn
// returns an error the transaction rolls back with zero observable change.
type Store interface {
	Atomically(ctx context.Context, fn func(tx Tx) error) error
}

// Tx is the slice of store operations available inside the transaction.
type Tx interface {
	FindProduct(ctx context.Context, id uint) (*catalog.Product, error)

	// DecrementStock performs the atomic compare-and-decrement: it succeeds
	// only if the product's current stock is at least quantity, and is
	// serialized against every concurrent order touching the same product.
	// Failure returns catalog.ErrInsufficientStock.
	DecrementStock(ctx context.Context, productID uint, quantity int) error

	CreateOrder(ctx context.Context, o *order.Order) error
}
