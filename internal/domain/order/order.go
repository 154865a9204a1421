package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound    = errors.New("order: not found")
	ErrEmptyOrder  = errors.New("order: at least one line is required")
	ErrNoPayment   = errors.New("order: payment method is required")
	ErrInvalidLine = errors.New("order: line quantity must be greater than zero")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Line is a priced order line. PriceAtPurchase is a snapshot taken at commit
// time; historical orders must stay immune to later price changes.
type Line struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	OrderID         uint            `gorm:"index;not null" json:"-"`
	ProductID       uint            `gorm:"not null" json:"productId"`
	ProductName     string          `gorm:"not null" json:"productName"`
	Quantity        int             `gorm:"not null" json:"quantity"`
	PriceAtPurchase decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"priceAtPurchase"`
}

func (l Line) Subtotal() decimal.Decimal {
	return l.PriceAtPurchase.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// ShippingAddress has no lifecycle of its own; it is created and destroyed
// with its owning order.
type ShippingAddress struct {
	ID         uint   `gorm:"primaryKey" json:"-"`
	OrderID    uint   `gorm:"uniqueIndex;not null" json:"-"`
	Name       string `gorm:"not null" json:"name"`
	Street     string `gorm:"not null" json:"street"`
	Avenue     string `json:"avenue,omitempty"`
	City       string `gorm:"not null" json:"city"`
	PostalCode string `gorm:"not null" json:"postalCode"`
	Phone      string `gorm:"not null" json:"phone"`
}

// Order is the aggregate root. It exclusively owns its lines and its optional
// shipping address; they are persisted and loaded as one unit.
type Order struct {
	ID              uint             `gorm:"primaryKey" json:"id"`
	Number          string           `gorm:"uniqueIndex;not null" json:"number"`
	UserID          uint             `gorm:"index;not null" json:"userId"`
	Lines           []Line           `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Total           decimal.Decimal  `gorm:"type:numeric(12,2);not null" json:"total"`
	Status          Status           `gorm:"not null" json:"status"`
	PaymentMethod   string           `gorm:"not null" json:"paymentMethod"`
	CreatedAt       time.Time        `json:"createdAt"`
	CustomerName    string           `gorm:"not null" json:"customerName"`
	CustomerEmail   string           `gorm:"not null" json:"customerEmail"`
	ShippingAddress *ShippingAddress `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"shippingAddress,omitempty"`
}

// New assembles a committed aggregate from already priced lines. Every order
// created here is completed immediately; there is no payment confirmation
// step in this system.
func New(number string, userID uint, customerName, customerEmail, paymentMethod string, lines []Line, addr *ShippingAddress) (*Order, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyOrder
	}
	if paymentMethod == "" {
		return nil, ErrNoPayment
	}
	total := decimal.Zero
	for _, l := range lines {
		if l.Quantity <= 0 {
			return nil, fmt.Errorf("%w: product %d", ErrInvalidLine, l.ProductID)
		}
		total = total.Add(l.Subtotal())
	}
	return &Order{
		Number:          number,
		UserID:          userID,
		Lines:           lines,
		Total:           total,
		Status:          StatusCompleted,
		PaymentMethod:   paymentMethod,
		CreatedAt:       time.Now().UTC(),
		CustomerName:    customerName,
		CustomerEmail:   customerEmail,
		ShippingAddress: addr,
	}, nil
}

func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	clone := *o
	clone.Lines = append([]Line(nil), o.Lines...)
	if o.ShippingAddress != nil {
		addr := *o.ShippingAddress
		clone.ShippingAddress = &addr
	}
	return &clone
}

type Repository interface {
	FindByID(ctx context.Context, id uint) (*Order, error)
	FindByNumber(ctx context.Context, number string) (*Order, error)
	ListByUser(ctx context.Context, userID uint) ([]*Order, error)
	ListAll(ctx context.Context) ([]*Order, error)
	ListCreatedSince(ctx context.Context, since time.Time) ([]*Order, error)
	Count(ctx context.Context) (int64, error)
}
