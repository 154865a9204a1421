package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// PlacedItem is the per-product slice of a PlacedEvent.
type PlacedItem struct {
	ProductID uint
	Quantity  int
}

// PlacedEvent is emitted after an order commit. It feeds read-only consumers
// (audit log, interest tracking); the stock mutation itself happens inside
// the order transaction, never through event handlers.
type PlacedEvent struct {
	OrderID    uint
	Number     string
	UserID     uint
	Items      []PlacedItem
	Total      decimal.Decimal
	OccurredAt time.Time
}

func (PlacedEvent) EventName() string { return "order.placed" }

func NewPlacedEvent(o *Order) PlacedEvent {
	items := make([]PlacedItem, 0, len(o.Lines))
	for _, l := range o.Lines {
		items = append(items, PlacedItem{ProductID: l.ProductID, Quantity: l.Quantity})
	}
	return PlacedEvent{
		OrderID:    o.ID,
		Number:     o.Number,
		UserID:     o.UserID,
		Items:      items,
		Total:      o.Total,
		OccurredAt: time.Now().UTC(),
	}
}
