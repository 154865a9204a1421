package audit

import (
	"context"
	"fmt"

	"github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/domain/event"
	"github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/domain/order"
	"go.uber.org/zap"
)

// Recorder writes an audit trail entry for every committed order. It is a
// read-only consumer; it never touches stock or order rows.
type Recorder struct {
	log *zap.Logger
}

func NewRecorder(logger *zap.Logger) *Recorder {
	return &Recorder{log: logger.With(zap.String("component", "audit"))}
}

// Register subscribes the recorder on the bus.
func (r *Recorder) Register(sub event.Subscriber) {
	sub.Subscribe(order.PlacedEvent{}.EventName(), r.handleOrderPlaced)
}

func (r *Recorder) handleOrderPlaced(ctx context.Context, e event.Event) error {
	_ = ctx

	placed, ok := e.(order.PlacedEvent)
	if !ok {
		return fmt.Errorf("audit: unexpected event payload %T", e)
	}
	r.log.Info("order_audit",
		zap.Uint("order_id", placed.OrderID),
		zap.String("number", placed.Number),
		zap.Uint("user_id", placed.UserID),
		zap.Int("lines", len(placed.Items)),
		zap.String("total", placed.Total.String()),
		zap.Time("occurred_at", placed.OccurredAt),
	)
	return nil
}
