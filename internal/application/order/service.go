package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/application/identity"
	"github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/domain/event"
	domain "github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/domain/order"
	"github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/observability"
	"github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/pkg/logging"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

var (
	ErrValidation = errors.New("order: validation")
	ErrForbidden  = errors.New("order: forbidden")
)

const publishTimeout = 300 * time.Millisecond

// Service is the order processor: it validates a requested line list against
// the catalog, prices it, mutates stock, and persists the aggregate.
type Service struct {
	store       Store
	orders      domain.Repository
	idGenerator IDGenerator
	publisher   event.Publisher
	metrics     *observability.Metrics
}

func NewService(store Store, orders domain.Repository, idGen IDGenerator, publisher event.Publisher, metrics *observability.Metrics) *Service {
	return &Service{
		store:       store,
		orders:      orders,
		idGenerator: idGen,
		publisher:   publisher,
		metrics:     metrics,
	}
}

type LineInput struct {
	ProductID uint
	Quantity  int
}

type AddressInput struct {
	Name       string
	Street     string
	Avenue     string
	City       string
	PostalCode string
	Phone      string
}

type PlaceOrderInput struct {
	Actor           *identity.Actor
	Lines           []LineInput
	PaymentMethod   string
	ShippingAddress *AddressInput
}

// PlaceOrder runs the whole placement inside one transaction: per line, in
// the order the caller submitted, look the product up, atomically decrement
// its stock, and snapshot its current unit price; then persist the aggregate.
// Any failure, including the durable write itself, rolls everything back, so
// a failed call leaves no product's stock changed.
func (s *Service) PlaceOrder(ctx context.Context, input PlaceOrderInput) (placed *domain.Order, err error) {
	logger := logging.FromContext(ctx).With(zap.String("component", "order_service"))

	ctx, span := otel.Tracer("ecoliving.order").Start(ctx, "order.place")
	start := time.Now()
	outcome := "success"
	defer func() {
		if err != nil {
			outcome = "error"
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.End()
		if s.metrics != nil {
			s.metrics.OrdersPlaced.WithLabelValues(outcome).Inc()
		}
		logger.Info("place_order_done",
			zap.String("outcome", outcome),
			zap.Float64("latency_seconds", time.Since(start).Seconds()),
		)
	}()

	if input.Actor == nil {
		return nil, identity.ErrUnauthenticated
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}
	span.SetAttributes(
		attribute.Int("order.lines", len(input.Lines)),
		attribute.Int64("order.user_id", int64(input.Actor.ID)),
	)

	number := s.idGenerator.NewID()

	var committed *domain.Order
	err = s.store.Atomically(ctx, func(tx Tx) error {
		lines := make([]domain.Line, 0, len(input.Lines))
		for _, req := range input.Lines {
			product, err := tx.FindProduct(ctx, req.ProductID)
			if err != nil {
				return fmt.Errorf("product %d: %w", req.ProductID, err)
			}
			if err := tx.DecrementStock(ctx, product.ID, req.Quantity); err != nil {
				return fmt.Errorf("product %q: %w", product.Name, err)
			}
			lines = append(lines, domain.Line{
				ProductID:       product.ID,
				ProductName:     product.Name,
				Quantity:        req.Quantity,
				PriceAtPurchase: product.Price,
			})
		}

		entity, err := domain.New(
			number,
			input.Actor.ID,
			input.Actor.Name,
			input.Actor.Email,
			input.PaymentMethod,
			lines,
			addressFromInput(input.ShippingAddress),
		)
		if err != nil {
			return err
		}
		if err := tx.CreateOrder(ctx, entity); err != nil {
			return fmt.Errorf("order: persist: %w", err)
		}
		committed = entity
		return nil
	})
	if err != nil {
		logger.Warn("place_order_failed", zap.String("number", number), zap.Error(err))
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.OrderValue.Observe(committed.Total.InexactFloat64())
	}
	s.publishPlaced(ctx, committed, logger)

	logger.Info("order_placed",
		zap.Uint("order_id", committed.ID),
		zap.String("number", committed.Number),
		zap.String("total", committed.Total.String()),
	)
	return committed, nil
}

// publishPlaced notifies read-only consumers. Publish failures are logged
// and do not fail the already committed order.
func (s *Service) publishPlaced(ctx context.Context, o *domain.Order, logger *zap.Logger) {
	if s.publisher == nil {
		return
	}
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := s.publisher.Publish(pubCtx, domain.NewPlacedEvent(o)); err != nil {
		logger.Warn("order_event_publish_failed",
			zap.String("number", o.Number),
			zap.Error(err),
		)
	}
}

func validateInput(input PlaceOrderInput) error {
	if len(input.Lines) == 0 {
		return fmt.Errorf("%w: at least one line is required", ErrValidation)
	}
	for _, l := range input.Lines {
		if l.ProductID == 0 {
			return fmt.Errorf("%w: product id is required", ErrValidation)
		}
		if l.Quantity <= 0 {
			return fmt.Errorf("%w: quantity must be greater than zero", ErrValidation)
		}
	}
	if input.PaymentMethod == "" {
		return fmt.Errorf("%w: payment method is required", ErrValidation)
	}
	return nil
}

func addressFromInput(in *AddressInput) *domain.ShippingAddress {
	if in == nil {
		return nil
	}
	return &domain.ShippingAddress{
		Name:       in.Name,
		Street:     in.Street,
		Avenue:     in.Avenue,
		City:       in.City,
		PostalCode: in.PostalCode,
		Phone:      in.Phone,
	}
}

// Get returns a single order. Customers may only read their own orders;
// admins may read any.
func (s *Service) Get(ctx context.Context, actor *identity.Actor, id uint) (*domain.Order, error) {
	if actor == nil {
		return nil, identity.ErrUnauthenticated
	}
	o, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.UserID != actor.ID && !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	return o, nil
}

// ListByUser returns a user's order history, subject to the same ownership
// rule as Get.
func (s *Service) ListByUser(ctx context.Context, actor *identity.Actor, userID uint) ([]*domain.Order, error) {
	if actor == nil {
		return nil, identity.ErrUnauthenticated
	}
	if userID != actor.ID && !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	return s.orders.ListByUser(ctx, userID)
}

// ListAll is the report-aggregator surface; the gate restricts it to admins.
func (s *Service) ListAll(ctx context.Context) ([]*domain.Order, error) {
	return s.orders.ListAll(ctx)
}
