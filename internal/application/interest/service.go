package interest

import (
	"context"
	"fmt"

	"github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/application/identity"
	"github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/domain/catalog"
	"github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/domain/event"
	domain "github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/domain/interest"
	"github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/domain/order"
	"github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/pkg/logging"
	"go.uber.org/zap"
)

const (
	clickWeight    = 1
	purchaseWeight = 3

	recommendationLimit = 8
)

// Service tracks which products a user pays attention to and turns those
// signals into recommendations. Clicks arrive through Track; purchases arrive
// through the order.placed event, weighted heavier than a click.
type Service struct {
	interests domain.Repository
	products  catalog.Repository
}

func NewService(interests domain.Repository, products catalog.Repository) *Service {
	return &Service{interests: interests, products: products}
}

// Track records a product click for the acting user. The product must exist;
// dead links never accumulate score.
func (s *Service) Track(ctx context.Context, actor *identity.Actor, productID uint) error {
	if actor == nil {
		return identity.ErrUnauthenticated
	}
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return err
	}
	return s.interests.Bump(ctx, actor.ID, productID, clickWeight)
}

// Recommended ranks the catalog for the acting user: products from the
// categories the user has shown the most interest in come first, already
// scored products excluded. With no signals yet it degrades to the plain
// catalog listing.
func (s *Service) Recommended(ctx context.Context, actor *identity.Actor) ([]*catalog.Product, error) {
	if actor == nil {
		return nil, identity.ErrUnauthenticated
	}

	interests, err := s.interests.ListByUser(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("interest: list: %w", err)
	}

	all, err := s.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("interest: catalog: %w", err)
	}

	seen := make(map[uint]struct{}, len(interests))
	categoryRank := make(map[string]int)
	for rank, in := range interests {
		seen[in.ProductID] = struct{}{}
		if p := findProduct(all, in.ProductID); p != nil {
			if _, ok := categoryRank[p.Category]; !ok {
				categoryRank[p.Category] = rank
			}
		}
	}

	var preferred, rest []*catalog.Product
	for _, p := range all {
		if _, ok := seen[p.ID]; ok {
			continue
		}
		if _, ok := categoryRank[p.Category]; ok {
			preferred = append(preferred, p)
		} else {
			rest = append(rest, p)
		}
	}

	out := append(preferred, rest...)
	if len(out) > recommendationLimit {
		out = out[:recommendationLimit]
	}
	return out, nil
}

// Register subscribes the purchase consumer on the bus.
func (s *Service) Register(sub event.Subscriber) {
	sub.Subscribe(order.PlacedEvent{}.EventName(), s.handleOrderPlaced)
}

func (s *Service) handleOrderPlaced(ctx context.Context, e event.Event) error {
	placed, ok := e.(order.PlacedEvent)
	if !ok {
		return fmt.Errorf("interest: unexpected event payload %T", e)
	}
	for _, item := range placed.Items {
		if err := s.interests.Bump(ctx, placed.UserID, item.ProductID, purchaseWeight); err != nil {
			logging.FromContext(ctx).Warn("interest_purchase_bump_failed",
				zap.Uint("user_id", placed.UserID),
				zap.Uint("product_id", item.ProductID),
				zap.Error(err),
			)
		}
	}
	return nil
}

func findProduct(products []*catalog.Product, id uint) *catalog.Product {
	for _, p := range products {
		if p.ID == id {
			return p
		}
	}
	return nil
}
