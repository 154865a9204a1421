package catalog

import (
	"context"
	"strings"

	domain "github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/domain/catalog"
)

// Service exposes the read-only catalog surface. The order core never
// creates, deletes, or reprices products; stock moves only inside the order
// transaction.
type Service struct {
	products domain.Repository
}

func NewService(products domain.Repository) *Service {
	return &Service{products: products}
}

func (s *Service) List(ctx context.Context) ([]*domain.Product, error) {
	return s.products.List(ctx)
}

func (s *Service) Get(ctx context.Context, id uint) (*domain.Product, error) {
	return s.products.FindByID(ctx, id)
}

func (s *Service) ListByCategory(ctx context.Context, category string) ([]*domain.Product, error) {
	return s.products.ListByCategory(ctx, category)
}

func (s *Service) Search(ctx context.Context, query string) ([]*domain.Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.products.List(ctx)
	}
	return s.products.Search(ctx, query)
}

func (s *Service) Categories(ctx context.Context) ([]string, error) {
	return s.products.Categories(ctx)
}
