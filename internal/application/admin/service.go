package admin

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/domain/catalog"
	"github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/domain/order"
	"github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/domain/user"
	"github.com/shopspring/decimal"
)

const lowStockThreshold = 20

// Service aggregates reporting figures for the admin dashboard. It only ever
// reads from the stores.
type Service struct {
	orders   order.Repository
	products catalog.Repository
	users    user.Repository
}

func NewService(orders order.Repository, products catalog.Repository, users user.Repository) *Service {
	return &Service{orders: orders, products: products, users: users}
}

type Stats struct {
	Daily          decimal.Decimal `json:"daily"`
	Weekly         decimal.Decimal `json:"weekly"`
	Monthly        decimal.Decimal `json:"monthly"`
	TotalOrders    int64           `json:"totalOrders"`
	TotalRevenue   decimal.Decimal `json:"totalRevenue"`
	TotalCustomers int64           `json:"totalCustomers"`
	TotalProducts  int64           `json:"totalProducts"`
	LowStock       int64           `json:"lowStock"`
}

func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	now := time.Now().UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	weekStart := now.AddDate(0, 0, -7)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	daily, err := s.revenueSince(ctx, dayStart)
	if err != nil {
		return nil, err
	}
	weekly, err := s.revenueSince(ctx, weekStart)
	if err != nil {
		return nil, err
	}
	monthly, err := s.revenueSince(ctx, monthStart)
	if err != nil {
		return nil, err
	}

	all, err := s.orders.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("admin: list orders: %w", err)
	}
	totalRevenue := decimal.Zero
	for _, o := range all {
		totalRevenue = totalRevenue.Add(o.Total)
	}

	totalOrders, err := s.orders.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalCustomers, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalProducts, err := s.products.Count(ctx)
	if err != nil {
		return nil, err
	}
	lowStock, err := s.products.CountLowStock(ctx, lowStockThreshold)
	if err != nil {
		return nil, err
	}

	return &Stats{
		Daily:          daily,
		Weekly:         weekly,
		Monthly:        monthly,
		TotalOrders:    totalOrders,
		TotalRevenue:   totalRevenue,
		TotalCustomers: totalCustomers,
		TotalProducts:  totalProducts,
		LowStock:       lowStock,
	}, nil
}

// CategorySales is one row of the sales-by-category report.
type CategorySales struct {
	Category string          `json:"category"`
	Units    int             `json:"units"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// SalesByCategory aggregates sold units and revenue per product category.
// Lines whose product has since left the catalog fall into "uncategorized".
func (s *Service) SalesByCategory(ctx context.Context) ([]CategorySales, error) {
	orders, err := s.orders.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("admin: list orders: %w", err)
	}
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("admin: list products: %w", err)
	}
	categoryOf := make(map[uint]string, len(products))
	for _, p := range products {
		categoryOf[p.ID] = p.Category
	}

	rows := make(map[string]*CategorySales)
	for _, o := range orders {
		for _, l := range o.Lines {
			category, ok := categoryOf[l.ProductID]
			if !ok {
				category = "uncategorized"
			}
			row, ok := rows[category]
			if !ok {
				row = &CategorySales{Category: category, Revenue: decimal.Zero}
				rows[category] = row
			}
			row.Units += l.Quantity
			row.Revenue = row.Revenue.Add(l.Subtotal())
		}
	}

	out := make([]CategorySales, 0, len(rows))
	for _, row := range rows {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Revenue.Equal(out[j].Revenue) {
			return out[i].Revenue.GreaterThan(out[j].Revenue)
		}
		return out[i].Category < out[j].Category
	})
	return out, nil
}

// ProductSales is one row of the top-products report.
type ProductSales struct {
	ProductID uint            `json:"productId"`
	Name      string          `json:"name"`
	Units     int             `json:"units"`
	Revenue   decimal.Decimal `json:"revenue"`
}

const defaultTopProducts = 5

// TopProducts returns the best sellers by units sold. Names come from the
// line snapshots, so renamed or deleted products still report correctly.
func (s *Service) TopProducts(ctx context.Context, limit int) ([]ProductSales, error) {
	if limit <= 0 {
		limit = defaultTopProducts
	}
	orders, err := s.orders.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("admin: list orders: %w", err)
	}

	rows := make(map[uint]*ProductSales)
	for _, o := range orders {
		for _, l := range o.Lines {
			row, ok := rows[l.ProductID]
			if !ok {
				row = &ProductSales{ProductID: l.ProductID, Name: l.ProductName, Revenue: decimal.Zero}
				rows[l.ProductID] = row
			}
			row.Units += l.Quantity
			row.Revenue = row.Revenue.Add(l.Subtotal())
		}
	}

	out := make([]ProductSales, 0, len(rows))
	for _, row := range rows {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Units != out[j].Units {
			return out[i].Units > out[j].Units
		}
		return out[i].ProductID < out[j].ProductID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// PaymentSales is one row of the sales-by-payment-method report.
type PaymentSales struct {
	Method  string          `json:"method"`
	Orders  int             `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
}

// SalesByPayment aggregates order counts and revenue per payment method.
func (s *Service) SalesByPayment(ctx context.Context) ([]PaymentSales, error) {
	orders, err := s.orders.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("admin: list orders: %w", err)
	}

	rows := make(map[string]*PaymentSales)
	for _, o := range orders {
		row, ok := rows[o.PaymentMethod]
		if !ok {
			row = &PaymentSales{Method: o.PaymentMethod, Revenue: decimal.Zero}
			rows[o.PaymentMethod] = row
		}
		row.Orders++
		row.Revenue = row.Revenue.Add(o.Total)
	}

	out := make([]PaymentSales, 0, len(rows))
	for _, row := range rows {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Revenue.Equal(out[j].Revenue) {
			return out[i].Revenue.GreaterThan(out[j].Revenue)
		}
		return out[i].Method < out[j].Method
	})
	return out, nil
}

func (s *Service) revenueSince(ctx context.Context, since time.Time) (decimal.Decimal, error) {
	orders, err := s.orders.ListCreatedSince(ctx, since)
	if err != nil {
		return decimal.Zero, fmt.Errorf("admin: orders since %s: %w", since.Format(time.RFC3339), err)
	}
	sum := decimal.Zero
	for _, o := range orders {
		sum = sum.Add(o.Total)
	}
	return sum, nil
}
