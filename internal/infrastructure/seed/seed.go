package seed

import (
	"context"
	"fmt"

	"github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/domain/catalog"
	"github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/domain/user"
	"github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/pkg/logging"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// ProductStore is the seed-only write surface of the catalog.
type ProductStore interface {
	Put(ctx context.Context, p *catalog.Product) error
	Count(ctx context.Context) (int64, error)
}

// Apply inserts the starter accounts and catalog when the stores are empty.
// It is idempotent across restarts.
func Apply(ctx context.Context, users user.Repository, products ProductStore) error {
	logger := logging.FromContext(ctx).With(zap.String("component", "seed"))

	userCount, err := users.Count(ctx)
	if err != nil {
		return fmt.Errorf("seed: count users: %w", err)
	}
	if userCount == 0 {
		for _, su := range starterUsers() {
			hash, err := bcrypt.GenerateFromPassword([]byte(su.password), bcrypt.DefaultCost)
			if err != nil {
				return fmt.Errorf("seed: hash password: %w", err)
			}
			u, err := user.New(su.email, su.name, string(hash), su.role)
			if err != nil {
				return err
			}
			if err := users.Create(ctx, u); err != nil {
				return fmt.Errorf("seed: create user %s: %w", su.email, err)
			}
		}
		logger.Info("seed_users_created", zap.Int("count", len(starterUsers())))
	}

	productCount, err := products.Count(ctx)
	if err != nil {
		return fmt.Errorf("seed: count products: %w", err)
	}
	if productCount == 0 {
		catalogProducts := starterCatalog()
		for _, p := range catalogProducts {
			if err := products.Put(ctx, p); err != nil {
				return fmt.Errorf("seed: create product %s: %w", p.Name, err)
			}
		}
		logger.Info("seed_products_created", zap.Int("count", len(catalogProducts)))
	}

	return nil
}

type starterUser struct {
	email    string
	name     string
	password string
	role     user.Role
}

func starterUsers() []starterUser {
	return []starterUser{
		{email: "admin@ecoliving.com", name: "EcoLiving Admin", password: "admin1234", role: user.RoleAdmin},
		{email: "cliente@ecoliving.com", name: "Cliente Demo", password: "cliente1234", role: user.RoleCustomer},
	}
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func starterCatalog() []*catalog.Product {
	return []*catalog.Product{
		{Name: "Bamboo Toothbrush Set", Description: "Pack of four biodegradable bamboo toothbrushes.", Price: price("9.99"), Category: "personal-care", Image: "/images/bamboo-toothbrush.jpg", Stock: 120},
		{Name: "Reusable Water Bottle", Description: "Insulated stainless steel bottle, 750ml.", Price: price("24.50"), Category: "kitchen", Image: "/images/water-bottle.jpg", Stock: 80},
		{Name: "Organic Cotton Tote", Description: "Heavy-duty tote made from certified organic cotton.", Price: price("14.00"), Category: "bags", Image: "/images/cotton-tote.jpg", Stock: 200},
		{Name: "Solar Garden Lights", Description: "Set of six solar-powered LED path lights.", Price: price("39.90"), Category: "home", Image: "/images/solar-lights.jpg", Stock: 45},
		{Name: "Beeswax Food Wraps", Description: "Three reusable wraps replacing cling film.", Price: price("17.25"), Category: "kitchen", Image: "/images/beeswax-wraps.jpg", Stock: 150},
		{Name: "Compost Bin", Description: "Odour-sealed kitchen compost bin, 7L.", Price: price("32.00"), Category: "home", Image: "/images/compost-bin.jpg", Stock: 15},
	}
}
