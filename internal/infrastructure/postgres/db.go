package postgres

import (
	"fmt"
	"time"

	"github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/domain/cart"
	"github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/domain/catalog"
	"github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/domain/interest"
	"github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/domain/order"
	"github.com/DiegoEspinoz/Proyecto-innovacion-digital/internal/domain/user"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the database and prepares the connection pool. Query logging
// is left silent; the service has its own structured logs.
func Connect(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		// Translate driver errors so duplicate keys surface as
		// gorm.ErrDuplicatedKey instead of raw pq errors.
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("postgres: connect: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("postgres: pool handle: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

// Migrate creates or updates all tables used by the service.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&user.User{},
		&catalog.Product{},
		&order.Order{},
		&order.Line{},
		&order.ShippingAddress{},
		&cart.Item{},
		&interest.Interest{},
	); err != nil {
		return fmt.Errorf("postgres: migrate: %w", err)
	}
	return nil
}
