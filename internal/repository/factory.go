package repository

import (
	"github.com/currybox/currybox/internal/config"
	"github.com/currybox/currybox/internal/domain/builder"
	"github.com/currybox/currybox/internal/domain/cart"
	"github.com/currybox/currybox/internal/domain/catalog"
	"github.com/currybox/currybox/internal/domain/checkout"
	"github.com/currybox/currybox/internal/domain/order"
	"github.com/currybox/currybox/internal/logger"
	gormstore "github.com/currybox/currybox/internal/repository/gorm"
	"gorm.io/gorm"
)

// NewGormClient opens the Postgres connection used by the durable stores
func NewGormClient(cfg *config.Configuration, log *logger.Logger) (*gorm.DB, error) {
	return gormstore.NewClient(cfg, log)
}

// Repositories bundles every persistence adapter for injection
type Repositories struct {
	Catalog      catalog.Repository
	Builder      builder.Repository
	Cart         cart.Repository
	Checkout     checkout.Repository
	SavedCart    cart.SavedCartRepository
	PendingOrder order.PendingRepository
}

func NewRepositories(db *gorm.DB, cfg *config.Configuration, log *logger.Logger) Repositories {
	return Repositories{
		Catalog:      NewCatalogRepository(cfg, log),
		Builder:      gormstore.NewBuilderStateRepository(db),
		Cart:         gormstore.NewCartStateRepository(db),
		Checkout:     gormstore.NewCheckoutStateRepository(db),
		SavedCart:    gormstore.NewSavedCartRepository(db),
		PendingOrder: gormstore.NewPendingOrderRepository(db),
	}
}
