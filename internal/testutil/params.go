package testutil

import (
	"github.com/currybox/currybox/internal/cache"
	"github.com/currybox/currybox/internal/logger"
	"github.com/currybox/currybox/internal/reconciler"
	"github.com/currybox/currybox/internal/service"
)

// Stubs exposes the fakes behind a test ServiceParams so assertions can reach
// into them
type Stubs struct {
	Promo         *StubPromoClient
	Payment       *StubPaymentClient
	Order         *StubOrderClient
	BuilderRepo   *InMemoryBuilderRepository
	CartRepo      *InMemoryCartRepository
	CheckoutRepo  *InMemoryCheckoutRepository
	SavedCarts    *InMemorySavedCartRepository
	PendingOrders *InMemoryPendingOrderRepository
	Reconciler    *reconciler.Reconciler
}

// NewServiceParams builds a fully in-memory ServiceParams for service tests.
// The reconciler is constructed but not started; queued records sit in its
// buffer unless the test starts it explicitly.
func NewServiceParams() (service.ServiceParams, *Stubs) {
	stubs := &Stubs{
		Promo:         &StubPromoClient{},
		Payment:       &StubPaymentClient{},
		Order:         &StubOrderClient{},
		BuilderRepo:   NewInMemoryBuilderRepository(),
		CartRepo:      NewInMemoryCartRepository(),
		CheckoutRepo:  NewInMemoryCheckoutRepository(),
		SavedCarts:    NewInMemorySavedCartRepository(),
		PendingOrders: NewInMemoryPendingOrderRepository(),
	}
	stubs.Reconciler = reconciler.New(stubs.PendingOrders, stubs.Order, logger.L)

	params := service.ServiceParams{
		Logger:           logger.L,
		Config:           TestConfig(),
		Cache:            cache.NewInMemoryCache(),
		Locks:            service.NewSessionLocks(),
		CatalogRepo:      NewStaticCatalogRepository(TestCatalog()),
		BuilderRepo:      stubs.BuilderRepo,
		CartRepo:         stubs.CartRepo,
		CheckoutRepo:     stubs.CheckoutRepo,
		SavedCartRepo:    stubs.SavedCarts,
		PendingOrderRepo: stubs.PendingOrders,
		PromoClient:      stubs.Promo,
		PaymentClient:    stubs.Payment,
		OrderClient:      stubs.Order,
		Reconciler:       stubs.Reconciler,
	}
	return params, stubs
}
