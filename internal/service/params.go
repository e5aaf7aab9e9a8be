package service

import (
	"sync"

	"github.com/currybox/currybox/internal/cache"
	"github.com/currybox/currybox/internal/config"
	"github.com/currybox/currybox/internal/domain/builder"
	"github.com/currybox/currybox/internal/domain/cart"
	"github.com/currybox/currybox/internal/domain/catalog"
	"github.com/currybox/currybox/internal/domain/checkout"
	"github.com/currybox/currybox/internal/domain/order"
	"github.com/currybox/currybox/internal/domain/pricing"
	"github.com/currybox/currybox/internal/integration/orderapi"
	"github.com/currybox/currybox/internal/integration/payment"
	"github.com/currybox/currybox/internal/integration/promo"
	"github.com/currybox/currybox/internal/logger"
	"github.com/currybox/currybox/internal/reconciler"
	"github.com/samber/lo"
)

// ServiceParams bundles the dependencies every service draws from so
// constructors stay uniform
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	Cache  cache.Cache
	Locks  *SessionLocks

	CatalogRepo      catalog.Repository
	BuilderRepo      builder.Repository
	CartRepo         cart.Repository
	CheckoutRepo     checkout.Repository
	SavedCartRepo    cart.SavedCartRepository
	PendingOrderRepo order.PendingRepository

	PromoClient   promo.Client
	PaymentClient payment.Client
	OrderClient   orderapi.Client
	Reconciler    *reconciler.Reconciler
}

// PricingRules maps the configured constants into the engine's rule set
func (p ServiceParams) PricingRules() pricing.RuleSet {
	return pricing.RuleSet{
		FreeDeliveryThreshold: p.Config.Pricing.FreeDeliveryThreshold,
		DeliveryFee:           p.Config.Pricing.DeliveryFee,
		VolumeTiers: lo.Map(p.Config.Pricing.VolumeTiers, func(t config.VolumeTier, _ int) pricing.VolumeTier {
			return pricing.VolumeTier{MinItems: t.MinItems, Percent: t.Percent}
		}),
	}
}

// SessionLocks serialises access to one session's state. Domain stores have a
// single logical writer and carry no locking themselves; this is where that
// contract is enforced.
type SessionLocks struct {
	locks sync.Map
}

func NewSessionLocks() *SessionLocks {
	return &SessionLocks{}
}

// Acquire locks the session and returns the unlock function
func (l *SessionLocks) Acquire(sessionID string) func() {
	v, _ := l.locks.LoadOrStore(sessionID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
