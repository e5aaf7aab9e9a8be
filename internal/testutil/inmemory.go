package testutil

import (
	"context"
	"sync"

	"github.com/currybox/currybox/internal/domain/builder"
	"github.com/currybox/currybox/internal/domain/cart"
	"github.com/currybox/currybox/internal/domain/catalog"
	"github.com/currybox/currybox/internal/domain/checkout"
	"github.com/currybox/currybox/internal/domain/order"
	ierr "github.com/currybox/currybox/internal/errors"
)

// InMemoryBuilderRepository is a map-backed builder.Repository for tests
type InMemoryBuilderRepository struct {
	mu     sync.Mutex
	states map[string]builder.State
}

func NewInMemoryBuilderRepository() *InMemoryBuilderRepository {
	return &InMemoryBuilderRepository{states: make(map[string]builder.State)}
}

func (r *InMemoryBuilderRepository) Save(_ context.Context, sessionID string, state builder.State) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states[sessionID] = state
	return nil
}

func (r *InMemoryBuilderRepository) Load(_ context.Context, sessionID string) (*builder.State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	state, ok := r.states[sessionID]
	if !ok {
		return nil, nil
	}
	return &state, nil
}

func (r *InMemoryBuilderRepository) Delete(_ context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.states, sessionID)
	return nil
}

// InMemoryCartRepository is a map-backed cart.Repository for tests
type InMemoryCartRepository struct {
	mu     sync.Mutex
	states map[string]cart.State
}

func NewInMemoryCartRepository() *InMemoryCartRepository {
	return &InMemoryCartRepository{states: make(map[string]cart.State)}
}

func (r *InMemoryCartRepository) Save(_ context.Context, sessionID string, state cart.State) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states[sessionID] = state
	return nil
}

func (r *InMemoryCartRepository) Load(_ context.Context, sessionID string) (*cart.State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	state, ok := r.states[sessionID]
	if !ok {
		return nil, nil
	}
	return &state, nil
}

func (r *InMemoryCartRepository) Delete(_ context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.states, sessionID)
	return nil
}

// InMemoryCheckoutRepository is a map-backed checkout.Repository for tests
type InMemoryCheckoutRepository struct {
	mu     sync.Mutex
	states map[string]checkout.State
}

func NewInMemoryCheckoutRepository() *InMemoryCheckoutRepository {
	return &InMemoryCheckoutRepository{states: make(map[string]checkout.State)}
}

func (r *InMemoryCheckoutRepository) Save(_ context.Context, sessionID string, state checkout.State) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states[sessionID] = state
	return nil
}

func (r *InMemoryCheckoutRepository) Load(_ context.Context, sessionID string) (*checkout.State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	state, ok := r.states[sessionID]
	if !ok {
		return nil, nil
	}
	return &state, nil
}

func (r *InMemoryCheckoutRepository) Delete(_ context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.states, sessionID)
	return nil
}

// InMemorySavedCartRepository is a map-backed cart.SavedCartRepository
type InMemorySavedCartRepository struct {
	mu     sync.Mutex
	states map[string]cart.State
}

func NewInMemorySavedCartRepository() *InMemorySavedCartRepository {
	return &InMemorySavedCartRepository{states: make(map[string]cart.State)}
}

func (r *InMemorySavedCartRepository) Save(_ context.Context, userID string, state cart.State) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states[userID] = state
	return nil
}

func (r *InMemorySavedCartRepository) Load(_ context.Context, userID string) (*cart.State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	state, ok := r.states[userID]
	if !ok {
		return nil, nil
	}
	return &state, nil
}

func (r *InMemorySavedCartRepository) Delete(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.states, userID)
	return nil
}

// InMemoryPendingOrderRepository is a map-backed order.PendingRepository
type InMemoryPendingOrderRepository struct {
	mu      sync.Mutex
	records map[string]*order.Pending
}

func NewInMemoryPendingOrderRepository() *InMemoryPendingOrderRepository {
	return &InMemoryPendingOrderRepository{records: make(map[string]*order.Pending)}
}

func (r *InMemoryPendingOrderRepository) Save(_ context.Context, pending *order.Pending) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := *pending
	r.records[pending.ID] = &p
	return nil
}

func (r *InMemoryPendingOrderRepository) Get(_ context.Context, id string) (*order.Pending, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	pending, ok := r.records[id]
	if !ok {
		return nil, ierr.NewError("pending order not found").Mark(ierr.ErrNotFound)
	}
	p := *pending
	return &p, nil
}

func (r *InMemoryPendingOrderRepository) GetByToken(_ context.Context, paymentToken string) (*order.Pending, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, pending := range r.records {
		if pending.PaymentToken == paymentToken {
			p := *pending
			return &p, nil
		}
	}
	return nil, ierr.NewError("pending order not found").Mark(ierr.ErrNotFound)
}

func (r *InMemoryPendingOrderRepository) ListOpen(_ context.Context) ([]*order.Pending, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*order.Pending, 0)
	for _, pending := range r.records {
		if pending.Status == order.PendingStatusOpen {
			p := *pending
			out = append(out, &p)
		}
	}
	return out, nil
}

func (r *InMemoryPendingOrderRepository) Update(_ context.Context, pending *order.Pending) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := *pending
	r.records[pending.ID] = &p
	return nil
}

// StaticCatalogRepository serves a fixed in-memory catalog
type StaticCatalogRepository struct {
	catalog *catalog.Catalog
}

func NewStaticCatalogRepository(c *catalog.Catalog) *StaticCatalogRepository {
	return &StaticCatalogRepository{catalog: c}
}

func (r *StaticCatalogRepository) GetCatalog(_ context.Context) (*catalog.Catalog, error) {
	return r.catalog, nil
}
