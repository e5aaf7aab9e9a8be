package gorm

import (
	"context"
	"fmt"
	"time"

	"github.com/currybox/currybox/internal/domain/builder"
	"github.com/currybox/currybox/internal/domain/cart"
	"github.com/currybox/currybox/internal/domain/checkout"
	ierr "github.com/currybox/currybox/internal/errors"
	jsoniter "github.com/json-iterator/go"
	"gorm.io/gorm"
)

var jsonCodec = jsoniter.ConfigCompatibleWithStandardLibrary

// Scopes for session-scoped state. Distinct keys per scope guarantee that
// clearing one store never clears another.
const (
	ScopeBuilder  = "builder"
	ScopeCart     = "cart"
	ScopeCheckout = "checkout"
)

func sessionKey(scope, sessionID string) string {
	return fmt.Sprintf("%s:%s", scope, sessionID)
}

// sessionStateStore is the shared durable key-value implementation behind the
// builder, cart and checkout repositories
type sessionStateStore struct {
	db    *gorm.DB
	scope string
}

func (s *sessionStateStore) save(ctx context.Context, sessionID string, payload any) error {
	data, err := jsonCodec.Marshal(payload)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to persist session state").
			Mark(ierr.ErrSystem)
	}

	record := SessionStateRecord{
		Key:       sessionKey(s.scope, sessionID),
		Scope:     s.scope,
		SessionID: sessionID,
		Payload:   data,
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Save(&record).Error; err != nil {
		return ierr.WithError(err).
			WithHint("Failed to persist session state").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

// load unmarshals the stored payload into out; found is false when the
// session has no persisted state yet, which is not an error
func (s *sessionStateStore) load(ctx context.Context, sessionID string, out any) (bool, error) {
	var record SessionStateRecord
	err := s.db.WithContext(ctx).
		First(&record, "key = ?", sessionKey(s.scope, sessionID)).Error
	if err != nil {
		if ierr.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, ierr.WithError(err).
			WithHint("Failed to load session state").
			Mark(ierr.ErrDatabase)
	}

	if err := jsonCodec.Unmarshal(record.Payload, out); err != nil {
		return false, ierr.WithError(err).
			WithHint("Failed to load session state").
			Mark(ierr.ErrSystem)
	}
	return true, nil
}

func (s *sessionStateStore) delete(ctx context.Context, sessionID string) error {
	err := s.db.WithContext(ctx).
		Delete(&SessionStateRecord{}, "key = ?", sessionKey(s.scope, sessionID)).Error
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to clear session state").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

type builderStateRepository struct {
	sessionStateStore
}

// NewBuilderStateRepository persists builder state under the builder scope
func NewBuilderStateRepository(db *gorm.DB) builder.Repository {
	return &builderStateRepository{sessionStateStore{db: db, scope: ScopeBuilder}}
}

func (r *builderStateRepository) Save(ctx context.Context, sessionID string, state builder.State) error {
	return r.save(ctx, sessionID, state)
}

func (r *builderStateRepository) Load(ctx context.Context, sessionID string) (*builder.State, error) {
	var state builder.State
	found, err := r.load(ctx, sessionID, &state)
	if err != nil || !found {
		return nil, err
	}
	return &state, nil
}

func (r *builderStateRepository) Delete(ctx context.Context, sessionID string) error {
	return r.delete(ctx, sessionID)
}

type cartStateRepository struct {
	sessionStateStore
}

// NewCartStateRepository persists cart state under the cart scope
func NewCartStateRepository(db *gorm.DB) cart.Repository {
	return &cartStateRepository{sessionStateStore{db: db, scope: ScopeCart}}
}

func (r *cartStateRepository) Save(ctx context.Context, sessionID string, state cart.State) error {
	return r.save(ctx, sessionID, state)
}

func (r *cartStateRepository) Load(ctx context.Context, sessionID string) (*cart.State, error) {
	var state cart.State
	found, err := r.load(ctx, sessionID, &state)
	if err != nil || !found {
		return nil, err
	}
	return &state, nil
}

func (r *cartStateRepository) Delete(ctx context.Context, sessionID string) error {
	return r.delete(ctx, sessionID)
}

type checkoutStateRepository struct {
	sessionStateStore
}

// NewCheckoutStateRepository persists checkout state under the checkout scope
func NewCheckoutStateRepository(db *gorm.DB) checkout.Repository {
	return &checkoutStateRepository{sessionStateStore{db: db, scope: ScopeCheckout}}
}

func (r *checkoutStateRepository) Save(ctx context.Context, sessionID string, state checkout.State) error {
	return r.save(ctx, sessionID, state)
}

func (r *checkoutStateRepository) Load(ctx context.Context, sessionID string) (*checkout.State, error) {
	var state checkout.State
	found, err := r.load(ctx, sessionID, &state)
	if err != nil || !found {
		return nil, err
	}
	return &state, nil
}

func (r *checkoutStateRepository) Delete(ctx context.Context, sessionID string) error {
	return r.delete(ctx, sessionID)
}
