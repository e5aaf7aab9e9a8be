package gorm

import (
	"context"
	"time"

	"github.com/currybox/currybox/internal/domain/cart"
	ierr "github.com/currybox/currybox/internal/errors"
	"gorm.io/gorm"
)

type savedCartRepository struct {
	db *gorm.DB
}

// NewSavedCartRepository stores the user-scoped server-side cart copy
func NewSavedCartRepository(db *gorm.DB) cart.SavedCartRepository {
	return &savedCartRepository{db: db}
}

func (r *savedCartRepository) Save(ctx context.Context, userID string, state cart.State) error {
	data, err := jsonCodec.Marshal(state)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to save cart").
			Mark(ierr.ErrSystem)
	}

	record := SavedCartRecord{
		UserID:    userID,
		Payload:   data,
		UpdatedAt: time.Now().UTC(),
	}
	if err := r.db.WithContext(ctx).Save(&record).Error; err != nil {
		return ierr.WithError(err).
			WithHint("Failed to save cart").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *savedCartRepository) Load(ctx context.Context, userID string) (*cart.State, error) {
	var record SavedCartRecord
	err := r.db.WithContext(ctx).First(&record, "user_id = ?", userID).Error
	if err != nil {
		if ierr.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to load saved cart").
			Mark(ierr.ErrDatabase)
	}

	var state cart.State
	if err := jsonCodec.Unmarshal(record.Payload, &state); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to load saved cart").
			Mark(ierr.ErrSystem)
	}
	return &state, nil
}

func (r *savedCartRepository) Delete(ctx context.Context, userID string) error {
	err := r.db.WithContext(ctx).Delete(&SavedCartRecord{}, "user_id = ?", userID).Error
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete saved cart").
			Mark(ierr.ErrDatabase)
	}
	return nil
}
