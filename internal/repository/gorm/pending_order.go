package gorm

import (
	"context"
	"time"

	"github.com/currybox/currybox/internal/domain/order"
	ierr "github.com/currybox/currybox/internal/errors"
	"gorm.io/gorm"
)

type pendingOrderRepository struct {
	db *gorm.DB
}

// NewPendingOrderRepository persists dangling payments awaiting an order
// record so reconciliation survives a restart
func NewPendingOrderRepository(db *gorm.DB) order.PendingRepository {
	return &pendingOrderRepository{db: db}
}

func (r *pendingOrderRepository) Save(ctx context.Context, pending *order.Pending) error {
	record, err := toPendingRecord(pending)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return ierr.WithError(err).
			WithHint("Failed to record pending order").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *pendingOrderRepository) Get(ctx context.Context, id string) (*order.Pending, error) {
	var record PendingOrderRecord
	err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error
	if err != nil {
		if ierr.Is(err, gorm.ErrRecordNotFound) {
			return nil, ierr.NewError("pending order not found").
				WithHint("Pending order not found").
				WithReportableDetails(map[string]any{"id": id}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).Mark(ierr.ErrDatabase)
	}
	return fromPendingRecord(&record)
}

func (r *pendingOrderRepository) GetByToken(ctx context.Context, paymentToken string) (*order.Pending, error) {
	var record PendingOrderRecord
	err := r.db.WithContext(ctx).First(&record, "payment_token = ?", paymentToken).Error
	if err != nil {
		if ierr.Is(err, gorm.ErrRecordNotFound) {
			return nil, ierr.NewError("pending order not found").
				WithHint("Pending order not found").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).Mark(ierr.ErrDatabase)
	}
	return fromPendingRecord(&record)
}

func (r *pendingOrderRepository) ListOpen(ctx context.Context) ([]*order.Pending, error) {
	var records []PendingOrderRecord
	err := r.db.WithContext(ctx).
		Where("status = ?", string(order.PendingStatusOpen)).
		Order("created_at asc").
		Find(&records).Error
	if err != nil {
		return nil, ierr.WithError(err).Mark(ierr.ErrDatabase)
	}

	out := make([]*order.Pending, 0, len(records))
	for i := range records {
		pending, err := fromPendingRecord(&records[i])
		if err != nil {
			return nil, err
		}
		out = append(out, pending)
	}
	return out, nil
}

func (r *pendingOrderRepository) Update(ctx context.Context, pending *order.Pending) error {
	record, err := toPendingRecord(pending)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Save(record).Error; err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update pending order").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func toPendingRecord(pending *order.Pending) (*PendingOrderRecord, error) {
	payload, err := jsonCodec.Marshal(pending.Snapshot)
	if err != nil {
		return nil, ierr.WithError(err).Mark(ierr.ErrSystem)
	}
	return &PendingOrderRecord{
		ID:           pending.ID,
		Reference:    pending.Reference,
		PaymentToken: pending.PaymentToken,
		SessionID:    pending.SessionID,
		Payload:      payload,
		Status:       string(pending.Status),
		Attempts:     pending.Attempts,
		LastError:    pending.LastError,
		CreatedAt:    pending.CreatedAt,
		UpdatedAt:    time.Now().UTC(),
	}, nil
}

func fromPendingRecord(record *PendingOrderRecord) (*order.Pending, error) {
	var snapshot order.Snapshot
	if err := jsonCodec.Unmarshal(record.Payload, &snapshot); err != nil {
		return nil, ierr.WithError(err).Mark(ierr.ErrSystem)
	}
	return &order.Pending{
		ID:           record.ID,
		Reference:    record.Reference,
		PaymentToken: record.PaymentToken,
		SessionID:    record.SessionID,
		Snapshot:     snapshot,
		Status:       order.PendingStatus(record.Status),
		Attempts:     record.Attempts,
		LastError:    record.LastError,
		CreatedAt:    record.CreatedAt,
		UpdatedAt:    record.UpdatedAt,
	}, nil
}
