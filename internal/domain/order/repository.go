package order

import "context"

// PendingRepository persists dangling payments so reconciliation survives a
// process restart
type PendingRepository interface {
	Save(ctx context.Context, pending *Pending) error
	Get(ctx context.Context, id string) (*Pending, error)
	GetByToken(ctx context.Context, paymentToken string) (*Pending, error)
	ListOpen(ctx context.Context) ([]*Pending, error)
	Update(ctx context.Context, pending *Pending) error
}
