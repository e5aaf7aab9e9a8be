package builder

import "context"

// Repository persists builder state per session so the configurator survives
// a reload. Scoped separately from checkout state; clearing one never clears
// the other.
type Repository interface {
	Save(ctx context.Context, sessionID string, state State) error
	Load(ctx context.Context, sessionID string) (*State, error)
	Delete(ctx context.Context, sessionID string) error
}
