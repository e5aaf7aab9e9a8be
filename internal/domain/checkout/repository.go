package checkout

import "context"

// Repository persists checkout state per session, under a key scope distinct
// from the builder's so clearing one never clears the other
type Repository interface {
	Save(ctx context.Context, sessionID string, state State) error
	Load(ctx context.Context, sessionID string) (*State, error)
	Delete(ctx context.Context, sessionID string) error
}
