package cart

import "context"

// Repository persists cart state per session
type Repository interface {
	Save(ctx context.Context, sessionID string, state State) error
	Load(ctx context.Context, sessionID string) (*State, error)
	Delete(ctx context.Context, sessionID string) error
}

// SavedCartRepository holds the user-scoped server-side copy used for
// cross-device continuity. Sync against it is strictly best-effort: failures
// are logged and swallowed, cart usability never depends on it.
type SavedCartRepository interface {
	Save(ctx context.Context, userID string, state State) error
	Load(ctx context.Context, userID string) (*State, error)
	Delete(ctx context.Context, userID string) error
}
