package gorm

import (
	"time"

	"gorm.io/datatypes"
)

// SessionStateRecord is one durable key-value entry of session-scoped state.
// The key is scope:sessionID; builder and checkout state live under distinct
// scopes so clearing one never clears the other.
type SessionStateRecord struct {
	Key       string         `gorm:"primaryKey;size:128"`
	Scope     string         `gorm:"size:32;index"`
	SessionID string         `gorm:"size:64;index"`
	Payload   datatypes.JSON `gorm:"not null"`
	UpdatedAt time.Time
}

// SavedCartRecord is the user-scoped server-side cart copy used for
// cross-device continuity
type SavedCartRecord struct {
	UserID    string         `gorm:"primaryKey;size:64"`
	Payload   datatypes.JSON `gorm:"not null"`
	UpdatedAt time.Time
}

// PendingOrderRecord is a dangling payment awaiting an order record
type PendingOrderRecord struct {
	ID           string         `gorm:"primaryKey;size:64"`
	Reference    string         `gorm:"size:16;index"`
	PaymentToken string         `gorm:"size:128;uniqueIndex"`
	SessionID    string         `gorm:"size:64;index"`
	Payload      datatypes.JSON `gorm:"not null"`
	Status       string         `gorm:"size:16;index"`
	Attempts     int
	LastError    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
