package entity

import (
	"time"

	"github.com/google/uuid"
)

// IdempotencyKey caches the response of a processed checkout so a client
// retry (flaky mobile network, double tap) replays it instead of creating a
// duplicate order
type IdempotencyKey struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Key          string     `gorm:"uniqueIndex;size:255;not null"` // The idempotency key from client
	UserID       *uuid.UUID `gorm:"type:uuid;index"`               // nil for guest checkouts, scoped by key alone
	Endpoint     string     `gorm:"size:255;not null"` // e.g. "POST /orders"
	ResponseCode int        `gorm:"not null"`
	ResponseBody string     `gorm:"type:text"`
	CreatedAt    time.Time  `gorm:"autoCreateTime"`
	ExpiresAt    time.Time  `gorm:"not null;index"`
}

// TableName returns the table name for IdempotencyKey
func (IdempotencyKey) TableName() string {
	return "idempotency_keys"
}

// IsExpired checks if the idempotency key has expired
func (i *IdempotencyKey) IsExpired() bool {
	return time.Now().After(i.ExpiresAt)
}
