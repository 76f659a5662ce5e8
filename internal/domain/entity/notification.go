package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification events emitted by the order flow
const (
	NotificationEventOrderCreated       = "ORDER_CREATED"
	NotificationEventOrderStatusChanged = "ORDER_STATUS_CHANGED"
)

// Notification is a best-effort record of a user- or admin-facing message.
// Delivery never blocks or fails the operation that triggered it.
type Notification struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	Event     string     `gorm:"size:50;not null;index" json:"event"`
	OrderID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"order_id"`
	UserID    *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"` // nil for admin-facing notifications
	Title     string     `gorm:"size:255;not null" json:"title"`
	Body      string     `gorm:"type:text" json:"body"`
	Payload   string     `gorm:"type:text" json:"payload"` // JSON event payload
	ReadAt    *time.Time `json:"read_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new notification
func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Notification model
func (Notification) TableName() string {
	return "notifications"
}
