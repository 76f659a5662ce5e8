package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/zaikabox/zaikabox-api/internal/domain/enum"
	"gorm.io/gorm"
)

// PaymentTransaction tracks the gateway-side payment for an order. An order
// has at most one active transaction; duplicate gateway callbacks for the
// same terminal state are no-ops.
type PaymentTransaction struct {
	ID             uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	OrderID        uuid.UUID          `gorm:"type:uuid;uniqueIndex;not null" json:"order_id"`
	GatewayOrderID string             `gorm:"size:255;uniqueIndex;not null" json:"gateway_order_id"`
	Status         enum.PaymentStatus `gorm:"default:0" json:"status"`
	Amount         int64              `gorm:"not null" json:"-"` // Stored in minor units, excluded from JSON
	QROrRedirect   string             `gorm:"type:text" json:"qr_or_redirect"`
	FailureReason  *string            `gorm:"type:text" json:"failure_reason,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
	DeletedAt      gorm.DeletedAt     `gorm:"index" json:"-"`
}

// MarshalJSON custom marshaler to convert minor units to decimal for API responses
func (p PaymentTransaction) MarshalJSON() ([]byte, error) {
	type Alias PaymentTransaction
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(p),
		Amount: float64(p.Amount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new payment transaction
func (p *PaymentTransaction) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PaymentTransaction model
func (PaymentTransaction) TableName() string {
	return "payment_transactions"
}
