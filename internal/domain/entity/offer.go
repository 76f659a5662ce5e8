package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/zaikabox/zaikabox-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Offer represents a discount code with scope, eligibility and usage-limit
// rules. Offers are created by staff and evaluated read-only at checkout;
// the order flow never mutates them.
type Offer struct {
	ID           uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	Code         string            `gorm:"size:50;unique;not null" json:"code"`
	Description  *string           `gorm:"type:text" json:"description,omitempty"`
	DiscountType enum.DiscountType `gorm:"default:0" json:"discount_type"`
	// Percent for percentage offers, currency amount for flat offers,
	// ignored for free_delivery.
	DiscountValue        decimal.Decimal `gorm:"type:decimal(10,2)" json:"discount_value"`
	MaxDiscountAmount    *int64          `json:"-"` // Stored in minor units, caps percentage discounts
	MinOrderValue        int64           `gorm:"default:0" json:"-"` // Stored in minor units
	ApplicableCategoryID *uuid.UUID      `gorm:"type:uuid;index" json:"applicable_category_id,omitempty"`
	ApplicableItemID     *uuid.UUID      `gorm:"type:uuid;index" json:"applicable_item_id,omitempty"`
	FirstOrderOnly       bool            `gorm:"default:false" json:"first_order_only"`
	MaxUsesPerUser       int             `gorm:"default:0" json:"max_uses_per_user"` // 0 means unlimited
	ValidFrom            *time.Time      `json:"valid_from,omitempty"`
	ValidTo              *time.Time      `json:"valid_to,omitempty"`
	IsActive             bool            `gorm:"default:true" json:"is_active"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
	DeletedAt            gorm.DeletedAt  `gorm:"index" json:"-"`
}

// MarshalJSON custom marshaler to convert minor units to decimal for API responses
func (o Offer) MarshalJSON() ([]byte, error) {
	type Alias Offer
	var maxDiscount *float64
	if o.MaxDiscountAmount != nil {
		v := float64(*o.MaxDiscountAmount) / 100
		maxDiscount = &v
	}
	return json.Marshal(&struct {
		Alias
		MaxDiscountAmount *float64 `json:"max_discount_amount,omitempty"`
		MinOrderValue     float64  `json:"min_order_value"`
	}{
		Alias:             Alias(o),
		MaxDiscountAmount: maxDiscount,
		MinOrderValue:     float64(o.MinOrderValue) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new offer
func (o *Offer) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Offer model
func (Offer) TableName() string {
	return "offers"
}
