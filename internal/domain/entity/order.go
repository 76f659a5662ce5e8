package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/zaikabox/zaikabox-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Order represents a persisted, priced, status-tracked purchase. Every
// monetary field is computed server-side at creation time; client-submitted
// totals are never stored. Line items are immutable snapshots so historical
// orders survive later catalog edits.
type Order struct {
	ID                  uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	OrderNo             string           `gorm:"size:100;unique;not null" json:"order_no"`
	UserID              *uuid.UUID       `gorm:"type:uuid;index" json:"user_id,omitempty"` // nil for guest orders
	AddressID           uuid.UUID        `gorm:"type:uuid;not null;index" json:"address_id"`
	OfferID             *uuid.UUID       `gorm:"type:uuid;index" json:"offer_id,omitempty"`
	Status              enum.OrderStatus `gorm:"default:0;index" json:"status"`
	Subtotal            int64            `gorm:"default:0" json:"-"` // Stored in minor units, excluded from JSON
	TaxAmount           int64            `gorm:"default:0" json:"-"`
	DeliveryCharge      int64            `gorm:"default:0" json:"-"`
	DiscountAmount      int64            `gorm:"default:0" json:"-"`
	TotalPrice          int64            `gorm:"default:0" json:"-"`
	SpecialInstructions *string          `gorm:"type:text" json:"special_instructions,omitempty"`
	CreatedAt           time.Time        `json:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at"`
	DeletedAt           gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relationships
	User    *User               `gorm:"foreignKey:UserID" json:"-"`
	Address Address             `gorm:"foreignKey:AddressID" json:"address,omitempty"`
	Offer   *Offer              `gorm:"foreignKey:OfferID" json:"offer,omitempty"`
	Items   []OrderItem         `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	Payment *PaymentTransaction `gorm:"foreignKey:OrderID" json:"payment,omitempty"`
}

// MarshalJSON custom marshaler to convert minor units to decimal for API responses
func (o Order) MarshalJSON() ([]byte, error) {
	type Alias Order
	return json.Marshal(&struct {
		Alias
		Subtotal       float64 `json:"subtotal"`
		TaxAmount      float64 `json:"tax_amount"`
		DeliveryCharge float64 `json:"delivery_charge"`
		DiscountAmount float64 `json:"discount_amount"`
		TotalPrice     float64 `json:"total_price"`
	}{
		Alias:          Alias(o),
		Subtotal:       float64(o.Subtotal) / 100,
		TaxAmount:      float64(o.TaxAmount) / 100,
		DeliveryCharge: float64(o.DeliveryCharge) / 100,
		DiscountAmount: float64(o.DiscountAmount) / 100,
		TotalPrice:     float64(o.TotalPrice) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new order
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// OrderItem is a denormalized snapshot of one cart line at the time the
// order was placed. Names, prices and tax rate are copied, never joined
// back to the live catalog.
type OrderItem struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	OrderID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"order_id"`
	ItemID       uuid.UUID      `gorm:"type:uuid;not null" json:"item_id"`
	SizeID       uuid.UUID      `gorm:"type:uuid;not null" json:"size_id"`
	CategoryName string         `gorm:"size:255;not null" json:"category_name"`
	ItemName     string         `gorm:"size:255;not null" json:"item_name"`
	SizeName     string         `gorm:"size:100;not null" json:"size_name"`
	BasePrice    int64          `gorm:"not null" json:"-"` // Size price snapshot in minor units
	TaxRate      float64        `gorm:"type:decimal(5,2);default:0" json:"tax_rate"`
	Quantity     int            `gorm:"not null" json:"quantity"`
	LineSubtotal int64          `gorm:"not null" json:"-"`
	LineTax      int64          `gorm:"not null" json:"-"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Order  Order            `gorm:"foreignKey:OrderID" json:"-"`
	AddOns []OrderItemAddOn `gorm:"foreignKey:OrderItemID" json:"add_ons,omitempty"`
}

// MarshalJSON custom marshaler to convert minor units to decimal for API responses
func (oi OrderItem) MarshalJSON() ([]byte, error) {
	type Alias OrderItem
	return json.Marshal(&struct {
		Alias
		BasePrice    float64 `json:"base_price"`
		LineSubtotal float64 `json:"line_subtotal"`
		LineTax      float64 `json:"line_tax"`
	}{
		Alias:        Alias(oi),
		BasePrice:    float64(oi.BasePrice) / 100,
		LineSubtotal: float64(oi.LineSubtotal) / 100,
		LineTax:      float64(oi.LineTax) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new order item
func (oi *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if oi.ID == uuid.Nil {
		oi.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}

// OrderItemAddOn is a denormalized snapshot of one selected add-on on an
// order item
type OrderItemAddOn struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	OrderItemID uuid.UUID      `gorm:"type:uuid;not null;index" json:"order_item_id"`
	AddOnID     uuid.UUID      `gorm:"type:uuid;not null" json:"add_on_id"`
	AddOnName   string         `gorm:"size:255;not null" json:"add_on_name"`
	AddOnPrice  int64          `gorm:"not null" json:"-"` // Stored in minor units, excluded from JSON
	Quantity    int            `gorm:"not null" json:"quantity"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// MarshalJSON custom marshaler to convert minor units to decimal for API responses
func (a OrderItemAddOn) MarshalJSON() ([]byte, error) {
	type Alias OrderItemAddOn
	return json.Marshal(&struct {
		Alias
		AddOnPrice float64 `json:"add_on_price"`
	}{
		Alias:      Alias(a),
		AddOnPrice: float64(a.AddOnPrice) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new order item add-on
func (a *OrderItemAddOn) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the OrderItemAddOn model
func (OrderItemAddOn) TableName() string {
	return "order_item_add_ons"
}
