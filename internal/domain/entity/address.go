package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DeliveryZone provides the delivery charge and estimated time for a
// serviced area
type DeliveryZone struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name       string         `gorm:"size:255;not null" json:"name"`
	Charge     int64          `gorm:"not null" json:"-"` // Stored in minor units, excluded from JSON
	EtaMinutes int            `gorm:"default:45" json:"eta_minutes"`
	IsActive   bool           `gorm:"default:true" json:"is_active"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// MarshalJSON custom marshaler to convert minor units to decimal for API responses
func (z DeliveryZone) MarshalJSON() ([]byte, error) {
	type Alias DeliveryZone
	return json.Marshal(&struct {
		Alias
		Charge float64 `json:"charge"`
	}{
		Alias:  Alias(z),
		Charge: float64(z.Charge) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new delivery zone
func (z *DeliveryZone) BeforeCreate(tx *gorm.DB) error {
	if z.ID == uuid.Nil {
		z.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the DeliveryZone model
func (DeliveryZone) TableName() string {
	return "delivery_zones"
}

// Address represents a delivery address tied to a delivery zone. UserID is
// nil for guest-checkout addresses.
type Address struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	UserID    *uuid.UUID     `gorm:"type:uuid;index" json:"user_id,omitempty"`
	ZoneID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"zone_id"`
	Label     string         `gorm:"size:50" json:"label"` // e.g. "Home", "Work"
	Line1     string         `gorm:"size:255;not null" json:"line1"`
	Line2     *string        `gorm:"size:255" json:"line2,omitempty"`
	City      string         `gorm:"size:100;not null" json:"city"`
	Pincode   string         `gorm:"size:20;not null" json:"pincode"`
	Phone     *string        `gorm:"size:50" json:"phone,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	User *User        `gorm:"foreignKey:UserID" json:"-"`
	Zone DeliveryZone `gorm:"foreignKey:ZoneID" json:"zone"`
}

// BeforeCreate generates a UUID before creating a new address
func (a *Address) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Address model
func (Address) TableName() string {
	return "addresses"
}
