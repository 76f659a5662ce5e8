package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RestaurantSettings is the single-row record describing the restaurant.
// Open/closed is a point-in-time fact resolved per request from the manual
// override plus the configured hours.
type RestaurantSettings struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	Currency     string    `gorm:"size:10;default:'INR'" json:"currency"`
	ManualClosed bool      `gorm:"default:false" json:"manual_closed"` // staff kill switch, wins over hours
	OpensAt      string    `gorm:"size:5;default:'10:00'" json:"opens_at"`  // HH:MM, restaurant-local
	ClosesAt     string    `gorm:"size:5;default:'23:00'" json:"closes_at"` // HH:MM, restaurant-local
	Timezone     string    `gorm:"size:50;default:'Asia/Kolkata'" json:"timezone"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// DefaultRestaurantSettings returns the settings used before staff have
// configured the restaurant
func DefaultRestaurantSettings() *RestaurantSettings {
	return &RestaurantSettings{
		Name:     "ZaikaBox",
		Currency: "INR",
		OpensAt:  "10:00",
		ClosesAt: "23:00",
		Timezone: "Asia/Kolkata",
	}
}

// BeforeCreate generates a UUID before creating the settings row
func (r *RestaurantSettings) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the RestaurantSettings model
func (RestaurantSettings) TableName() string {
	return "restaurant_settings"
}

// IsOpenAt evaluates the open/closed fact at the given instant
func (r *RestaurantSettings) IsOpenAt(now time.Time) (bool, string) {
	if r.ManualClosed {
		return false, "Restaurant is temporarily closed"
	}

	loc, err := time.LoadLocation(r.Timezone)
	if err == nil {
		now = now.In(loc)
	}
	hhmm := now.Format("15:04")

	if r.OpensAt <= r.ClosesAt {
		if hhmm < r.OpensAt || hhmm >= r.ClosesAt {
			return false, "Restaurant is closed, open " + r.OpensAt + " to " + r.ClosesAt
		}
		return true, ""
	}

	// Hours spanning midnight, e.g. 18:00 to 02:00
	if hhmm >= r.OpensAt || hhmm < r.ClosesAt {
		return true, ""
	}
	return false, "Restaurant is closed, open " + r.OpensAt + " to " + r.ClosesAt
}
