package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a customer or staff account. Authentication (OTP/login)
// lives in the identity service; this table backs order ownership, address
// ownership and offer eligibility checks.
type User struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Phone     string         `gorm:"size:50;unique;not null" json:"phone"`
	Email     *string        `gorm:"size:255" json:"email,omitempty"`
	Password  string         `gorm:"size:255" json:"-"` // staff accounts only, bcrypt hash
	Role      string         `gorm:"size:50;default:'customer'" json:"role"`
	FCMToken  *string        `gorm:"size:512" json:"-"` // push-notification device token
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Addresses []Address `gorm:"foreignKey:UserID" json:"-"`
	Orders    []Order   `gorm:"foreignKey:UserID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new user
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}
