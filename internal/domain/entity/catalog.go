package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category groups menu items and carries the tax rate applied to every item
// in it. Tax is always computed per line with the owning category's rate,
// never with a single restaurant-wide rate.
type Category struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Slug      string         `gorm:"size:255;unique;not null" json:"slug"`
	TaxRate   float64        `gorm:"type:decimal(5,2);default:0" json:"tax_rate"` // percent, e.g. 5 or 2.5
	SortOrder int            `gorm:"default:0" json:"sort_order"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Items []MenuItem `gorm:"foreignKey:CategoryID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new category
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Category model
func (Category) TableName() string {
	return "categories"
}

// MenuItem represents a dish on the menu. Prices live on sizes, not on the
// item itself.
type MenuItem struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	CategoryID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"category_id"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	Slug        string         `gorm:"size:255;unique;not null" json:"slug"`
	Description *string        `gorm:"type:text" json:"description,omitempty"`
	Image       *string        `gorm:"size:255" json:"image,omitempty"`
	IsVeg       bool           `gorm:"default:true" json:"is_veg"`
	IsAvailable bool           `gorm:"default:true" json:"is_available"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Category Category   `gorm:"foreignKey:CategoryID" json:"category"`
	Sizes    []ItemSize `gorm:"foreignKey:ItemID" json:"sizes,omitempty"`
	AddOns   []AddOn    `gorm:"many2many:item_add_ons" json:"add_ons,omitempty"`
}

// BeforeCreate generates a UUID before creating a new menu item
func (m *MenuItem) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the MenuItem model
func (MenuItem) TableName() string {
	return "menu_items"
}

// SizeByID resolves one of the item's sizes by id
func (m *MenuItem) SizeByID(id uuid.UUID) *ItemSize {
	for i := range m.Sizes {
		if m.Sizes[i].ID == id {
			return &m.Sizes[i]
		}
	}
	return nil
}

// AddOnByID resolves one of the item's linked add-ons by id
func (m *MenuItem) AddOnByID(id uuid.UUID) *AddOn {
	for i := range m.AddOns {
		if m.AddOns[i].ID == id {
			return &m.AddOns[i]
		}
	}
	return nil
}

// ItemSize represents a purchasable size variant of a menu item
type ItemSize struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	ItemID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"item_id"`
	Name        string         `gorm:"size:100;not null" json:"name"`
	Price       int64          `gorm:"not null" json:"-"` // Stored in minor units, excluded from JSON
	IsAvailable bool           `gorm:"default:true" json:"is_available"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// MarshalJSON custom marshaler to convert minor units to decimal for API responses
func (s ItemSize) MarshalJSON() ([]byte, error) {
	type Alias ItemSize
	return json.Marshal(&struct {
		Alias
		Price float64 `json:"price"`
	}{
		Alias: Alias(s),
		Price: float64(s.Price) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new item size
func (s *ItemSize) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ItemSize model
func (ItemSize) TableName() string {
	return "item_sizes"
}

// AddOn represents an optional extra linked to menu items
type AddOn struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	Price       int64          `gorm:"not null" json:"-"` // Stored in minor units, excluded from JSON
	IsAvailable bool           `gorm:"default:true" json:"is_available"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// MarshalJSON custom marshaler to convert minor units to decimal for API responses
func (a AddOn) MarshalJSON() ([]byte, error) {
	type Alias AddOn
	return json.Marshal(&struct {
		Alias
		Price float64 `json:"price"`
	}{
		Alias: Alias(a),
		Price: float64(a.Price) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new add-on
func (a *AddOn) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the AddOn model
func (AddOn) TableName() string {
	return "add_ons"
}
