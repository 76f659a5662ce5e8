package request

import "github.com/google/uuid"

// CreateOrderRequest represents a checkout request
type CreateOrderRequest struct {
	AddressID           uuid.UUID         `json:"address_id" binding:"required"`
	Lines               []CartLineRequest `json:"lines" binding:"required"`
	OfferCode           string            `json:"offer_code"`
	SpecialInstructions *string           `json:"special_instructions"`
}

// UpdateOrderStatusRequest represents a staff status-change request
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// CreateAddressRequest represents an address creation request
type CreateAddressRequest struct {
	ZoneID  uuid.UUID `json:"zone_id" binding:"required"`
	Label   string    `json:"label"`
	Line1   string    `json:"line1" binding:"required"`
	Line2   *string   `json:"line2"`
	City    string    `json:"city" binding:"required"`
	Pincode string    `json:"pincode" binding:"required"`
	Phone   *string   `json:"phone"`
}
