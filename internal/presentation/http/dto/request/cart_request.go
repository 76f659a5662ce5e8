package request

import "github.com/google/uuid"

// CartLineRequest is one cart line as submitted by the client. Prices are
// intentionally absent; the server reprices everything.
type CartLineRequest struct {
	ItemID   uuid.UUID   `json:"item_id" binding:"required"`
	SizeID   uuid.UUID   `json:"size_id" binding:"required"`
	AddOnIDs []uuid.UUID `json:"add_on_ids"`
	Quantity int         `json:"quantity" binding:"required,min=1"`
}

// ValidateCartRequest represents a cart validation request
type ValidateCartRequest struct {
	Lines  []CartLineRequest `json:"lines" binding:"required"`
	ZoneID *uuid.UUID        `json:"zone_id"` // optional, enables a price estimate
}

// PreviewOfferRequest asks whether an offer code would apply to a cart
type PreviewOfferRequest struct {
	Code  string            `json:"code" binding:"required"`
	Lines []CartLineRequest `json:"lines" binding:"required"`
}
