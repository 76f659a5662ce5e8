package repository

import (
	"context"

	"github.com/zaikabox/zaikabox-api/internal/domain/entity"
)

// OfferRepository defines the interface for offer data operations. The order
// flow reads offers; staff CRUD lives in the admin console.
type OfferRepository interface {
	// GetByCode resolves an offer by its code, or nil if unknown
	GetByCode(ctx context.Context, code string) (*entity.Offer, error)
	// ListActive returns currently active offers for cart-display
	ListActive(ctx context.Context) ([]entity.Offer, error)
}
