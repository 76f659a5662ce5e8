package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/zaikabox/zaikabox-api/internal/domain/entity"
)

// AddressRepository defines the interface for address data operations
type AddressRepository interface {
	// GetByIDForUser returns the address with its delivery zone preloaded,
	// or nil if it does not exist or is not owned by the user. A nil userID
	// matches guest addresses only.
	GetByIDForUser(ctx context.Context, id uuid.UUID, userID *uuid.UUID) (*entity.Address, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.Address, error)
	Create(ctx context.Context, address *entity.Address) error
}

// DeliveryZoneRepository defines the interface for delivery zone lookups
type DeliveryZoneRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.DeliveryZone, error)
	ListActive(ctx context.Context) ([]entity.DeliveryZone, error)
}
