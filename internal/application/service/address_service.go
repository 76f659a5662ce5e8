package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/zaikabox/zaikabox-api/internal/domain/entity"
	"github.com/zaikabox/zaikabox-api/internal/domain/repository"
	"github.com/zaikabox/zaikabox-api/pkg/apperror"
)

// AddressService manages delivery addresses and zone lookups
type AddressService struct {
	addressRepo repository.AddressRepository
	zoneRepo    repository.DeliveryZoneRepository
}

// NewAddressService creates a new address service
func NewAddressService(addressRepo repository.AddressRepository, zoneRepo repository.DeliveryZoneRepository) *AddressService {
	return &AddressService{
		addressRepo: addressRepo,
		zoneRepo:    zoneRepo,
	}
}

// ListZones returns the serviceable delivery zones
func (s *AddressService) ListZones(ctx context.Context) ([]entity.DeliveryZone, error) {
	return s.zoneRepo.ListActive(ctx)
}

// ListForUser returns the user's saved addresses
func (s *AddressService) ListForUser(ctx context.Context, userID uuid.UUID) ([]entity.Address, error) {
	return s.addressRepo.ListByUser(ctx, userID)
}

// CreateAddressInput represents the input for creating an address
type CreateAddressInput struct {
	UserID  *uuid.UUID // nil for guest addresses
	ZoneID  uuid.UUID
	Label   string
	Line1   string
	Line2   *string
	City    string
	Pincode string
	Phone   *string
}

// Create validates the delivery zone and saves the address
func (s *AddressService) Create(ctx context.Context, input *CreateAddressInput) (*entity.Address, error) {
	zone, err := s.zoneRepo.GetByID(ctx, input.ZoneID)
	if err != nil {
		return nil, err
	}
	if zone == nil || !zone.IsActive {
		return nil, apperror.NewBadRequestError("Delivery zone is not serviceable")
	}

	address := &entity.Address{
		UserID:  input.UserID,
		ZoneID:  zone.ID,
		Label:   input.Label,
		Line1:   input.Line1,
		Line2:   input.Line2,
		City:    input.City,
		Pincode: input.Pincode,
		Phone:   input.Phone,
	}
	if err := s.addressRepo.Create(ctx, address); err != nil {
		return nil, err
	}

	address.Zone = *zone
	return address, nil
}
