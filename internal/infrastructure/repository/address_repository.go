package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/zaikabox/zaikabox-api/internal/domain/entity"
	domainRepo "github.com/zaikabox/zaikabox-api/internal/domain/repository"
	"gorm.io/gorm"
)

type addressRepository struct {
	db *gorm.DB
}

// NewAddressRepository creates a new address repository
func NewAddressRepository(db *gorm.DB) domainRepo.AddressRepository {
	return &addressRepository{db: db}
}

func (r *addressRepository) GetByIDForUser(ctx context.Context, id uuid.UUID, userID *uuid.UUID) (*entity.Address, error) {
	var address entity.Address
	query := r.db.WithContext(ctx).Preload("Zone").Where("id = ?", id)
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	} else {
		query = query.Where("user_id IS NULL")
	}
	err := query.First(&address).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &address, err
}

func (r *addressRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.Address, error) {
	var addresses []entity.Address
	err := r.db.WithContext(ctx).
		Preload("Zone").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&addresses).Error
	return addresses, err
}

func (r *addressRepository) Create(ctx context.Context, address *entity.Address) error {
	return r.db.WithContext(ctx).Create(address).Error
}

type deliveryZoneRepository struct {
	db *gorm.DB
}

// NewDeliveryZoneRepository creates a new delivery zone repository
func NewDeliveryZoneRepository(db *gorm.DB) domainRepo.DeliveryZoneRepository {
	return &deliveryZoneRepository{db: db}
}

func (r *deliveryZoneRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.DeliveryZone, error) {
	var zone entity.DeliveryZone
	err := r.db.WithContext(ctx).First(&zone, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &zone, err
}

func (r *deliveryZoneRepository) ListActive(ctx context.Context) ([]entity.DeliveryZone, error) {
	var zones []entity.DeliveryZone
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&zones).Error
	return zones, err
}
