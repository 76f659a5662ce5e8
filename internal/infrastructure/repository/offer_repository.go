package repository

import (
	"context"
	"errors"
	"time"

	"github.com/zaikabox/zaikabox-api/internal/domain/entity"
	domainRepo "github.com/zaikabox/zaikabox-api/internal/domain/repository"
	"gorm.io/gorm"
)

type offerRepository struct {
	db *gorm.DB
}

// NewOfferRepository creates a new offer repository
func NewOfferRepository(db *gorm.DB) domainRepo.OfferRepository {
	return &offerRepository{db: db}
}

func (r *offerRepository) GetByCode(ctx context.Context, code string) (*entity.Offer, error) {
	var offer entity.Offer
	err := r.db.WithContext(ctx).First(&offer, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &offer, err
}

func (r *offerRepository) ListActive(ctx context.Context) ([]entity.Offer, error) {
	var offers []entity.Offer
	now := time.Now()
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("(valid_from IS NULL OR valid_from <= ?)", now).
		Where("(valid_to IS NULL OR valid_to >= ?)", now).
		Order("created_at DESC").
		Find(&offers).Error
	return offers, err
}
