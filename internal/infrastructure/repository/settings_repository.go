package repository

import (
	"context"
	"errors"

	"github.com/zaikabox/zaikabox-api/internal/domain/entity"
	domainRepo "github.com/zaikabox/zaikabox-api/internal/domain/repository"
	"gorm.io/gorm"
)

type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *gorm.DB) domainRepo.SettingsRepository {
	return &settingsRepository{db: db}
}

// Get returns the single settings row. The row is seeded at startup; a
// missing row is treated as open-with-defaults rather than an error.
func (r *settingsRepository) Get(ctx context.Context) (*entity.RestaurantSettings, error) {
	var settings entity.RestaurantSettings
	err := r.db.WithContext(ctx).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entity.DefaultRestaurantSettings(), nil
	}
	return &settings, err
}

func (r *settingsRepository) Update(ctx context.Context, settings *entity.RestaurantSettings) error {
	return r.db.WithContext(ctx).Save(settings).Error
}
