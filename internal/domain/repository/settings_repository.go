package repository

import (
	"context"

	"github.com/zaikabox/zaikabox-api/internal/domain/entity"
)

// SettingsRepository defines the interface for restaurant settings. The
// open/closed fact is fetched per request rather than cached, so a staff
// toggle takes effect immediately.
type SettingsRepository interface {
	Get(ctx context.Context) (*entity.RestaurantSettings, error)
	Update(ctx context.Context, settings *entity.RestaurantSettings) error
}
