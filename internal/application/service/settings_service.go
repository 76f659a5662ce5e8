package service

import (
	"context"
	"regexp"
	"time"

	"github.com/zaikabox/zaikabox-api/internal/domain/entity"
	"github.com/zaikabox/zaikabox-api/internal/domain/repository"
	"github.com/zaikabox/zaikabox-api/pkg/apperror"
)

var hhmmPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// SettingsService handles restaurant settings business logic
type SettingsService struct {
	settingsRepo repository.SettingsRepository
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingsRepo repository.SettingsRepository) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
	}
}

// RestaurantStatus is the public open/closed view of the restaurant
type RestaurantStatus struct {
	Name     string `json:"name"`
	Currency string `json:"currency"`
	IsOpen   bool   `json:"is_open"`
	Reason   string `json:"reason,omitempty"`
	OpensAt  string `json:"opens_at"`
	ClosesAt string `json:"closes_at"`
}

// GetStatus returns the point-in-time open/closed status for clients
func (s *SettingsService) GetStatus(ctx context.Context) (*RestaurantStatus, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	open, reason := settings.IsOpenAt(time.Now())
	return &RestaurantStatus{
		Name:     settings.Name,
		Currency: settings.Currency,
		IsOpen:   open,
		Reason:   reason,
		OpensAt:  settings.OpensAt,
		ClosesAt: settings.ClosesAt,
	}, nil
}

// GetSettings retrieves the full settings record for staff
func (s *SettingsService) GetSettings(ctx context.Context) (*entity.RestaurantSettings, error) {
	return s.settingsRepo.Get(ctx)
}

// UpdateSettingsInput represents the input for updating settings. Nil
// fields are left unchanged.
type UpdateSettingsInput struct {
	Name         *string
	ManualClosed *bool
	OpensAt      *string
	ClosesAt     *string
	Timezone     *string
}

// UpdateSettings applies a partial settings update
func (s *SettingsService) UpdateSettings(ctx context.Context, input *UpdateSettingsInput) (*entity.RestaurantSettings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		settings.Name = *input.Name
	}
	if input.ManualClosed != nil {
		settings.ManualClosed = *input.ManualClosed
	}
	if input.OpensAt != nil {
		if !hhmmPattern.MatchString(*input.OpensAt) {
			return nil, apperror.NewBadRequestError("opens_at must be HH:MM")
		}
		settings.OpensAt = *input.OpensAt
	}
	if input.ClosesAt != nil {
		if !hhmmPattern.MatchString(*input.ClosesAt) {
			return nil, apperror.NewBadRequestError("closes_at must be HH:MM")
		}
		settings.ClosesAt = *input.ClosesAt
	}
	if input.Timezone != nil {
		if _, err := time.LoadLocation(*input.Timezone); err != nil {
			return nil, apperror.NewBadRequestError("Unknown timezone " + *input.Timezone)
		}
		settings.Timezone = *input.Timezone
	}

	if err := s.settingsRepo.Update(ctx, settings); err != nil {
		return nil, err
	}

	return settings, nil
}
