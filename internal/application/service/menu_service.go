package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/zaikabox/zaikabox-api/internal/domain/entity"
	"github.com/zaikabox/zaikabox-api/internal/domain/repository"
	"github.com/zaikabox/zaikabox-api/pkg/apperror"
)

// MenuService exposes the read-only menu. Catalog writes belong to the
// admin console and are out of scope here.
type MenuService struct {
	catalogRepo repository.CatalogRepository
}

// NewMenuService creates a new menu service
func NewMenuService(catalogRepo repository.CatalogRepository) *MenuService {
	return &MenuService{catalogRepo: catalogRepo}
}

// GetMenu returns active categories with their available items
func (s *MenuService) GetMenu(ctx context.Context) ([]entity.Category, error) {
	return s.catalogRepo.ListMenu(ctx)
}

// GetItem returns a single menu item with sizes and add-ons
func (s *MenuService) GetItem(ctx context.Context, id uuid.UUID) (*entity.MenuItem, error) {
	item, err := s.catalogRepo.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Menu item")
	}
	return item, nil
}
