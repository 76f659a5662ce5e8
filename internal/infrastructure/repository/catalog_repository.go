package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/zaikabox/zaikabox-api/internal/domain/entity"
	domainRepo "github.com/zaikabox/zaikabox-api/internal/domain/repository"
	"gorm.io/gorm"
)

type catalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository(db *gorm.DB) domainRepo.CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) GetItem(ctx context.Context, id uuid.UUID) (*entity.MenuItem, error) {
	var item entity.MenuItem
	err := r.db.WithContext(ctx).
		Preload("Sizes").
		Preload("AddOns").
		Preload("Category").
		First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

func (r *catalogRepository) GetItemsByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.MenuItem, error) {
	var items []entity.MenuItem
	err := r.db.WithContext(ctx).
		Preload("Sizes").
		Preload("AddOns").
		Preload("Category").
		Where("id IN ?", ids).
		Find(&items).Error
	return items, err
}

func (r *catalogRepository) ListCategories(ctx context.Context) ([]entity.Category, error) {
	var categories []entity.Category
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sort_order ASC, name ASC").
		Find(&categories).Error
	return categories, err
}

func (r *catalogRepository) ListMenu(ctx context.Context) ([]entity.Category, error) {
	var categories []entity.Category
	err := r.db.WithContext(ctx).
		Preload("Items", "is_available = ?", true).
		Preload("Items.Sizes", "is_available = ?", true).
		Preload("Items.AddOns", "is_available = ?", true).
		Where("is_active = ?", true).
		Order("sort_order ASC, name ASC").
		Find(&categories).Error
	return categories, err
}
