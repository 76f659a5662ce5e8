package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/zaikabox/zaikabox-api/internal/domain/entity"
)

// CatalogRepository is the read-only accessor for menu data. Catalog CRUD is
// owned by the admin console; the order flow only ever reads current
// availability and prices.
type CatalogRepository interface {
	// GetItem returns a menu item with its sizes, linked add-ons and owning
	// category preloaded, or nil if it does not exist
	GetItem(ctx context.Context, id uuid.UUID) (*entity.MenuItem, error)
	// GetItemsByIDs batch-fetches items with sizes, add-ons and categories
	// preloaded (prevents N+1 during cart validation)
	GetItemsByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.MenuItem, error)
	// ListCategories returns active categories ordered for display
	ListCategories(ctx context.Context) ([]entity.Category, error)
	// ListMenu returns active categories with their available items, sizes
	// and add-ons preloaded, ready for menu display
	ListMenu(ctx context.Context) ([]entity.Category, error)
}
