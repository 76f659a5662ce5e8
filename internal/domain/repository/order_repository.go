package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/zaikabox/zaikabox-api/internal/domain/entity"
	"github.com/zaikabox/zaikabox-api/internal/domain/enum"
	"github.com/zaikabox/zaikabox-api/pkg/pagination"
)

// OrderRepository defines the interface for order data operations
type OrderRepository interface {
	// CreateWithItems persists the order, its item snapshots and their
	// add-on snapshots inside a single transaction; any failure rolls the
	// whole order back
	CreateWithItems(ctx context.Context, order *entity.Order, items []entity.OrderItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	GetByOrderNo(ctx context.Context, orderNo string) (*entity.Order, error)
	// GetWithItems returns the order with line items, add-ons, address and
	// payment preloaded
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	List(ctx context.Context, params *OrderFilterParams) ([]entity.Order, int64, error)
	// UpdateStatusIf is a compare-and-set: the status row is updated only if
	// it still equals from. Returns false when another writer got there
	// first.
	UpdateStatusIf(ctx context.Context, id uuid.UUID, from, to enum.OrderStatus) (bool, error)
	// CountNonCancelledByUser backs first-order-only offer checks
	CountNonCancelledByUser(ctx context.Context, userID uuid.UUID) (int64, error)
	// CountOfferUsesByUser counts the user's non-cancelled orders that
	// applied the given offer
	CountOfferUsesByUser(ctx context.Context, userID, offerID uuid.UUID) (int64, error)
}

// OrderFilterParams contains filtering parameters for order queries
type OrderFilterParams struct {
	Pagination *pagination.PaginationParams
	UserID     *uuid.UUID
	Status     *enum.OrderStatus
	StartDate  *time.Time
	EndDate    *time.Time
	Search     string // matches order number
}
