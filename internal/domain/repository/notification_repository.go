package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/zaikabox/zaikabox-api/internal/domain/entity"
	"github.com/zaikabox/zaikabox-api/pkg/pagination"
)

// NotificationRepository defines the interface for notification records
type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
	// ListForUser returns a user's notifications, newest first. A nil userID
	// lists admin-facing notifications.
	ListForUser(ctx context.Context, userID *uuid.UUID, params *pagination.PaginationParams) ([]entity.Notification, int64, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
}
