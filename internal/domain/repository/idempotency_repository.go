package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/zaikabox/zaikabox-api/internal/domain/entity"
)

// IdempotencyRepository defines the interface for idempotency key operations.
// Checkout retries with the same Idempotency-Key replay the stored response
// instead of creating a second order.
type IdempotencyRepository interface {
	// GetByKey scopes the lookup to the owning user; a nil userID matches
	// only guest-stored keys
	GetByKey(ctx context.Context, key string, userID *uuid.UUID) (*entity.IdempotencyKey, error)
	Create(ctx context.Context, ikey *entity.IdempotencyKey) error
	DeleteExpired(ctx context.Context) error
}
