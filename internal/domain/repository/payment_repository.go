package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/zaikabox/zaikabox-api/internal/domain/entity"
	"github.com/zaikabox/zaikabox-api/internal/domain/enum"
)

// PaymentRepository defines the interface for payment transaction data
// operations
type PaymentRepository interface {
	Create(ctx context.Context, txn *entity.PaymentTransaction) error
	GetByOrderID(ctx context.Context, orderID uuid.UUID) (*entity.PaymentTransaction, error)
	GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*entity.PaymentTransaction, error)
	// UpdateStatusIf is a compare-and-set guarding against duplicate webhook
	// deliveries; returns false when the row was not in the expected state
	UpdateStatusIf(ctx context.Context, id uuid.UUID, from, to enum.PaymentStatus, failureReason *string) (bool, error)
}
