package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/zaikabox/zaikabox-api/internal/domain/entity"
	"github.com/zaikabox/zaikabox-api/internal/domain/enum"
	domainRepo "github.com/zaikabox/zaikabox-api/internal/domain/repository"
	"gorm.io/gorm"
)

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) domainRepo.PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, txn *entity.PaymentTransaction) error {
	return r.db.WithContext(ctx).Create(txn).Error
}

func (r *paymentRepository) GetByOrderID(ctx context.Context, orderID uuid.UUID) (*entity.PaymentTransaction, error) {
	var txn entity.PaymentTransaction
	err := r.db.WithContext(ctx).First(&txn, "order_id = ?", orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &txn, err
}

func (r *paymentRepository) GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*entity.PaymentTransaction, error) {
	var txn entity.PaymentTransaction
	err := r.db.WithContext(ctx).First(&txn, "gateway_order_id = ?", gatewayOrderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &txn, err
}

// UpdateStatusIf flips the transaction status only when it still holds the
// expected value, so replayed webhooks become no-ops.
func (r *paymentRepository) UpdateStatusIf(ctx context.Context, id uuid.UUID, from, to enum.PaymentStatus, failureReason *string) (bool, error) {
	updates := map[string]interface{}{"status": to}
	if failureReason != nil {
		updates["failure_reason"] = *failureReason
	}
	result := r.db.WithContext(ctx).
		Model(&entity.PaymentTransaction{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
