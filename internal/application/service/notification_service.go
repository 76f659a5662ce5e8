package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/zaikabox/zaikabox-api/internal/domain/entity"
	"github.com/zaikabox/zaikabox-api/internal/domain/enum"
	"github.com/zaikabox/zaikabox-api/internal/domain/repository"
	"github.com/zaikabox/zaikabox-api/pkg/pagination"
)

// StatusChange is the payload emitted on every order status transition
type StatusChange struct {
	OrderID    uuid.UUID        `json:"order_id"`
	OrderNo    string           `json:"order_no"`
	FromStatus enum.OrderStatus `json:"from_status"`
	ToStatus   enum.OrderStatus `json:"to_status"`
}

// Notifier receives order lifecycle events. Implementations must be
// best-effort: they are called after the triggering write has committed and
// must never propagate failures back into the order flow.
type Notifier interface {
	OrderCreated(order *entity.Order)
	OrderStatusChanged(order *entity.Order, change StatusChange)
}

type multiNotifier []Notifier

// ComposeNotifiers fans out order events to every given notifier in order.
func ComposeNotifiers(notifiers ...Notifier) Notifier {
	return multiNotifier(notifiers)
}

func (m multiNotifier) OrderCreated(order *entity.Order) {
	for _, n := range m {
		n.OrderCreated(order)
	}
}

func (m multiNotifier) OrderStatusChanged(order *entity.Order, change StatusChange) {
	for _, n := range m {
		n.OrderStatusChanged(order, change)
	}
}

// NotificationService persists notification records for the user and admin
// feeds and logs delivery. Push delivery itself (FCM) is owned by an
// external dispatcher consuming the same records.
type NotificationService struct {
	notificationRepo repository.NotificationRepository
	timeout          time.Duration
}

// NewNotificationService creates a new notification service
func NewNotificationService(notificationRepo repository.NotificationRepository) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		timeout:          5 * time.Second,
	}
}

// OrderCreated records the admin-facing "new order" and user-facing "order
// placed" notifications. Runs asynchronously; errors are logged, never
// returned.
func (s *NotificationService) OrderCreated(order *entity.Order) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		payload, _ := json.Marshal(map[string]interface{}{
			"order_id": order.ID,
			"order_no": order.OrderNo,
			"total":    float64(order.TotalPrice) / 100,
		})

		admin := &entity.Notification{
			Event:   entity.NotificationEventOrderCreated,
			OrderID: order.ID,
			Title:   "New order " + order.OrderNo,
			Body:    fmt.Sprintf("New order worth %.2f received", float64(order.TotalPrice)/100),
			Payload: string(payload),
		}
		if err := s.notificationRepo.Create(ctx, admin); err != nil {
			log.Printf("Warning: failed to record admin notification for order %s: %v", order.OrderNo, err)
		}

		if order.UserID != nil {
			user := &entity.Notification{
				Event:   entity.NotificationEventOrderCreated,
				OrderID: order.ID,
				UserID:  order.UserID,
				Title:   "Order placed",
				Body:    "Your order " + order.OrderNo + " has been placed",
				Payload: string(payload),
			}
			if err := s.notificationRepo.Create(ctx, user); err != nil {
				log.Printf("Warning: failed to record user notification for order %s: %v", order.OrderNo, err)
			}
		}
	}()
}

// OrderStatusChanged records a notification for a status transition
func (s *NotificationService) OrderStatusChanged(order *entity.Order, change StatusChange) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		payload, _ := json.Marshal(change)

		n := &entity.Notification{
			Event:   entity.NotificationEventOrderStatusChanged,
			OrderID: order.ID,
			UserID:  order.UserID,
			Title:   "Order " + order.OrderNo + " " + change.ToStatus.String(),
			Body:    statusChangeBody(change),
			Payload: string(payload),
		}
		if err := s.notificationRepo.Create(ctx, n); err != nil {
			log.Printf("Warning: failed to record status notification for order %s: %v", order.OrderNo, err)
		}
	}()
}

func statusChangeBody(change StatusChange) string {
	switch change.ToStatus {
	case enum.OrderStatusConfirmed:
		return "Your order has been confirmed"
	case enum.OrderStatusPreparing:
		return "Your order is being prepared"
	case enum.OrderStatusReady:
		return "Your order is ready"
	case enum.OrderStatusOutForDelivery:
		return "Your order is out for delivery"
	case enum.OrderStatusCompleted:
		return "Your order has been delivered"
	case enum.OrderStatusCancelled:
		return "Your order has been cancelled"
	default:
		return "Your order status changed to " + change.ToStatus.String()
	}
}

// ListForUser returns a user's notification feed
func (s *NotificationService) ListForUser(ctx context.Context, userID *uuid.UUID, params *pagination.PaginationParams) ([]entity.Notification, int64, error) {
	params.Validate()
	return s.notificationRepo.ListForUser(ctx, userID, params)
}

// MarkRead marks a notification as read. Already-read notifications are
// left untouched.
func (s *NotificationService) MarkRead(ctx context.Context, id uuid.UUID) error {
	return s.notificationRepo.MarkRead(ctx, id)
}
