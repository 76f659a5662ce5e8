package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log"

	"github.com/zaikabox/zaikabox-api/internal/domain/entity"
	"github.com/zaikabox/zaikabox-api/internal/domain/enum"
	"github.com/zaikabox/zaikabox-api/internal/domain/repository"
	"github.com/zaikabox/zaikabox-api/pkg/apperror"
)

// PaymentIntent is what the client needs to complete a payment
type PaymentIntent struct {
	GatewayOrderID string `json:"gateway_order_id"`
	QROrRedirect   string `json:"qr_or_redirect"`
}

// PaymentGateway is the external payment provider. Initiate registers the
// order with the gateway; the gateway later reports the outcome through a
// signed webhook.
type PaymentGateway interface {
	Initiate(ctx context.Context, orderNo string, amount int64) (*PaymentIntent, error)
}

// WebhookPayload is the gateway's asynchronous callback body
type WebhookPayload struct {
	GatewayOrderID string `json:"gateway_order_id"`
	Status         string `json:"status"` // "succeeded" or "failed"
	FailureReason  string `json:"failure_reason,omitempty"`
}

// PaymentService initiates gateway payments and processes their callbacks
type PaymentService struct {
	paymentRepo   repository.PaymentRepository
	orderService  *OrderService
	gateway       PaymentGateway
	webhookSecret []byte
}

// NewPaymentService creates a new payment service
func NewPaymentService(paymentRepo repository.PaymentRepository, orderService *OrderService, gateway PaymentGateway, webhookSecret string) *PaymentService {
	return &PaymentService{
		paymentRepo:   paymentRepo,
		orderService:  orderService,
		gateway:       gateway,
		webhookSecret: []byte(webhookSecret),
	}
}

// InitiateForOrder registers the order with the gateway and records the
// pending transaction. A gateway failure leaves the order in
// pending_payment so the client can retry; an already-initiated order
// returns the existing intent.
func (s *PaymentService) InitiateForOrder(ctx context.Context, order *entity.Order) (*PaymentIntent, error) {
	if order.Status != enum.OrderStatusPendingPayment {
		return nil, apperror.NewBadRequestError("Order is not awaiting payment")
	}

	if existing, err := s.paymentRepo.GetByOrderID(ctx, order.ID); err != nil {
		return nil, err
	} else if existing != nil {
		if existing.Status != enum.PaymentStatusPending {
			return nil, apperror.NewConflictError("Payment for this order was already processed")
		}
		return &PaymentIntent{
			GatewayOrderID: existing.GatewayOrderID,
			QROrRedirect:   existing.QROrRedirect,
		}, nil
	}

	intent, err := s.gateway.Initiate(ctx, order.OrderNo, order.TotalPrice)
	if err != nil {
		return nil, apperror.NewAppError(502, "Payment gateway is unavailable, try again")
	}

	txn := &entity.PaymentTransaction{
		OrderID:        order.ID,
		GatewayOrderID: intent.GatewayOrderID,
		Status:         enum.PaymentStatusPending,
		Amount:         order.TotalPrice,
		QROrRedirect:   intent.QROrRedirect,
	}
	if err := s.paymentRepo.Create(ctx, txn); err != nil {
		return nil, err
	}

	return intent, nil
}

// VerifySignature checks the gateway's HMAC-SHA256 signature over the raw
// webhook body
func (s *PaymentService) VerifySignature(body []byte, signature string) bool {
	mac := hmac.New(sha256.New, s.webhookSecret)
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// HandleWebhook processes a gateway callback. Duplicate callbacks for the
// same terminal state are no-ops; a processing error is returned so the
// gateway retries its webhook without the order state being corrupted.
func (s *PaymentService) HandleWebhook(ctx context.Context, body []byte, signature string) error {
	if !s.VerifySignature(body, signature) {
		return apperror.NewReasonError(401, "", "Invalid webhook signature")
	}

	var payload WebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return apperror.NewBadRequestError("Malformed webhook payload")
	}

	txn, err := s.paymentRepo.GetByGatewayOrderID(ctx, payload.GatewayOrderID)
	if err != nil {
		return err
	}
	if txn == nil {
		return apperror.NewNotFoundError("Payment transaction")
	}

	switch payload.Status {
	case "succeeded":
		ok, err := s.paymentRepo.UpdateStatusIf(ctx, txn.ID, enum.PaymentStatusPending, enum.PaymentStatusCompleted, nil)
		if err != nil {
			return err
		}
		if !ok {
			return s.replayTerminal(ctx, payload.GatewayOrderID, enum.PaymentStatusCompleted)
		}
		_, err = s.orderService.ConfirmPayment(ctx, txn.OrderID)
		return err

	case "failed":
		reason := payload.FailureReason
		ok, err := s.paymentRepo.UpdateStatusIf(ctx, txn.ID, enum.PaymentStatusPending, enum.PaymentStatusFailed, &reason)
		if err != nil {
			return err
		}
		if !ok {
			return s.replayTerminal(ctx, payload.GatewayOrderID, enum.PaymentStatusFailed)
		}
		_, err = s.orderService.FailPayment(ctx, txn.OrderID)
		return err

	default:
		return apperror.NewBadRequestError("Unknown payment status " + payload.Status)
	}
}

// replayTerminal handles a callback whose payment-row compare-and-set found
// the row already terminal. The order transition is re-driven anyway: if an
// earlier callback recorded the payment but failed transiently before moving
// the order, the gateway's retry must still converge the order instead of
// being acknowledged as a plain duplicate.
func (s *PaymentService) replayTerminal(ctx context.Context, gatewayOrderID string, want enum.PaymentStatus) error {
	current, err := s.paymentRepo.GetByGatewayOrderID(ctx, gatewayOrderID)
	if err != nil {
		return err
	}
	if current == nil || current.Status != want {
		// Conflicting callback for the opposite outcome; first writer wins
		log.Printf("Ignoring %s callback for gateway order %s", want, gatewayOrderID)
		return nil
	}

	log.Printf("Duplicate %s callback for gateway order %s", want, gatewayOrderID)
	if want == enum.PaymentStatusCompleted {
		_, err = s.orderService.ConfirmPayment(ctx, current.OrderID)
	} else {
		_, err = s.orderService.FailPayment(ctx, current.OrderID)
	}
	return err
}
