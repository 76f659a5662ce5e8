package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zaikabox/zaikabox-api/internal/domain/entity"
	"github.com/zaikabox/zaikabox-api/internal/domain/enum"
)

type stubPaymentRepo struct {
	mu   sync.Mutex
	txns map[uuid.UUID]*entity.PaymentTransaction
}

func newStubPaymentRepo() *stubPaymentRepo {
	return &stubPaymentRepo{txns: make(map[uuid.UUID]*entity.PaymentTransaction)}
}

func (r *stubPaymentRepo) Create(ctx context.Context, txn *entity.PaymentTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if txn.ID == uuid.Nil {
		txn.ID = uuid.New()
	}
	r.txns[txn.ID] = txn
	return nil
}

func (r *stubPaymentRepo) GetByOrderID(ctx context.Context, orderID uuid.UUID) (*entity.PaymentTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, txn := range r.txns {
		if txn.OrderID == orderID {
			return txn, nil
		}
	}
	return nil, nil
}

func (r *stubPaymentRepo) GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*entity.PaymentTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, txn := range r.txns {
		if txn.GatewayOrderID == gatewayOrderID {
			return txn, nil
		}
	}
	return nil, nil
}

func (r *stubPaymentRepo) UpdateStatusIf(ctx context.Context, id uuid.UUID, from, to enum.PaymentStatus, failureReason *string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	txn, ok := r.txns[id]
	if !ok || txn.Status != from {
		return false, nil
	}
	txn.Status = to
	if failureReason != nil {
		txn.FailureReason = failureReason
	}
	return true, nil
}

type stubGateway struct {
	fail  bool
	calls int
}

func (g *stubGateway) Initiate(ctx context.Context, orderNo string, amount int64) (*PaymentIntent, error) {
	g.calls++
	if g.fail {
		return nil, errors.New("gateway down")
	}
	return &PaymentIntent{
		GatewayOrderID: "gw_" + orderNo,
		QROrRedirect:   "upi://pay?tr=" + orderNo,
	}, nil
}

const testWebhookSecret = "webhook-test-secret"

func sign(body []byte) string {
	mac := hmac.New(sha256.New, []byte(testWebhookSecret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

type paymentFixture struct {
	*orderFixture
	payments *stubPaymentRepo
	gateway  *stubGateway
	service  *PaymentService
}

func newPaymentFixture(t *testing.T) *paymentFixture {
	t.Helper()

	of := newOrderFixture(t)
	payments := newStubPaymentRepo()
	gw := &stubGateway{}

	return &paymentFixture{
		orderFixture: of,
		payments:     payments,
		gateway:      gw,
		service:      NewPaymentService(payments, of.service, gw, testWebhookSecret),
	}
}

func (f *paymentFixture) placeOrder(t *testing.T) *entity.Order {
	t.Helper()
	order, err := f.orderFixture.service.CreateOrder(context.Background(), f.input())
	require.NoError(t, err)
	return order
}

func TestInitiateForOrder(t *testing.T) {
	f := newPaymentFixture(t)
	order := f.placeOrder(t)

	intent, err := f.service.InitiateForOrder(context.Background(), order)
	require.NoError(t, err)
	assert.Equal(t, "gw_"+order.OrderNo, intent.GatewayOrderID)
	assert.NotEmpty(t, intent.QROrRedirect)

	txn, err := f.payments.GetByOrderID(context.Background(), order.ID)
	require.NoError(t, err)
	require.NotNil(t, txn)
	assert.Equal(t, enum.PaymentStatusPending, txn.Status)
	assert.Equal(t, order.TotalPrice, txn.Amount)
}

func TestInitiateForOrderReusesPendingIntent(t *testing.T) {
	f := newPaymentFixture(t)
	order := f.placeOrder(t)

	first, err := f.service.InitiateForOrder(context.Background(), order)
	require.NoError(t, err)
	second, err := f.service.InitiateForOrder(context.Background(), order)
	require.NoError(t, err)

	assert.Equal(t, first.GatewayOrderID, second.GatewayOrderID)
	assert.Equal(t, 1, f.gateway.calls)
}

func TestInitiateForOrderGatewayDown(t *testing.T) {
	f := newPaymentFixture(t)
	order := f.placeOrder(t)
	f.gateway.fail = true

	_, err := f.service.InitiateForOrder(context.Background(), order)
	require.Error(t, err)

	// The order stays pending so the client can retry
	stored, err := f.orders.GetByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusPendingPayment, stored.Status)
}

func TestHandleWebhookSuccess(t *testing.T) {
	f := newPaymentFixture(t)
	order := f.placeOrder(t)
	intent, err := f.service.InitiateForOrder(context.Background(), order)
	require.NoError(t, err)

	body := []byte(`{"gateway_order_id":"` + intent.GatewayOrderID + `","status":"succeeded"}`)
	err = f.service.HandleWebhook(context.Background(), body, sign(body))
	require.NoError(t, err)

	stored, _ := f.orders.GetByID(context.Background(), order.ID)
	assert.Equal(t, enum.OrderStatusConfirmed, stored.Status)

	txn, _ := f.payments.GetByOrderID(context.Background(), order.ID)
	assert.Equal(t, enum.PaymentStatusCompleted, txn.Status)
}

func TestHandleWebhookFailure(t *testing.T) {
	f := newPaymentFixture(t)
	order := f.placeOrder(t)
	intent, err := f.service.InitiateForOrder(context.Background(), order)
	require.NoError(t, err)

	body := []byte(`{"gateway_order_id":"` + intent.GatewayOrderID + `","status":"failed","failure_reason":"insufficient funds"}`)
	err = f.service.HandleWebhook(context.Background(), body, sign(body))
	require.NoError(t, err)

	stored, _ := f.orders.GetByID(context.Background(), order.ID)
	assert.Equal(t, enum.OrderStatusCancelled, stored.Status)

	txn, _ := f.payments.GetByOrderID(context.Background(), order.ID)
	assert.Equal(t, enum.PaymentStatusFailed, txn.Status)
	require.NotNil(t, txn.FailureReason)
	assert.Equal(t, "insufficient funds", *txn.FailureReason)
}

func TestHandleWebhookDuplicateIsNoOp(t *testing.T) {
	f := newPaymentFixture(t)
	order := f.placeOrder(t)
	intent, err := f.service.InitiateForOrder(context.Background(), order)
	require.NoError(t, err)

	body := []byte(`{"gateway_order_id":"` + intent.GatewayOrderID + `","status":"succeeded"}`)
	require.NoError(t, f.service.HandleWebhook(context.Background(), body, sign(body)))

	// Replay: acknowledged, nothing changes
	require.NoError(t, f.service.HandleWebhook(context.Background(), body, sign(body)))

	stored, _ := f.orders.GetByID(context.Background(), order.ID)
	assert.Equal(t, enum.OrderStatusConfirmed, stored.Status)

	f.notifier.mu.Lock()
	defer f.notifier.mu.Unlock()
	assert.Len(t, f.notifier.changes, 1)
}

func TestHandleWebhookRetryConvergesAfterTransientOrderError(t *testing.T) {
	f := newPaymentFixture(t)
	order := f.placeOrder(t)
	intent, err := f.service.InitiateForOrder(context.Background(), order)
	require.NoError(t, err)

	// The payment row is marked completed, then the order write fails
	f.orders.statusErr = errors.New("connection reset")

	body := []byte(`{"gateway_order_id":"` + intent.GatewayOrderID + `","status":"succeeded"}`)
	require.Error(t, f.service.HandleWebhook(context.Background(), body, sign(body)))

	txn, _ := f.payments.GetByOrderID(context.Background(), order.ID)
	assert.Equal(t, enum.PaymentStatusCompleted, txn.Status)
	stored, _ := f.orders.GetByID(context.Background(), order.ID)
	assert.Equal(t, enum.OrderStatusPendingPayment, stored.Status)

	// The gateway retries: the payment row is already terminal, but the
	// retry must still move the order forward
	require.NoError(t, f.service.HandleWebhook(context.Background(), body, sign(body)))

	stored, _ = f.orders.GetByID(context.Background(), order.ID)
	assert.Equal(t, enum.OrderStatusConfirmed, stored.Status)
}

func TestHandleWebhookRetryConvergesAfterTransientOrderErrorOnFailure(t *testing.T) {
	f := newPaymentFixture(t)
	order := f.placeOrder(t)
	intent, err := f.service.InitiateForOrder(context.Background(), order)
	require.NoError(t, err)

	f.orders.statusErr = errors.New("connection reset")

	body := []byte(`{"gateway_order_id":"` + intent.GatewayOrderID + `","status":"failed","failure_reason":"card declined"}`)
	require.Error(t, f.service.HandleWebhook(context.Background(), body, sign(body)))

	require.NoError(t, f.service.HandleWebhook(context.Background(), body, sign(body)))

	stored, _ := f.orders.GetByID(context.Background(), order.ID)
	assert.Equal(t, enum.OrderStatusCancelled, stored.Status)
}

func TestHandleWebhookConflictingOutcomeIgnored(t *testing.T) {
	f := newPaymentFixture(t)
	order := f.placeOrder(t)
	intent, err := f.service.InitiateForOrder(context.Background(), order)
	require.NoError(t, err)

	success := []byte(`{"gateway_order_id":"` + intent.GatewayOrderID + `","status":"succeeded"}`)
	require.NoError(t, f.service.HandleWebhook(context.Background(), success, sign(success)))

	// A contradictory failure callback after the success is acknowledged
	// without touching the order
	failure := []byte(`{"gateway_order_id":"` + intent.GatewayOrderID + `","status":"failed","failure_reason":"late"}`)
	require.NoError(t, f.service.HandleWebhook(context.Background(), failure, sign(failure)))

	stored, _ := f.orders.GetByID(context.Background(), order.ID)
	assert.Equal(t, enum.OrderStatusConfirmed, stored.Status)
	txn, _ := f.payments.GetByOrderID(context.Background(), order.ID)
	assert.Equal(t, enum.PaymentStatusCompleted, txn.Status)
}

func TestHandleWebhookBadSignature(t *testing.T) {
	f := newPaymentFixture(t)
	order := f.placeOrder(t)
	intent, err := f.service.InitiateForOrder(context.Background(), order)
	require.NoError(t, err)

	body := []byte(`{"gateway_order_id":"` + intent.GatewayOrderID + `","status":"succeeded"}`)
	err = f.service.HandleWebhook(context.Background(), body, "deadbeef")
	require.Error(t, err)

	stored, _ := f.orders.GetByID(context.Background(), order.ID)
	assert.Equal(t, enum.OrderStatusPendingPayment, stored.Status)
}

func TestHandleWebhookUnknownGatewayOrder(t *testing.T) {
	f := newPaymentFixture(t)

	body := []byte(`{"gateway_order_id":"gw_unknown","status":"succeeded"}`)
	err := f.service.HandleWebhook(context.Background(), body, sign(body))
	assert.Error(t, err)
}

func TestVerifySignature(t *testing.T) {
	f := newPaymentFixture(t)
	body := []byte(`{"gateway_order_id":"x","status":"succeeded"}`)

	assert.True(t, f.service.VerifySignature(body, sign(body)))
	assert.False(t, f.service.VerifySignature(body, sign([]byte("tampered"))))
	assert.False(t, f.service.VerifySignature(body, ""))
}
