package gateway

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/zaikabox/zaikabox-api/internal/application/service"
	"github.com/zaikabox/zaikabox-api/internal/config"
)

// mockPayGateway is the development gateway. It issues a gateway order ID
// and a UPI-style payment string locally; the outcome is driven by posting
// to the webhook endpoint by hand or from integration fixtures.
type mockPayGateway struct {
	merchantID string
}

// NewMockPayGateway creates the local development payment gateway
func NewMockPayGateway() service.PaymentGateway {
	return &mockPayGateway{merchantID: "zaikabox-dev"}
}

func (g *mockPayGateway) Initiate(ctx context.Context, orderNo string, amount int64) (*service.PaymentIntent, error) {
	gatewayOrderID := "mp_" + uuid.New().String()[:12]
	return &service.PaymentIntent{
		GatewayOrderID: gatewayOrderID,
		QROrRedirect: fmt.Sprintf("upi://pay?pa=%s@mockpay&tr=%s&tn=%s&am=%d.%02d",
			g.merchantID, gatewayOrderID, orderNo, amount/100, amount%100),
	}, nil
}

// NewFromConfig picks the gateway implementation for the configured
// provider, falling back to mockpay for unknown ones.
func NewFromConfig(cfg *config.PaymentConfig) service.PaymentGateway {
	switch cfg.Provider {
	case "mockpay", "":
		return NewMockPayGateway()
	default:
		log.Printf("Unknown payment provider %q, using mockpay", cfg.Provider)
		return NewMockPayGateway()
	}
}
