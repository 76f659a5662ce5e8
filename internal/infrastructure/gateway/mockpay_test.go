package gateway

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zaikabox/zaikabox-api/internal/config"
)

func TestMockPayInitiate(t *testing.T) {
	gw := NewMockPayGateway()

	intent, err := gw.Initiate(context.Background(), "ORD-AB12CD34", 66790)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(intent.GatewayOrderID, "mp_"))
	assert.Len(t, intent.GatewayOrderID, 15)
	assert.Equal(t, strings.ToLower(intent.GatewayOrderID), intent.GatewayOrderID)

	assert.Contains(t, intent.QROrRedirect, "upi://pay?pa=zaikabox-dev@mockpay")
	assert.Contains(t, intent.QROrRedirect, "tr="+intent.GatewayOrderID)
	assert.Contains(t, intent.QROrRedirect, "am=667.90")
}

func TestNewFromConfigFallsBackToMockPay(t *testing.T) {
	gw := NewFromConfig(&config.PaymentConfig{Provider: "stripe"})

	intent, err := gw.Initiate(context.Background(), "ORD-1", 100)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(intent.GatewayOrderID, "mp_"))
}
