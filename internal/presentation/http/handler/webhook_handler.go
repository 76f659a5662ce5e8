package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/zaikabox/zaikabox-api/internal/application/service"
	"github.com/zaikabox/zaikabox-api/internal/presentation/http/dto/response"
)

// SignatureHeader carries the gateway's HMAC over the raw webhook body
const SignatureHeader = "X-Webhook-Signature"

// WebhookHandler handles payment gateway callbacks
type WebhookHandler struct {
	paymentService *service.PaymentService
}

// NewWebhookHandler creates a new webhook handler
func NewWebhookHandler(paymentService *service.PaymentService) *WebhookHandler {
	return &WebhookHandler{paymentService: paymentService}
}

// PaymentWebhook handles the gateway's payment outcome callback. A 2xx
// acknowledges the event; anything else makes the gateway retry, so
// duplicates and transient failures must be distinguished carefully.
func (h *WebhookHandler) PaymentWebhook(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		response.BadRequest(c, "Unable to read webhook body")
		return
	}

	signature := c.GetHeader(SignatureHeader)
	if err := h.paymentService.HandleWebhook(c.Request.Context(), body, signature); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Webhook processed", nil)
}
