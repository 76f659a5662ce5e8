package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/zaikabox/zaikabox-api/internal/application/service"
	"github.com/zaikabox/zaikabox-api/internal/presentation/http/dto/request"
	"github.com/zaikabox/zaikabox-api/internal/presentation/http/dto/response"
)

// CartHandler handles cart validation HTTP requests
type CartHandler struct {
	cartService *service.CartService
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// Validate handles cart validation. Valid lines come back enriched with
// current names and prices; rejected lines carry a reason the client can
// show before pruning them.
func (h *CartHandler) Validate(c *gin.Context) {
	var req request.ValidateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.cartService.Validate(c.Request.Context(), toCartLines(req.Lines), req.ZoneID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cart validated", result)
}
