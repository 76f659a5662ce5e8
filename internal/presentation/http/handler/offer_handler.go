package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/zaikabox/zaikabox-api/internal/application/service"
	"github.com/zaikabox/zaikabox-api/internal/presentation/http/dto/request"
	"github.com/zaikabox/zaikabox-api/internal/presentation/http/dto/response"
)

// OfferHandler handles offer-related HTTP requests
type OfferHandler struct {
	offerService *service.OfferService
	cartService  *service.CartService
}

// NewOfferHandler creates a new offer handler
func NewOfferHandler(offerService *service.OfferService, cartService *service.CartService) *OfferHandler {
	return &OfferHandler{
		offerService: offerService,
		cartService:  cartService,
	}
}

// List handles listing currently active offers
func (h *OfferHandler) List(c *gin.Context) {
	offers, err := h.offerService.ListActive(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Offers retrieved successfully", offers)
}

// Preview evaluates an offer code against a cart without creating an
// order. An inapplicable code is a normal response carrying the reason,
// not an error; checkout is where an invalid code becomes fatal.
func (h *OfferHandler) Preview(c *gin.Context) {
	var req request.PreviewOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	cart, err := h.cartService.Validate(c.Request.Context(), toCartLines(req.Lines), nil)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.offerService.EvaluateForLines(c.Request.Context(), req.Code, cart.ValidLines, GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Offer evaluated", result)
}
