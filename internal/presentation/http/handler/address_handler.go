package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/zaikabox/zaikabox-api/internal/application/service"
	"github.com/zaikabox/zaikabox-api/internal/presentation/http/dto/request"
	"github.com/zaikabox/zaikabox-api/internal/presentation/http/dto/response"
)

// AddressHandler handles address and delivery zone HTTP requests
type AddressHandler struct {
	addressService *service.AddressService
}

// NewAddressHandler creates a new address handler
func NewAddressHandler(addressService *service.AddressService) *AddressHandler {
	return &AddressHandler{addressService: addressService}
}

// ListZones handles listing serviceable delivery zones
func (h *AddressHandler) ListZones(c *gin.Context) {
	zones, err := h.addressService.ListZones(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Delivery zones retrieved successfully", zones)
}

// List handles listing the authenticated user's addresses
func (h *AddressHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	addresses, err := h.addressService.ListForUser(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Addresses retrieved successfully", addresses)
}

// Create handles saving an address. Anonymous requests create guest
// addresses usable for one checkout.
func (h *AddressHandler) Create(c *gin.Context) {
	var req request.CreateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	address, err := h.addressService.Create(c.Request.Context(), &service.CreateAddressInput{
		UserID:  GetUserID(c),
		ZoneID:  req.ZoneID,
		Label:   req.Label,
		Line1:   req.Line1,
		Line2:   req.Line2,
		City:    req.City,
		Pincode: req.Pincode,
		Phone:   req.Phone,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Address created successfully", address)
}
