package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/zaikabox/zaikabox-api/internal/application/service"
	"github.com/zaikabox/zaikabox-api/internal/domain/entity"
	"github.com/zaikabox/zaikabox-api/internal/domain/enum"
	"github.com/zaikabox/zaikabox-api/internal/domain/repository"
	"github.com/zaikabox/zaikabox-api/internal/presentation/http/dto/request"
	"github.com/zaikabox/zaikabox-api/internal/presentation/http/dto/response"
	"github.com/zaikabox/zaikabox-api/pkg/pagination"
)

// OrderHandler handles order-related HTTP requests
type OrderHandler struct {
	orderService   *service.OrderService
	paymentService *service.PaymentService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService, paymentService *service.PaymentService) *OrderHandler {
	return &OrderHandler{
		orderService:   orderService,
		paymentService: paymentService,
	}
}

// Create handles checkout. Anonymous requests create guest orders.
func (h *OrderHandler) Create(c *gin.Context) {
	var req request.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), &service.CreateOrderInput{
		UserID:              GetUserID(c),
		AddressID:           req.AddressID,
		Lines:               toCartLines(req.Lines),
		OfferCode:           req.OfferCode,
		SpecialInstructions: req.SpecialInstructions,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Order created successfully", order)
}

// List handles listing orders. Customers see their own orders; staff see
// everyone's.
func (h *OrderHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.OrderFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
		Search: c.Query("search"),
	}

	if !IsStaff(c) {
		params.UserID = userID
	}

	if statusStr := c.Query("status"); statusStr != "" {
		status, ok := enum.ParseOrderStatus(statusStr)
		if !ok {
			response.BadRequest(c, "Unknown order status "+statusStr)
			return
		}
		params.Status = &status
	}

	if startDateStr := c.Query("start_date"); startDateStr != "" {
		if startDate, err := time.Parse("2006-01-02", startDateStr); err == nil {
			params.StartDate = &startDate
		}
	}

	if endDateStr := c.Query("end_date"); endDateStr != "" {
		if endDate, err := time.Parse("2006-01-02", endDateStr); err == nil {
			params.EndDate = &endDate
		}
	}

	result, err := h.orderService.ListOrders(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Orders retrieved successfully", result)
}

// Get handles retrieving a single order with its line items
func (h *OrderHandler) Get(c *gin.Context) {
	order := h.resolveOrder(c)
	if order == nil {
		return
	}

	response.OK(c, "Order retrieved successfully", order)
}

// UpdateStatus handles a staff status change
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	var req request.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	status, ok := enum.ParseOrderStatus(req.Status)
	if !ok {
		response.BadRequest(c, "Unknown order status "+req.Status)
		return
	}

	order, err := h.orderService.AdvanceStatus(c.Request.Context(), id, status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order status updated", order)
}

// Cancel handles a customer cancelling their own unpaid order
func (h *OrderHandler) Cancel(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.CancelByUser(c.Request.Context(), *userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order cancelled", order)
}

// Pay handles initiating payment for a pending order
func (h *OrderHandler) Pay(c *gin.Context) {
	order := h.resolveOrder(c)
	if order == nil {
		return
	}

	intent, err := h.paymentService.InitiateForOrder(c.Request.Context(), order)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment initiated", intent)
}

// resolveOrder loads the order from the :id param and enforces ownership:
// customers only reach their own orders, anonymous requests only reach
// guest orders, staff reach everything. Writes the error response itself
// and returns nil when access is denied.
func (h *OrderHandler) resolveOrder(c *gin.Context) *entity.Order {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return nil
	}

	userID := GetUserID(c)
	if IsStaff(c) {
		userID = nil
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), id, userID)
	if err != nil {
		response.Error(c, err)
		return nil
	}

	if userID == nil && !IsStaff(c) && order.UserID != nil {
		response.Forbidden(c, "Access denied")
		return nil
	}

	return order
}
