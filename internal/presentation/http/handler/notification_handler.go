package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/zaikabox/zaikabox-api/internal/application/service"
	"github.com/zaikabox/zaikabox-api/internal/presentation/http/dto/response"
	"github.com/zaikabox/zaikabox-api/pkg/pagination"
)

// NotificationHandler handles notification feed HTTP requests
type NotificationHandler struct {
	notificationService *service.NotificationService
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notificationService *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// List handles listing the caller's notifications, newest first. Staff can
// request the admin feed with scope=admin.
func (h *NotificationHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	if c.Query("scope") == "admin" {
		if !IsStaff(c) {
			response.Forbidden(c, "Access denied")
			return
		}
		userID = nil
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))
	params := &pagination.PaginationParams{Page: page, PerPage: perPage}

	notifications, total, err := h.notificationService.ListForUser(c.Request.Context(), userID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	response.SuccessWithPagination(c, 200, "Notifications retrieved successfully",
		pagination.NewPaginatedResult(notifications, pag))
}

// MarkRead handles marking a notification as read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid notification ID")
		return
	}

	if err := h.notificationService.MarkRead(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
