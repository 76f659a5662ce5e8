package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/zaikabox/zaikabox-api/internal/application/service"
	"github.com/zaikabox/zaikabox-api/internal/presentation/http/dto/response"
)

// MenuHandler handles menu-related HTTP requests
type MenuHandler struct {
	menuService *service.MenuService
}

// NewMenuHandler creates a new menu handler
func NewMenuHandler(menuService *service.MenuService) *MenuHandler {
	return &MenuHandler{menuService: menuService}
}

// GetMenu handles listing the full menu grouped by category
func (h *MenuHandler) GetMenu(c *gin.Context) {
	menu, err := h.menuService.GetMenu(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Menu retrieved successfully", menu)
}

// GetItem handles retrieving a single menu item
func (h *MenuHandler) GetItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid item ID")
		return
	}

	item, err := h.menuService.GetItem(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item retrieved successfully", item)
}
