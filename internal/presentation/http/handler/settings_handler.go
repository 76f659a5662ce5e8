package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/zaikabox/zaikabox-api/internal/application/service"
	"github.com/zaikabox/zaikabox-api/internal/presentation/http/dto/request"
	"github.com/zaikabox/zaikabox-api/internal/presentation/http/dto/response"
)

// SettingsHandler handles restaurant settings HTTP requests
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// Status handles the public open/closed status check
func (h *SettingsHandler) Status(c *gin.Context) {
	status, err := h.settingsService.GetStatus(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Restaurant status retrieved", status)
}

// Get handles retrieving the full settings record for staff
func (h *SettingsHandler) Get(c *gin.Context) {
	settings, err := h.settingsService.GetSettings(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settings retrieved successfully", settings)
}

// Update handles a staff settings update
func (h *SettingsHandler) Update(c *gin.Context) {
	var req request.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	settings, err := h.settingsService.UpdateSettings(c.Request.Context(), &service.UpdateSettingsInput{
		Name:         req.Name,
		ManualClosed: req.ManualClosed,
		OpensAt:      req.OpensAt,
		ClosesAt:     req.ClosesAt,
		Timezone:     req.Timezone,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settings updated successfully", settings)
}
