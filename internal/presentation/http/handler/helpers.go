package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/zaikabox/zaikabox-api/internal/application/service"
	"github.com/zaikabox/zaikabox-api/internal/presentation/http/dto/request"
)

// GetUserID extracts the user ID from the Gin context, or nil for
// anonymous requests
func GetUserID(c *gin.Context) *uuid.UUID {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

// GetUserRoles extracts the user roles from the Gin context
func GetUserRoles(c *gin.Context) []string {
	roles, exists := c.Get("user_roles")
	if !exists {
		return nil
	}
	rolesList, ok := roles.([]string)
	if !ok {
		return nil
	}
	return rolesList
}

// IsStaff checks if the user has a staff or admin role
func IsStaff(c *gin.Context) bool {
	for _, role := range GetUserRoles(c) {
		if role == "staff" || role == "admin" {
			return true
		}
	}
	return false
}

// toCartLines converts request DTOs to service cart lines
func toCartLines(lines []request.CartLineRequest) []service.CartLine {
	out := make([]service.CartLine, len(lines))
	for i, l := range lines {
		out[i] = service.CartLine{
			ItemID:   l.ItemID,
			SizeID:   l.SizeID,
			AddOnIDs: l.AddOnIDs,
			Quantity: l.Quantity,
		}
	}
	return out
}
