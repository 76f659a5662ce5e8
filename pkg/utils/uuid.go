package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateOrderNo generates a human-readable order number
func GenerateOrderNo() string {
	return "ORD-" + strings.ToUpper(uuid.New().String()[:8])
}
