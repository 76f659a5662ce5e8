package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour, min int) time.Time {
	return time.Date(2024, 6, 15, hour, min, 0, 0, time.UTC)
}

func TestIsOpenAtWithinHours(t *testing.T) {
	s := &RestaurantSettings{OpensAt: "10:00", ClosesAt: "23:00", Timezone: "UTC"}

	open, _ := s.IsOpenAt(at(12, 30))
	assert.True(t, open)

	open, reason := s.IsOpenAt(at(9, 59))
	assert.False(t, open)
	assert.NotEmpty(t, reason)

	// Closing time itself is closed
	open, _ = s.IsOpenAt(at(23, 0))
	assert.False(t, open)

	// Boundary: opening minute is open
	open, _ = s.IsOpenAt(at(10, 0))
	assert.True(t, open)
}

func TestIsOpenAtManualOverride(t *testing.T) {
	s := &RestaurantSettings{ManualClosed: true, OpensAt: "00:00", ClosesAt: "23:59", Timezone: "UTC"}

	open, reason := s.IsOpenAt(at(12, 0))
	assert.False(t, open)
	assert.Contains(t, reason, "temporarily closed")
}

func TestIsOpenAtSpanningMidnight(t *testing.T) {
	s := &RestaurantSettings{OpensAt: "18:00", ClosesAt: "02:00", Timezone: "UTC"}

	open, _ := s.IsOpenAt(at(23, 30))
	assert.True(t, open)

	open, _ = s.IsOpenAt(at(1, 0))
	assert.True(t, open)

	open, _ = s.IsOpenAt(at(12, 0))
	assert.False(t, open)
}
