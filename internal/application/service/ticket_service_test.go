package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zaikabox/zaikabox-api/internal/domain/entity"
)

func TestFormatTicket(t *testing.T) {
	ticket := &entity.KitchenTicket{
		RestaurantName: "ZaikaBox",
		OrderNo:        "ORD-AB12CD34",
		PlacedAt:       "2024-06-15 13:00",
		Customer:       "Priya",
		Phone:          "+91 98765 43210",
		Address:        "12 MG Road, Indiranagar, Bengaluru 560038",
		Zone:           "City Centre",
		Items: []entity.TicketItem{
			{Name: "Margherita Pizza", Size: "Medium", Quantity: 2,
				AddOns: []entity.TicketAddOn{{Name: "Extra Cheese", Quantity: 1}}},
			{Name: "Garlic Bread", Size: "Regular", Quantity: 1},
		},
		Instructions: "Ring the bell twice, no coriander on anything",
		Total:        667.90,
	}

	out := string(FormatTicket(ticket))

	assert.Contains(t, out, "ZaikaBox")
	assert.Contains(t, out, "KITCHEN TICKET")
	assert.Contains(t, out, "ORD-AB12CD34")
	assert.Contains(t, out, "2x Margherita Pizza (Medium)")
	assert.Contains(t, out, "+ Extra Cheese")
	assert.Contains(t, out, "1x Garlic Bread (Regular)")
	assert.Contains(t, out, "NOTE:")
	assert.Contains(t, out, "no coriander")
	assert.Contains(t, out, "City Centre")
	assert.Contains(t, out, "667.90")
}

func TestComposeNotifiersFansOut(t *testing.T) {
	a := &recordingNotifier{}
	b := &recordingNotifier{}
	n := ComposeNotifiers(a, b)

	order := &entity.Order{OrderNo: "ORD-1"}
	n.OrderCreated(order)
	n.OrderStatusChanged(order, StatusChange{OrderNo: "ORD-1"})

	assert.Len(t, a.created, 1)
	assert.Len(t, b.created, 1)
	assert.Len(t, a.changes, 1)
	assert.Len(t, b.changes, 1)
}
