package entity

// TicketAddOn is one add-on line under a ticket item.
type TicketAddOn struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// TicketItem represents a single line item on a kitchen ticket.
type TicketItem struct {
	Name     string        `json:"name"`
	Size     string        `json:"size"`
	Quantity int           `json:"quantity"`
	AddOns   []TicketAddOn `json:"add_ons,omitempty"`
}

// KitchenTicket is a value object representing a printable kitchen ticket.
// It is NOT a database entity — it is composed from order data at print time.
type KitchenTicket struct {
	RestaurantName string       `json:"restaurant_name"`
	OrderNo        string       `json:"order_no"`
	PlacedAt       string       `json:"placed_at"`
	Customer       string       `json:"customer,omitempty"`
	Phone          string       `json:"phone,omitempty"`
	Address        string       `json:"address"`
	Zone           string       `json:"zone,omitempty"`
	Items          []TicketItem `json:"items"`
	Instructions   string       `json:"instructions,omitempty"`
	Total          float64      `json:"total"`
}
