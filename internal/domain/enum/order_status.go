package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// OrderStatus represents the status of an order
type OrderStatus int

const (
	OrderStatusPendingPayment OrderStatus = 0
	OrderStatusConfirmed      OrderStatus = 1
	OrderStatusPreparing      OrderStatus = 2
	OrderStatusReady          OrderStatus = 3
	OrderStatusOutForDelivery OrderStatus = 4
	OrderStatusCompleted      OrderStatus = 5
	OrderStatusCancelled      OrderStatus = 6
)

var orderStatusNames = [...]string{
	"pending_payment",
	"confirmed",
	"preparing",
	"ready",
	"out_for_delivery",
	"completed",
	"cancelled",
}

// orderStatusTransitions is the single source of truth for legal status
// changes. Staff progression is strictly sequential; cancellation is legal
// from every non-terminal state.
var orderStatusTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPendingPayment: {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed:      {OrderStatusPreparing, OrderStatusCancelled},
	OrderStatusPreparing:      {OrderStatusReady, OrderStatusCancelled},
	OrderStatusReady:          {OrderStatusOutForDelivery, OrderStatusCancelled},
	OrderStatusOutForDelivery: {OrderStatusCompleted, OrderStatusCancelled},
}

// CanTransitionTo reports whether moving from s to target is a legal
// transition
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	for _, allowed := range orderStatusTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// NextStatuses returns the statuses reachable from s
func (s OrderStatus) NextStatuses() []OrderStatus {
	return orderStatusTransitions[s]
}

// IsTerminal reports whether no further transitions are permitted
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// IsValid reports whether s is a known status
func (s OrderStatus) IsValid() bool {
	return s >= OrderStatusPendingPayment && s <= OrderStatusCancelled
}

func (s OrderStatus) String() string {
	if !s.IsValid() {
		return "unknown"
	}
	return orderStatusNames[s]
}

// ParseOrderStatus resolves a status name to its enum value
func ParseOrderStatus(name string) (OrderStatus, bool) {
	for i, n := range orderStatusNames {
		if n == name {
			return OrderStatus(i), true
		}
	}
	return OrderStatusPendingPayment, false
}

func (s OrderStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *OrderStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// Try unmarshaling as int
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = OrderStatus(i)
		return nil
	}
	if parsed, ok := ParseOrderStatus(str); ok {
		*s = parsed
	}
	return nil
}

func (s OrderStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *OrderStatus) Scan(value interface{}) error {
	if value == nil {
		*s = OrderStatusPendingPayment
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = OrderStatus(v)
	case int:
		*s = OrderStatus(v)
	}
	return nil
}
