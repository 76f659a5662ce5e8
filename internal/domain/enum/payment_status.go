package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// PaymentStatus represents the status of a payment transaction
type PaymentStatus int

const (
	PaymentStatusPending   PaymentStatus = 0
	PaymentStatusCompleted PaymentStatus = 1
	PaymentStatusFailed    PaymentStatus = 2
	PaymentStatusRefunded  PaymentStatus = 3
)

func (s PaymentStatus) String() string {
	names := [...]string{"pending", "completed", "failed", "refunded"}
	if int(s) < 0 || int(s) >= len(names) {
		return "pending"
	}
	return names[s]
}

// IsTerminal reports whether the transaction can no longer change except by
// refund
func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentStatusCompleted || s == PaymentStatusFailed || s == PaymentStatusRefunded
}

func (s PaymentStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *PaymentStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = PaymentStatus(i)
		return nil
	}
	switch str {
	case "pending":
		*s = PaymentStatusPending
	case "completed":
		*s = PaymentStatusCompleted
	case "failed":
		*s = PaymentStatusFailed
	case "refunded":
		*s = PaymentStatusRefunded
	}
	return nil
}

func (s PaymentStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *PaymentStatus) Scan(value interface{}) error {
	if value == nil {
		*s = PaymentStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = PaymentStatus(v)
	case int:
		*s = PaymentStatus(v)
	}
	return nil
}
