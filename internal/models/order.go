package models

import "time"

// Order statuses
const (
	OrderStatusPaid = "PAID"
)

type Order struct {
	ID           string
	UserID       string
	EventID      int64
	Status       string
	BillingName  string
	BillingEmail string
	CreatedAt    time.Time
}
