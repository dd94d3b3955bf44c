package domain

import "time"

// OrderPlacedEvent is published to Kafka after the placement transaction
// commits. The email is resolved inside the transaction so the worker can
// notify the customer without a database of its own.
type OrderPlacedEvent struct {
	OrderID        string      `json:"order_id"`
	CustomerID     string      `json:"customer_id"`
	CustomerEmail  string      `json:"customer_email"`
	Items          []OrderItem `json:"items"`
	Total          int64       `json:"total"`
	ShippingMethod string      `json:"shipping_method"`
	Timestamp      time.Time   `json:"timestamp"`
}
