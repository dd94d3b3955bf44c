package domain

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusConfirmed OrderStatus = "Confirmed"
	OrderStatusShipped   OrderStatus = "Shipped"
	OrderStatusDelivered OrderStatus = "Delivered"
	OrderStatusCancelled OrderStatus = "Cancelled"
)

// OrderItem is a frozen copy of a cart line at the moment of purchase,
// decoupled from the cart and the variant's current price.
type OrderItem struct {
	ID          string `json:"order_item_id"`
	VariantID   string `json:"variant_id"`
	SKU         string `json:"sku,omitempty"`
	ProductName string `json:"name,omitempty"`
	Quantity    int    `json:"quantity"`
	UnitPrice   int64  `json:"unit_price"`
}

// Order is immutable once placed; only Status moves after creation.
type Order struct {
	ID             string      `json:"order_id"`
	CustomerID     string      `json:"customer_id"`
	CustomerEmail  string      `json:"customer_email,omitempty"`
	AddressID      string      `json:"address_id"`
	Items          []OrderItem `json:"items"`
	Total          int64       `json:"order_total"`
	ShippingMethod string      `json:"shipping_method"`
	Status         OrderStatus `json:"order_status"`
	OrderDate      time.Time   `json:"order_date"`
}
