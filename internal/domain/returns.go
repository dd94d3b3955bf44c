package domain

import "time"

type ReturnType string

const (
	ReturnTypeRefund   ReturnType = "Refund"
	ReturnTypeExchange ReturnType = "Exchange"
)

type ReturnStatus string

const (
	ReturnStatusPending  ReturnStatus = "Pending"
	ReturnStatusApproved ReturnStatus = "Approved"
	ReturnStatusRejected ReturnStatus = "Rejected"
	// Approved and later states are driven by the staff workflow, which
	// lives outside this service.
	ReturnStatusCompleted ReturnStatus = "Completed"
)

type ExchangeMode string

const (
	ExchangeModeInStore ExchangeMode = "InStore"
	ExchangeModeOnline  ExchangeMode = "Online"
)

type ReturnRequestItem struct {
	ID                   string `json:"return_item_id"`
	OrderItemID          string `json:"order_item_id"`
	Quantity             int    `json:"quantity"`
	ReplacementVariantID string `json:"replacement_variant_id,omitempty"`
}

type ReturnRequest struct {
	ID           string              `json:"return_id"`
	OrderID      string              `json:"order_id"`
	RequestType  ReturnType          `json:"request_type"`
	Reason       string              `json:"reason"`
	Status       ReturnStatus        `json:"status"`
	ExchangeMode ExchangeMode        `json:"exchange_mode,omitempty"`
	Items        []ReturnRequestItem `json:"items"`
	CreatedAt    time.Time           `json:"created_at"`
}
